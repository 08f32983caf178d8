package sssp

import (
	"context"
	"testing"
)

func BenchmarkSolve(b *testing.B) {
	g := randomGraph(42, 20_000)
	ctx := context.Background()

	b.Run("dijkstra", func(b *testing.B) {
		s := NewSolver(g)
		b.ReportAllocs()
		for b.Loop() {
			if _, err := s.Solve(ctx, 0); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("preprocessed", func(b *testing.B) {
		s := NewSolver(g)
		if !s.Preprocess(ctx) {
			b.Fatal("preprocess failed")
		}
		b.ReportAllocs()
		for b.Loop() {
			if _, err := s.Solve(ctx, 0); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkBuildDecomposition(b *testing.B) {
	g := randomGraph(7, 100_000)
	for b.Loop() {
		BuildDecomposition(g)
	}
}
