package graph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnc_sssp/pkg/graph"
)

func buildTestGraph(t *testing.T) *graph.SparseGraph {
	t.Helper()
	return graph.FromEdges(5, []graph.Edge{
		{From: 0, To: 1, Weight: 1.5},
		{From: 1, To: 2, Weight: 2.25},
		{From: 0, To: 2, Weight: 5},
		{From: 2, To: 3, Weight: 1},
		{From: 3, To: 0, Weight: 0},
	})
}

func TestBinaryRoundTrip(t *testing.T) {
	for _, name := range []string{"test.graph.bin", "test.graph.bin" + graph.CompressedSuffix} {
		t.Run(name, func(t *testing.T) {
			original := buildTestGraph(t)
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, graph.WriteBinary(path, original))

			loaded, err := graph.ReadBinary(path)
			require.NoError(t, err)

			assert.Equal(t, original.NodeCount(), loaded.NodeCount())
			assert.Equal(t, original.EdgeCount(), loaded.EdgeCount())
			assert.Equal(t, original.Offsets(), loaded.Offsets())
			assert.Equal(t, original.Destinations(), loaded.Destinations())
			assert.Equal(t, original.Weights(), loaded.Weights())

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file should be gone")
		})
	}
}

func TestBinaryEmptyGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.graph.bin")
	require.NoError(t, graph.WriteBinary(path, graph.FromEdges(0, nil)))

	loaded, err := graph.ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), loaded.NodeCount())
}

func TestBinaryRefusesInvalidGraph(t *testing.T) {
	g := graph.New(2, []uint32{0, 1, 1}, []uint32{5}, []float64{1})
	path := filepath.Join(t.TempDir(), "bad.graph.bin")

	err := graph.WriteBinary(path, g)
	require.ErrorIs(t, err, graph.ErrDestinationRange)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBinaryInvalidMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.graph.bin")
	require.NoError(t, os.WriteFile(path, []byte("NOT_A_GRAPH_HEADER_BLAH_BLAH_BLAH_MORE_DATA"), 0644))

	_, err := graph.ReadBinary(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid magic")
}

func TestBinaryTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.graph.bin")
	require.NoError(t, os.WriteFile(path, []byte("GNCSSSP"), 0644))

	_, err := graph.ReadBinary(path)
	require.Error(t, err)
}

func TestBinaryCorruptedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.graph.bin")
	require.NoError(t, graph.WriteBinary(path, buildTestGraph(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Flip a byte inside the weights block, before the CRC trailer.
	data[len(data)-8] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = graph.ReadBinary(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CRC32 mismatch")
}

func TestBinaryCoordinatesRoundTrip(t *testing.T) {
	for _, name := range []string{"roads.graph.bin", "roads.graph.bin" + graph.CompressedSuffix} {
		t.Run(name, func(t *testing.T) {
			g := buildTestGraph(t)
			coords := &graph.Coordinates{
				Lat: []float64{1.30, 1.31, 1.32, 1.33, 1.34},
				Lon: []float64{103.80, 103.81, 103.82, 103.83, 103.84},
			}
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, graph.WriteFile(path, g, coords))

			loaded, loadedCoords, err := graph.ReadFile(path)
			require.NoError(t, err)
			require.NotNil(t, loadedCoords)
			assert.Equal(t, coords, loadedCoords)
			assert.Equal(t, g.Weights(), loaded.Weights())

			// ReadBinary accepts the same file.
			_, err = graph.ReadBinary(path)
			require.NoError(t, err)
		})
	}
}

func TestBinaryWithoutCoordinates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.graph.bin")
	require.NoError(t, graph.WriteBinary(path, buildTestGraph(t)))

	_, coords, err := graph.ReadFile(path)
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestBinaryRejectsCoordinateMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatch.graph.bin")
	coords := &graph.Coordinates{Lat: []float64{1}, Lon: []float64{2}}

	err := graph.WriteFile(path, buildTestGraph(t), coords)
	assert.ErrorIs(t, err, graph.ErrCoordinatesLength)
}
