package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name             string
		lat1, lon1       float64
		lat2, lon2       float64
		wantMeters       float64
		tolerancePercent float64
	}{
		{
			name: "Cape Canaveral to Kennedy Space Center",
			lat1: 28.3922, lon1: -80.6077,
			lat2: 28.5729, lon2: -80.6490,
			wantMeters:       20_500,
			tolerancePercent: 2,
		},
		{
			name: "Same point",
			lat1: 5.2360, lon1: -52.7686,
			lat2: 5.2360, lon2: -52.7686,
		},
		{
			name: "London to Paris",
			lat1: 51.5074, lon1: -0.1278,
			lat2: 48.8566, lon2: 2.3522,
			wantMeters:       343_500,
			tolerancePercent: 1,
		},
		{
			name: "Quarter meridian",
			lat1: 0, lon1: 0,
			lat2: 90, lon2: 0,
			wantMeters:       earthRadiusMeters * math.Pi / 2,
			tolerancePercent: 0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if tt.wantMeters == 0 {
				assert.Zero(t, got)
				return
			}
			diff := math.Abs(got-tt.wantMeters) / tt.wantMeters * 100
			assert.LessOrEqual(t, diff, tt.tolerancePercent, "Haversine = %f m, want ~%f m", got, tt.wantMeters)
		})
	}
}

func TestEquirectangularDistCloseToHaversine(t *testing.T) {
	lat1, lon1 := 28.3922, -80.6077
	lat2, lon2 := 28.4000, -80.6000

	h := Haversine(lat1, lon1, lat2, lon2)
	e := EquirectangularDist(lat1, lon1, lat2, lon2)

	assert.InDelta(t, h, e, h*0.005)
}

func BenchmarkHaversine(b *testing.B) {
	for b.Loop() {
		Haversine(28.3922, -80.6077, 28.5729, -80.6490)
	}
}
