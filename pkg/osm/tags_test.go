package osm

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
)

func TestDrivable(t *testing.T) {
	tests := []struct {
		name string
		tags osm.Tags
		want bool
	}{
		{"residential", osm.Tags{{Key: "highway", Value: "residential"}}, true},
		{"motorway", osm.Tags{{Key: "highway", Value: "motorway"}}, true},
		{"service", osm.Tags{{Key: "highway", Value: "service"}}, true},
		{"footway", osm.Tags{{Key: "highway", Value: "footway"}}, false},
		{"cycleway", osm.Tags{{Key: "highway", Value: "cycleway"}}, false},
		{"no highway tag", osm.Tags{{Key: "name", Value: "Launch Road"}}, false},
		{
			"private access",
			osm.Tags{{Key: "highway", Value: "residential"}, {Key: "access", Value: "private"}},
			false,
		},
		{
			"access=no",
			osm.Tags{{Key: "highway", Value: "tertiary"}, {Key: "access", Value: "no"}},
			false,
		},
		{
			"motor_vehicle=no",
			osm.Tags{{Key: "highway", Value: "residential"}, {Key: "motor_vehicle", Value: "no"}},
			false,
		},
		{
			"area",
			osm.Tags{{Key: "highway", Value: "service"}, {Key: "area", Value: "yes"}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, drivable(tt.tags))
		})
	}
}

func TestTravelDirections(t *testing.T) {
	tests := []struct {
		name                   string
		tags                   osm.Tags
		wantAlong, wantAgainst bool
	}{
		{"two-way", osm.Tags{{Key: "highway", Value: "residential"}}, true, true},
		{"motorway", osm.Tags{{Key: "highway", Value: "motorway"}}, true, false},
		{"motorway link", osm.Tags{{Key: "highway", Value: "motorway_link"}}, true, false},
		{
			"roundabout",
			osm.Tags{{Key: "highway", Value: "residential"}, {Key: "junction", Value: "roundabout"}},
			true, false,
		},
		{"oneway=yes", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "yes"}}, true, false},
		{"oneway=1", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "1"}}, true, false},
		{"oneway=-1", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "-1"}}, false, true},
		{"oneway=reverse", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "reverse"}}, false, true},
		{"oneway=no on motorway", osm.Tags{{Key: "highway", Value: "motorway"}, {Key: "oneway", Value: "no"}}, true, true},
		{"reversible", osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "reversible"}}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			along, against := travelDirections(tt.tags)
			assert.Equal(t, tt.wantAlong, along, "along")
			assert.Equal(t, tt.wantAgainst, against, "against")
		})
	}
}
