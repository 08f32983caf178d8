package osm

import "github.com/paulmach/osm"

// roadClasses lists highway tag values kept as drivable roads.
var roadClasses = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// drivable reports whether a way with these tags is open to motor traffic.
func drivable(tags osm.Tags) bool {
	if !roadClasses[tags.Find("highway")] {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}
	switch tags.Find("access") {
	case "no", "private":
		return false
	}
	return tags.Find("motor_vehicle") != "no"
}

// travelDirections returns whether the way may be traversed along and
// against its node order.
func travelDirections(tags osm.Tags) (along, against bool) {
	along, against = true, true

	if hw := tags.Find("highway"); hw == "motorway" || hw == "motorway_link" {
		against = false
	}
	if tags.Find("junction") == "roundabout" {
		against = false
	}

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		along, against = true, false
	case "-1", "reverse":
		along, against = false, true
	case "no":
		along, against = true, true
	case "reversible":
		// Direction changes by time of day.
		along, against = false, false
	}
	return along, against
}
