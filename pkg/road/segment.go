package road

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
)

type RoadType int

const (
	Unknown RoadType = iota
	Motorway
	Trunk
	Primary
	Secondary
	Tertiary
)

// Segment is a way of the road network
type Segment struct {
	ID       osm.WayID
	Type     RoadType
	Points   orb.LineString
	Tags     map[string]string
	OneWay   bool
	MaxSpeed int // km/h
}

func (r RoadType) String() string {
	return []string{"Unknown", "Motorway", "Trunk", "Primary", "Secondary", "Tertiary"}[r]
}

// ParseRoadType maps the osm highway tag to a road type. Unsupported classes give Unknown
func ParseRoadType(highway string) RoadType {
	switch highway {
	case "motorway", "motorway_link":
		return Motorway
	case "trunk", "trunk_link":
		return Trunk
	case "primary", "primary_link":
		return Primary
	case "secondary", "secondary_link":
		return Secondary
	case "tertiary", "tertiary_link":
		return Tertiary
	default:
		return Unknown
	}
}

// IsOneWay interprets the osm oneway tag
func IsOneWay(tags map[string]string) bool {
	switch tags["oneway"] {
	case "yes", "true", "1":
		return true
	}
	// motorways are implicitly one way
	return tags["highway"] == "motorway" && tags["oneway"] != "no"
}

// Length returns the length of the segment in meters
func (s *Segment) Length() float64 {
	return geo.LengthHaversign(s.Points)
}
