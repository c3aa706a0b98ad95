package scene

import (
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
)

// Kind identifies what a structure is.
type Kind string

const (
	KindModule        Kind = "module"
	KindConnectionHub Kind = "connection_hub"
	KindLandingPad    Kind = "landing_pad"
	KindDecoration    Kind = "decoration"
)

// Kinds lists every known structure kind.
var Kinds = []Kind{KindModule, KindConnectionHub, KindLandingPad, KindDecoration}

// Structure is a structure already placed in the base.
type Structure struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Kind     Kind     `yaml:"kind" json:"kind"`
	Position geo.Vec3 `yaml:"position" json:"position"`
	Yaw      float64  `yaml:"yaw" json:"yaw"` // degrees, 0 faces +Z
	Size     int      `yaml:"size" json:"size"`
}

// Forward returns the horizontal facing of the structure.
func (s Structure) Forward() geo.Vec3 {
	return geo.DirectionFromYaw(s.Yaw)
}

// Footprint returns the ground circle the structure occupies.
func (s Structure) Footprint(w config.World) geo.Circle {
	return geo.Circle{Center: s.Position.Flat(), Radius: w.SizeRadius(s.Size)}
}

// Placement describes the structure the player is currently positioning.
type Placement struct {
	Kind Kind    `yaml:"kind" json:"kind"`
	Size int     `yaml:"size" json:"size"`
	Yaw  float64 `yaml:"yaw" json:"yaw"`
}

// Scene is a base layout: the buildable area, the structures on it and,
// optionally, the structure being placed.
type Scene struct {
	Name       string      `yaml:"name" json:"name"`
	Area       geo.Polygon `yaml:"area,omitempty" json:"area"`
	Placing    *Placement  `yaml:"placing,omitempty" json:"placing,omitempty"`
	Structures []Structure `yaml:"structures" json:"structures"`
}

// Find returns the structure with the given ID.
func (s *Scene) Find(id string) (*Structure, bool) {
	for i := range s.Structures {
		if s.Structures[i].ID == id {
			return &s.Structures[i], true
		}
	}
	return nil, false
}

// KnownKind reports whether k is one of Kinds.
func KnownKind(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}
