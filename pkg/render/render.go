// Package render is the bridge between the snap overlay and whatever draws it.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
)

// Renderer draws debug primitives into named groups.
type Renderer interface {
	DrawPoint(group string, pos geo.Vec3, c Color, size float64)
	DrawLine(group string, start, end geo.Vec3, c Color, width float64)
	ClearGroup(group string)
}

// Color is an RGB color with components in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

var (
	White  = Color{1, 1, 1}
	Red    = Color{1, 0, 0}
	Green  = Color{0, 1, 0}
	Blue   = Color{0, 0, 1}
	Cyan   = Color{0, 1, 1}
	Yellow = Color{1, 0.92, 0.016}
)

var named = map[string]Color{
	"white":  White,
	"red":    Red,
	"green":  Green,
	"blue":   Blue,
	"cyan":   Cyan,
	"yellow": Yellow,
}

// ParseColor accepts a color name or a #rrggbb hex string.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
		}
		return Color{
			R: float64(v>>16&0xff) / 255,
			G: float64(v>>8&0xff) / 255,
			B: float64(v&0xff) / 255,
		}, nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

// ColorOr parses s, falling back to def when s is empty or invalid.
func ColorOr(s string, def Color) Color {
	if c, err := ParseColor(s); err == nil {
		return c
	}
	return def
}

// RGB returns the color as 8-bit components.
func (c Color) RGB() (int32, int32, int32) {
	return int32(c.R*255 + 0.5), int32(c.G*255 + 0.5), int32(c.B*255 + 0.5)
}

// Discard is a Renderer that draws nothing.
var Discard Renderer = discard{}

type discard struct{}

func (discard) DrawPoint(string, geo.Vec3, Color, float64)          {}
func (discard) DrawLine(string, geo.Vec3, geo.Vec3, Color, float64) {}
func (discard) ClearGroup(string)                                   {}
