package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
)

// cellAspect compensates for terminal cells being about twice as tall as wide.
const cellAspect = 2.0

// Marker is a static glyph drawn under the overlay (structures, the cursor).
type Marker struct {
	Pos   geo.Vec3
	Rune  rune
	Color Color
}

// Terminal renders groups as a top-down view of the XZ plane on a tcell
// screen. +Z points up the screen.
type Terminal struct {
	screen  tcell.Screen
	center  geo.Point2D
	scale   float64 // world units per column
	groups  map[string][]Command
	markers []Marker
}

// NewTerminal creates a terminal renderer centered on center with scale
// world units per screen column.
func NewTerminal(screen tcell.Screen, center geo.Point2D, scale float64) *Terminal {
	if scale <= 0 {
		scale = 1
	}
	return &Terminal{
		screen: screen,
		center: center,
		scale:  scale,
		groups: make(map[string][]Command),
	}
}

// SetMarkers replaces the static glyphs and redraws.
func (t *Terminal) SetMarkers(markers []Marker) {
	t.markers = markers
	t.redraw()
}

// Project maps a world position to a screen cell.
func (t *Terminal) Project(p geo.Vec3) (int, int, bool) {
	w, h := t.screen.Size()
	x := w/2 + int(math.Round((p.X-t.center.X)/t.scale))
	y := h/2 - int(math.Round((p.Z-t.center.Z)/(t.scale*cellAspect)))
	return x, y, x >= 0 && y >= 0 && x < w && y < h
}

// DrawPoint plots a point as a single cell.
func (t *Terminal) DrawPoint(group string, pos geo.Vec3, c Color, size float64) {
	cmd := Command{Kind: KindPoint, Start: pos, Color: c, Size: size}
	t.groups[group] = append(t.groups[group], cmd)
	t.plot(cmd)
}

// DrawLine rasterises a line onto the ground plane.
func (t *Terminal) DrawLine(group string, start, end geo.Vec3, c Color, width float64) {
	cmd := Command{Kind: KindLine, Start: start, End: &end, Color: c, Size: width}
	t.groups[group] = append(t.groups[group], cmd)
	t.plot(cmd)
}

// ClearGroup forgets the group and redraws the rest.
func (t *Terminal) ClearGroup(group string) {
	if _, ok := t.groups[group]; !ok {
		return
	}
	delete(t.groups, group)
	t.redraw()
}

// Show flushes pending cells to the terminal.
func (t *Terminal) Show() {
	t.screen.Show()
}

func (t *Terminal) redraw() {
	t.screen.Clear()
	for _, m := range t.markers {
		t.set(m.Pos, m.Rune, m.Color)
	}
	names := make([]string, 0, len(t.groups))
	for name := range t.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, cmd := range t.groups[name] {
			t.plot(cmd)
		}
	}
}

func (t *Terminal) plot(cmd Command) {
	switch cmd.Kind {
	case KindPoint:
		r := '.'
		if cmd.Size >= 0.5 {
			r = 'o'
		}
		t.set(cmd.Start, r, cmd.Color)
	case KindLine:
		t.line(cmd.Start, *cmd.End, cmd.Color)
	}
}

// line walks the segment cell by cell without overwriting existing glyphs,
// so dots stay visible on top of their line.
func (t *Terminal) line(a, b geo.Vec3, c Color) {
	x0, y0, _ := t.Project(a)
	x1, y1, _ := t.Project(b)
	steps := max(abs(x1-x0), abs(y1-y0))
	w, h := t.screen.Size()
	style := tcell.StyleDefault.Foreground(toTcell(c))
	for i := 0; i <= steps; i++ {
		f := 0.0
		if steps > 0 {
			f = float64(i) / float64(steps)
		}
		x := x0 + int(math.Round(float64(x1-x0)*f))
		y := y0 + int(math.Round(float64(y1-y0)*f))
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		if mainc, _, _, _ := t.screen.GetContent(x, y); mainc != ' ' && mainc != 0 {
			continue
		}
		t.screen.SetContent(x, y, '-', nil, style)
	}
}

func (t *Terminal) set(p geo.Vec3, r rune, c Color) {
	x, y, ok := t.Project(p)
	if !ok {
		return
	}
	t.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(toTcell(c)))
}

func toTcell(c Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(r, g, b)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
