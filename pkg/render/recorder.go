package render

import "github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"

// Kind identifies a recorded draw call.
type Kind string

// Draw call kinds.
const (
	KindPoint Kind = "point"
	KindLine  Kind = "line"
)

// Command is one recorded draw call. End is only set for lines; Size holds
// the point size or the line width.
type Command struct {
	Kind  Kind      `json:"kind"`
	Start geo.Vec3  `json:"start"`
	End   *geo.Vec3 `json:"end,omitempty"`
	Color Color     `json:"color"`
	Size  float64   `json:"size"`
}

// Recorder keeps the live contents of every group in draw order.
// The dev server ships these to the browser renderer.
type Recorder struct {
	groups map[string][]Command
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{groups: make(map[string][]Command)}
}

// DrawPoint appends a point to group.
func (r *Recorder) DrawPoint(group string, pos geo.Vec3, c Color, size float64) {
	r.groups[group] = append(r.groups[group], Command{Kind: KindPoint, Start: pos, Color: c, Size: size})
}

// DrawLine appends a line to group.
func (r *Recorder) DrawLine(group string, start, end geo.Vec3, c Color, width float64) {
	r.groups[group] = append(r.groups[group], Command{Kind: KindLine, Start: start, End: &end, Color: c, Size: width})
}

// ClearGroup drops everything drawn into group.
func (r *Recorder) ClearGroup(group string) {
	delete(r.groups, group)
}

// Commands returns the current contents of a group.
func (r *Recorder) Commands(group string) []Command {
	return r.groups[group]
}

// Count returns how many commands of kind the group holds.
func (r *Recorder) Count(group string, kind Kind) int {
	n := 0
	for _, c := range r.groups[group] {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Counter counts calls without keeping them.
type Counter struct {
	Points int
	Lines  int
	Clears int
}

// DrawPoint counts a point.
func (c *Counter) DrawPoint(string, geo.Vec3, Color, float64) { c.Points++ }

// DrawLine counts a line.
func (c *Counter) DrawLine(string, geo.Vec3, geo.Vec3, Color, float64) { c.Lines++ }

// ClearGroup counts a clear.
func (c *Counter) ClearGroup(string) { c.Clears++ }

// Calls returns the total number of calls seen.
func (c *Counter) Calls() int {
	return c.Points + c.Lines + c.Clears
}
