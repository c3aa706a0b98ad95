package world

import (
	"fmt"
	"math"
	"testing"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/render"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/scene"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/snap"
)

// baseOfSize lays n structures on a spiral 25 units apart, roughly the
// spacing of a connected base.
func baseOfSize(n int) *scene.Scene {
	s := &scene.Scene{Placing: &scene.Placement{Kind: scene.KindModule, Size: 1}}
	for i := range n {
		angle := float64(i) * 2.4
		r := 25 * math.Sqrt(float64(i))
		s.Structures = append(s.Structures, scene.Structure{
			ID:       fmt.Sprintf("s%d", i),
			Kind:     scene.KindModule,
			Position: geo.V(r*math.Cos(angle), 0, r*math.Sin(angle)),
			Yaw:      float64(i * 37 % 360),
			Size:     i % 3,
		})
	}
	return s
}

func newBenchOverlay(tb testing.TB, n int) *snap.Overlay {
	tb.Helper()
	w, err := FromScene(baseOfSize(n), config.Default().World)
	if err != nil {
		tb.Fatal(err)
	}
	o, err := snap.NewOverlay(config.Default(), w, &render.Counter{})
	if err != nil {
		tb.Fatal(err)
	}
	o.OnModeChanged(true)
	return o
}

func TestLargeBase(t *testing.T) {
	o := newBenchOverlay(t, 200)
	for i := range 50 {
		o.OnFrameTick(geo.V(float64(i), 0, float64(i)*0.5))
	}
	stats := o.Stats()
	if stats.QueryMisses != 50 {
		t.Errorf("QueryMisses = %d, want 50", stats.QueryMisses)
	}
	if stats.GridsGenerated != stats.GridsCached {
		t.Errorf("grids regenerated: %d generated, %d cached", stats.GridsGenerated, stats.GridsCached)
	}
	t.Logf("200 structures: %d grids cached after 50 frames", stats.GridsCached)
}

func BenchmarkGenerateGrid(b *testing.B) {
	cfg := config.Default().Grid
	for b.Loop() {
		snap.GenerateGrid(geo.V(10, 0, 10), geo.Forward, cfg)
	}
}

func BenchmarkFrameTickMiss(b *testing.B) {
	o := newBenchOverlay(b, 100)
	i := 0
	for b.Loop() {
		i++
		o.OnFrameTick(geo.V(float64(i%40), 0, 0))
	}
}

func BenchmarkFrameTickHit(b *testing.B) {
	o := newBenchOverlay(b, 100)
	o.OnFrameTick(geo.V(5, 0, 5))
	for b.Loop() {
		o.OnFrameTick(geo.V(5, 0, 5))
	}
}
