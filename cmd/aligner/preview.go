package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/render"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/scene"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/snap"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/world"
)

type previewOptions struct {
	X, Z  float64
	Scale float64
}

// outlineSegments is the vertex count of a drawn footprint outline.
const outlineSegments = 24

var kindGlyphs = map[scene.Kind]rune{
	scene.KindModule:        'M',
	scene.KindConnectionHub: 'H',
	scene.KindLandingPad:    'P',
	scene.KindDecoration:    'D',
}

// preview drives an overlay from keyboard input:
// arrows move the cursor, space toggles placing, a toggles the align
// modifier, enter commits, q or esc quits.
type preview struct {
	screen    tcell.Screen
	term      *render.Terminal
	world     *world.World
	worldCfg  config.World
	overlay   *snap.Overlay
	placement scene.Placement

	cursor  geo.Vec3
	snapped geo.Vec3
	step    float64
	placing bool
	held    bool
	status  string
}

func runPreview(projectPath string, opts previewOptions) error {
	p, err := loadValid(os.Stderr, projectPath)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	pv, err := newPreview(screen, p, opts)
	if err != nil {
		return err
	}
	defer pv.overlay.Close()

	pv.draw()
	for {
		if !pv.handle(screen.PollEvent()) {
			return nil
		}
	}
}

func newPreview(screen tcell.Screen, p *project, opts previewOptions) (*preview, error) {
	w, err := world.FromScene(p.scene, p.cfg.World)
	if err != nil {
		return nil, err
	}
	w.StopPlacing()

	placement := scene.Placement{Kind: scene.KindModule}
	if p.scene.Placing != nil {
		placement = *p.scene.Placing
	}

	term := render.NewTerminal(screen, geo.Pt(opts.X, opts.Z), opts.Scale)
	overlay, err := snap.NewOverlay(*p.cfg, w, term)
	if err != nil {
		return nil, err
	}

	cursor := geo.V(opts.X, p.cfg.World.FloorHeight, opts.Z)
	step := opts.Scale
	if step <= 0 {
		step = 1
	}
	return &preview{
		screen:    screen,
		term:      term,
		world:     w,
		worldCfg:  p.cfg.World,
		overlay:   overlay,
		placement: placement,
		cursor:    cursor,
		snapped:   cursor,
		step:      step,
	}, nil
}

// handle applies one event and reports whether the preview keeps running.
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			p.move(0, p.step*2)
		case tcell.KeyDown:
			p.move(0, -p.step*2)
		case tcell.KeyLeft:
			p.move(-p.step, 0)
		case tcell.KeyRight:
			p.move(p.step, 0)
		case tcell.KeyEnter:
			p.commit()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				p.setPlacing(!p.placing)
			case 'a':
				p.held = !p.held
				p.overlay.OnModifierChanged(p.held)
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}

	p.tick()
	p.draw()
	return true
}

func (p *preview) move(dx, dz float64) {
	p.cursor = p.cursor.Add(geo.V(dx, 0, dz))
}

func (p *preview) setPlacing(on bool) {
	if on {
		p.world.StartPlacing(p.placement)
	} else {
		p.world.StopPlacing()
	}
	p.placing = on
	p.overlay.OnModeChanged(on)
}

func (p *preview) tick() {
	p.snapped = p.overlay.OnFrameTick(p.cursor)
	p.world.MoveActive(p.snapped)
}

func (p *preview) commit() {
	if !p.overlay.Active() {
		p.status = "not placing"
		return
	}
	placed, err := p.world.Commit(p.snapped)
	if err != nil {
		p.status = err.Error()
		return
	}
	p.status = fmt.Sprintf("placed %s at (%.1f, %.1f)", placed.Kind(), placed.Position().X, placed.Position().Z)
	p.setPlacing(false)
}

func (p *preview) markers() []render.Marker {
	var markers []render.Marker
	placed := p.world.Scene("").Structures
	for _, s := range placed {
		for _, v := range s.Footprint(p.worldCfg).Outline(outlineSegments).Vertices {
			markers = append(markers, render.Marker{Pos: v.At(s.Position.Y), Rune: '#', Color: render.Green})
		}
	}
	for _, s := range placed {
		glyph, ok := kindGlyphs[s.Kind]
		if !ok {
			glyph = '?'
		}
		markers = append(markers, render.Marker{Pos: s.Position, Rune: glyph, Color: render.White})
	}
	markers = append(markers, render.Marker{Pos: p.cursor, Rune: '+', Color: render.Yellow})
	if p.placing {
		markers = append(markers, render.Marker{Pos: p.snapped, Rune: '@', Color: render.Cyan})
	}
	return markers
}

func (p *preview) draw() {
	p.term.SetMarkers(p.markers())

	mode := "browse"
	if p.placing {
		mode = "placing " + string(p.placement.Kind)
	}
	line := fmt.Sprintf("%s | modifier %v | cursor (%.1f, %.1f) -> (%.1f, %.1f) | %s",
		mode, p.held, p.cursor.X, p.cursor.Z, p.snapped.X, p.snapped.Z, p.status)
	_, h := p.screen.Size()
	for i, r := range line {
		p.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault)
	}
	p.term.Show()
}
