package server

import (
	"errors"
	"fmt"
	"log"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/render"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/scene"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/snap"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/world"
)

// Message types exchanged with a host.
const (
	msgMode     = "mode"
	msgModifier = "modifier"
	msgTick     = "tick"
	msgCommit   = "commit"
	msgReset    = "reset"

	msgAck       = "ack"
	msgSnap      = "snap"
	msgCommitted = "committed"
	msgError     = "error"
)

var errRayMissed = errors.New("ray does not hit the floor")

type ray struct {
	Origin    geo.Vec3 `json:"origin"`
	Direction geo.Vec3 `json:"direction"`
}

// clientMessage is one host event. Which fields matter depends on Type.
type clientMessage struct {
	Type     string     `json:"type"`
	Placing  bool       `json:"placing,omitempty"`
	Held     bool       `json:"held,omitempty"`
	Kind     scene.Kind `json:"kind,omitempty"`
	Size     *int       `json:"size,omitempty"`
	Location *geo.Vec3  `json:"location,omitempty"`
	Ray      *ray       `json:"ray,omitempty"`
}

type serverMessage struct {
	Type      string           `json:"type"`
	Active    bool             `json:"active"`
	Result    *snap.Result     `json:"result,omitempty"`
	Commands  []render.Command `json:"commands,omitempty"`
	Stats     *snap.Stats      `json:"stats,omitempty"`
	Structure *scene.Structure `json:"structure,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// session is one host connection: its own world copy, overlay and recorded
// draw state. Messages must be handled one at a time.
type session struct {
	group    string
	world    *world.World
	rec      *render.Recorder
	overlay  *snap.Overlay
	defaults scene.Placement

	last    geo.Vec3
	snapped bool
}

func newSession(cfg config.Config, sc *scene.Scene, logger *log.Logger) (*session, error) {
	w, err := world.FromScene(sc, cfg.World)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	// Placement starts with a mode message.
	w.StopPlacing()

	defaults := scene.Placement{Kind: scene.KindModule}
	if sc.Placing != nil {
		defaults = *sc.Placing
	}

	rec := render.NewRecorder()
	o, err := snap.NewOverlay(cfg, w, rec, snap.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &session{
		group:    cfg.Overlay.Group,
		world:    w,
		rec:      rec,
		overlay:  o,
		defaults: defaults,
	}, nil
}

func (s *session) handle(msg clientMessage) serverMessage {
	switch msg.Type {
	case msgMode:
		if msg.Placing {
			p := s.defaults
			if msg.Kind != "" {
				p.Kind = msg.Kind
			}
			if msg.Size != nil {
				p.Size = *msg.Size
			}
			s.world.StartPlacing(p)
		} else {
			s.world.StopPlacing()
		}
		s.overlay.OnModeChanged(msg.Placing)
		s.snapped = false
		return s.ack()
	case msgModifier:
		s.overlay.OnModifierChanged(msg.Held)
		return s.ack()
	case msgReset:
		s.overlay.Reset()
		return s.ack()
	case msgTick:
		return s.tick(msg)
	case msgCommit:
		return s.commit()
	default:
		return s.fail(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (s *session) tick(msg clientMessage) serverMessage {
	loc, err := s.location(msg)
	if err != nil {
		return s.fail(err)
	}

	res, err := s.overlay.ResolveDetailed(loc)
	s.world.MoveActive(res.Point)
	s.last = res.Point
	s.snapped = s.overlay.Active() && err == nil

	stats := s.overlay.Stats()
	reply := serverMessage{
		Type:     msgSnap,
		Active:   s.overlay.Active(),
		Result:   &res,
		Commands: s.rec.Commands(s.group),
		Stats:    &stats,
	}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply
}

func (s *session) location(msg clientMessage) (geo.Vec3, error) {
	switch {
	case msg.Ray != nil:
		hit, ok := s.world.CursorHit(msg.Ray.Origin, msg.Ray.Direction)
		if !ok {
			return geo.Vec3{}, errRayMissed
		}
		return hit, nil
	case msg.Location != nil:
		return *msg.Location, nil
	default:
		return geo.Vec3{}, errors.New("tick needs a location or a ray")
	}
}

func (s *session) commit() serverMessage {
	if !s.snapped {
		return s.fail(errors.New("nothing to commit; send a tick while placing first"))
	}
	placed, err := s.world.Commit(s.last)
	if err != nil {
		return s.fail(err)
	}
	s.overlay.OnModeChanged(false)
	s.snapped = false

	st := placed.Scene()
	reply := s.ack()
	reply.Type = msgCommitted
	reply.Structure = &st
	return reply
}

func (s *session) ack() serverMessage {
	stats := s.overlay.Stats()
	return serverMessage{Type: msgAck, Active: s.overlay.Active(), Stats: &stats}
}

func (s *session) fail(err error) serverMessage {
	return serverMessage{Type: msgError, Active: s.overlay.Active(), Error: err.Error()}
}

func (s *session) close() {
	s.overlay.Close()
}
