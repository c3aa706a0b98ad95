package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/scene"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/snap"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/validation"
)

// Server is the host bridge: it serves a project's scene over HTTP and runs
// one overlay session per websocket connection.
type Server struct {
	projectPath string
	port        int
	cfg         *config.Config
	scene       *scene.Scene
	router      *mux.Router
	http        *http.Server
}

// New loads the project and builds the router. The config must be valid.
func New(projectPath string, port int) (*Server, error) {
	cfg, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := validation.ValidateConfig(cfg).Err(); err != nil {
		return nil, err
	}
	sc, err := scene.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	s := &Server{
		projectPath: projectPath,
		port:        port,
		cfg:         cfg,
		scene:       sc,
		router:      mux.NewRouter(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.HandleFunc("/ws/overlay", s.handleOverlay)

	s.router.HandleFunc("/api/config", s.handleConfig).Methods("GET")
	s.router.HandleFunc("/api/scene", s.handleScene).Methods("GET")
	s.router.HandleFunc("/api/validation", s.handleValidation).Methods("GET")
	s.router.HandleFunc("/api/grid/{id}", s.handleGrid).Methods("GET")
	s.router.HandleFunc("/api/resolve", s.handleResolve).Methods("POST")
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start launches the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Aligner server starting on http://localhost%s", addr)
	log.Printf("Project: %s (%d structures)", s.projectPath, len(s.scene.Structures))

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a running server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Building Aligner</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Building Aligner</h1>
<p>Connect a host to <code>/ws/overlay</code> to stream frame ticks.</p>
</div>
</body></html>`)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.scene)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	report := validation.ValidateConfig(s.cfg)
	report.Merge(scene.ValidateScene(s.scene, s.cfg))
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	st, ok := s.scene.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("structure %q not found", id))
		return
	}
	grid, err := snap.GenerateGrid(st.Position, st.Forward(), s.cfg.Grid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"structure": st,
		"grid":      grid,
	})
}

type resolveRequest struct {
	X    float64    `json:"x"`
	Z    float64    `json:"z"`
	Kind scene.Kind `json:"kind,omitempty"`
	Size *int       `json:"size,omitempty"`
	Ray  *ray       `json:"ray,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	sess, err := newSession(*s.cfg, s.scene, log.Default())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer sess.close()

	sess.handle(clientMessage{Type: msgMode, Placing: true, Kind: req.Kind, Size: req.Size})
	sess.handle(clientMessage{Type: msgModifier, Held: true})
	loc := geo.V(req.X, s.cfg.World.FloorHeight, req.Z)
	reply := sess.handle(clientMessage{Type: msgTick, Location: &loc, Ray: req.Ray})
	if reply.Type == msgError {
		writeJSON(w, http.StatusUnprocessableEntity, reply)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
