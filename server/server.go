package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"fret-focus/debug"
	"fret-focus/game"
	"fret-focus/notation"
	"fret-focus/theme"
)

// Server exposes one trainer session as a JSON API for a browser front-end.
// Requests are serialised by mu, so each handler sees and replaces a whole state.
type Server struct {
	mu     sync.Mutex
	engine *game.Engine
	state  game.State
	theme  *theme.Theme
	staff  notation.Renderer
	router *mux.Router
}

func New(engine *game.Engine, state game.State, th *theme.Theme) *Server {
	s := &Server{
		engine: engine,
		state:  state,
		theme:  th,
		staff:  notation.TextStaff{},
		router: mux.NewRouter().StrictSlash(true),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(logRequests)
	s.router.HandleFunc("/state", s.handleState).Methods("GET")
	s.router.HandleFunc("/toggle", s.handleToggle).Methods("POST")
	s.router.HandleFunc("/submit", s.handleSubmit).Methods("POST")
	s.router.HandleFunc("/next", s.handleNext).Methods("POST")
	s.router.HandleFunc("/mode", s.handleMode).Methods("POST")
	s.router.HandleFunc("/count", s.handleCount).Methods("POST")
	s.router.HandleFunc("/display", s.handleDisplay).Methods("POST")
}

// Handler returns the router wrapped with CORS for the given origins
func (s *Server) Handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string, origins []string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(origins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// State returns a snapshot of the session
func (s *Server) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// dispatch applies actions under the lock and returns the resulting view
func (s *Server) dispatch(actions ...game.Action) StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		s.state = s.engine.Reduce(s.state, a)
	}
	return s.view()
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dispatch())
}

type toggleRequest struct {
	String *int `json:"string"`
	Fret   *int `json:"fret"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.String == nil || req.Fret == nil {
		writeError(w, http.StatusBadRequest, errors.New("string and fret are required"))
		return
	}
	pos := game.Position{String: *req.String, Fret: *req.Fret}
	if !pos.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("position %s is off the board", pos.Label()))
		return
	}
	// Clicks outside the window or after a reveal are ignored, not rejected
	writeJSON(w, http.StatusOK, s.dispatch(game.Toggle{Pos: pos}))
}

type submitRequest struct {
	Round string `json:"round"`
}

var errStaleRound = errors.New("round has already been replaced")

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	if req.Round != "" && req.Round != s.state.Round.ID {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, errStaleRound)
		return
	}
	s.state = s.engine.Reduce(s.state, game.Submit{})
	view := s.view()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dispatch(game.NextRound{}))
}

type modeRequest struct {
	Mode *game.Mode `json:"mode"`
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Mode == nil {
		writeError(w, http.StatusBadRequest, errors.New("mode is required"))
		return
	}
	writeJSON(w, http.StatusOK, s.dispatch(game.SetMode{Mode: *req.Mode}))
}

type countRequest struct {
	Count *int `json:"count"`
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Count == nil {
		writeError(w, http.StatusBadRequest, errors.New("count is required"))
		return
	}
	writeJSON(w, http.StatusOK, s.dispatch(game.SetCount{Count: *req.Count}))
}

type displayRequest struct {
	Staff       *bool             `json:"staff"`
	Hidden      *bool             `json:"hidden"`
	Accidentals *game.Accidentals `json:"accidentals"`
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	var req displayRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	cur := s.state.Settings
	if req.Staff != nil && *req.Staff != cur.Staff {
		s.state = s.engine.Reduce(s.state, game.ToggleStaff{})
	}
	if req.Hidden != nil && *req.Hidden != cur.Hidden {
		s.state = s.engine.Reduce(s.state, game.ToggleHidden{})
	}
	if req.Accidentals != nil {
		for i := 0; i < 3 && s.state.Settings.Accidentals != *req.Accidentals; i++ {
			s.state = s.engine.Reduce(s.state, game.CycleAccidentals{})
		}
	}
	view := s.view()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

// decode reads an optional JSON body; an empty body leaves v untouched
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		debug.Log("http", "encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		debug.Log("http", "%s %s (%s)", r.Method, r.URL.Path, debug.Since(start))
	})
}
