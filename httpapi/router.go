// Package httpapi serves the game over HTTP: JSON endpoints for moves,
// state, undo, and engine replies, plus a websocket feed for spectators.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Handler struct {
	store *Store
	log   zerolog.Logger
}

func NewRouter(log zerolog.Logger, store *Store) http.Handler {
	h := &Handler{store: store, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api/game/{gameID}", func(r chi.Router) {
		r.Get("/state", h.state)
		r.Post("/reset", h.reset)
		r.Post("/move", h.move)
		r.Get("/valid-moves", h.validMoves)
		r.Post("/undo", h.undo)
		r.Post("/ai-move", h.aiMove)
		r.Get("/check", h.check)
		r.Post("/import-pgn", h.importPGN)
		r.Get("/watch", h.watch)
	})

	return r
}

func gameID(r *http.Request) string {
	if id := chi.URLParam(r, "gameID"); id != "" {
		return id
	}
	return "default"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
