// Package api serves lens scoring over HTTP.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/history"
)

// Container holds the router's dependencies.
type Container struct {
	// Store is optional; without it scores are not saved and the runs
	// endpoints answer 503.
	Store       *history.Store
	Version     string
	DefaultRank assess.RankMode
	Logger      *log.Logger
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	lensHandler := NewLensHandler(c.Store, c.Version, c.DefaultRank)
	runHandler := NewRunHandler(c.Store)

	if c.Logger != nil {
		r.Use(loggingMiddleware(c.Logger))
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/lenses", lensHandler.List).Methods("GET")
	v1.HandleFunc("/lenses/{lens}", lensHandler.Get).Methods("GET")
	v1.HandleFunc("/lenses/{lens}/score", lensHandler.Score).Methods("POST")
	v1.HandleFunc("/runs", runHandler.List).Methods("GET")
	v1.HandleFunc("/runs/{id}", runHandler.Get).Methods("GET")

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
