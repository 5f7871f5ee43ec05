// Package server exposes the public review surface: the endpoint a
// client lands on when they follow an influencer's review link.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/shootdeck/shootdeck/internal/review"
)

type Server struct {
	Server *http.Server
	log    *zerolog.Logger
}

func New(addr, allowedOrigin string, flow *review.Flow, log *zerolog.Logger) *Server {
	s := &Server{
		Server: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}

	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)
	r.HandleFunc("/health", s.healthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	reviews := NewReviewHandler(flow, log)
	api.HandleFunc("/reviews/{token}", reviews.ResolveToken).Methods("GET")
	api.HandleFunc("/reviews/{token}", reviews.SubmitReview).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.Server.Handler = c.Handler(r)

	return s
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.Server.Addr).Msg("review server listening")
	return s.Server.ListenAndServe()
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
