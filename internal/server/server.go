package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mwestlake/chordstand/internal/models"
	"github.com/mwestlake/chordstand/internal/shared"
)

// SongStore is the persistence surface the API needs.
//
// Satisfied by [repositories.SongRepository]; tests substitute stubs.
type SongStore interface {
	Create(song *models.StoredSong) error
	Get(id string) (*models.StoredSong, error)
	Update(song *models.StoredSong) error
	Delete(id string) error
	List(criteria map[string]any) ([]*models.StoredSong, error)
}

// Server is the HTTP API for the song library and renderer.
type Server struct {
	router chi.Router
	songs  SongStore
	logger *log.Logger
	cfg    shared.ServerConfig
}

// NewServer creates and configures the HTTP API.
func NewServer(songs SongStore, logger *log.Logger, cfg shared.ServerConfig) *Server {
	s := &Server{
		songs:  songs,
		logger: logger,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))
	if s.cfg.RateLimit > 0 {
		r.Use(RateLimit(s.cfg.RateLimit))
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/songs", s.handleListSongs)
		r.Post("/songs", s.handleCreateSong)
		r.Get("/songs/{id}", s.handleGetSong)
		r.Put("/songs/{id}", s.handleUpdateSong)
		r.Delete("/songs/{id}", s.handleDeleteSong)

		r.Get("/songs/{id}/render", s.handleRenderSong)
		r.Get("/songs/{id}/chords", s.handleSongChords)

		r.Get("/diagrams/{chord}.svg", s.handleDiagram)
		r.Get("/instruments", s.handleListInstruments)
	})

	s.router = r
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
