package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/mwestlake/chordstand/internal/diagrams"
	"github.com/mwestlake/chordstand/internal/instruments"
	"github.com/mwestlake/chordstand/internal/models"
	"github.com/mwestlake/chordstand/internal/shared"
	"github.com/mwestlake/chordstand/internal/viewer"
)

// songPayload is the wire representation of a library entry.
type songPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist,omitempty"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// songInput is the request body for create and update operations.
type songInput struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Content string `json:"content"`
}

func toPayload(song *models.StoredSong, includeContent bool) songPayload {
	p := songPayload{
		ID:        song.ID(),
		Title:     song.Title(),
		Artist:    song.Artist(),
		CreatedAt: song.CreatedAt(),
		UpdatedAt: song.UpdatedAt(),
	}
	if includeContent {
		p.Content = song.Content()
	}
	return p
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	criteria := map[string]any{}
	if artist := r.URL.Query().Get("artist"); artist != "" {
		criteria["artist"] = artist
	}

	songs, err := s.songs.List(criteria)
	if err != nil {
		s.logger.Error("failed to list songs", "err", err)
		jsonError(w, "failed to list songs", http.StatusInternalServerError)
		return
	}

	payloads := make([]songPayload, 0, len(songs))
	for _, song := range songs {
		payloads = append(payloads, toPayload(song, false))
	}

	writeJSON(w, http.StatusOK, map[string]any{"songs": payloads})
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var input songInput
	if err := decodeBody(r.Body, &input); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	song := models.NewStoredSong(input.Title, input.Artist, input.Content)
	if err := s.songs.Create(song); err != nil {
		jsonError(w, "failed to create song: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, toPayload(song, true))
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, ok := s.lookupSong(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPayload(song, true))
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	song, ok := s.lookupSong(w, r)
	if !ok {
		return
	}

	var input songInput
	if err := decodeBody(r.Body, &input); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if input.Title != "" {
		song.SetTitle(input.Title)
	}
	if input.Artist != "" {
		song.SetArtist(input.Artist)
	}
	if input.Content != "" {
		song.SetContent(input.Content)
	}

	if err := s.songs.Update(song); err != nil {
		jsonError(w, "failed to update song: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, toPayload(song, true))
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.songs.Delete(id); err != nil {
		if errors.Is(err, shared.ErrSongNotFound) {
			jsonError(w, "song not found", http.StatusNotFound)
			return
		}
		s.logger.Error("failed to delete song", "id", id, "err", err)
		jsonError(w, "failed to delete song", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderSong formats a stored song's body.
//
// Query parameters map onto the view options: format=html|text,
// chords=1 shows the chord panel, position=top|right|bottom,
// instrument selects the diagram instrument.
func (s *Server) handleRenderSong(w http.ResponseWriter, r *http.Request) {
	song, ok := s.lookupSong(w, r)
	if !ok {
		return
	}

	opts := viewer.DefaultOptions()
	opts.Content = song.Content()

	q := r.URL.Query()
	if f := q.Get("format"); f != "" {
		mode, err := viewer.ParseMode(f)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.Format = mode
	}
	if p := q.Get("position"); p != "" {
		pos, err := viewer.ParsePosition(p)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.ChordPosition = pos
	}
	if inst := q.Get("instrument"); inst != "" {
		if !instruments.IsSupported(inst) {
			jsonError(w, "unknown instrument: "+inst, http.StatusBadRequest)
			return
		}
		opts.Instrument = inst
	}
	opts.ShowChords = q.Get("chords") == "1" || q.Get("chords") == "true"

	v := viewer.New(opts, nil, s.logger)
	render := v.Render()

	writeJSON(w, http.StatusOK, map[string]any{
		"body":       render.Body,
		"chords":     render.Chords,
		"show_panel": render.ShowPanel,
		"position":   render.Position,
		"instrument": render.Instrument,
		"format":     render.Mode,
	})
}

// handleSongChords returns the deduplicated sorted chord names for a song.
func (s *Server) handleSongChords(w http.ResponseWriter, r *http.Request) {
	song, ok := s.lookupSong(w, r)
	if !ok {
		return
	}

	opts := viewer.DefaultOptions()
	opts.Content = song.Content()
	render := viewer.New(opts, nil, s.logger).Render()

	writeJSON(w, http.StatusOK, map[string]any{"chords": render.Chords})
}

// handleDiagram serves a chord diagram as SVG.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	chord := chi.URLParam(r, "chord")

	inst := instruments.Default()
	if name := r.URL.Query().Get("instrument"); name != "" {
		found, err := instruments.Lookup(name)
		if err != nil {
			jsonError(w, "unknown instrument: "+name, http.StatusBadRequest)
			return
		}
		inst = found
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := diagrams.RenderSVG(w, inst, chord); err != nil {
		s.logger.Error("failed to render diagram", "chord", chord, "err", err)
	}
}

func (s *Server) handleListInstruments(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	for _, inst := range instruments.All() {
		names = append(names, inst.Name)
	}
	writeJSON(w, http.StatusOK, map[string]any{"instruments": names})
}

// lookupSong fetches the song named by the {id} URL parameter, writing the
// error response itself when the lookup fails.
func (s *Server) lookupSong(w http.ResponseWriter, r *http.Request) (*models.StoredSong, bool) {
	id := chi.URLParam(r, "id")

	song, err := s.songs.Get(id)
	if err != nil {
		if errors.Is(err, shared.ErrSongNotFound) {
			jsonError(w, "song not found", http.StatusNotFound)
			return nil, false
		}
		s.logger.Error("failed to get song", "id", id, "err", err)
		jsonError(w, "failed to get song", http.StatusInternalServerError)
		return nil, false
	}

	return song, true
}

func decodeBody(body io.Reader, v any) error {
	return json.NewDecoder(body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
