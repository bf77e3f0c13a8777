// package models defines the data model for the chordstand song sheet toolkit
package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models in the song library.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Song is the structured representation of a parsed song sheet.
//
// A Song is recreated on every parse; consumers treat it as read-only.
type Song struct {
	Title    string
	Subtitle string
	Artist   string
	Key      string
	Capo     string
	Meta     map[string]string // remaining directives, keyed by directive name
	Lines    []Line
}

// Line is a single display row of a song body.
type Line struct {
	Section string // section the line belongs to ("" | "chorus")
	Comment string // non-empty for comment directive lines
	Items   []Item
}

// Item is a lyric fragment with an optional chord annotation anchored at its start.
type Item struct {
	Chord string
	Lyric string
}

// Empty reports whether the song carries no metadata and no body lines.
func (s *Song) Empty() bool {
	if s == nil {
		return true
	}
	return s.Title == "" && s.Subtitle == "" && s.Artist == "" && len(s.Meta) == 0 && len(s.Lines) == 0
}

// Lyrics returns the plain lyric text of a line with chord annotations stripped.
func (l Line) Lyrics() string {
	var b strings.Builder
	for _, it := range l.Items {
		b.WriteString(it.Lyric)
	}
	return b.String()
}

// StoredSong is a persisted library entry wrapping raw song text.
type StoredSong struct {
	id        string
	sequence  int
	title     string
	artist    string
	content   string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewStoredSong creates a library entry for the given raw song text.
//
// The ID is assigned by the repository on Create.
func NewStoredSong(title, artist, content string) *StoredSong {
	now := time.Now()
	return &StoredSong{
		title:     title,
		artist:    artist,
		content:   content,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *StoredSong) ID() string            { return s.id }
func (s *StoredSong) Sequence() int         { return s.sequence }
func (s *StoredSong) Title() string         { return s.title }
func (s *StoredSong) Artist() string        { return s.artist }
func (s *StoredSong) Content() string       { return s.content }
func (s *StoredSong) CreatedAt() time.Time  { return s.createdAt }
func (s *StoredSong) UpdatedAt() time.Time  { return s.updatedAt }
func (s *StoredSong) DeletedAt() *time.Time { return s.deletedAt }

func (s *StoredSong) SetID(id string)           { s.id = id }
func (s *StoredSong) SetSequence(seq int)       { s.sequence = seq }
func (s *StoredSong) SetTitle(title string)     { s.title = title }
func (s *StoredSong) SetArtist(artist string)   { s.artist = artist }
func (s *StoredSong) SetContent(content string) { s.content = content }
func (s *StoredSong) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *StoredSong) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *StoredSong) SetDeletedAt(t *time.Time) { s.deletedAt = t }

// Validate checks that the entry carries a title and content.
func (s *StoredSong) Validate() error {
	if strings.TrimSpace(s.title) == "" {
		return fmt.Errorf("stored song requires a title")
	}
	if strings.TrimSpace(s.content) == "" {
		return fmt.Errorf("stored song requires content")
	}
	return nil
}
