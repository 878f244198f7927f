package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"canvas-art-backend/internal/auth"
)

type NoteColor string

const (
	NoteColorYellow NoteColor = "yellow"
	NoteColorPink   NoteColor = "pink"
	NoteColorBlue   NoteColor = "blue"
	NoteColorGreen  NoteColor = "green"
	NoteColorOrange NoteColor = "orange"
)

var noteColors = map[NoteColor]bool{
	NoteColorYellow: true,
	NoteColorPink:   true,
	NoteColorBlue:   true,
	NoteColorGreen:  true,
	NoteColorOrange: true,
}

func ValidNoteColor(c NoteColor) bool {
	return noteColors[c]
}

// MaxNoteContentLength caps the feedback text, in characters.
const MaxNoteContentLength = 500

// Note is a sticky-note annotation pinned to a storefront page by the
// editorial team. Positions are percentages of the viewport, clamped to
// [0,100]. ResolvedBy and ResolvedAt are set together when resolving and
// cleared together when reopening, never left half-set.
type Note struct {
	ID         uuid.UUID
	Content    string
	AuthorID   uuid.UUID
	AuthorRole auth.Role
	Page       string
	PositionX  float64
	PositionY  float64
	Color      NoteColor
	Resolved   bool
	ResolvedBy sql.NullString
	ResolvedAt sql.NullTime
	CreatedAt  time.Time
}
