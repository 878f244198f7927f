package moderation

import (
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"canvas-art-backend/internal/auth"
	"canvas-art-backend/internal/models"
)

// NoteFilter narrows note listings. A nil Resolved matches both states.
type NoteFilter struct {
	Page     string
	Resolved *bool
}

// NoteRepository is the persistence contract for feedback notes.
// Implementations return models.ErrNotFound for a missing id.
type NoteRepository interface {
	InsertNote(note *models.Note) error
	GetNote(noteID uuid.UUID) (*models.Note, error)
	ListNotes(filter NoteFilter) ([]models.Note, error)
	UpdateNoteResolution(note *models.Note) error
	DeleteNote(noteID uuid.UUID) error
}

// NoteService is the sticky-note feedback ledger. Creation and resolution
// require curator or above; deletion requires admin or above. Every gate
// goes through auth.HasAccess — the same check the route middleware uses.
type NoteService struct {
	repo NoteRepository
}

func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// Create appends an unresolved note. Positions are clamped into [0,100]
// before anything is written.
func (s *NoteService) Create(authorID uuid.UUID, authorRole auth.Role, req models.CreateNoteRequest) (*models.Note, error) {
	if !auth.HasAccess(authorRole, auth.RoleCurator) {
		return nil, fmt.Errorf("%w: creating notes requires curator", models.ErrForbidden)
	}
	if utf8.RuneCountInString(req.Content) > models.MaxNoteContentLength {
		return nil, fmt.Errorf("%w: note content exceeds %d characters", models.ErrValidation, models.MaxNoteContentLength)
	}
	if !models.ValidNoteColor(req.Color) {
		return nil, fmt.Errorf("%w: unknown note color %q", models.ErrValidation, req.Color)
	}

	note := &models.Note{
		ID:         uuid.New(),
		Content:    req.Content,
		AuthorID:   authorID,
		AuthorRole: authorRole,
		Page:       req.Page,
		PositionX:  clampPercent(req.PositionX),
		PositionY:  clampPercent(req.PositionY),
		Color:      req.Color,
		Resolved:   false,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.InsertNote(note); err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}
	return note, nil
}

// Resolve sets or clears the resolved flag. Resolving stamps ResolvedBy
// and ResolvedAt together; reopening clears both together, never leaving
// them half-set.
func (s *NoteService) Resolve(noteID uuid.UUID, resolved bool, byID uuid.UUID, byRole auth.Role) (*models.Note, error) {
	if !auth.HasAccess(byRole, auth.RoleCurator) {
		return nil, fmt.Errorf("%w: resolving notes requires curator", models.ErrForbidden)
	}

	note, err := s.repo.GetNote(noteID)
	if err != nil {
		return nil, err
	}

	note.Resolved = resolved
	if resolved {
		note.ResolvedBy = sql.NullString{String: byID.String(), Valid: true}
		note.ResolvedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	} else {
		note.ResolvedBy = sql.NullString{}
		note.ResolvedAt = sql.NullTime{}
	}

	if err := s.repo.UpdateNoteResolution(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// Delete removes a note permanently. Admin or above only.
func (s *NoteService) Delete(noteID uuid.UUID, byRole auth.Role) error {
	if !auth.HasAccess(byRole, auth.RoleAdmin) {
		return fmt.Errorf("%w: deleting notes requires admin", models.ErrForbidden)
	}
	return s.repo.DeleteNote(noteID)
}

// List returns notes matching the filter. Notes are shared across the
// editorial team, so any curator or above sees all of them.
func (s *NoteService) List(byRole auth.Role, filter NoteFilter) ([]models.Note, error) {
	if !auth.HasAccess(byRole, auth.RoleCurator) {
		return nil, fmt.Errorf("%w: listing notes requires curator", models.ErrForbidden)
	}
	return s.repo.ListNotes(filter)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
