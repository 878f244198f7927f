package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"canvas-art-backend/internal/auth"
	"canvas-art-backend/internal/middleware"
	"canvas-art-backend/internal/models"
	"canvas-art-backend/internal/moderation"
)

type NotesHandler struct {
	notes *moderation.NoteService
}

func NewNotesHandler(notes *moderation.NoteService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

func callerRole(c *gin.Context) auth.Role {
	roleStr, _ := c.Get(middleware.RoleKey)
	role, _ := roleStr.(string)
	return auth.Role(role)
}

// CreateNote godoc
// @Summary     Pin a feedback note to a page
// @Description Creates a sticky-note annotation. Positions are percentages and get clamped into [0,100]; content is capped at 500 characters.
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateNoteRequest true "Note"
// @Success     201 {object} models.NoteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /notes [post]
func (h *NotesHandler) CreateNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	note, err := h.notes.Create(userID, callerRole(c), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewNoteResponse(note))
}

// ListNotes godoc
// @Summary     List feedback notes
// @Tags        notes
// @Produce     json
// @Security    Bearer
// @Param       page query string false "Filter by page path"
// @Param       resolved query bool false "Filter by resolved state"
// @Success     200 {object} models.NoteListResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /notes [get]
func (h *NotesHandler) ListNotes(c *gin.Context) {
	filter := moderation.NoteFilter{Page: c.Query("page")}
	if raw := c.Query("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid resolved filter"})
			return
		}
		filter.Resolved = &resolved
	}

	notes, err := h.notes.List(callerRole(c), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := models.NoteListResponse{Notes: make([]models.NoteResponse, len(notes))}
	for i := range notes {
		resp.Notes[i] = models.NewNoteResponse(&notes[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ResolveNote godoc
// @Summary     Resolve or reopen a note
// @Description Resolving stamps resolved_by/resolved_at together; reopening clears both.
// @Tags        notes
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       note_id path string true "Note ID (UUID)"
// @Param       request body models.ResolveNoteRequest true "Resolved flag"
// @Success     200 {object} models.NoteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /notes/{note_id}/resolve [patch]
func (h *NotesHandler) ResolveNote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid note id"})
		return
	}

	var req models.ResolveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	note, err := h.notes.Resolve(noteID, *req.Resolved, userID, callerRole(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewNoteResponse(note))
}

// DeleteNote godoc
// @Summary     Delete a note
// @Description Admin or above only.
// @Tags        notes
// @Produce     json
// @Security    Bearer
// @Param       note_id path string true "Note ID (UUID)"
// @Success     200 {object} map[string]string "message"
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /notes/{note_id} [delete]
func (h *NotesHandler) DeleteNote(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid note id"})
		return
	}

	if err := h.notes.Delete(noteID, callerRole(c)); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "note deleted"})
}
