package app

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rest-core/restcore/internal/pagination"
	"github.com/rest-core/restcore/internal/render"
)

// Note is a demo record served by the sample routes.
type Note struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteHandler serves an in-memory demo collection so the envelope, throttle
// and pagination stack has something to wrap. Deliberately not a database.
type NoteHandler struct {
	renderer *render.Renderer

	mu     sync.Mutex
	nextID uint64
	notes  []Note
}

// NewNoteHandler constructs a NoteHandler.
func NewNoteHandler(renderer *render.Renderer) *NoteHandler {
	return &NoteHandler{renderer: renderer, nextID: 1}
}

// List returns one page of notes.
func (h *NoteHandler) List(c *gin.Context) {
	h.mu.Lock()
	snapshot := make([]Note, len(h.notes))
	copy(snapshot, h.notes)
	h.mu.Unlock()

	page, errPaginate := pagination.Paginate(c, snapshot, pagination.FromRequest(c))
	if errPaginate != nil {
		c.Status(http.StatusNotFound)
		_ = c.Error(errPaginate)
		return
	}
	h.renderer.Success(c, http.StatusOK, "", page)
}

type createNoteRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

// Create stores a new note.
func (h *NoteHandler) Create(c *gin.Context) {
	var req createNoteRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.Status(http.StatusBadRequest)
		_ = c.Error(errBind)
		return
	}

	h.mu.Lock()
	note := Note{ID: h.nextID, Title: req.Title, Body: req.Body, CreatedAt: time.Now().UTC()}
	h.nextID++
	h.notes = append(h.notes, note)
	h.mu.Unlock()

	h.renderer.Success(c, http.StatusCreated, "", note)
}

// Get returns a single note by id.
func (h *NoteHandler) Get(c *gin.Context) {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.Status(http.StatusBadRequest)
		_ = c.Error(errParse)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, note := range h.notes {
		if note.ID == id {
			h.renderer.Success(c, http.StatusOK, "", note)
			return
		}
	}
	h.renderer.Error(c, http.StatusNotFound, "", gin.H{"detail": "note not found"})
}

// Delete removes a note by id. Deleting an unknown id is a no-op 204.
func (h *NoteHandler) Delete(c *gin.Context) {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.Status(http.StatusBadRequest)
		_ = c.Error(errParse)
		return
	}

	h.mu.Lock()
	for i, note := range h.notes {
		if note.ID == id {
			h.notes = append(h.notes[:i], h.notes[i+1:]...)
			break
		}
	}
	h.mu.Unlock()

	h.renderer.Success(c, http.StatusNoContent, "", nil)
}
