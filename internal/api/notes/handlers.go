package notes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evgeniy-krivenko/syncnote/internal/entity"
	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
)

type noteSynchronizer interface {
	CreateNote(ctx context.Context, title string) (entity.Note, error)
	GetNote(ctx context.Context, noteID string) (entity.Note, error)
	ListNotes(ctx context.Context) ([]entity.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
	UpdateNoteTitle(ctx context.Context, noteID, title string) (entity.Note, error)
}

type Handlers struct {
	synchronizer noteSynchronizer
}

func New(synchronizer noteSynchronizer) *Handlers {
	return &Handlers{synchronizer: synchronizer}
}

// Routes is mounted at /api/notes.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.createNote)
	r.Get("/", h.listNotes)
	r.Get("/{noteID}", h.getNote)
	r.Delete("/{noteID}", h.deleteNote)
	r.Put("/{noteID}/title", h.updateNoteTitle)

	return r
}

type titleRequest struct {
	Title string `json:"title"`
}

func (h *Handlers) createNote(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := entity.ValidateTitle(req.Title); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.synchronizer.CreateNote(r.Context(), req.Title)
	if err != nil {
		h.writeDomainError(w, r, "create note", "", err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Handlers) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.synchronizer.ListNotes(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "list notes", "", err)
		return
	}

	if notes == nil {
		notes = []entity.Note{}
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *Handlers) getNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")

	note, err := h.synchronizer.GetNote(r.Context(), noteID)
	if err != nil {
		h.writeDomainError(w, r, "get note", noteID, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Handlers) deleteNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")

	if err := h.synchronizer.DeleteNote(r.Context(), noteID); err != nil {
		h.writeDomainError(w, r, "delete note", noteID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

func (h *Handlers) updateNoteTitle(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")

	var req titleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := entity.ValidateTitle(req.Title); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.synchronizer.UpdateNoteTitle(r.Context(), noteID, req.Title)
	if err != nil {
		h.writeDomainError(w, r, "update note title", noteID, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// writeDomainError maps synchronizer failures onto the REST contract. The
// underlying cause goes to the log, not to the client.
func (h *Handlers) writeDomainError(w http.ResponseWriter, r *http.Request, op, noteID string, err error) {
	if errors.Is(err, entity.ErrNoteNotFound) {
		writeError(w, http.StatusNotFound, "note does not exist")
		return
	}

	slogx.Error(r.Context(), "operation failed", slogx.Op(op), slogx.NoteID(noteID), slogx.Err(err))
	writeError(w, http.StatusInternalServerError, op+" failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
