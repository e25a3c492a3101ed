package notes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notesapi "github.com/evgeniy-krivenko/syncnote/internal/api/notes"
	"github.com/evgeniy-krivenko/syncnote/internal/entity"
)

type fakeSynchronizer struct {
	createNote      func(ctx context.Context, title string) (entity.Note, error)
	getNote         func(ctx context.Context, noteID string) (entity.Note, error)
	listNotes       func(ctx context.Context) ([]entity.Note, error)
	deleteNote      func(ctx context.Context, noteID string) error
	updateNoteTitle func(ctx context.Context, noteID, title string) (entity.Note, error)
}

func (f *fakeSynchronizer) CreateNote(ctx context.Context, title string) (entity.Note, error) {
	return f.createNote(ctx, title)
}

func (f *fakeSynchronizer) GetNote(ctx context.Context, noteID string) (entity.Note, error) {
	return f.getNote(ctx, noteID)
}

func (f *fakeSynchronizer) ListNotes(ctx context.Context) ([]entity.Note, error) {
	return f.listNotes(ctx)
}

func (f *fakeSynchronizer) DeleteNote(ctx context.Context, noteID string) error {
	return f.deleteNote(ctx, noteID)
}

func (f *fakeSynchronizer) UpdateNoteTitle(ctx context.Context, noteID, title string) (entity.Note, error) {
	return f.updateNoteTitle(ctx, noteID, title)
}

func sampleNote(id string) entity.Note {
	ts := entity.NewTimestamp(time.Date(2026, 2, 6, 8, 17, 40, 53_000_000, time.UTC))
	return entity.Note{ID: id, Title: "Shopping List", CreatedAt: ts, UpdatedAt: ts}
}

func serve(t *testing.T, fake *fakeSynchronizer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	notesapi.New(fake).Routes().ServeHTTP(rec, req)

	return rec
}

func TestCreateNote(t *testing.T) {
	fake := &fakeSynchronizer{
		createNote: func(_ context.Context, title string) (entity.Note, error) {
			note := sampleNote("n1")
			note.Title = title
			return note, nil
		},
	}

	rec := serve(t, fake, http.MethodPost, "/", map[string]string{"title": "Shopping List"})

	require.Equal(t, http.StatusOK, rec.Code)

	var note entity.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
	assert.Equal(t, "n1", note.ID)
	assert.Equal(t, "Shopping List", note.Title)
	assert.Empty(t, note.Content)
}

func TestCreateNote_EmptyTitleRejected(t *testing.T) {
	fake := &fakeSynchronizer{
		createNote: func(context.Context, string) (entity.Note, error) {
			t.Fatal("synchronizer must not be reached for invalid input")
			return entity.Note{}, nil
		},
	}

	rec := serve(t, fake, http.MethodPost, "/", map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateNote_StorageErrorIsOpaque500(t *testing.T) {
	fake := &fakeSynchronizer{
		createNote: func(context.Context, string) (entity.Note, error) {
			return entity.Note{}, entity.NewStorageError("create note", "", errors.New("redis: connection refused"))
		},
	}

	rec := serve(t, fake, http.MethodPost, "/", map[string]string{"title": "x"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The cause stays in the log, not in the response.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGetNote(t *testing.T) {
	fake := &fakeSynchronizer{
		getNote: func(_ context.Context, noteID string) (entity.Note, error) {
			if noteID != "n1" {
				return entity.Note{}, entity.ErrNoteNotFound
			}
			return sampleNote("n1"), nil
		},
	}

	rec := serve(t, fake, http.MethodGet, "/n1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"2026-02-06T08:17:40.053Z"`)

	rec = serve(t, fake, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestListNotes(t *testing.T) {
	fake := &fakeSynchronizer{
		listNotes: func(context.Context) ([]entity.Note, error) {
			return []entity.Note{sampleNote("n2"), sampleNote("n1")}, nil
		},
	}

	rec := serve(t, fake, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var notes []entity.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "n2", notes[0].ID)
}

func TestListNotes_EmptyIsArray(t *testing.T) {
	fake := &fakeSynchronizer{
		listNotes: func(context.Context) ([]entity.Note, error) { return nil, nil },
	}

	rec := serve(t, fake, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDeleteNote(t *testing.T) {
	fake := &fakeSynchronizer{
		deleteNote: func(_ context.Context, noteID string) error {
			if noteID != "n1" {
				return entity.ErrNoteNotFound
			}
			return nil
		},
	}

	rec := serve(t, fake, http.MethodDelete, "/n1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")

	rec = serve(t, fake, http.MethodDelete, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateNoteTitle(t *testing.T) {
	fake := &fakeSynchronizer{
		updateNoteTitle: func(_ context.Context, noteID, title string) (entity.Note, error) {
			if noteID != "n1" {
				return entity.Note{}, entity.ErrNoteNotFound
			}
			note := sampleNote(noteID)
			note.Title = title
			return note, nil
		},
	}

	rec := serve(t, fake, http.MethodPut, "/n1/title", map[string]string{"title": "New Title"})
	require.Equal(t, http.StatusOK, rec.Code)

	var note entity.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))
	assert.Equal(t, "New Title", note.Title)

	rec = serve(t, fake, http.MethodPut, "/missing/title", map[string]string{"title": "New Title"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, fake, http.MethodPut, "/n1/title", map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
