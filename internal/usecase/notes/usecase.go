package notes

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/evgeniy-krivenko/syncnote/internal/entity"
	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
)

type noteCache interface {
	FindNote(ctx context.Context, noteID string) (entity.Note, error)
	FindAllNotes(ctx context.Context) ([]entity.Note, error)
	SaveNote(ctx context.Context, note entity.Note) error
	DeleteNote(ctx context.Context, noteID string) error
}

type notesRepository interface {
	FindNote(ctx context.Context, noteID string) (entity.Note, error)
	FindAllNotes(ctx context.Context) ([]entity.Note, error)
	InsertNote(ctx context.Context, note entity.Note) error
	UpdateNoteTitle(ctx context.Context, noteID, title string, updatedAt entity.Timestamp) error
	UpsertNote(ctx context.Context, note entity.Note) error
	DeleteNote(ctx context.Context, noteID string) error
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.2 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	cache noteCache       `option:"mandatory" validate:"required"`
	repo  notesRepository `option:"mandatory" validate:"required"`

	now func() entity.Timestamp
}

// Usecase keeps the cache and the persistent store in step: cache-aside on
// reads, write-through on every mutation. It is the only component allowed
// to mutate either store.
type Usecase struct {
	Options
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate notes usecase options: %v", err)
	}

	if opts.now == nil {
		opts.now = entity.Now
	}

	return &Usecase{Options: opts}, nil
}

// CreateNote writes the cache, then the store, then re-reads the stored form
// so callers get exactly what was persisted. On store failure the cache write
// is not rolled back; the next read repopulates consistently.
func (u *Usecase) CreateNote(ctx context.Context, title string) (entity.Note, error) {
	now := u.now()
	note := entity.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.cache.SaveNote(ctx, note); err != nil {
		return entity.Note{}, entity.NewStorageError("create note", note.ID, err)
	}

	if err := u.repo.InsertNote(ctx, note); err != nil {
		return entity.Note{}, entity.NewStorageError("create note", note.ID, err)
	}

	stored, err := u.repo.FindNote(ctx, note.ID)
	if err != nil {
		return entity.Note{}, entity.NewStorageError("create note", note.ID, err)
	}

	slogx.Info(ctx, "note created", slogx.NoteID(note.ID))

	return stored, nil
}

// GetNote reads the cache first and touches the store only on a miss,
// repopulating the cache with the exact stored value.
func (u *Usecase) GetNote(ctx context.Context, noteID string) (entity.Note, error) {
	note, err := u.cache.FindNote(ctx, noteID)
	if err == nil {
		return note, nil
	}
	if !errors.Is(err, entity.ErrNoteNotCached) {
		return entity.Note{}, entity.NewStorageError("get note", noteID, err)
	}

	note, err = u.repo.FindNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, entity.ErrNoteNotFound) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, entity.NewStorageError("get note", noteID, err)
	}

	if err := u.cache.SaveNote(ctx, note); err != nil {
		return entity.Note{}, entity.NewStorageError("get note", noteID, err)
	}

	slogx.Debug(ctx, "note repopulated from store", slogx.NoteID(noteID))

	return note, nil
}

// ListNotes treats a non-empty cache as authoritative for the listing. Only
// a completely empty cache falls back to a full store scan, backfilling every
// note read. The result is ordered by creation time, newest first.
func (u *Usecase) ListNotes(ctx context.Context) ([]entity.Note, error) {
	notes, err := u.cache.FindAllNotes(ctx)
	if err != nil {
		return nil, entity.NewStorageError("list notes", "", err)
	}

	if len(notes) == 0 {
		notes, err = u.repo.FindAllNotes(ctx)
		if err != nil {
			return nil, entity.NewStorageError("list notes", "", err)
		}

		for _, note := range notes {
			if err := u.cache.SaveNote(ctx, note); err != nil {
				return nil, entity.NewStorageError("list notes", note.ID, err)
			}
		}

		slogx.Debug(ctx, "note listing backfilled from store")
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt.Time)
	})

	return notes, nil
}

// DeleteNote evicts the cache entry unconditionally, then deletes the
// document. The store is authoritative for existence: a missing document is
// ErrNoteNotFound even when the cache had an entry.
func (u *Usecase) DeleteNote(ctx context.Context, noteID string) error {
	if err := u.cache.DeleteNote(ctx, noteID); err != nil {
		return entity.NewStorageError("delete note", noteID, err)
	}

	if err := u.repo.DeleteNote(ctx, noteID); err != nil {
		if errors.Is(err, entity.ErrNoteNotFound) {
			return entity.ErrNoteNotFound
		}
		return entity.NewStorageError("delete note", noteID, err)
	}

	slogx.Info(ctx, "note deleted", slogx.NoteID(noteID))

	return nil
}

func (u *Usecase) UpdateNoteTitle(ctx context.Context, noteID, title string) (entity.Note, error) {
	note, err := u.cache.FindNote(ctx, noteID)
	if err != nil {
		if !errors.Is(err, entity.ErrNoteNotCached) {
			return entity.Note{}, entity.NewStorageError("update note title", noteID, err)
		}

		note, err = u.repo.FindNote(ctx, noteID)
		if err != nil {
			if errors.Is(err, entity.ErrNoteNotFound) {
				return entity.Note{}, entity.ErrNoteNotFound
			}
			return entity.Note{}, entity.NewStorageError("update note title", noteID, err)
		}
	}

	note.Title = title
	note.UpdatedAt = u.now()

	if err := u.cache.SaveNote(ctx, note); err != nil {
		return entity.Note{}, entity.NewStorageError("update note title", noteID, err)
	}

	if err := u.repo.UpdateNoteTitle(ctx, noteID, title, note.UpdatedAt); err != nil {
		return entity.Note{}, entity.NewStorageError("update note title", noteID, err)
	}

	slogx.Info(ctx, "note title updated", slogx.NoteID(noteID))

	return note, nil
}

// UpdateNoteContent is the real-time edit path: an unconditional upsert of
// the full client-supplied state. The most recent call to reach each store
// wins, regardless of arrival order from concurrent editors.
func (u *Usecase) UpdateNoteContent(ctx context.Context, noteID, title, content string, createdAt entity.Timestamp) (entity.Note, error) {
	note := entity.Note{
		ID:        noteID,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: u.now(),
	}

	if err := u.cache.SaveNote(ctx, note); err != nil {
		return entity.Note{}, entity.NewStorageError("update note content", noteID, err)
	}

	if err := u.repo.UpsertNote(ctx, note); err != nil {
		return entity.Note{}, entity.NewStorageError("update note content", noteID, err)
	}

	slogx.Debug(ctx, "note content updated", slogx.NoteID(noteID))

	return note, nil
}
