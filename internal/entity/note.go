package entity

import (
	"errors"
	"fmt"
	"strings"
)

// MaxTitleLen bounds the note title length in bytes.
const MaxTitleLen = 200

var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrNoteNotCached = errors.New("note not cached")
	ErrTitleRequired = errors.New("note title is required")
	ErrTitleTooLong  = errors.New("note title is too long")
)

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// ValidateTitle rejects malformed titles before they reach any store.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if len(title) > MaxTitleLen {
		return ErrTitleTooLong
	}

	return nil
}

// StorageError marks a failed cache or persistent store operation. The cause
// is kept for logs, not for client responses.
type StorageError struct {
	Op     string
	NoteID string
	Err    error
}

func NewStorageError(op, noteID string, err error) *StorageError {
	return &StorageError{Op: op, NoteID: noteID, Err: err}
}

func (e *StorageError) Error() string {
	if e.NoteID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s (note %s): %v", e.Op, e.NoteID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
