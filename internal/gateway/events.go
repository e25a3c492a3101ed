package gateway

import (
	"github.com/evgeniy-krivenko/syncnote/internal/entity"
)

// Untitled is the title applied to real-time edits arriving without one.
const Untitled = "Untitled Note"

const (
	EventJoin       = "join"
	EventLeave      = "leave"
	EventUpdateNote = "update_note"
	EventNoteUpdate = "note_update"
)

// inboundEvent is the tagged union of everything a client may send. Events
// that fail validation are logged and ignored; they never reach the
// synchronizer.
type inboundEvent struct {
	Type      string `json:"type" validate:"required,oneof=join leave update_note"`
	NoteID    string `json:"note_id" validate:"required"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// noteUpdateEvent is broadcast to the note's room after an accepted edit.
type noteUpdateEvent struct {
	Type string `json:"type"`
	entity.Note
}
