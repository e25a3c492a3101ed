package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evgeniy-krivenko/syncnote/internal/entity"
)

const editTimeout = 10 * time.Second

type wsEvent struct {
	Type      string `json:"type"`
	NoteID    string `json:"note_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type noteUpdate struct {
	Type string `json:"type"`
	entity.Note
}

func dialAndJoin(ctx context.Context, noteID string) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, "ws://"+serverAddr+"/ws", nil)
	if err != nil {
		return nil, fmt.Errorf("dial server: %v", err)
	}

	if err := conn.WriteJSON(wsEvent{Type: "join", NoteID: noteID}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("join note: %v", err)
	}

	return conn, nil
}

func watchNote(ctx context.Context, noteID string, out io.Writer) error {
	conn, err := dialAndJoin(ctx, noteID)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock the read loop when the context is interrupted.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var update noteUpdate
		if err := conn.ReadJSON(&update); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read update: %v", err)
		}

		if update.Type != "note_update" {
			continue
		}

		fmt.Fprintf(out, "[%s] %s\n%s\n", update.UpdatedAt, update.Title, update.Content)
	}
}

// editNote pushes new content over the realtime channel and waits for the
// echoed broadcast as confirmation.
func editNote(ctx context.Context, noteID, content string) (entity.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, editTimeout)
	defer cancel()

	current, err := apiGetNote(ctx, noteID)
	if err != nil {
		return entity.Note{}, err
	}

	conn, err := dialAndJoin(ctx, noteID)
	if err != nil {
		return entity.Note{}, err
	}
	defer conn.Close()

	err = conn.WriteJSON(wsEvent{
		Type:      "update_note",
		NoteID:    noteID,
		Title:     current.Title,
		Content:   content,
		CreatedAt: current.CreatedAt.String(),
	})
	if err != nil {
		return entity.Note{}, fmt.Errorf("send update: %v", err)
	}

	deadline, _ := ctx.Deadline()
	conn.SetReadDeadline(deadline)

	for {
		var update noteUpdate
		if err := conn.ReadJSON(&update); err != nil {
			return entity.Note{}, errors.New("no update broadcast received")
		}

		if update.Type == "note_update" && update.ID == noteID {
			return update.Note, nil
		}
	}
}
