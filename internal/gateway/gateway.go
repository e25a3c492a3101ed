package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/evgeniy-krivenko/syncnote/internal/broadcast"
	"github.com/evgeniy-krivenko/syncnote/internal/config"
	"github.com/evgeniy-krivenko/syncnote/internal/ctxtr"
	"github.com/evgeniy-krivenko/syncnote/internal/entity"
	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
)

type noteSynchronizer interface {
	UpdateNoteContent(ctx context.Context, noteID, title, content string, createdAt entity.Timestamp) (entity.Note, error)
}

type roomBroadcaster interface {
	Join(room string, sink broadcast.Sink)
	Leave(room, clientID string)
	LeaveAll(clientID string)
	Broadcast(room string, payload []byte)
}

// Gateway translates websocket connection lifecycle and inbound events into
// synchronizer calls and room broadcasts. It holds no note state of its own.
type Gateway struct {
	synchronizer noteSynchronizer
	rooms        roomBroadcaster
	cfg          config.WSConfig

	upgrader websocket.Upgrader
	validate *validator.Validate
}

func New(synchronizer noteSynchronizer, rooms roomBroadcaster, cfg config.WSConfig) *Gateway {
	return &Gateway{
		synchronizer: synchronizer,
		rooms:        rooms,
		cfg:          cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		validate: validator.New(),
	}
}

func (g *Gateway) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := g.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slogx.Warn(r.Context(), "websocket upgrade failed", slogx.Err(err))
			return
		}

		client := newClient(uuid.NewString(), conn, g.cfg.SendBuffer, g.cfg.WriteTimeout, g.cfg.PongTimeout)

		// The request context dies with the handler; the connection
		// outlives it only through the client's own done channel.
		ctx := ctxtr.WithClientID(context.Background(), client.id)

		slogx.Info(ctx, "client connected", slogx.ClientID(client.id))

		go client.writePump(ctx)
		g.readLoop(ctx, client)
	}
}

func (g *Gateway) readLoop(ctx context.Context, client *Client) {
	defer func() {
		g.rooms.LeaveAll(client.id)
		client.close()
		slogx.Info(ctx, "client disconnected", slogx.ClientID(client.id))
	}()

	client.conn.SetReadLimit(g.cfg.ReadLimit)
	client.conn.SetReadDeadline(time.Now().Add(g.cfg.PongTimeout))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(g.cfg.PongTimeout))
	})

	for {
		_, msg, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				slogx.Warn(ctx, "client read failed", slogx.ClientID(client.id), slogx.Err(err))
			}
			return
		}

		g.handleEvent(ctx, client, msg)
	}
}

// handleEvent validates an inbound event and dispatches it. Malformed events
// are logged and ignored; the connection stays open.
func (g *Gateway) handleEvent(ctx context.Context, client *Client, msg []byte) {
	var ev inboundEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		slogx.Warn(ctx, "malformed event", slogx.ClientID(client.id), slogx.Err(err))
		return
	}

	if err := g.validate.Struct(ev); err != nil {
		slogx.Warn(ctx, "invalid event",
			slog.String("type", ev.Type),
			slogx.ClientID(client.id),
			slogx.Err(err),
		)
		return
	}

	switch ev.Type {
	case EventJoin:
		g.rooms.Join(ev.NoteID, client)
		slogx.Info(ctx, "client joined note", slogx.ClientID(client.id), slogx.NoteID(ev.NoteID))

	case EventLeave:
		g.rooms.Leave(ev.NoteID, client.id)
		slogx.Info(ctx, "client left note", slogx.ClientID(client.id), slogx.NoteID(ev.NoteID))

	case EventUpdateNote:
		g.handleUpdateNote(ctx, ev)
	}
}

func (g *Gateway) handleUpdateNote(ctx context.Context, ev inboundEvent) {
	clientID, _ := ctxtr.ClientID(ctx)

	title := ev.Title
	if title == "" {
		title = Untitled
	}

	createdAt, err := entity.ParseTimestamp(ev.CreatedAt)
	if err != nil {
		createdAt = entity.Now()
	}

	note, err := g.synchronizer.UpdateNoteContent(ctx, ev.NoteID, title, ev.Content, createdAt)
	if err != nil {
		// The event channel is fire and forget: the edit is dropped and
		// the client learns of it only by the absence of a broadcast.
		slogx.Error(ctx, "update note event failed", slogx.ClientID(clientID), slogx.NoteID(ev.NoteID), slogx.Err(err))
		return
	}

	payload, err := json.Marshal(noteUpdateEvent{Type: EventNoteUpdate, Note: note})
	if err != nil {
		slogx.Error(ctx, "encode note update", slogx.ClientID(clientID), slogx.NoteID(ev.NoteID), slogx.Err(err))
		return
	}

	g.rooms.Broadcast(ev.NoteID, payload)
}
