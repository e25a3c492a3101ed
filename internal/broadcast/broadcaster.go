package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/imkira/go-observer"

	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
)

// Sink is one connected client's delivery endpoint. Deliver must not block;
// a failed delivery is the sink's problem alone.
type Sink interface {
	ID() string
	Deliver(payload []byte) error
}

// Broadcaster maintains room membership and fans payloads out to every
// member through a per-room observer stream. Updates to one room reach each
// member in invocation order; rooms are independent of each other.
type Broadcaster struct {
	mu      sync.Mutex
	rooms   map[string]observer.Property
	members map[string]map[string]*membership // room -> client id
	clients map[string]map[string]*membership // client id -> room
}

type membership struct {
	sink   Sink
	cancel context.CancelFunc
	done   chan struct{}
}

func New() *Broadcaster {
	return &Broadcaster{
		rooms:   make(map[string]observer.Property),
		members: make(map[string]map[string]*membership),
		clients: make(map[string]map[string]*membership),
	}
}

// Join subscribes the sink to a room. Joining a room twice has no additional
// effect.
func (b *Broadcaster) Join(room string, sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clientID := sink.ID()
	if _, ok := b.clients[clientID][room]; ok {
		return
	}

	prop, ok := b.rooms[room]
	if !ok {
		prop = observer.NewProperty(nil)
		b.rooms[room] = prop
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &membership{sink: sink, cancel: cancel, done: make(chan struct{})}

	if b.members[room] == nil {
		b.members[room] = make(map[string]*membership)
	}
	b.members[room][clientID] = m

	if b.clients[clientID] == nil {
		b.clients[clientID] = make(map[string]*membership)
	}
	b.clients[clientID][room] = m

	stream := prop.Observe()
	go b.forward(ctx, stream, m, room)
}

// Leave removes the client from a room. Leaving a room it never joined is a
// no-op.
func (b *Broadcaster) Leave(room, clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.removeLocked(room, clientID)
}

// LeaveAll removes the client from every room it belongs to. Called on
// disconnect.
func (b *Broadcaster) LeaveAll(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for room := range b.clients[clientID] {
		b.removeLocked(room, clientID)
	}
}

// Broadcast delivers the payload to every current member of the room, the
// originator included. Broadcasting to an empty room is a no-op.
func (b *Broadcaster) Broadcast(room string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prop, ok := b.rooms[room]
	if !ok {
		return
	}

	prop.Update(payload)
}

func (b *Broadcaster) Members(room string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.members[room])
}

func (b *Broadcaster) removeLocked(room, clientID string) {
	m, ok := b.members[room][clientID]
	if !ok {
		return
	}

	m.cancel()
	delete(b.members[room], clientID)
	delete(b.clients[clientID], room)

	if len(b.members[room]) == 0 {
		delete(b.members, room)
		delete(b.rooms, room)
	}
	if len(b.clients[clientID]) == 0 {
		delete(b.clients, clientID)
	}
}

func (b *Broadcaster) forward(ctx context.Context, stream observer.Stream, m *membership, room string) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			return

		case <-stream.Changes():
			payload, _ := stream.Next().([]byte)
			if payload == nil {
				continue
			}

			if err := m.sink.Deliver(payload); err != nil {
				// Fire and forget: one slow or closed client never
				// stalls the rest of the room.
				slogx.Warn(ctx, "dropped room payload",
					slog.String("room", room),
					slogx.ClientID(m.sink.ID()),
					slogx.Err(err),
				)
			}
		}
	}
}
