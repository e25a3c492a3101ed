package broadcast_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/syncnote/internal/broadcast"
)

const recvTimeout = 2 * time.Second

type chanSink struct {
	id      string
	ch      chan []byte
	failing bool
}

func newChanSink(id string) *chanSink {
	return &chanSink{id: id, ch: make(chan []byte, 16)}
}

func (s *chanSink) ID() string { return s.id }

func (s *chanSink) Deliver(payload []byte) error {
	if s.failing {
		return errors.New("sink unavailable")
	}
	s.ch <- payload
	return nil
}

func (s *chanSink) recv(t *testing.T) []byte {
	t.Helper()
	select {
	case payload := <-s.ch:
		return payload
	case <-time.After(recvTimeout):
		t.Fatalf("sink %s: no payload within %v", s.id, recvTimeout)
		return nil
	}
}

func (s *chanSink) assertSilent(t *testing.T) {
	t.Helper()
	select {
	case payload := <-s.ch:
		t.Fatalf("sink %s: unexpected payload %q", s.id, payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBroadcast_FanOut(t *testing.T) {
	b := broadcast.New()
	a, c := newChanSink("A"), newChanSink("B")

	b.Join("n1", a)
	b.Join("n1", c)
	require.Equal(t, 2, b.Members("n1"))

	b.Broadcast("n1", []byte("hello"))

	// The originator gets the echo like everyone else.
	assert.Equal(t, []byte("hello"), a.recv(t))
	assert.Equal(t, []byte("hello"), c.recv(t))
}

func TestBroadcast_FIFOPerRoom(t *testing.T) {
	b := broadcast.New()
	sink := newChanSink("A")
	b.Join("n1", sink)

	b.Broadcast("n1", []byte("v1"))
	b.Broadcast("n1", []byte("v2"))

	assert.Equal(t, []byte("v1"), sink.recv(t))
	assert.Equal(t, []byte("v2"), sink.recv(t))
}

func TestJoin_Idempotent(t *testing.T) {
	b := broadcast.New()
	sink := newChanSink("A")

	b.Join("n1", sink)
	b.Join("n1", sink)
	assert.Equal(t, 1, b.Members("n1"))

	b.Broadcast("n1", []byte("once"))
	sink.recv(t)
	sink.assertSilent(t)
}

func TestLeave_WithoutJoinIsNoop(t *testing.T) {
	b := broadcast.New()
	sink := newChanSink("A")
	b.Join("n1", sink)

	b.Leave("n1", "never-joined")
	b.Leave("other-room", sink.ID())

	assert.Equal(t, 1, b.Members("n1"))
}

func TestLeave_StopsDelivery(t *testing.T) {
	b := broadcast.New()
	sink := newChanSink("A")

	b.Join("n1", sink)
	b.Leave("n1", sink.ID())
	assert.Zero(t, b.Members("n1"))

	b.Broadcast("n1", []byte("after leave"))
	sink.assertSilent(t)
}

func TestLeaveAll(t *testing.T) {
	b := broadcast.New()
	sink := newChanSink("A")
	other := newChanSink("B")

	b.Join("n1", sink)
	b.Join("n2", sink)
	b.Join("n1", other)

	b.LeaveAll(sink.ID())

	assert.Equal(t, 1, b.Members("n1"))
	assert.Zero(t, b.Members("n2"))

	b.Broadcast("n1", []byte("still running"))
	other.recv(t)
	sink.assertSilent(t)
}

func TestBroadcast_FailingSinkDoesNotBlockOthers(t *testing.T) {
	b := broadcast.New()
	bad, good := newChanSink("bad"), newChanSink("good")
	bad.failing = true

	b.Join("n1", bad)
	b.Join("n1", good)

	b.Broadcast("n1", []byte("v1"))
	b.Broadcast("n1", []byte("v2"))

	assert.Equal(t, []byte("v1"), good.recv(t))
	assert.Equal(t, []byte("v2"), good.recv(t))
}

func TestBroadcast_EmptyRoomIsNoop(t *testing.T) {
	b := broadcast.New()

	// Nothing to assert beyond not panicking and not leaking state.
	b.Broadcast("nobody-here", []byte("void"))
	assert.Zero(t, b.Members("nobody-here"))
}
