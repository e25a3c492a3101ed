package gateway

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
)

var (
	errClientClosed   = errors.New("client closed")
	errSendBufferFull = errors.New("send buffer full")
)

// Client is one websocket connection. All writes to the connection go
// through the send channel and the write pump goroutine; Deliver never
// blocks on a slow peer.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}

	writeTimeout time.Duration
	pongTimeout  time.Duration
}

func newClient(id string, conn *websocket.Conn, sendBuffer int, writeTimeout, pongTimeout time.Duration) *Client {
	return &Client{
		id:           id,
		conn:         conn,
		send:         make(chan []byte, sendBuffer),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
		pongTimeout:  pongTimeout,
	}
}

func (c *Client) ID() string { return c.id }

// Deliver queues a payload for the write pump. A full buffer means the
// payload is dropped for this client only.
func (c *Client) Deliver(payload []byte) error {
	select {
	case <-c.done:
		return errClientClosed
	default:
	}

	select {
	case c.send <- payload:
		return nil
	default:
		return errSendBufferFull
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writePump serializes all writes to the connection and keeps the peer
// alive with periodic pings.
func (c *Client) writePump(ctx context.Context) {
	pingPeriod := c.pongTimeout * 9 / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-c.done:
			return

		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				slogx.Debug(ctx, "client write failed", slogx.ClientID(c.id), slogx.Err(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
