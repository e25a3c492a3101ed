package slogx_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
	}

	for _, tc := range cases {
		got, err := slogx.ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := slogx.ParseLevel("loud")
	assert.Error(t, err)
}

func TestDefault_NeverNil(t *testing.T) {
	assert.NotNil(t, slogx.Default())
}

// Handlers that take over the connection, like a websocket upgrade, must be
// able to hijack through the logging wrapper.
func TestMiddleware_WriterSupportsHijack(t *testing.T) {
	hijacked := make(chan struct{})

	h := slogx.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok, "wrapped writer must implement http.Hijacker")

		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()

		close(hijacked)
	}))

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	if err == nil {
		resp.Body.Close()
	}

	<-hijacked
}
