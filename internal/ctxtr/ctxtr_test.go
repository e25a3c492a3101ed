package ctxtr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/syncnote/internal/ctxtr"
)

func TestClientID(t *testing.T) {
	ctx := ctxtr.WithClientID(context.Background(), "c1")

	clientID, err := ctxtr.ClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", clientID)

	_, err = ctxtr.ClientID(context.Background())
	assert.ErrorIs(t, err, ctxtr.ErrClientNotFound)
}
