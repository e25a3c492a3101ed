package ctxtr

import (
	"context"
	"errors"
)

type ctxKey string

const ClientIDKey ctxKey = "client_id"

var ErrClientNotFound = errors.New("client not found")

func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}

func ClientID(ctx context.Context) (string, error) {
	clientID, ok := ctx.Value(ClientIDKey).(string)
	if !ok {
		return "", ErrClientNotFound
	}

	return clientID, nil
}
