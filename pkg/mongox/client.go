package mongox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type logger interface {
	Warn(context.Context, string, ...slog.Attr)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.2 -out-filename=client_options.gen.go -from-struct=Options
type Options struct {
	uri string `option:"mandatory" validate:"required,uri"`

	// opTimeout bounds every driver operation, not just the initial dial.
	opTimeout      time.Duration `default:"5s"`
	connectTimeout time.Duration `default:"10s"`

	retry         bool `default:"true"`
	retryAttempts uint `default:"3" validate:"min=1,max=10"`

	logger logger
}

func NewClient(ctx context.Context, opts Options) (*mongo.Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options for mongo: %v", err)
	}

	if opts.logger == nil {
		opts.logger = noopLogger{}
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(opts.uri).
		SetTimeout(opts.opTimeout).
		SetConnectTimeout(opts.connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %v", err)
	}

	if !opts.retry {
		return client, client.Ping(ctx, readpref.Primary())
	}

	if err := retry.Do(
		func() error { return client.Ping(ctx, readpref.Primary()) },
		retry.Delay(time.Millisecond*300),
		retry.Attempts(opts.retryAttempts),
		retry.OnRetry(func(attempt uint, err error) {
			opts.logger.Warn(
				ctx,
				"failed ping to mongo",
				slog.Any("err", err),
				slog.Uint64("attempt", uint64(attempt)),
			)
		}),
	); err != nil {
		return nil, fmt.Errorf("ping to mongo: %v", err)
	}

	return client, nil
}

type noopLogger struct{}

func (n noopLogger) Warn(context.Context, string, ...slog.Attr) {}
