package redisx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
)

type logger interface {
	Warn(context.Context, string, ...slog.Attr)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.2 -out-filename=client_options.gen.go -from-struct=Options
type Options struct {
	addr string `option:"mandatory" validate:"required,hostname_port"`

	db          int
	dialTimeout time.Duration `default:"5s"`

	retry         bool `default:"true"`
	retryAttempts uint `default:"3" validate:"min=1,max=10"`

	logger logger
}

func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options for redis: %v", err)
	}

	if opts.logger == nil {
		opts.logger = noopLogger{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:        opts.addr,
		DB:          opts.db,
		DialTimeout: opts.dialTimeout,
	})

	if !opts.retry {
		return client, client.Ping(ctx).Err()
	}

	if err := retry.Do(
		func() error { return client.Ping(ctx).Err() },
		retry.Delay(time.Millisecond*300),
		retry.Attempts(opts.retryAttempts),
		retry.OnRetry(func(attempt uint, err error) {
			opts.logger.Warn(
				ctx,
				"failed ping to redis",
				slog.Any("err", err),
				slog.Uint64("attempt", uint64(attempt)),
			)
		}),
	); err != nil {
		return nil, fmt.Errorf("ping to redis: %v", err)
	}

	return client, nil
}

type noopLogger struct{}

func (n noopLogger) Warn(context.Context, string, ...slog.Attr) {}
