package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	notesapi "github.com/evgeniy-krivenko/syncnote/internal/api/notes"
	"github.com/evgeniy-krivenko/syncnote/internal/broadcast"
	"github.com/evgeniy-krivenko/syncnote/internal/cache"
	"github.com/evgeniy-krivenko/syncnote/internal/config"
	"github.com/evgeniy-krivenko/syncnote/internal/gateway"
	"github.com/evgeniy-krivenko/syncnote/internal/repository"
	notesuc "github.com/evgeniy-krivenko/syncnote/internal/usecase/notes"
	"github.com/evgeniy-krivenko/syncnote/pkg/httpserver"
	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
	"github.com/evgeniy-krivenko/syncnote/pkg/mongox"
	"github.com/evgeniy-krivenko/syncnote/pkg/redisx"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("parse cfg: %v", err)
	}

	if err := slogx.InitGlobal(os.Stdout, cfg.App.LogLevel, cfg.App.Pretty); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	rdb, err := redisx.NewClient(ctx, redisx.NewOptions(
		cfg.Redis.Addr,
		redisx.WithDb(cfg.Redis.DB),
		redisx.WithDialTimeout(cfg.Redis.DialTimeout),
		redisx.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init redis client: %v", err)
	}
	defer rdb.Close()

	mongoClient, err := mongox.NewClient(ctx, mongox.NewOptions(
		cfg.Mongo.URI,
		mongox.WithOpTimeout(cfg.Mongo.Timeout),
		mongox.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init mongo client: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slogx.Warn(ctx, "disconnect mongo", slogx.Err(err))
		}
	}()

	noteCache := cache.New(rdb, cfg.Redis.KeyPrefix)
	repo := repository.New(mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))

	synchronizer, err := notesuc.New(notesuc.NewOptions(noteCache, repo))
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}

	rooms := broadcast.New()
	gw := gateway.New(synchronizer, rooms, cfg.WS)
	api := notesapi.New(synchronizer)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(slogx.Middleware)
	r.Mount("/api/notes", api.Routes())
	r.Get(cfg.WS.Path, gw.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv, err := httpserver.New(httpserver.NewOptions(
		cfg.HTTP.Addr,
		r,
		httpserver.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init http server: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return srv.Run(ctx) })

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	return nil
}
