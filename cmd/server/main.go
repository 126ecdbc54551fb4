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
	"time"

	"github.com/tacocloud/web/internal/catalog"
	"github.com/tacocloud/web/internal/config"
	"github.com/tacocloud/web/internal/router"
	"github.com/tacocloud/web/internal/service"
	"github.com/tacocloud/web/internal/session"
	"github.com/tacocloud/web/internal/taco"
	"github.com/tacocloud/web/internal/web"
	"github.com/tacocloud/web/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	var opts []taco.Option
	if cfg.EnforceCardExpiry {
		opts = append(opts, taco.WithExpiryCheck(time.Now))
	}
	validator := taco.NewValidator(opts...)

	sessions := session.NewStore(cfg.SessionTTL)
	go sessions.Run(ctx, cfg.SessionSweepInterval)

	hub := ws.NewHub()
	go hub.Run(ctx)
	if cfg.FeedToken == "" {
		log.Println("FEED_TOKEN not set, kitchen feed disabled")
	}

	svc := service.NewOrderService(sessions, cat, validator, hub)
	r := router.New(cfg, cat, sessions, svc, renderer, hub)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
