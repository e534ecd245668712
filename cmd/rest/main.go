package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"ai-pitch-evaluator-be/internal/bootstrap"
	"ai-pitch-evaluator-be/internal/config"
	"ai-pitch-evaluator-be/internal/server"
	"ai-pitch-evaluator-be/internal/tracer"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint)

	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to bootstrap: %v", err)
	}
	defer container.Close()

	srv := server.New(cfg, container)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		container.Hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("[INFO] Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownTracer(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("[ERROR] Server stopped: %v", err)
	}
}
