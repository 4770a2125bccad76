package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/urfave/cli/v3"

	httpadapter "github.com/elaa0505/AzuraCast/internal/adapter/http"
	"github.com/elaa0505/AzuraCast/internal/adapter/storage/sqlite"
	"github.com/elaa0505/AzuraCast/internal/service"
)

// Serve runs the HTTP API until ctx is cancelled. Batches enqueue playback
// regeneration; the worker pool writes it.
func (r *Runner) Serve(ctx context.Context, _ *cli.Command) error {
	cfg := r.config

	store, err := r.openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	files, err := r.openFiles(ctx)
	if err != nil {
		return err
	}
	writer, err := r.playbackWriter(store)
	if err != nil {
		return err
	}

	auth, err := service.NewAPIKeyAuthenticator(cfg.Server.APIKeyHashes)
	if err != nil {
		return err
	}
	if !auth.Enabled() {
		r.logger.Warn("no api_key_hashes configured, the API is unauthenticated")
	}

	jobQueue := sqlite.NewJobQueue(store)
	eventBus := service.NewEventBus()
	batchSvc := service.NewBatchService(store, files, service.NewQueuedRegenerator(jobQueue), eventBus, r.logger)
	reconciler := service.NewReconciler(store, files, r.logger)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	workerPool := service.NewWorkerPool(jobQueue, store, writer, eventBus, cfg.Worker.Count, cfg.Worker.PollInterval, r.logger)
	workerPool.Start(workerCtx)

	server := httpadapter.NewServer(store, batchSvc, reconciler, eventBus, auth, httpadapter.ServerOptions{
		BehindProxy:    cfg.Server.BehindProxy,
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
		SerializeBatch: cfg.Server.SerializeBatches,
	}, r.logger)
	defer server.Close()

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	// Event streams only end when their subscription does.
	httpServer.RegisterOnShutdown(eventBus.Close)

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", httpServer.Addr, "storage", cfg.Storage.Type)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			workerCancel()
			workerPool.Wait()
			return err
		}
	case <-ctx.Done():
		r.logger.Info("shutting down")
	}

	// Stop accepting new requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Error("http shutdown error", "error", err)
	}

	// Lets in-flight jobs finish
	workerCancel()
	workerPool.Wait()

	r.logger.Info("shutdown complete")
	return nil
}
