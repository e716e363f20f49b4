package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run starts the HTTP server and the digest scheduler, then blocks
// until a shutdown signal arrives:
//  1. Map HTTP handlers and routes
//  2. Start the digest scheduler
//  3. Start the HTTP server
//  4. Wait for a shutdown signal, then drain both
func (srv *HTTPServer) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.mapHandlers(); err != nil {
		srv.l.Fatalf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	if srv.scheduler != nil {
		srv.scheduler.Start(ctx)
		srv.l.Info(ctx, "Digest scheduler started")
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.port),
		Handler: srv.gin,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.l.Errorf(ctx, "HTTP server error: %v", err)
		}
	}()

	srv.l.Infof(ctx, "HTTP server started on port: %d", srv.port)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	srv.l.Info(ctx, <-ch)
	srv.l.Info(ctx, "Stopping digest service...")

	// Stop the scheduler first so no dispatch pass is cut off mid-batch.
	cancel()
	if srv.scheduler != nil {
		select {
		case <-srv.scheduler.Done():
		case <-time.After(shutdownTimeout):
			srv.l.Warn(context.Background(), "Scheduler did not stop in time")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.l.Errorf(shutdownCtx, "HTTP server shutdown error: %v", err)
		return err
	}

	return nil
}
