package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"socialnetwork/app/config"
	"socialnetwork/app/repositories"
	"socialnetwork/app/routes"
)

const (
	shutdownTimeout = 10 * time.Second
	connectTimeout  = 5 * time.Second
)

// OpenStore opens the store selected by cfg. An unreachable MongoDB is
// logged and the store is still returned; requests fail until it is up,
// and the profile index is created by the first profile write.
func OpenStore(ctx context.Context, cfg config.Config) (repositories.Store, error) {
	if cfg.StoreDriver == config.DriverBadger {
		store, err := repositories.OpenBadgerStore(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		log.Printf("Opened badger store at %s", cfg.BadgerPath)
		return store, nil
	}

	store, err := repositories.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTransactions)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		log.Printf("MongoDB connection error: %v (indexes will be created on first write)", err)
		return store, nil
	}
	log.Println("Connected to MongoDB")

	if err := store.EnsureIndexes(pingCtx); err != nil {
		log.Printf("MongoDB index error: %v (retried on next profile write)", err)
	}
	return store, nil
}

// NewServer wraps handler in an http.Server with request timeouts
func NewServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Serve runs srv on ln until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// RunAppServer serves the API until ctx is done and returns an exit code
func RunAppServer(ctx context.Context, cfg config.Config) int {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		log.Printf("Failed to open store: %v", err)
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Printf("Failed to listen on %s: %v", cfg.Addr, err)
		return 1
	}

	srv := NewServer(routes.SetupRoutes(store, cfg))
	log.Printf("Server running on %s", ln.Addr())
	if err := Serve(ctx, srv, ln); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	log.Println("Server stopped")
	return 0
}
