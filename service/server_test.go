package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"socialnetwork/app/config"
	"socialnetwork/app/repositories"
	"socialnetwork/app/routes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silenceLog(t *testing.T) {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
}

func TestServerGracefulShutdown(t *testing.T) {
	silenceLog(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := fmt.Sprintf("http://%s/", listener.Addr())

	started := make(chan struct{})
	srv := NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		// Simulate work.
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() {
		served <- Serve(ctx, srv, listener)
	}()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get(url)
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	<-started
	cancel()

	require.NoError(t, <-served)
	assert.Equal(t, http.StatusOK, <-status, "in-flight request must complete")

	_, err = http.Get(url)
	assert.Error(t, err, "server must stop accepting connections")
}

func TestServeReturnsListenerErrors(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	listener.Close()

	err = Serve(context.Background(), NewServer(http.NotFoundHandler()), listener)
	assert.Error(t, err)
}

func TestOpenStoreBadger(t *testing.T) {
	silenceLog(t)
	cfg := config.Config{StoreDriver: config.DriverBadger, BadgerPath: filepath.Join(t.TempDir(), "badger")}

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.IsType(t, &repositories.BadgerStore{}, store)
	assert.DirExists(t, cfg.BadgerPath)
}

func TestOpenStoreMongoUnreachable(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := config.Config{
		StoreDriver:   config.DriverMongo,
		MongoURI:      "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100&connectTimeoutMS=100",
		MongoDatabase: "social-network-test",
	}

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err, "an unreachable server is not fatal")
	defer store.Close(context.Background())

	assert.IsType(t, &repositories.MongoStore{}, store)
	assert.Contains(t, buf.String(), "MongoDB connection error")
}

func TestOpenStoreMongoInvalidURI(t *testing.T) {
	cfg := config.Config{StoreDriver: config.DriverMongo, MongoURI: "postgres://localhost"}

	_, err := OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestServeAPI(t *testing.T) {
	silenceLog(t)

	store, err := repositories.OpenBadgerStore("")
	require.NoError(t, err)
	defer store.Close(context.Background())

	cfg := config.Config{CORSOrigin: "http://localhost:5173", BodyLimit: 1 << 20}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := fmt.Sprintf("http://%s", listener.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() {
		served <- Serve(ctx, NewServer(routes.SetupRoutes(store, cfg)), listener)
	}()
	defer func() {
		cancel()
		require.NoError(t, <-served)
	}()

	resp, err := http.Post(base+"/register", "application/json", strings.NewReader(`{"email":"live@example.com"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(base + "/profile/live@example.com")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"email":"live@example.com","name":"","picture":"","description":"","status":"","gallery":[]}`, string(body))
}
