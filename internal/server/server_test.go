package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatBureau/devops-health/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Http: config.HttpConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  time.Second,
			WriteTimeout: 2 * time.Second,
			IdleTimeout:  time.Second,
		},
		CPUSampleInterval: time.Second,
	}
}

func TestWriteTimeoutCoversSample(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, 2*time.Second, New(cfg, http.NotFoundHandler()).WriteTimeout())

	cfg.CPUSampleInterval = 3 * time.Second
	assert.Equal(t, 5*time.Second, New(cfg, http.NotFoundHandler()).WriteTimeout())

	cfg.Http.WriteTimeout = 0
	assert.Zero(t, New(cfg, http.NotFoundHandler()).WriteTimeout())
}

func TestStartServeStop(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := New(testConfig(), handler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	resp, err := http.Get("http://" + srv.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStartListenError(t *testing.T) {
	cfg := testConfig()
	cfg.Http.Port = -1

	srv := New(cfg, http.NotFoundHandler())
	err := srv.Start(context.Background())
	assert.ErrorContains(t, err, "failed to listen on")

	addr := make(chan net.Addr, 1)
	go func() { addr <- srv.Addr() }()
	select {
	case a := <-addr:
		assert.Nil(t, a)
	case <-time.After(2 * time.Second):
		t.Fatal("Addr blocked after a failed listen")
	}
	assert.ErrorContains(t, srv.ListenErr(), "failed to listen on")

	// a retry must not panic on the already-closed ready channel
	assert.NotPanics(t, func() {
		assert.Error(t, srv.Start(context.Background()))
	})
}
