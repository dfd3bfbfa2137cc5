package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomeworks/verba/internal/logging"
	"github.com/tomeworks/verba/pkg/verba"
	"github.com/tomeworks/verba/pkg/verba/config"
	"github.com/tomeworks/verba/pkg/verba/store/memstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	svc, err := verba.New(verba.Options{Store: memstore.New()})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })

	srv, err := New(config.ServerConfig{Addr: "127.0.0.1:0", ShutdownGraceSeconds: 1}, logging.New("error"), svc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestHealthRoute(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("body: got %q", w.Body.String())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// Give the listener a moment to come up, then ask for shutdown.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run should stop cleanly on cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}
