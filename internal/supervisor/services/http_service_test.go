// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

type mockServer struct {
	serveErr    error
	shutdownErr error
	shutdowns   int
	done        chan struct{}
}

func newMockServer() *mockServer {
	return &mockServer{done: make(chan struct{})}
}

func (m *mockServer) ListenAndServe() error {
	if m.serveErr != nil {
		return m.serveErr
	}
	<-m.done
	return http.ErrServerClosed
}

func (m *mockServer) Shutdown(_ context.Context) error {
	m.shutdowns++
	close(m.done)
	return m.shutdownErr
}

func TestHTTPService_GracefulShutdown(t *testing.T) {
	server := newMockServer()
	svc := NewHTTPService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if server.shutdowns != 1 {
		t.Errorf("shutdowns = %d, want 1", server.shutdowns)
	}
}

func TestHTTPService_StartupFailure(t *testing.T) {
	server := newMockServer()
	server.serveErr = errors.New("address in use")
	svc := NewHTTPService(server, time.Second)

	if err := svc.Serve(context.Background()); err == nil {
		t.Fatal("expected startup failure to propagate")
	}
}

func TestHTTPService_ShutdownFailure(t *testing.T) {
	server := newMockServer()
	server.shutdownErr = errors.New("connections still open")
	svc := NewHTTPService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	err := <-errCh
	if err == nil || errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want shutdown failure", err)
	}
}
