package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

func findFreePort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	defer listener.Close()

	return listener.Addr().(*net.TCPAddr).Port
}

func TestStartOpsServer_Endpoints(t *testing.T) {
	logger := log.WithField("test", "http")

	// Используем свободный порт
	port := findFreePort(t)
	addr := fmt.Sprintf(":%d", port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthHandler := healthcheck.NewHandler(version.String())
	srv := startOpsServer(ctx, addr, logger, healthHandler)
	defer shutdownHTTP(srv, logger)

	// Даём время на запуск
	time.Sleep(100 * time.Millisecond)

	metricsURL := fmt.Sprintf("http://localhost:%d/metrics", port)
	resp, err := http.Get(metricsURL)
	if err != nil {
		t.Fatalf("failed to get /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 for /metrics, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if len(body) == 0 {
		t.Error("/metrics should return non-empty response")
	}

	healthURL := fmt.Sprintf("http://localhost:%d/healthz", port)
	resp2, err := http.Get(healthURL)
	if err != nil {
		t.Fatalf("failed to get /healthz: %v", err)
	}
	defer resp2.Body.Close()

	if resp2.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 for /healthz, got %d", resp2.StatusCode)
	}

	liveURL := fmt.Sprintf("http://localhost:%d/livez", port)
	resp3, err := http.Get(liveURL)
	if err != nil {
		t.Fatalf("failed to get /livez: %v", err)
	}
	defer resp3.Body.Close()

	if resp3.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 for /livez, got %d", resp3.StatusCode)
	}
}

func TestRun_MemoryDriverServesAndStops(t *testing.T) {
	apiPort := findFreePort(t)
	opsPort := findFreePort(t)

	cfg := DefaultConfig()
	cfg.APIAddr = fmt.Sprintf(":%d", apiPort)
	cfg.OpsAddr = fmt.Sprintf(":%d", opsPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg)
	}()

	// Даём время на запуск
	time.Sleep(200 * time.Millisecond)

	healthURL := fmt.Sprintf("http://localhost:%d/health", apiPort)
	resp, err := http.Get(healthURL)
	if err != nil {
		t.Fatalf("failed to get /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 for /health, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode /health body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}

	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Fatalf("unexpected Run error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "oracle"

	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error for invalid config")
	}
}
