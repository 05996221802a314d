package main

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/smarthealthquote/smarthealthquote/internal/e2etest"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "SMARTHEALTHQUOTE_ADDR":
		return "localhost:0", true
	case "SMARTHEALTHQUOTE_SQLITE_URL":
		return ":memory:", true
	case "SMARTHEALTHQUOTE_REPLY_DELAY":
		return "0s", true
	case "SMARTHEALTHQUOTE_QUOTE_DELAY":
		return "10ms", true
	default:
		return "", false
	}
}

// startTestServer runs the full application on a random port with an
// in-memory database and near-zero conversation delays. Startup has a hard
// deadline so a run() that never reaches the listener fails the suite
// instead of hanging it.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	type startResult struct {
		srv *e2etest.Server
		err error
	}
	resultCh := make(chan startResult, 1)
	go func() {
		srv, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
		resultCh <- startResult{srv: srv, err: err}
	}()

	select {
	case result := <-resultCh:
		require.NoError(t, result.err)
		return result.srv
	case <-time.After(10 * time.Second):
		t.Fatal("server did not start within 10 seconds")
		return nil
	}
}

// Test_run_startsServer pins down that run() reaches the listener: the
// background maintenance loops must not run on the startup goroutine.
func Test_run_startsServer(t *testing.T) {
	t.Parallel()
	srv := startTestServer(t)

	resp, err := srv.Client().Get(context.Background(), "/api/healthy")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
