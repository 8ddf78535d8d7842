package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/emory/internal/config"
	"github.com/phrazzld/emory/internal/ranking"
	"github.com/phrazzld/emory/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "debug"},
		Game: config.GameConfig{
			PairCount:     4,
			MismatchDelay: 50 * time.Millisecond,
			Symbols:       config.DefaultSymbols,
			MaxSessions:   5,
		},
		Storage: config.StorageConfig{Driver: "memory"},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"memory", config.StorageConfig{Driver: "memory"}},
		{"sqlite", config.StorageConfig{Driver: "sqlite", Path: filepath.Join(dir, "ranking.sqlite")}},
		{"bolt", config.StorageConfig{Driver: "bolt", Path: filepath.Join(dir, "ranking.db")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv, err := openStore(ctx, tc.cfg, discardLogger())
			require.NoError(t, err)
			defer func() { assert.NoError(t, kv.Close()) }()

			_, err = kv.Get(ctx, ranking.Key)
			assert.ErrorIs(t, err, store.ErrNotFound)
			require.NoError(t, kv.Put(ctx, ranking.Key, []byte(`[]`)))
			got, err := kv.Get(ctx, ranking.Key)
			require.NoError(t, err)
			assert.Equal(t, []byte(`[]`), got)
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		_, err := openStore(ctx, config.StorageConfig{Driver: "postgres"}, discardLogger())
		assert.Error(t, err)
	})
}

func TestRankingSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := config.StorageConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "ranking.sqlite")}

	kv, err := openStore(ctx, cfg, discardLogger())
	require.NoError(t, err)
	_, err = ranking.NewStore(kv, discardLogger()).AddScore(ctx, ranking.DefaultRecords[0])
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	kv, err = openStore(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer kv.Close()
	r, err := ranking.NewStore(kv, discardLogger()).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, r, len(ranking.DefaultRecords)+1)
}

func TestRouter(t *testing.T) {
	app, err := newApplication(testConfig(), discardLogger(), store.NewMemoryKVStore())
	require.NoError(t, err)
	defer app.cleanup()
	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, err = http.Post(srv.URL+"/api/games", "application/json", nil)
	require.NoError(t, err)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/games/"+created.ID+"/start", "application/json",
		strings.NewReader(`{"player_name":"Ana"}`))
	require.NoError(t, err)
	var started struct {
		State string `json:"state"`
		Board struct {
			Cards []json.RawMessage `json:"cards"`
		} `json:"board"`
		TraceID string `json:"trace_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&started))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "playing", started.State)
	assert.Len(t, started.Board.Cards, 8)

	resp, err = http.Get(srv.URL + "/api/games/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	var errBody struct {
		Error   string `json:"error"`
		TraceID string `json:"trace_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Game not found", errBody.Error)
	assert.Len(t, errBody.TraceID, 32)

	resp, err = http.Get(srv.URL + "/api/ranking")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStartHTTPServer_ShutsDownOnCancel(t *testing.T) {
	kv := store.NewMemoryKVStore()
	app, err := newApplication(testConfig(), discardLogger(), kv)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, app.setupRouter()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = kv.Get(context.Background(), ranking.Key)
	assert.ErrorIs(t, err, store.ErrStoreClosed, "cleanup closes the store")
}

func TestGameConfig(t *testing.T) {
	cfg := gameConfig(config.GameConfig{
		PairCount:     2,
		MismatchDelay: time.Second,
		Symbols:       []string{"A", "B", "C"},
	})
	assert.Equal(t, 2, cfg.PairCount)
	assert.Equal(t, time.Second, cfg.MismatchDelay)
	require.Len(t, cfg.Symbols, 3)
	assert.Equal(t, "B", string(cfg.Symbols[1]))
}
