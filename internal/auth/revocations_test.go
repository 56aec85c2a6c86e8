package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocations_SyncOnceReplacesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/revoked", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jtis":["a","b"]}`))
	}))
	defer srv.Close()

	revoked := NewRevocations(srv.URL, time.Minute, srv.Client())
	assert.False(t, revoked.Contains("a"))

	revoked.SyncOnce(context.Background())
	assert.True(t, revoked.Contains("a"))
	assert.True(t, revoked.Contains("b"))
	assert.False(t, revoked.Contains("c"))
}

func TestRevocations_RemovedIDsDropOutOnNextSync(t *testing.T) {
	var body atomic.Value
	body.Store(`{"jtis":["a","b"]}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body.Load().(string)))
	}))
	defer srv.Close()

	revoked := NewRevocations(srv.URL, time.Minute, srv.Client())
	revoked.SyncOnce(context.Background())
	require.True(t, revoked.Contains("b"))

	body.Store(`{"jtis":["a"]}`)
	revoked.SyncOnce(context.Background())
	assert.True(t, revoked.Contains("a"))
	assert.False(t, revoked.Contains("b"))
}

func TestRevocations_FailedSyncKeepsPreviousSnapshot(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"jtis":["a"]}`))
	}))
	defer srv.Close()

	revoked := NewRevocations(srv.URL, time.Minute, srv.Client())
	revoked.SyncOnce(context.Background())
	require.True(t, revoked.Contains("a"))

	fail.Store(true)
	revoked.SyncOnce(context.Background())
	assert.True(t, revoked.Contains("a"))
}

func TestRevocations_NonStringIDsAreIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jtis":["a",42,null,"b"]}`))
	}))
	defer srv.Close()

	revoked := NewRevocations(srv.URL, time.Minute, srv.Client())
	revoked.SyncOnce(context.Background())
	assert.True(t, revoked.Contains("a"))
	assert.True(t, revoked.Contains("b"))
	assert.False(t, revoked.Contains("42"))
}
