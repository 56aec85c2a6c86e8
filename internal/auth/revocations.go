package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

type revokedResponse struct {
	JTIs []any `json:"jtis"`
}

// Revocations is a process-scoped cache of revoked token ids, refreshed on a
// fixed interval from the auth service. Readers observe an immutable
// snapshot that is replaced wholesale on each successful poll, never mutated
// in place; a failed poll leaves the previous snapshot intact.
type Revocations struct {
	url      string
	interval time.Duration
	http     *http.Client
	log      *slog.Logger

	snapshot atomic.Value // map[string]struct{}
}

// NewRevocations creates a revocation cache polling
// <authBaseURL>/auth/revoked on the given interval.
func NewRevocations(authBaseURL string, interval time.Duration, httpClient *http.Client) *Revocations {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	r := &Revocations{
		url:      authBaseURL + "/auth/revoked",
		interval: interval,
		http:     httpClient,
		log:      slog.Default().With("component", "revocations"),
	}
	r.snapshot.Store(map[string]struct{}{})
	return r
}

// Contains reports whether the given token id is in the current snapshot.
func (r *Revocations) Contains(jti string) bool {
	set := r.snapshot.Load().(map[string]struct{})
	_, ok := set[jti]
	return ok
}

// Start syncs once immediately and then polls on the configured interval
// until the context is cancelled.
func (r *Revocations) Start(ctx context.Context) {
	r.SyncOnce(ctx)
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.SyncOnce(ctx)
			}
		}
	}()
}

// SyncOnce fetches the revocation list and replaces the snapshot. Transport
// or decode failures are logged and leave the previous snapshot in place
// (fail-open on transport errors, fail-closed on explicitly revoked ids).
func (r *Revocations) SyncOnce(ctx context.Context) {
	set, err := r.fetch(ctx)
	if err != nil {
		r.log.Warn("revocation sync failed", "url", r.url, "error", err)
		return
	}
	r.snapshot.Store(set)
}

func (r *Revocations) fetch(ctx context.Context) (map[string]struct{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload revokedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(payload.JTIs))
	for _, v := range payload.JTIs {
		if s, ok := v.(string); ok {
			set[s] = struct{}{}
		}
	}
	return set, nil
}
