package relay42

import (
	"context"
	"sync"
)

// The process-wide default client. Configure replaces it; the package-level
// tracking functions read it. Guarded so a late reconfiguration (e.g. from a
// ConfigLoader reload) is safe against concurrent calls.
var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// Configure replaces the process-wide default client and returns it.
// Reconfiguration swaps the whole snapshot; calls already in flight keep the
// configuration they started with.
func Configure(cfg Config) *Client {
	c := New(cfg)
	defaultMu.Lock()
	defaultClient = c
	defaultMu.Unlock()
	return c
}

// Default returns the process-wide default client, or nil before the first
// Configure call. A nil client rejects every call with ErrNotConfigured.
func Default() *Client {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClient
}

// TrackEngagement reports a behavioral event through the default client.
func TrackEngagement(ctx context.Context, e Engagement) <-chan Result {
	return Default().TrackEngagement(ctx, e)
}

// TrackFact reports a profile fact through the default client.
func TrackFact(ctx context.Context, f Fact) <-chan Result {
	return Default().TrackFact(ctx, f)
}

// SyncMapping links a visitor to a partner profile through the default
// client.
func SyncMapping(ctx context.Context, m Mapping) <-chan Result {
	return Default().SyncMapping(ctx, m)
}
