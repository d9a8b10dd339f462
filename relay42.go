package relay42

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Client sends tracking events for a single Relay42 site. Its configuration
// is an immutable snapshot taken by New; a Client is safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
	wg   sync.WaitGroup
}

// New creates a Client from cfg, filling in the default endpoint and
// timeout. An empty SiteID is allowed here: the client is simply
// unconfigured and every call reports ErrNotConfigured until a configured
// client replaces it.
func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{cfg: cfg, http: httpc}
	c.debugf("initialized for site %q against %s", cfg.SiteID, cfg.Endpoint)
	return c
}

// TrackEngagement reports a behavioral event. The returned channel delivers
// exactly one Result and is buffered, so the caller is free to ignore it.
// The request runs on its own goroutine; the call never blocks.
func (c *Client) TrackEngagement(ctx context.Context, e Engagement) <-chan Result {
	out := make(chan Result, 1)
	if !c.configured() {
		deliver(callEngagement, out, Result{Err: ErrNotConfigured})
		return out
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		params := engagementParams(e, cachebuster())
		deliver(callEngagement, out, c.send(ctx, "/t-"+c.cfg.SiteID, params))
	}()
	return out
}

// TrackFact reports a profile fact with a time-to-live.
func (c *Client) TrackFact(ctx context.Context, f Fact) <-chan Result {
	out := make(chan Result, 1)
	if !c.configured() {
		deliver(callFact, out, Result{Err: ErrNotConfigured})
		return out
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		params := factParams(f, cachebuster())
		deliver(callFact, out, c.send(ctx, "/t-"+c.cfg.SiteID, params))
	}()
	return out
}

// SyncMapping links a visitor to a partner profile. The partner ID on the
// mapping wins over Config.PartnerID; with neither present the call fails
// with ErrInvalidRequest and no request is issued.
func (c *Client) SyncMapping(ctx context.Context, m Mapping) <-chan Result {
	out := make(chan Result, 1)
	if !c.configured() {
		deliver(callMapping, out, Result{Err: ErrNotConfigured})
		return out
	}

	partnerID := m.PartnerID
	if partnerID == "" {
		partnerID = c.cfg.PartnerID
	}
	if partnerID == "" {
		deliver(callMapping, out, Result{
			Err: fmt.Errorf("%w: no partner ID on the mapping or in the configuration", ErrInvalidRequest),
		})
		return out
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		params := mappingParams(m, c.cfg.SiteID, partnerID, cachebuster())
		deliver(callMapping, out, c.send(ctx, "/syncResponse", params))
	}()
	return out
}

// Close waits until every in-flight call has delivered its Result. It does
// not cancel anything; cancellation stays with the caller's context.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.wg.Wait()
}

// configured reports whether the client can build requests at all. A nil
// client counts as unconfigured, so the package-level functions are safe to
// call before Configure.
func (c *Client) configured() bool {
	return c != nil && c.cfg.SiteID != ""
}

// deliver reports the terminal Result for one call: counted once, sent
// once, channel closed.
func deliver(call string, out chan Result, r Result) {
	requestsTotal.WithLabelValues(call, outcomeLabel(r)).Inc()
	out <- r
	close(out)
}
