package relay42

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// send builds the final URL, performs one GET against the collector and
// classifies the outcome. Transport errors surface unchanged so callers can
// inspect the underlying *url.Error.
func (c *Client) send(ctx context.Context, path string, params []param) Result {
	target, err := c.requestURL(path, params)
	if err != nil {
		return Result{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %v", ErrInvalidRequest, err)}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	requestDuration.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		c.debugf("GET %s failed: %v", target, err)
		return Result{Err: err}
	}
	defer resp.Body.Close()

	// Drain the pixel body so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode < 100:
		c.debugf("GET %s returned unusable status %d", target, resp.StatusCode)
		return Result{Err: ErrUnknownResponse}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.debugf("GET %s returned status %d", target, resp.StatusCode)
		return Result{Status: resp.StatusCode, Err: &StatusError{Code: resp.StatusCode}}
	default:
		c.debugf("GET %s acknowledged with %d", target, resp.StatusCode)
		return Result{Status: resp.StatusCode}
	}
}

// requestURL joins the configured endpoint, the call path and the encoded
// query. The endpoint must parse as an absolute URL with a host.
func (c *Client) requestURL(path string, params []param) (string, error) {
	base, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: endpoint %q: %v", ErrInvalidRequest, c.cfg.Endpoint, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return "", fmt.Errorf("%w: endpoint %q is not an absolute URL", ErrInvalidRequest, c.cfg.Endpoint)
	}
	return strings.TrimSuffix(base.String(), "/") + path + "?" + encodeQuery(params), nil
}

// debugf logs through the standard logger when Config.Debug is set. The SDK
// is silent otherwise; logging outcomes is the host application's business.
func (c *Client) debugf(format string, args ...any) {
	if c.cfg.Debug {
		log.Printf("[Relay42] "+format, args...)
	}
}
