package relay42

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// staticStatusTransport fabricates a response with a fixed status code,
// bypassing the network entirely.
type staticStatusTransport struct {
	status int
}

func (t *staticStatusTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: t.status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    r,
	}, nil
}

func TestSendSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Config{SiteID: "1232", Endpoint: server.URL})
	res := client.send(context.Background(), "/t-1232", []param{{"i", "u1"}})

	require.NoError(t, res.Err)
	require.Equal(t, http.StatusOK, res.Status)
	require.True(t, res.OK())
}

func TestSendNoBodyNoCustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Zero(t, r.ContentLength)
		require.Empty(t, r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Config{SiteID: "1232", Endpoint: server.URL})
	res := client.send(context.Background(), "/t-1232", []param{{"i", "u1"}})
	require.NoError(t, res.Err)
}

func TestSendErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{"service unavailable", http.StatusServiceUnavailable},
		{"not found", http.StatusNotFound},
		{"redirect is not success", http.StatusNotModified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			client := New(Config{SiteID: "1232", Endpoint: server.URL})
			res := client.send(context.Background(), "/t-1232", []param{{"i", "u1"}})

			require.False(t, res.OK())
			require.Equal(t, tc.status, res.Status)

			var se *StatusError
			require.ErrorAs(t, res.Err, &se)
			require.Equal(t, tc.status, se.Code)
		})
	}
}

func TestSendTransportErrorSurfacesUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close() // connection refused from here on

	client := New(Config{SiteID: "1232", Endpoint: endpoint})
	res := client.send(context.Background(), "/t-1232", []param{{"i", "u1"}})

	require.Error(t, res.Err)

	// The *url.Error from the transport comes through as-is, not wrapped in
	// an SDK error kind.
	var ue *url.Error
	require.ErrorAs(t, res.Err, &ue)
	require.NotErrorIs(t, res.Err, ErrInvalidRequest)
	require.NotErrorIs(t, res.Err, ErrUnknownResponse)
}

func TestSendInvalidEndpoint(t *testing.T) {
	cases := []struct {
		name     string
		endpoint string
	}{
		{"no scheme", "t.svtrd.com"},
		{"garbage", "://nope"},
		{"scheme only", "https://"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := New(Config{SiteID: "1232", Endpoint: tc.endpoint})
			res := client.send(context.Background(), "/t-1232", []param{{"i", "u1"}})

			require.ErrorIs(t, res.Err, ErrInvalidRequest)
			require.Zero(t, res.Status)
		})
	}
}

func TestSendUnusableStatus(t *testing.T) {
	client := New(Config{
		SiteID:     "1232",
		HTTPClient: &http.Client{Transport: &staticStatusTransport{status: 0}},
	})

	res := client.send(context.Background(), "/t-1232", []param{{"i", "u1"}})
	require.ErrorIs(t, res.Err, ErrUnknownResponse)
}

func TestRequestURL(t *testing.T) {
	t.Run("joins endpoint path and query", func(t *testing.T) {
		client := New(Config{SiteID: "1232"})
		u, err := client.requestURL("/t-1232", []param{{"i", "u1"}, {"e", "true"}})
		require.NoError(t, err)
		require.Equal(t, "https://t.svtrd.com/t-1232?i=u1&e=true", u)
	})

	t.Run("trims a trailing slash", func(t *testing.T) {
		client := New(Config{SiteID: "1232", Endpoint: "https://collector.example.com/"})
		u, err := client.requestURL("/syncResponse", []param{{"pid", "9"}})
		require.NoError(t, err)
		require.Equal(t, "https://collector.example.com/syncResponse?pid=9", u)
	})

	t.Run("keeps an endpoint base path", func(t *testing.T) {
		client := New(Config{SiteID: "1232", Endpoint: "https://proxy.example.com/relay42"})
		u, err := client.requestURL("/t-1232", []param{{"i", "u1"}})
		require.NoError(t, err)
		require.Equal(t, "https://proxy.example.com/relay42/t-1232?i=u1", u)
	})
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Code: 503}
	require.Equal(t, "relay42: collector returned status 503", err.Error())
}

// TestConcurrentCalls exercises the client from many goroutines at once;
// the race detector keeps it honest.
func TestConcurrentCalls(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Config{SiteID: "1232", PartnerID: "2001", Endpoint: server.URL})

	var callers sync.WaitGroup
	for i := 0; i < 10; i++ {
		callers.Add(1)
		go func(n int) {
			defer callers.Done()
			ctx := context.Background()
			for j := 0; j < 5; j++ {
				client.TrackEngagement(ctx, Engagement{UUID: "u", Type: "Click"})
				client.TrackFact(ctx, Fact{UUID: "u", Type: "Visited", TTLSeconds: 60})
				client.SyncMapping(ctx, Mapping{UUID: "u", ProfileID: "p"})
			}
		}(i)
	}
	callers.Wait()

	// Close blocks until every in-flight delivery is done.
	client.Close()
	require.Equal(t, int32(150), hits.Load())
}

func TestCloseWithNothingInFlight(t *testing.T) {
	client := New(Config{SiteID: "1232"})
	client.Close() // must not hang or panic

	var nilClient *Client
	nilClient.Close() // nil-safe, like the rest of the call surface
}
