package relay42

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, "https://t.svtrd.com", cfg.Endpoint)
	require.Equal(t, 10*time.Second, cfg.Timeout)
	require.Empty(t, cfg.SiteID)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("RELAY42_SITE_ID", "1232")
	t.Setenv("RELAY42_PARTNER_ID", "2001")
	t.Setenv("RELAY42_ENDPOINT", "https://collector.example.com")
	t.Setenv("RELAY42_TIMEOUT", "3s")
	t.Setenv("RELAY42_DEBUG", "true")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, "1232", cfg.SiteID)
	require.Equal(t, "2001", cfg.PartnerID)
	require.Equal(t, "https://collector.example.com", cfg.Endpoint)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.True(t, cfg.Debug)
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("RELAY42_SITE_ID", "1232")
	t.Setenv("RELAY42_PARTNER_ID", "")
	t.Setenv("RELAY42_ENDPOINT", "")
	t.Setenv("RELAY42_TIMEOUT", "")
	t.Setenv("RELAY42_DEBUG", "")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, "1232", cfg.SiteID)
	require.Empty(t, cfg.PartnerID)
	require.Equal(t, DefaultEndpoint, cfg.Endpoint)
	require.Equal(t, defaultTimeout, cfg.Timeout)
	require.False(t, cfg.Debug)
}

func TestConfigFromEnvRequiresSiteID(t *testing.T) {
	t.Setenv("RELAY42_SITE_ID", "")

	_, err := ConfigFromEnv()
	require.Error(t, err)
	require.Contains(t, err.Error(), "RELAY42_SITE_ID")
}

func TestParseTimeout(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Duration
	}{
		{"seconds", "5s", 5 * time.Second},
		{"milliseconds", "250ms", 250 * time.Millisecond},
		{"compound", "1m30s", 90 * time.Second},
		{"empty falls back", "", defaultTimeout},
		{"garbage falls back", "soon", defaultTimeout},
		{"zero falls back", "0s", defaultTimeout},
		{"negative falls back", "-3s", defaultTimeout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, parseTimeout(tc.in))
		})
	}
}
