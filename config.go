package relay42

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultEndpoint is the Relay42 collector reached when Config.Endpoint
	// is left empty.
	DefaultEndpoint = "https://t.svtrd.com"

	// defaultTimeout bounds a single collector round trip when no custom
	// HTTP client is supplied.
	defaultTimeout = 10 * time.Second
)

// Config holds the configuration for a Client.
type Config struct {
	// SiteID is the destination site identifier (required). A client with
	// an empty SiteID rejects every call with ErrNotConfigured.
	SiteID string
	// PartnerID is the default partner for SyncMapping calls that do not
	// carry their own.
	PartnerID string
	// Endpoint is the collector base URL (default: DefaultEndpoint).
	Endpoint string
	// Timeout bounds a single collector round trip (default: 10 seconds).
	// Ignored when HTTPClient is set.
	Timeout time.Duration
	// Debug enables diagnostic logging. The SDK is silent otherwise.
	Debug bool
	// HTTPClient overrides the transport used for collector requests.
	HTTPClient *http.Client
}

// DefaultConfig returns a Config pointing at the production collector.
// SiteID still has to be filled in before the config is usable.
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Timeout:  defaultTimeout,
	}
}

// envConfig mirrors Config with the flat types Viper reads from the
// environment.
type envConfig struct {
	SiteID    string `mapstructure:"RELAY42_SITE_ID"`
	PartnerID string `mapstructure:"RELAY42_PARTNER_ID"`
	Endpoint  string `mapstructure:"RELAY42_ENDPOINT"`
	Timeout   string `mapstructure:"RELAY42_TIMEOUT"`
	Debug     bool   `mapstructure:"RELAY42_DEBUG"`
}

// ConfigFromEnv reads .env (if present), then builds a Config from the
// environment via Viper. Missing .env is ignored (e.g. in CI); real env vars
// win over .env entries. RELAY42_SITE_ID must be set.
func ConfigFromEnv() (Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("RELAY42_SITE_ID", "")
	v.SetDefault("RELAY42_PARTNER_ID", "")
	v.SetDefault("RELAY42_ENDPOINT", DefaultEndpoint)
	v.SetDefault("RELAY42_TIMEOUT", "10s")
	v.SetDefault("RELAY42_DEBUG", false)

	var ec envConfig
	if err := v.Unmarshal(&ec); err != nil {
		return Config{}, err
	}

	if ec.SiteID == "" {
		return Config{}, errors.New("relay42: RELAY42_SITE_ID must be set")
	}

	return Config{
		SiteID:    ec.SiteID,
		PartnerID: ec.PartnerID,
		Endpoint:  ec.Endpoint,
		Timeout:   parseTimeout(ec.Timeout),
		Debug:     ec.Debug,
	}, nil
}

// parseTimeout parses a duration string. Returns the default timeout if the
// value is unset, invalid or not positive.
func parseTimeout(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}
