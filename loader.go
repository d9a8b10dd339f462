package relay42

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// configFile is the YAML document ConfigLoader reads:
//
//	site_id: "1232"
//	partner_id: "2001"
//	endpoint: https://t.svtrd.com
//	timeout: 10s
//	debug: false
type configFile struct {
	SiteID    string `yaml:"site_id"`
	PartnerID string `yaml:"partner_id"`
	Endpoint  string `yaml:"endpoint"`
	Timeout   string `yaml:"timeout"`
	Debug     bool   `yaml:"debug"`
}

// ConfigLoader reads a YAML config file and watches it for changes, so a
// deployment can rotate site or partner IDs without a restart. Feed reloads
// back into the SDK with:
//
//	loader.OnChange(func(cfg relay42.Config) { relay42.Configure(cfg) })
type ConfigLoader struct {
	path     string
	mu       sync.RWMutex
	current  Config
	onChange []func(Config)
}

// NewConfigLoader creates a ConfigLoader and performs the initial load.
func NewConfigLoader(path string) (*ConfigLoader, error) {
	l := &ConfigLoader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Config returns the current (latest) configuration.
func (l *ConfigLoader) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the config reloads.
func (l *ConfigLoader) OnChange(fn func(Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the config on file
// changes. Call the returned stop function to clean up. A rewrite that does
// not parse or validate keeps the previous configuration.
func (l *ConfigLoader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("relay42: config watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("relay42: config watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					cfg, err := l.load()
					if err != nil {
						// Keep serving the old config.
						continue
					}
					l.swap(cfg)
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate re-read of the config file.
func (l *ConfigLoader) Reload() (Config, error) {
	cfg, err := l.load()
	if err != nil {
		return Config{}, err
	}
	l.swap(cfg)
	return cfg, nil
}

// swap installs cfg and notifies the registered callbacks.
func (l *ConfigLoader) swap(cfg Config) {
	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(Config), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(cfg)
	}
}

func (l *ConfigLoader) load() (Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return Config{}, fmt.Errorf("relay42: read config %s: %w", l.path, err)
	}
	var fc configFile
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("relay42: parse config %s: %w", l.path, err)
	}
	if fc.SiteID == "" {
		return Config{}, errors.New("relay42: config: site_id is required")
	}

	cfg := Config{
		SiteID:    fc.SiteID,
		PartnerID: fc.PartnerID,
		Endpoint:  fc.Endpoint,
		Timeout:   parseTimeout(fc.Timeout),
		Debug:     fc.Debug,
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return cfg, nil
}
