package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

var (
	once     sync.Once
	instance *Config
	loadErr  error
)

// ComponentConfig holds the network settings a service listens on.
type ComponentConfig struct {
	Protocol string `yaml:"protocol" envconfig:"protocol"`
	Host     string `yaml:"host" envconfig:"host"`
	Port     int    `yaml:"port" envconfig:"port"`
	Debug    bool   `yaml:"debug" envconfig:"debug"`
}

// OpenSearchConfig points the catalog at an OpenSearch index with stored search templates.
type OpenSearchConfig struct {
	Scheme   string        `yaml:"scheme" envconfig:"scheme"`
	Host     string        `yaml:"host" envconfig:"host"`
	Port     int           `yaml:"port" envconfig:"port"`
	Index    string        `yaml:"index" envconfig:"index"`
	Template string        `yaml:"template" envconfig:"template"`
	User     string        `yaml:"user" envconfig:"user"`
	Password string        `yaml:"password" envconfig:"password"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"timeout"`
}

// CatalogConfig selects the search backend: "sqlite", "opensearch" or "orchestrator".
type CatalogConfig struct {
	Backend string `yaml:"backend" envconfig:"backend"`
	PerPage int    `yaml:"per_page" envconfig:"per_page"`
}

// StorageConfig is the local SQLite database shared by the catalog and the wishlist.
type StorageConfig struct {
	Path string `yaml:"path" envconfig:"path"`
}

// WishlistConfig limits how fast one owner may toggle entries.
type WishlistConfig struct {
	RatePerSecond float64 `yaml:"rate_per_second" envconfig:"rate_per_second"`
	Burst         int     `yaml:"burst" envconfig:"burst"`
}

// UIConfig controls optional affordances of the results page.
type UIConfig struct {
	Preview  bool   `yaml:"preview" envconfig:"preview"`
	Language string `yaml:"language" envconfig:"language"`
}

// LogConfig mirrors the logrus knobs.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"level"`
	JSON  bool   `yaml:"json" envconfig:"json"`
	Path  string `yaml:"path" envconfig:"path"`
}

// Config is the root of shelf.yaml.
type Config struct {
	WebAdapter   ComponentConfig  `yaml:"web_adapter" envconfig:"web_adapter"`
	Orchestrator ComponentConfig  `yaml:"orchestrator" envconfig:"orchestrator"`
	OpenSearch   OpenSearchConfig `yaml:"opensearch" envconfig:"opensearch"`
	Catalog      CatalogConfig    `yaml:"catalog" envconfig:"catalog"`
	Storage      StorageConfig    `yaml:"storage" envconfig:"storage"`
	Wishlist     WishlistConfig   `yaml:"wishlist" envconfig:"wishlist"`
	UI           UIConfig         `yaml:"ui" envconfig:"ui"`
	Log          LogConfig        `yaml:"log" envconfig:"log"`
}

// Default returns the configuration used when shelf.yaml leaves a value out.
func Default() *Config {
	return &Config{
		WebAdapter:   ComponentConfig{Protocol: "http", Host: "0.0.0.0", Port: 50080},
		Orchestrator: ComponentConfig{Protocol: "grpc", Host: "localhost", Port: 50053},
		OpenSearch: OpenSearchConfig{
			Scheme:   "http",
			Host:     "localhost",
			Port:     9200,
			Index:    "flibusta",
			Template: "fl_mixed_search",
			Timeout:  5 * time.Second,
		},
		Catalog:  CatalogConfig{Backend: "sqlite", PerPage: 24},
		Storage:  StorageConfig{Path: "shelf.db"},
		Wishlist: WishlistConfig{RatePerSecond: 5, Burst: 10},
		UI:       UIConfig{Preview: true, Language: "en"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and then applies SHELF_* environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := envconfig.Process("shelf", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	return cfg, cfg.Validate()
}

// Get returns the process-wide configuration, loading it on first use
// from SHELF_CONFIG (default shelf.yaml).
func Get() (*Config, error) {
	once.Do(func() {
		path := os.Getenv("SHELF_CONFIG")
		if path == "" {
			path = "shelf.yaml"
		}
		instance, loadErr = Load(path)
	})
	return instance, loadErr
}

func (c *Config) Validate() error {
	switch c.Catalog.Backend {
	case "sqlite", "opensearch", "orchestrator":
	default:
		return ErrInvalid(fmt.Sprintf("unknown catalog backend %q", c.Catalog.Backend))
	}
	if c.Catalog.PerPage <= 0 {
		return ErrInvalid("catalog.per_page must be positive")
	}
	if c.Storage.Path == "" {
		return ErrInvalid("storage.path is required")
	}
	if c.Catalog.Backend == "opensearch" && (c.OpenSearch.Host == "" || c.OpenSearch.Index == "") {
		return ErrInvalid("opensearch.host and opensearch.index are required")
	}
	return nil
}

type invalidErr string

func (e invalidErr) Error() string { return string(e) }

func ErrInvalid(msg string) error { return invalidErr(msg) }

// Address returns host:port, handy for listeners and gRPC targets.
func (c ComponentConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FullURL returns protocol://host:port.
func (c ComponentConfig) FullURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Protocol, c.Host, c.Port)
}

// BaseURL is the OpenSearch root, without index.
func (c OpenSearchConfig) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Scheme, c.Host, c.Port)
}
