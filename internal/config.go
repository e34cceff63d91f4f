package internal

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v8"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	API    APIConfig         `yaml:"api"`
	Search SearchConfig      `yaml:"search"`
	Store  StoreConfig       `yaml:"store"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Events EventsConfig      `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.SQLite.Validate(); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	return c.Events.Validate()
}

// ApplyEnv overrides loaded values with any PETDESK_* environment variables
// that are set, then validates the result.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	return c.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level" env:"PETDESK_LOG_LEVEL"`
	// LogFile receives the terminal client's logs; stdout belongs to the UI.
	LogFile string     `yaml:"log_file" env:"PETDESK_LOG_FILE"`
	HTTP    HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogFile, validation.Required),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// HTTPConfig holds the dev server listener configuration.
type HTTPConfig struct {
	Port int `yaml:"port" env:"PETDESK_HTTP_PORT"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// APIConfig points the terminal client at the pet resource.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"PETDESK_API_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"PETDESK_API_TIMEOUT"`
}

// Validate validates the API configuration.
func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

func httpURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an http or https URL")
	}
	return nil
}

// SearchConfig holds the list page search settings.
type SearchConfig struct {
	Debounce time.Duration `yaml:"debounce" env:"PETDESK_SEARCH_DEBOUNCE"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// StoreConfig holds the path to the db.json file served by the dev server.
type StoreConfig struct {
	Path string `yaml:"path" env:"PETDESK_STORE_PATH"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"PETDESK_SQLITE_PATH"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// EventsConfig holds SSE settings.
type EventsConfig struct {
	// Throttle is the minimum interval between pets.changed events.
	Throttle time.Duration `yaml:"throttle" env:"PETDESK_EVENTS_THROTTLE"`
	// Debounce coalesces bursts of file-system events from the watcher.
	Debounce time.Duration `yaml:"debounce" env:"PETDESK_EVENTS_DEBOUNCE"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Throttle, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.Debounce, validation.Required, validation.Min(time.Millisecond)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			LogFile:  "petdesk.log",
			HTTP: HTTPConfig{
				Port: 3333,
			},
		},
		API: APIConfig{
			BaseURL: "http://localhost:3333",
			Timeout: 10 * time.Second,
		},
		Search: SearchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Store: StoreConfig{
			Path: "./db.json",
		},
		SQLite: SQLiteConfig{
			Path: "./petdesk.db",
		},
		Events: EventsConfig{
			Throttle: 2 * time.Second,
			Debounce: 200 * time.Millisecond,
		},
	}
}
