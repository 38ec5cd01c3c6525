// Package config loads the invoicekit configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables overriding file values.
const (
	EnvListen   = "INVOICEKIT_LISTEN"
	EnvMediaDir = "INVOICEKIT_MEDIA_DIR"
	EnvLogLevel = "INVOICEKIT_LOG_LEVEL"
)

// DefaultStoreID is the store used when the file configures none.
const DefaultStoreID = "default"

// Config is the root of the configuration file.
type Config struct {
	Listen      string `json:"listen"`       // HTTP listen address of invoiced
	MediaDir    string `json:"media_dir"`    // Root of logo and product images
	CatalogFile string `json:"catalog_file"` // JSON index product id -> thumbnail path
	LogLevel    string `json:"log_level"`    // debug, info, warn, error
	// AddressTemplates override the address templates by target ("pdf",
	// "text").
	AddressTemplates map[string]string `json:"address_templates"`
	Stores           []Store           `json:"stores"`
}

// Store configures one store view.
type Store struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Locale   string   `json:"locale"`   // BCP 47 tag, e.g. en-US
	Currency string   `json:"currency"` // ISO 4217 code
	Timezone string   `json:"timezone"` // IANA name
	Logo     string   `json:"logo"`     // Relative to MediaDir unless absolute
	Address  []string `json:"address"`  // Identity lines, may contain <br/>
	// Nil means true.
	PutOrderIDInvoice  *bool `json:"put_order_id_invoice,omitempty"`
	PutOrderIDShipment *bool `json:"put_order_id_shipment,omitempty"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the JSON file at path, applies environment overrides and
// defaults, and validates the result. An empty path loads the defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvMediaDir); v != "" {
		c.MediaDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.MediaDir == "" {
		c.MediaDir = "media"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Stores) == 0 {
		c.Stores = []Store{{ID: DefaultStoreID}}
	}
	for i := range c.Stores {
		s := &c.Stores[i]
		if s.Locale == "" {
			s.Locale = "en-US"
		}
		if s.Currency == "" {
			s.Currency = "USD"
		}
		if s.Timezone == "" {
			s.Timezone = "UTC"
		}
	}
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Stores))
	for i, s := range c.Stores {
		switch {
		case strings.TrimSpace(s.ID) == "":
			errs = append(errs, fmt.Errorf("config: stores[%d]: id is required", i))
		case seen[s.ID]:
			errs = append(errs, fmt.Errorf("config: stores[%d]: duplicate id %q", i, s.ID))
		}
		seen[s.ID] = true
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Store returns the store with the given id.
func (c *Config) Store(id string) (Store, bool) {
	for _, s := range c.Stores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}

// Bool returns a pointer to v, for building configurations in code.
func Bool(v bool) *bool { return &v }
