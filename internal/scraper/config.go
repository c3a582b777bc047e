// Package scraper builds a DropShip override layer from the Sarna wiki
package scraper

import (
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// Config controls where and how politely the scraper crawls
type Config struct {
	BaseURL      string        `env:"SARNA_BASE_URL"      envDefault:"https://www.sarna.net"`
	Category     string        `env:"SARNA_CATEGORY"      envDefault:"Category:DropShip_classes"`
	UserAgent    string        `env:"SARNA_USER_AGENT"    envDefault:"Mozilla/5.0 (compatible; BT-DropShip-Roller/1.1; +https://www.sarna.net)"`
	RequestDelay time.Duration `env:"SARNA_REQUEST_DELAY" envDefault:"350ms"`
	HTTPTimeout  time.Duration `env:"SARNA_HTTP_TIMEOUT"  envDefault:"30s"`
}

// LoadConfig reads the scraper settings from the environment
func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse scraper environment")
	}
	return &cfg, nil
}

// Validate ensures the settings are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BaseURL == "" {
		vb.RequiredField("BaseURL")
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.InvalidField("BaseURL", "must be an absolute URL")
	}
	if c.Category == "" {
		vb.RequiredField("Category")
	}
	if c.RequestDelay < 0 {
		vb.InvalidField("RequestDelay", "must not be negative")
	}
	if c.HTTPTimeout < 0 {
		vb.InvalidField("HTTPTimeout", "must not be negative")
	}

	return vb.Build()
}

// CategoryURL is the first listing page of the category
func (c *Config) CategoryURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/wiki/" + c.Category
}
