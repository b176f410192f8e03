// Package env layers environment variables over another config store.
package env

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/config"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
)

// Ensure Overlay implements the interface.
var _ driven.ConfigStore = (*Overlay)(nil)

// Variables holds the recognised SERCHA_* environment variables.
type Variables struct {
	ServerAddr     string   `env:"SERCHA_SERVER_ADDR"`
	FrontendOrigin string   `env:"SERCHA_FRONTEND_ORIGIN"`
	RateLimitRPS   *float64 `env:"SERCHA_RATE_LIMIT_RPS"`
	RateLimitBurst *int     `env:"SERCHA_RATE_LIMIT_BURST"`

	StoreDriver   string `env:"SERCHA_STORE_DRIVER"`
	RedisAddr     string `env:"SERCHA_REDIS_ADDR"`
	RedisPassword string `env:"SERCHA_REDIS_PASSWORD"`
	RedisDB       *int   `env:"SERCHA_REDIS_DB"`
	SQLitePath    string `env:"SERCHA_SQLITE_PATH"`

	FetchTimeoutSeconds *int `env:"SERCHA_FETCH_TIMEOUT_SECONDS"`
	FetchMaxPages       *int `env:"SERCHA_FETCH_MAX_PAGES"`

	HubSpotClientID     string   `env:"SERCHA_HUBSPOT_CLIENT_ID"`
	HubSpotClientSecret string   `env:"SERCHA_HUBSPOT_CLIENT_SECRET"`
	HubSpotRedirectURI  string   `env:"SERCHA_HUBSPOT_REDIRECT_URI"`
	HubSpotScopes       []string `env:"SERCHA_HUBSPOT_SCOPES"        envSeparator:","`

	NotionClientID     string `env:"SERCHA_NOTION_CLIENT_ID"`
	NotionClientSecret string `env:"SERCHA_NOTION_CLIENT_SECRET"`
	NotionRedirectURI  string `env:"SERCHA_NOTION_REDIRECT_URI"`
}

// Parse reads Variables from the process environment.
func Parse() (Variables, error) {
	var v Variables
	if err := env.Parse(&v); err != nil {
		return Variables{}, fmt.Errorf("parse env: %w", err)
	}
	return v, nil
}

// ParseFrom reads Variables from an explicit environment map.
func ParseFrom(environ map[string]string) (Variables, error) {
	var v Variables
	if err := env.ParseWithOptions(&v, env.Options{Environment: environ}); err != nil {
		return Variables{}, fmt.Errorf("parse env: %w", err)
	}
	return v, nil
}

// Keys maps the set variables onto dotted config keys.
func (v Variables) Keys() map[string]any {
	out := make(map[string]any)
	setString := func(key, val string) {
		if val != "" {
			out[key] = val
		}
	}
	setInt := func(key string, val *int) {
		if val != nil {
			out[key] = *val
		}
	}

	setString("server.addr", v.ServerAddr)
	setString("server.frontend_origin", v.FrontendOrigin)
	if v.RateLimitRPS != nil {
		out["server.rate_limit_rps"] = *v.RateLimitRPS
	}
	setInt("server.rate_limit_burst", v.RateLimitBurst)

	setString("store.driver", v.StoreDriver)
	setString("store.redis_addr", v.RedisAddr)
	setString("store.redis_password", v.RedisPassword)
	setInt("store.redis_db", v.RedisDB)
	setString("store.sqlite_path", v.SQLitePath)

	setInt("fetch.timeout_seconds", v.FetchTimeoutSeconds)
	setInt("fetch.max_pages", v.FetchMaxPages)

	setString("providers.hubspot.client_id", v.HubSpotClientID)
	setString("providers.hubspot.client_secret", v.HubSpotClientSecret)
	setString("providers.hubspot.redirect_uri", v.HubSpotRedirectURI)
	if len(v.HubSpotScopes) > 0 {
		out["providers.hubspot.scopes"] = v.HubSpotScopes
	}

	setString("providers.notion.client_id", v.NotionClientID)
	setString("providers.notion.client_secret", v.NotionClientSecret)
	setString("providers.notion.redirect_uri", v.NotionRedirectURI)

	return out
}

// Overlay answers reads from environment overrides first and falls back
// to the wrapped store. Writes go to the wrapped store; an override keeps
// shadowing the written value for the life of the process.
type Overlay struct {
	base      driven.ConfigStore
	overrides map[string]any
}

// NewOverlay wraps base with the given variables.
func NewOverlay(base driven.ConfigStore, vars Variables) *Overlay {
	return &Overlay{base: base, overrides: vars.Keys()}
}

// Get retrieves a configuration value by key.
func (o *Overlay) Get(key string) (any, bool) {
	if v, ok := o.overrides[key]; ok {
		return v, true
	}
	return o.base.Get(key)
}

// GetString retrieves a string configuration value.
func (o *Overlay) GetString(key string) string {
	if v, ok := o.overrides[key]; ok {
		return config.String(v)
	}
	return o.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (o *Overlay) GetInt(key string) int {
	if v, ok := o.overrides[key]; ok {
		return config.Int(v)
	}
	return o.base.GetInt(key)
}

// GetFloat retrieves a numeric configuration value.
func (o *Overlay) GetFloat(key string) float64 {
	if v, ok := o.overrides[key]; ok {
		return config.Float(v)
	}
	return o.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (o *Overlay) GetBool(key string) bool {
	if v, ok := o.overrides[key]; ok {
		return config.Bool(v)
	}
	return o.base.GetBool(key)
}

// GetStringSlice retrieves a string slice configuration value.
func (o *Overlay) GetStringSlice(key string) []string {
	if v, ok := o.overrides[key]; ok {
		return config.StringSlice(v)
	}
	return o.base.GetStringSlice(key)
}

// Set stores a value in the wrapped store.
func (o *Overlay) Set(key string, value any) error {
	return o.base.Set(key, value)
}

// Save persists the wrapped store. Overrides are never written.
func (o *Overlay) Save() error {
	return o.base.Save()
}

// Load reloads the wrapped store.
func (o *Overlay) Load() error {
	return o.base.Load()
}

// Path returns the wrapped store's path.
func (o *Overlay) Path() string {
	return o.base.Path()
}

// Overridden returns the keys set from the environment.
func (o *Overlay) Overridden() []string {
	keys := make([]string, 0, len(o.overrides))
	for k := range o.overrides {
		keys = append(keys, k)
	}
	return keys
}

// Describe renders an override for display without leaking secrets.
func Describe(key string, value any) string {
	switch key {
	case "store.redis_password", "providers.hubspot.client_secret", "providers.notion.client_secret":
		return "********"
	}
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return config.String(value)
}
