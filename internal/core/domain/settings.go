package domain

import "time"

// StoreDriver selects the credential store backend.
type StoreDriver string

const (
	// StoreMemory keeps credentials in process memory.
	StoreMemory StoreDriver = "memory"
	// StoreRedis keeps credentials in Redis.
	StoreRedis StoreDriver = "redis"
	// StoreSQLite keeps credentials in a local SQLite file.
	StoreSQLite StoreDriver = "sqlite"
)

// IsValid returns true if the driver is recognised.
func (d StoreDriver) IsValid() bool {
	switch d {
	case StoreMemory, StoreRedis, StoreSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d StoreDriver) String() string {
	return string(d)
}

// ServerSettings configures the HTTP surface.
type ServerSettings struct {
	Addr string
	// FrontendOrigin is allowed by CORS and used as the postMessage target.
	// Empty means "*".
	FrontendOrigin string
	// RateLimitRPS is the per-client request rate; 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// StoreSettings configures the credential store.
type StoreSettings struct {
	Driver        StoreDriver
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string
}

// FetchSettings bounds outbound provider requests.
type FetchSettings struct {
	Timeout  time.Duration
	MaxPages int
}

// AppSettings holds the full service configuration.
type AppSettings struct {
	Server ServerSettings
	Store  StoreSettings
	Fetch  FetchSettings
	// Apps holds the OAuth application per provider.
	Apps map[ProviderType]OAuthApp
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Addr:           ":8000",
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Store: StoreSettings{
			Driver:    StoreMemory,
			RedisAddr: "localhost:6379",
		},
		Fetch: FetchSettings{
			Timeout:  30 * time.Second,
			MaxPages: 1000,
		},
		Apps: make(map[ProviderType]OAuthApp),
	}
}
