package config

// ServerConfig contains the HTTP surface configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// BackendConfig contains the festival backend configuration
type BackendConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// SessionConfig contains the durable session store configuration
type SessionConfig struct {
	DBPath string `yaml:"dbPath"`
}

// LocationConfig pins the session coordinate for deployments where no
// client pushes one in (kiosks, tests). Unpinned means coordinates
// arrive through the HTTP surface.
type LocationConfig struct {
	Pinned bool    `yaml:"pinned"`
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
}

// MapConfig contains map rendering defaults
type MapConfig struct {
	FallbackLat float64 `yaml:"fallbackLat"`
	FallbackLon float64 `yaml:"fallbackLon"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Backend  BackendConfig  `yaml:"backend"`
	Session  SessionConfig  `yaml:"session"`
	Location LocationConfig `yaml:"location"`
	Map      MapConfig      `yaml:"map"`
}
