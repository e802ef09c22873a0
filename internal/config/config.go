// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath points at the role catalog CSV loaded on startup.
	CatalogPath string `koanf:"catalog_path"`

	// RoleLinksPath points at the optional role links CSV.
	RoleLinksPath string `koanf:"role_links_path"`

	// KeywordsPath overrides the built-in skill keyword dictionaries.
	KeywordsPath string `koanf:"keywords_path"`

	// TopN caps the number of roles returned per result bucket.
	TopN int `koanf:"top_n"`

	// FallbackFloor drops eliminated roles scoring below it from the
	// next-best bucket. Negative disables the floor.
	FallbackFloor int `koanf:"fallback_floor"`

	// EliminationEnabled toggles hard role elimination during scoring.
	EliminationEnabled bool `koanf:"elimination_enabled"`

	// PostgresDSN enables the Postgres session store when non-empty.
	// Empty falls back to the in-memory store.
	PostgresDSN string `koanf:"postgres_dsn"`

	// PostgresMaxConns and PostgresMinConns bound the connection pool.
	PostgresMaxConns int `koanf:"postgres_max_conns"`
	PostgresMinConns int `koanf:"postgres_min_conns"`

	// UploadsDir receives admin CSV uploads before they are swapped in.
	UploadsDir string `koanf:"uploads_dir"`

	// AdminToken guards the admin upload endpoints. Empty disables them.
	AdminToken string `koanf:"admin_token"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		CatalogPath:        "data/roles.csv",
		RoleLinksPath:      "data/role_links.csv",
		KeywordsPath:       "",
		TopN:               3,
		FallbackFloor:      -1,
		EliminationEnabled: true,
		PostgresDSN:        "",
		PostgresMaxConns:   8,
		PostgresMinConns:   2,
		UploadsDir:         "uploads",
		AdminToken:         "",
	}
	return c
}
