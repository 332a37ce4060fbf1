// Package config loads and validates application configuration.
//
// Values are layered, lowest precedence first: built-in defaults, an optional
// YAML file named by CONFIG_FILE, then environment variables. A .env file in
// the working directory is read into the environment first; it never
// overrides variables that are already set. Keys in the YAML
// file are the lowercased environment variable names (db_host, gcp_bucket_name, ...).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFile, when set, sends logs to a size-rotated file instead of stdout.
	LogFile string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"]. Set CORS_ORIGINS to a comma-separated list to restrict it.
	CORSOrigins []string

	// DatabaseURL is the Postgres connection string. Required, either directly
	// as DATABASE_URL or assembled from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME.
	DatabaseURL string

	// DBMaxConns caps the connection pool. Defaults to 10.
	DBMaxConns int32

	// MigrateOnStart applies pending migrations before serving. Defaults to true.
	MigrateOnStart bool

	// GCPBucketName is the bucket avatars are written to. Required.
	GCPBucketName string

	// GCPServiceAccountJSON holds service account credentials. When empty the
	// storage client falls back to Application Default Credentials.
	GCPServiceAccountJSON string

	// MaxUploadBytes caps request bodies, avatar uploads included. Defaults to 5 MiB.
	MaxUploadBytes int64
}

// raw mirrors the flat configuration keys before they are validated and
// folded into Config.
type raw struct {
	Port                  string `koanf:"port"`
	LogLevel              string `koanf:"log_level"`
	LogFile               string `koanf:"log_file"`
	CORSOrigins           string `koanf:"cors_origins"`
	DatabaseURL           string `koanf:"database_url"`
	DBHost                string `koanf:"db_host"`
	DBPort                string `koanf:"db_port"`
	DBUser                string `koanf:"db_user"`
	DBPassword            string `koanf:"db_password"`
	DBName                string `koanf:"db_name"`
	DBMaxConns            int32  `koanf:"db_max_conns"`
	MigrateOnStart        bool   `koanf:"migrate_on_start"`
	GCPBucketName         string `koanf:"gcp_bucket_name"`
	GCPServiceAccountJSON string `koanf:"gcp_service_account_json"`
	MaxUploadBytes        int64  `koanf:"max_upload_bytes"`
}

func defaults() raw {
	return raw{
		Port:           "8080",
		LogLevel:       "info",
		CORSOrigins:    "*",
		DBPort:         "5432",
		DBMaxConns:     10,
		MigrateOnStart: true,
		MaxUploadBytes: 5 << 20,
	}
}

// Load builds a Config from defaults, the optional CONFIG_FILE and the environment.
// Returns an error listing any required settings that are missing, or the
// first invalid value found.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}

	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// Only known keys are taken from the environment, and empty values are
	// treated as unset so they do not mask a default or a file value.
	known := knownKeys()
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		key = strings.ToLower(key)
		if !known[key] || value == "" {
			return "", nil
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("config: read environment: %w", err)
	}

	r := defaults()
	if err := k.UnmarshalWithConf("", &r, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return r.build()
}

func (r raw) build() (Config, error) {
	cfg := Config{
		Port:                  r.Port,
		LogLevel:              strings.ToLower(r.LogLevel),
		LogFile:               r.LogFile,
		CORSOrigins:           splitCSV(r.CORSOrigins),
		DatabaseURL:           r.DatabaseURL,
		DBMaxConns:            r.DBMaxConns,
		MigrateOnStart:        r.MigrateOnStart,
		GCPBucketName:         r.GCPBucketName,
		GCPServiceAccountJSON: r.GCPServiceAccountJSON,
		MaxUploadBytes:        r.MaxUploadBytes,
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		if r.DBHost == "" || r.DBUser == "" || r.DBName == "" {
			missing = append(missing, "DATABASE_URL (or DB_HOST, DB_USER, DB_NAME)")
		} else {
			cfg.DatabaseURL = postgresURL(r.DBHost, r.DBPort, r.DBUser, r.DBPassword, r.DBName)
		}
	}
	if cfg.GCPBucketName == "" {
		missing = append(missing, "GCP_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required configuration not set: %s", strings.Join(missing, ", "))
	}

	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return Config{}, fmt.Errorf("config: LOG_LEVEL %q is not one of debug, info, warn, error", r.LogLevel)
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("config: DB_MAX_CONNS must be positive, got %d", cfg.DBMaxConns)
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("config: MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return cfg, nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns LogLevel as a slog.Level.
func (c Config) SlogLevel() slog.Level {
	return logLevels[c.LogLevel]
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// knownKeys lists the koanf tags of raw.
func knownKeys() map[string]bool {
	return map[string]bool{
		"port": true, "log_level": true, "log_file": true, "cors_origins": true,
		"database_url": true, "db_host": true, "db_port": true, "db_user": true,
		"db_password": true, "db_name": true, "db_max_conns": true,
		"migrate_on_start": true, "gcp_bucket_name": true,
		"gcp_service_account_json": true, "max_upload_bytes": true,
	}
}

// postgresURL assembles a connection URL, escaping credentials as needed.
func postgresURL(host, port, user, password, name string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
