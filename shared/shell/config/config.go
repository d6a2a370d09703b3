package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Adapter types selectable with ADAPTER_TYPE.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLX    = "sqlx.db"
	AdapterMemory  = "memory"
)

// Blob backends selectable with BOOKSWAP_BLOB_BACKEND.
const (
	BlobBackendFS  = "fs"
	BlobBackendGCS = "gcs"
)

// Environment variables overriding the file values.
const (
	EnvHTTPAddr     = "BOOKSWAP_HTTP_ADDR"
	EnvDatabaseDSN  = "BOOKSWAP_DATABASE_DSN"
	EnvReplicaDSN   = "BOOKSWAP_REPLICA_DSN"
	EnvAdapterType  = "ADAPTER_TYPE"
	EnvJWTSecret    = "BOOKSWAP_JWT_SECRET"
	EnvBlobBackend  = "BOOKSWAP_BLOB_BACKEND"
	EnvUploadDir    = "BOOKSWAP_UPLOAD_DIR"
	EnvGCSBucket    = "BOOKSWAP_GCS_BUCKET"
	EnvLogLevel     = "BOOKSWAP_LOG_LEVEL"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvMaxAttempts  = "BOOKSWAP_MAX_APPEND_ATTEMPTS"
)

var (
	ErrReadingConfigFailed  = errors.New("reading config file failed")
	ErrParsingConfigFailed  = errors.New("parsing config file failed")
	ErrUnknownAdapterType   = errors.New("unknown adapter type")
	ErrMissingDatabaseDSN   = errors.New("database dsn is required for postgres adapters")
	ErrMissingJWTSecret     = errors.New("jwt secret is required")
	ErrUnknownBlobBackend   = errors.New("unknown blob backend")
	ErrMissingUploadDir     = errors.New("upload dir is required for the fs blob backend")
	ErrMissingGCSBucket     = errors.New("gcs bucket is required for the gcs blob backend")
	ErrInvalidEnvValue      = errors.New("invalid environment value")
	ErrInvalidRetryAttempts = errors.New("max append attempts must be at least 1")
	ErrInvalidTokenLifetime = errors.New("token lifetime must be positive")
	ErrInvalidAuthRateLimit = errors.New("auth rate limit must be positive")
)

// Config is the complete bookswap configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Blob      BlobConfig      `yaml:"blob"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	// AuthRatePerSecond and AuthBurst limit login and register requests per client IP.
	AuthRatePerSecond float64 `yaml:"auth_rate_per_second"`
	AuthBurst         int     `yaml:"auth_burst"`
}

type DatabaseConfig struct {
	AdapterType       string `yaml:"adapter_type"`
	DSN               string `yaml:"dsn"`
	ReplicaDSN        string `yaml:"replica_dsn"`
	EventsTable       string `yaml:"events_table"`
	MaxConnections    int32  `yaml:"max_connections"`
	MaxAppendAttempts int    `yaml:"max_append_attempts"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenLifetime time.Duration `yaml:"token_lifetime"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
}

type BlobConfig struct {
	Backend            string `yaml:"backend"`
	UploadDir          string `yaml:"upload_dir"`
	GCSBucket          string `yaml:"gcs_bucket"`
	GCSCredentialsFile string `yaml:"gcs_credentials_file"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TelemetryConfig struct {
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`
}

// Default returns the configuration used for every value the file and the environment leave out.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxUploadBytes:    5 << 20,
			AuthRatePerSecond: 1,
			AuthBurst:         5,
		},
		Database: DatabaseConfig{
			AdapterType:       AdapterPGXPool,
			EventsTable:       "events",
			MaxConnections:    8,
			MaxAppendAttempts: 2,
		},
		Auth: AuthConfig{
			TokenLifetime: 24 * time.Hour,
			BcryptCost:    10,
		},
		Blob: BlobConfig{
			Backend:   BlobBackendFS,
			UploadDir: "uploads",
		},
		Log: LogConfig{Level: "info"},
		Telemetry: TelemetryConfig{
			ServiceName:  "bookswap",
			OTLPInsecure: true,
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty) over the defaults,
// applies the environment overrides and validates the result.
func Load(path string) (Config, error) {
	return LoadWithLookup(path, os.LookupEnv)
}

// LoadWithLookup is Load with an injectable environment lookup.
func LoadWithLookup(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, err)
		}

		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Join(ErrParsingConfigFailed, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	stringOverrides := map[string]*string{
		EnvHTTPAddr:     &c.HTTP.Addr,
		EnvDatabaseDSN:  &c.Database.DSN,
		EnvReplicaDSN:   &c.Database.ReplicaDSN,
		EnvAdapterType:  &c.Database.AdapterType,
		EnvJWTSecret:    &c.Auth.JWTSecret,
		EnvBlobBackend:  &c.Blob.Backend,
		EnvUploadDir:    &c.Blob.UploadDir,
		EnvGCSBucket:    &c.Blob.GCSBucket,
		EnvLogLevel:     &c.Log.Level,
		EnvOTLPEndpoint: &c.Telemetry.OTLPEndpoint,
	}

	for env, target := range stringOverrides {
		if value, ok := lookup(env); ok {
			*target = strings.TrimSpace(value)
		}
	}

	if value, ok := lookup(EnvMaxAttempts); ok {
		attempts, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return errors.Join(ErrInvalidEnvValue, errors.New(EnvMaxAttempts), err)
		}

		c.Database.MaxAppendAttempts = attempts
	}

	return nil
}

// Validate checks the combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.AdapterType {
	case AdapterPGXPool, AdapterSQLDB, AdapterSQLX:
		if c.Database.DSN == "" {
			return ErrMissingDatabaseDSN
		}
	case AdapterMemory:
	default:
		return errors.Join(ErrUnknownAdapterType, errors.New(c.Database.AdapterType))
	}

	if c.Database.MaxAppendAttempts < 1 {
		return ErrInvalidRetryAttempts
	}

	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}

	if c.Auth.TokenLifetime <= 0 {
		return ErrInvalidTokenLifetime
	}

	if c.HTTP.AuthRatePerSecond <= 0 || c.HTTP.AuthBurst < 1 {
		return ErrInvalidAuthRateLimit
	}

	switch c.Blob.Backend {
	case BlobBackendFS:
		if c.Blob.UploadDir == "" {
			return ErrMissingUploadDir
		}
	case BlobBackendGCS:
		if c.Blob.GCSBucket == "" {
			return ErrMissingGCSBucket
		}
	default:
		return errors.Join(ErrUnknownBlobBackend, errors.New(c.Blob.Backend))
	}

	return nil
}
