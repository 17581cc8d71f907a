package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads .env (when present), the YAML config file and ZENITH_* environment
// overrides, in that order of increasing precedence.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	cfg, err := Parse(content, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML content, applies env overrides from lookup and validates
// the result.
func Parse(content []byte, lookup func(string) (string, bool)) (*AppConfig, error) {
	raw := rawAppConfig{}
	if len(bytes.TrimSpace(content)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
	}

	cfg := defaultAppConfig()
	applyRawAppConfig(&cfg, raw)
	if lookup != nil {
		applyEnvOverrides(&cfg, lookup)
	}
	finalize(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Postgres: PostgresRuntimeConfig{
			Host:     defaultPGHost,
			Port:     defaultPGPort,
			User:     defaultPGUser,
			Password: defaultPGPassword,
			Name:     defaultPGName,
			SSLMode:  defaultPGSSLMode,
			Timezone: defaultPGTimezone,
		},
		Mongo: MongoRuntimeConfig{
			Host:     defaultMongoHost,
			Port:     defaultMongoPort,
			Database: defaultMongoDatabase,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Storage: StorageRuntimeConfig{
			Driver:      defaultStorageDriver,
			MaxUploadMB: defaultMaxUploadMB,
			MaxPixels:   defaultMaxPixels,
			S3:          S3Config{Region: defaultS3Region},
		},
		JWTTTLHours: defaultJWTTTLHours,
		RateLimit:   RateLimitConfig{Enable: true, RequestsPerSecond: defaultRateLimitRPS},
		HTTPCache:   HTTPCacheConfig{Enable: true, TTLSeconds: defaultCacheTTLSecond},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.PublicURL); v != "" {
		cfg.PublicURL = v
	}
	cfg.Postgres = mergePostgresConfig(cfg.Postgres, raw.Postgres)
	cfg.Mongo = mergeMongoConfig(cfg.Mongo, raw.Mongo)
	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw.Redis)

	if v := strings.TrimSpace(raw.Storage.Driver); v != "" {
		cfg.Storage.Driver = v
	}
	if raw.Storage.MaxUploadMB != 0 {
		cfg.Storage.MaxUploadMB = raw.Storage.MaxUploadMB
	}
	if raw.Storage.MaxPixels != 0 {
		cfg.Storage.MaxPixels = raw.Storage.MaxPixels
	}
	cfg.Storage.S3 = mergeS3Config(cfg.Storage.S3, raw.Storage.S3)

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.Paths.Uploads); v != "" {
		cfg.Paths.Uploads = v
	}
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}
	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if raw.JWTTTLHours != nil {
		cfg.JWTTTLHours = *raw.JWTTTLHours
	}

	if raw.RateLimit.Enable != nil {
		cfg.RateLimit.Enable = *raw.RateLimit.Enable
	}
	if raw.RateLimit.RequestsPerSecond != 0 {
		cfg.RateLimit.RequestsPerSecond = raw.RateLimit.RequestsPerSecond
	}
	if raw.HTTPCache.Enable != nil {
		cfg.HTTPCache.Enable = *raw.HTTPCache.Enable
	}
	if raw.HTTPCache.TTLSeconds != 0 {
		cfg.HTTPCache.TTLSeconds = raw.HTTPCache.TTLSeconds
	}
}

func applyRawRedisConfig(current RedisRuntimeConfig, raw rawRedisConfig) RedisRuntimeConfig {
	cfg := current
	if v := strings.TrimSpace(raw.URL); v != "" {
		cfg.URL = v
		cfg.Enable = true
	}
	if raw.Enable != nil {
		cfg.Enable = *raw.Enable
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		cfg.Host = v
	}
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Username); v != "" {
		cfg.Username = v
	}
	if v := strings.TrimSpace(raw.Password); v != "" {
		cfg.Password = v
	}
	if raw.DB != nil {
		cfg.DB = *raw.DB
	}
	if raw.TLS != nil {
		cfg.TLS = *raw.TLS
	}
	if raw.Params != nil {
		cfg.Params = copyStringMap(raw.Params)
	}
	return cfg
}

func finalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Postgres = normalizePostgresConfig(cfg.Postgres)
	cfg.Mongo = normalizeMongoConfig(cfg.Mongo)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.Storage = normalizeStorageConfig(cfg.Storage)
	cfg.Paths = normalizeRuntimePaths(cfg.Paths)
	cfg.PublicURL = strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")
	if cfg.PublicURL == "" {
		cfg.PublicURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	cfg.DSN = cfg.Postgres.DSNValue()
	cfg.MongoURI = cfg.Mongo.URIValue()
	cfg.RedisURL = cfg.Redis.URLValue()
}

func validate(cfg *AppConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Postgres.Port < 1 || cfg.Postgres.Port > 65535 {
		return fmt.Errorf("invalid postgres.port %d, expected 1-65535", cfg.Postgres.Port)
	}
	if cfg.Mongo.Port < 1 || cfg.Mongo.Port > 65535 {
		return fmt.Errorf("invalid mongo.port %d, expected 1-65535", cfg.Mongo.Port)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", cfg.Redis.Port)
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", cfg.Redis.DB)
	}
	if cfg.JWTTTLHours < 0 {
		return fmt.Errorf("invalid jwt_ttl_hours %d, expected >= 0", cfg.JWTTTLHours)
	}
	if cfg.Storage.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid storage.max_upload_mb %d, expected > 0", cfg.Storage.MaxUploadMB)
	}
	if cfg.Storage.MaxPixels <= 0 {
		return fmt.Errorf("invalid storage.max_pixels %d, expected > 0", cfg.Storage.MaxPixels)
	}
	switch cfg.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		s3 := cfg.Storage.S3
		if s3.Bucket == "" || s3.AccessKeyID == "" || s3.SecretAccessKey == "" {
			return fmt.Errorf("storage.s3 requires bucket, access_key_id and secret_access_key")
		}
	default:
		return fmt.Errorf("invalid storage.driver %q, expected %q or %q", cfg.Storage.Driver, StorageLocal, StorageS3)
	}
	if !cfg.IsDev() && cfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required outside development")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// JWTTTL is the token lifetime. Zero means tokens never expire.
func (c *AppConfig) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// CacheTTL is the lifetime of cached public responses.
func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.HTTPCache.TTLSeconds) * time.Second
}

// MaxUploadBytes bounds multipart upload bodies.
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.Storage.MaxUploadMB) << 20
}

// LogDir is the resolved paths.logs directory.
func (c *AppConfig) LogDir() string {
	return ResolveRuntimePath(c.runtimePaths().Logs, "logs")
}

// UploadDir is the resolved paths.uploads directory served at /uploads.
func (c *AppConfig) UploadDir() string {
	return ResolveRuntimePath(c.runtimePaths().Uploads, "uploads")
}

func (c *AppConfig) runtimePaths() RuntimePathsConfig {
	if c == nil {
		return RuntimePathsConfig{}
	}
	return c.Paths
}
