package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "ZENITH_"

	defaultPort           = 3000
	defaultEnv            = "development"
	defaultPGHost         = "127.0.0.1"
	defaultPGPort         = 5432
	defaultPGUser         = "postgres"
	defaultPGPassword     = "postgres"
	defaultPGName         = "zenith"
	defaultPGSSLMode      = "disable"
	defaultPGTimezone     = "UTC"
	defaultMongoHost      = "127.0.0.1"
	defaultMongoPort      = 27017
	defaultMongoDatabase  = "zenith"
	defaultRedisHost      = "localhost"
	defaultRedisPort      = 6379
	defaultRedisDB        = 0
	defaultStorageDriver  = StorageLocal
	defaultS3Region       = "auto"
	defaultJWTTTLHours    = 24 * 7
	defaultRateLimitRPS   = 50
	defaultCacheTTLSecond = 15
	defaultMaxUploadMB    = 20
	defaultMaxPixels      = 50_000_000
)

// Storage drivers.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)
