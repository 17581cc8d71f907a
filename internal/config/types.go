package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	PublicURL      string                `yaml:"public_url"`
	DSN            string                `yaml:"-"`
	MongoURI       string                `yaml:"-"`
	RedisURL       string                `yaml:"-"`
	Postgres       PostgresRuntimeConfig `yaml:"postgres"`
	Mongo          MongoRuntimeConfig    `yaml:"mongo"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Storage        StorageRuntimeConfig  `yaml:"storage"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	JWTSecret      string                `yaml:"jwt_secret"`
	JWTTTLHours    int                   `yaml:"jwt_ttl_hours"`
	RateLimit      RateLimitConfig       `yaml:"rate_limit"`
	HTTPCache      HTTPCacheConfig       `yaml:"http_cache"`
}

type PostgresRuntimeConfig struct {
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	SSLMode  string            `yaml:"sslmode"`
	Timezone string            `yaml:"timezone"`
	Params   map[string]string `yaml:"params"`
}

type MongoRuntimeConfig struct {
	URI      string            `yaml:"uri"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Database string            `yaml:"database"`
	Params   map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	Enable   bool              `yaml:"enable"`
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       int               `yaml:"db"`
	TLS      bool              `yaml:"tls"`
	Params   map[string]string `yaml:"params"`
}

type StorageRuntimeConfig struct {
	Driver      string   `yaml:"driver"` // "local" | "s3"
	MaxUploadMB int      `yaml:"max_upload_mb"`
	MaxPixels   int64    `yaml:"max_pixels"`
	S3          S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
	PublicURL       string `yaml:"public_url"`
	Prefix          string `yaml:"prefix"`
}

type RuntimePathsConfig struct {
	Logs    string `yaml:"logs"`
	Uploads string `yaml:"uploads"`
}

type RateLimitConfig struct {
	Enable            bool `yaml:"enable"`
	RequestsPerSecond int  `yaml:"requests_per_second"`
}

type HTTPCacheConfig struct {
	Enable     bool `yaml:"enable"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// rawAppConfig mirrors the YAML file. Pointer fields distinguish
// "absent" from an explicit zero value.
type rawAppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"`
	PublicURL      string                `yaml:"public_url"`
	Postgres       PostgresRuntimeConfig `yaml:"postgres"`
	Mongo          MongoRuntimeConfig    `yaml:"mongo"`
	Redis          rawRedisConfig        `yaml:"redis"`
	Storage        rawStorageConfig      `yaml:"storage"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	JWTSecret      string                `yaml:"jwt_secret"`
	JWTTTLHours    *int                  `yaml:"jwt_ttl_hours"`
	RateLimit      rawRateLimitConfig    `yaml:"rate_limit"`
	HTTPCache      rawHTTPCacheConfig    `yaml:"http_cache"`
}

type rawRedisConfig struct {
	Enable   *bool             `yaml:"enable"`
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       *int              `yaml:"db"`
	TLS      *bool             `yaml:"tls"`
	Params   map[string]string `yaml:"params"`
}

type rawStorageConfig struct {
	Driver      string   `yaml:"driver"`
	MaxUploadMB int      `yaml:"max_upload_mb"`
	MaxPixels   int64    `yaml:"max_pixels"`
	S3          S3Config `yaml:"s3"`
}

type rawRateLimitConfig struct {
	Enable            *bool `yaml:"enable"`
	RequestsPerSecond int   `yaml:"requests_per_second"`
}

type rawHTTPCacheConfig struct {
	Enable     *bool `yaml:"enable"`
	TTLSeconds int   `yaml:"ttl_seconds"`
}
