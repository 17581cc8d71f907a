package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the given files (default ".env") into the process
// environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *AppConfig, lookup func(string) (string, bool)) {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		} else {
			cfg.Port = -1
		}
	}
	if v, ok := get("ENV"); ok {
		cfg.Env = v
	}
	if v, ok := get("PUBLIC_URL"); ok {
		cfg.PublicURL = v
	}
	if v, ok := get("POSTGRES_DSN"); ok {
		cfg.Postgres.DSN = v
	}
	if v, ok := get("MONGO_URI"); ok {
		cfg.Mongo.URI = v
	}
	if v, ok := get("MONGO_DATABASE"); ok {
		cfg.Mongo.Database = v
	}
	if v, ok := get("REDIS_URL"); ok {
		cfg.Redis.URL = v
		cfg.Redis.Enable = true
	}
	if v, ok := get("JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := get("STORAGE_DRIVER"); ok {
		cfg.Storage.Driver = v
	}
	if v, ok := get("S3_ENDPOINT"); ok {
		cfg.Storage.S3.Endpoint = v
	}
	if v, ok := get("S3_BUCKET"); ok {
		cfg.Storage.S3.Bucket = v
	}
	if v, ok := get("S3_ACCESS_KEY_ID"); ok {
		cfg.Storage.S3.AccessKeyID = v
	}
	if v, ok := get("S3_SECRET_ACCESS_KEY"); ok {
		cfg.Storage.S3.SecretAccessKey = v
	}
}
