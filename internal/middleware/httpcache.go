package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	APICachePrefix          = "zenith-api-cache:"
	defaultHTTPCacheTTL     = 15 * time.Second
	defaultHTTPCacheMaxBody = 1 << 20 // 1 MiB
	CacheStatusHeader       = "x-zenith-cache"
)

type HTTPCacheOptions struct {
	TTL          time.Duration
	Disable      bool
	SkipPaths    []string
	MaxBodyBytes int
}

// ResponseCache stores successful anonymous GET responses in Redis keyed by
// request URI. A nil Redis client turns every method into a no-op.
type ResponseCache struct {
	rdb  *redis.Client
	opts HTTPCacheOptions
	log  *zap.Logger
}

func NewResponseCache(rdb *redis.Client, opts HTTPCacheOptions, log *zap.Logger) *ResponseCache {
	if opts.TTL <= 0 {
		opts.TTL = defaultHTTPCacheTTL
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultHTTPCacheMaxBody
	}
	return &ResponseCache{rdb: rdb, opts: opts, log: log}
}

type cachedHTTPResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	BodyBase64  string `json:"body_base64"`
	Body        []byte `json:"-"`
}

type cacheBodyWriter struct {
	gin.ResponseWriter
	body         []byte
	maxBodyBytes int
	overflow     bool
}

func (w *cacheBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheBodyWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	if len(w.body)+len(data) > w.maxBodyBytes {
		w.overflow = true
		w.body = nil
		return
	}
	w.body = append(w.body, data...)
}

// Handler serves cached GET responses and records fresh ones.
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rc.opts.Disable || rc.rdb == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		if shouldSkipCachePath(c.Request.URL.Path, rc.opts.SkipPaths) || IsAuthenticated(c) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := APICachePrefix + c.Request.URL.RequestURI()
		if payload, ok := rc.read(ctx, cacheKey); ok {
			c.Header(CacheStatusHeader, "hit")
			c.Data(payload.Status, payload.ContentType, payload.Body)
			c.Abort()
			return
		}

		buffer := &cacheBodyWriter{ResponseWriter: c.Writer, maxBodyBytes: rc.opts.MaxBodyBytes}
		c.Writer = buffer
		c.Header(CacheStatusHeader, "miss")
		c.Next()

		status := c.Writer.Status()
		if status != http.StatusOK || buffer.overflow || len(buffer.body) == 0 {
			return
		}
		raw, err := json.Marshal(cachedHTTPResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			BodyBase64:  base64.StdEncoding.EncodeToString(buffer.body),
		})
		if err != nil {
			return
		}
		if err := rc.rdb.Set(ctx, cacheKey, raw, rc.opts.TTL).Err(); err != nil {
			rc.log.Warn("cache store failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}

// PurgeOnWrite drops every cached response after a successful mutating request.
func (rc *ResponseCache) PurgeOnWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if rc.rdb == nil || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if _, err := rc.Purge(context.WithoutCancel(c.Request.Context())); err != nil {
			rc.log.Warn("cache purge failed", zap.Error(err))
		}
	}
}

// Purge deletes all cached responses and reports how many keys were removed.
func (rc *ResponseCache) Purge(ctx context.Context) (int64, error) {
	if rc == nil || rc.rdb == nil {
		return 0, nil
	}
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := rc.rdb.Scan(ctx, cursor, APICachePrefix+"*", 200).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := rc.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func (rc *ResponseCache) read(ctx context.Context, cacheKey string) (cachedHTTPResponse, bool) {
	raw, err := rc.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil || len(raw) == 0 {
		return cachedHTTPResponse{}, false
	}
	var payload cachedHTTPResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return cachedHTTPResponse{}, false
	}
	if payload.Status <= 0 {
		payload.Status = http.StatusOK
	}
	if payload.ContentType == "" {
		payload.ContentType = "application/json; charset=utf-8"
	}
	body, err := base64.StdEncoding.DecodeString(payload.BodyBase64)
	if err != nil {
		return cachedHTTPResponse{}, false
	}
	payload.Body = body
	return payload, true
}

func shouldSkipCachePath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		p := strings.TrimSpace(pattern)
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}
