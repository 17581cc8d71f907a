package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResponseCacheWithoutRedisPassesThrough(t *testing.T) {
	rc := NewResponseCache(nil, HTTPCacheOptions{}, zap.NewNop())

	r := gin.New()
	r.Use(rc.Handler(), rc.PurgeOnWrite())
	calls := 0
	r.GET("/fondos", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, []int{calls})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fondos", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get(CacheStatusHeader))
	}
	assert.Equal(t, 2, calls)

	n, err := rc.Purge(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewResponseCacheDefaults(t *testing.T) {
	rc := NewResponseCache(nil, HTTPCacheOptions{}, zap.NewNop())
	assert.Equal(t, defaultHTTPCacheTTL, rc.opts.TTL)
	assert.Equal(t, defaultHTTPCacheMaxBody, rc.opts.MaxBodyBytes)
}

func TestShouldSkipCachePath(t *testing.T) {
	skips := []string{"/fondos/recomendados", "/user/*", " "}

	assert.True(t, shouldSkipCachePath("/fondos/recomendados", skips))
	assert.True(t, shouldSkipCachePath("/user/profile", skips))
	assert.False(t, shouldSkipCachePath("/fondos", skips))
	assert.False(t, shouldSkipCachePath("/fondos/recomendados/x", skips))
}

func TestCacheBodyWriterOverflow(t *testing.T) {
	w := &cacheBodyWriter{maxBodyBytes: 4}
	w.capture([]byte("ab"))
	assert.False(t, w.overflow)
	w.capture([]byte("cde"))
	assert.True(t, w.overflow)
	assert.Nil(t, w.body)
}

func TestRateLimitKey(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Equal(t, "zenith:rate_limit:10.0.0.1:1700000000", rateLimitKey("10.0.0.1", now))
}

func TestRateLimitWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
