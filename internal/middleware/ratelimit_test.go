package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterKeepsSeparateBucketsPerIP(t *testing.T) {
	// zero refill rate, so each IP gets exactly its burst
	rl := NewRateLimiter(0, 1)

	assert.True(t, rl.get("10.0.0.1").Allow())
	assert.False(t, rl.get("10.0.0.1").Allow())
	assert.True(t, rl.get("10.0.0.2").Allow(), "a second IP has its own budget")
}

func TestRateLimiterEvictsStaleClientsOnLookup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.get("10.0.0.1")

	rl.mu.Lock()
	rl.clients["10.0.0.1"].seen = time.Now().Add(-staleAfter - time.Second)
	rl.lastSweep = time.Now().Add(-sweepInterval)
	rl.mu.Unlock()

	rl.get("10.0.0.2")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, stale := rl.clients["10.0.0.1"]
	_, fresh := rl.clients["10.0.0.2"]
	assert.False(t, stale, "stale entries are swept on the next lookup")
	assert.True(t, fresh)
}

func TestRateLimitMiddlewareRejectsWithTooManyRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0, 1)
	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
