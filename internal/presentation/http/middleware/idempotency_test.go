package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	"github.com/marea-picante/pos-terminal/internal/infrastructure/repository"
)

func setupIdempotencyTest(t *testing.T, required bool) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))

	cfg := IdempotencyConfig{Repo: repository.NewIdempotencyRepository(db)}
	mw := Idempotency(cfg)
	if required {
		mw = IdempotencyRequired(cfg)
	}

	calls := 0
	router := gin.New()
	router.Use(Terminal())
	router.POST("/do", mw, func(c *gin.Context) {
		calls++
		c.JSON(200, gin.H{"success": true, "calls": calls})
	})
	return router, &calls
}

func doPost(router *gin.Engine, key, terminal string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/do", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	if terminal != "" {
		req.Header.Set(TerminalIDHeader, terminal)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	router, calls := setupIdempotencyTest(t, false)

	first := doPost(router, "tap-1", "tablet-a")
	assert.Equal(t, 200, first.Code)

	second := doPost(router, "tap-1", "tablet-a")
	assert.Equal(t, 200, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, *calls, "handler must run once per key")
}

func TestIdempotencyKeysAreScopedPerTerminal(t *testing.T) {
	router, calls := setupIdempotencyTest(t, false)

	doPost(router, "tap-1", "tablet-a")
	other := doPost(router, "tap-1", "tablet-b")

	assert.Empty(t, other.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, *calls, "two tablets can reuse the same key")
}

func TestIdempotencyOptionalWithoutKey(t *testing.T) {
	router, calls := setupIdempotencyTest(t, false)

	doPost(router, "", "tablet-a")
	doPost(router, "", "tablet-a")

	assert.Equal(t, 2, *calls, "requests without a key pass through")
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	router, calls := setupIdempotencyTest(t, true)

	w := doPost(router, "", "tablet-a")
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestIdempotencyRequiredReplaysCachedResponse(t *testing.T) {
	router, calls := setupIdempotencyTest(t, true)

	first := doPost(router, "submit-1", "tablet-a")
	assert.Equal(t, 200, first.Code)

	second := doPost(router, "submit-1", "tablet-a")
	assert.Equal(t, 200, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, *calls)
}
