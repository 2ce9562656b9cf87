package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, redisMock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/payrolls", func(c *gin.Context) {
		c.Set("user_id_validated", "user-1")
		c.Next()
	}, middleware.Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	return r, redisMock
}

func TestIdempotency(t *testing.T) {
	cacheKey := "idemp:/payrolls:user-1:key-123"
	lockKey := cacheKey + ":lock"

	t.Run("no header passes through", func(t *testing.T) {
		r, redisMock := setupIdempotencyRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("first request acquires lock and reaches handler", func(t *testing.T) {
		r, redisMock := setupIdempotencyRouter(t)
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cached response is replayed", func(t *testing.T) {
		r, redisMock := setupIdempotencyRouter(t)
		cached, _ := json.Marshal(map[string]any{"id": "payroll_1"})
		redisMock.ExpectGet(cacheKey).SetVal(string(cached))

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "success", body["status"])

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "payroll_1", data["id"])
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative concurrent retry is rejected", func(t *testing.T) {
		r, redisMock := setupIdempotencyRouter(t)
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/payrolls", nil)
		req.Header.Set("Idempotency-Key", "key-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "PROCESSING", body["code"])
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
