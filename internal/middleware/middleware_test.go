package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	internalRedis "tripbook/internal/redis"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryStore is an in-memory IdempotencyStoreInterface.
type memoryStore struct {
	mu        sync.Mutex
	responses map[string]*internalRedis.CachedResponse
	locks     map[string]bool
	err       error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		responses: make(map[string]*internalRedis.CachedResponse),
		locks:     make(map[string]bool),
	}
}

func (m *memoryStore) Get(_ context.Context, key string) (*internalRedis.CachedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.responses[key], nil
}

func (m *memoryStore) Save(_ context.Context, key string, resp *internalRedis.CachedResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key] = resp
	return nil
}

func (m *memoryStore) Acquire(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *memoryStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

// countingRouter counts how often the POST handler actually runs.
func countingRouter(store internalRedis.IdempotencyStoreInterface, status int) (*gin.Engine, *int) {
	calls := 0
	r := gin.New()
	r.Use(IdempotencyMiddleware(store))
	r.POST("/users/", func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"id": calls})
	})
	return r, &calls
}

func post(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	r, calls := countingRouter(newMemoryStore(), http.StatusCreated)

	first := post(r, "abc")
	second := post(r, "abc")

	assert.Equal(t, 1, *calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(replayedHeader))
	assert.Empty(t, first.Header().Get(replayedHeader))
}

func TestIdempotencyMiddleware_DistinctKeysRunHandler(t *testing.T) {
	r, calls := countingRouter(newMemoryStore(), http.StatusCreated)

	post(r, "a")
	post(r, "b")
	post(r, "")
	post(r, "")

	assert.Equal(t, 4, *calls)
}

func TestIdempotencyMiddleware_ServerErrorsNotCached(t *testing.T) {
	r, calls := countingRouter(newMemoryStore(), http.StatusInternalServerError)

	post(r, "abc")
	post(r, "abc")

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyMiddleware_InFlightKeyConflicts(t *testing.T) {
	store := newMemoryStore()
	store.locks["POST:/users/:abc"] = true
	r, calls := countingRouter(store, http.StatusCreated)

	rec := post(r, "abc")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 0, *calls)
}

func TestIdempotencyMiddleware_StoreFailureFallsThrough(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")
	r, calls := countingRouter(store, http.StatusCreated)

	post(r, "abc")
	post(r, "abc")

	assert.Equal(t, 2, *calls)
}

func TestIdempotencyMiddleware_NilStoreDisabled(t *testing.T) {
	r, calls := countingRouter(nil, http.StatusCreated)

	post(r, "abc")
	post(r, "abc")

	assert.Equal(t, 2, *calls)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFrom(c))
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-42", rec.Body.String())
	})
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/users/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/users/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAccessLogAndMetrics_PassThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.NewNop()), Metrics(), NewRelicAttributes())
	r.GET("/trips/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/9", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
