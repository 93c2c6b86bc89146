// server.go - In-process API server for end-to-end tests
package testutil

import (
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/docqa/backend/internal/answer"
	"github.com/docqa/backend/internal/api"
	"github.com/docqa/backend/internal/extract"
	"github.com/docqa/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// TestServer wraps an httptest.Server running the real API routes
type TestServer struct {
	*httptest.Server
	Store    *storage.MemoryStore
	requests atomic.Int64
}

// NewTestServer starts the API with an in-memory store and the given answerer.
// The server is closed when the test ends.
func NewTestServer(t *testing.T, answerer answer.Answerer) *TestServer {
	t.Helper()

	ts := &TestServer{Store: storage.NewMemoryStore(16, time.Minute)}
	e := api.NewServer(&api.Dependencies{
		Store:         ts.Store,
		Registry:      extract.NewRegistry(),
		Answerer:      answerer,
		AnswerTimeout: 5 * time.Second,
		Version:       "test",
	}, api.DefaultMiddlewareOptions())
	e.Pre(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ts.requests.Add(1)
			return next(c)
		}
	})

	ts.Server = httptest.NewServer(e)
	t.Cleanup(ts.Close)
	return ts
}

// Requests returns how many HTTP requests reached the server
func (ts *TestServer) Requests() int64 {
	return ts.requests.Load()
}
