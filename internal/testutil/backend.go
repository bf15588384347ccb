// Package testutil provides an in-process fake of the REST backend and
// fixture builders for tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/httpclient"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// BasePath is where the fake mounts its routes, matching the real backend.
const BasePath = "/api"

// RecordedRequest is one request the fake received.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Backend is a gin engine behind an httptest server. Routes are registered
// relative to BasePath and must be registered before the first request.
type Backend struct {
	Server *httptest.Server
	engine *gin.Engine
	group  *gin.RouterGroup

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{engine: gin.New()}
	b.engine.Use(b.record)
	b.group = b.engine.Group(BasePath)
	b.Server = httptest.NewServer(b.engine)
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the base URL a client should be configured with.
func (b *Backend) URL() string {
	return b.Server.URL + BasePath
}

// Handle registers h for method and path.
func (b *Backend) Handle(method, path string, h gin.HandlerFunc) {
	b.group.Handle(method, path, h)
}

// Respond registers a handler that always answers status with body.
func (b *Backend) Respond(method, path string, status int, body any) {
	b.Handle(method, path, func(c *gin.Context) {
		if body == nil {
			c.Status(status)
			return
		}
		c.JSON(status, body)
	})
}

// Requests returns a copy of everything received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// Last returns the most recent request. It fails the test when there is none.
func (b *Backend) Last(t testing.TB) RecordedRequest {
	t.Helper()
	reqs := b.Requests()
	require.NotEmpty(t, reqs, "backend received no requests")
	return reqs[len(reqs)-1]
}

// Client builds an httpclient.Client pointed at the fake.
func (b *Backend) Client(t testing.TB, opts ...httpclient.Option) *httpclient.Client {
	t.Helper()
	opts = append([]httpclient.Option{httpclient.WithLogger(zap.NewNop())}, opts...)
	client, err := httpclient.New(httpclient.Config{BaseURL: b.URL(), WithCredentials: true}, opts...)
	require.NoError(t, err)
	return client
}

func (b *Backend) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Header:   c.Request.Header.Clone(),
		Body:     body,
	})
	b.mu.Unlock()
	c.Next()
}
