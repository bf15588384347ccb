package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func authEchoServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestBearerInterceptor(t *testing.T) {
	t.Run("every request carries the persisted token", func(t *testing.T) {
		server, seen := authEchoServer(t)
		creds := NewStaticCredentials("abc")
		c := newTestClient(t, server.URL, WithCredentialProvider(creds))

		for i := 0; i < 3; i++ {
			_, err := c.Get(context.Background(), "/merchant/profile")
			require.NoError(t, err)
		}
		assert.Equal(t, []string{"Bearer abc", "Bearer abc", "Bearer abc"}, *seen)
	})

	t.Run("no token means no authorization header", func(t *testing.T) {
		server, seen := authEchoServer(t)
		c := newTestClient(t, server.URL, WithCredentialProvider(NewStaticCredentials("")))

		_, err := c.Get(context.Background(), "/merchants/products")
		require.NoError(t, err)
		assert.Equal(t, []string{""}, *seen)
	})

	t.Run("token changes are picked up by the next request", func(t *testing.T) {
		server, seen := authEchoServer(t)
		creds := NewStaticCredentials("")
		c := newTestClient(t, server.URL, WithCredentialProvider(creds))

		_, err := c.Get(context.Background(), "/customers/cart")
		require.NoError(t, err)
		creds.Set("t2")
		_, err = c.Get(context.Background(), "/customers/cart")
		require.NoError(t, err)

		assert.Equal(t, []string{"", "Bearer t2"}, *seen)
	})

	t.Run("explicit authorization header wins", func(t *testing.T) {
		server, seen := authEchoServer(t)
		provider := new(MockCredentialProvider)
		c := newTestClient(t, server.URL, WithCredentialProvider(provider))

		_, err := c.Post(context.Background(), "/merchant/refresh-token", nil, WithHeader("Authorization", "Bearer old"))
		require.NoError(t, err)

		assert.Equal(t, []string{"Bearer old"}, *seen)
		provider.AssertNotCalled(t, "Token", mock.Anything)
	})

	t.Run("provider failure sends request unauthenticated", func(t *testing.T) {
		server, seen := authEchoServer(t)
		core, logs := observer.New(zapcore.DebugLevel)
		provider := new(MockCredentialProvider)
		provider.On("Token", mock.Anything).Return("", errors.New("store unavailable")).Once()

		c := newTestClient(t, server.URL, WithCredentialProvider(provider), WithLogger(zap.New(core)))

		_, err := c.Get(context.Background(), "/merchant/profile")
		require.NoError(t, err)

		assert.Equal(t, []string{""}, *seen)
		assert.Equal(t, 1, logs.FilterMessage("credential provider failed, sending request without token").Len())
		provider.AssertExpectations(t)
	})

	t.Run("credential func adapter", func(t *testing.T) {
		server, seen := authEchoServer(t)
		c := newTestClient(t, server.URL, WithCredentialProvider(CredentialFunc(func(context.Context) (string, error) {
			return "fn-token", nil
		})))

		_, err := c.Get(context.Background(), "/reviews")
		require.NoError(t, err)
		assert.Equal(t, []string{"Bearer fn-token"}, *seen)
	})
}

func TestErrorLogInterceptor(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		message string
		level   zapcore.Level
	}{
		{
			name:    "response error",
			err:     &Error{Kind: KindResponse, Response: &Response{StatusCode: 422, Body: []byte(`{"error":"bad"}`)}},
			message: "backend responded with error status",
			level:   zapcore.WarnLevel,
		},
		{
			name:    "no response",
			err:     &Error{Kind: KindNoResponse, Err: errors.New("connection refused")},
			message: "no response received from backend",
			level:   zapcore.ErrorLevel,
		},
		{
			name:    "setup",
			err:     &Error{Kind: KindSetup, Err: errors.New("bad url")},
			message: "request could not be built",
			level:   zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			hook := ErrorLogInterceptor(zap.New(core))

			resp, err := hook(context.Background(), RequestInfo{Method: "GET", URL: "http://x/y"}, nil, tt.err)

			assert.Nil(t, resp)
			assert.Same(t, tt.err, err)
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.message, entry.Message)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, "GET", entry.ContextMap()["method"])
		})
	}

	t.Run("success passes through without logging", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		hook := ErrorLogInterceptor(zap.New(core))
		in := &Response{StatusCode: 200}

		resp, err := hook(context.Background(), RequestInfo{}, in, nil)
		assert.NoError(t, err)
		assert.Same(t, in, resp)
		assert.Equal(t, 0, logs.Len())
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "response", KindResponse.String())
	assert.Equal(t, "no_response", KindNoResponse.String())
	assert.Equal(t, "setup", KindSetup.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
