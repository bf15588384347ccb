package httpclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// RequestInterceptor runs on every outgoing request before it is sent.
// Returning an error aborts the call with a KindSetup *Error.
type RequestInterceptor func(ctx context.Context, req *http.Request) error

// ResponseInterceptor runs on every finished call, successful or not.
type ResponseInterceptor func(ctx context.Context, info RequestInfo, resp *Response, err error) (*Response, error)

// maximum number of body bytes copied into a diagnostic
const logBodyLimit = 512

// requestIDInterceptor sends the request id carried by ctx, or a fresh one.
func requestIDInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *http.Request) error {
		if req.Header.Get(HeaderRequestID) != "" {
			return nil
		}
		id := logger.RequestID(ctx)
		if id == "" {
			id = uuid.NewString()
		}
		req.Header.Set(HeaderRequestID, id)
		return nil
	}
}

// BearerInterceptor sets "Authorization: Bearer <token>" when the provider has a token.
// An explicit Authorization header on the request is left alone. It never refreshes
// or waits: a provider error is logged and the request goes out without credentials.
func BearerInterceptor(p CredentialProvider, log *zap.Logger) RequestInterceptor {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, req *http.Request) error {
		if req.Header.Get(HeaderAuthorization) != "" {
			return nil
		}
		token, err := p.Token(ctx)
		if err != nil {
			logger.Enrich(ctx, log).Warn("credential provider failed, sending request without token",
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Error(err),
			)
			return nil
		}
		if token != "" {
			req.Header.Set(HeaderAuthorization, "Bearer "+token)
		}
		return nil
	}
}

// ErrorLogInterceptor emits one diagnostic per failure kind and returns the
// response and error unchanged.
func ErrorLogInterceptor(log *zap.Logger) ResponseInterceptor {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, info RequestInfo, resp *Response, err error) (*Response, error) {
		if err == nil {
			return resp, nil
		}
		e, ok := AsError(err)
		if !ok {
			return resp, err
		}

		l := logger.Enrich(ctx, log).With(
			zap.String("method", info.Method),
			zap.String("url", info.URL),
		)
		switch e.Kind {
		case KindResponse:
			l.Warn("backend responded with error status",
				zap.Int("status", e.StatusCode()),
				zap.ByteString("body", truncate(e.Response.Body, logBodyLimit)),
			)
		case KindNoResponse:
			l.Error("no response received from backend", zap.Error(e.Err))
		case KindSetup:
			l.Error("request could not be built", zap.Error(e.Err))
		}
		return resp, err
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
