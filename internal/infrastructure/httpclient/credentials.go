package httpclient

import (
	"context"
	"sync"
)

// CredentialProvider yields the bearer token for the next request.
// An empty token with a nil error means "no credentials".
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// CredentialFunc adapts a function to CredentialProvider.
type CredentialFunc func(ctx context.Context) (string, error)

// Token implements CredentialProvider.
func (f CredentialFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticCredentials holds a token in memory. Useful in tests and one-shot commands.
type StaticCredentials struct {
	mu    sync.RWMutex
	token string
}

// NewStaticCredentials returns credentials seeded with token.
func NewStaticCredentials(token string) *StaticCredentials {
	return &StaticCredentials{token: token}
}

// Token implements CredentialProvider.
func (s *StaticCredentials) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Set replaces the token. An empty string withholds credentials.
func (s *StaticCredentials) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
