package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mhizterpaul/cartlink/internal/domain/identity"
	"go.uber.org/zap"
)

// ErrNoToken is returned by Claims when nothing is persisted.
var ErrNoToken = errors.New("no token stored")

// Tokens reads and writes the bearer token in a Store. It is the credential
// provider handed to the HTTP client and the persistence effect used by the
// auth slice.
type Tokens struct {
	store  Store
	key    string
	logger *zap.Logger
}

// NewTokens wraps store using TokenKey.
func NewTokens(store Store, logger *zap.Logger) *Tokens {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tokens{store: store, key: TokenKey, logger: logger}
}

// Token returns the stored token, or "" when none is stored.
func (t *Tokens) Token(ctx context.Context) (string, error) {
	v, err := t.store.Get(ctx, t.key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Save persists token. An empty token clears it.
func (t *Tokens) Save(ctx context.Context, token string) error {
	if token == "" {
		return t.Clear(ctx)
	}
	if err := t.store.Set(ctx, t.key, token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	t.logger.Debug("token persisted")
	return nil
}

// Clear removes the stored token.
func (t *Tokens) Clear(ctx context.Context) error {
	if err := t.store.Delete(ctx, t.key); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	t.logger.Debug("token cleared")
	return nil
}

// Claims decodes the stored token.
func (t *Tokens) Claims(ctx context.Context) (identity.Claims, error) {
	token, err := t.Token(ctx)
	if err != nil {
		return identity.Claims{}, err
	}
	if token == "" {
		return identity.Claims{}, ErrNoToken
	}
	return ParseClaims(token)
}

// ParseClaims reads the standard and cartlink claims from a JWT without
// checking its signature.
func ParseClaims(token string) (identity.Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return identity.Claims{}, fmt.Errorf("parsing token: %w", err)
	}

	var claims identity.Claims
	claims.Subject, _ = mapClaims.GetSubject()
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	return claims, nil
}
