package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhizterpaul/cartlink/internal/domain/identity"
	"go.uber.org/zap"
)

// ErrSignedOut is returned by callers that need a token when none is held.
var ErrSignedOut = errors.New("not signed in")

// AuthState is the signed-in merchant and the bearer token mirrored to storage.
type AuthState struct {
	Merchant *identity.Merchant `json:"merchant"`
	Token    string             `json:"token,omitempty"`
}

// AuthSlice tracks merchant authentication.
type AuthSlice struct {
	*Slice[AuthState]

	tokens  TokenPersister
	login   Operation[AuthState, identity.LoginRequest, identity.AuthResult]
	signUp  Operation[AuthState, identity.SignUpRequest, identity.AuthResult]
	refresh Operation[AuthState, string, identity.TokenResult]
}

// NewAuthSlice seeds the token from tokens. A failed read starts signed out.
func NewAuthSlice(ctx context.Context, calls MerchantCalls, tokens TokenPersister, opts ...Option) *AuthSlice {
	o := buildOptions(opts)
	initial := AuthState{}
	if token, err := tokens.Token(ctx); err != nil {
		o.logger.Warn("could not read persisted token, starting signed out", zap.Error(err))
	} else {
		initial.Token = token
	}

	a := &AuthSlice{
		Slice:  NewSlice("auth", initial, opts...),
		tokens: tokens,
	}
	a.login = Operation[AuthState, identity.LoginRequest, identity.AuthResult]{
		Type:      "auth/login",
		Call:      validated(calls.Login),
		Fallback:  "Login failed",
		Fulfilled: authenticated,
		After:     a.persist,
	}
	a.signUp = Operation[AuthState, identity.SignUpRequest, identity.AuthResult]{
		Type:      "auth/signup",
		Call:      validated(calls.SignUp),
		Fallback:  "Sign up failed",
		Fulfilled: authenticated,
		After:     a.persist,
	}
	a.refresh = Operation[AuthState, string, identity.TokenResult]{
		Type:     "auth/refresh",
		Call:     calls.RefreshToken,
		Fallback: "Token refresh failed",
		Fulfilled: func(st AuthState, res identity.TokenResult) AuthState {
			st.Token = res.Token
			return st
		},
		After: func(ctx context.Context, res identity.TokenResult) error {
			return a.tokens.Save(ctx, res.Token)
		},
	}
	return a
}

func authenticated(_ AuthState, res identity.AuthResult) AuthState {
	return AuthState{Merchant: res.Merchant, Token: res.Token}
}

func (a *AuthSlice) persist(ctx context.Context, res identity.AuthResult) error {
	return a.tokens.Save(ctx, res.Token)
}

func (a *AuthSlice) Login(ctx context.Context, req identity.LoginRequest) *Result[identity.AuthResult] {
	return Dispatch(ctx, a.Slice, a.login, req)
}

func (a *AuthSlice) SignUp(ctx context.Context, req identity.SignUpRequest) *Result[identity.AuthResult] {
	return Dispatch(ctx, a.Slice, a.signUp, req)
}

// Refresh exchanges the current token for a new one.
func (a *AuthSlice) Refresh(ctx context.Context) *Result[identity.TokenResult] {
	return Dispatch(ctx, a.Slice, a.refresh, a.State().Data.Token)
}

// Logout clears the state and deletes the persisted token.
func (a *AuthSlice) Logout(ctx context.Context) error {
	a.replace(AuthState{})
	if err := a.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clearing persisted token: %w", err)
	}
	return nil
}

// Authenticated reports whether a token is held.
func (a *AuthSlice) Authenticated() bool {
	return a.State().Data.Token != ""
}
