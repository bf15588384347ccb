package api

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/identity"
)

// CustomerAPI covers customer authentication.
type CustomerAPI struct {
	doer Doer
}

func NewCustomerAPI(d Doer) *CustomerAPI {
	return &CustomerAPI{doer: d}
}

func (a *CustomerAPI) SignUp(ctx context.Context, req identity.SignUpRequest) (identity.CustomerAuthResult, error) {
	return call[identity.CustomerAuthResult](ctx, a.doer, post("/customers/signup", "/customers/signup", req))
}

func (a *CustomerAPI) Login(ctx context.Context, req identity.LoginRequest) (identity.CustomerAuthResult, error) {
	return call[identity.CustomerAuthResult](ctx, a.doer, post("/customers/login", "/customers/login", req))
}

func (a *CustomerAPI) RequestPasswordReset(ctx context.Context, req identity.PasswordResetRequest) error {
	return exec(ctx, a.doer, post("/customers/password-reset-request", "/customers/password-reset-request", req))
}

func (a *CustomerAPI) ResetPassword(ctx context.Context, req identity.PasswordReset) error {
	return exec(ctx, a.doer, post("/customers/password-reset", "/customers/password-reset", req))
}
