package api

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/identity"
	"github.com/mhizterpaul/cartlink/internal/domain/trade"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/httpclient"
)

// MerchantAPI covers merchant authentication and account endpoints.
type MerchantAPI struct {
	doer Doer
}

func NewMerchantAPI(d Doer) *MerchantAPI {
	return &MerchantAPI{doer: d}
}

func (a *MerchantAPI) SignUp(ctx context.Context, req identity.SignUpRequest) (identity.AuthResult, error) {
	return call[identity.AuthResult](ctx, a.doer, post("/merchant/signup", "/merchant/signup", req))
}

func (a *MerchantAPI) Login(ctx context.Context, req identity.LoginRequest) (identity.AuthResult, error) {
	return call[identity.AuthResult](ctx, a.doer, post("/merchant/login", "/merchant/login", req))
}

// RefreshToken exchanges prior for a fresh token. When prior is empty the
// client's credential provider supplies the Authorization header instead.
func (a *MerchantAPI) RefreshToken(ctx context.Context, prior string) (identity.TokenResult, error) {
	req := post("/merchant/refresh-token", "/merchant/refresh-token", nil)
	if prior != "" {
		req.Headers = map[string]string{httpclient.HeaderAuthorization: "Bearer " + prior}
	}
	return call[identity.TokenResult](ctx, a.doer, req)
}

func (a *MerchantAPI) RequestPasswordReset(ctx context.Context, req identity.PasswordResetRequest) error {
	return exec(ctx, a.doer, post("/merchant/password-reset-request", "/merchant/password-reset-request", req))
}

func (a *MerchantAPI) ResetPassword(ctx context.Context, req identity.PasswordReset) error {
	return exec(ctx, a.doer, post("/merchant/password-reset", "/merchant/password-reset", req))
}

func (a *MerchantAPI) Logout(ctx context.Context) error {
	return exec(ctx, a.doer, post("/merchant/logout", "/merchant/logout", nil))
}

func (a *MerchantAPI) Profile(ctx context.Context) (identity.Merchant, error) {
	return call[identity.Merchant](ctx, a.doer, get("/merchant/profile", "/merchant/profile"))
}

func (a *MerchantAPI) UpdateProfile(ctx context.Context, req identity.ProfileUpdate) (identity.Merchant, error) {
	return call[identity.Merchant](ctx, a.doer, put("/merchant/profile", "/merchant/profile", req))
}

// Reviews lists reviews left for the signed-in merchant.
func (a *MerchantAPI) Reviews(ctx context.Context) ([]trade.Review, error) {
	return call[[]trade.Review](ctx, a.doer, get("/merchant/reviews", "/merchant/reviews"))
}

// Complaints lists complaints raised against the signed-in merchant's orders.
func (a *MerchantAPI) Complaints(ctx context.Context) ([]trade.Complaint, error) {
	return call[[]trade.Complaint](ctx, a.doer, get("/merchant/complaints", "/merchant/complaints"))
}
