package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/identity"
)

// MerchantState is the merchant's own profile.
type MerchantState struct {
	Profile *identity.Merchant `json:"profile"`
}

// MerchantSlice covers password recovery and profile management.
type MerchantSlice struct {
	*Slice[MerchantState]

	requestReset  Operation[MerchantState, identity.PasswordResetRequest, Empty]
	resetPassword Operation[MerchantState, identity.PasswordReset, Empty]
	profile       Operation[MerchantState, Empty, identity.Merchant]
	updateProfile Operation[MerchantState, identity.ProfileUpdate, identity.Merchant]
}

func NewMerchantSlice(calls MerchantCalls, opts ...Option) *MerchantSlice {
	storeProfile := func(_ MerchantState, m identity.Merchant) MerchantState {
		return MerchantState{Profile: &m}
	}
	return &MerchantSlice{
		Slice: NewSlice("merchant", MerchantState{}, opts...),
		requestReset: Operation[MerchantState, identity.PasswordResetRequest, Empty]{
			Type:     "merchant/requestPasswordReset",
			Call:     validated(noResult(calls.RequestPasswordReset)),
			Fallback: "Password reset request failed",
		},
		resetPassword: Operation[MerchantState, identity.PasswordReset, Empty]{
			Type:     "merchant/resetPassword",
			Call:     validated(noResult(calls.ResetPassword)),
			Fallback: "Password reset failed",
		},
		profile: Operation[MerchantState, Empty, identity.Merchant]{
			Type:      "merchant/fetchProfile",
			Call:      noArg(calls.Profile),
			Fulfilled: storeProfile,
		},
		updateProfile: Operation[MerchantState, identity.ProfileUpdate, identity.Merchant]{
			Type:      "merchant/updateProfile",
			Call:      validated(calls.UpdateProfile),
			Fallback:  "Profile update failed",
			Fulfilled: storeProfile,
		},
	}
}

func (m *MerchantSlice) RequestPasswordReset(ctx context.Context, req identity.PasswordResetRequest) *Result[Empty] {
	return Dispatch(ctx, m.Slice, m.requestReset, req)
}

func (m *MerchantSlice) ResetPassword(ctx context.Context, req identity.PasswordReset) *Result[Empty] {
	return Dispatch(ctx, m.Slice, m.resetPassword, req)
}

func (m *MerchantSlice) FetchProfile(ctx context.Context) *Result[identity.Merchant] {
	return Dispatch(ctx, m.Slice, m.profile, Empty{})
}

func (m *MerchantSlice) UpdateProfile(ctx context.Context, req identity.ProfileUpdate) *Result[identity.Merchant] {
	return Dispatch(ctx, m.Slice, m.updateProfile, req)
}
