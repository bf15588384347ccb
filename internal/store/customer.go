package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/identity"
)

// CustomerState is the signed-in customer.
type CustomerState struct {
	Customer *identity.Customer `json:"customer"`
	Token    string             `json:"token,omitempty"`
}

// CustomerSlice tracks customer authentication. Its token shares the
// persisted key with the merchant's, so one identity is signed in at a time.
type CustomerSlice struct {
	*Slice[CustomerState]

	signUp Operation[CustomerState, identity.SignUpRequest, identity.CustomerAuthResult]
	login  Operation[CustomerState, identity.LoginRequest, identity.CustomerAuthResult]
}

func NewCustomerSlice(calls CustomerCalls, tokens TokenPersister, opts ...Option) *CustomerSlice {
	signedIn := func(_ CustomerState, res identity.CustomerAuthResult) CustomerState {
		return CustomerState{Customer: res.Customer, Token: res.Token}
	}
	persist := func(ctx context.Context, res identity.CustomerAuthResult) error {
		return tokens.Save(ctx, res.Token)
	}
	return &CustomerSlice{
		Slice: NewSlice("customer", CustomerState{}, opts...),
		signUp: Operation[CustomerState, identity.SignUpRequest, identity.CustomerAuthResult]{
			Type:      "customer/signup",
			Call:      validated(calls.SignUp),
			Fallback:  "Sign up failed",
			Fulfilled: signedIn,
			After:     persist,
		},
		login: Operation[CustomerState, identity.LoginRequest, identity.CustomerAuthResult]{
			Type:      "customer/login",
			Call:      validated(calls.Login),
			Fallback:  "Login failed",
			Fulfilled: signedIn,
			After:     persist,
		},
	}
}

func (c *CustomerSlice) SignUp(ctx context.Context, req identity.SignUpRequest) *Result[identity.CustomerAuthResult] {
	return Dispatch(ctx, c.Slice, c.signUp, req)
}

func (c *CustomerSlice) Login(ctx context.Context, req identity.LoginRequest) *Result[identity.CustomerAuthResult] {
	return Dispatch(ctx, c.Slice, c.login, req)
}
