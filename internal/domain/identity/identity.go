// Package identity holds the merchant and customer account payloads.
package identity

import (
	"bytes"
	"encoding/json"
	"time"
)

// Merchant is a seller account as returned by the backend.
type Merchant struct {
	// Some backend variants key the merchant by id instead of merchantId.
	ID          int64   `json:"id,omitempty"`
	MerchantID  int64   `json:"merchantId,omitempty"`
	Email       string  `json:"email,omitempty"`
	FirstName   string  `json:"firstName,omitempty"`
	LastName    string  `json:"lastName,omitempty"`
	MiddleName  string  `json:"middleName,omitempty"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	Image       string  `json:"image,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	RatingCount int     `json:"ratingCount,omitempty"`
}

// Customer is a buyer account.
type Customer struct {
	CustomerID  int64  `json:"customerId,omitempty"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// SignUpRequest is the merchant or customer registration form.
type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	MiddleName  string `json:"middleName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest asks the backend to email a reset token.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordReset completes a reset with the emailed token.
type PasswordReset struct {
	Email       string `json:"email" validate:"required,email"`
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ProfileUpdate changes the editable merchant profile fields.
type ProfileUpdate struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Image       string `json:"image,omitempty"`
}

// TokenResult is the refresh-token response.
type TokenResult struct {
	Token string `json:"token"`
}

// AuthResult is the merchant login or signup response.
//
// The canonical shape is {"token": ..., "merchant": {...}}. Older handlers
// answered with {"token": ..., "user": {...}} or nested the token inside the
// merchant object; both still decode.
type AuthResult struct {
	Token        string    `json:"token,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Merchant     *Merchant `json:"merchant,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AuthResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Token        string          `json:"token"`
		RefreshToken string          `json:"refreshToken"`
		Merchant     json.RawMessage `json:"merchant"`
		User         json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.Token = raw.Token
	a.RefreshToken = raw.RefreshToken
	a.Merchant = nil

	account := raw.Merchant
	if isEmptyJSON(account) {
		account = raw.User
	}
	if isEmptyJSON(account) {
		return nil
	}

	var m Merchant
	if err := json.Unmarshal(account, &m); err != nil {
		return err
	}
	a.Merchant = &m

	if a.Token == "" {
		var nested struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(account, &nested); err == nil {
			a.Token = nested.Token
		}
	}
	return nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// CustomerAuthResult is the customer login or signup response.
type CustomerAuthResult struct {
	Token    string    `json:"token,omitempty"`
	Customer *Customer `json:"customerDetails,omitempty"`
}

// Claims are the fields read from a bearer token without verifying its signature.
// The client cannot verify: only the backend holds the key.
type Claims struct {
	Subject   string    `json:"sub,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	IssuedAt  time.Time `json:"issuedAt,omitzero"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// Expired reports whether the token has an expiry at or before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
