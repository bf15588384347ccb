package identity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthResult_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantToken    string
		wantMerchant *Merchant
	}{
		{
			name:         "canonical token and merchant",
			body:         `{"merchant":{"id":1},"token":"abc"}`,
			wantToken:    "abc",
			wantMerchant: &Merchant{ID: 1},
		},
		{
			name:         "user field instead of merchant",
			body:         `{"token":"abc","user":{"merchantId":7,"email":"m@shop.io"}}`,
			wantToken:    "abc",
			wantMerchant: &Merchant{MerchantID: 7, Email: "m@shop.io"},
		},
		{
			name:         "token nested in merchant",
			body:         `{"merchant":{"merchantId":3,"token":"nested"}}`,
			wantToken:    "nested",
			wantMerchant: &Merchant{MerchantID: 3},
		},
		{
			name:         "top level token wins over nested",
			body:         `{"token":"top","merchant":{"token":"nested"}}`,
			wantToken:    "top",
			wantMerchant: &Merchant{},
		},
		{
			name:      "token only",
			body:      `{"token":"abc","merchant":null}`,
			wantToken: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AuthResult
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.wantToken, got.Token)
			assert.Equal(t, tt.wantMerchant, got.Merchant)
		})
	}

	t.Run("invalid merchant object", func(t *testing.T) {
		var got AuthResult
		assert.Error(t, json.Unmarshal([]byte(`{"merchant":"nope"}`), &got))
	})
}

func TestClaims_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Claims{}.Expired(now), "no expiry never expires")
	assert.False(t, Claims{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Claims{ExpiresAt: now}.Expired(now))
	assert.True(t, Claims{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}
