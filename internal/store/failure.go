package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/httpclient"
)

// Failure is the normalized rejection stored in a slice's Error field.
type Failure struct {
	// Status is the HTTP status when the backend responded, otherwise 0.
	Status int `json:"status,omitempty"`
	// Message is the text a view should show.
	Message string `json:"message"`
	// Payload is the backend's decoded error body, or the field errors of a
	// rejected form.
	Payload any `json:"payload,omitempty"`

	err error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.err
}

// normalize turns an operation error into a Failure. The message is taken
// from the body's message, then its error field, then fallback, then the
// error text.
func normalize(err error, fallback string) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return formFailure(verrs, err)
	}

	f = &Failure{err: err}
	if httpErr, ok := httpclient.AsError(err); ok && httpErr.Response != nil {
		f.Status = httpErr.StatusCode()
		f.Payload = decodePayload(httpErr.Response.Body)
	}

	switch {
	case payloadString(f.Payload, "message") != "":
		f.Message = payloadString(f.Payload, "message")
	case payloadString(f.Payload, "error") != "":
		f.Message = payloadString(f.Payload, "error")
	case fallback != "":
		f.Message = fallback
	default:
		f.Message = err.Error()
	}
	if text, ok := f.Payload.(string); ok && fallback == "" && text != "" {
		f.Message = text
	}
	return f
}

func decodePayload(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

func payloadString(payload any, key string) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func formFailure(verrs validator.ValidationErrors, err error) *Failure {
	fields := make(map[string]string, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
		parts = append(parts, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &Failure{
		Message: "invalid form: " + strings.Join(parts, ", "),
		Payload: fields,
		err:     err,
	}
}
