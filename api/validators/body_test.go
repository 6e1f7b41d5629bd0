package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
}

func newJSONRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(newJSONRequest(t, `{"name":"alice","email":"alice@example.com"}`), &dest)

	require.NoError(t, err)
	assert.Equal(t, "alice", dest.Name)
	assert.Equal(t, "alice@example.com", dest.Email)
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(newJSONRequest(t, `{"name":`), &dest)

	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(newJSONRequest(t, `{"name":"alice","email":"a@b.com","extra":1}`), &dest)

	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestDecodeJSONBodyFieldMessagesUseJSONNames(t *testing.T) {
	var dest samplePayload
	err := DecodeJSONBody(newJSONRequest(t, `{"name":"a","email":"not-an-email"}`), &dest)

	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)

	details, ok := appErr.Details().(map[string]string)
	require.True(t, ok, "expected field detail map, got %T", appErr.Details())
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
}
