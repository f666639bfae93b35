package lib

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"omitempty,min=1"`
}

func postJSON(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestExtractAndValidateBody_Valid(t *testing.T) {
	body, err := ExtractAndValidateBody[sampleRequest](postJSON(`{"name":"Ana","email":"ana@example.com","count":3}`))
	require.NoError(t, err)

	assert.Equal(t, "Ana", body.Name)
	assert.Equal(t, 3, body.Count)
}

func TestExtractAndValidateBody_UnknownField(t *testing.T) {
	_, err := ExtractAndValidateBody[sampleRequest](postJSON(`{"name":"Ana","email":"ana@example.com","surprise":true}`))
	assert.Error(t, err)
}

func TestExtractAndValidateBody_MalformedJSON(t *testing.T) {
	_, err := ExtractAndValidateBody[sampleRequest](postJSON(`{"name":`))
	assert.Error(t, err)
}

func TestExtractAndValidateBody_ValidationErrors(t *testing.T) {
	_, err := ExtractAndValidateBody[sampleRequest](postJSON(`{"name":"A","email":"nope"}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 2)

	fields := []string{ve.Errors[0].Field, ve.Errors[1].Field}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
}
