package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromResponseMapsStatusToCode(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, "BAD_REQUEST"},
		{http.StatusUnauthorized, "UNAUTHORIZED"},
		{http.StatusForbidden, "FORBIDDEN"},
		{http.StatusNotFound, "NOT_FOUND"},
		{http.StatusInternalServerError, "REQUEST_FAILED"},
	}

	for _, tt := range tests {
		err := FromResponse(tt.status, []byte(`{"message":"nope"}`))
		assert.Equal(t, tt.code, err.Code)
		assert.Equal(t, tt.status, err.Status)
		assert.Equal(t, "nope", err.Message)
	}
}

func TestFromResponseFallsBackToGenericMessage(t *testing.T) {
	err := FromResponse(http.StatusInternalServerError, []byte("<html>boom</html>"))
	assert.Equal(t, "An unexpected error occurred", err.Message)

	err = FromResponse(http.StatusBadRequest, []byte(`{}`))
	assert.Equal(t, "An unexpected error occurred", err.Message)
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Token expired", MessageOf([]byte(`{"message":"Token expired"}`)))
	assert.Equal(t, "", MessageOf([]byte(`not json`)))
	assert.Equal(t, "", MessageOf([]byte(`{"error":"other"}`)))
}

func TestIsMatchesWrappedCodes(t *testing.T) {
	err := NotFound("Store", nil)
	assert.True(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(err, "UNAUTHORIZED"))
	assert.False(t, Is(nil, "NOT_FOUND"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusOf(TokenExpired(nil)))
	assert.Equal(t, 0, StatusOf(assert.AnError))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := assert.AnError
	err := Internal("wrapped", cause)
	assert.ErrorIs(t, err, cause)
}
