package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeInternal, "failed to disable account", cause)

	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to disable account")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("user not found"))
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeUnauthenticated:  http.StatusUnauthorized,
		CodePermissionDenied: http.StatusForbidden,
		CodeInvalidArgument:  http.StatusBadRequest,
		CodeNotFound:         http.StatusNotFound,
		CodeInternal:         http.StatusInternalServerError,
	}
	for code, want := range cases {
		require.Equal(t, want, HTTPStatus(code), string(code))
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Code("UNKNOWN")))
}
