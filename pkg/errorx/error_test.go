package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(NotFound, "Not found group %s", "g1")
	require.Equal(t, NotFound, err.Code)
	require.Equal(t, "Not found group g1", err.Error())
}

func TestErrorAs(t *testing.T) {
	wrapped := fmt.Errorf("draw: %w", New(ConcurrencyConflict, "Another draw is in progress"))

	var errx Error
	require.True(t, errors.As(wrapped, &errx))
	require.Equal(t, ConcurrencyConflict, errx.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{code: BadRequest, want: http.StatusBadRequest},
		{code: PermissionDenied, want: http.StatusForbidden},
		{code: NotFound, want: http.StatusNotFound},
		{code: Unauthenticated, want: http.StatusUnauthorized},
		{code: AlreadyExists, want: http.StatusConflict},
		{code: ConcurrencyConflict, want: http.StatusConflict},
		{code: InsufficientMembers, want: http.StatusUnprocessableEntity},
		{code: NoValidAssignment, want: http.StatusUnprocessableEntity},
		{code: Unknown.Code, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, HTTPStatus(tt.code), "code %d", tt.code)
	}
}
