package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeInternal, http.StatusInternalServerError},
		{Code("OTHER"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := NotFoundf("Fondo con ID %s no encontrado", "abc")
	wrapped := fmt.Errorf("get wallpaper: %w", err)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.Equal(t, "Fondo con ID abc no encontrado", err.Error())
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := Internal(cause)

	assert.Equal(t, "Error del servidor", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "relation does not exist")
}

func TestAs(t *testing.T) {
	e, ok := As(fmt.Errorf("wrap: %w", Validation("bad")))
	require.True(t, ok)
	assert.Equal(t, CodeValidation, e.Code)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
