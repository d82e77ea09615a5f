package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusBadRequest},
		{NotFound("nf"), http.StatusNotFound},
		{Forbidden("no"), http.StatusForbidden},
		{Unauthenticated("who"), http.StatusUnauthorized},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.err.Status(), tc.err.Message)
	}
}

func TestAs_WrapsUntyped(t *testing.T) {
	cause := errors.New("pool closed")
	ae := As(cause)
	require.NotNil(t, ae)
	assert.Equal(t, KindInternal, ae.Kind)
	assert.ErrorIs(t, ae, cause)
	assert.Nil(t, As(nil))
}

func TestAs_FindsWrapped(t *testing.T) {
	err := fmt.Errorf("accept: %w", Forbidden("No tienes permiso"))
	ae := As(err)
	assert.Equal(t, KindForbidden, ae.Kind)
	assert.True(t, IsKind(err, KindForbidden))
	assert.False(t, IsKind(err, KindNotFound))
}

func TestWithDetails_DoesNotMutate(t *testing.T) {
	base := Validation("Datos inválidos")
	withD := base.WithDetails(map[string]string{"email": "es requerido"})
	assert.Nil(t, base.Details)
	assert.NotNil(t, withD.Details)
}
