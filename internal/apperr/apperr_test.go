package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("name is required"), KindValidation},
		{"wrapped not found", fmt.Errorf("load product: %w", NotFound("product")), KindNotFound},
		{"permission", PermissionDenied("staff only"), KindPermissionDenied},
		{"unauthorized", Unauthorized("invalid token"), KindUnauthorized},
		{"upstream", Upstream("bad gateway body", errors.New("status 422")), KindUpstream},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			assert.True(t, Is(tt.err, tt.want))
		})
	}
	assert.False(t, Is(nil, KindInternal))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "product not found", NotFound("product").Error())

	cause := errors.New("status 400")
	err := Upstream(`{"name":"INVALID_REQUEST"}`, cause)
	assert.Equal(t, `{"name":"INVALID_REQUEST"}: status 400`, err.Error())
	assert.ErrorIs(t, err, cause)

	fields := FieldErrors(map[string]string{"name": "This field is required."})
	assert.Equal(t, "invalid input", fields.Error())
	assert.Equal(t, KindValidation, fields.Kind)
}
