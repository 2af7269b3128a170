package validation

import (
	"testing"

	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FullName string `json:"fullName" validate:"required"`
	Class    string `json:"admissionClass" validate:"required" message:"Class of admission required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Level    string `json:"level" validate:"omitempty,oneof=JSS SSS"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  sample
		fields map[string]string
	}{
		{
			name:   "valid",
			input:  sample{FullName: "Ada", Class: "JSS 1"},
			fields: nil,
		},
		{
			name:  "missing required with custom message",
			input: sample{},
			fields: map[string]string{
				"fullName":       "Required",
				"admissionClass": "Class of admission required",
			},
		},
		{
			name:   "format rules",
			input:  sample{FullName: "Ada", Class: "JSS 1", Email: "nope", Level: "Primary"},
			fields: map[string]string{"email": "Invalid email address", "level": "Must be one of: JSS, SSS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}
