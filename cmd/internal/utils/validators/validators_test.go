package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type contact struct {
	Phone string `validate:"omitempty,phone"`
	Code  string `validate:"omitempty,nospaces"`
}

func TestPhone(t *testing.T) {
	validate := New()

	valid := []string{"+1 (512) 555-0100", "5125550100", "+972 50-123-4567"}
	for _, p := range valid {
		assert.NoError(t, validate.Struct(contact{Phone: p}), p)
	}

	invalid := []string{"12345", "call me maybe", "+1 512 555 0100 0000 0000"}
	for _, p := range invalid {
		assert.Error(t, validate.Struct(contact{Phone: p}), p)
	}
}

func TestNoWhiteSpaces(t *testing.T) {
	validate := New()

	assert.NoError(t, validate.Struct(contact{Code: "ABCD1234"}))
	assert.Error(t, validate.Struct(contact{Code: "ABCD 1234"}))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "15125550100", DigitsOnly("+1 (512) 555-0100"))
}
