package gstin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/pkg/gstin"
)

func TestValidate_Validos(t *testing.T) {
	for _, g := range []string{"27AAPFU0939F1ZV", "29ABCDE1234F1ZW", "07AAACB2230M1ZY", " 27aapfu0939f1zv "} {
		assert.NoError(t, gstin.Validate(g), g)
	}
}

func TestValidate_Invalidos(t *testing.T) {
	tests := []struct {
		name  string
		gstin string
	}{
		{"vacío", ""},
		{"corto", "27AAPFU0939F1Z"},
		{"largo", "27AAPFU0939F1ZVX"},
		{"sin Z fija", "27AAPFU0939F1YV"},
		{"PAN mal formado", "271APFU0939F1ZV"},
		{"estado desconocido", "50AAPFU0939F1ZV"},
		{"control incorrecto", "29ABCDE1234F1Z5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, gstin.Validate(tt.gstin))
		})
	}
}

func TestCheckDigit(t *testing.T) {
	c, err := gstin.CheckDigit("27AAPFU0939F1Z")
	require.NoError(t, err)
	assert.Equal(t, byte('V'), c)

	_, err = gstin.CheckDigit("27AAPF")
	assert.Error(t, err)

	_, err = gstin.CheckDigit("27AAPFU0939F1*")
	assert.Error(t, err)
}

func TestResolveState(t *testing.T) {
	assert.Equal(t, "Maharashtra", gstin.ResolveState("", "27AAPFU0939F1ZV"))
	assert.Equal(t, "Pune", gstin.ResolveState("Pune", "27AAPFU0939F1ZV"))
	assert.Equal(t, "", gstin.ResolveState("  ", ""))

	name, ok := gstin.StateName("33")
	assert.True(t, ok)
	assert.Equal(t, "Tamil Nadu", name)
}
