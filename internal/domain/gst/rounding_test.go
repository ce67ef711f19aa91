package gst_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

func TestApplyRounding(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		mode   gst.RoundingMode
		places int32
		want   string
	}{
		{"nearest a entero", "117.9882", gst.RoundNearest, 0, "118"},
		{"nearest mitad sube", "2.5", gst.RoundNearest, 0, "3"},
		{"nearest mitad negativa sube", "-2.5", gst.RoundNearest, 0, "-2"},
		{"nearest 2 decimales", "19.255", gst.RoundNearest, 2, "19.26"},
		{"up", "1.001", gst.RoundUp, 2, "1.01"},
		{"up exacto", "1.5", gst.RoundUp, 1, "1.5"},
		{"down", "1.999", gst.RoundDown, 2, "1.99"},
		{"down a entero", "117.99", gst.RoundDown, 0, "117"},
		{"none sin cambios", "1.23456", gst.RoundNone, 2, "1.23456"},
		{"decimales se limitan a 3", "1.23456", gst.RoundNearest, 7, "1.235"},
		{"decimales negativos cuentan como 0", "1.6", gst.RoundNearest, -1, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDec(t, tt.want, gst.ApplyRounding(dec(tt.value), tt.mode, tt.places))
		})
	}
}

func TestApplyRounding_Idempotente(t *testing.T) {
	values := []string{"0", "0.5", "1.0049", "2.675", "-3.14159", "999.9995", "123456.78901"}
	modes := []gst.RoundingMode{gst.RoundNearest, gst.RoundUp, gst.RoundDown, gst.RoundNone}
	for _, v := range values {
		for _, m := range modes {
			for d := int32(0); d <= gst.MaxDecimalPlaces; d++ {
				once := gst.ApplyRounding(dec(v), m, d)
				twice := gst.ApplyRounding(once, m, d)
				assert.Truef(t, once.Equal(twice), "v=%s modo=%s d=%d: %s != %s", v, m, d, once, twice)
			}
		}
	}
}

func TestApplyRounding_ModoDesconocidoEsNearest(t *testing.T) {
	for _, v := range []string{"2.345", "-2.345", "7.5", "0.0049"} {
		x := decimal.RequireFromString(v)
		want := gst.ApplyRounding(x, gst.RoundNearest, 2)
		got := gst.ApplyRounding(x, gst.RoundingMode("bankers"), 2)
		assert.Truef(t, want.Equal(got), "%s: esperado %s, obtenido %s", v, want, got)
	}
}

func TestApplyRoundingFloat_NaN(t *testing.T) {
	assert.Equal(t, 0.0, gst.ApplyRoundingFloat(math.NaN(), gst.RoundNearest, 2))
	assert.Equal(t, 0.0, gst.ApplyRoundingFloat(math.Inf(-1), gst.RoundUp, 0))
	assert.Equal(t, 3.0, gst.ApplyRoundingFloat(2.5, gst.RoundNearest, 0))
}

func TestFormat_DecimalesFijos(t *testing.T) {
	assert.Equal(t, "180.00", gst.Format(dec("180"), 2))
	assert.Equal(t, "118", gst.Format(dec("117.9882"), 0))
	assert.Equal(t, "0.125", gst.Format(dec("0.125"), 3))
}

func TestOptions_Alcance(t *testing.T) {
	tests := []struct {
		scope                     gst.RoundingScope
		sub, tax, grand, perLinea bool
	}{
		{gst.ScopeAll, true, true, true, true},
		{gst.ScopeSubtotal, true, false, false, false},
		{gst.ScopeTax, false, true, false, false},
		{gst.ScopeGrandTotal, false, false, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			o := gst.DefaultOptions()
			o.RoundingScope = tt.scope
			assert.Equal(t, tt.sub, o.RoundsSubtotal())
			assert.Equal(t, tt.tax, o.RoundsTax())
			assert.Equal(t, tt.grand, o.RoundsGrandTotal())
			assert.Equal(t, tt.perLinea, o.RoundsLines())
		})
	}
}

func TestOptions_ValoresPorDefecto(t *testing.T) {
	o := gst.DefaultOptions()
	assert.False(t, o.TaxEnabled)
	assert.Equal(t, gst.MethodInclusive, o.Method)
	assert.Equal(t, gst.RoundNearest, o.RoundingMode)
	assert.Equal(t, int32(0), o.DecimalPlaces)
	assert.Equal(t, gst.ScopeAll, o.RoundingScope)
	require.NoError(t, o.Validate())
}

func TestOptions_Validate(t *testing.T) {
	o := gst.DefaultOptions()
	o.DecimalPlaces = 4
	assert.Error(t, o.Validate())

	o = gst.DefaultOptions()
	o.Method = "mixto"
	assert.Error(t, o.Validate())

	o = gst.DefaultOptions()
	o.RoundingScope = "lineas"
	assert.Error(t, o.Validate())
}

func TestParseEnums(t *testing.T) {
	m, err := gst.ParseTaxMethod(" Exclusive ")
	require.NoError(t, err)
	assert.Equal(t, gst.MethodExclusive, m)

	m, err = gst.ParseTaxMethod("")
	require.NoError(t, err)
	assert.Equal(t, gst.MethodInclusive, m)

	_, err = gst.ParseTaxMethod("otro")
	assert.Error(t, err)

	r, err := gst.ParseRoundingMode("DOWN")
	require.NoError(t, err)
	assert.Equal(t, gst.RoundDown, r)

	s, err := gst.ParseRoundingScope("grandtotal")
	require.NoError(t, err)
	assert.Equal(t, gst.ScopeGrandTotal, s)

	_, err = gst.ParseRoundingScope("x")
	assert.Error(t, err)
}
