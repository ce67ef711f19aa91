package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
)

func TestNumber_ValoresNoNumericosSonCero(t *testing.T) {
	tests := map[string]string{
		"número":             `{"quantity": 2.5}`,
		"string":             `{"quantity": "2.5"}`,
		"texto":              `{"quantity": "abc"}`,
		"NaN":                `{"quantity": "NaN"}`,
		"null":               `{"quantity": null}`,
		"booleano":           `{"quantity": true}`,
		"string vacío":       `{"quantity": ""}`,
		"campo ausente":      `{}`,
		"exponente enorme":   `{"quantity": "1e999999"}`,
		"exponente negativo": `{"quantity": "1e-999999"}`,
		"número JSON enorme": `{"quantity": 1e2000000}`,
		"sobre el máximo":    `{"quantity": "1000000000000000"}`,
		"bajo el máximo":     `{"quantity": "999999999999999.5"}`,
	}
	want := map[string]string{"número": "2.5", "string": "2.5", "bajo el máximo": "999999999999999.5"}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			var in dto.LineItemRequest
			require.NoError(t, json.Unmarshal([]byte(body), &in))
			expected := decimal.Zero
			if w, ok := want[name]; ok {
				expected = decimal.RequireFromString(w)
			}
			assert.Truef(t, expected.Equal(in.Quantity.Decimal), "obtenido %s", in.Quantity.String())
		})
	}
}

func TestOptionalNumber_VacioEsSinAjuste(t *testing.T) {
	var in dto.TotalsOverrideRequest
	body := `{"sub_total": "500", "cgst_total": "", "sgst_total": null, "grand_total": 0}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	assert.True(t, in.SubTotal.Valid)
	assert.True(t, in.SubTotal.Value.Equal(decimal.NewFromInt(500)))
	assert.False(t, in.CGSTTotal.Valid, "string vacío limpia el ajuste")
	assert.False(t, in.SGSTTotal.Valid)
	assert.False(t, in.IGSTTotal.Valid, "campo ausente")
	assert.True(t, in.GrandTotal.Valid, "un ajuste a 0 sigue siendo un ajuste")
	assert.Nil(t, in.Balance.Ptr())
}

func TestOptionalNumber_FueraDeRangoEsSinAjuste(t *testing.T) {
	var in dto.TotalsOverrideRequest
	body := `{"sub_total": "1e999999", "grand_total": -1e20, "balance": "0.5"}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	assert.False(t, in.SubTotal.Valid)
	assert.False(t, in.GrandTotal.Valid)
	assert.True(t, in.Balance.Valid)
}

func TestOptionalNumber_Marshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A dto.OptionalNumber `json:"a"`
		B dto.OptionalNumber `json:"b"`
	}{A: dto.Some(decimal.RequireFromString("1.5"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"1.5","b":null}`, string(b))
}
