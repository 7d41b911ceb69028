package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountLabelsAndRates(t *testing.T) {
	assert.Equal(t, "None", DiscountNone.String())
	assert.Equal(t, "Senior Citizen (20%)", DiscountSeniorCitizen.String())
	assert.Equal(t, "PWD (20%)", DiscountPWD.String())

	assert.True(t, DiscountNone.Rate().IsZero())
	assert.Equal(t, "0.2", DiscountPWD.Rate().String())
	assert.Empty(t, DiscountNone.TypeName())
}

func TestParseDiscount(t *testing.T) {
	for _, in := range []string{"Senior Citizen (20%)", "Senior Citizen", "senior"} {
		d, err := ParseDiscount(in)
		require.NoError(t, err, in)
		assert.Equal(t, DiscountSeniorCitizen, d)
	}

	_, err := ParseDiscount("Employee (50%)")
	assert.Error(t, err)
}

func TestDiscountJSONRoundTripsLabel(t *testing.T) {
	data, err := json.Marshal(DiscountPWD)
	require.NoError(t, err)
	assert.JSONEq(t, `"PWD (20%)"`, string(data))

	var d Discount
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, DiscountPWD, d)
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("gcash")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodGCash, m)

	m, err = ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodCash, m)

	_, err = ParsePaymentMethod("card")
	assert.Error(t, err)
}
