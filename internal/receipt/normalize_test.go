package receipt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, body string) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env
}

func TestNormalize_FullReceipt(t *testing.T) {
	env := decodeEnvelope(t, `{
		"document": {
			"receipt": {
				"nds10": 1364,
				"nds18": 2745,
				"operator": "Иванова",
				"totalSum": 33000,
				"dateTime": "2018-05-17T17:57:00",
				"items": [
					{"name": "123 Bread", "price": 150, "quantity": 2, "sum": 300},
					{"name": "Milk", "price": 200, "quantity": 1, "sum": 200},
					{"name": "123 Bread", "price": 150, "quantity": 1, "sum": 150}
				]
			}
		}
	}`)

	summary, ok := Normalize(env)
	require.True(t, ok)

	assert.Equal(t, "41.09", summary.VAT)
	require.NotNil(t, summary.Operator)
	assert.Equal(t, "Иванова", *summary.Operator)
	assert.Equal(t, "330", summary.Total)
	assert.Equal(t, "2018-05-17T17:57:00", summary.DateTime)
	assert.False(t, summary.ItemsMissing)
	assert.Equal(t, []AggregatedItem{
		{Code: "123", Name: "Bread", Price: "1.50", Quantity: 3, Sum: "4.50"},
		{Name: "Milk", Price: "2", Quantity: 1, Sum: "2"},
	}, summary.Items)
}

func TestNormalize_Defaults(t *testing.T) {
	env := decodeEnvelope(t, `{"document": {"receipt": {"operator": null, "dateTime": 1526569020}}}`)

	summary, ok := Normalize(env)
	require.True(t, ok)

	assert.Equal(t, "0", summary.VAT)
	assert.Nil(t, summary.Operator)
	assert.Equal(t, "0", summary.Total)
	assert.Equal(t, float64(1526569020), summary.DateTime)
	assert.True(t, summary.ItemsMissing)
	assert.Nil(t, summary.Items)
}

func TestNormalize_OnlyOneVATRate(t *testing.T) {
	env := decodeEnvelope(t, `{"document": {"receipt": {"nds18": 4576, "items": []}}}`)

	summary, ok := Normalize(env)
	require.True(t, ok)
	assert.Equal(t, "45.76", summary.VAT)
	assert.True(t, summary.ItemsMissing)
}

func TestNormalize_MissingReceipt(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "null document", body: `{"document": null}`},
		{name: "no receipt", body: `{"document": {}}`},
		{name: "null receipt", body: `{"document": {"receipt": null}}`},
		{name: "empty receipt", body: `{"document": {"receipt": {}}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Normalize(decodeEnvelope(t, tc.body))
			assert.False(t, ok)
		})
	}
}

func TestReceipt_UnmarshalRejectsWrongShape(t *testing.T) {
	var env Envelope
	err := json.Unmarshal([]byte(`{"document": {"receipt": "oops"}}`), &env)

	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)
}
