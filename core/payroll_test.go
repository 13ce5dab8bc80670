package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystub_MarshalJSON(t *testing.T) {
	stub := Paystub{
		Date:     "2023-11-30",
		NetPay:   decimal.NewFromInt(2500),
		Currency: "USD",
	}

	data, err := json.Marshal(stub)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2023-11-30","net_pay":2500.00,"currency":"USD"}`, string(data))
	assert.Contains(t, string(data), `"net_pay":2500.00`)

	var decoded Paystub
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, stub.NetPay.Equal(decoded.NetPay))
	assert.Equal(t, stub.Date, decoded.Date)
}
