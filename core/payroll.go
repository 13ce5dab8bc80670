package core

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Paystub is a single pay period entry
type Paystub struct {
	Date     string          `json:"date"`
	NetPay   decimal.Decimal `json:"net_pay"`
	Currency string          `json:"currency"`
}

// MarshalJSON writes net_pay as a plain JSON number with two decimals
func (p Paystub) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date     string      `json:"date"`
		NetPay   json.Number `json:"net_pay"`
		Currency string      `json:"currency"`
	}{
		Date:     p.Date,
		NetPay:   json.Number(p.NetPay.StringFixed(2)),
		Currency: p.Currency,
	})
}

// PayrollReport is the protected payload released to authorized callers
type PayrollReport struct {
	Employee string    `json:"employee"`
	Paystubs []Paystub `json:"paystubs"`
}
