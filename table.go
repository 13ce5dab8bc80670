package paypulse

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/paypulse/showcase/core"
)

// WritePaystubs renders paystubs as a text table
func WritePaystubs(w io.Writer, stubs []core.Paystub) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Net Pay", "Currency"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, stub := range stubs {
		table.Append([]string{stub.Date, stub.NetPay.StringFixed(2), stub.Currency})
	}

	table.Render()
}
