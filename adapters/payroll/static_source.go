package payroll

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/paypulse/showcase/core"
	"github.com/paypulse/showcase/ports"
)

// StaticSource serves a fixed payroll report
type StaticSource struct {
	report core.PayrollReport
}

// NewStaticSource creates a source returning report on every call
func NewStaticSource(report core.PayrollReport) ports.PayrollSource {
	return &StaticSource{report: report}
}

// NewDemoSource returns the sample employee shipped with the showcase server
func NewDemoSource() ports.PayrollSource {
	return NewStaticSource(DemoReport())
}

// DemoReport is the sample payroll for John Doe
func DemoReport() core.PayrollReport {
	return core.PayrollReport{
		Employee: "John Doe",
		Paystubs: []core.Paystub{
			{Date: "2023-11-30", NetPay: decimal.RequireFromString("2500.00"), Currency: "USD"},
			{Date: "2023-11-15", NetPay: decimal.RequireFromString("2500.00"), Currency: "USD"},
			{Date: "2023-10-31", NetPay: decimal.RequireFromString("2400.00"), Currency: "USD"},
		},
	}
}

// Report returns a copy of the configured report
func (s *StaticSource) Report(ctx context.Context) (*core.PayrollReport, error) {
	report := core.PayrollReport{
		Employee: s.report.Employee,
		Paystubs: append([]core.Paystub(nil), s.report.Paystubs...),
	}
	return &report, nil
}
