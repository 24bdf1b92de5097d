package output

import (
	"bytes"
	"fmt"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	cur := report.Currency()
	proj := report.Projection

	fmt.Fprintln(&buf, "RETIREMENT PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Plan: %s\n", report.Plan.Name)
	fmt.Fprintf(&buf, "Liquid at retirement:       %s\n", FormatCurrency(proj.LiquidAssets, cur))
	fmt.Fprintf(&buf, "Non-spendable at retirement: %s\n", FormatCurrency(proj.NonSpendableAtRetirement, cur))

	ins := AnalyzeProjection(proj)
	if ins.LastsFullHorizon {
		fmt.Fprintf(&buf, "Runway: full horizon (%s years)\n", ins.RunwayYears.String())
	} else {
		fmt.Fprintf(&buf, "Runway: %s years (%s months), depleted at age %d\n",
			ins.RunwayYears.String(), ins.RunwayMonths.String(), *ins.DepletionAge)
	}
	if ins.LiquidationAge != nil {
		fmt.Fprintf(&buf, "Property liquidated at age %d\n", *ins.LiquidationAge)
	}
	fmt.Fprintf(&buf, "Final total wealth: %s\n", FormatCurrency(ins.FinalTotalWealth, cur))
	return buf.Bytes(), nil
}
