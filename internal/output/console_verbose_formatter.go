package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleVerboseFormatter renders the detailed year-by-year console report via
// the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	cur := report.Currency()
	proj := report.Projection

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED RETIREMENT DRAWDOWN PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report.Plan) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if report.Scenario != nil {
		sc := report.Scenario
		fmt.Fprintln(&buf, "WHAT-IF SCENARIO (effective values):")
		fmt.Fprintln(&buf, "------------------------------------")
		fmt.Fprintf(&buf, "  Retirement age:       %d\n", sc.RetirementAge)
		fmt.Fprintf(&buf, "  Life expectancy:      %d\n", sc.LifeExpectancy)
		fmt.Fprintf(&buf, "  Monthly expenses:     %s\n", FormatCurrency(sc.MonthlyExpenses, cur))
		fmt.Fprintf(&buf, "  Return rate:          %s\n", FormatPercentage(sc.ReturnRate))
		fmt.Fprintf(&buf, "  Inflation rate:       %s\n", FormatPercentage(sc.InflationRate))
		fmt.Fprintf(&buf, "  Monthly contribution: %s\n", FormatCurrency(sc.MonthlyContribution, cur))
		fmt.Fprintln(&buf)
	}

	if acc := proj.PreRetirementAccumulation; acc != nil {
		fmt.Fprintln(&buf, "PRE-RETIREMENT ACCUMULATION:")
		fmt.Fprintln(&buf, "----------------------------")
		fmt.Fprintf(&buf, "  Years to retirement:   %d\n", acc.YearsToRetirement)
		fmt.Fprintf(&buf, "  Monthly contribution:  %s\n", FormatCurrency(acc.MonthlyContribution, cur))
		fmt.Fprintf(&buf, "  Projected liquid:      %s\n", FormatCurrency(acc.ProjectedLiquid, cur))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "ASSETS AT RETIREMENT: liquid %s, non-spendable %s\n",
		FormatCurrency(proj.LiquidAssets, cur), FormatCurrency(proj.NonSpendableAtRetirement, cur))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-5s %-4s %15s %15s %15s %15s %15s\n",
		"Year", "Age", "Start", "Return", "Withdrawn", "End", "Wealth")
	fmt.Fprintln(&buf, strings.Repeat("-", 95))
	for _, y := range proj.YearlyProjections {
		marker := " "
		if y.PropertyLiquidated {
			marker = "*"
		}
		fmt.Fprintf(&buf, "%-5d %-4d %15s %15s %15s %15s %15s%s\n",
			y.Year, y.Age,
			FormatCurrency(y.StartingBalance, cur),
			FormatCurrency(y.InvestmentReturn, cur),
			FormatCurrency(y.Withdrawals, cur),
			FormatCurrency(y.EndingBalance, cur),
			FormatCurrency(y.TotalWealth, cur),
			marker)
	}
	fmt.Fprintln(&buf)

	ins := AnalyzeProjection(proj)
	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, "=======")
	if ins.LastsFullHorizon {
		fmt.Fprintf(&buf, "The liquid pool lasts the full planning horizon (%s years).\n", ins.RunwayYears.String())
	} else {
		fmt.Fprintf(&buf, "Runway: %s years (%s months), depleted at age %d.\n",
			ins.RunwayYears.String(), ins.RunwayMonths.String(), *ins.DepletionAge)
	}
	if ins.LiquidationAge != nil {
		fmt.Fprintf(&buf, "Property liquidated at age %d (marked * above).\n", *ins.LiquidationAge)
	}
	fmt.Fprintf(&buf, "Peak liquid balance: %s at age %d.\n", FormatCurrency(ins.PeakLiquid, cur), ins.PeakLiquidAge)
	fmt.Fprintf(&buf, "Final total wealth: %s.\n", FormatCurrency(ins.FinalTotalWealth, cur))

	return buf.Bytes(), nil
}
