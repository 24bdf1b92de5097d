// Command print_drawdown dumps a raw drawdown table for quick inspection of
// the simulator against hand calculations. Not part of the supported CLI.
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/calculation"
	"github.com/longview/planengine/internal/domain"
)

func main() {
	res := calculation.SimulateDrawdown(calculation.DrawdownInput{
		InitialLiquid:       decimal.NewFromInt(10000),
		InitialNonSpendable: decimal.NewFromInt(200000),
		RetirementAge:       65,
		LifeExpectancy:      75,
		AnnualExpenses:      decimal.NewFromInt(9800),
		Income:              domain.MonthlyIncome{Other: decimal.NewFromInt(50)},
	})

	fmt.Fprintf(os.Stdout, "%-4s %12s %12s %12s %12s %12s %s\n",
		"age", "start", "return", "withdrawn", "end", "nonspend", "liq")
	for _, y := range res.Years {
		fmt.Fprintf(os.Stdout, "%-4d %12s %12s %12s %12s %12s %v\n",
			y.Age,
			y.StartingBalance.StringFixed(2),
			y.InvestmentReturn.StringFixed(2),
			y.Withdrawals.StringFixed(2),
			y.EndingBalance.StringFixed(2),
			y.NonSpendableValue.StringFixed(2),
			y.PropertyLiquidated)
	}
	if res.DepletionAge != nil {
		fmt.Fprintf(os.Stdout, "depleted at age %d, runway %s years\n", *res.DepletionAge, res.RunwayYears)
	}
}
