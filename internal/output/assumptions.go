package output

import (
	"fmt"

	"github.com/longview/planengine/internal/domain"
)

// GenerateAssumptions creates the assumptions list rendered in detailed
// outputs from the plan's actual values.
func GenerateAssumptions(plan *domain.Plan) []string {
	return []string{
		fmt.Sprintf("Inflation: %s annually, compounding expenses year over year", FormatPercentage(plan.InflationRate)),
		fmt.Sprintf("Cash return: %s annually", FormatPercentage(plan.CashReturnRate)),
		fmt.Sprintf("Equity return: %s annually", FormatPercentage(plan.EquityReturnRate)),
		fmt.Sprintf("Housing appreciation: %s annually", FormatPercentage(plan.HousingReturnRate)),
		"Property counts toward wealth but is not spendable until the liquidation rule fires",
		"Recurring income and withdrawals settle once per projected year",
	}
}
