package output

import (
	"bytes"
	"encoding/csv"
)

// CSVDetailedExporter provides the raw annual drawdown detail, one row per
// projected year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "StartingBalance", "InvestmentReturn", "Withdrawals", "EndingBalance", "InflationAdjustedExpenses", "NonSpendableValue", "TotalWealth", "PropertyLiquidated"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, yr := range report.Projection.YearlyProjections {
		row := []string{
			intToString(yr.Year),
			intToString(yr.Age),
			yr.StartingBalance.StringFixed(2),
			yr.InvestmentReturn.StringFixed(2),
			yr.Withdrawals.StringFixed(2),
			yr.EndingBalance.StringFixed(2),
			yr.InflationAdjustedExpenses.StringFixed(2),
			yr.NonSpendableValue.StringFixed(2),
			yr.TotalWealth.StringFixed(2),
			boolToString(yr.PropertyLiquidated),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}
