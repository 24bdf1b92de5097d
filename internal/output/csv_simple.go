package output

import (
	"bytes"
	"encoding/csv"
)

// CSVSummarizer implements the simple summary CSV output (one row per projection).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "Currency", "LiquidAtRetirement", "NonSpendableAtRetirement", "RunwayYears", "RunwayMonths", "DepletionAge", "LiquidationAge", "FinalTotalWealth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	proj := report.Projection
	ins := AnalyzeProjection(proj)
	depletion := ""
	if ins.DepletionAge != nil {
		depletion = intToString(*ins.DepletionAge)
	}
	liquidation := ""
	if ins.LiquidationAge != nil {
		liquidation = intToString(*ins.LiquidationAge)
	}
	row := []string{
		report.Plan.Name,
		report.Currency(),
		proj.LiquidAssets.StringFixed(2),
		proj.NonSpendableAtRetirement.StringFixed(2),
		ins.RunwayYears.StringFixed(0),
		ins.RunwayMonths.StringFixed(0),
		depletion,
		liquidation,
		ins.FinalTotalWealth.StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), nil
}
