package output

import (
	"bytes"
	"html/template"

	"github.com/goccy/go-json"
)

// HTMLFormatter produces a self-contained HTML report with the projection
// table and embedded chart data.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>Projection Summary</h1>
<p>{{.Summary}}</p>
<h2>Key Assumptions</h2>
<ul>
{{range .Assumptions}}<li>{{.}}</li>
{{end}}</ul>
<h2>Year by Year</h2>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Year</th><th>Age</th><th>Start</th><th>Return</th><th>Withdrawn</th><th>End</th><th>Wealth</th></tr>
{{range .Rows}}<tr><td>{{.Year}}</td><td>{{.Age}}</td><td>{{.Start}}</td><td>{{.Return}}</td><td>{{.Withdrawn}}</td><td>{{.End}}</td><td>{{.Wealth}}</td></tr>
{{end}}</table>
<script>window.chartData = {{json .Chart}};</script>
</body>
</html>
`))

type htmlRow struct {
	Year, Age                             int
	Start, Return, Withdrawn, End, Wealth string
}

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	cur := report.Currency()
	proj := report.Projection

	rows := make([]htmlRow, 0, len(proj.YearlyProjections))
	for _, y := range proj.YearlyProjections {
		rows = append(rows, htmlRow{
			Year:      y.Year,
			Age:       y.Age,
			Start:     FormatCurrency(y.StartingBalance, cur),
			Return:    FormatCurrency(y.InvestmentReturn, cur),
			Withdrawn: FormatCurrency(y.Withdrawals, cur),
			End:       FormatCurrency(y.EndingBalance, cur),
			Wealth:    FormatCurrency(y.TotalWealth, cur),
		})
	}

	ins := AnalyzeProjection(proj)
	summary := "The liquid pool lasts the full planning horizon."
	if !ins.LastsFullHorizon {
		summary = "Liquid assets run out at age " + intToString(*ins.DepletionAge) + "."
	}

	data := struct {
		Title       string
		Summary     string
		Assumptions []string
		Rows        []htmlRow
		Chart       ChartData
	}{
		Title:       report.Plan.Name,
		Summary:     summary,
		Assumptions: GenerateAssumptions(report.Plan),
		Rows:        rows,
		Chart:       BuildChartData(proj, report.LifeEvents, cur),
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
