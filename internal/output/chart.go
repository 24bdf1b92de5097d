package output

import (
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/longview/planengine/internal/domain"
)

// ChartPoint is one plotted value, keyed by age.
type ChartPoint struct {
	Age   int             `json:"age"`
	Value decimal.Decimal `json:"value"`
}

// ChartSeries is a named line of points.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartMarker flags a notable age on the chart.
type ChartMarker struct {
	Age   int    `json:"age"`
	Label string `json:"label"`
}

// ChartData is the plot-ready shape consumed by front ends: the liquid
// balance and total wealth series plus event markers.
type ChartData struct {
	Currency string        `json:"currency"`
	Series   []ChartSeries `json:"series"`
	Markers  []ChartMarker `json:"markers,omitempty"`
}

// BuildChartData converts a projection and its life events into plot-ready
// series.
func BuildChartData(proj *domain.RetirementProjection, events []domain.LifeEvent, currency string) ChartData {
	liquid := ChartSeries{Name: "Liquid Assets", Points: make([]ChartPoint, 0, len(proj.YearlyProjections))}
	wealth := ChartSeries{Name: "Total Wealth", Points: make([]ChartPoint, 0, len(proj.YearlyProjections))}
	var markers []ChartMarker

	for _, y := range proj.YearlyProjections {
		liquid.Points = append(liquid.Points, ChartPoint{Age: y.Age, Value: y.EndingBalance})
		wealth.Points = append(wealth.Points, ChartPoint{Age: y.Age, Value: y.TotalWealth})
		if y.PropertyLiquidated {
			markers = append(markers, ChartMarker{Age: y.Age, Label: "Property liquidated"})
		}
	}
	for _, e := range events {
		label := e.Description
		if label == "" {
			label = "Life event"
		}
		markers = append(markers, ChartMarker{Age: e.Age, Label: label})
	}
	if proj.DepletionAge != nil {
		markers = append(markers, ChartMarker{Age: *proj.DepletionAge, Label: "Liquid assets depleted"})
	}

	return ChartData{
		Currency: currency,
		Series:   []ChartSeries{liquid, wealth},
		Markers:  markers,
	}
}

// ChartFormatter emits the chart series as JSON for front-end plotting.
type ChartFormatter struct{}

func (c ChartFormatter) Name() string { return "chart" }

func (c ChartFormatter) Format(report *Report) ([]byte, error) {
	data := BuildChartData(report.Projection, report.LifeEvents, report.Currency())
	return json.MarshalIndent(data, "", "  ")
}
