package output

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/longview/planengine/internal/calculation"
	"github.com/longview/planengine/internal/config"
	"github.com/longview/planengine/internal/domain"
)

// ErrUnsupportedFormat signals an unknown report format name.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Report bundles everything a formatter needs: the plan, the projection, the
// life events that fed it, and the resolved scenario scalars when a what-if
// run produced the projection.
type Report struct {
	Plan       *domain.Plan                  `json:"plan"`
	Projection *domain.RetirementProjection  `json:"projection"`
	LifeEvents []domain.LifeEvent            `json:"life_events,omitempty"`
	Scenario   *calculation.ResolvedScenario `json:"scenario,omitempty"`
}

// Currency returns the plan currency, defaulting to EUR.
func (r *Report) Currency() string {
	if r.Plan != nil && r.Plan.Currency != "" {
		return r.Plan.Currency
	}
	return "EUR"
}

// WriteFormatted runs a formatter and writes output to a timestamped file with
// the given extension, returning the filename.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("projection_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateReport resolves the format name and writes the report file.
func GenerateReport(report *Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	ext := extensionFor(f.Name())
	_, err := WriteFormatted(f, report, ext)
	return err
}

func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case name == "json", name == "chart":
		return "json"
	case name == "html":
		return "html"
	default:
		return "txt"
	}
}

// SaveConfiguration writes a configuration back to disk as YAML.
func SaveConfiguration(cfg *config.Configuration, filename string) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
