package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longview/planengine/internal/calculation"
	"github.com/longview/planengine/internal/config"
	"github.com/longview/planengine/internal/output"
)

var (
	inputFile    string
	formatName   string
	verbose      bool
	debugLogging bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planengine",
		Short: "Retirement drawdown and what-if projection engine",
		Long: "planengine projects retirement drawdowns from a plan and its holdings:\n" +
			"year-by-year balances, runway, property liquidation, and what-if scenarios.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "input configuration file (YAML)")
	cmd.PersistentFlags().StringVarP(&formatName, "format", "f", "console", "output format")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	cmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "include debug logging (implies --verbose)")

	cmd.AddCommand(projectCmd())
	cmd.AddCommand(whatifCmd())
	cmd.AddCommand(exampleConfigCmd())
	cmd.AddCommand(formatsCmd())
	return cmd
}

func newLogger() calculation.Logger {
	if verbose || debugLogging {
		return calculation.WriterLogger{W: os.Stderr, Debug: debugLogging}
	}
	return calculation.NopLogger{}
}

func loadConfiguration() (*config.Configuration, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("an input file is required (use --input)")
	}
	return config.NewInputParser().LoadFromFile(inputFile)
}

func emit(report *output.Report) error {
	f := output.GetFormatterByName(formatName)
	if f == nil {
		return output.GenerateReport(report, formatName) // yields the descriptive error
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func projectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Compute the base retirement projection for a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration()
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			engine.SetLogger(newLogger())
			proj := engine.BuildProjection(&cfg.Plan, cfg.Holdings, cfg.LifeEvents)

			return emit(&output.Report{Plan: &cfg.Plan, Projection: proj, LifeEvents: cfg.LifeEvents})
		},
	}
}

func whatifCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Apply the configured what-if scenario to the base projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration()
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			engine.SetLogger(newLogger())
			base := engine.BuildProjection(&cfg.Plan, cfg.Holdings, nil)

			blended := calculation.HoldingsBlendedReturnRate(&cfg.Plan, cfg.Holdings)
			adj := cfg.EffectiveAdjustments()
			ov := cfg.EffectiveOverrides()

			proj := calculation.ApplyWhatIf(base, &cfg.Plan, adj, ov, cfg.LifeEvents, blended)
			resolved := calculation.ResolveScenario(&cfg.Plan, adj, ov, blended)

			return emit(&output.Report{Plan: &cfg.Plan, Projection: proj, LifeEvents: cfg.LifeEvents, Scenario: &resolved})
		},
	}
	return cmd
}

func exampleConfigCmd() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Write an example input configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, outFile); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "planengine_example.yaml", "destination file")
	return cmd
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List available output formats",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Formats:")
			for _, n := range output.AvailableFormatterNames() {
				fmt.Printf("  %s\n", n)
			}
			fmt.Println("Aliases:")
			for _, a := range output.AvailableFormatAliases() {
				fmt.Printf("  %s\n", a)
			}
		},
	}
}
