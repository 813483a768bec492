package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/mapleplan/mapleplan/internal/calculation"
	"github.com/mapleplan/mapleplan/internal/config"
	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/mapleplan/mapleplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "mapleplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "mapleplan",
	Short: "Canadian financial planning CLI",
	Long:  "Deterministic monthly planning engine for TFSA, RRSP, FHSA and debt payoff",
}

var planCmd = &cobra.Command{
	Use:   "plan [intake-file]",
	Short: "Generate a financial plan from an intake file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		intakeFile := args[0]

		parser := config.NewIntakeParser()
		intake, err := parser.LoadFromFile(intakeFile)
		if err != nil {
			log.Fatal(err)
		}

		engine := calculation.NewEngine()
		strategy, _ := cmd.Flags().GetString("strategy")
		if strategy != "" {
			engine.Strategy = strategy
		}
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}

		_, metrics, plan := engine.GeneratePlanFromIntake(intake)

		outputFormat, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		w := os.Stdout
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
			w = f
		}

		if err := output.GenerateReport(w, plan, metrics, outputFormat); err != nil {
			log.Fatal(err)
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [intake-file]",
	Short: "Compare avalanche and snowball debt payoff strategies",
	Long: `Run the debt payoff simulator under both orderings and report
the interest and months the avalanche ordering saves.

Examples:
  ./mapleplan compare intake.yaml
  ./mapleplan compare intake.yaml --debug
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		intakeFile := args[0]

		parser := config.NewIntakeParser()
		intake, err := parser.LoadFromFile(intakeFile)
		if err != nil {
			log.Fatal(err)
		}

		engine := calculation.NewEngine()
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}

		profile := calculation.NormalizeProfile(intake)
		if !profile.HasDebt() {
			fmt.Println("No debts in intake file; nothing to compare.")
			return
		}
		metrics := engine.ComputeMetrics(profile)
		capacity := metrics.DebtMonthlyPaymentCapacity
		if extra, _ := cmd.Flags().GetFloat64("extra-payment"); extra > 0 {
			capacity = decimal.NewFromFloat(extra)
		}
		comparison := calculation.CompareStrategies(profile.Debts, capacity)

		fmt.Println("DEBT PAYOFF STRATEGY COMPARISON")
		fmt.Println("========================================")
		fmt.Printf("Monthly payment capacity: %s\n\n", output.FormatCurrency(capacity))

		printProjection := func(p domain.DebtProjection) {
			fmt.Printf("STRATEGY: %s\n", p.Strategy)
			fmt.Println(strings.Repeat("-", 50))
			fmt.Printf("Months to debt-free: %d\n", p.Months)
			fmt.Printf("Total interest paid: %s\n", output.FormatCurrency(p.TotalInterest))
			fmt.Printf("Payoff order: %s\n\n", strings.Join(p.Order, ", "))
		}
		printProjection(comparison.Avalanche)
		printProjection(comparison.Snowball)

		if comparison.InterestSaved.IsPositive() || comparison.MonthsSaved > 0 {
			fmt.Printf("Avalanche saves %s in interest", output.FormatCurrency(comparison.InterestSaved))
			if comparison.MonthsSaved > 0 {
				fmt.Printf(" and %d months", comparison.MonthsSaved)
			}
			fmt.Println(" over snowball.")
		} else {
			fmt.Println("Both strategies cost the same for this debt mix.")
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [intake-file]",
	Short: "Validate an intake file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		intakeFile := args[0]

		parser := config.NewIntakeParser()
		_, err := parser.LoadFromFile(intakeFile)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Intake file %s is valid\n", intakeFile)
	},
}

func init() {
	planCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	planCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	planCmd.Flags().String("strategy", "", "Debt payoff strategy (avalanche, snowball)")
	planCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	compareCmd.Flags().Float64("extra-payment", 0, "Override the monthly payment capacity used for the comparison")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
