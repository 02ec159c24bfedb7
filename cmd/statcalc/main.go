// Command statcalc evaluates descriptive, probability and inferential
// statistics from the command line.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"statref/internal"
	"statref/internal/config"
	"statref/internal/errors"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
	logger := internal.NewLogger(cfg.LogLevel)

	code := run(newApp(cfg, logger), os.Args[1:], os.Stdout, os.Stderr)
	logger.Sync()
	os.Exit(code)
}

// run executes one command line and returns the process exit code
func run(a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		appErr := errors.FromStatError(err)
		a.logger.Debug("command failed: %v", err)
		fmt.Fprintf(stderr, "error [%s]: %v\n", appErr.Code, err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "statcalc",
		Short:         "Statistics formulas, distributions and hypothesis tests",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.format {
			case config.OutputText, config.OutputJSON, config.OutputYAML:
			default:
				return errors.InvalidInputf("--output %q must be text, json or yaml", a.format)
			}
			if a.precision < 0 || a.precision > 15 {
				return errors.InvalidInputf("--precision %d must be in [0, 15]", a.precision)
			}
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.WithCode(errors.CodeInvalidInput, err)
	})

	rootCmd.PersistentFlags().StringVarP(&a.format, "output", "o", a.format, "Output format: text|json|yaml")
	rootCmd.PersistentFlags().IntVar(&a.precision, "precision", a.precision, "Decimal places in text output")

	rootCmd.AddCommand(
		newDescribeCmd(a),
		newProbCmd(a),
		newCountCmd(a),
		newDistCmd(a),
		newCICmd(a),
		newTestCmd(a),
		newANOVACmd(a),
		newRegressCmd(a),
		newChebyshevCmd(a),
	)
	return rootCmd
}
