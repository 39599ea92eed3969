package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yurifrl/pixu/pkg/config"
	"github.com/yurifrl/pixu/pkg/csv"
	"github.com/yurifrl/pixu/pkg/models"
	"github.com/yurifrl/pixu/pkg/parser"
	"github.com/yurifrl/pixu/pkg/plan"
	"github.com/yurifrl/pixu/pkg/render"
	"github.com/yurifrl/pixu/pkg/service"
	"github.com/yurifrl/pixu/pkg/source"
)

var (
	cliFilters filters
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:           "pixu",
	Short:         "Extract Pix transfers from pasted bank notification text",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract transfers from files, or from stdin when none are given",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		processor, err := service.NewProcessor(cfg, logger)
		if err != nil {
			return err
		}
		filter, err := cliFilters.toFilterFunc()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = []string{source.Stdin}
		}
		out, closeOut, err := openOutput(cmd, cfg)
		if err != nil {
			return err
		}
		if err := extractAll(out, processor, logger, filter, cfg, args); err != nil {
			closeOut()
			return err
		}
		return closeOut()
	},
}

// extractAll renders each input in turn. With more than one input the text
// formats end with a combined count and total.
func extractAll(out io.Writer, processor *service.Processor, logger *log.Logger, filter csv.FilterFunc[*models.Transfer], cfg *config.Config, args []string) error {
	failed := 0
	var all []*models.Transfer
	for _, path := range args {
		res, err := processor.ExtractFile(path)
		if err != nil {
			logger.Warn("failed to process file", "error", err, "file", path)
			failed++
			continue
		}
		rep := render.FromResult(res, filter)
		all = append(all, rep.Transfers...)
		if err := processor.Renderer().Render(out, rep); err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
	}
	if failed == len(args) {
		return fmt.Errorf("no input could be read")
	}

	switch processor.Renderer().Format() {
	case render.FormatText, render.FormatPretty:
		if len(args) > 1 {
			labels := render.LabelsFor(cfg.Locale)
			sum := parser.Summarize(all)
			fmt.Fprintf(out, "\n%s: %d | %s: %s\n", labels.Count, sum.TotalCount, labels.Total, sum.TotalDisplay)
		}
	}
	return nil
}

var dirCmd = &cobra.Command{
	Use:   "dir <directory>",
	Short: "Write a <name>-pixu rendering for every .txt and .xls file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		processor, err := service.NewProcessor(cfg, logger)
		if err != nil {
			return err
		}
		return processor.ProcessDirectory(args[0])
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Extract every source listed in a YAML plan and print totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		planPath := args[0]
		p, err := plan.Load(planPath)
		if err != nil {
			return err
		}
		if p.Locale != "" && !cmd.Flags().Changed("locale") {
			cfg.Locale = p.Locale
		}
		if p.Format != "" && !cmd.Flags().Changed("format") {
			cfg.Format = p.Format
		}

		processor, err := service.NewProcessor(cfg, logger)
		if err != nil {
			return err
		}

		stdout := cmd.OutOrStdout()
		fmt.Fprintf(stdout, "Plan preview for %s\n", planPath)
		p.Print(stdout)
		fmt.Fprintln(stdout)

		report := processor.RunPlan(p)
		report.Print(stdout, render.LabelsFor(cfg.Locale))

		if showAll, _ := cmd.Flags().GetBool("details"); showAll {
			all := render.Report{Transfers: report.Transfers(), Summary: report.Summary}
			fmt.Fprintln(stdout)
			if err := processor.Renderer().Render(stdout, all); err != nil {
				return err
			}
		}
		if report.Failed() == len(report.Sources) {
			return fmt.Errorf("no plan source could be read")
		}
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [files...]",
	Short: "Dump the full extraction result: blocks, spans and diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		processor, err := service.NewProcessor(cfg, logger)
		if err != nil {
			return err
		}

		printer := pp.New()
		printer.SetOutput(cmd.OutOrStdout())
		printer.SetColoringEnabled(isTerminal(cmd.OutOrStdout()))

		if len(args) == 0 {
			args = []string{source.Stdin}
		}
		for _, path := range args {
			res, err := processor.ExtractFile(path)
			if err != nil {
				return err
			}
			printer.Println(res)
		}
		return nil
	},
}

// setup builds the configuration and the logger every command shares.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    level == log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "pixu",
		Level:           level,
	})
	logger.Debug("configuration loaded", "format", cfg.Format, "locale", cfg.Locale, "workers", cfg.Workers, "banks", cfg.Banks)
	return cfg, logger, nil
}

// openOutput returns the file named by --output, or stdout. The returned
// func closes the file and must be checked.
func openOutput(cmd *cobra.Command, cfg *config.Config) (io.Writer, func() error, error) {
	if cfg.OutputPath == "" || cfg.OutputPath == source.Stdin {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating output file: %w", err)
	}
	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("error closing output file: %w", err)
		}
		return nil
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Config file (default is ./pixu.yaml or $XDG_CONFIG_HOME/pixu/pixu.yaml)")
	flags.StringP("output", "o", "", "Output file for extract, output directory for dir")
	flags.StringP("format", "f", "text", "Output format: text, pretty, csv, json, yaml")
	flags.StringP("locale", "l", "en", "Label language for text output: en, pt")
	flags.Int("workers", 0, "Blocks scanned concurrently (0 = one per CPU)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.StringSlice("bank-alias", nil, "Extra bank names to recognize")

	extractCmd.Flags().StringVar(&cliFilters.bank, "bank", "", "Keep only this bank (case insensitive)")
	extractCmd.Flags().StringVar(&cliFilters.payee, "payee", "", "Filter by payee (case insensitive)")
	extractCmd.Flags().StringVar(&cliFilters.minAmount, "min", "", "Minimum amount")
	extractCmd.Flags().StringVar(&cliFilters.maxAmount, "max", "", "Maximum amount")

	planCmd.Flags().Bool("details", false, "Also render every transfer")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(dirCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
