package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spdawson/bank-statement-parser/internal/api"
	"github.com/spdawson/bank-statement-parser/internal/config"
	"github.com/spdawson/bank-statement-parser/internal/models"
	"github.com/spdawson/bank-statement-parser/internal/parser"
	"github.com/spdawson/bank-statement-parser/internal/source"
	"github.com/spdawson/bank-statement-parser/internal/writer"
)

const version = "1.0.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bank-statement-parser",
	Short: "Parse bank statement text into structured records",
	Long: `Parses the text of an HSBC bank statement (plain text, PDF, or a URL
serving either) into account metadata and transaction records.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <statement.txt|statement.pdf|url|->",
	Short: "Parse a statement and print it",
	Example: `  bank-statement-parser parse statement.txt
  bank-statement-parser parse --format csv --output march.csv statement.pdf
  pdftotext -layout statement.pdf - | bank-statement-parser parse -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		w, err := writer.New(cfg.Format, cfg.Header)
		if err != nil {
			return err
		}

		var src any = args[0]
		if args[0] == "-" {
			src = cmd.InOrStdin()
		}
		reader := source.New(source.WithTimeout(cfg.FetchTimeout), source.WithLogger(logger))
		text, err := reader.Read(cmd.Context(), src)
		if err != nil {
			return err
		}

		p, err := parser.New(models.BankType(cfg.Bank), parser.WithLogger(logger))
		if err != nil {
			return err
		}
		logger.Debug("parsing statement", "bank", p.BankName(), "source", args[0])

		stmt, err := p.Parse(text)
		if err != nil {
			logger.Error("parse failed", "kind", parser.Kind(err), "err", err)
			return err
		}
		logger.Info("parsed statement",
			"account", stmt.AccountNumber,
			"sort_code", stmt.SortCode,
			"date", stmt.StatementDate.Format("2006-01-02"),
			"records", len(stmt.Records),
		)

		if cfg.Output == "" {
			return w.Write(cmd.OutOrStdout(), stmt)
		}
		if err := writer.WriteToFile(w, cfg.Output, stmt); err != nil {
			return err
		}
		logger.Info("wrote output", "path", cfg.Output, "format", cfg.Format)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parser over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		app := api.NewApp(&api.Handler{
			Bank:   models.BankType(cfg.Bank),
			Logger: logger,
			Source: source.New(source.WithTimeout(cfg.FetchTimeout), source.WithLogger(logger)),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", cfg.Addr)
			errCh <- app.Listen(cfg.Addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			logger.Info("shutting down")
			return app.Shutdown()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bank-statement-parser v%s\n", version)
	},
}

func newLogger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bank-statement-parser",
		Level:           cfg.Level(),
	})
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is ./"+config.FileName+".yaml)")
	rootCmd.PersistentFlags().String("bank", "hsbc", "Bank layout of the statement")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Duration("fetch-timeout", 30*time.Second, "Timeout for fetching statements over HTTP")

	parseCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml, json, csv, pp")
	parseCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	parseCmd.Flags().Bool("header", true, "Include account metadata rows in CSV output")

	serveCmd.Flags().String("addr", ":8080", "Listen address")

	rootCmd.AddCommand(parseCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
