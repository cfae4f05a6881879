package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iho/payengine/internal/adapter/csvio"
	"github.com/iho/payengine/internal/infrastructure/config"
	"github.com/iho/payengine/internal/infrastructure/logger"
	"github.com/iho/payengine/internal/infrastructure/metrics"
	"github.com/iho/payengine/internal/usecase"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "payengine <transactions.csv>",
		Short: "Fold a transaction stream into per-client account snapshots",
		Long: `payengine reads an ordered CSV stream of deposit, withdrawal, dispute,
resolve and chargeback records and prints the final state of every client
account (available, held, total, locked) as CSV on stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], cmd.OutOrStdout())
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	engine := usecase.NewEngine(log, metrics.New())
	if err := engine.Run(csvio.NewReader(file)); err != nil {
		return err
	}

	return csvio.NewWriter(out).Write(engine.Snapshots())
}
