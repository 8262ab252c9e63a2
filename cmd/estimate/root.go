package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/estimator/internal/db"
	"github.com/Simplici0/estimator/internal/export"
	"github.com/Simplici0/estimator/internal/logging"
	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/ratecard"
)

type rootOptions struct {
	dbPath   string
	xlsxPath string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "estimate",
		Short:        "Estimate Video Tech and Web & Mobile projects",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dbPath, "db", "", "sqlite database holding the rate card (defaults to built-in rates)")
	flags.StringVar(&opts.xlsxPath, "xlsx", "", "also write the estimate to this XLSX file")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newVideoCmd(opts),
		newWebCmd(opts),
		newFeaturesCmd(),
	)
	return cmd
}

func (o *rootOptions) logger() *zap.Logger {
	logger, err := logging.New(o.logLevel, false)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// loadRates returns the stored rate card, or the defaults when no database is
// given or the card has not been seeded.
func (o *rootOptions) loadRates(ctx context.Context, logger *zap.Logger) (ratecard.Card, error) {
	if o.dbPath == "" {
		return ratecard.Default(), nil
	}

	database, err := db.Open(ctx, o.dbPath)
	if err != nil {
		return ratecard.Card{}, err
	}
	defer database.Close()

	card, err := ratecard.NewStore(database).Get(ctx)
	if errors.Is(err, ratecard.ErrNotFound) {
		logger.Warn("rate card not seeded, using defaults", zap.String("db", o.dbPath))
		return ratecard.Default(), nil
	}
	if err != nil {
		return ratecard.Card{}, err
	}
	return card, nil
}

func (o *rootOptions) writeWorkbook(vt *export.VideoTechEstimate, wm *export.WebMobileEstimate) error {
	if o.xlsxPath == "" {
		return nil
	}
	data, err := export.Workbook(vt, wm)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.xlsxPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.xlsxPath, err)
	}
	return nil
}

// numberFlag is a string flag read with the form coercion rules: empty or
// non-numeric input counts as 0.
type numberFlag struct {
	raw string
}

func (f *numberFlag) String() string { return f.raw }
func (f *numberFlag) Set(s string) error {
	f.raw = s
	return nil
}
func (f *numberFlag) Type() string { return "number" }

func (f *numberFlag) Float() float64 { return pricing.ParseNumber(f.raw) }
func (f *numberFlag) Count() int     { return pricing.ParseCount(f.raw) }

func newNumberFlag(cmd *cobra.Command, name, def, usage string) *numberFlag {
	f := &numberFlag{raw: def}
	cmd.Flags().Var(f, name, usage)
	return f
}
