package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/estimator/internal/ratecard"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the default rate card unless one already exists. It is safe to
// run on every startup.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	if err := ensureRateCard(ctx, tx, ratecard.Default(), &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureRateCard(ctx context.Context, tx *sql.Tx, c ratecard.Card, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rate_card WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check rate card existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO rate_card (
			id,
			tagger_rate,
			editor_rate,
			scoreplay_infra_rate,
			playground_infra_rate,
			platform_fee_rate,
			hourly_rate,
			working_hours_per_month,
			shared_infra_monthly,
			dedicated_infra_monthly,
			currency
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.TaggerRate,
		c.EditorRate,
		c.ScoreplayInfraRate,
		c.PlaygroundInfraRate,
		c.PlatformFeeRate,
		c.HourlyRate,
		c.WorkingHoursPerMonth,
		c.SharedInfraMonthly,
		c.DedicatedInfraMonthly,
		c.Currency,
	); err != nil {
		return fmt.Errorf("insert rate card singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
