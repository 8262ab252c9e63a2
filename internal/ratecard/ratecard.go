// Package ratecard stores the shared pricing constants both estimators read.
// Only the rates are stored; estimates are always recomputed.
package ratecard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/Simplici0/estimator/internal/pricing/videotech"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
)

// Currency is the only currency estimates are rendered in.
const Currency = "USD"

var (
	ErrNotFound    = errors.New("rate card not found")
	ErrInvalidRate = errors.New("invalid rate")
)

// Card is the singleton rate card row.
type Card struct {
	TaggerRate            float64 `json:"taggerRate"`
	EditorRate            float64 `json:"editorRate"`
	ScoreplayInfraRate    float64 `json:"scoreplayInfraRate"`
	PlaygroundInfraRate   float64 `json:"playgroundInfraRate"`
	PlatformFeeRate       float64 `json:"platformFeeRate"`
	HourlyRate            float64 `json:"hourlyRate"`
	WorkingHoursPerMonth  float64 `json:"workingHoursPerMonth"`
	SharedInfraMonthly    float64 `json:"sharedInfraMonthly"`
	DedicatedInfraMonthly float64 `json:"dedicatedInfraMonthly"`
	Currency              string  `json:"currency"`
}

// Default returns the card built from both engines' default rates.
func Default() Card {
	vt := videotech.DefaultRates()
	wm := webmobile.DefaultRates()
	return Card{
		TaggerRate:            vt.TaggerRate,
		EditorRate:            vt.EditorRate,
		ScoreplayInfraRate:    vt.ScoreplayInfraRate,
		PlaygroundInfraRate:   vt.PlaygroundInfraRate,
		PlatformFeeRate:       vt.PlatformFeeRate,
		HourlyRate:            wm.HourlyRate,
		WorkingHoursPerMonth:  wm.WorkingHoursPerMonth,
		SharedInfraMonthly:    wm.SharedInfraMonthly,
		DedicatedInfraMonthly: wm.DedicatedInfraMonthly,
		Currency:              Currency,
	}
}

// VideoTech returns the Video Tech engine rates.
func (c Card) VideoTech() videotech.Rates {
	return videotech.Rates{
		TaggerRate:          c.TaggerRate,
		EditorRate:          c.EditorRate,
		ScoreplayInfraRate:  c.ScoreplayInfraRate,
		PlaygroundInfraRate: c.PlaygroundInfraRate,
		PlatformFeeRate:     c.PlatformFeeRate,
	}
}

// WebMobile returns the Web & Mobile engine rates.
func (c Card) WebMobile() webmobile.Rates {
	return webmobile.Rates{
		HourlyRate:            c.HourlyRate,
		WorkingHoursPerMonth:  c.WorkingHoursPerMonth,
		SharedInfraMonthly:    c.SharedInfraMonthly,
		DedicatedInfraMonthly: c.DedicatedInfraMonthly,
	}
}

// Validate rejects negative or non-finite rates and a fee rate above 100%.
func (c Card) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"taggerRate", c.TaggerRate},
		{"editorRate", c.EditorRate},
		{"scoreplayInfraRate", c.ScoreplayInfraRate},
		{"playgroundInfraRate", c.PlaygroundInfraRate},
		{"platformFeeRate", c.PlatformFeeRate},
		{"hourlyRate", c.HourlyRate},
		{"workingHoursPerMonth", c.WorkingHoursPerMonth},
		{"sharedInfraMonthly", c.SharedInfraMonthly},
		{"dedicatedInfraMonthly", c.DedicatedInfraMonthly},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s must be a number >= 0", ErrInvalidRate, f.name)
		}
	}
	if c.PlatformFeeRate > 1 {
		return fmt.Errorf("%w: platformFeeRate must be between 0 and 1", ErrInvalidRate)
	}
	return nil
}

// Store reads and writes the rate card.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the current rate card.
func (s *Store) Get(ctx context.Context) (Card, error) {
	var c Card
	err := s.db.QueryRowContext(ctx, `
		SELECT
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
		FROM rate_card
		WHERE id = 1
	`).Scan(
		&c.TaggerRate,
		&c.EditorRate,
		&c.ScoreplayInfraRate,
		&c.PlaygroundInfraRate,
		&c.PlatformFeeRate,
		&c.HourlyRate,
		&c.WorkingHoursPerMonth,
		&c.SharedInfraMonthly,
		&c.DedicatedInfraMonthly,
		&c.Currency,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("query rate_card: %w", err)
	}
	return c, nil
}

// Update validates c and overwrites the stored rates.
func (s *Store) Update(ctx context.Context, c Card) error {
	if err := c.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE rate_card
		SET
			tagger_rate = ?,
			editor_rate = ?,
			scoreplay_infra_rate = ?,
			playground_infra_rate = ?,
			platform_fee_rate = ?,
			hourly_rate = ?,
			working_hours_per_month = ?,
			shared_infra_monthly = ?,
			dedicated_infra_monthly = ?,
			currency = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
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
		Currency,
	)
	if err != nil {
		return fmt.Errorf("update rate_card: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update rate_card: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
