package videotech

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Simplici0/estimator/internal/pricing"
)

// DefaultMargin is the revenue markup percentage selected initially and after a reset.
const DefaultMargin = 60

// Margins are the selectable revenue markup percentages.
var Margins = []float64{20, 40, 50, 60, 80}

var (
	ErrUnknownProfile  = errors.New("unknown client profile")
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrUnknownMargin   = errors.New("unsupported margin")
)

// DefaultInputs returns the inputs a new estimate starts from.
func DefaultInputs() Inputs {
	return Inputs{
		ClientProfile:             ProfileStandard,
		Events:                    50,
		Duration:                  2,
		TotalServiceHoursPerMonth: 100,
		Months:                    1,
		TaggersCount:              2,
		EditorsCount:              1,
		Platform:                  PlatformScoreplay,
		SelectedMargin:            DefaultMargin,
	}
}

// ClearAll zeroes the schedule and staffing fields and restores the platform,
// margin and fee toggle to their defaults. Months falls back to 1 and the
// client profile is left untouched.
func (in *Inputs) ClearAll() {
	in.Events = 0
	in.Duration = 0
	in.Months = 1
	in.TotalServiceHoursPerMonth = 0
	in.TaggersCount = 0
	in.EditorsCount = 0
	in.Platform = PlatformScoreplay
	in.SelectedMargin = DefaultMargin
	in.IncludePlatformFee = false
}

// Validate reports enum fields outside their allowed sets.
func (in Inputs) Validate() error {
	switch in.ClientProfile {
	case ProfileStandard, ProfileAthletics:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProfile, in.ClientProfile)
	}
	switch in.Platform {
	case PlatformScoreplay, PlatformPlayground:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, in.Platform)
	}
	if !slices.Contains(Margins, in.SelectedMargin) {
		return fmt.Errorf("%w: %v", ErrUnknownMargin, in.SelectedMargin)
	}
	return nil
}

// Option is a selectable value with its display label.
type Option struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Catalog lists the selectable values of every enum input.
type Catalog struct {
	Profiles  []Option `json:"profiles"`
	Platforms []Option `json:"platforms"`
	Margins   []Option `json:"margins"`
}

// Options builds the option catalog; platform labels follow the rate card.
func Options(rates Rates) Catalog {
	margins := make([]Option, 0, len(Margins))
	for _, m := range Margins {
		margins = append(margins, Option{Value: m, Label: pricing.FormatNumber(m) + "%"})
	}

	return Catalog{
		Profiles: []Option{
			{Value: ProfileStandard, Label: "Cricket / Football / Basketball"},
			{Value: ProfileAthletics, Label: "Athletics (EA, Eurovision, etc.)"},
		},
		Platforms: []Option{
			{Value: PlatformScoreplay, Label: fmt.Sprintf("Scoreplay (USD %s Infra)", pricing.FormatNumber(rates.ScoreplayInfraRate))},
			{Value: PlatformPlayground, Label: fmt.Sprintf("Playground (USD %s Infra/Hr)", pricing.FormatNumber(rates.PlaygroundInfraRate))},
		},
		Margins: margins,
	}
}
