// Package videotech estimates staffing, infrastructure and markup for a video
// production services engagement.
package videotech

import "github.com/Simplici0/estimator/internal/pricing"

// Profile selects how project hours are derived.
type Profile string

const (
	// ProfileStandard is event based: events × duration.
	ProfileStandard Profile = "Standard"
	// ProfileAthletics is monthly service based: hours per month × months.
	ProfileAthletics Profile = "Athletics"
)

// Platform is the infrastructure platform billed per project hour.
type Platform string

const (
	PlatformScoreplay  Platform = "Scoreplay"
	PlatformPlayground Platform = "Playground"
)

// Rates holds the hourly rates and fee rate injected into Calculate.
type Rates struct {
	TaggerRate          float64 `json:"taggerRate"`
	EditorRate          float64 `json:"editorRate"`
	ScoreplayInfraRate  float64 `json:"scoreplayInfraRate"`
	PlaygroundInfraRate float64 `json:"playgroundInfraRate"`
	PlatformFeeRate     float64 `json:"platformFeeRate"`
}

// DefaultRates returns the standard rate card: 10 USD/hr for taggers and
// editors, free Scoreplay infra, 25 USD/hr Playground infra, 10% platform fee.
func DefaultRates() Rates {
	return Rates{
		TaggerRate:          10,
		EditorRate:          10,
		ScoreplayInfraRate:  0,
		PlaygroundInfraRate: 25,
		PlatformFeeRate:     0.10,
	}
}

// InfraRate returns the hourly infra rate of a platform.
func (r Rates) InfraRate(p Platform) float64 {
	if p == PlatformPlayground {
		return r.PlaygroundInfraRate
	}
	return r.ScoreplayInfraRate
}

// Inputs is the full input set of the estimator. Numeric fields are expected
// to be non-negative; see Normalize.
type Inputs struct {
	ClientProfile             Profile  `json:"clientProfile"`
	Events                    int      `json:"events"`
	Duration                  float64  `json:"duration"`
	TotalServiceHoursPerMonth float64  `json:"totalServiceHoursPerMonth"`
	Months                    int      `json:"months"`
	TaggersCount              int      `json:"taggersCount"`
	EditorsCount              int      `json:"editorsCount"`
	Platform                  Platform `json:"platform"`
	SelectedMargin            float64  `json:"selectedMargin"`
	IncludePlatformFee        bool     `json:"includePlatformFee"`
}

// Totals is the derived output of Calculate.
type Totals struct {
	ProjectHours            float64 `json:"projectHours"`
	TotalTaggerCost         float64 `json:"totalTaggerCost"`
	TotalEditorCost         float64 `json:"totalEditorCost"`
	TotalInfraCost          float64 `json:"totalInfraCost"`
	BaseOperationalSubtotal float64 `json:"baseOperationalSubtotal"`
	PlatformFeeCost         float64 `json:"platformFeeCost"`
	TotalSICost             float64 `json:"totalSICost"`
	RevenueMarkupValue      float64 `json:"revenueMarkupValue"`
	TotalSIRevenue          float64 `json:"totalSIRevenue"`
	WorkHours               float64 `json:"workHours"`
}

// Calculate derives the engagement totals. It never mutates in and performs no
// validation; callers normalize inputs first.
func Calculate(in Inputs, rates Rates) Totals {
	projectHours := float64(in.Events) * in.Duration
	if in.ClientProfile == ProfileAthletics {
		projectHours = in.TotalServiceHoursPerMonth * float64(in.Months)
	}

	taggerCost := float64(in.TaggersCount) * projectHours * rates.TaggerRate
	editorCost := float64(in.EditorsCount) * projectHours * rates.EditorRate
	infraCost := rates.InfraRate(in.Platform) * projectHours

	subtotal := taggerCost + editorCost + infraCost

	platformFee := 0.0
	if in.IncludePlatformFee {
		platformFee = subtotal * rates.PlatformFeeRate
	}

	siCost := subtotal + platformFee
	markup := siCost * (in.SelectedMargin / 100.0)

	return Totals{
		ProjectHours:            projectHours,
		TotalTaggerCost:         taggerCost,
		TotalEditorCost:         editorCost,
		TotalInfraCost:          infraCost,
		BaseOperationalSubtotal: subtotal,
		PlatformFeeCost:         platformFee,
		TotalSICost:             siCost,
		RevenueMarkupValue:      markup,
		TotalSIRevenue:          siCost + markup,
		WorkHours:               float64(in.TaggersCount+in.EditorsCount) * projectHours,
	}
}

// Normalize returns a copy of in with every numeric field clamped to >= 0.
func (in Inputs) Normalize() Inputs {
	in.Events = pricing.ToCount(float64(in.Events))
	in.Duration = pricing.Clamp(in.Duration)
	in.TotalServiceHoursPerMonth = pricing.Clamp(in.TotalServiceHoursPerMonth)
	in.Months = pricing.ToCount(float64(in.Months))
	in.TaggersCount = pricing.ToCount(float64(in.TaggersCount))
	in.EditorsCount = pricing.ToCount(float64(in.EditorsCount))
	in.SelectedMargin = pricing.Clamp(in.SelectedMargin)
	return in
}
