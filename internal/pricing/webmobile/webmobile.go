// Package webmobile estimates staffing, infrastructure, QA/PM overhead, markup
// and third-party costs for a web and mobile delivery project.
package webmobile

import (
	"slices"

	"github.com/Simplici0/estimator/internal/pricing"
)

// InfraType selects the monthly infrastructure plan.
type InfraType string

const (
	InfraShared    InfraType = "shared"
	InfraDedicated InfraType = "dedicated"
)

// Rates holds the constants injected into Calculate.
type Rates struct {
	HourlyRate            float64 `json:"hourlyRate"`
	WorkingHoursPerMonth  float64 `json:"workingHoursPerMonth"`
	SharedInfraMonthly    float64 `json:"sharedInfraMonthly"`
	DedicatedInfraMonthly float64 `json:"dedicatedInfraMonthly"`
}

// DefaultRates returns HOURLY_RATE 10, WORKING_HOURS_PER_MONTH 160 and the
// 250/500 USD monthly infra plans.
func DefaultRates() Rates {
	return Rates{
		HourlyRate:            10,
		WorkingHoursPerMonth:  160,
		SharedInfraMonthly:    250,
		DedicatedInfraMonthly: 500,
	}
}

// InfraMonthly returns the monthly price of an infra plan.
func (r Rates) InfraMonthly(t InfraType) float64 {
	if t == InfraShared {
		return r.SharedInfraMonthly
	}
	return r.DedicatedInfraMonthly
}

// ThirdPartyItem is a flat third-party cost passed through without markup.
type ThirdPartyItem struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Inputs is the full input set of the estimator.
type Inputs struct {
	ProjectMonths    float64          `json:"projectMonths"`
	WebTier          Tier             `json:"webTier"`
	MobTier          Tier             `json:"mobTier"`
	IncludeWeb       bool             `json:"includeWeb"`
	IncludeMob       bool             `json:"includeMob"`
	FEDevs           int              `json:"feDevs"`
	BEDevs           int              `json:"beDevs"`
	MobDevs          int              `json:"mobDevs"`
	DevOpsDevs       int              `json:"devOpsDevs"`
	InfraType        InfraType        `json:"infraType"`
	QAPercentage     float64          `json:"qaPercentage"`
	PMPercentage     float64          `json:"pmPercentage"`
	MarkupPercentage float64          `json:"markupPercentage"`
	MaintHours       float64          `json:"maintHours"`
	ThirdPartyItems  []ThirdPartyItem `json:"thirdPartyItems"`
}

// Breakdown is a display-only share of dev, QA and PM cost for one platform.
type Breakdown struct {
	Dev float64 `json:"dev"`
	QA  float64 `json:"qa"`
	PM  float64 `json:"pm"`
}

// Total returns dev + qa + pm.
func (b Breakdown) Total() float64 {
	return b.Dev + b.QA + b.PM
}

// Totals is the derived output of Calculate.
type Totals struct {
	WebFTE             float64   `json:"webFTE"`
	MobFTE             float64   `json:"mobFTE"`
	DevOpsFTE          float64   `json:"devOpsFTE"`
	TotalFTE           float64   `json:"totalFTE"`
	TotalProjectHours  float64   `json:"totalProjectHours"`
	WebDevCost         float64   `json:"webDevCost"`
	MobDevCost         float64   `json:"mobDevCost"`
	DevOpsCost         float64   `json:"devOpsCost"`
	TotalDevCost       float64   `json:"totalDevCost"`
	TotalInfraCost     float64   `json:"totalInfraCost"`
	QATotal            float64   `json:"qaTotal"`
	PMTotal            float64   `json:"pmTotal"`
	ThirdPartyTotal    float64   `json:"thirdPartyTotal"`
	Subtotal           float64   `json:"subtotal"`
	MarginMarkup       float64   `json:"marginMarkup"`
	GrandTotal         float64   `json:"grandTotal"`
	MonthlyMaintenance float64   `json:"monthlyMaintenance"`
	WebBreakdown       Breakdown `json:"webBreakdown"`
	MobBreakdown       Breakdown `json:"mobBreakdown"`
}

// Calculate derives the project totals. DevOps, infra and maintenance are only
// charged while at least one of web or mobile is in scope.
func Calculate(in Inputs, rates Rates) Totals {
	anyScope := in.IncludeWeb || in.IncludeMob

	var webFTE, mobFTE, devOpsFTE float64
	if in.IncludeWeb {
		webFTE = float64(in.FEDevs + in.BEDevs)
	}
	if in.IncludeMob {
		mobFTE = float64(in.MobDevs)
	}
	if anyScope {
		devOpsFTE = float64(in.DevOpsDevs)
	}
	totalFTE := webFTE + mobFTE + devOpsFTE

	monthlyCostPerFTE := rates.WorkingHoursPerMonth * rates.HourlyRate * in.ProjectMonths
	webDevCost := webFTE * monthlyCostPerFTE
	mobDevCost := mobFTE * monthlyCostPerFTE
	devOpsCost := devOpsFTE * monthlyCostPerFTE
	totalDevCost := webDevCost + mobDevCost + devOpsCost

	infraCost := 0.0
	if anyScope {
		infraCost = rates.InfraMonthly(in.InfraType) * in.ProjectMonths
	}

	qaTotal := totalDevCost * in.QAPercentage
	pmTotal := totalDevCost * in.PMPercentage
	thirdParty := ThirdPartyTotal(in.ThirdPartyItems)

	subtotal := totalDevCost + infraCost + qaTotal + pmTotal
	markup := subtotal * in.MarkupPercentage

	maintenance := 0.0
	if anyScope {
		maintenance = in.MaintHours * rates.HourlyRate
	}

	// DevOps is left out of the per-platform split.
	var webProp, mobProp float64
	if core := webDevCost + mobDevCost; core > 0 {
		webProp = webDevCost / core
		mobProp = 1 - webProp
	}

	return Totals{
		WebFTE:             webFTE,
		MobFTE:             mobFTE,
		DevOpsFTE:          devOpsFTE,
		TotalFTE:           totalFTE,
		TotalProjectHours:  totalFTE * rates.WorkingHoursPerMonth * in.ProjectMonths,
		WebDevCost:         webDevCost,
		MobDevCost:         mobDevCost,
		DevOpsCost:         devOpsCost,
		TotalDevCost:       totalDevCost,
		TotalInfraCost:     infraCost,
		QATotal:            qaTotal,
		PMTotal:            pmTotal,
		ThirdPartyTotal:    thirdParty,
		Subtotal:           subtotal,
		MarginMarkup:       markup,
		GrandTotal:         subtotal + markup + thirdParty,
		MonthlyMaintenance: maintenance,
		WebBreakdown:       Breakdown{Dev: webDevCost, QA: qaTotal * webProp, PM: pmTotal * webProp},
		MobBreakdown:       Breakdown{Dev: mobDevCost, QA: qaTotal * mobProp, PM: pmTotal * mobProp},
	}
}

// ThirdPartyTotal sums item costs; unusable costs count as 0.
func ThirdPartyTotal(items []ThirdPartyItem) float64 {
	total := 0.0
	for _, item := range items {
		total += pricing.Clamp(item.Cost)
	}
	return total
}

// Normalize returns a copy of in with numeric fields clamped to >= 0. The
// third-party list is copied so the result never aliases in.
func (in Inputs) Normalize() Inputs {
	in.ProjectMonths = pricing.Clamp(in.ProjectMonths)
	in.FEDevs = pricing.ToCount(float64(in.FEDevs))
	in.BEDevs = pricing.ToCount(float64(in.BEDevs))
	in.MobDevs = pricing.ToCount(float64(in.MobDevs))
	in.DevOpsDevs = pricing.ToCount(float64(in.DevOpsDevs))
	in.QAPercentage = pricing.Clamp(in.QAPercentage)
	in.PMPercentage = pricing.Clamp(in.PMPercentage)
	in.MarkupPercentage = pricing.Clamp(in.MarkupPercentage)
	in.MaintHours = pricing.Clamp(in.MaintHours)

	items := slices.Clone(in.ThirdPartyItems)
	for i := range items {
		items[i].Cost = pricing.Clamp(items[i].Cost)
	}
	in.ThirdPartyItems = items
	return in
}
