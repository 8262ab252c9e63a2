package webmobile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Simplici0/estimator/internal/pricing"
)

// OverheadPercentages are the selectable QA and PM shares of dev cost.
var OverheadPercentages = []float64{0.2, 0.3, 0.4, 0.6}

// MarkupPercentages are the selectable margins on the subtotal.
var MarkupPercentages = []float64{0.2, 0.3, 0.4, 0.5, 0.6}

// DefaultMarkup is the markup selected initially.
const DefaultMarkup = 0.4

var (
	ErrUnknownInfraType = errors.New("unknown infra type")
	ErrUnknownQA        = errors.New("unsupported QA percentage")
	ErrUnknownPM        = errors.New("unsupported PM percentage")
	ErrUnknownMarkup    = errors.New("unsupported markup percentage")
)

// DefaultInputs returns the inputs a new estimate starts from.
func DefaultInputs() Inputs {
	return Inputs{
		ProjectMonths:    4,
		WebTier:          TierBasicPlus,
		MobTier:          TierBasicPlus,
		IncludeWeb:       true,
		IncludeMob:       true,
		FEDevs:           2,
		BEDevs:           1,
		MobDevs:          3,
		DevOpsDevs:       1,
		InfraType:        InfraShared,
		QAPercentage:     0.2,
		PMPercentage:     0.2,
		MarkupPercentage: DefaultMarkup,
		MaintHours:       20,
		ThirdPartyItems: []ThirdPartyItem{
			{ID: "1", Name: "Google Analytics (GA4)", Cost: 0},
			{ID: "2", Name: "CMS Subscription", Cost: 150},
		},
	}
}

// StartFresh restores every field, third-party items included, to DefaultInputs.
func (in *Inputs) StartFresh() {
	*in = DefaultInputs()
}

// Validate reports enum fields outside their allowed sets and repeated
// third-party item ids.
func (in Inputs) Validate() error {
	if !in.WebTier.Valid() {
		return fmt.Errorf("%w: web %q", ErrUnknownTier, in.WebTier)
	}
	if !in.MobTier.Valid() {
		return fmt.Errorf("%w: mobile %q", ErrUnknownTier, in.MobTier)
	}
	switch in.InfraType {
	case InfraShared, InfraDedicated:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInfraType, in.InfraType)
	}
	if !slices.Contains(OverheadPercentages, in.QAPercentage) {
		return fmt.Errorf("%w: %v", ErrUnknownQA, in.QAPercentage)
	}
	if !slices.Contains(OverheadPercentages, in.PMPercentage) {
		return fmt.Errorf("%w: %v", ErrUnknownPM, in.PMPercentage)
	}
	if !slices.Contains(MarkupPercentages, in.MarkupPercentage) {
		return fmt.Errorf("%w: %v", ErrUnknownMarkup, in.MarkupPercentage)
	}
	return checkUniqueIDs(in.ThirdPartyItems)
}

// Option is a selectable value with its display label.
type Option struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Catalog lists the selectable values of every enum input.
type Catalog struct {
	Tiers      []Option `json:"tiers"`
	InfraTypes []Option `json:"infraTypes"`
	QA         []Option `json:"qaPercentages"`
	PM         []Option `json:"pmPercentages"`
	Markups    []Option `json:"markupPercentages"`
}

// Options builds the option catalog; infra labels follow the rate card.
func Options(rates Rates) Catalog {
	tiers := make([]Option, 0, len(Tiers))
	for _, t := range Tiers {
		tiers = append(tiers, Option{Value: t, Label: t.Label()})
	}

	overhead := make([]Option, 0, len(OverheadPercentages))
	for _, p := range OverheadPercentages {
		overhead = append(overhead, Option{Value: p, Label: pricing.FormatPercent(p) + " of Efforts"})
	}

	markups := make([]Option, 0, len(MarkupPercentages))
	for _, p := range MarkupPercentages {
		markups = append(markups, Option{Value: p, Label: pricing.FormatPercent(p) + " Margin"})
	}

	return Catalog{
		Tiers: tiers,
		InfraTypes: []Option{
			{Value: InfraShared, Label: fmt.Sprintf("Shared (%s/mo)", pricing.FormatUSD(rates.SharedInfraMonthly))},
			{Value: InfraDedicated, Label: fmt.Sprintf("Dedicated (%s/mo)", pricing.FormatUSD(rates.DedicatedInfraMonthly))},
		},
		QA:      overhead,
		PM:      overhead,
		Markups: markups,
	}
}
