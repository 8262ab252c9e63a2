package webmobile

import (
	"errors"
	"fmt"
)

// Tier is a feature tier. It selects which feature rows show as included and
// the default headcount; it has no direct effect on cost.
type Tier string

const (
	TierBasic     Tier = "basic"
	TierBasicPlus Tier = "basicPlus"
	TierAdvanced  Tier = "advanced"
)

// Tiers lists the tiers in display order.
var Tiers = []Tier{TierBasic, TierBasicPlus, TierAdvanced}

var ErrUnknownTier = errors.New("unknown tier")

// Label returns the display name: Basic, Basic+ or Advanced.
func (t Tier) Label() string {
	switch t {
	case TierBasic:
		return "Basic"
	case TierBasicPlus:
		return "Basic+"
	case TierAdvanced:
		return "Advanced"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of Tiers.
func (t Tier) Valid() bool {
	return t == TierBasic || t == TierBasicPlus || t == TierAdvanced
}

// WebHeadcount is the default frontend/backend staffing of a web tier.
type WebHeadcount struct {
	FEDevs int
	BEDevs int
}

var webHeadcounts = map[Tier]WebHeadcount{
	TierBasic:     {FEDevs: 1, BEDevs: 1},
	TierBasicPlus: {FEDevs: 2, BEDevs: 1},
	TierAdvanced:  {FEDevs: 3, BEDevs: 2},
}

var mobHeadcounts = map[Tier]int{
	TierBasic:     2,
	TierBasicPlus: 3,
	TierAdvanced:  4,
}

// DefaultWebHeadcount returns the frontend/backend defaults of a web tier.
func DefaultWebHeadcount(t Tier) (WebHeadcount, error) {
	hc, ok := webHeadcounts[t]
	if !ok {
		return WebHeadcount{}, fmt.Errorf("%w: %q", ErrUnknownTier, t)
	}
	return hc, nil
}

// DefaultMobHeadcount returns the mobile developer default of a mobile tier.
func DefaultMobHeadcount(t Tier) (int, error) {
	n, ok := mobHeadcounts[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, t)
	}
	return n, nil
}

// SetWebTier selects a web tier and resets FEDevs and BEDevs to the tier
// defaults, discarding any manual edits.
func (in *Inputs) SetWebTier(t Tier) error {
	hc, err := DefaultWebHeadcount(t)
	if err != nil {
		return err
	}
	in.WebTier = t
	in.FEDevs = hc.FEDevs
	in.BEDevs = hc.BEDevs
	return nil
}

// SetMobTier selects a mobile tier and resets MobDevs to the tier default.
func (in *Inputs) SetMobTier(t Tier) error {
	n, err := DefaultMobHeadcount(t)
	if err != nil {
		return err
	}
	in.MobTier = t
	in.MobDevs = n
	return nil
}
