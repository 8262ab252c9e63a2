package webmobile

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func withoutThirdParty() Inputs {
	in := DefaultInputs()
	in.ThirdPartyItems = nil
	return in
}

func TestCalculate_ReferenceProject(t *testing.T) {
	totals := Calculate(withoutThirdParty(), DefaultRates())

	nearlyEqual(t, "webFTE", totals.WebFTE, 3)
	nearlyEqual(t, "mobFTE", totals.MobFTE, 3)
	nearlyEqual(t, "devOpsFTE", totals.DevOpsFTE, 1)
	nearlyEqual(t, "totalFTE", totals.TotalFTE, 7)
	nearlyEqual(t, "totalProjectHours", totals.TotalProjectHours, 4480)
	nearlyEqual(t, "webDevCost", totals.WebDevCost, 19200)
	nearlyEqual(t, "mobDevCost", totals.MobDevCost, 19200)
	nearlyEqual(t, "devOpsCost", totals.DevOpsCost, 6400)
	nearlyEqual(t, "totalDevCost", totals.TotalDevCost, 44800)
	nearlyEqual(t, "totalInfraCost", totals.TotalInfraCost, 1000)
	nearlyEqual(t, "qaTotal", totals.QATotal, 8960)
	nearlyEqual(t, "pmTotal", totals.PMTotal, 8960)
	nearlyEqual(t, "subtotal", totals.Subtotal, 63720)
	nearlyEqual(t, "marginMarkup", totals.MarginMarkup, 25488)
	nearlyEqual(t, "grandTotal", totals.GrandTotal, 89208)
	nearlyEqual(t, "monthlyMaintenance", totals.MonthlyMaintenance, 200)

	nearlyEqual(t, "webBreakdown.dev", totals.WebBreakdown.Dev, 19200)
	nearlyEqual(t, "webBreakdown.qa", totals.WebBreakdown.QA, 4480)
	nearlyEqual(t, "webBreakdown.pm", totals.WebBreakdown.PM, 4480)
	nearlyEqual(t, "mobBreakdown.qa", totals.MobBreakdown.QA, 4480)
	nearlyEqual(t, "mobBreakdown.total", totals.MobBreakdown.Total(), 28160)
}

func TestCalculate_ThirdPartyAddsWithoutMarkup(t *testing.T) {
	totals := Calculate(DefaultInputs(), DefaultRates())

	nearlyEqual(t, "thirdPartyTotal", totals.ThirdPartyTotal, 150)
	nearlyEqual(t, "grandTotal", totals.GrandTotal, 89358)
}

func TestCalculate_NoScopeChargesOnlyThirdParty(t *testing.T) {
	in := DefaultInputs()
	in.IncludeWeb = false
	in.IncludeMob = false

	totals := Calculate(in, DefaultRates())

	nearlyEqual(t, "totalInfraCost", totals.TotalInfraCost, 0)
	nearlyEqual(t, "devOpsCost", totals.DevOpsCost, 0)
	nearlyEqual(t, "monthlyMaintenance", totals.MonthlyMaintenance, 0)
	nearlyEqual(t, "grandTotal", totals.GrandTotal, totals.ThirdPartyTotal)
	if totals.WebBreakdown != (Breakdown{}) || totals.MobBreakdown != (Breakdown{}) {
		t.Fatalf("expected zero breakdowns, got %+v %+v", totals.WebBreakdown, totals.MobBreakdown)
	}
}

func TestCalculate_WebOnlyGetsWholeOverheadShare(t *testing.T) {
	in := withoutThirdParty()
	in.IncludeMob = false

	totals := Calculate(in, DefaultRates())

	nearlyEqual(t, "mobDevCost", totals.MobDevCost, 0)
	nearlyEqual(t, "devOpsCost", totals.DevOpsCost, 6400)
	nearlyEqual(t, "webBreakdown.qa", totals.WebBreakdown.QA, totals.QATotal)
	nearlyEqual(t, "mobBreakdown.qa", totals.MobBreakdown.QA, 0)
}

func TestCalculate_DevOpsOnlyHasNoPlatformShare(t *testing.T) {
	in := withoutThirdParty()
	in.FEDevs = 0
	in.BEDevs = 0
	in.MobDevs = 0

	totals := Calculate(in, DefaultRates())

	nearlyEqual(t, "devOpsCost", totals.DevOpsCost, 6400)
	nearlyEqual(t, "webBreakdown.qa", totals.WebBreakdown.QA, 0)
	nearlyEqual(t, "mobBreakdown.pm", totals.MobBreakdown.PM, 0)
}

func TestCalculate_DedicatedInfra(t *testing.T) {
	in := withoutThirdParty()
	in.InfraType = InfraDedicated

	totals := Calculate(in, DefaultRates())
	nearlyEqual(t, "totalInfraCost", totals.TotalInfraCost, 2000)
}

func TestCalculate_TierDoesNotAffectCost(t *testing.T) {
	base := withoutThirdParty()
	advanced := base
	advanced.WebTier = TierAdvanced
	advanced.MobTier = TierBasic

	if Calculate(base, DefaultRates()) != Calculate(advanced, DefaultRates()) {
		t.Fatalf("tier alone changed the totals")
	}
}

func TestCalculate_DoesNotMutateInputs(t *testing.T) {
	in := DefaultInputs()
	in.ThirdPartyItems[1].Cost = -10

	_ = Calculate(in, DefaultRates())
	if in.ThirdPartyItems[1].Cost != -10 {
		t.Fatalf("third-party cost mutated to %v", in.ThirdPartyItems[1].Cost)
	}
}

func TestThirdPartyTotal_IgnoresUnusableCosts(t *testing.T) {
	items := []ThirdPartyItem{
		{ID: "a", Cost: 100},
		{ID: "b", Cost: math.NaN()},
		{ID: "c", Cost: -50},
		{ID: "d", Cost: 25.5},
	}
	nearlyEqual(t, "thirdPartyTotal", ThirdPartyTotal(items), 125.5)
	nearlyEqual(t, "empty", ThirdPartyTotal(nil), 0)
}

func TestSetWebTier_ResetsHeadcountLastTierWins(t *testing.T) {
	in := DefaultInputs()
	in.FEDevs = 9
	in.BEDevs = 7

	if err := in.SetWebTier(TierAdvanced); err != nil {
		t.Fatalf("SetWebTier: %v", err)
	}
	if in.FEDevs != 3 || in.BEDevs != 2 {
		t.Fatalf("advanced headcount = %d/%d, want 3/2", in.FEDevs, in.BEDevs)
	}

	in.FEDevs = 5
	if err := in.SetWebTier(TierBasic); err != nil {
		t.Fatalf("SetWebTier: %v", err)
	}
	if in.WebTier != TierBasic || in.FEDevs != 1 || in.BEDevs != 1 {
		t.Fatalf("basic headcount = %+v", in)
	}
}

func TestSetMobTier(t *testing.T) {
	want := map[Tier]int{TierBasic: 2, TierBasicPlus: 3, TierAdvanced: 4}
	for tier, devs := range want {
		in := DefaultInputs()
		in.MobDevs = 11
		if err := in.SetMobTier(tier); err != nil {
			t.Fatalf("SetMobTier(%s): %v", tier, err)
		}
		if in.MobDevs != devs || in.MobTier != tier {
			t.Fatalf("SetMobTier(%s) -> %d devs, want %d", tier, in.MobDevs, devs)
		}
	}
}

func TestSetTier_RejectsUnknownTier(t *testing.T) {
	in := DefaultInputs()
	if err := in.SetWebTier("premium"); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
	if in.WebTier != TierBasicPlus || in.FEDevs != 2 {
		t.Fatalf("failed tier change modified inputs: %+v", in)
	}
}

func stubItemIDs(t *testing.T, ids ...string) {
	t.Helper()
	prev := newItemID
	i := 0
	newItemID = func() string {
		id := ids[i%len(ids)] + strconv.Itoa(i/len(ids))
		i++
		return id
	}
	t.Cleanup(func() { newItemID = prev })
}

func TestThirdPartyItems_AddRemoveRoundTrip(t *testing.T) {
	in := DefaultInputs()
	before := Calculate(in, DefaultRates()).ThirdPartyTotal

	item := in.AddThirdPartyItem()
	if item.ID == "" || item.Name != "" || item.Cost != 0 {
		t.Fatalf("unexpected new item %+v", item)
	}
	if len(in.ThirdPartyItems) != 3 {
		t.Fatalf("expected 3 items, got %d", len(in.ThirdPartyItems))
	}

	cost := 75.0
	name := "Hosting"
	if _, err := in.UpdateThirdPartyItem(item.ID, ThirdPartyPatch{Name: &name, Cost: &cost}); err != nil {
		t.Fatalf("update: %v", err)
	}
	nearlyEqual(t, "with item", Calculate(in, DefaultRates()).ThirdPartyTotal, before+75)

	if err := in.RemoveThirdPartyItem(item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	nearlyEqual(t, "after remove", Calculate(in, DefaultRates()).ThirdPartyTotal, before)
}

func TestAddThirdPartyItem_SkipsTakenIDs(t *testing.T) {
	stubItemIDs(t, "x")
	in := Inputs{ThirdPartyItems: []ThirdPartyItem{{ID: "x0"}}}

	item := in.AddThirdPartyItem()
	if item.ID != "x1" {
		t.Fatalf("expected unique id x1, got %q", item.ID)
	}
}

func TestAddThirdPartyItem_DoesNotAliasCallerSlice(t *testing.T) {
	original := DefaultInputs()
	copied := original

	copied.AddThirdPartyItem()
	if len(original.ThirdPartyItems) != 2 {
		t.Fatalf("original list changed: %+v", original.ThirdPartyItems)
	}
}

func TestSetThirdPartyItems_AssignsMissingIDs(t *testing.T) {
	stubItemIDs(t, "x")
	in := DefaultInputs()

	err := in.SetThirdPartyItems([]ThirdPartyItem{
		{ID: "x0", Name: "Hosting", Cost: 40},
		{Name: "Fonts", Cost: -3},
	})
	if err != nil {
		t.Fatalf("set items: %v", err)
	}
	if len(in.ThirdPartyItems) != 2 {
		t.Fatalf("expected 2 items, got %+v", in.ThirdPartyItems)
	}
	if got := in.ThirdPartyItems[1]; got.ID != "x1" || got.Cost != 0 {
		t.Fatalf("expected fresh id x1 and clamped cost, got %+v", got)
	}
}

func TestSetThirdPartyItems_RejectsDuplicateIDs(t *testing.T) {
	in := DefaultInputs()

	err := in.SetThirdPartyItems([]ThirdPartyItem{{ID: "x", Cost: 100}, {ID: "x", Cost: 50}})
	if !errors.Is(err, ErrDuplicateItemID) {
		t.Fatalf("expected ErrDuplicateItemID, got %v", err)
	}
	if len(in.ThirdPartyItems) != 2 || in.ThirdPartyItems[1].Name != "CMS Subscription" {
		t.Fatalf("rejected list replaced items: %+v", in.ThirdPartyItems)
	}
}

func TestSetThirdPartyItems_KeepsRoundTrip(t *testing.T) {
	in := Inputs{}
	if err := in.SetThirdPartyItems([]ThirdPartyItem{{ID: "a", Cost: 100}, {ID: "b", Cost: 50}}); err != nil {
		t.Fatalf("set items: %v", err)
	}

	cost := 10.0
	if _, err := in.UpdateThirdPartyItem("a", ThirdPartyPatch{Cost: &cost}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := in.RemoveThirdPartyItem("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(in.ThirdPartyItems) != 1 || ThirdPartyTotal(in.ThirdPartyItems) != 50 {
		t.Fatalf("unexpected items after remove %+v", in.ThirdPartyItems)
	}
}

func TestThirdPartyItems_UnknownID(t *testing.T) {
	in := DefaultInputs()
	if err := in.RemoveThirdPartyItem("nope"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := in.UpdateThirdPartyItem("nope", ThirdPartyPatch{}); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestUpdateThirdPartyItem_ClampsCost(t *testing.T) {
	in := DefaultInputs()
	cost := -40.0
	item, err := in.UpdateThirdPartyItem("2", ThirdPartyPatch{Cost: &cost})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if item.Cost != 0 || item.Name != "CMS Subscription" {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestStartFresh(t *testing.T) {
	in := Inputs{ProjectMonths: 9, WebTier: TierAdvanced}
	in.StartFresh()

	if in.ProjectMonths != 4 || in.WebTier != TierBasicPlus || len(in.ThirdPartyItems) != 2 {
		t.Fatalf("unexpected fresh inputs %+v", in)
	}
	if in.ThirdPartyItems[1].Name != "CMS Subscription" || in.ThirdPartyItems[1].Cost != 150 {
		t.Fatalf("unexpected default items %+v", in.ThirdPartyItems)
	}
}

func TestNormalize(t *testing.T) {
	in := Inputs{
		ProjectMonths:   -1,
		FEDevs:          -2,
		MaintHours:      math.NaN(),
		ThirdPartyItems: []ThirdPartyItem{{ID: "a", Cost: -3}},
	}
	out := in.Normalize()

	if out.ProjectMonths != 0 || out.FEDevs != 0 || out.MaintHours != 0 {
		t.Fatalf("not clamped: %+v", out)
	}
	if out.ThirdPartyItems[0].Cost != 0 {
		t.Fatalf("item cost not clamped: %+v", out.ThirdPartyItems)
	}
	if in.ThirdPartyItems[0].Cost != -3 {
		t.Fatalf("Normalize mutated caller slice")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultInputs().Validate(); err != nil {
		t.Fatalf("default inputs invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Inputs)
		want   error
	}{
		{"tier", func(in *Inputs) { in.MobTier = "gold" }, ErrUnknownTier},
		{"infra", func(in *Inputs) { in.InfraType = "cloud" }, ErrUnknownInfraType},
		{"qa", func(in *Inputs) { in.QAPercentage = 0.25 }, ErrUnknownQA},
		{"pm", func(in *Inputs) { in.PMPercentage = 1 }, ErrUnknownPM},
		{"markup", func(in *Inputs) { in.MarkupPercentage = 0.45 }, ErrUnknownMarkup},
		{"item ids", func(in *Inputs) { in.ThirdPartyItems[1].ID = "1" }, ErrDuplicateItemID},
	}
	for _, tc := range cases {
		in := DefaultInputs()
		tc.mutate(&in)
		if err := in.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestFeatureRows(t *testing.T) {
	if len(WebsiteFeatures) != 17 || len(MobileFeatures) != 11 {
		t.Fatalf("unexpected table sizes %d/%d", len(WebsiteFeatures), len(MobileFeatures))
	}

	rows := FeatureRows(WebsiteFeatures, TierBasic)
	if rows[9].Feature != "Basic Navigation" || !rows[9].Included {
		t.Fatalf("basic navigation should be included in basic: %+v", rows[9])
	}
	if rows[10].Included {
		t.Fatalf("advanced navigation should not be included in basic")
	}

	if got := IncludedCount(MobileFeatures, TierAdvanced); got != 10 {
		t.Fatalf("advanced mobile features = %d, want 10", got)
	}
	if got := IncludedCount(MobileFeatures, TierBasic); got != 5 {
		t.Fatalf("basic mobile features = %d, want 5", got)
	}
}

func TestOptions(t *testing.T) {
	catalog := Options(DefaultRates())

	if catalog.InfraTypes[0].Label != "Shared ($250/mo)" || catalog.InfraTypes[1].Label != "Dedicated ($500/mo)" {
		t.Fatalf("unexpected infra labels %+v", catalog.InfraTypes)
	}
	if catalog.QA[0].Label != "20% of Efforts" || catalog.Markups[4].Label != "60% Margin" {
		t.Fatalf("unexpected labels %+v %+v", catalog.QA, catalog.Markups)
	}
	if catalog.Tiers[1].Label != "Basic+" {
		t.Fatalf("unexpected tier label %q", catalog.Tiers[1].Label)
	}
}
