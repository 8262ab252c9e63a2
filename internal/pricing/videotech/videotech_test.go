package videotech

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCalculate_StandardProfile(t *testing.T) {
	totals := Calculate(DefaultInputs(), DefaultRates())

	nearlyEqual(t, "projectHours", totals.ProjectHours, 100)
	nearlyEqual(t, "totalTaggerCost", totals.TotalTaggerCost, 2000)
	nearlyEqual(t, "totalEditorCost", totals.TotalEditorCost, 1000)
	nearlyEqual(t, "totalInfraCost", totals.TotalInfraCost, 0)
	nearlyEqual(t, "platformFeeCost", totals.PlatformFeeCost, 0)
	nearlyEqual(t, "totalSICost", totals.TotalSICost, 3000)
	nearlyEqual(t, "revenueMarkupValue", totals.RevenueMarkupValue, 1800)
	nearlyEqual(t, "totalSIRevenue", totals.TotalSIRevenue, 4800)
	nearlyEqual(t, "workHours", totals.WorkHours, 300)
}

func TestCalculate_AthleticsMatchesStandardWithSameHours(t *testing.T) {
	standard := DefaultInputs()

	athletics := standard
	athletics.ClientProfile = ProfileAthletics
	athletics.TotalServiceHoursPerMonth = 100
	athletics.Months = 1
	athletics.Events = 0
	athletics.Duration = 0

	got := Calculate(athletics, DefaultRates())
	want := Calculate(standard, DefaultRates())
	if got != want {
		t.Fatalf("athletics totals %+v, want %+v", got, want)
	}
}

func TestCalculate_AthleticsIgnoresEventFields(t *testing.T) {
	in := DefaultInputs()
	in.ClientProfile = ProfileAthletics
	in.TotalServiceHoursPerMonth = 40
	in.Months = 3

	totals := Calculate(in, DefaultRates())
	nearlyEqual(t, "projectHours", totals.ProjectHours, 120)
}

func TestCalculate_ScoreplayWithoutFeeIsStaffOnly(t *testing.T) {
	for _, taggers := range []int{0, 1, 4} {
		for _, editors := range []int{0, 2, 5} {
			in := DefaultInputs()
			in.TaggersCount = taggers
			in.EditorsCount = editors
			in.Events = 7
			in.Duration = 1.5

			totals := Calculate(in, DefaultRates())
			nearlyEqual(t, "totalInfraCost", totals.TotalInfraCost, 0)
			nearlyEqual(t, "totalSICost", totals.TotalSICost, totals.TotalTaggerCost+totals.TotalEditorCost)
		}
	}
}

func TestCalculate_PlaygroundAddsInfraOnly(t *testing.T) {
	scoreplay := DefaultInputs()
	playground := scoreplay
	playground.Platform = PlatformPlayground

	before := Calculate(scoreplay, DefaultRates())
	after := Calculate(playground, DefaultRates())

	nearlyEqual(t, "totalInfraCost", after.TotalInfraCost, after.ProjectHours*25)
	nearlyEqual(t, "totalTaggerCost", after.TotalTaggerCost, before.TotalTaggerCost)
	nearlyEqual(t, "totalEditorCost", after.TotalEditorCost, before.TotalEditorCost)
	nearlyEqual(t, "totalSICost", after.TotalSICost, 5500)
}

func TestCalculate_PlatformFee(t *testing.T) {
	in := DefaultInputs()
	in.Platform = PlatformPlayground
	in.IncludePlatformFee = true

	totals := Calculate(in, DefaultRates())

	nearlyEqual(t, "baseOperationalSubtotal", totals.BaseOperationalSubtotal, 5500)
	nearlyEqual(t, "platformFeeCost", totals.PlatformFeeCost, 550)
	nearlyEqual(t, "totalSICost", totals.TotalSICost, totals.BaseOperationalSubtotal*1.10)
}

func TestCalculate_MarginSetAppliesToSICost(t *testing.T) {
	for _, margin := range Margins {
		in := DefaultInputs()
		in.SelectedMargin = margin
		in.IncludePlatformFee = true

		totals := Calculate(in, DefaultRates())
		nearlyEqual(t, "totalSIRevenue", totals.TotalSIRevenue, totals.TotalSICost*(1+margin/100))
	}
}

func TestCalculate_UsesInjectedRates(t *testing.T) {
	rates := DefaultRates()
	rates.TaggerRate = 20

	totals := Calculate(DefaultInputs(), rates)
	nearlyEqual(t, "totalTaggerCost", totals.TotalTaggerCost, 4000)
	nearlyEqual(t, "totalEditorCost", totals.TotalEditorCost, 1000)
}

func TestCalculate_DoesNotMutateInputs(t *testing.T) {
	in := DefaultInputs()
	before := in
	_ = Calculate(in, DefaultRates())
	if in != before {
		t.Fatalf("inputs mutated: %+v", in)
	}
}

func TestNormalize_ClampsNegatives(t *testing.T) {
	in := Inputs{
		Events:                    -2,
		Duration:                  -1,
		TotalServiceHoursPerMonth: math.NaN(),
		Months:                    -3,
		TaggersCount:              -1,
		EditorsCount:              -1,
		SelectedMargin:            -20,
	}.Normalize()

	if in.Events != 0 || in.Months != 0 || in.TaggersCount != 0 || in.EditorsCount != 0 {
		t.Fatalf("counts not clamped: %+v", in)
	}
	if in.Duration != 0 || in.TotalServiceHoursPerMonth != 0 || in.SelectedMargin != 0 {
		t.Fatalf("numbers not clamped: %+v", in)
	}
}

func TestClearAll(t *testing.T) {
	in := DefaultInputs()
	in.ClientProfile = ProfileAthletics
	in.Platform = PlatformPlayground
	in.SelectedMargin = 80
	in.IncludePlatformFee = true

	in.ClearAll()

	want := Inputs{
		ClientProfile:  ProfileAthletics,
		Months:         1,
		Platform:       PlatformScoreplay,
		SelectedMargin: DefaultMargin,
	}
	if in != want {
		t.Fatalf("ClearAll = %+v, want %+v", in, want)
	}

	totals := Calculate(in, DefaultRates())
	nearlyEqual(t, "totalSIRevenue", totals.TotalSIRevenue, 0)
}

func TestValidate(t *testing.T) {
	if err := DefaultInputs().Validate(); err != nil {
		t.Fatalf("default inputs invalid: %v", err)
	}

	in := DefaultInputs()
	in.SelectedMargin = 55
	if err := in.Validate(); !errors.Is(err, ErrUnknownMargin) {
		t.Fatalf("expected ErrUnknownMargin, got %v", err)
	}

	in = DefaultInputs()
	in.Platform = "Vimeo"
	if err := in.Validate(); !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}

	in = DefaultInputs()
	in.ClientProfile = ""
	if err := in.Validate(); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestOptions_LabelsFollowRates(t *testing.T) {
	catalog := Options(DefaultRates())

	if len(catalog.Margins) != 5 || catalog.Margins[3].Label != "60%" {
		t.Fatalf("unexpected margins: %+v", catalog.Margins)
	}
	if catalog.Platforms[1].Label != "Playground (USD 25 Infra/Hr)" {
		t.Fatalf("unexpected playground label %q", catalog.Platforms[1].Label)
	}
}
