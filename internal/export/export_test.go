package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/estimator/internal/pricing/videotech"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
)

func videoTechEstimate() VideoTechEstimate {
	in := videotech.DefaultInputs()
	return VideoTechEstimate{Inputs: in, Totals: videotech.Calculate(in, videotech.DefaultRates())}
}

func webMobileEstimate() WebMobileEstimate {
	in := webmobile.DefaultInputs()
	return WebMobileEstimate{Inputs: in, Totals: webmobile.Calculate(in, webmobile.DefaultRates())}
}

func TestWriteVideoTechText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVideoTechText(&buf, videoTechEstimate()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	// 50 events × 2h, 2 taggers + 1 editor at $10, Scoreplay, 60% margin.
	for _, want := range []string{
		"Total SI revenue: $4,800",
		"- Events: 50",
		"- Taggers (2): $2,000",
		"- Editors (1): $1,000",
		"- Total SI cost: $3,000",
		"- Markup (60%): $1,800",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Platform fee") {
		t.Fatalf("platform fee line should be hidden when not included:\n%s", out)
	}
}

func TestWriteVideoTechText_AthleticsShowsMonthlyHours(t *testing.T) {
	e := videoTechEstimate()
	e.Inputs.ClientProfile = videotech.ProfileAthletics
	e.Totals = videotech.Calculate(e.Inputs, videotech.DefaultRates())

	var buf bytes.Buffer
	if err := WriteVideoTechText(&buf, e); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "- Hours per month: 100") {
		t.Fatalf("missing monthly hours:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "- Events:") {
		t.Fatalf("events should not be listed for athletics:\n%s", buf.String())
	}
}

func TestWriteWebMobileText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWebMobileText(&buf, webMobileEstimate()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Web & Mobile estimate",
		"- Web (Basic+): 2 FE, 1 BE",
		"- Mobile (Basic+): 3 devs",
		"- QA (20%)",
		"- CMS Subscription: $150",
		"- Google Analytics (GA4): $0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteWebMobileText_OmitsOutOfScopePlatforms(t *testing.T) {
	e := webMobileEstimate()
	e.Inputs.IncludeMob = false
	e.Inputs.ThirdPartyItems = nil
	e.Totals = webmobile.Calculate(e.Inputs, webmobile.DefaultRates())

	var buf bytes.Buffer
	if err := WriteWebMobileText(&buf, e); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "- Mobile") {
		t.Fatalf("mobile lines should be hidden:\n%s", out)
	}
	if strings.Contains(out, "Third-party services") {
		t.Fatalf("third-party section should be hidden without items:\n%s", out)
	}
}

func TestWorkbook_RequiresAnEstimate(t *testing.T) {
	if _, err := Workbook(nil, nil); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}

func TestWorkbook_OneSheetPerEstimate(t *testing.T) {
	vt := videoTechEstimate()
	wm := webMobileEstimate()

	data, err := Workbook(&vt, &wm)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != videoTechSheet || sheets[1] != webMobileSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	label, err := f.GetCellValue(videoTechSheet, "A1")
	if err != nil {
		t.Fatalf("read A1: %v", err)
	}
	if label != "Video Tech estimate" {
		t.Fatalf("A1 = %q", label)
	}

	rows, err := f.GetRows(webMobileSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	found := false
	for _, r := range rows {
		if len(r) > 0 && r[0] == "Mobile: Universal Linking" {
			found = true
		}
		if len(r) > 0 && r[0] == "Mobile: Home & Lock Screen Widgets" {
			t.Fatalf("advanced-only feature listed for basicPlus")
		}
	}
	if !found {
		t.Fatalf("expected included mobile feature rows")
	}
}

func TestWorkbook_SingleEstimate(t *testing.T) {
	wm := webMobileEstimate()

	data, err := Workbook(nil, &wm)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != webMobileSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}
}
