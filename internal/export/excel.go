package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/estimator/internal/pricing/webmobile"
)

const (
	videoTechSheet = "Video Tech"
	webMobileSheet = "Web & Mobile"
	usdFormat      = `"$"#,##0`
)

var ErrNothingToExport = errors.New("no estimate to export")

// Workbook builds an XLSX file with one sheet per non-nil estimate.
func Workbook(vt *VideoTechEstimate, wm *WebMobileEstimate) ([]byte, error) {
	if vt == nil && wm == nil {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	var sheets []string
	if vt != nil {
		sheets = append(sheets, videoTechSheet)
	}
	if wm != nil {
		sheets = append(sheets, webMobileSheet)
	}

	// Rename the default sheet, add the rest.
	if err := f.SetSheetName(f.GetSheetName(0), sheets[0]); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	for _, name := range sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	if vt != nil {
		if err := writeRows(f, videoTechSheet, styles, videoTechRows(*vt)); err != nil {
			return nil, err
		}
	}
	if wm != nil {
		if err := writeRows(f, webMobileSheet, styles, webMobileRows(*wm)); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type rowKind int

const (
	rowPlain rowKind = iota
	rowHeading
	rowMoney
	rowTotal
)

type row struct {
	kind  rowKind
	label string
	value any
}

type sheetStyles struct {
	heading int
	money   int
	total   int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	if s.heading, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	}); err != nil {
		return s, fmt.Errorf("create heading style: %w", err)
	}

	format := usdFormat
	if s.money, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &format,
	}); err != nil {
		return s, fmt.Errorf("create money style: %w", err)
	}

	if s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &format,
	}); err != nil {
		return s, fmt.Errorf("create total style: %w", err)
	}
	return s, nil
}

func writeRows(f *excelize.File, sheet string, styles sheetStyles, rows []row) error {
	if err := f.SetColWidth(sheet, "A", "A", 36); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}

	for i, r := range rows {
		n := i + 1
		labelCell := fmt.Sprintf("A%d", n)
		valueCell := fmt.Sprintf("B%d", n)

		if err := f.SetCellValue(sheet, labelCell, r.label); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, labelCell, err)
		}
		if r.value != nil {
			if err := f.SetCellValue(sheet, valueCell, r.value); err != nil {
				return fmt.Errorf("set %s!%s: %w", sheet, valueCell, err)
			}
		}

		var err error
		switch r.kind {
		case rowHeading:
			err = f.SetCellStyle(sheet, labelCell, labelCell, styles.heading)
		case rowMoney:
			err = f.SetCellStyle(sheet, valueCell, valueCell, styles.money)
		case rowTotal:
			err = f.SetCellStyle(sheet, labelCell, valueCell, styles.total)
		}
		if err != nil {
			return fmt.Errorf("style %s row %d: %w", sheet, n, err)
		}
	}
	return nil
}

func videoTechRows(e VideoTechEstimate) []row {
	in, t := e.Inputs, e.Totals
	return []row{
		{kind: rowHeading, label: "Video Tech estimate"},
		{label: "Client profile", value: string(in.ClientProfile)},
		{label: "Events", value: in.Events},
		{label: "Avg. event duration (h)", value: in.Duration},
		{label: "Hours per month", value: in.TotalServiceHoursPerMonth},
		{label: "Months", value: in.Months},
		{label: "Taggers", value: in.TaggersCount},
		{label: "Editors", value: in.EditorsCount},
		{label: "Platform", value: string(in.Platform)},
		{label: "Margin (%)", value: in.SelectedMargin},
		{label: "Platform fee", value: in.IncludePlatformFee},
		{},
		{kind: rowHeading, label: "Totals"},
		{label: "Project hours", value: t.ProjectHours},
		{label: "Work hours", value: t.WorkHours},
		{kind: rowMoney, label: "Tagger cost", value: t.TotalTaggerCost},
		{kind: rowMoney, label: "Editor cost", value: t.TotalEditorCost},
		{kind: rowMoney, label: "Infrastructure cost", value: t.TotalInfraCost},
		{kind: rowMoney, label: "Operational subtotal", value: t.BaseOperationalSubtotal},
		{kind: rowMoney, label: "Platform fee", value: t.PlatformFeeCost},
		{kind: rowMoney, label: "Total SI cost", value: t.TotalSICost},
		{kind: rowMoney, label: "Markup", value: t.RevenueMarkupValue},
		{kind: rowTotal, label: "Total SI revenue", value: t.TotalSIRevenue},
	}
}

func webMobileRows(e WebMobileEstimate) []row {
	in, t := e.Inputs, e.Totals
	rows := []row{
		{kind: rowHeading, label: "Web & Mobile estimate"},
		{label: "Project months", value: in.ProjectMonths},
		{label: "Web in scope", value: in.IncludeWeb},
		{label: "Web tier", value: in.WebTier.Label()},
		{label: "Frontend devs", value: in.FEDevs},
		{label: "Backend devs", value: in.BEDevs},
		{label: "Mobile in scope", value: in.IncludeMob},
		{label: "Mobile tier", value: in.MobTier.Label()},
		{label: "Mobile devs", value: in.MobDevs},
		{label: "DevOps", value: in.DevOpsDevs},
		{label: "Infrastructure", value: string(in.InfraType)},
		{label: "QA share", value: in.QAPercentage},
		{label: "PM share", value: in.PMPercentage},
		{label: "Markup", value: in.MarkupPercentage},
		{label: "Maintenance hours / month", value: in.MaintHours},
		{},
		{kind: rowHeading, label: "Totals"},
		{label: "Total FTE", value: t.TotalFTE},
		{label: "Total project hours", value: t.TotalProjectHours},
		{kind: rowMoney, label: "Web dev cost", value: t.WebDevCost},
		{kind: rowMoney, label: "Mobile dev cost", value: t.MobDevCost},
		{kind: rowMoney, label: "DevOps cost", value: t.DevOpsCost},
		{kind: rowMoney, label: "Infrastructure cost", value: t.TotalInfraCost},
		{kind: rowMoney, label: "QA", value: t.QATotal},
		{kind: rowMoney, label: "PM", value: t.PMTotal},
		{kind: rowMoney, label: "Subtotal", value: t.Subtotal},
		{kind: rowMoney, label: "Margin", value: t.MarginMarkup},
		{kind: rowMoney, label: "Third-party services", value: t.ThirdPartyTotal},
		{kind: rowTotal, label: "Grand total", value: t.GrandTotal},
		{kind: rowMoney, label: "Monthly maintenance", value: t.MonthlyMaintenance},
	}

	if len(in.ThirdPartyItems) > 0 {
		rows = append(rows, row{}, row{kind: rowHeading, label: "Third-party services"})
		for _, item := range in.ThirdPartyItems {
			rows = append(rows, row{kind: rowMoney, label: item.Name, value: item.Cost})
		}
	}

	rows = append(rows, row{}, row{kind: rowHeading, label: "Included features"})
	if in.IncludeWeb {
		rows = append(rows, featureRows("Web", webmobile.WebsiteFeatures, in.WebTier)...)
	}
	if in.IncludeMob {
		rows = append(rows, featureRows("Mobile", webmobile.MobileFeatures, in.MobTier)...)
	}
	return rows
}

func featureRows(prefix string, table []webmobile.Feature, tier webmobile.Tier) []row {
	var rows []row
	for _, fr := range webmobile.FeatureRows(table, tier) {
		if fr.Included {
			rows = append(rows, row{label: prefix + ": " + fr.Feature, value: tier.Label()})
		}
	}
	return rows
}
