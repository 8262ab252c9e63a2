// Package export renders estimates for humans: plain text summaries and XLSX
// workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/pricing/videotech"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
)

// VideoTechEstimate pairs Video Tech inputs with their totals.
type VideoTechEstimate struct {
	Inputs videotech.Inputs
	Totals videotech.Totals
}

// WebMobileEstimate pairs Web & Mobile inputs with their totals.
type WebMobileEstimate struct {
	Inputs webmobile.Inputs
	Totals webmobile.Totals
}

// WriteVideoTechText writes a plain-text summary of e.
func WriteVideoTechText(w io.Writer, e VideoTechEstimate) error {
	in, t := e.Inputs, e.Totals
	usd := pricing.FormatUSD

	var b strings.Builder
	fmt.Fprintf(&b, "Video Tech estimate\n")
	fmt.Fprintf(&b, "Total SI revenue: %s\n\n", usd(t.TotalSIRevenue))

	fmt.Fprintf(&b, "Schedule:\n")
	fmt.Fprintf(&b, "- Profile: %s\n", in.ClientProfile)
	if in.ClientProfile == videotech.ProfileAthletics {
		fmt.Fprintf(&b, "- Hours per month: %s\n", pricing.FormatNumber(in.TotalServiceHoursPerMonth))
		fmt.Fprintf(&b, "- Months: %d\n", in.Months)
	} else {
		fmt.Fprintf(&b, "- Events: %d\n", in.Events)
		fmt.Fprintf(&b, "- Avg. event duration: %s h\n", pricing.FormatNumber(in.Duration))
	}
	fmt.Fprintf(&b, "- Project hours: %s\n", pricing.FormatNumber(t.ProjectHours))
	fmt.Fprintf(&b, "- Work hours: %s\n\n", pricing.FormatNumber(t.WorkHours))

	fmt.Fprintf(&b, "Costs:\n")
	fmt.Fprintf(&b, "- Taggers (%d): %s\n", in.TaggersCount, usd(t.TotalTaggerCost))
	fmt.Fprintf(&b, "- Editors (%d): %s\n", in.EditorsCount, usd(t.TotalEditorCost))
	fmt.Fprintf(&b, "- Infrastructure (%s): %s\n", in.Platform, usd(t.TotalInfraCost))
	fmt.Fprintf(&b, "- Operational subtotal: %s\n", usd(t.BaseOperationalSubtotal))
	if in.IncludePlatformFee {
		fmt.Fprintf(&b, "- Platform fee: %s\n", usd(t.PlatformFeeCost))
	}
	fmt.Fprintf(&b, "- Total SI cost: %s\n", usd(t.TotalSICost))
	fmt.Fprintf(&b, "- Markup (%s%%): %s\n", pricing.FormatNumber(in.SelectedMargin), usd(t.RevenueMarkupValue))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteWebMobileText writes a plain-text summary of e.
func WriteWebMobileText(w io.Writer, e WebMobileEstimate) error {
	in, t := e.Inputs, e.Totals
	usd := pricing.FormatUSD

	var b strings.Builder
	fmt.Fprintf(&b, "Web & Mobile estimate\n")
	fmt.Fprintf(&b, "Grand total: %s\n", usd(t.GrandTotal))
	fmt.Fprintf(&b, "Monthly maintenance: %s\n\n", usd(t.MonthlyMaintenance))

	fmt.Fprintf(&b, "Scope:\n")
	fmt.Fprintf(&b, "- Duration: %s months\n", pricing.FormatNumber(in.ProjectMonths))
	if in.IncludeWeb {
		fmt.Fprintf(&b, "- Web (%s): %d FE, %d BE\n", in.WebTier.Label(), in.FEDevs, in.BEDevs)
	}
	if in.IncludeMob {
		fmt.Fprintf(&b, "- Mobile (%s): %d devs\n", in.MobTier.Label(), in.MobDevs)
	}
	fmt.Fprintf(&b, "- DevOps: %s\n", pricing.FormatNumber(t.DevOpsFTE))
	fmt.Fprintf(&b, "- Total effort: %s hrs\n\n", pricing.FormatNumber(t.TotalProjectHours))

	fmt.Fprintf(&b, "Costs:\n")
	if in.IncludeWeb {
		fmt.Fprintf(&b, "- Web: %s dev + %s QA/PM = %s\n",
			usd(t.WebBreakdown.Dev), usd(t.WebBreakdown.QA+t.WebBreakdown.PM), usd(t.WebBreakdown.Total()))
	}
	if in.IncludeMob {
		fmt.Fprintf(&b, "- Mobile: %s dev + %s QA/PM = %s\n",
			usd(t.MobBreakdown.Dev), usd(t.MobBreakdown.QA+t.MobBreakdown.PM), usd(t.MobBreakdown.Total()))
	}
	fmt.Fprintf(&b, "- DevOps: %s\n", usd(t.DevOpsCost))
	fmt.Fprintf(&b, "- Infrastructure (%s): %s\n", in.InfraType, usd(t.TotalInfraCost))
	fmt.Fprintf(&b, "- QA (%s): %s\n", pricing.FormatPercent(in.QAPercentage), usd(t.QATotal))
	fmt.Fprintf(&b, "- PM (%s): %s\n", pricing.FormatPercent(in.PMPercentage), usd(t.PMTotal))
	fmt.Fprintf(&b, "- Subtotal: %s\n", usd(t.Subtotal))
	fmt.Fprintf(&b, "- Margin (%s): %s\n", pricing.FormatPercent(in.MarkupPercentage), usd(t.MarginMarkup))

	if len(in.ThirdPartyItems) > 0 {
		fmt.Fprintf(&b, "\nThird-party services:\n")
		for _, item := range in.ThirdPartyItems {
			name := item.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(&b, "- %s: %s\n", name, usd(item.Cost))
		}
		fmt.Fprintf(&b, "- Total: %s\n", usd(t.ThirdPartyTotal))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
