package main

import (
	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/pricing/videotech"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
	"github.com/Simplici0/estimator/internal/session"
)

type videoTechView struct {
	Inputs    videotech.Inputs  `json:"inputs"`
	Totals    videotech.Totals  `json:"totals"`
	Formatted map[string]string `json:"formatted"`
}

func newVideoTechView(in videotech.Inputs, rates videotech.Rates) videoTechView {
	t := videotech.Calculate(in, rates)
	return videoTechView{
		Inputs: in,
		Totals: t,
		Formatted: map[string]string{
			"projectHours":            pricing.FormatNumber(t.ProjectHours),
			"workHours":               pricing.FormatNumber(t.WorkHours),
			"totalTaggerCost":         pricing.FormatUSD(t.TotalTaggerCost),
			"totalEditorCost":         pricing.FormatUSD(t.TotalEditorCost),
			"totalInfraCost":          pricing.FormatUSD(t.TotalInfraCost),
			"baseOperationalSubtotal": pricing.FormatUSD(t.BaseOperationalSubtotal),
			"platformFeeCost":         pricing.FormatUSD(t.PlatformFeeCost),
			"totalSICost":             pricing.FormatUSD(t.TotalSICost),
			"revenueMarkupValue":      pricing.FormatUSD(t.RevenueMarkupValue),
			"totalSIRevenue":          pricing.FormatUSD(t.TotalSIRevenue),
		},
	}
}

type featuresView struct {
	Web    []webmobile.FeatureRow `json:"web"`
	Mobile []webmobile.FeatureRow `json:"mobile"`
}

func newFeaturesView(webTier, mobTier webmobile.Tier) featuresView {
	return featuresView{
		Web:    webmobile.FeatureRows(webmobile.WebsiteFeatures, webTier),
		Mobile: webmobile.FeatureRows(webmobile.MobileFeatures, mobTier),
	}
}

type webMobileView struct {
	Inputs    webmobile.Inputs  `json:"inputs"`
	Totals    webmobile.Totals  `json:"totals"`
	Formatted map[string]string `json:"formatted"`
	Features  featuresView      `json:"features"`
}

func newWebMobileView(in webmobile.Inputs, rates webmobile.Rates) webMobileView {
	t := webmobile.Calculate(in, rates)
	if in.ThirdPartyItems == nil {
		in.ThirdPartyItems = []webmobile.ThirdPartyItem{}
	}
	return webMobileView{
		Inputs: in,
		Totals: t,
		Formatted: map[string]string{
			"totalFTE":           pricing.FormatNumber(t.TotalFTE),
			"totalProjectHours":  pricing.FormatNumber(t.TotalProjectHours),
			"webDevCost":         pricing.FormatUSD(t.WebDevCost),
			"mobDevCost":         pricing.FormatUSD(t.MobDevCost),
			"devOpsCost":         pricing.FormatUSD(t.DevOpsCost),
			"totalDevCost":       pricing.FormatUSD(t.TotalDevCost),
			"totalInfraCost":     pricing.FormatUSD(t.TotalInfraCost),
			"qaTotal":            pricing.FormatUSD(t.QATotal),
			"pmTotal":            pricing.FormatUSD(t.PMTotal),
			"thirdPartyTotal":    pricing.FormatUSD(t.ThirdPartyTotal),
			"subtotal":           pricing.FormatUSD(t.Subtotal),
			"marginMarkup":       pricing.FormatUSD(t.MarginMarkup),
			"grandTotal":         pricing.FormatUSD(t.GrandTotal),
			"monthlyMaintenance": pricing.FormatUSD(t.MonthlyMaintenance),
			"webBreakdownTotal":  pricing.FormatUSD(t.WebBreakdown.Total()),
			"mobBreakdownTotal":  pricing.FormatUSD(t.MobBreakdown.Total()),
		},
		Features: newFeaturesView(in.WebTier, in.MobTier),
	}
}

type sessionView struct {
	ID        string         `json:"id"`
	Panels    session.Panels `json:"panels"`
	VideoTech videoTechView  `json:"videoTech"`
	WebMobile webMobileView  `json:"webMobile"`
}

func newSessionView(st session.State, rates rateSet) sessionView {
	return sessionView{
		ID:        st.ID,
		Panels:    st.Panels,
		VideoTech: newVideoTechView(st.VideoTech, rates.videoTech),
		WebMobile: newWebMobileView(st.WebMobile, rates.webMobile),
	}
}
