package main

import (
	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/pricing/videotech"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
)

// videoTechPatch carries any subset of the Video Tech inputs. Absent or null
// fields are left unchanged.
type videoTechPatch struct {
	ClientProfile             *videotech.Profile  `json:"clientProfile"`
	Events                    *pricing.Number     `json:"events"`
	Duration                  *pricing.Number     `json:"duration"`
	TotalServiceHoursPerMonth *pricing.Number     `json:"totalServiceHoursPerMonth"`
	Months                    *pricing.Number     `json:"months"`
	TaggersCount              *pricing.Number     `json:"taggersCount"`
	EditorsCount              *pricing.Number     `json:"editorsCount"`
	Platform                  *videotech.Platform `json:"platform"`
	SelectedMargin            *pricing.Number     `json:"selectedMargin"`
	IncludePlatformFee        *bool               `json:"includePlatformFee"`
}

// apply writes the patch over in, then validates the enum fields. in is left
// unchanged on error.
func (p videoTechPatch) apply(in *videotech.Inputs) error {
	next := *in
	if p.ClientProfile != nil {
		next.ClientProfile = *p.ClientProfile
	}
	setCount(&next.Events, p.Events)
	setFloat(&next.Duration, p.Duration)
	setFloat(&next.TotalServiceHoursPerMonth, p.TotalServiceHoursPerMonth)
	setCount(&next.Months, p.Months)
	setCount(&next.TaggersCount, p.TaggersCount)
	setCount(&next.EditorsCount, p.EditorsCount)
	if p.Platform != nil {
		next.Platform = *p.Platform
	}
	setFloat(&next.SelectedMargin, p.SelectedMargin)
	if p.IncludePlatformFee != nil {
		next.IncludePlatformFee = *p.IncludePlatformFee
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*in = next.Normalize()
	return nil
}

type thirdPartyItemRequest struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Cost pricing.Number `json:"cost"`
}

// webMobilePatch carries any subset of the Web & Mobile inputs. Tier changes
// are applied before explicit headcounts, so a request carrying both keeps the
// explicit values.
type webMobilePatch struct {
	ProjectMonths    *pricing.Number          `json:"projectMonths"`
	WebTier          *webmobile.Tier          `json:"webTier"`
	MobTier          *webmobile.Tier          `json:"mobTier"`
	IncludeWeb       *bool                    `json:"includeWeb"`
	IncludeMob       *bool                    `json:"includeMob"`
	FEDevs           *pricing.Number          `json:"feDevs"`
	BEDevs           *pricing.Number          `json:"beDevs"`
	MobDevs          *pricing.Number          `json:"mobDevs"`
	DevOpsDevs       *pricing.Number          `json:"devOpsDevs"`
	InfraType        *webmobile.InfraType     `json:"infraType"`
	QAPercentage     *pricing.Number          `json:"qaPercentage"`
	PMPercentage     *pricing.Number          `json:"pmPercentage"`
	MarkupPercentage *pricing.Number          `json:"markupPercentage"`
	MaintHours       *pricing.Number          `json:"maintHours"`
	ThirdPartyItems  *[]thirdPartyItemRequest `json:"thirdPartyItems"`
}

// apply writes the patch over in, then validates the enum fields. in is left
// unchanged on error.
func (p webMobilePatch) apply(in *webmobile.Inputs) error {
	next := *in
	if p.WebTier != nil {
		if err := next.SetWebTier(*p.WebTier); err != nil {
			return err
		}
	}
	if p.MobTier != nil {
		if err := next.SetMobTier(*p.MobTier); err != nil {
			return err
		}
	}

	setFloat(&next.ProjectMonths, p.ProjectMonths)
	if p.IncludeWeb != nil {
		next.IncludeWeb = *p.IncludeWeb
	}
	if p.IncludeMob != nil {
		next.IncludeMob = *p.IncludeMob
	}
	setCount(&next.FEDevs, p.FEDevs)
	setCount(&next.BEDevs, p.BEDevs)
	setCount(&next.MobDevs, p.MobDevs)
	setCount(&next.DevOpsDevs, p.DevOpsDevs)
	if p.InfraType != nil {
		next.InfraType = *p.InfraType
	}
	setFloat(&next.QAPercentage, p.QAPercentage)
	setFloat(&next.PMPercentage, p.PMPercentage)
	setFloat(&next.MarkupPercentage, p.MarkupPercentage)
	setFloat(&next.MaintHours, p.MaintHours)

	if p.ThirdPartyItems != nil {
		items := make([]webmobile.ThirdPartyItem, 0, len(*p.ThirdPartyItems))
		for _, item := range *p.ThirdPartyItems {
			items = append(items, webmobile.ThirdPartyItem{
				ID:   item.ID,
				Name: item.Name,
				Cost: item.Cost.Float(),
			})
		}
		if err := next.SetThirdPartyItems(items); err != nil {
			return err
		}
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*in = next.Normalize()
	return nil
}

type thirdPartyPatchRequest struct {
	Name *string         `json:"name"`
	Cost *pricing.Number `json:"cost"`
}

func (p thirdPartyPatchRequest) patch() webmobile.ThirdPartyPatch {
	var out webmobile.ThirdPartyPatch
	out.Name = p.Name
	if p.Cost != nil {
		cost := p.Cost.Float()
		out.Cost = &cost
	}
	return out
}

type panelsPatch struct {
	VideoTech *bool `json:"videoTech"`
	WebMobile *bool `json:"webMobile"`
}

func setFloat(dst *float64, n *pricing.Number) {
	if n != nil {
		*dst = n.Float()
	}
}

func setCount(dst *int, n *pricing.Number) {
	if n != nil {
		*dst = n.Count()
	}
}
