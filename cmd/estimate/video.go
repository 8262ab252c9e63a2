package main

import (
	"github.com/spf13/cobra"

	"github.com/Simplici0/estimator/internal/export"
	"github.com/Simplici0/estimator/internal/pricing/videotech"
)

func newVideoCmd(root *rootOptions) *cobra.Command {
	var (
		profile     string
		platform    string
		platformFee bool
	)

	cmd := &cobra.Command{
		Use:   "video",
		Short: "Estimate a Video Tech engagement",
		Args:  cobra.NoArgs,
	}

	def := videotech.DefaultInputs()
	cmd.Flags().StringVar(&profile, "profile", string(def.ClientProfile), "client profile: Standard or Athletics")
	cmd.Flags().StringVar(&platform, "platform", string(def.Platform), "platform: Scoreplay or Playground")
	cmd.Flags().BoolVar(&platformFee, "platform-fee", def.IncludePlatformFee, "include the platform fee")
	events := newNumberFlag(cmd, "events", "50", "number of events (Standard)")
	duration := newNumberFlag(cmd, "duration", "2", "average event duration in hours (Standard)")
	hoursPerMonth := newNumberFlag(cmd, "hours-per-month", "100", "service hours per month (Athletics)")
	months := newNumberFlag(cmd, "months", "1", "service months (Athletics)")
	taggers := newNumberFlag(cmd, "taggers", "2", "number of taggers")
	editors := newNumberFlag(cmd, "editors", "1", "number of editors")
	margin := newNumberFlag(cmd, "margin", "60", "margin percent: 20, 40, 50, 60 or 80")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		in := videotech.Inputs{
			ClientProfile:             videotech.Profile(profile),
			Events:                    events.Count(),
			Duration:                  duration.Float(),
			TotalServiceHoursPerMonth: hoursPerMonth.Float(),
			Months:                    months.Count(),
			TaggersCount:              taggers.Count(),
			EditorsCount:              editors.Count(),
			Platform:                  videotech.Platform(platform),
			SelectedMargin:            margin.Float(),
			IncludePlatformFee:        platformFee,
		}
		if err := in.Validate(); err != nil {
			return err
		}
		in = in.Normalize()

		logger := root.logger()
		defer logger.Sync()

		card, err := root.loadRates(cmd.Context(), logger)
		if err != nil {
			return err
		}

		e := export.VideoTechEstimate{Inputs: in, Totals: videotech.Calculate(in, card.VideoTech())}
		if err := export.WriteVideoTechText(cmd.OutOrStdout(), e); err != nil {
			return err
		}
		return root.writeWorkbook(&e, nil)
	}
	return cmd
}
