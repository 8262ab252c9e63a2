package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simplici0/estimator/internal/export"
	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
)

func newWebCmd(root *rootOptions) *cobra.Command {
	var (
		webTier    string
		mobTier    string
		includeWeb bool
		includeMob bool
		infra      string
		items      []string
		noDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Estimate a Web & Mobile project",
		Long: "Estimate a Web & Mobile project. Tier flags reset the headcount to the\n" +
			"tier defaults; explicit --fe, --be and --mob flags override them.",
		Args: cobra.NoArgs,
	}

	def := webmobile.DefaultInputs()
	cmd.Flags().StringVar(&webTier, "web-tier", string(def.WebTier), "web tier: basic, basicPlus or advanced")
	cmd.Flags().StringVar(&mobTier, "mob-tier", string(def.MobTier), "mobile tier: basic, basicPlus or advanced")
	cmd.Flags().BoolVar(&includeWeb, "web", def.IncludeWeb, "include the website")
	cmd.Flags().BoolVar(&includeMob, "mobile", def.IncludeMob, "include the mobile app")
	cmd.Flags().StringVar(&infra, "infra", string(def.InfraType), "infrastructure: shared or dedicated")
	cmd.Flags().StringArrayVar(&items, "item", nil, `third-party service as "name=monthly cost", repeatable`)
	cmd.Flags().BoolVar(&noDefaults, "no-default-items", false, "drop the default third-party services")
	projectMonths := newNumberFlag(cmd, "months", "4", "project duration in months")
	fe := newNumberFlag(cmd, "fe", "", "frontend developers (default from --web-tier)")
	be := newNumberFlag(cmd, "be", "", "backend developers (default from --web-tier)")
	mob := newNumberFlag(cmd, "mob", "", "mobile developers (default from --mob-tier)")
	devops := newNumberFlag(cmd, "devops", "1", "DevOps engineers")
	qa := newNumberFlag(cmd, "qa", "0.2", "QA share of dev cost: 0.2, 0.3, 0.4 or 0.6")
	pm := newNumberFlag(cmd, "pm", "0.2", "PM share of dev cost: 0.2, 0.3, 0.4 or 0.6")
	markup := newNumberFlag(cmd, "markup", "0.4", "markup: 0.2 to 0.6")
	maint := newNumberFlag(cmd, "maint-hours", "20", "maintenance hours per month")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		in := webmobile.DefaultInputs()
		if err := in.SetWebTier(webmobile.Tier(webTier)); err != nil {
			return err
		}
		if err := in.SetMobTier(webmobile.Tier(mobTier)); err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("fe") {
			in.FEDevs = fe.Count()
		}
		if flags.Changed("be") {
			in.BEDevs = be.Count()
		}
		if flags.Changed("mob") {
			in.MobDevs = mob.Count()
		}
		in.ProjectMonths = projectMonths.Float()
		in.IncludeWeb = includeWeb
		in.IncludeMob = includeMob
		in.DevOpsDevs = devops.Count()
		in.InfraType = webmobile.InfraType(infra)
		in.QAPercentage = qa.Float()
		in.PMPercentage = pm.Float()
		in.MarkupPercentage = markup.Float()
		in.MaintHours = maint.Float()

		if noDefaults {
			in.ThirdPartyItems = nil
		}
		for _, raw := range items {
			name, cost, err := parseItem(raw)
			if err != nil {
				return err
			}
			item := in.AddThirdPartyItem()
			if _, err := in.UpdateThirdPartyItem(item.ID, webmobile.ThirdPartyPatch{Name: &name, Cost: &cost}); err != nil {
				return err
			}
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

		e := export.WebMobileEstimate{Inputs: in, Totals: webmobile.Calculate(in, card.WebMobile())}
		if err := export.WriteWebMobileText(cmd.OutOrStdout(), e); err != nil {
			return err
		}
		return root.writeWorkbook(nil, &e)
	}
	return cmd
}

// parseItem splits "name=cost". The cost follows the numeric input rules.
func parseItem(raw string) (string, float64, error) {
	name, cost, ok := strings.Cut(raw, "=")
	if !ok {
		return "", 0, fmt.Errorf("invalid --item %q: want name=cost", raw)
	}
	return strings.TrimSpace(name), pricing.ParseNumber(cost), nil
}

func newFeaturesCmd() *cobra.Command {
	var webTier, mobTier string

	cmd := &cobra.Command{
		Use:   "features",
		Short: "List the features included in the web and mobile tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wt, mt := webmobile.Tier(webTier), webmobile.Tier(mobTier)
			if !wt.Valid() {
				return fmt.Errorf("%w: web %q", webmobile.ErrUnknownTier, webTier)
			}
			if !mt.Valid() {
				return fmt.Errorf("%w: mobile %q", webmobile.ErrUnknownTier, mobTier)
			}

			out := cmd.OutOrStdout()
			printFeatures(out, "Website", webmobile.WebsiteFeatures, wt)
			fmt.Fprintln(out)
			printFeatures(out, "Mobile app", webmobile.MobileFeatures, mt)
			return nil
		},
	}

	cmd.Flags().StringVar(&webTier, "web-tier", string(webmobile.TierBasicPlus), "web tier")
	cmd.Flags().StringVar(&mobTier, "mob-tier", string(webmobile.TierBasicPlus), "mobile tier")
	return cmd
}

func printFeatures(out io.Writer, title string, table []webmobile.Feature, t webmobile.Tier) {
	fmt.Fprintf(out, "%s (%s): %d of %d features\n", title, t.Label(), webmobile.IncludedCount(table, t), len(table))
	for _, row := range webmobile.FeatureRows(table, t) {
		mark := " "
		if row.Included {
			mark = "x"
		}
		fmt.Fprintf(out, "[%s] %s\n", mark, row.Feature)
	}
}
