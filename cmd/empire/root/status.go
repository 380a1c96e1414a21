package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"empireos/internal/engine"
	"empireos/internal/ui"
)

func newStatusCmd(opts *options) *cobra.Command {
	var done []string
	var live int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show XP, tier, course progress and badges",
		Long: `Show XP, tier, course progress and badges for a session.

Sessions are not saved, so completion is passed in with --done. The live
count defaults to the starting factory board; --live overrides it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := opts.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			for _, id := range done {
				if err := svc.SetActionItem(ctx, id, true); err != nil {
					return err
				}
			}

			completed, err := svc.CompletedMap(ctx)
			if err != nil {
				return err
			}
			stages, err := svc.CountByStage(ctx)
			if err != nil {
				return err
			}
			var badges []engine.Achievement
			if cmd.Flags().Changed("live") {
				if live < 0 {
					return fmt.Errorf("--live must not be negative, got %d", live)
				}
				stages[engine.StageLive] = live
			} else {
				badges, err = engine.GetAchievementsForSession(ctx, svc)
				if err != nil {
					return err
				}
			}
			stats := engine.Progress(completed, svc.Catalog().ActionItemCount(), stages[engine.StageLive])
			if badges == nil {
				badges = engine.NewAchievementChecker(stats, completed, svc.Catalog(), stages).GetAchievements()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Empire Status"))
			fmt.Fprintln(out, ui.LabelValue("Tier", ui.TierText(stats.Tier)))
			next := "top tier reached"
			if stats.NextTier != "" {
				next = fmt.Sprintf("%d to %s", stats.XPToNext, stats.NextTier)
			}
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d %s", stats.XP, ui.Muted.Render("("+next+")"))))
			fmt.Fprintln(out, ui.LabelValue("Course", fmt.Sprintf("%s %d%% (%d/%d)", ui.ProgressBar(stats.Percent, 20), stats.Percent, stats.Completed, stats.Total)))
			fmt.Fprintln(out, ui.LabelValue("Live stores", stats.LiveCount))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Badges (%d earned)", ui.IconTrophy, engine.CountEarned(badges))))
			for _, a := range badges {
				if a.Earned {
					fmt.Fprintf(out, "%s %s %s\n", a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(out, "%s %s %s\n", ui.Muted.Render("··"), ui.Muted.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&done, "done", nil, "Completed action item ids (e.g. m1-1,m1-2)")
	cmd.Flags().IntVar(&live, "live", 0, "Number of live stores (default: from the starting board)")
	return cmd
}
