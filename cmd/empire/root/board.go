package root

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"empireos/internal/engine"
	"empireos/internal/ui"
)

func newBoardCmd(opts *options) *cobra.Command {
	var adds []string
	var advance []int64
	var retreat []int64
	var moves []string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the product factory board",
		Long: `Show the product factory board.

Every run starts from the same four batches. --add, --advance, --retreat and
--move are applied in that order before the board is printed. --move takes
id=stage and, like the other moves, only reaches a neighbouring stage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := opts.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			for _, title := range adds {
				it, err := svc.AddItem(ctx, title)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s #%d %s\n", ui.Good.Render(ui.IconPlus+" Added"), it.ID, it.Title)
			}
			for _, id := range advance {
				it, err := svc.Advance(ctx, id)
				if err != nil {
					return fmt.Errorf("advance #%d: %w", id, err)
				}
				fmt.Fprintf(out, "%s #%d → %s\n", ui.H2.Render("Advanced"), it.ID, ui.StageText(it.Stage))
			}
			for _, id := range retreat {
				it, err := svc.Retreat(ctx, id)
				if err != nil {
					return fmt.Errorf("retreat #%d: %w", id, err)
				}
				fmt.Fprintf(out, "%s #%d → %s\n", ui.Warn.Render("Moved back"), it.ID, ui.StageText(it.Stage))
			}
			for _, spec := range moves {
				id, target, err := parseMove(spec)
				if err != nil {
					return err
				}
				it, err := svc.MoveItem(ctx, id, target)
				if err != nil {
					return fmt.Errorf("move #%d: %w", id, err)
				}
				fmt.Fprintf(out, "%s #%d → %s\n", ui.H2.Render("Moved"), it.ID, ui.StageText(it.Stage))
			}
			if len(adds)+len(advance)+len(retreat)+len(moves) > 0 {
				fmt.Fprintln(out, "")
			}

			items, err := svc.Board(ctx)
			if err != nil {
				return err
			}
			groups := engine.GroupByStage(items)
			fmt.Fprintln(out, ui.Heading(ui.IconFactory, "Product Factory"))
			for _, st := range engine.Stages() {
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s (%d)", ui.StageTitle(st), len(groups[st]))))
				if len(groups[st]) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("  (empty)"))
				}
				for _, it := range groups[st] {
					fmt.Fprintf(out, "  #%d %s %s\n", it.ID, it.Title, ui.PriorityBadge(it.Priority))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&adds, "add", nil, "Add a batch to the backlog (repeatable)")
	cmd.Flags().Int64SliceVar(&advance, "advance", nil, "Move items one stage forward")
	cmd.Flags().Int64SliceVar(&retreat, "retreat", nil, "Move items one stage back")
	cmd.Flags().StringArrayVar(&moves, "move", nil, "Move an item to a neighbouring stage, as id=stage (repeatable)")
	return cmd
}

// parseMove splits an id=stage pair.
func parseMove(s string) (int64, engine.Stage, error) {
	rawID, rawStage, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("--move %q: want id=stage", s)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(rawID), "#"), 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("--move %q: bad id: %w", s, err)
	}
	st, err := engine.ParseStage(rawStage)
	if err != nil {
		return 0, "", fmt.Errorf("--move %q: %w", s, err)
	}
	return id, st, nil
}
