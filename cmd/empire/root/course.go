package root

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"empireos/internal/ui"
)

func newCourseCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course [module-id]",
		Short: "List course modules, or show one module",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, ui.Heading(ui.IconCourse, "Curriculum"))
				for _, m := range cat.Modules() {
					fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render(fmt.Sprintf("%d.", m.ID)), m.Title, ui.Muted.Render("("+m.Duration+")"))
					fmt.Fprintf(out, "   %s\n", ui.Muted.Render(fmt.Sprintf("%s · %d action items", m.Description, len(m.ActionItems))))
				}
				return nil
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.New("module-id must be an integer")
			}
			m, ok := cat.Module(id)
			if !ok {
				return fmt.Errorf("module %d not found", id)
			}

			fmt.Fprintln(out, ui.Heading(ui.IconCourse, fmt.Sprintf("Module %d: %s", m.ID, m.Title)))
			fmt.Fprintln(out, ui.LabelValue("Duration", m.Duration))
			fmt.Fprintln(out, ui.Muted.Render(m.Description))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, m.Overview)
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Concepts"))
			for i, c := range m.Concepts {
				fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render(fmt.Sprintf("%d.", i+1)), c.Title, ui.Muted.Render("- "+c.Summary))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Action items"))
			for _, it := range m.ActionItems {
				fmt.Fprintf(out, "%s %s %s\n", ui.IconTodo, ui.Muted.Render(it.ID), it.Text)
			}
			return nil
		},
	}
	return cmd
}

func newConceptCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concept <module-id> <n>",
		Short: "Show a concept's details",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("module-id and concept number are required")
			}
			for _, a := range args {
				if _, err := strconv.Atoi(a); err != nil {
					return errors.New("module-id and concept number must be integers")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			id, _ := strconv.Atoi(args[0])
			n, _ := strconv.Atoi(args[1])

			m, ok := cat.Module(id)
			if !ok {
				return fmt.Errorf("module %d not found", id)
			}
			if n < 1 || n > len(m.Concepts) {
				return fmt.Errorf("module %d has %d concepts", id, len(m.Concepts))
			}
			c := m.Concepts[n-1]

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, c.Title))
			fmt.Fprintln(out, ui.Muted.Render(c.Summary))
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, renderMarkdown(c.Details, false))
			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "%s %s\n", ui.Muted.Render("Worksheet:"), ui.Key.Render(fmt.Sprintf("empire generate --tool tutor %q", c.Title)))
			return nil
		},
	}
	return cmd
}
