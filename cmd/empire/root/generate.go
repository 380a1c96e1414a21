package root

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"empireos/internal/engine"
	"empireos/internal/prompt"
	"empireos/internal/ui"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

func newGenerateCmd(opts *options) *cobra.Command {
	var toolName string
	var raw bool
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "generate <text...>",
		Short: "Run an AI lab tool (niche, audit, listing, tutor)",
		Long: `Run an AI lab tool against Gemini.

Tools:
  niche    Niche Hunter: find blue oceans
  audit    Listing Auditor: grade your SEO
  listing  Listing Architect: generate SEO copy
  tutor    Course Tutor: generate worksheets

Requires EMPIRE_GEMINI_API_KEY (or GEMINI_API_KEY).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := prompt.ParseTool(toolName)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			svc, cleanup, err := opts.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Generate(ctx, tool, strings.Join(args, " "))
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Bad.Render(engine.GenerateFailedMessage))
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderMarkdown(res.Text, raw))
			if copyOut {
				if err := clipboardWriteAll(res.Text); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Muted.Render(ui.IconCopy+" Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&toolName, "tool", "t", string(prompt.DefaultTool), "Tool: niche|audit|listing|tutor")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the model output without markdown rendering")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the output to the clipboard")
	return cmd
}

func renderMarkdown(s string, raw bool) string {
	if raw {
		return s
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return s
	}
	out, err := r.Render(s)
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}
