package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"feedscope/internal/api"
	"feedscope/internal/constraint"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <feed-id>...",
		Short: "Validate feeds against the decoder capabilities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			resp := svc.SanityCheck(api.SanityCheckRequest{FeedIDs: args})
			if asJSON {
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			if len(resp.Issues) == 0 {
				fmt.Fprintln(out, "No constraint issues found against current decoder caps.")
				return nil
			}

			colorize := shouldColorize(out)
			for _, iss := range resp.Issues {
				line := fmt.Sprintf("[%s] %s - %s: %s", iss.Severity, iss.FeedID, iss.Kind, iss.Detail)
				if colorize {
					if color := severityColor(iss.Severity); color != "" {
						line = color + line + ansiReset
					}
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit findings as JSON")
	return cmd
}

func severityColor(severity constraint.Severity) string {
	switch severity {
	case constraint.SeverityError:
		return ansiRed
	case constraint.SeverityWarn:
		return ansiYellow
	default:
		return ""
	}
}
