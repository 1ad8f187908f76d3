package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"feedscope/internal/api"
)

func newExplainCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "explain <phrase>",
		Short: "Show how a perceptual phrase maps to ranking weights",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			resp := svc.ExplainTerm(api.ExplainTermRequest{Phrase: strings.Join(args, " ")})
			if asJSON {
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "intent: %s\n", resp.Intent)
			fmt.Fprintf(out, "weights: resolution=%.2f fps=%.2f codec=%.2f\n",
				resp.Weights["resolution"], resp.Weights["fps"], resp.Weights["codec"])
			for _, note := range resp.Notes {
				fmt.Fprintf(out, "note: %s\n", note)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the explanation as JSON")
	return cmd
}
