package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newQueryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Answer a free-text question about the feed catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			result, err := engine.Answer(cmd.Context(), question)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Answer)
			fmt.Fprintf(out, "\nquery id: %s\n", result.Evidence.QueryID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the answer and evidence as JSON")
	return cmd
}
