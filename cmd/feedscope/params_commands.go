package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newEncoderCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "encoder",
		Short: "Show the configured encoder parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			resp := svc.GetEncoderParams()
			if asJSON {
				return writeJSON(cmd, resp)
			}
			printParams(cmd, "Encoder parameters:", resp.Params)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit parameters as JSON")
	return cmd
}

func newDecoderCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decoder",
		Short: "Show the configured decoder parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			resp := svc.GetDecoderParams()
			if asJSON {
				return writeJSON(cmd, resp)
			}
			printParams(cmd, "Decoder parameters:", resp.Params)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit parameters as JSON")
	return cmd
}

func newSchemaCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the declared feed table columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			resp := svc.GetTableSchema()
			if asJSON {
				return writeJSON(cmd, resp)
			}

			rows := make([][]string, len(resp.Columns))
			for i, col := range resp.Columns {
				rows[i] = []string{col.Header, col.Type, col.AllowedValues, col.Description}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"HEADER", "TYPE", "ALLOWED VALUES", "DESCRIPTION"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the schema as JSON")
	return cmd
}

func printParams(cmd *cobra.Command, title string, params map[string]any) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	for _, k := range keys {
		fmt.Fprintf(out, "- %s: %v\n", k, params[k])
	}
}
