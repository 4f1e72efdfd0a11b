package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexfield/rulecore/internal/domain/services"
)

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Rewrite a ruleset document in canonical form",
		Long: "Load a ruleset document and write it back in canonical attribute and " +
			"child order, normalizing legacy tags into the current schema.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := services.NewRulesetService(nil)
			rs, report, err := svc.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("loading ruleset: %w", err)
			}
			printWarnings(report)

			if output == "" {
				return svc.Save(os.Stdout, rs)
			}
			if err := svc.SaveFile(output, rs); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
