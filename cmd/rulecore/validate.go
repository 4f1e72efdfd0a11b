package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexfield/rulecore/internal/application/handlers"
	"github.com/hexfield/rulecore/internal/domain/services"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a ruleset document",
		Long:  "Load a ruleset document, reporting its contents and any recoverable problems.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := handlers.NewValidateHandler(services.NewRulesetService(nil))

			summary, err := handler.HandleValidate(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ruleset %s", summary.RulesetID)
			if summary.Version != "" {
				fmt.Printf(" (version %s)", summary.Version)
			}
			fmt.Println()
			fmt.Printf("  %d goods types, %d resource types, %d disasters\n",
				summary.Goods, summary.Resources, summary.Disasters)
			fmt.Printf("  %d tile types, %d options\n", summary.TileTypes, summary.Options)

			for _, w := range summary.Warnings {
				fmt.Printf("warning: %s\n", w)
			}
			if len(summary.Warnings) == 0 {
				fmt.Println("OK")
			}
			return nil
		},
	}
}
