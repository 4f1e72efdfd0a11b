package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hexfield/rulecore/internal/application/handlers"
	"github.com/hexfield/rulecore/internal/domain/services"
)

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Inspect tile type definitions",
	}

	cmd.AddCommand(newTypesListCmd())
	cmd.AddCommand(newTypesShowCmd())

	return cmd
}

func newTypesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the tile types of a ruleset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, report, err := services.NewRulesetService(nil).LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("loading ruleset: %w", err)
			}
			printWarnings(report)

			rows := handlers.NewTileTypeHandler().HandleList(rs)
			if len(rows) == 0 {
				fmt.Println("No tile types found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMOVE\tWORK\tFLAGS")
			for _, row := range rows {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
					row.ID, row.MoveCost, row.WorkTurns, row.Flags)
			}
			return w.Flush()
		},
	}
}

func newTypesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file> <id>",
		Short: "Show one tile type in full",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, report, err := services.NewRulesetService(nil).LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("loading ruleset: %w", err)
			}
			printWarnings(report)

			text, err := handlers.NewTileTypeHandler().HandleShow(rs, args[1])
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}
}
