package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hexfield/rulecore/internal/application/handlers"
	"github.com/hexfield/rulecore/internal/domain/services"
)

func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Inspect and change ruleset options",
	}

	cmd.AddCommand(newOptionsListCmd())
	cmd.AddCommand(newOptionsSetCmd())
	cmd.AddCommand(newOptionsHistoryCmd())

	return cmd
}

func newOptionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the options of a ruleset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, report, err := services.NewRulesetService(nil).LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("loading ruleset: %w", err)
			}
			printWarnings(report)

			rows := handlers.NewOptionHandler(nil).HandleList(rs)
			if len(rows) == 0 {
				fmt.Println("No options found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tVALUE\tLABEL")
			for _, row := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\n", row.ID, row.Value, row.Label)
			}
			return w.Flush()
		},
	}
}

func newOptionsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <id> <value>",
		Short: "Set an option value and write the document back",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, id, value := args[0], args[1], args[2]

			return withDeps(ctx, func(d *deps) error {
				rs, report, err := d.rulesetSvc.LoadFile(path)
				if err != nil {
					return fmt.Errorf("loading ruleset: %w", err)
				}
				printWarnings(report)
				d.optionService.Watch(rs)

				handler := handlers.NewOptionHandler(d.optionService)
				if err := handler.HandleSet(ctx, rs, id, value); err != nil {
					return err
				}

				if err := d.rulesetSvc.SaveFile(path, rs); err != nil {
					return fmt.Errorf("saving ruleset: %w", err)
				}
				fmt.Printf("Set %s = %s\n", id, value)
				return nil
			})
		},
	}
}

func newOptionsHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Show recorded changes of an option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withDeps(ctx, func(d *deps) error {
				handler := handlers.NewOptionHandler(d.optionService)
				changes, err := handler.HandleHistory(ctx, args[0], limit)
				if err != nil {
					return err
				}
				if len(changes) == 0 {
					fmt.Println("No recorded changes.")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "WHEN\tOLD\tNEW")
				for _, c := range changes {
					fmt.Fprintf(w, "%s\t%s\t%s\n",
						c.ChangedAt.Format("2006-01-02 15:04:05"), c.OldValue, c.NewValue)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of changes to show")
	return cmd
}
