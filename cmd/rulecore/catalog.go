package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hexfield/rulecore/internal/application/handlers"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the local catalog of installed rulesets",
	}

	cmd.AddCommand(newCatalogAddCmd())
	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogRemoveCmd())

	return cmd
}

func newCatalogAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Validate a ruleset document and register it in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withDeps(ctx, func(d *deps) error {
				handler := handlers.NewCatalogHandler(d.store, d.rulesetSvc)
				info, err := handler.HandleAdd(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Installed %s", info.Name)
				if info.Version != "" {
					fmt.Printf(" (version %s)", info.Version)
				}
				fmt.Println()
				return nil
			})
		},
	}
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed rulesets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withDeps(ctx, func(d *deps) error {
				handler := handlers.NewCatalogHandler(d.store, d.rulesetSvc)
				infos, err := handler.HandleList(ctx)
				if err != nil {
					return err
				}
				if len(infos) == 0 {
					fmt.Println("No rulesets installed.")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tVERSION\tPATH\tINSTALLED")
				for _, info := range infos {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						info.Name, info.Version, truncate(info.Path, 50),
						info.InstalledAt.Format("2006-01-02"))
				}
				return w.Flush()
			})
		},
	}
}

func newCatalogRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an installed ruleset from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withDeps(ctx, func(d *deps) error {
				handler := handlers.NewCatalogHandler(d.store, d.rulesetSvc)
				if err := handler.HandleRemove(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed %s\n", args[0])
				return nil
			})
		},
	}
}
