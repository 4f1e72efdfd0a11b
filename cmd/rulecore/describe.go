package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hexfield/rulecore/internal/application/handlers"
	"github.com/hexfield/rulecore/internal/infrastructure/llm/openai"
)

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file>",
		Short: "Summarize a ruleset as prose using an LLM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withDeps(ctx, func(d *deps) error {
				rs, report, err := d.rulesetSvc.LoadFile(args[0])
				if err != nil {
					return fmt.Errorf("loading ruleset: %w", err)
				}
				printWarnings(report)

				client, err := openai.NewClient(d.config.LLM)
				if err != nil {
					return err
				}

				handler := handlers.NewDescribeHandler(client)
				summary, err := handler.HandleDescribe(ctx, rs)
				if err != nil {
					return err
				}
				fmt.Println(summary)
				return nil
			})
		},
	}
}
