package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexfield/rulecore/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a rulecore config in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			if config.Exists(cwd) {
				return fmt.Errorf("config already exists: %s", config.ConfigFilePath(cwd))
			}
			if err := config.Save(cwd, config.Default()); err != nil {
				return err
			}
			fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))
			return nil
		},
	}
}
