package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [avatar...]",
	Short: "Check avatar features without building",
	Long:  `Loads every avatar and reports unknown, outdated or misconfigured features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := environment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.RunValidate(cmd.Context(), cmd.OutOrStdout(), args); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All avatars are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
