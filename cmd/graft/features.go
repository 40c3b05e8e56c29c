package main

import (
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the feature types this build understands",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := environment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		env.ListFeatures(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}
