package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/graft/internal/cli"
)

var buildCmd = &cobra.Command{
	Use:   "build [avatar...]",
	Short: "Compile avatars into the scratch store",
	Long: `Builds each named avatar, or every avatar in the project when none is given,
and prints a report of the generated layers and parameters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := environment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		clone, _ := cmd.Flags().GetBool("clone")
		quiet, _ := cmd.Flags().GetBool("quiet")
		return env.RunBuild(cmd.Context(), cmd.OutOrStdout(), cli.BuildOptions{
			Avatars: args,
			Clone:   clone,
			Quiet:   quiet,
		})
	},
}

func init() {
	buildCmd.Flags().Bool("clone", false, "Build an upload copy, running clone-only actions")
	buildCmd.Flags().BoolP("quiet", "q", false, "Do not print build reports")
	rootCmd.AddCommand(buildCmd)
}
