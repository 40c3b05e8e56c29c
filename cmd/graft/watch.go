package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/graft/internal/cli"
)

var watchCmd = &cobra.Command{
	Use:   "watch [avatar...]",
	Short: "Rebuild avatars whenever their files change",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := environment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		sig := cli.NewSignalContext(cmd.Context())
		defer sig.Cancel()

		clone, _ := cmd.Flags().GetBool("clone")
		err = env.RunWatch(sig, cmd.OutOrStdout(), cli.BuildOptions{Avatars: args, Clone: clone})
		if s := sig.Signal(); s != nil {
			env.Logger.Info("Watcher stopped", "signal", s.String())
		}
		return err
	},
}

func init() {
	watchCmd.Flags().Bool("clone", false, "Build upload copies, running clone-only actions")
	rootCmd.AddCommand(watchCmd)
}
