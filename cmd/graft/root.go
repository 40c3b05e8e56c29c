package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/graft/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "Graft compiles avatar features into animator controllers",
	Long: `Graft reads avatar descriptions with declarative features (toggles, gestures,
sockets, merged controllers) and compiles them into a single animator
controller, expression menu and networked parameter list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the graft project")
	rootCmd.PersistentFlags().String("config", "", "Config file (default <dir>/graft.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of every build action")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("write-defaults", "", "Override build.write_defaults: auto, on or off")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for the shared build lock")
}

// environment builds the command environment from the persistent flags.
func environment(cmd *cobra.Command) (*cli.Environment, error) {
	flags := cmd.Flags()
	var opts cli.Options
	opts.Dir, _ = flags.GetString("dir")
	opts.ConfigPath, _ = flags.GetString("config")
	opts.Debug, _ = flags.GetBool("debug")
	opts.LogFormat, _ = flags.GetString("log-format")
	opts.WriteDefaults, _ = flags.GetString("write-defaults")
	opts.RedisAddr, _ = flags.GetString("redis")
	return cli.NewEnvironment(opts)
}
