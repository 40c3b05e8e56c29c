package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/graft/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <avatar>",
	Short: "Export the generated controller as a Mermaid diagram",
	Long: `Builds the avatar without touching the scratch store and outputs a Mermaid
diagram (graph TD) with one subgraph per layer. Use --set to simulate parameter
values and highlight the states each layer settles in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := environment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		layers, _ := cmd.Flags().GetStringSlice("layer")
		set, _ := cmd.Flags().GetStringArray("set")
		ticks, _ := cmd.Flags().GetInt("ticks")
		return env.RunGraph(cmd.Context(), cmd.OutOrStdout(), cli.GraphOptions{
			Avatar: args[0],
			Layers: layers,
			Set:    set,
			Ticks:  ticks,
		})
	},
}

func init() {
	graphCmd.Flags().StringSlice("layer", nil, "Only export these layers")
	graphCmd.Flags().StringArray("set", nil, "Simulate a parameter value, name=value (repeatable)")
	graphCmd.Flags().Int("ticks", 10, "Simulator ticks to run after --set")
	rootCmd.AddCommand(graphCmd)
}
