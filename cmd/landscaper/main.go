package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("landscaper: ")

	rootCmd := &cobra.Command{
		Use:          "landscaper",
		Short:        "Rule-driven scatter of vegetation, rocks and props over terrain",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(scatterCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(runsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scatterCmd() *cobra.Command {
	var opts scatterOptions

	cmd := &cobra.Command{
		Use:   "scatter [project-path]",
		Short: "Scatter every layer of a project and write the manifests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			opts.formatSet = cmd.Flags().Changed("format")
			return runScatter(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "base seed (overrides the project seed)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file; format follows the extension unless --format is set (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json, zst or geojson")
	cmd.Flags().StringVar(&opts.index, "index", "", "record the run in this SQLite catalog")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print the full placement report")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a landscape project without scattering",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [manifest-file]",
		Short: "Summarize a manifest file written by scatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func runsCmd() *cobra.Command {
	var (
		index string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded scatter runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd.Context(), index, limit)
		},
	}

	cmd.Flags().StringVar(&index, "index", "runs.db", "SQLite catalog path")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}
