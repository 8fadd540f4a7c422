package commands

import (
	"github.com/sourcewizard-ai/bdep/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var opts app.ExecuteOptions

	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Build a package and its workspace dependencies in order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startPath := "."
			if len(args) > 0 {
				startPath = args[0]
			}

			_, err := c.app.Execute(cmd.Context(), startPath, opts)
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Rebuild every package regardless of output timestamps")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "j", 0, "Maximum concurrent build steps (default: number of CPUs)")
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Write the JSON run report to this path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Progress renderer: linear or progress")

	return cmd
}
