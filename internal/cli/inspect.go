package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/foodetl/internal/logging"
	"github.com/vvka-141/foodetl/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [data_dir]",
	Short: "Read and clean the raw datasets without a database",
	Long: `Inspect runs every read and transform step of a load and prints how many
rows each dataset had and how many survive cleaning. Nothing is written.

Examples:
  foodetl inspect ./data
  foodetl inspect ./data -v    # also list dropped rows and ignored columns`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	ctx, cancel, cfg, err := prepareRun(cmd, args, connectionFlags{}, verbose, false)
	if err != nil {
		return err
	}
	defer cancel()

	report, err := newPipeline(logger).Inspect(ctx, cfg)
	if report != nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderReport(report, ui.DetectMode(), true, err))
	}
	return err
}
