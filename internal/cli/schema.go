package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/foodetl/internal/logging"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [data_dir]",
	Short: "Create the users, recipes and interactions tables if absent",
	Long: `Schema connects to the target database and creates any missing table.
Existing tables are left untouched and no data is loaded.

data_dir is only read for its optional foodetl.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

var schemaFlags connectionFlags

func init() {
	rootCmd.AddCommand(schemaCmd)
	addConnectionFlags(schemaCmd, &schemaFlags)
}

func runSchema(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	ctx, cancel, cfg, err := prepareRun(cmd, args, schemaFlags, verbose, true)
	if err != nil {
		return err
	}
	defer cancel()

	if err := newPipeline(logger).EnsureSchema(ctx, cfg); err != nil {
		return err
	}
	logger.Info("✓ Schema ensured in database '%s'", cfg.Connection.Database)
	return nil
}
