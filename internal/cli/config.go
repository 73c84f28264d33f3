package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/foodetl/internal/checksum"
	"github.com/vvka-141/foodetl/internal/config"
	"github.com/vvka-141/foodetl/internal/db"
	"github.com/vvka-141/foodetl/internal/files/filesystem"
	"github.com/vvka-141/foodetl/internal/services"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// connectionFlags holds the connection-related flag values of one command.
type connectionFlags struct {
	connection string
	host       string
	port       int
	username   string
	database   string
	sslMode    string

	aws            bool
	awsRegion      string
	google         bool
	googleInstance string
	azure          bool
	azureTenantID  string
	azureClientID  string
}

func addConnectionFlags(cmd *cobra.Command, f *connectionFlags) {
	flags := cmd.Flags()

	flags.StringVar(&f.connection, "connection", "",
		"PostgreSQL connection string (URI or key=value format).\n"+
			"Mutually exclusive with --host, --port, --username and --sslmode.\n"+
			"Alternative: $FOODETL_CONNECTION_STRING or $DATABASE_URL")

	// Precedence: flag > environment variable > foodetl.yaml > default
	flags.StringVarP(&f.host, "host", "h", "",
		"PostgreSQL server host\n"+
			"Precedence: --host > $PGHOST > foodetl.yaml > localhost")
	flags.IntVarP(&f.port, "port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --port > $PGPORT > foodetl.yaml > 5432")
	flags.StringVarP(&f.username, "username", "U", "",
		"PostgreSQL user (default: $PGUSER or current OS user)")
	flags.StringVarP(&f.database, "database", "d", "",
		"Target database (default: $PGDATABASE, foodetl.yaml, then postgres).\n"+
			"Overrides the database of a connection string")
	flags.StringVar(&f.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: prefer, or $PGSSLMODE)")

	flags.BoolVar(&f.aws, "aws", false,
		"Enable AWS RDS IAM authentication (uses the default AWS credential chain)")
	flags.StringVar(&f.awsRegion, "aws-region", "",
		"AWS region of the RDS instance (overrides $AWS_REGION)")

	flags.BoolVar(&f.google, "google", false,
		"Enable Google Cloud SQL IAM authentication")
	flags.StringVar(&f.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)")

	flags.BoolVar(&f.azure, "azure", false,
		"Enable Azure Entra ID authentication\n"+
			"Uses DefaultAzureCredential chain (Managed Identity, Azure CLI, etc.)")
	flags.StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	flags.StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")
}

func (f connectionFlags) granular() *db.GranularConnFlags {
	return &db.GranularConnFlags{
		Host:     f.host,
		Port:     f.port,
		Username: f.username,
		Database: f.database,
		SSLMode:  f.sslMode,
	}
}

func (f connectionFlags) cloud() *db.CloudFlags {
	return &db.CloudFlags{
		AWS:            f.aws,
		AWSRegion:      f.awsRegion,
		Google:         f.google,
		GoogleInstance: f.googleInstance,
		Azure:          f.azure,
		AzureTenantID:  f.azureTenantID,
		AzureClientID:  f.azureClientID,
	}
}

// loadProjectConfig returns nil when dataDir has no foodetl.yaml.
func loadProjectConfig(dataDir string) (*config.ProjectConfig, error) {
	cfg, err := config.Load(dataDir)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, foodetl.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// buildLoadConfig builds a LoadConfig from flags, the environment and the
// optional foodetl.yaml of dataDir. The connection is only resolved when
// withConnection is set.
func buildLoadConfig(
	dataDir string,
	flags connectionFlags,
	timeoutFlag *time.Duration,
	verbose bool,
	withConnection bool,
) (foodetl.LoadConfig, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return foodetl.LoadConfig{}, fmt.Errorf("data directory %q: %w", dataDir, foodetl.ErrInputNotFound)
	}
	if !info.IsDir() {
		return foodetl.LoadConfig{}, fmt.Errorf("data directory %q is not a directory: %w", dataDir, foodetl.ErrInvalidConfig)
	}

	projectCfg, err := loadProjectConfig(dataDir)
	if err != nil {
		return foodetl.LoadConfig{}, err
	}

	timeout, err := resolveTimeout(timeoutFlag, projectCfg)
	if err != nil {
		return foodetl.LoadConfig{}, err
	}

	cfg := foodetl.LoadConfig{
		DataDir: dataDir,
		Inputs:  resolveInputs(projectCfg),
		Timeout: timeout,
		Verbose: verbose,
	}

	if !withConnection {
		return cfg, nil
	}

	var fileConn *config.ConnectionConfig
	if projectCfg != nil {
		fileConn = &projectCfg.Connection
	}
	conn, err := db.ResolveConnectionParams(flags.connection, flags.granular(), flags.cloud(), db.LoadFromEnvironment(), fileConn)
	if err != nil {
		return foodetl.LoadConfig{}, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Connection resolved: %s (auth: %s)\n", db.Redacted(conn), conn.AuthMethod)
	}
	cfg.Connection = conn
	return cfg, nil
}

// resolveTimeout applies --timeout > foodetl.yaml > DefaultTimeout.
func resolveTimeout(flag *time.Duration, projectCfg *config.ProjectConfig) (time.Duration, error) {
	if flag != nil {
		if *flag <= 0 {
			return 0, fmt.Errorf("--timeout must be positive, got %v: %w", *flag, foodetl.ErrInvalidConfig)
		}
		return *flag, nil
	}
	d, err := projectCfg.TimeoutDuration()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", foodetl.ErrInvalidConfig, err)
	}
	if d <= 0 {
		return foodetl.DefaultTimeout, nil
	}
	return d, nil
}

func resolveInputs(projectCfg *config.ProjectConfig) foodetl.Inputs {
	inputs := foodetl.DefaultInputs()
	if projectCfg == nil {
		return inputs
	}
	if projectCfg.Inputs.Users != "" {
		inputs.Users = projectCfg.Inputs.Users
	}
	if projectCfg.Inputs.Recipes != "" {
		inputs.Recipes = projectCfg.Inputs.Recipes
	}
	if projectCfg.Inputs.Interactions != "" {
		inputs.Interactions = projectCfg.Inputs.Interactions
	}
	return inputs
}

// loadEnvFiles applies .env from the working directory, then each file in
// order, later files overriding earlier ones. Variables already present in
// the process environment keep their values.
func loadEnvFiles(paths []string) error {
	merged := make(map[string]string)

	if _, err := os.Stat(".env"); err == nil {
		values, err := godotenv.Read(".env")
		if err != nil {
			return fmt.Errorf("failed to read .env: %w: %w", foodetl.ErrInvalidConfig, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to read env file %q: %w: %w", path, foodetl.ErrInvalidConfig, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	for k, v := range merged {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	return nil
}

func newPipeline(logger foodetl.Logger) *services.PipelineService {
	sessions := services.NewSessionManager(db.NewConnectorFactory(logger), logger)
	return services.NewPipelineService(sessions, filesystem.NewOSFileSystem(), checksum.New(), logger)
}
