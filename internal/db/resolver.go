package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/foodetl/internal/config"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// GranularConnFlags holds the libpq-style connection flags (-h, -p, -U, -d).
//
// There is no password flag. Use $PGPASSWORD or a connection string.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether no server-identifying flag was given. Database is
// excluded because -d may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g == nil || (g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == "")
}

// CloudFlags select a cloud IAM authentication method.
type CloudFlags struct {
	AWS       bool
	AWSRegion string

	Google         bool
	GoogleInstance string

	Azure         bool
	AzureTenantID string
	AzureClientID string
}

func (c *CloudFlags) count() int {
	n := 0
	for _, set := range []bool{c.AWS, c.Google, c.Azure} {
		if set {
			n++
		}
	}
	return n
}

// EnvVars is a snapshot of the environment variables the resolver reads.
// See: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	ConnectionString string // FOODETL_CONNECTION_STRING
	DatabaseURL      string // DATABASE_URL

	PGHOST     string
	PGPORT     string
	PGUSER     string
	PGPASSWORD string
	PGDATABASE string
	PGSSLMODE  string

	AWSRegion string // AWS_REGION, then AWS_DEFAULT_REGION

	AzureTenantID     string // AZURE_TENANT_ID
	AzureClientID     string // AZURE_CLIENT_ID
	AzureClientSecret string // AZURE_CLIENT_SECRET
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	return &EnvVars{
		ConnectionString:  os.Getenv("FOODETL_CONNECTION_STRING"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		PGHOST:            os.Getenv("PGHOST"),
		PGPORT:            os.Getenv("PGPORT"),
		PGUSER:            os.Getenv("PGUSER"),
		PGPASSWORD:        os.Getenv("PGPASSWORD"),
		PGDATABASE:        os.Getenv("PGDATABASE"),
		PGSSLMODE:         os.Getenv("PGSSLMODE"),
		AWSRegion:         region,
		AzureTenantID:     os.Getenv("AZURE_TENANT_ID"),
		AzureClientID:     os.Getenv("AZURE_CLIENT_ID"),
		AzureClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ResolveConnectionParams builds the connection for a run. The first source
// that is present wins:
//
//  1. --connection
//  2. $FOODETL_CONNECTION_STRING, then $DATABASE_URL (ignored when granular flags are set)
//  3. granular flags, each falling back to its PG* variable, then foodetl.yaml, then the default
//
// -d overrides the database of a connection string. The auth method comes
// from the cloud flags, else from foodetl.yaml; cloud settings follow the
// same flag > environment > file order.
func ResolveConnectionParams(
	connStringFlag string,
	granular *GranularConnFlags,
	cloud *CloudFlags,
	env *EnvVars,
	fileCfg *config.ConnectionConfig,
) (*foodetl.ConnectionConfig, error) {
	if granular == nil {
		granular = &GranularConnFlags{}
	}
	if cloud == nil {
		cloud = &CloudFlags{}
	}
	if env == nil {
		env = &EnvVars{}
	}
	if fileCfg == nil {
		fileCfg = &config.ConnectionConfig{}
	}

	if connStringFlag != "" && !granular.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U, --sslmode): %w",
			foodetl.ErrInvalidConfig,
		)
	}
	if cloud.count() > 1 {
		return nil, fmt.Errorf("choose at most one of --aws, --google, --azure: %w", foodetl.ErrInvalidConfig)
	}

	connStr := connStringFlag
	if connStr == "" && granular.IsEmpty() {
		connStr = firstNonEmpty(env.ConnectionString, env.DatabaseURL)
	}

	var cfg *foodetl.ConnectionConfig
	var err error
	if connStr != "" {
		cfg, err = fromConnectionString(connStr, granular, env)
	} else {
		cfg, err = fromGranular(granular, env, fileCfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.RetryAttempts = fileCfg.Retries
	if cfg.AppName == "" {
		cfg.AppName = foodetl.DefaultAppName
	}

	if err := applyAuth(cfg, cloud, env, fileCfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromConnectionString(connStr string, granular *GranularConnFlags, env *EnvVars) (*foodetl.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w: %w", foodetl.ErrInvalidConfig, err)
	}
	if granular.Database != "" {
		cfg.Database = granular.Database
	}
	cfg.SSLMode = firstNonEmpty(cfg.SSLMode, env.PGSSLMODE, DefaultSSLMode)
	return cfg, nil
}

func fromGranular(flags *GranularConnFlags, env *EnvVars, file *config.ConnectionConfig) (*foodetl.ConnectionConfig, error) {
	cfg := defaultConnectionConfig()

	cfg.Host = firstNonEmpty(flags.Host, env.PGHOST, file.Host, DefaultHost)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case env.PGPORT != "":
		port, err := strconv.Atoi(env.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value %q: must be an integer: %w", env.PGPORT, foodetl.ErrInvalidConfig)
		}
		cfg.Port = port
	case file.Port != 0:
		cfg.Port = file.Port
	}

	cfg.Username = firstNonEmpty(flags.Username, env.PGUSER, file.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = env.PGPASSWORD
	cfg.Database = firstNonEmpty(flags.Database, env.PGDATABASE, file.Database, DefaultDatabase)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, env.PGSSLMODE, file.SSLMode, DefaultSSLMode)

	return cfg, nil
}

func applyAuth(cfg *foodetl.ConnectionConfig, cloud *CloudFlags, env *EnvVars, file *config.ConnectionConfig) error {
	switch {
	case cloud.AWS:
		cfg.AuthMethod = foodetl.AuthMethodAWSIAM
	case cloud.Google:
		cfg.AuthMethod = foodetl.AuthMethodGoogleIAM
	case cloud.Azure:
		cfg.AuthMethod = foodetl.AuthMethodAzureEntraID
	default:
		method, err := foodetl.ParseAuthMethod(file.AuthMethod)
		if err != nil {
			return err
		}
		cfg.AuthMethod = method
	}

	switch cfg.AuthMethod {
	case foodetl.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(cloud.AWSRegion, env.AWSRegion, file.AWSRegion)
	case foodetl.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(cloud.GoogleInstance, file.GoogleInstance)
	case foodetl.AuthMethodAzureEntraID:
		cfg.AzureTenantID = firstNonEmpty(cloud.AzureTenantID, env.AzureTenantID, file.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(cloud.AzureClientID, env.AzureClientID, file.AzureClientID)
		cfg.AzureClientSecret = env.AzureClientSecret
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
