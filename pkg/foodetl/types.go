package foodetl

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Inputs names the three raw dataset files of a run.
type Inputs struct {
	Users        string
	Recipes      string
	Interactions string
}

// DefaultInputs returns the conventional RAW_*.csv file names.
func DefaultInputs() Inputs {
	return Inputs{
		Users:        DefaultUsersFile,
		Recipes:      DefaultRecipesFile,
		Interactions: DefaultInteractionsFile,
	}
}

// Resolve joins relative file names onto dataDir. Absolute names are kept.
func (in Inputs) Resolve(dataDir string) Inputs {
	join := func(name string) string {
		if name == "" || filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dataDir, name)
	}
	return Inputs{
		Users:        join(in.Users),
		Recipes:      join(in.Recipes),
		Interactions: join(in.Interactions),
	}
}

// LoadConfig contains all parameters needed for a pipeline run.
type LoadConfig struct {
	// DataDir is the directory the input file names are resolved against.
	DataDir string

	// Inputs are the raw dataset files (relative to DataDir unless absolute).
	Inputs Inputs

	// Connection is the resolved target database connection.
	Connection *ConnectionConfig

	// Timeout is the global timeout for the entire run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("DataDir is required: %w", ErrInvalidConfig))
	}

	if c.Inputs.Users == "" || c.Inputs.Recipes == "" || c.Inputs.Interactions == "" {
		errs = append(errs, fmt.Errorf("all three input files are required: %w", ErrInvalidConfig))
	}

	if c.Connection == nil {
		errs = append(errs, fmt.Errorf("Connection is required: %w", ErrInvalidConfig))
	} else {
		if c.Connection.Database == "" {
			errs = append(errs, fmt.Errorf("database name is required: %w", ErrInvalidConfig))
		}
		if !c.Connection.AuthMethod.IsValid() {
			errs = append(errs, fmt.Errorf("auth method %v: %w", c.Connection.AuthMethod, ErrUnsupportedAuthMethod))
		}
		if c.Connection.RetryAttempts < 0 {
			errs = append(errs, fmt.Errorf("retry attempts cannot be negative: %w", ErrInvalidConfig))
		}
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// RetryAttempts is the number of extra connection attempts after a
	// transient failure. Zero disables retrying.
	RetryAttempts int

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	// If all three are provided, Service Principal authentication is used.
	// If none are provided, DefaultAzureCredential chain is used (env vars, managed identity, CLI, etc.)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for AuthMethodGoogleIAM.
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod maps the configuration file spelling of an auth method.
// An empty string means AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch s {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "google-iam":
		return AuthMethodGoogleIAM, nil
	case "azure", "azure-entra-id":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}
