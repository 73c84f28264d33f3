package foodetl

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess             = 0  // Pipeline completed successfully
	ExitGeneralError        = 1  // Unknown or unclassified error
	ExitUsageError          = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic               = 3  // Internal panic (unexpected crash)
	ExitConfigError         = 10 // Invalid configuration
	ExitConnectionError     = 11 // Failed to connect to database
	ExitInputError          = 12 // Input file missing or malformed
	ExitTransformFailed     = 13 // Cleaning or derivation failed
	ExitSchemaFailed        = 14 // Table creation failed
	ExitConstraintViolation = 15 // Append rejected by a key constraint
)

const (
	// DefaultTimeout bounds a whole pipeline run.
	DefaultTimeout = 10 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first
	// connection retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between connection retries.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is zero: a failed connection is reported, not retried.
	DefaultRetryMaxAttempts = 0

	// DefaultAppName is reported to PostgreSQL as application_name.
	DefaultAppName = "foodetl"

	// Default input file names, resolved relative to the data directory.
	DefaultUsersFile        = "RAW_users.csv"
	DefaultRecipesFile      = "RAW_recipes.csv"
	DefaultInteractionsFile = "RAW_interactions.csv"
)
