package exitcode

// Exit codes for the firefetch CLI.
// Orchestrators (cron wrappers, Airflow, etc.) can use these to decide
// whether a rerun makes sense.
const (
	// Success - run completed; per-event failures are reported in logs
	// and the run summary, not in the exit code
	Success = 0

	// ConfigError - missing or invalid configuration
	// Don't retry: fix the config first
	ConfigError = 1

	// AuthError - catalog session handshake failed (bad key, bad project)
	// Check credentials, may need manual intervention
	AuthError = 2

	// DataError - input CSV missing or unusable
	// Don't retry: investigate the data
	DataError = 3

	// StorageError - failed to prepare the output directory or object store
	// Retry with backoff
	StorageError = 4
)
