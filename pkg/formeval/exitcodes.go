package formeval

// Exit codes returned by the formeval CLI.
// These constants allow scripts wrapping the CLI to check exit codes
// symbolically rather than using magic numbers.
const (
	// ExitSuccess indicates the evaluation completed and scores were produced.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (unreadable or malformed form, failed pairs).
	ExitFailure = 1

	// ExitConfigError indicates a configuration or usage error (invalid config,
	// non-JSON paths, unsupported metric).
	ExitConfigError = 2
)
