package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to
// use errors.Is() for programmatic error handling while still
// providing human-readable messages.
var (
	// ErrNoBaseURL is returned when the crawl has no starting page.
	ErrNoBaseURL = errors.New("no base URL specified")

	// ErrNoOutputStem is returned when the output stem is empty.
	// The stem names the JSON dump, the Markdown digest, and the log
	// file, so it cannot be blank.
	ErrNoOutputStem = errors.New("no output stem specified")

	// ErrInvalidReadyTimeout is returned when the readiness timeout
	// is not positive. A zero timeout would capture every page before
	// its scripted content has rendered.
	ErrInvalidReadyTimeout = errors.New("invalid ready timeout: must be positive")

	// ErrInvalidProbeTimeout is returned when the probe timeout is
	// not positive.
	ErrInvalidProbeTimeout = errors.New("invalid probe timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not
	// positive. A batch size of zero would mean no crawling at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")
)
