package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the collection page the crawl starts from.
	// The whole document hierarchy (objectives, principles, tables) is
	// discovered by following links from this page.
	DefaultBaseURL = "https://www.ncsc.gov.uk/collection/cyber-assessment-framework"

	// DefaultOutputStem is the base name for output files. The JSON
	// dump is written to "<stem>.json", the optional Markdown digest
	// to "<stem>.md", and the log file to "<stem>.log".
	DefaultOutputStem = "output"

	// DefaultReadyTimeout is how long to wait for a page's readiness
	// element before capturing a possibly incomplete page source.
	// The site renders its content client-side; 10 seconds covers the
	// scripted render on a typical connection.
	DefaultReadyTimeout = 10 * time.Second

	// DefaultProbeTimeout bounds the plain HTTP existence check that
	// runs before a page is handed to the browser.
	DefaultProbeTimeout = 30 * time.Second

	// DefaultBatchSize of 1 crawls objectives sequentially. The site
	// is small (four objectives), so concurrency is an opt-in for
	// mirrors or large collections rather than the default. Each
	// batch worker runs its own browser session.
	DefaultBatchSize = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "cafscan"
)

// Config holds all configuration options for a crawl.
// This struct is designed to be populated from CLI flags and passed
// through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested
// structs for simplicity. The number of options is manageable, and
// nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the collection page the crawl starts from.
	BaseURL string

	// OutputStem is the base name for output files, without extension.
	// May include a directory component.
	OutputStem string

	// ReadyTimeout is how long to wait for a page's readiness element
	// before settling for whatever the browser has rendered.
	ReadyTimeout time.Duration

	// ProbeTimeout bounds the HTTP existence check per page.
	ProbeTimeout time.Duration

	// BatchSize is the number of objectives crawled concurrently.
	// Each worker runs its own browser session.
	BatchSize int

	// Markdown additionally writes a human-readable digest next to
	// the JSON dump.
	Markdown bool

	// NoBrowser fetches pages with a plain HTTP client instead of a
	// headless browser. The live site needs scripting to render its
	// content, so this is mainly useful against static mirrors and in
	// tests.
	NoBrowser bool

	// NoCache disables the SQLite page cache, forcing every page to
	// be fetched fresh.
	NoCache bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only informational messages and above are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .cafscan in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// Site holds the site tuning loaded from the config file, if any.
	Site *File

	// DBDir is the directory for the SQLite page cache database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying
// on zero values because most defaults are non-zero. This also serves
// as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		OutputStem:   DefaultOutputStem,
		ReadyTimeout: DefaultReadyTimeout,
		ProbeTimeout: DefaultProbeTimeout,
		BatchSize:    DefaultBatchSize,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for cafscan.
// On Linux: ~/.local/share/cafscan
// On macOS: ~/Library/Application Support/cafscan
// On Windows: %LOCALAPPDATA%\cafscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for cafscan.
// On Linux: ~/.config/cafscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}

	if c.OutputStem == "" {
		return ErrNoOutputStem
	}

	// Zero timeout would capture pages before scripting has run
	if c.ReadyTimeout <= 0 {
		return ErrInvalidReadyTimeout
	}

	if c.ProbeTimeout <= 0 {
		return ErrInvalidProbeTimeout
	}

	// BatchSize must be positive; zero would mean no crawling
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	return nil
}
