// Package log provides the crawl's logging setup, built on top of the
// standard slog package.
//
// A crawl writes the same log stream to two places: the terminal, for
// watching progress, and a log file next to the output files, so that
// warnings about missing sections or padded tables survive the run
// and can be reviewed against the JSON dump. The TeeHandler fans each
// record out to both destinations.
//
// # Usage
//
//	logFile, _ := log.OpenLogFile("output")
//	defer logFile.Close()
//
//	logger := log.NewTeeLogger(os.Stderr, logFile, verbose)
//	slog.SetDefault(logger)
package log
