package report

import (
	"io"

	"github.com/ncsc-tools/cafscan/internal/model"
)

// Writer outputs a crawl's objectives in some format.
//
// Design decision: We use an interface so the CLI can write to files,
// stdout, or both with the same API, and so tests can write to
// buffers.
type Writer interface {
	// Write outputs the objectives to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(objectives []model.ObjectiveRecord) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously, stopping on
// the first error. Unlike io.MultiWriter it fans out records, not raw
// bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the objectives to all configured Writers.
// Returns the total bytes written across all writers.
func (m *MultiWriter) Write(objectives []model.ObjectiveRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(objectives)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
