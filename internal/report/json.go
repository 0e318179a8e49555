package report

import (
	"encoding/json"
	"io"

	"github.com/ncsc-tools/cafscan/internal/model"
)

// JSONWriter outputs the canonical structured dump of a crawl.
//
// Design decision: We use standard encoding/json rather than a
// third-party JSON library because MarshalIndent already produces the
// 2-space indented document the output contract asks for; the only
// post-processing needed is the punctuation normalization pass.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output. The crawl dump is meant
	// to be read by humans, so the CLI always enables it; compact
	// output exists for tests and piping.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables 2-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write serializes the objectives, normalizes the rendered text, and
// writes it out followed by a trailing newline.
func (w *JSONWriter) Write(objectives []model.ObjectiveRecord) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(objectives, "", "  ")
	} else {
		data, err = json.Marshal(objectives)
	}
	if err != nil {
		return 0, err
	}

	normalized := append([]byte(Normalize(string(data))), '\n')
	return w.output.Write(normalized)
}
