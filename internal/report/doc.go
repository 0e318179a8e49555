// Package report serializes crawled objectives into output documents.
//
// Two formats are supported: the canonical JSON dump (2-space
// indented, one document for the whole crawl) and a human-readable
// Markdown digest. Both run the rendered text through a punctuation
// normalization pass: a small closed table of non-ASCII substitutions
// the source site is known to emit, not a general Unicode
// normalization.
//
// Writers share the Writer interface so the CLI can fan one crawl out
// to several destinations with MultiWriter.
package report
