// Package extract pulls structured content out of rendered principle
// and objective pages.
//
// The extraction rules are heading-anchored heuristics tied to one
// known document structure: labeled sections are found by matching h2
// text against a small declarative table of (label, pattern, sentinel)
// entries, and PCF achievement tables are parsed from a fixed
// three-row layout.
//
// Error posture is asymmetric on purpose. A missing heading, paragraph
// or cell degrades to a sentinel value with a logged diagnostic so the
// crawl keeps moving. A table that does not have exactly three rows is
// the one fatal case: the transposition algorithm is built on that
// shape, so a different row count means the source format changed and
// these extraction rules are stale.
package extract
