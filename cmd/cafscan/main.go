// Package main provides the entry point for the cafscan CLI.
//
// cafscan crawls the NCSC Cyber Assessment Framework collection and
// serializes its objectives, principles, and contributing outcomes
// into a JSON document, with an optional Markdown digest.
//
// Usage:
//
//	cafscan scrape
//	cafscan scrape -o caf --markdown
//
// See --help for all available options.
package main

// main is the entry point for cafscan.
func main() {
	Execute()
}
