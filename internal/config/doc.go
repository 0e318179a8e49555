// Package config provides configuration structures and utilities for
// cafscan. It defines the crawl options populated from CLI flags and
// the optional YAML file that tunes page readiness and link discovery
// for a site.
package config
