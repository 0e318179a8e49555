// Package database provides SQLite-based persistence for crawled
// page sources. The cache lets repeated runs against the same site
// skip the headless browser entirely, which matters because a single
// scripted render takes seconds while a cache read is instant.
package database
