// Package model defines the plain data types produced by a crawl.
//
// The types here are deliberately free of network and parsing concerns:
// they are what the extraction pipeline emits and what the report
// writers consume. Entity orchestration (lazy fetching, memoization)
// lives in the caf package; this package only holds results.
//
//   - Link: a resolved absolute URL with a deterministic ordering key
//   - Table: a column-aligned PCF achievement table
//   - PCFBlock / PCFRecord: a PCF sub-section (heading, details, table)
//   - ObjectiveRecord / PrincipleRecord: the serialized crawl output
package model
