// Package pipeline orchestrates a crawl as a sequence of steps.
//
// A run moves through three stages: discovering objective links on
// the collection page, crawling each objective into its record, and
// writing the output documents. Each stage is implemented as a Step
// that receives the current run state and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct
// function calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running crawls
//
// Objective crawling supports concurrency via BatchCrawler, which
// gives each worker its own browser session.
package pipeline
