// Package render provides the page rendering collaborators used by the
// crawl: a headless-browser renderer for JS-built pages and a plain
// HTTP renderer for static content and tests.
//
// A Renderer does two things: an existence probe (a bare HTTP status
// check, where 404 means "nothing here") and a render, which returns
// the page source after waiting for a readiness condition. The wait is
// time-bounded and degradation is deliberate: on timeout the renderer
// logs a diagnostic and hands back whatever HTML the page had, because
// a partially rendered page still usually carries the content sections
// the extractors need.
//
// The browser session is an exclusive resource. A ChromeRenderer must
// not be shared across concurrent callers; parallel crawls take one
// session each (see pipeline.BatchCrawler).
package render
