// Package crawler discovers child links in the document hierarchy.
//
// The hierarchy is fixed: a collection page links to objective pages,
// each objective page links to principle pages. Discovery is the same
// operation at both levels, parameterized by a readiness condition and
// an href substring filter ("objective" or "principle").
//
// Discovery is resilient by contract: a 404 on the existence probe
// yields an empty result, a readiness timeout yields whatever links
// the partial page carries, and both paths log diagnostics instead of
// failing. The one hard requirement is determinism: results are sorted
// ascending by URL path, never by discovery order.
package crawler
