// Package caf models the Cyber Assessment Framework document
// hierarchy as lazily-computed entities.
//
// An Objective wraps a top-level link discovered on the collection
// page; a Principle wraps a child link discovered on an objective
// page. Neither touches the network at construction time. The first
// access of any computed field triggers a single page render, and
// every field is parsed at most once per entity and memoized for the
// entity's lifetime: repeated or concurrent reads return the same
// cached value without re-fetching.
//
// An Objective owns its Principles exclusively; the renderer is a
// shared collaborator owned by the caller.
package caf
