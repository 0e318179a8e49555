package model

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Link is a resolved absolute URL pointing at a page in the document
// hierarchy. It wraps *url.URL so that callers get resolution and path
// access for free while the JSON form stays a plain string.
type Link struct {
	u *url.URL
}

// ParseLink parses s as an absolute URL.
// Relative or scheme-less URLs are rejected: every Link in the system
// is the result of resolution against a known base, so a bare fragment
// here means the caller skipped that step.
func ParseLink(s string) (Link, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Link{}, fmt.Errorf("invalid link %q: %w", s, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Link{}, fmt.Errorf("link %q is not an absolute URL", s)
	}
	return Link{u: u}, nil
}

// Resolve resolves href against base and returns the absolute Link.
// An empty or unparsable href yields a zero Link; callers check IsZero.
func Resolve(base Link, href string) Link {
	if base.u == nil || href == "" {
		return Link{}
	}
	ref, err := url.Parse(href)
	if err != nil {
		return Link{}
	}
	return Link{u: base.u.ResolveReference(ref)}
}

// IsZero reports whether the link carries no URL.
func (l Link) IsZero() bool {
	return l.u == nil
}

// String returns the full URL string.
func (l Link) String() string {
	if l.u == nil {
		return ""
	}
	return l.u.String()
}

// Path returns the URL path component. It is the ordering key used for
// deterministic link sorting: discovery order on a rendered page is not
// stable, the path string is.
func (l Link) Path() string {
	if l.u == nil {
		return ""
	}
	return l.u.Path
}

// URL returns a copy of the underlying URL.
func (l Link) URL() *url.URL {
	if l.u == nil {
		return nil
	}
	clone := *l.u
	return &clone
}

// MarshalJSON encodes the link as its URL string.
func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a URL string back into a Link.
func (l *Link) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLink(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
