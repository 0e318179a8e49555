package model

import (
	"encoding/json"
	"testing"
)

// TestParseLink tests absolute URL validation.
func TestParseLink(t *testing.T) {
	t.Parallel()

	t.Run("accepts absolute URL", func(t *testing.T) {
		t.Parallel()

		link, err := ParseLink("https://example.com/collection/framework")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if link.String() != "https://example.com/collection/framework" {
			t.Errorf("unexpected link string: %q", link.String())
		}
		if link.Path() != "/collection/framework" {
			t.Errorf("unexpected path: %q", link.Path())
		}
	})

	t.Run("rejects relative URL", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseLink("/collection/framework"); err == nil {
			t.Error("expected error for relative URL, got nil")
		}
	})

	t.Run("rejects empty string", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseLink(""); err == nil {
			t.Error("expected error for empty string, got nil")
		}
	})
}

// TestResolve tests relative href resolution against a base link.
func TestResolve(t *testing.T) {
	t.Parallel()

	base, err := ParseLink("https://example.com/collection/framework")
	if err != nil {
		t.Fatalf("failed to parse base: %v", err)
	}

	t.Run("resolves relative href", func(t *testing.T) {
		t.Parallel()

		resolved := Resolve(base, "/collection/framework/objective-a")
		if resolved.String() != "https://example.com/collection/framework/objective-a" {
			t.Errorf("unexpected resolution: %q", resolved.String())
		}
	})

	t.Run("keeps absolute href", func(t *testing.T) {
		t.Parallel()

		resolved := Resolve(base, "https://other.example.com/page")
		if resolved.String() != "https://other.example.com/page" {
			t.Errorf("unexpected resolution: %q", resolved.String())
		}
	})

	t.Run("empty href yields zero link", func(t *testing.T) {
		t.Parallel()

		if resolved := Resolve(base, ""); !resolved.IsZero() {
			t.Errorf("expected zero link, got %q", resolved.String())
		}
	})
}

// TestLinkJSON tests that links serialize as plain URL strings.
func TestLinkJSON(t *testing.T) {
	t.Parallel()

	link, err := ParseLink("https://example.com/objective/a")
	if err != nil {
		t.Fatalf("failed to parse link: %v", err)
	}

	data, err := json.Marshal(link)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `"https://example.com/objective/a"` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back Link
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if back.String() != link.String() {
		t.Errorf("round trip mismatch: %q != %q", back.String(), link.String())
	}
}
