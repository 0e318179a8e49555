package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ncsc-tools/cafscan/internal/model"
	"github.com/ncsc-tools/cafscan/internal/render"
)

// TestAnchorParser tests href extraction and filtering.
func TestAnchorParser(t *testing.T) {
	t.Parallel()

	base, err := model.ParseLink("https://example.com/collection/framework")
	if err != nil {
		t.Fatalf("failed to parse base: %v", err)
	}

	t.Run("keeps only matching hrefs", func(t *testing.T) {
		t.Parallel()

		source := `<html><body>
			<a href="/collection/framework/caf-objective-a">A</a>
			<a href="/about">About</a>
			<a href="/collection/framework/caf-objective-b">B</a>
			<a>no href</a>
		</body></html>`

		links, err := newAnchorParser(base).links(strings.NewReader(source), "objective")
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		if len(links) != 2 {
			t.Fatalf("expected 2 links, got %d: %v", len(links), links)
		}
		if links[0].String() != "https://example.com/collection/framework/caf-objective-a" {
			t.Errorf("unexpected link: %q", links[0].String())
		}
	})

	t.Run("skips scheme-only hrefs", func(t *testing.T) {
		t.Parallel()

		source := `<html><body>
			<a href="mailto:objective@example.com">mail</a>
			<a href="javascript:showObjective()">js</a>
			<a href="/caf-objective-a">A</a>
		</body></html>`

		links, err := newAnchorParser(base).links(strings.NewReader(source), "objective")
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		if len(links) != 1 {
			t.Fatalf("expected 1 link, got %d: %v", len(links), links)
		}
	})
}

// TestDiscover tests end-to-end link discovery against a stub site.
func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("sorts links by path regardless of document order", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body>
				<a href="/objective/b">B</a>
				<a href="/objective/a">A</a>
			</body></html>`))
		}))
		defer srv.Close()

		d := NewDiscoverer(render.NewStaticRenderer())
		links, err := d.Discover(context.Background(), srv.URL, render.Readiness{Selector: "a[href*='objective']", Wait: render.WaitVisible}, "objective")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(links) != 2 {
			t.Fatalf("expected 2 links, got %d", len(links))
		}
		if links[0].Path() != "/objective/a" || links[1].Path() != "/objective/b" {
			t.Errorf("links not sorted by path: %v, %v", links[0].Path(), links[1].Path())
		}
	})

	t.Run("not found short-circuits without rendering", func(t *testing.T) {
		t.Parallel()

		var renders int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			renders++
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		d := NewDiscoverer(render.NewStaticRenderer())
		links, err := d.Discover(context.Background(), srv.URL, render.Readiness{}, "objective")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 0 {
			t.Errorf("expected no links, got %d", len(links))
		}
		// One request for the probe, none for rendering.
		if renders != 1 {
			t.Errorf("expected 1 request (probe only), got %d", renders)
		}
	})

	t.Run("rejects invalid page URL", func(t *testing.T) {
		t.Parallel()

		d := NewDiscoverer(render.NewStaticRenderer())
		if _, err := d.Discover(context.Background(), "not-a-url", render.Readiness{}, "objective"); err == nil {
			t.Error("expected error for invalid URL, got nil")
		}
	})
}
