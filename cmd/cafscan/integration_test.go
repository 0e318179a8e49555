package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// newStubSite serves a miniature collection site: one collection page
// linking to one objective, which links to one principle with a full
// three-row contributing outcome table.
func newStubSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/collection/caf", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<a href="/collection/caf/caf-objective-a">Objective A</a>
			<a href="/about">About</a>
		</body></html>`))
	})

	mux.HandleFunc("/collection/caf/caf-objective-a", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<h1 class="subHeading">Objective A</h1>
			<a href="/collection/caf/principle-a1">A1</a>
		</body></html>`))
	})

	mux.HandleFunc("/collection/caf/principle-a1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<h1 class="subHeading">A1 Governance</h1>
			<div><h2>Principle</h2><p>You have effective security governance.</p></div>
			<div><h2>Description</h2><p>Board direction matters.</p></div>
			<div><h2>Guidance</h2><p>Put someone in charge.</p></div>
			<div class="pcf-BodyText">
				<h3>A1.a Board Direction</h3><em>You have effective board direction.</em>
				<table>
					<tr><th>Not achieved</th><th>Achieved</th></tr>
					<tr><td>At least one of the following</td><td>All of the following</td></tr>
					<tr><td><p>Security is not discussed.</p></td><td><p>Security is discussed.</p><p>Direction is set.</p></td></tr>
				</table>
			</div>
		</body></html>`))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return httptest.NewServer(mux)
}
