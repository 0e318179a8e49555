package config

// Readiness names the element a page must show before its source is
// captured, and how to wait for it.
type Readiness struct {
	// Selector is a CSS selector for the readiness element.
	Selector string `yaml:"selector,omitempty"`

	// Wait is either "visible" or "present". Visible waits for the
	// element to be displayed; present only requires it in the DOM.
	Wait string `yaml:"wait,omitempty"`
}

// IsZero reports whether the readiness override is unset.
func (r Readiness) IsZero() bool {
	return r.Selector == "" && r.Wait == ""
}

// File represents the structure of the .cafscan configuration file.
// It tunes link discovery and page readiness for a site; everything
// here has a built-in default matching the live site, so the file is
// only needed when crawling mirrors or when the site structure moves.
type File struct {
	// BaseURL overrides the collection page the crawl starts from.
	BaseURL string `yaml:"baseURL,omitempty"`

	// ObjectiveLinkFilter is the substring an href must contain to be
	// treated as an objective link on the collection page.
	ObjectiveLinkFilter string `yaml:"objectiveLinkFilter,omitempty"`

	// PrincipleLinkFilter is the substring an href must contain to be
	// treated as a principle link on an objective page.
	PrincipleLinkFilter string `yaml:"principleLinkFilter,omitempty"`

	// ObjectiveReadiness overrides the element waited for on
	// collection and objective pages before link discovery.
	ObjectiveReadiness Readiness `yaml:"objectiveReadiness,omitempty"`

	// PrincipleReadiness overrides the element waited for on
	// principle pages before section extraction.
	PrincipleReadiness Readiness `yaml:"principleReadiness,omitempty"`
}

// Apply attaches the file to c and fills in its base URL override.
// A base URL given on the command line wins over the file, so the
// override only lands when the flag was left at the default.
func (cf *File) Apply(c *Config) {
	if cf.BaseURL != "" && c.BaseURL == DefaultBaseURL {
		c.BaseURL = cf.BaseURL
	}
	c.Site = cf
}
