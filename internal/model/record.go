package model

// PCFBlock is one "Principle/Criteria/Framework" sub-section of a
// principle page: a heading, emphasised detail notes, and exactly one
// achievement table.
type PCFBlock struct {
	// Heading is the block's h3 text, or the sentinel when absent.
	Heading string `json:"heading"`

	// Details holds the emphasised notes, or the sentinel sequence.
	Details []string `json:"details"`

	// Table is the block's achievement table.
	Table Table `json:"table"`
}

// PrincipleRecord is the serialized form of a crawled principle page.
// Sequence fields may carry sentinel values when the page was missing
// the expected section; they are never nil after a successful crawl.
type PrincipleRecord struct {
	Link                Link       `json:"link"`
	Heading             string     `json:"heading"`
	PrincipleStatements []string   `json:"principle"`
	Description         []string   `json:"description"`
	Guidance            []string   `json:"guidance"`
	PCFs                []PCFBlock `json:"pcfs"`
}

// ObjectiveRecord is the serialized form of a crawled objective page
// together with all of its principles, in discovery-sorted order.
type ObjectiveRecord struct {
	Link       Link              `json:"link"`
	Heading    string            `json:"heading"`
	Principles []PrincipleRecord `json:"principles"`
}
