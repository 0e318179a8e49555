package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ncsc-tools/cafscan/internal/model"
)

// Sentinels for PCF block parts that can be individually absent.
const (
	pcfHeadingSentinel = "error determining pcf heading"
	pcfDetailsSentinel = "error determining pcf details"
)

// Blocks extracts every PCF block from a principle page: the
// div.pcf-BodyText containers that hold a table. Containers without a
// table are navigation text in the same styling and are skipped.
//
// No qualifying blocks is a warning, not an error; some principles
// simply have none. The only error Blocks can return is ErrTableShape
// from the contained table, which aborts with no partial result.
func (e *Extractor) Blocks(doc *goquery.Document, pageURL string) ([]model.PCFBlock, error) {
	candidates := doc.Find("div.pcf-BodyText").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("table").Length() > 0
	})

	if candidates.Length() == 0 {
		e.logger.Warn("unable to determine pcfs", "url", pageURL)
		return []model.PCFBlock{}, nil
	}

	blocks := make([]model.PCFBlock, 0, candidates.Length())
	var tableErr error

	candidates.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		block := model.PCFBlock{
			Heading: e.blockHeading(s, pageURL),
			Details: e.blockDetails(s, pageURL),
		}

		table, err := Table(s.Find("table").First())
		if err != nil {
			tableErr = err
			return false
		}
		block.Table = table

		blocks = append(blocks, block)
		return true
	})

	if tableErr != nil {
		return nil, tableErr
	}
	return blocks, nil
}

// blockHeading returns the block's h3 text, or the sentinel.
func (e *Extractor) blockHeading(s *goquery.Selection, pageURL string) string {
	h3 := s.Find("h3").First()
	if h3.Length() == 0 {
		e.logger.Warn("unable to determine pcf heading", "url", pageURL)
		return pcfHeadingSentinel
	}
	return strings.TrimSpace(h3.Text())
}

// blockDetails returns the block's emphasised notes, or the sentinel
// sequence.
func (e *Extractor) blockDetails(s *goquery.Selection, pageURL string) []string {
	ems := s.Find("em")
	if ems.Length() == 0 {
		e.logger.Warn("unable to determine pcf details", "url", pageURL)
		return []string{pcfDetailsSentinel}
	}

	details := make([]string, 0, ems.Length())
	ems.Each(func(_ int, em *goquery.Selection) {
		details = append(details, strings.TrimSpace(em.Text()))
	})
	return details
}
