package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ncsc-tools/cafscan/internal/model"
)

// expectedTableRows is the row count the PCF table format guarantees:
// headers, subheaders, grouped criteria cells.
const expectedTableRows = 3

// ErrTableShape reports a PCF table whose row count breaks the fixed
// three-row contract. It is the single fatal error of the extraction
// pipeline: the transposition below assumes the shape, so a violation
// means the site changed format and the whole run must stop rather
// than emit silently wrong tables.
var ErrTableShape = errors.New("extraction only supports three row pcf tables")

// Table parses a PCF achievement table element into a column-aligned
// model.Table.
//
// Row 0 provides the column headers, row 1 one subheader cell per
// column. Row 2 holds one cell per column, each carrying that column's
// criteria as individual paragraphs; these per-column sequences are
// transposed index-by-index into output rows, padding shorter columns
// with nil so the output row count equals the longest column.
func Table(sel *goquery.Selection) (model.Table, error) {
	rows := sel.Find("tr")
	if rows.Length() != expectedTableRows {
		return model.Table{}, fmt.Errorf("%w: got %d rows", ErrTableShape, rows.Length())
	}

	var columns []string
	rows.Eq(0).Find("th").Each(func(_ int, th *goquery.Selection) {
		columns = append(columns, strings.TrimSpace(th.Text()))
	})

	var subheaders []string
	rows.Eq(1).Find("td").Each(func(_ int, td *goquery.Selection) {
		subheaders = append(subheaders, strings.TrimSpace(td.Text()))
	})

	// The criteria of a single column are grouped in one td, separated
	// individually by p tags.
	var perColumn [][]string
	rows.Eq(2).Find("td").Each(func(_ int, td *goquery.Selection) {
		var fragments []string
		td.Find("p").Each(func(_ int, p *goquery.Selection) {
			fragments = append(fragments, strings.TrimSpace(p.Text()))
		})
		perColumn = append(perColumn, fragments)
	})

	return model.Table{
		Columns:    columns,
		Subheaders: subheaders,
		Rows:       transpose(perColumn),
	}, nil
}

// transpose zips the per-column fragment sequences into rows, padding
// exhausted columns with nil. Rows are never truncated to the shortest
// column: absence must stay visible in the output.
func transpose(perColumn [][]string) [][]*string {
	longest := 0
	for _, col := range perColumn {
		if len(col) > longest {
			longest = len(col)
		}
	}

	rows := make([][]*string, 0, longest)
	for i := 0; i < longest; i++ {
		row := make([]*string, len(perColumn))
		for j, col := range perColumn {
			if i < len(col) {
				row[j] = &col[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
