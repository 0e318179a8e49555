package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ncsc-tools/cafscan/internal/model"
)

// absentCell is rendered where a table column ran out of criteria.
const absentCell = "—"

// MarkdownWriter outputs a human-readable digest of the crawl.
// The JSON dump is the canonical output; the digest exists for review
// and sharing.
type MarkdownWriter struct {
	baseWriter

	// caser title-cases section labels for display.
	caser cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the
// given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		caser:      cases.Title(language.BritishEnglish),
	}
}

// Write outputs the objectives as a Markdown document.
func (w *MarkdownWriter) Write(objectives []model.ObjectiveRecord) (int, error) {
	var buf strings.Builder
	md := markdown.NewMarkdown(&buf)

	md.H1("Cyber Assessment Framework")
	md.PlainText("")

	for _, objective := range objectives {
		w.writeObjective(md, objective)
	}

	md.HorizontalRule()
	md.PlainTextf("*%d objectives*", len(objectives))

	if err := md.Build(); err != nil {
		return 0, err
	}
	return w.output.Write([]byte(Normalize(buf.String())))
}

// writeObjective writes one objective and its principles.
func (w *MarkdownWriter) writeObjective(md *markdown.Markdown, objective model.ObjectiveRecord) {
	md.H2(objective.Heading)
	md.PlainTextf("*Source: %s*", objective.Link.String())
	md.PlainText("")

	for _, principle := range objective.Principles {
		w.writePrinciple(md, principle)
	}
}

// writePrinciple writes one principle's sections and PCF tables.
func (w *MarkdownWriter) writePrinciple(md *markdown.Markdown, principle model.PrincipleRecord) {
	md.H3(principle.Heading)
	md.PlainTextf("*Source: %s*", principle.Link.String())
	md.PlainText("")

	sections := []struct {
		label string
		texts []string
	}{
		{"principle", principle.PrincipleStatements},
		{"description", principle.Description},
		{"guidance", principle.Guidance},
	}
	for _, sec := range sections {
		md.H4(w.caser.String(sec.label))
		md.BulletList(sec.texts...)
		md.PlainText("")
	}

	for _, pcf := range principle.PCFs {
		w.writePCF(md, pcf)
	}
}

// writePCF writes one PCF block with its achievement table.
func (w *MarkdownWriter) writePCF(md *markdown.Markdown, pcf model.PCFBlock) {
	md.H4(pcf.Heading)
	for _, detail := range pcf.Details {
		md.PlainTextf("*%s*", detail)
	}
	md.PlainText("")

	rows := make([][]string, 0, len(pcf.Table.Rows)+1)
	rows = append(rows, pcf.Table.Subheaders)
	for _, row := range pcf.Table.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell == nil {
				cells[i] = absentCell
			} else {
				cells[i] = *cell
			}
		}
		rows = append(rows, cells)
	}

	md.Table(markdown.TableSet{
		Header: pcf.Table.Columns,
		Rows:   rows,
	})
	md.PlainText("")
}
