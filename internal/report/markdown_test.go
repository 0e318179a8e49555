package report

import (
	"bytes"
	"strings"
	"testing"
)

// TestMarkdownWriter tests the human-readable digest writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes document header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestObjectives())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Cyber Assessment Framework") {
			t.Error("expected output to contain document title")
		}
		if !strings.Contains(output, "*1 objectives*") {
			t.Error("expected output to contain objective count")
		}
	})

	t.Run("writes objective and principle headings with sources", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestObjectives())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Objective A: Managing security risk") {
			t.Error("expected output to contain objective heading")
		}
		if !strings.Contains(output, "### A1 Governance") {
			t.Error("expected output to contain principle heading")
		}
		if !strings.Contains(output, "https://example.com/collection/caf/principle-a1") {
			t.Error("expected output to contain principle source URL")
		}
	})

	t.Run("title-cases section labels", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestObjectives())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, label := range []string{"#### Principle", "#### Description", "#### Guidance"} {
			if !strings.Contains(output, label) {
				t.Errorf("expected output to contain section heading %q", label)
			}
		}
	})

	t.Run("writes achievement tables with subheader row first", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestObjectives())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Not achieved") || !strings.Contains(output, "Achieved") {
			t.Error("expected output to contain achievement columns")
		}

		subheaderAt := strings.Index(output, "At least one of the following")
		criterionAt := strings.Index(output, "Security is not discussed.")
		if subheaderAt < 0 || criterionAt < 0 {
			t.Fatal("expected output to contain subheader and criterion")
		}
		if subheaderAt > criterionAt {
			t.Error("expected subheader row before criteria rows")
		}
	})

	t.Run("renders absent criteria with placeholder", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestObjectives())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), absentCell) {
			t.Error("expected placeholder for absent criterion")
		}
	})

	t.Run("normalizes punctuation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestObjectives())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "’") || strings.Contains(output, " ") {
			t.Error("expected punctuation substitutions to be applied")
		}
	})
}
