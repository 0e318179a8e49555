package model

import (
	"encoding/json"
	"testing"
)

func strptr(s string) *string { return &s }

// TestTableColumnValues tests the column-wise value view of a table.
func TestTableColumnValues(t *testing.T) {
	t.Parallel()

	table := Table{
		Columns:    []string{"Achieved", "Not achieved"},
		Subheaders: []string{"At least one of the following statements is true", "All the following statements are true"},
		Rows: [][]*string{
			{strptr("c1a"), strptr("c2a")},
			{strptr("c1b"), nil},
		},
	}

	t.Run("subheader leads the value list", func(t *testing.T) {
		t.Parallel()

		values := table.ColumnValues(0)
		if len(values) != 3 {
			t.Fatalf("expected 3 values, got %d", len(values))
		}
		if *values[0] != "At least one of the following statements is true" {
			t.Errorf("unexpected first value: %q", *values[0])
		}
		if *values[1] != "c1a" || *values[2] != "c1b" {
			t.Errorf("unexpected criteria values: %v, %v", values[1], values[2])
		}
	})

	t.Run("padded positions stay nil", func(t *testing.T) {
		t.Parallel()

		values := table.ColumnValues(1)
		if values[2] != nil {
			t.Errorf("expected nil padding, got %q", *values[2])
		}
	})
}

// TestTableMarshalJSON tests the column-keyed serialized form.
func TestTableMarshalJSON(t *testing.T) {
	t.Parallel()

	table := Table{
		Columns:    []string{"Achieved", "Not achieved"},
		Subheaders: []string{"sub-a", "sub-b"},
		Rows: [][]*string{
			{strptr("c1a"), strptr("c2a")},
			{strptr("c1b"), nil},
		},
	}

	data, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	want := `{"Achieved":["sub-a","c1a","c1b"],"Not achieved":["sub-b","c2a",null]}`
	if string(data) != want {
		t.Errorf("unexpected JSON:\ngot  %s\nwant %s", data, want)
	}
}
