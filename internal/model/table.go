package model

import (
	"bytes"
	"encoding/json"
)

// Table is a column-aligned PCF achievement table.
//
// The source format is fixed at three rows: column headers (typically
// "Achieved" / "Not achieved"), one subheader per column, and a final
// row whose cells each hold the criteria paragraphs for that column.
// After transposition, Rows[i][j] is column j's i-th criterion; columns
// with fewer criteria than the longest are padded with nil, the absent
// marker. Padding is explicit so that the row count always equals the
// longest column's criteria count and nothing is silently truncated.
type Table struct {
	// Columns holds the header cell texts in document order.
	Columns []string `json:"columns"`

	// Subheaders holds one subheader cell text per column.
	Subheaders []string `json:"subheaders"`

	// Rows holds the transposed criteria. A nil entry marks a position
	// where the column ran out of criteria.
	Rows [][]*string `json:"rows"`
}

// ColumnValues returns the ordered value list for column index i:
// the subheader first, then each row's entry for that column.
// Absent entries stay nil so padding survives serialization.
func (t Table) ColumnValues(i int) []*string {
	values := make([]*string, 0, len(t.Rows)+1)
	if i < len(t.Subheaders) {
		sub := t.Subheaders[i]
		values = append(values, &sub)
	}
	for _, row := range t.Rows {
		if i < len(row) {
			values = append(values, row[i])
		} else {
			values = append(values, nil)
		}
	}
	return values
}

// MarshalJSON encodes the table as a mapping of column name to its
// ordered value list, preserving column order. Padded entries appear
// as JSON null. This is the lossless serialized form of the table;
// the struct form above is the working representation.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range t.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		vals, err := json.Marshal(t.ColumnValues(i))
		if err != nil {
			return nil, err
		}
		buf.Write(vals)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
