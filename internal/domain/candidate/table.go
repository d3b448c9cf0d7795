package candidate

import (
	"fmt"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// Header is the ordered column list of a table.
type Header struct {
	columns   []string
	index     map[string]int
	smilesCol int
	smilesKey string
}

// Columns returns a copy of the column names in source order.
func (h *Header) Columns() []string {
	return append([]string(nil), h.columns...)
}

// Has reports whether the header contains column.
func (h *Header) Has(column string) bool {
	_, ok := h.index[column]
	return ok
}

// SMILESColumn returns the name of the descriptor column.
func (h *Header) SMILESColumn() string { return h.smilesKey }

// Table is an ordered set of records sharing one header.
type Table struct {
	header  *Header
	records []*Record
}

// NewTable builds an empty table.  smilesColumn names the descriptor column
// and defaults to ColumnSMILES; it must be present in columns.
func NewTable(columns []string, smilesColumn string) (*Table, error) {
	if smilesColumn == "" {
		smilesColumn = ColumnSMILES
	}
	h := &Header{
		columns:   append([]string(nil), columns...),
		index:     make(map[string]int, len(columns)),
		smilesCol: -1,
		smilesKey: smilesColumn,
	}
	for i, c := range columns {
		if _, dup := h.index[c]; dup {
			return nil, errors.New(errors.ErrCodeTableMalformed, "duplicate column").
				WithDetail(fmt.Sprintf("column=%s", c))
		}
		h.index[c] = i
		if c == smilesColumn {
			h.smilesCol = i
		}
	}
	if h.smilesCol < 0 {
		return nil, errors.New(errors.ErrCodeTableColumnMissing, "required column not found").
			WithDetail(fmt.Sprintf("column=%s", smilesColumn))
	}
	return &Table{header: h}, nil
}

// Append adds one row.  The row must have exactly one value per column.
func (t *Table) Append(values []string) (*Record, error) {
	if len(values) != len(t.header.columns) {
		return nil, errors.New(errors.ErrCodeTableMalformed, "row width does not match header").
			WithDetail(fmt.Sprintf("row=%d want=%d got=%d", len(t.records), len(t.header.columns), len(values)))
	}
	r := &Record{
		Index:  len(t.records),
		Values: values,
		SMILES: values[t.header.smilesCol],
		header: t.header,
	}
	t.records = append(t.records, r)
	return r, nil
}

// Header returns the table header.
func (t *Table) Header() *Header { return t.header }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns the records in order.  Callers must not modify the slice.
func (t *Table) Records() []*Record { return t.records }

// Record returns the i-th record.
func (t *Table) Record(i int) *Record { return t.records[i] }

// Column returns the values of column for every record, or nil when the
// column does not exist.
func (t *Table) Column(name string) []string {
	i, ok := t.header.index[name]
	if !ok {
		return nil
	}
	out := make([]string, len(t.records))
	for j, r := range t.records {
		out[j] = r.Values[i]
	}
	return out
}

// Filter returns a new table holding the records whose keep flag is set.
// Order is preserved and records are shared, not copied.
func (t *Table) Filter(keep []bool) (*Table, error) {
	if len(keep) != len(t.records) {
		return nil, errors.New(errors.ErrCodeInternal, "keep mask length mismatch").
			WithDetail(fmt.Sprintf("records=%d mask=%d", len(t.records), len(keep)))
	}
	out := &Table{header: t.header}
	for i, r := range t.records {
		if keep[i] {
			out.records = append(out.records, r)
		}
	}
	return out, nil
}

// UniqueSMILES counts distinct descriptor strings by exact text equality.
func (t *Table) UniqueSMILES() int {
	seen := make(map[string]struct{}, len(t.records))
	for _, r := range t.records {
		seen[r.SMILES] = struct{}{}
	}
	return len(seen)
}

// GroupCount counts records by the value of column.  It returns nil when the
// column does not exist.
func (t *Table) GroupCount(column string) map[string]int {
	if !t.header.Has(column) {
		return nil
	}
	out := make(map[string]int)
	for _, r := range t.records {
		v, _ := r.Get(column)
		out[v]++
	}
	return out
}

//Personal.AI order the ending
