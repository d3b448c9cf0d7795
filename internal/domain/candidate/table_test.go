package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/internal/domain/molecule"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

func newTestTable(t *testing.T, rows ...[]string) *Table {
	t.Helper()
	tbl, err := NewTable([]string{ColumnID, ColumnSMILES, ColumnSimilarity, ColumnResultRank, ColumnParentMol, ColumnMethod}, "")
	require.NoError(t, err)
	for _, row := range rows {
		_, err := tbl.Append(row)
		require.NoError(t, err)
	}
	return tbl
}

func TestNewTable(t *testing.T) {
	tbl, err := NewTable([]string{"id", "smiles"}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"id", "smiles"}, tbl.Header().Columns())
	assert.Equal(t, ColumnSMILES, tbl.Header().SMILESColumn())

	_, err = NewTable([]string{"id", "name"}, "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableColumnMissing))

	_, err = NewTable([]string{"id", "structure"}, "structure")
	require.NoError(t, err)

	_, err = NewTable([]string{"smiles", "id", "id"}, "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableMalformed))
}

func TestTable_AppendRagged(t *testing.T) {
	tbl := newTestTable(t)
	_, err := tbl.Append([]string{"1", "CCO"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTableMalformed))
	assert.Equal(t, 0, tbl.Len())
}

func TestRecord_Accessors(t *testing.T) {
	tbl := newTestTable(t,
		[]string{"Z1", "CCO", "0.87", "12", "hit_3", MethodAnalogHunter},
		[]string{"Z2", "CCN", "", "12.0", "hit_3", MethodScaffoldHopper},
		[]string{"Z3", "CCC", "n/a", "x", "", ""},
	)
	r := tbl.Record(0)
	assert.Equal(t, 0, r.Index)
	assert.Equal(t, "CCO", r.SMILES)
	assert.Equal(t, "Z1", r.ID())
	assert.Equal(t, "hit_3", r.ParentMol())
	assert.Equal(t, MethodAnalogHunter, r.Method())

	sim, ok := r.Similarity()
	assert.True(t, ok)
	assert.InDelta(t, 0.87, sim, 1e-9)
	rank, ok := r.ResultRank()
	assert.True(t, ok)
	assert.Equal(t, 12, rank)

	rank, ok = tbl.Record(1).ResultRank()
	assert.True(t, ok)
	assert.Equal(t, 12, rank)
	_, ok = tbl.Record(1).Similarity()
	assert.False(t, ok)

	_, ok = tbl.Record(2).Similarity()
	assert.False(t, ok)
	_, ok = tbl.Record(2).ResultRank()
	assert.False(t, ok)

	_, ok = r.LogP()
	assert.False(t, ok, "column absent from header")
	_, ok = r.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", r.QueryName())
}

func TestRecord_Attach(t *testing.T) {
	tbl := newTestTable(t, []string{"Z1", "CCO", "", "", "", ""})
	r := tbl.Record(0)
	assert.False(t, r.Parsed())

	r.Attach(molecule.Parse(r.SMILES))
	assert.True(t, r.Parsed())

	r.Attach(molecule.Parse("C1CC"))
	assert.True(t, r.Parsed(), "second attach is ignored")
}

func TestTable_Filter(t *testing.T) {
	tbl := newTestTable(t,
		[]string{"Z1", "CCO", "", "", "a", ""},
		[]string{"Z2", "CCN", "", "", "b", ""},
		[]string{"Z3", "CCO", "", "", "a", ""},
	)

	out, err := tbl.Filter([]bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, []string{"Z1", "Z3"}, out.Column(ColumnID))
	assert.Equal(t, 2, out.Record(1).Index, "source index preserved")
	assert.Equal(t, 3, tbl.Len(), "input table untouched")
	assert.Equal(t, 1, out.UniqueSMILES())
	assert.Equal(t, 2, tbl.UniqueSMILES())

	_, err = tbl.Filter([]bool{true})
	require.Error(t, err)

	assert.Equal(t, map[string]int{"a": 2, "b": 1}, tbl.GroupCount(ColumnParentMol))
	assert.Nil(t, tbl.GroupCount("nope"))
	assert.Nil(t, tbl.Column("nope"))
}

func TestDocumentedColumns(t *testing.T) {
	cols := DocumentedColumns()
	assert.Len(t, cols, 19)
	assert.Equal(t, ColumnSMILES, cols[0])
	assert.Contains(t, cols, ColumnParentLog10KdUM)
}

//Personal.AI order the ending
