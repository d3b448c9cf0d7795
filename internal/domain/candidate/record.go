// Package candidate provides the screening table model: one Record per row of
// a similarity-search export, with the parsed structure attached during
// screening and the remaining columns carried through verbatim.
package candidate

import (
	"strconv"
	"strings"

	"github.com/turtacn/ScaffoldSieve/internal/domain/molecule"
)

// ─────────────────────────────────────────────────────────────────────────────
// Documented columns
// ─────────────────────────────────────────────────────────────────────────────

// Columns of the analog-hunter / scaffold-hopper export.  Only the SMILES
// column is interpreted by screening; the rest are passed through.
const (
	ColumnSMILES          = "smiles"
	ColumnID              = "id"
	ColumnName            = "name"
	ColumnResultRank      = "result-rank"
	ColumnSimilarity      = "similarity"
	ColumnQueryName       = "query-name"
	ColumnQuerySMILES     = "query-smiles"
	ColumnSpace           = "space"
	ColumnReactionName    = "reaction-name"
	ColumnReagent1Name    = "reagent1-name"
	ColumnReagent1SMILES  = "reagent1-smiles"
	ColumnReagent2Name    = "reagent2-name"
	ColumnReagent2SMILES  = "reagent2-smiles"
	ColumnLogP            = "logp"
	ColumnMW              = "mw"
	ColumnTPSA            = "tpsa"
	ColumnParentMol       = "parent_mol"
	ColumnMethod          = "method"
	ColumnParentLog10KdUM = "parent_log10_kd_uM"
)

// Values of the method column.
const (
	MethodAnalogHunter   = "hits_analog_hunter"
	MethodScaffoldHopper = "hits_scaffold_hopper"
)

// DocumentedColumns lists the export columns in their usual order.
func DocumentedColumns() []string {
	return []string{
		ColumnSMILES, ColumnID, ColumnName, ColumnResultRank, ColumnSimilarity,
		ColumnQueryName, ColumnQuerySMILES, ColumnSpace, ColumnReactionName,
		ColumnReagent1Name, ColumnReagent1SMILES, ColumnReagent2Name, ColumnReagent2SMILES,
		ColumnLogP, ColumnMW, ColumnTPSA, ColumnParentMol, ColumnMethod, ColumnParentLog10KdUM,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Record
// ─────────────────────────────────────────────────────────────────────────────

// Record is one candidate row.  Values holds every column verbatim in header
// order.  Structure is nil until screening attaches a parse result and is
// read-only afterwards.
type Record struct {
	Index     int
	Values    []string
	SMILES    string
	Structure molecule.Structure

	header *Header
}

// Attach sets the parse result once.  Later calls are ignored.
func (r *Record) Attach(s molecule.Structure) {
	if r.Structure == nil {
		r.Structure = s
	}
}

// Parsed reports whether a valid structure is attached.
func (r *Record) Parsed() bool {
	_, ok := r.Structure.(*molecule.Parsed)
	return ok
}

// Get returns the raw value of column, and whether the column exists.
func (r *Record) Get(column string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, ok := r.header.index[column]
	if !ok || i >= len(r.Values) {
		return "", false
	}
	return r.Values[i], true
}

// Float parses column as a float.  Missing columns, blank cells and
// non-numeric text report false.
func (r *Record) Float(column string) (float64, bool) {
	v, ok := r.Get(column)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int parses column as an integer.  Values written as whole floats ("12.0")
// are accepted.
func (r *Record) Int(column string) (int, bool) {
	v, ok := r.Get(column)
	if !ok {
		return 0, false
	}
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func (r *Record) text(column string) string {
	v, _ := r.Get(column)
	return v
}

// ID returns the id column.
func (r *Record) ID() string { return r.text(ColumnID) }

// Name returns the name column.
func (r *Record) Name() string { return r.text(ColumnName) }

// QueryName returns the verified hit used to generate this candidate.
func (r *Record) QueryName() string { return r.text(ColumnQueryName) }

// ParentMol returns the parent molecule reference.
func (r *Record) ParentMol() string { return r.text(ColumnParentMol) }

// Method returns the similarity-search method tag.
func (r *Record) Method() string { return r.text(ColumnMethod) }

// ResultRank returns the similarity rank (1 to 500 in analog-hunter exports).
func (r *Record) ResultRank() (int, bool) { return r.Int(ColumnResultRank) }

// Similarity returns the similarity score to the parent molecule.
func (r *Record) Similarity() (float64, bool) { return r.Float(ColumnSimilarity) }

func (r *Record) LogP() (float64, bool) { return r.Float(ColumnLogP) }

func (r *Record) MW() (float64, bool) { return r.Float(ColumnMW) }

func (r *Record) TPSA() (float64, bool) { return r.Float(ColumnTPSA) }

// ParentLog10KdUM returns log10 of the parent's Kd in micromolar.
func (r *Record) ParentLog10KdUM() (float64, bool) { return r.Float(ColumnParentLog10KdUM) }

//Personal.AI order the ending
