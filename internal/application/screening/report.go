package screening

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Report is the read-only summary of one run.  The text rendering keeps the
// wording downstream scripts grep for.
type Report struct {
	RunID          string         `json:"run_id" yaml:"run_id"`
	Source         string         `json:"source" yaml:"source"`
	StartedAt      time.Time      `json:"started_at" yaml:"started_at"`
	Elapsed        time.Duration  `json:"-" yaml:"-"`
	ElapsedSeconds float64        `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Total          int            `json:"total" yaml:"total"`
	Unparseable    int            `json:"unparseable" yaml:"unparseable"`
	Stages         []StageResult  `json:"stages" yaml:"stages"`
	Survivors      int            `json:"survivors" yaml:"survivors"`
	Unique         int            `json:"unique" yaml:"unique"`
	ByParent       map[string]int `json:"by_parent,omitempty" yaml:"by_parent,omitempty"`
	ByMethod       map[string]int `json:"by_method,omitempty" yaml:"by_method,omitempty"`
}

// Lines returns the report in print order: total, one drop line per stage,
// survivors, unique survivors.
func (r *Report) Lines() []string {
	lines := make([]string, 0, len(r.Stages)+3)
	lines = append(lines, fmt.Sprintf("Total Number of molecules (all matches including duplicates) %d", r.Total))
	for _, s := range r.Stages {
		lines = append(lines, s.DropLine())
	}
	lines = append(lines,
		fmt.Sprintf("Total Number of molecules (all matches) after carboxyl+substructure filtering %d", r.Survivors),
		fmt.Sprintf("Total Number of unique molecules after carboxyl+substructure filtering %d", r.Unique),
	)
	return lines
}

// String joins Lines with newlines.
func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// TableHeaders and TableRows render the per-stage results as a grid.
func (r *Report) TableHeaders() []string {
	return []string{"STAGE", "MODE", "PATTERN", "INPUT", "DROPPED", "UNPARSEABLE", "KEPT"}
}

func (r *Report) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		rows = append(rows, []string{
			s.Name,
			s.Mode.String(),
			s.Pattern,
			strconv.Itoa(s.Input),
			strconv.Itoa(s.Dropped),
			strconv.Itoa(s.Unparseable),
			strconv.Itoa(s.Kept),
		})
	}
	return rows
}

// TableFooter lists the totals and survivor breakdowns printed under the
// stage grid.
func (r *Report) TableFooter() []string {
	lines := r.Lines()
	footer := []string{"", lines[0], lines[len(lines)-2], lines[len(lines)-1]}
	if r.Unparseable > 0 {
		footer = append(footer, fmt.Sprintf("Unparseable SMILES %d", r.Unparseable))
	}
	for _, b := range []struct {
		label  string
		counts map[string]int
	}{{"parent_mol", r.ByParent}, {"method", r.ByMethod}} {
		if len(b.counts) == 0 {
			continue
		}
		parts := make([]string, 0, len(b.counts))
		for _, c := range SortedCounts(b.counts) {
			parts = append(parts, fmt.Sprintf("%s=%d", c.Key, c.Count))
		}
		footer = append(footer, fmt.Sprintf("Survivors by %s: %s", b.label, strings.Join(parts, ", ")))
	}
	return footer
}

// Count is one entry of a survivor breakdown.
type Count struct {
	Key   string
	Count int
}

// SortedCounts orders a breakdown by descending count, then key.
func SortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

//Personal.AI order the ending
