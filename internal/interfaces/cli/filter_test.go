package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

const expectedReport = `Total Number of molecules (all matches including duplicates) 3
dropping 1 molecules due to lack of scaffold
dropping 1 molecules due to carboxylate
Total Number of molecules (all matches) after carboxyl+substructure filtering 1
Total Number of unique molecules after carboxyl+substructure filtering 1
`

func TestFilter_TextReport(t *testing.T) {
	input := writeFile(t, t.TempDir(), "cache3.csv", candidatesCSV)

	out, _, err := execute(t, "", "filter", input)
	require.NoError(t, err)
	assert.Equal(t, expectedReport, out)
}

func TestFilter_InputFromConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "hits.csv", candidatesCSV)
	cfg := writeFile(t, dir, "config.yaml", quietConfig+"input:\n  path: "+input+"\n")

	out, _, err := execute(t, "", "filter", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, expectedReport, out)
}

func TestFilter_Stdin(t *testing.T) {
	out, _, err := execute(t, candidatesCSV, "filter", "-")
	require.NoError(t, err)
	assert.Equal(t, expectedReport, out)
}

func TestFilter_JSON(t *testing.T) {
	input := writeFile(t, t.TempDir(), "cache3.csv", candidatesCSV)

	out, _, err := execute(t, "", "filter", input, "-o", "json", "--workers", "2")
	require.NoError(t, err)

	var got struct {
		RunID     string         `json:"run_id"`
		Source    string         `json:"source"`
		Total     int            `json:"total"`
		Survivors int            `json:"survivors"`
		Unique    int            `json:"unique"`
		ByParent  map[string]int `json:"by_parent"`
		ByMethod  map[string]int `json:"by_method"`
		Stages    []struct {
			Name    string `json:"name"`
			Dropped int    `json:"dropped"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.RunID)
	assert.Equal(t, input, got.Source)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Survivors)
	assert.Equal(t, 1, got.Unique)
	assert.Equal(t, map[string]int{"hit1": 1}, got.ByParent)
	assert.Equal(t, map[string]int{"hits_analog_hunter": 1}, got.ByMethod)
	require.Len(t, got.Stages, 2)
	assert.Equal(t, "scaffold", got.Stages[0].Name)
	assert.Equal(t, 1, got.Stages[1].Dropped)
}

func TestFilter_YAMLAndTable(t *testing.T) {
	input := writeFile(t, t.TempDir(), "cache3.csv", candidatesCSV)

	out, _, err := execute(t, "", "filter", input, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "survivors: 1")
	assert.Contains(t, out, "reason: lack of scaffold")

	out, _, err = execute(t, "", "filter", input, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "STAGE")
	assert.Contains(t, out, "carboxylate")
	assert.Contains(t, out, "Total Number of unique molecules after carboxyl+substructure filtering 1")
	assert.Contains(t, out, "Survivors by parent_mol: hit1=1")
}

func TestFilter_ExportTSV(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "cache3.csv", candidatesCSV)
	export := filepath.Join(dir, "out", "survivors.tsv")

	_, _, err := execute(t, "", "filter", input, "--export", export)
	require.NoError(t, err)

	data, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Equal(t, "smiles\tparent_mol\tmethod\nCc1nc(N)c2c3ccccc3[nH]c2n1\thit1\thits_analog_hunter\n", string(data))
}

func TestFilter_ExportToStdoutMovesReport(t *testing.T) {
	input := writeFile(t, t.TempDir(), "cache3.csv", candidatesCSV)

	out, errOut, err := execute(t, "", "filter", input, "--export", "-")
	require.NoError(t, err)
	assert.Equal(t, "smiles,parent_mol,method\nCc1nc(N)c2c3ccccc3[nH]c2n1,hit1,hits_analog_hunter\n", out)
	assert.Contains(t, errOut, "dropping 1 molecules due to carboxylate")
}

func TestFilter_CustomStages(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "cache3.csv", candidatesCSV)
	cfg := writeFile(t, dir, "config.yaml", quietConfig+`screening:
  stages:
    - name: amine
      mode: exclude
      smarts: "[NX3;H2]"
      reason: "primary amine"
`)

	out, _, err := execute(t, "", "filter", input, "--config", cfg)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "dropping 2 molecules due to primary amine", lines[1])
	assert.Equal(t, "Total Number of molecules (all matches) after carboxyl+substructure filtering 1", lines[2])
}

func TestFilter_MetricsTextfile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "cache3.csv", candidatesCSV)
	prom := filepath.Join(dir, "sieve.prom")

	_, _, err := execute(t, "", "filter", input, "--metrics-textfile", prom)
	require.NoError(t, err)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `scaffoldsieve_runs_total{status="success"} 1`)
	assert.Contains(t, text, "scaffoldsieve_records_loaded 3")
	assert.Contains(t, text, `scaffoldsieve_stage_records_total{mode="require",outcome="dropped",stage="scaffold"} 1`)
}

func TestFilter_Errors(t *testing.T) {
	dir := t.TempDir()
	noSMILES := writeFile(t, dir, "nosmiles.csv", "id,name\n1,a\n")
	badPattern := writeFile(t, dir, "bad.yaml", quietConfig+`screening:
  stages:
    - name: broken
      mode: require
      smarts: "[C"
`)
	input := writeFile(t, dir, "cache3.csv", candidatesCSV)

	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"missing file", []string{"filter", filepath.Join(dir, "absent.csv")}, errors.ErrCodeTableNotFound},
		{"missing column", []string{"filter", noSMILES}, errors.ErrCodeTableColumnMissing},
		{"invalid pattern", []string{"filter", input, "--config", badPattern}, errors.ErrCodePatternInvalid},
		{"bad encoding", []string{"filter", input, "--encoding", "ebcdic"}, errors.ErrCodeConfigInvalid},
		{"s3 without endpoint", []string{"filter", "s3://hits/cache3.csv"}, errors.ErrCodeConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestFilter_TooManyArgs(t *testing.T) {
	_, _, err := execute(t, "", "filter", "a.csv", "b.csv")
	assert.Error(t, err)
}

//Personal.AI order the ending
