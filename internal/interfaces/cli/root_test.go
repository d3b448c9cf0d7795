package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

const quietConfig = "log:\n  level: error\n"

const candidatesCSV = `smiles,parent_mol,method
Cc1nc(N)c2c3ccccc3[nH]c2n1,hit1,hits_analog_hunter
OC(=O)Cc1nc(N)c2c3ccccc3[nH]c2n1,hit1,hits_analog_hunter
c1ccc2[nH]ccc2c1,hit2,hits_scaffold_hopper
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with a quiet config file unless the caller
// passes its own --config.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	hasConfig := false
	for _, a := range args {
		if a == "--config" || a == "-c" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "--config", writeFile(t, t.TempDir(), "config.yaml", quietConfig))
	}

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "scaffoldsieve", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Contains(t, cmd.Version, Version)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"filter", "match", "patterns"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	pf := NewRootCommand().PersistentFlags()
	for _, name := range []string{"config", "log-level", "output", "verbose"} {
		assert.NotNil(t, pf.Lookup(name), name)
	}
	assert.Equal(t, "o", pf.Lookup("output").Shorthand)
	assert.Equal(t, "v", pf.Lookup("verbose").Shorthand)
	assert.Equal(t, "c", pf.Lookup("config").Shorthand)
}

func TestPersistentPreRun_InvalidOutputFormat(t *testing.T) {
	_, _, err := execute(t, "", "patterns", "-o", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigInvalid))
}

func TestPersistentPreRun_MissingConfig(t *testing.T) {
	_, _, err := execute(t, "", "patterns", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigNotFound))
}

func TestGetCLIContext_Missing(t *testing.T) {
	cmd := NewRootCommand()
	_, err := GetCLIContext(cmd)
	assert.Error(t, err)

	cmd.SetContext(context.Background())
	_, err = GetCLIContext(cmd)
	assert.Error(t, err)
}

func TestFormatTable(t *testing.T) {
	out := FormatTable([]string{"NAME", "N"}, [][]string{{"scaffold", "12"}, {"acid"}})
	assert.Equal(t, "NAME      N\n--------  --\nscaffold  12\nacid      \n", out)
	assert.Equal(t, "", FormatTable(nil, nil))
}

func TestPrintResult_NoContextFallsBackToJSON(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, PrintResult(cmd, map[string]int{"total": 3}))
	assert.JSONEq(t, `{"total":3}`, out.String())
}

//Personal.AI order the ending
