package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/internal/config"
	"github.com/turtacn/ScaffoldSieve/internal/domain/molecule"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

const (
	smilesCore       = "Cc1nc(N)c2c3ccccc3[nH]c2n1"
	smilesCoreAcid   = "OC(=O)Cc1nc(N)c2c3ccccc3[nH]c2n1"
	smilesKekule     = "C1=NC=NC2=C1C1=CC=CC=C1N2"
	smilesIndole     = "c1ccc2[nH]ccc2c1"
	smilesAcid       = "CC(=O)O"
	smilesUnclosed   = "C1CC"
	smilesBadValence = "C(C)(C)(C)(C)C"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Require ")
	require.NoError(t, err)
	assert.Equal(t, ModeRequire, m)

	m, err = ParseMode("exclude")
	require.NoError(t, err)
	assert.Equal(t, ModeExclude, m)

	_, err = ParseMode("invert")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestNewStage(t *testing.T) {
	s, err := NewStage("core", ModeRequire, config.DefaultScaffoldSMARTS, "")
	require.NoError(t, err)
	assert.Equal(t, "core", s.Name())
	assert.Equal(t, "core", s.Reason())
	assert.Equal(t, config.DefaultScaffoldSMARTS, s.SMARTS())
	assert.Equal(t, 13, s.Pattern().NumAtoms())

	_, err = NewStage("", ModeRequire, "C", "")
	assert.Error(t, err)

	_, err = NewStage("x", Mode("both"), "C", "")
	assert.Error(t, err)

	_, err = NewStage("broken", ModeExclude, "[C", "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePatternInvalid))
	assert.Contains(t, err.Error(), "broken")
}

func TestStagesFromConfig(t *testing.T) {
	stages, err := StagesFromConfig(config.DefaultStages())
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, ModeRequire, stages[0].Mode())
	assert.Equal(t, "lack of scaffold", stages[0].Reason())
	assert.Equal(t, ModeExclude, stages[1].Mode())
	assert.Equal(t, "carboxylate", stages[1].Reason())

	_, err = StagesFromConfig([]config.StageConfig{{Name: "x", Mode: "sideways", SMARTS: "C"}})
	assert.Error(t, err)

	_, err = StagesFromConfig([]config.StageConfig{{Name: "x", Mode: "require", SMARTS: "C(("}})
	assert.True(t, errors.IsCode(err, errors.ErrCodePatternInvalid))
}

func TestStage_Keep(t *testing.T) {
	stages := DefaultStages()
	scaffold, carboxylate := stages[0], stages[1]

	tests := []struct {
		name        string
		smiles      string
		scaffold    bool
		carboxylate bool
	}{
		{"core", smilesCore, true, true},
		{"core with acid", smilesCoreAcid, true, false},
		{"kekule core", smilesKekule, true, true},
		{"indole", smilesIndole, false, true},
		{"acetic acid", smilesAcid, false, false},
		{"unclosed ring", smilesUnclosed, false, false},
		{"over-valent carbon", smilesBadValence, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := molecule.Parse(tt.smiles)
			assert.Equal(t, tt.scaffold, scaffold.Keep(st), "scaffold")
			assert.Equal(t, tt.carboxylate, carboxylate.Keep(st), "carboxylate")
		})
	}
}

func TestStage_KeepNil(t *testing.T) {
	for _, s := range DefaultStages() {
		assert.False(t, s.Keep(nil))
	}
}

func TestStageResult_DropLine(t *testing.T) {
	r := StageResult{Dropped: 4, Reason: "lack of scaffold"}
	assert.Equal(t, "dropping 4 molecules due to lack of scaffold", r.DropLine())
}

//Personal.AI order the ending
