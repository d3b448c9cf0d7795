package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

func TestParseSMILES_Valid(t *testing.T) {
	tests := []struct {
		name    string
		smiles  string
		atoms   int
		bonds   int
		rings   int
		formula string
	}{
		{"ethanol", "CCO", 3, 2, 0, "C2H6O"},
		{"benzene_aromatic", "c1ccccc1", 6, 6, 1, "C6H6"},
		{"benzene_kekule", "C1=CC=CC=C1", 6, 6, 1, "C6H6"},
		{"naphthalene", "c1ccc2ccccc2c1", 10, 11, 2, "C10H8"},
		{"acetate", "CC(=O)[O-]", 4, 3, 0, "C2H3O2"},
		{"explicit_hydrogens", "[H]OC([H])([H])[H]", 2, 1, 0, "CH4O"},
		{"pyrrole", "c1cc[nH]c1", 5, 5, 1, "C4H5N"},
		{"salt", "[Na+].[Cl-]", 2, 0, 0, "ClNa"},
		{"percent_ring", "C%10CCCCC%10", 6, 6, 1, "C6H12"},
		{"chirality_ignored", "N[C@@H](C)C(=O)O", 6, 5, 0, "C3H7NO2"},
		{"isotope", "[13CH4]", 1, 0, 0, "CH4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			assert.Equal(t, tt.atoms, m.NumAtoms())
			assert.Equal(t, tt.bonds, m.NumBonds())
			assert.Len(t, m.Rings(), tt.rings)
			assert.Equal(t, tt.formula, m.Formula())
		})
	}
}

func TestParseSMILES_Aromaticity(t *testing.T) {
	tests := []struct {
		name     string
		smiles   string
		aromatic int
	}{
		{"kekule_benzene", "C1=CC=CC=C1", 6},
		{"pyridine", "c1ccncc1", 6},
		{"furan", "c1ccoc1", 5},
		{"pyridone", "O=c1cccc[nH]1", 6},
		{"indole", "c1ccc2[nH]ccc2c1", 9},
		{"cyclohexane", "C1CCCCC1", 0},
		{"cyclohexadiene", "C1=CC=CCC1", 0},
		{"toluene_methyl", "Cc1ccccc1", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseSMILES(tt.smiles)
			require.NoError(t, err)
			n := 0
			for _, a := range m.Atoms {
				if a.Aromatic {
					n++
				}
			}
			assert.Equal(t, tt.aromatic, n)
		})
	}
}

func TestParseSMILES_KekuleOrdersKept(t *testing.T) {
	m, err := ParseSMILES("c1ccccc1")
	require.NoError(t, err)

	doubles := 0
	for _, b := range m.Bonds {
		assert.Equal(t, BondAromatic, b.Type)
		if b.Order == 2 {
			doubles++
		}
	}
	assert.Equal(t, 3, doubles)
	for i := range m.Atoms {
		assert.Equal(t, 4, m.TotalValence(i))
		assert.Equal(t, 1, m.TotalHCount(i))
		assert.Equal(t, 6, m.SmallestRingSize(i))
	}
}

func TestParseSMILES_RingProperties(t *testing.T) {
	m, err := ParseSMILES("c1ccc2ccccc2c1")
	require.NoError(t, err)

	fused := 0
	for i := range m.Atoms {
		if m.AtomRingCount(i) == 2 {
			fused++
			assert.Equal(t, 3, m.RingConnectivity(i))
		}
	}
	assert.Equal(t, 2, fused)

	for _, r := range m.Rings() {
		assert.Equal(t, 6, r.Size())
	}
}

func TestParseSMILES_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		smiles string
	}{
		{"empty", ""},
		{"unclosed_ring", "C1CC"},
		{"unclosed_branch", "C(C"},
		{"unmatched_paren", "C)"},
		{"unknown_element", "[Xx]"},
		{"dangling_bond", "C="},
		{"unterminated_bracket", "[NH4+"},
		{"bad_character", "C?C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSMILES(tt.smiles)
			require.Error(t, err)
			var syn *SyntaxError
			assert.True(t, errors.As(err, &syn), "want SyntaxError, got %v", err)
		})
	}
}

func TestParseSMILES_SanitizationErrors(t *testing.T) {
	tests := []struct {
		name   string
		smiles string
		code   errors.ErrorCode
	}{
		{"pentavalent_carbon", "C(C)(C)(C)(C)C", errors.ErrCodeValenceInvalid},
		{"odd_aromatic_ring", "c1cccc1", errors.ErrCodeKekulizationFailed},
		{"pyrrole_without_h", "c1cccn1", errors.ErrCodeKekulizationFailed},
		{"acyclic_aromatic", "cc", errors.ErrCodeKekulizationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSMILES(tt.smiles)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestParse_TaggedResult(t *testing.T) {
	s := Parse("CCO")
	p, ok := s.(*Parsed)
	require.True(t, ok)
	assert.Equal(t, "CCO", p.Source())
	assert.Equal(t, 3, p.Mol.NumAtoms())

	s = Parse("C1CC")
	u, ok := s.(*Unparseable)
	require.True(t, ok)
	assert.Equal(t, "C1CC", u.Source())
	assert.True(t, errors.IsCode(u.Reason, errors.ErrCodeMoleculeInvalidSMILES))

	s = Parse("c1cccc1")
	u, ok = s.(*Unparseable)
	require.True(t, ok)
	assert.True(t, errors.IsCode(u.Reason, errors.ErrCodeKekulizationFailed))
}

//Personal.AI order the ending
