package molecule

import (
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// Structure is the outcome of parsing one record's SMILES.  It is either a
// *Parsed carrying a sanitised molecule, or an *Unparseable carrying the
// reason the text was rejected.
type Structure interface {
	isStructure()
	// Source returns the SMILES text the structure was built from.
	Source() string
}

// Parsed is a successfully sanitised structure.
type Parsed struct {
	SMILES string
	Mol    *Molecule
}

func (*Parsed) isStructure()     {}
func (p *Parsed) Source() string { return p.SMILES }

// Unparseable records a SMILES that failed syntax or sanitisation.
type Unparseable struct {
	SMILES string
	Reason error
}

func (*Unparseable) isStructure()     {}
func (u *Unparseable) Source() string { return u.SMILES }

// Parse never fails: malformed input is captured as *Unparseable so the
// caller can decide what to do with it.
func Parse(smiles string) Structure {
	mol, err := ParseSMILES(smiles)
	if err != nil {
		return &Unparseable{SMILES: smiles, Reason: classify(err)}
	}
	return &Parsed{SMILES: smiles, Mol: mol}
}

func classify(err error) error {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		return errors.Wrap(err, errors.ErrCodeMoleculeInvalidSMILES, "invalid SMILES syntax")
	}
	if errors.GetCode(err) != errors.CodeUnknown {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeMoleculeParsingFailed, "SMILES sanitisation failed")
}

//Personal.AI order the ending
