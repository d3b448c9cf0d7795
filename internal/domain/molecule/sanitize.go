package molecule

import (
	"fmt"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// kekuleStepLimit bounds the matching search on pathological inputs.
const kekuleStepLimit = 200000

// sanitize turns a freshly parsed graph into a chemically consistent one.
// Steps run in a fixed order: implicit hydrogens, hydrogen folding, ring
// perception, Kekulé assignment, valence check, aromaticity perception.
func sanitize(m *Molecule) error {
	assignImplicitHydrogens(m)
	folded := foldHydrogens(m)
	*m = *folded

	m.perceiveRings()

	for _, a := range m.Atoms {
		if a.Aromatic && m.atomRings[a.Index] == 0 {
			return errors.New(errors.ErrCodeKekulizationFailed, "non-ring atom marked aromatic").
				WithDetail(fmt.Sprintf("atom=%d symbol=%s", a.Index, a.Symbol()))
		}
	}
	for _, b := range m.Bonds {
		if b.Type == BondAromatic && m.bondRings[b.Index] == 0 {
			b.Type = BondSingle
			b.Order = 1
		}
	}

	if err := kekulize(m); err != nil {
		return err
	}
	if err := checkValences(m); err != nil {
		return err
	}
	m.perceiveAromaticity()
	return nil
}

// assignImplicitHydrogens fills HCount for organic-subset atoms from their
// lowest default valence.  Aromatic atoms reserve one valence unit for the
// pi system.  Bracket atoms keep exactly the hydrogens written.
func assignImplicitHydrogens(m *Molecule) {
	for _, a := range m.Atoms {
		if a.bracket || a.Number() == 0 {
			continue
		}
		vals := allowedValences(a.Number(), a.Charge)
		if len(vals) == 0 {
			continue
		}
		ev := 0
		for _, nb := range m.adj[a.Index] {
			ev += m.Bonds[nb.Bond].Order
		}
		h := 0
		if a.Aromatic {
			h = vals[0] - ev - 1
		} else {
			h = -1
			for _, v := range vals {
				if v >= ev {
					h = v - ev
					break
				}
			}
		}
		if h < 0 {
			h = 0
		}
		a.ImplicitH = h
		a.HCount = h
	}
}

func foldableHydrogen(m *Molecule, a *Atom) bool {
	if a.Number() != 1 || a.Isotope != 0 || a.Charge != 0 || a.HCount != 0 {
		return false
	}
	if len(m.adj[a.Index]) != 1 {
		return false
	}
	nb := m.adj[a.Index][0]
	return m.Atoms[nb.Atom].Number() != 1 && m.Bonds[nb.Bond].Order == 1
}

// foldHydrogens removes plain hydrogen vertices and adds them to the H count
// of their heavy neighbour.
func foldHydrogens(m *Molecule) *Molecule {
	remove := make([]bool, len(m.Atoms))
	found := false
	for _, a := range m.Atoms {
		if foldableHydrogen(m, a) {
			remove[a.Index] = true
			found = true
		}
	}
	if !found {
		return m
	}

	out := newMolecule()
	remap := make([]int, len(m.Atoms))
	for _, a := range m.Atoms {
		if remove[a.Index] {
			remap[a.Index] = -1
			continue
		}
		cp := *a
		remap[a.Index] = out.addAtom(&cp)
	}
	for _, a := range m.Atoms {
		if remove[a.Index] {
			heavy := m.adj[a.Index][0].Atom
			out.Atoms[remap[heavy]].HCount++
		}
	}
	for _, b := range m.Bonds {
		if remove[b.Begin] || remove[b.End] {
			continue
		}
		nb := out.addBond(remap[b.Begin], remap[b.End], b.Type)
		nb.Order = b.Order
	}
	return out
}

// needsPiBond reports whether an aromatic atom must receive a double bond in
// the Kekulé structure: its sigma valence is exactly one short of an allowed
// valence.
func needsPiBond(m *Molecule, a *Atom) bool {
	if !a.Aromatic {
		return false
	}
	vals := allowedValences(a.Number(), a.Charge)
	if len(vals) == 0 {
		return false
	}
	sum := a.HCount
	for _, nb := range m.adj[a.Index] {
		b := m.Bonds[nb.Bond]
		if b.Type == BondAromatic {
			sum++
		} else {
			sum += b.Order
		}
	}
	for _, v := range vals {
		if v == sum {
			return false
		}
		if v == sum+1 {
			return true
		}
	}
	return false
}

// kekulize assigns alternating single/double orders to aromatic bonds by
// finding a perfect matching over the atoms that need a pi bond.
func kekulize(m *Molecule) error {
	n := len(m.Atoms)
	need := make([]bool, n)
	hasAromatic := false
	for _, a := range m.Atoms {
		need[a.Index] = needsPiBond(m, a)
		hasAromatic = hasAromatic || a.Aromatic
	}
	for _, b := range m.Bonds {
		if b.Type == BondAromatic {
			hasAromatic = true
		}
	}
	if !hasAromatic {
		return nil
	}

	mate := make([]int, n)
	for i := range mate {
		mate[i] = -1
	}

	options := func(i int) []int {
		var out []int
		for _, nb := range m.adj[i] {
			if m.Bonds[nb.Bond].Type == BondAromatic && need[nb.Atom] && mate[nb.Atom] < 0 {
				out = append(out, nb.Atom)
			}
		}
		return out
	}

	steps := 0
	var solve func() bool
	solve = func() bool {
		best := -1
		var bestOpts []int
		for i := 0; i < n; i++ {
			if !need[i] || mate[i] >= 0 {
				continue
			}
			opts := options(i)
			if len(opts) == 0 {
				return false
			}
			if best < 0 || len(opts) < len(bestOpts) {
				best, bestOpts = i, opts
			}
		}
		if best < 0 {
			return true
		}
		for _, j := range bestOpts {
			steps++
			if steps > kekuleStepLimit {
				return false
			}
			mate[best], mate[j] = j, best
			if solve() {
				return true
			}
			mate[best], mate[j] = -1, -1
		}
		return false
	}

	if !solve() {
		var unmatched []int
		for i := 0; i < n; i++ {
			if need[i] && mate[i] < 0 {
				unmatched = append(unmatched, i)
			}
		}
		return errors.New(errors.ErrCodeKekulizationFailed, "cannot kekulize aromatic system").
			WithDetail(fmt.Sprintf("atoms=%v", unmatched))
	}

	for _, b := range m.Bonds {
		if b.Type != BondAromatic {
			continue
		}
		if mate[b.Begin] == b.End {
			b.Type, b.Order = BondDouble, 2
		} else {
			b.Type, b.Order = BondSingle, 1
		}
	}
	for _, a := range m.Atoms {
		a.Aromatic = false
	}
	return nil
}

// checkValences rejects atoms whose bond-order sum plus hydrogens exceeds the
// largest allowed valence for their element and charge.
func checkValences(m *Molecule) error {
	for _, a := range m.Atoms {
		vals := allowedValences(a.Number(), a.Charge)
		if len(vals) == 0 {
			continue
		}
		if tv := m.TotalValence(a.Index); tv > vals[len(vals)-1] {
			return errors.New(errors.ErrCodeValenceInvalid, "explicit valence exceeds allowed maximum").
				WithDetail(fmt.Sprintf("atom=%d symbol=%s charge=%d valence=%d max=%d",
					a.Index, a.Symbol(), a.Charge, tv, vals[len(vals)-1]))
		}
	}
	return nil
}

//Personal.AI order the ending
