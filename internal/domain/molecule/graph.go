// Package molecule provides the molecular graph, SMILES parsing with
// RDKit-style sanitisation, and SMARTS substructure queries used to screen
// candidate structures.
package molecule

// BondType is the chemical type of a bond after sanitisation.
type BondType int

const (
	BondSingle BondType = iota + 1
	BondDouble
	BondTriple
	BondQuadruple
	BondAromatic
)

func (t BondType) String() string {
	switch t {
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondQuadruple:
		return "quadruple"
	case BondAromatic:
		return "aromatic"
	default:
		return "unknown"
	}
}

// Atom is a vertex of the molecular graph.  Hydrogens are implicit or folded
// into HCount; only hydrogens that cannot be folded stay explicit vertices.
type Atom struct {
	Index    int
	Element  *Element
	Aromatic bool
	Charge   int
	Isotope  int
	Class    int

	// HCount is the total number of hydrogens attached and not represented
	// as vertices: bracket H plus implicit H computed from default valences.
	HCount int

	// ImplicitH is the portion of HCount derived from default valences.
	ImplicitH int

	bracket bool
}

// Number returns the atomic number (0 for the wildcard atom).
func (a *Atom) Number() int { return a.Element.Number }

// Symbol returns the element symbol as written in upper-case form.
func (a *Atom) Symbol() string { return a.Element.Symbol }

// Bond is an edge of the molecular graph.  Order holds the Kekulé bond order
// for aromatic bonds so that valence arithmetic stays integral.
type Bond struct {
	Index int
	Begin int
	End   int
	Type  BondType
	Order int
}

// Other returns the atom at the opposite end of the bond from idx.
func (b *Bond) Other(idx int) int {
	if b.Begin == idx {
		return b.End
	}
	return b.Begin
}

// Neighbor is one adjacency entry: the neighbouring atom and the bond to it.
type Neighbor struct {
	Atom int
	Bond int
}

// Ring is one ring of the smallest set of smallest rings.
type Ring struct {
	Atoms []int
	Bonds []int
}

// Size returns the number of atoms in the ring.
func (r Ring) Size() int { return len(r.Atoms) }

// Molecule is a sanitised molecular graph produced by ParseSMILES.  It is
// read-only after construction and safe for concurrent readers.
type Molecule struct {
	Atoms []*Atom
	Bonds []*Bond

	adj   [][]Neighbor
	rings []Ring

	atomRings    []int
	bondRings    []int
	atomMinRing  []int
	atomRingBond []int
}

func newMolecule() *Molecule {
	return &Molecule{}
}

func (m *Molecule) addAtom(a *Atom) int {
	a.Index = len(m.Atoms)
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	return a.Index
}

func (m *Molecule) addBond(begin, end int, t BondType) *Bond {
	b := &Bond{Index: len(m.Bonds), Begin: begin, End: end, Type: t, Order: bondOrder(t)}
	m.Bonds = append(m.Bonds, b)
	m.adj[begin] = append(m.adj[begin], Neighbor{Atom: end, Bond: b.Index})
	m.adj[end] = append(m.adj[end], Neighbor{Atom: begin, Bond: b.Index})
	return b
}

func bondOrder(t BondType) int {
	switch t {
	case BondDouble:
		return 2
	case BondTriple:
		return 3
	case BondQuadruple:
		return 4
	default:
		return 1
	}
}

// NumAtoms returns the number of atom vertices.
func (m *Molecule) NumAtoms() int { return len(m.Atoms) }

// NumBonds returns the number of bonds.
func (m *Molecule) NumBonds() int { return len(m.Bonds) }

// Neighbors returns the adjacency list of atom idx.  Callers must not modify it.
func (m *Molecule) Neighbors(idx int) []Neighbor { return m.adj[idx] }

// BondBetween returns the bond joining a and b, or nil.
func (m *Molecule) BondBetween(a, b int) *Bond {
	for _, nb := range m.adj[a] {
		if nb.Atom == b {
			return m.Bonds[nb.Bond]
		}
	}
	return nil
}

// Degree returns the number of explicit neighbours of atom idx.
func (m *Molecule) Degree(idx int) int { return len(m.adj[idx]) }

// TotalDegree returns explicit neighbours plus attached hydrogens
// (SMARTS X).
func (m *Molecule) TotalDegree(idx int) int {
	return len(m.adj[idx]) + m.Atoms[idx].HCount
}

// TotalHCount returns attached hydrogens including explicit hydrogen vertices
// (SMARTS H).
func (m *Molecule) TotalHCount(idx int) int {
	n := m.Atoms[idx].HCount
	for _, nb := range m.adj[idx] {
		if m.Atoms[nb.Atom].Number() == 1 {
			n++
		}
	}
	return n
}

// explicitValence sums Kekulé bond orders on atom idx.
func (m *Molecule) explicitValence(idx int) int {
	v := 0
	for _, nb := range m.adj[idx] {
		v += m.Bonds[nb.Bond].Order
	}
	return v
}

// TotalValence returns the bond-order sum plus attached hydrogens (SMARTS v).
func (m *Molecule) TotalValence(idx int) int {
	return m.explicitValence(idx) + m.Atoms[idx].HCount
}

// Rings returns the smallest set of smallest rings.
func (m *Molecule) Rings() []Ring { return m.rings }

// AtomRingCount returns the number of SSSR rings containing atom idx
// (SMARTS R).
func (m *Molecule) AtomRingCount(idx int) int { return m.atomRings[idx] }

// BondInRing reports whether bond idx belongs to at least one ring.
func (m *Molecule) BondInRing(idx int) bool { return m.bondRings[idx] > 0 }

// SmallestRingSize returns the size of the smallest SSSR ring containing atom
// idx, or 0 when the atom is acyclic (SMARTS r).
func (m *Molecule) SmallestRingSize(idx int) int { return m.atomMinRing[idx] }

// RingConnectivity returns the number of ring bonds on atom idx (SMARTS x).
func (m *Molecule) RingConnectivity(idx int) int { return m.atomRingBond[idx] }

// Formula returns the Hill-order molecular formula.
func (m *Molecule) Formula() string {
	counts := make(map[string]int)
	for _, a := range m.Atoms {
		counts[a.Symbol()]++
		if a.HCount > 0 {
			counts["H"] += a.HCount
		}
	}
	return hillFormula(counts)
}

//Personal.AI order the ending
