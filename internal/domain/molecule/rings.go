package molecule

import (
	"math/bits"
	"sort"
	"strconv"
	"strings"
)

// bondSet is a GF(2) vector over bond indices.
type bondSet []uint64

func newBondSet(n int) bondSet {
	return make(bondSet, (n+63)/64)
}

func (s bondSet) set(i int) {
	s[i/64] |= 1 << (uint(i) % 64)
}

func (s bondSet) xor(o bondSet) {
	for i := range s {
		s[i] ^= o[i]
	}
}

func (s bondSet) clone() bondSet {
	return append(bondSet(nil), s...)
}

// lowest returns the smallest set index, or -1 for the zero vector.
func (s bondSet) lowest() int {
	for i, w := range s {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

type ringCandidate struct {
	atoms []int
	bonds []int
	key   string
}

// perceiveRings computes the smallest set of smallest rings.  Candidate
// cycles come from shortest paths out of every atom; they are sorted by size
// and kept greedily while linearly independent over GF(2) until the cycle
// rank E - V + C is reached.
func (m *Molecule) perceiveRings() {
	n, e := len(m.Atoms), len(m.Bonds)
	m.rings = nil
	m.atomRings = make([]int, n)
	m.bondRings = make([]int, e)
	m.atomMinRing = make([]int, n)
	m.atomRingBond = make([]int, n)

	rank := e - n + m.countComponents()
	if rank <= 0 {
		return
	}

	cands := m.cycleCandidates()
	sort.SliceStable(cands, func(i, j int) bool {
		if len(cands[i].bonds) != len(cands[j].bonds) {
			return len(cands[i].bonds) < len(cands[j].bonds)
		}
		return cands[i].key < cands[j].key
	})

	pivots := make(map[int]bondSet)
	for _, c := range cands {
		if len(m.rings) == rank {
			break
		}
		v := newBondSet(e)
		for _, b := range c.bonds {
			v.set(b)
		}
		if !reduceIndependent(pivots, v) {
			continue
		}
		m.rings = append(m.rings, Ring{Atoms: c.atoms, Bonds: c.bonds})
	}

	for _, r := range m.rings {
		for _, a := range r.Atoms {
			m.atomRings[a]++
			if m.atomMinRing[a] == 0 || r.Size() < m.atomMinRing[a] {
				m.atomMinRing[a] = r.Size()
			}
		}
		for _, b := range r.Bonds {
			m.bondRings[b]++
		}
	}
	for _, b := range m.Bonds {
		if m.bondRings[b.Index] > 0 {
			m.atomRingBond[b.Begin]++
			m.atomRingBond[b.End]++
		}
	}
}

// reduceIndependent eliminates v against the pivot rows.  When a non-zero
// remainder is left it is inserted as a new row and true is returned.
func reduceIndependent(pivots map[int]bondSet, v bondSet) bool {
	for {
		p := v.lowest()
		if p < 0 {
			return false
		}
		row, ok := pivots[p]
		if !ok {
			pivots[p] = v.clone()
			return true
		}
		v.xor(row)
	}
}

func (m *Molecule) countComponents() int {
	seen := make([]bool, len(m.Atoms))
	count := 0
	for i := range m.Atoms {
		if seen[i] {
			continue
		}
		count++
		stack := []int{i}
		seen[i] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range m.adj[cur] {
				if !seen[nb.Atom] {
					seen[nb.Atom] = true
					stack = append(stack, nb.Atom)
				}
			}
		}
	}
	return count
}

// cycleCandidates builds Horton's candidate set: for every root r and bond
// (u,v), the cycle formed by the shortest paths r→u and r→v plus the bond,
// when those paths meet only at r.
func (m *Molecule) cycleCandidates() []ringCandidate {
	n := len(m.Atoms)
	seen := make(map[string]bool)
	var out []ringCandidate

	for r := 0; r < n; r++ {
		parent := make([]int, n)
		parentBond := make([]int, n)
		for i := range parent {
			parent[i] = -2
			parentBond[i] = -1
		}
		parent[r] = -1
		queue := []int{r}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range m.adj[cur] {
				if parent[nb.Atom] == -2 {
					parent[nb.Atom] = cur
					parentBond[nb.Atom] = nb.Bond
					queue = append(queue, nb.Atom)
				}
			}
		}

		for _, b := range m.Bonds {
			u, v := b.Begin, b.End
			if parent[u] == -2 || parent[v] == -2 {
				continue
			}
			if parentBond[u] == b.Index || parentBond[v] == b.Index {
				continue
			}
			pu, bu := pathToRoot(u, parent, parentBond)
			pv, bv := pathToRoot(v, parent, parentBond)
			if !meetOnlyAtRoot(pu, pv) {
				continue
			}
			bonds := append(append([]int{b.Index}, bu...), bv...)
			key := bondKey(bonds)
			if seen[key] {
				continue
			}
			seen[key] = true

			// Ordered walk: r … u, then v … (child of r).
			atoms := make([]int, 0, len(pu)+len(pv)-1)
			for i := len(pu) - 1; i >= 0; i-- {
				atoms = append(atoms, pu[i])
			}
			atoms = append(atoms, pv[:len(pv)-1]...)
			out = append(out, ringCandidate{atoms: atoms, bonds: bonds, key: key})
		}
	}
	return out
}

// pathToRoot returns the atoms from a up to the BFS root (inclusive) and the
// bonds walked.
func pathToRoot(a int, parent, parentBond []int) ([]int, []int) {
	var atoms, bonds []int
	for cur := a; cur >= 0; cur = parent[cur] {
		atoms = append(atoms, cur)
		if parent[cur] >= 0 {
			bonds = append(bonds, parentBond[cur])
		}
	}
	return atoms, bonds
}

func meetOnlyAtRoot(pu, pv []int) bool {
	in := make(map[int]bool, len(pu))
	for _, a := range pu[:len(pu)-1] {
		in[a] = true
	}
	for _, a := range pv[:len(pv)-1] {
		if in[a] {
			return false
		}
	}
	return true
}

func bondKey(bonds []int) string {
	sorted := append([]int(nil), bonds...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, b := range sorted {
		parts[i] = strconv.Itoa(b)
	}
	return strings.Join(parts, ",")
}

//Personal.AI order the ending
