package molecule

import (
	"sort"
	"strconv"
	"strings"
)

// Matches reports whether the structure contains at least one embedding of
// the pattern.  Unparseable structures never match.
func (p *Pattern) Matches(s Structure) bool {
	switch v := s.(type) {
	case *Parsed:
		return p.HasMatch(v.Mol)
	case *Unparseable:
		return false
	default:
		return false
	}
}

// HasMatch reports whether m contains the pattern as a substructure.
func (p *Pattern) HasMatch(m *Molecule) bool {
	if m == nil || len(p.atoms) == 0 {
		return false
	}
	found := false
	s := newSearch(p, newMatchCtx(m))
	s.run(0, func([]int) bool {
		found = true
		return true
	})
	return found
}

// MatchAll returns every embedding of the pattern, one per distinct set of
// molecule atoms.  Each mapping is indexed by query atom.  Mappings are
// ordered by their sorted atom sets.  limit <= 0 means no limit.
func (p *Pattern) MatchAll(m *Molecule, limit int) [][]int {
	if m == nil || len(p.atoms) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out [][]int
	keys := make(map[int]string)
	s := newSearch(p, newMatchCtx(m))
	s.run(0, func(mapping []int) bool {
		key := atomSetKey(mapping)
		if seen[key] {
			return false
		}
		seen[key] = true
		keys[len(out)] = key
		out = append(out, append([]int(nil), mapping...))
		return limit > 0 && len(out) >= limit
	})
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })
	sorted := make([][]int, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

// CountMatches returns the number of distinct embeddings.
func (p *Pattern) CountMatches(m *Molecule) int {
	return len(p.MatchAll(m, 0))
}

// matchRooted reports whether query atom 0 can be mapped onto molecule atom
// idx as part of a complete embedding.
func (p *Pattern) matchRooted(ctx *matchCtx, idx int) bool {
	if len(p.atoms) == 0 || !p.atoms[0].matchAtom(ctx, idx) {
		return false
	}
	s := newSearch(p, ctx)
	s.assign(0, idx)
	found := false
	s.run(1, func([]int) bool {
		found = true
		return true
	})
	return found
}

func atomSetKey(mapping []int) string {
	set := append([]int(nil), mapping...)
	sort.Ints(set)
	parts := make([]string, len(set))
	for i, a := range set {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

// search is the backtracking state of one embedding enumeration.
type search struct {
	pat     *Pattern
	ctx     *matchCtx
	mapping []int
	used    []bool
}

func newSearch(p *Pattern, ctx *matchCtx) *search {
	s := &search{
		pat:     p,
		ctx:     ctx,
		mapping: make([]int, len(p.atoms)),
		used:    make([]bool, len(ctx.mol.Atoms)),
	}
	for i := range s.mapping {
		s.mapping[i] = -1
	}
	return s
}

func (s *search) assign(q, a int) {
	s.mapping[q] = a
	s.used[a] = true
}

func (s *search) unassign(q int) {
	s.used[s.mapping[q]] = false
	s.mapping[q] = -1
}

// run extends the mapping from position depth of the visiting order.  visit
// is called for every complete mapping and returns true to stop.
func (s *search) run(depth int, visit func([]int) bool) bool {
	if depth == len(s.pat.order) {
		return visit(s.mapping)
	}
	q := s.pat.order[depth]

	anchor := -1
	for _, nb := range s.pat.adj[q] {
		if s.mapping[nb.atom] >= 0 {
			anchor = s.mapping[nb.atom]
			break
		}
	}

	try := func(a int) bool {
		if s.used[a] || !s.feasible(q, a) {
			return false
		}
		s.assign(q, a)
		stop := s.run(depth+1, visit)
		s.unassign(q)
		return stop
	}

	if anchor >= 0 {
		for _, nb := range s.ctx.mol.adj[anchor] {
			if try(nb.Atom) {
				return true
			}
		}
		return false
	}
	for a := range s.ctx.mol.Atoms {
		if try(a) {
			return true
		}
	}
	return false
}

// feasible checks the atom expression of q against a and every query bond
// from q to an already mapped atom.
func (s *search) feasible(q, a int) bool {
	if !s.pat.atoms[q].matchAtom(s.ctx, a) {
		return false
	}
	for _, nb := range s.pat.adj[q] {
		other := s.mapping[nb.atom]
		if other < 0 {
			continue
		}
		b := s.ctx.mol.BondBetween(a, other)
		if b == nil || !s.pat.bonds[nb.bond].expr.matchBond(s.ctx, b) {
			return false
		}
	}
	return true
}

//Personal.AI order the ending
