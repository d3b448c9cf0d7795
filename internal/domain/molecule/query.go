package molecule

// matchCtx carries per-call state through expression evaluation.  Recursive
// SMARTS results are memoised per atom for the lifetime of one match call.
type matchCtx struct {
	mol  *Molecule
	memo map[*recursiveExpr][]int8
}

func newMatchCtx(m *Molecule) *matchCtx {
	return &matchCtx{mol: m}
}

// atomExpr is a compiled SMARTS atom query.
type atomExpr interface {
	matchAtom(ctx *matchCtx, idx int) bool
}

// bondExpr is a compiled SMARTS bond query.
type bondExpr interface {
	matchBond(ctx *matchCtx, b *Bond) bool
}

type atomAnd struct{ l, r atomExpr }
type atomOr struct{ l, r atomExpr }
type atomNot struct{ x atomExpr }

func (e atomAnd) matchAtom(ctx *matchCtx, idx int) bool {
	return e.l.matchAtom(ctx, idx) && e.r.matchAtom(ctx, idx)
}

func (e atomOr) matchAtom(ctx *matchCtx, idx int) bool {
	return e.l.matchAtom(ctx, idx) || e.r.matchAtom(ctx, idx)
}

func (e atomNot) matchAtom(ctx *matchCtx, idx int) bool {
	return !e.x.matchAtom(ctx, idx)
}

type atomPrimKind int

const (
	primAny atomPrimKind = iota
	primAromatic
	primAliphatic
	primElement
	primAtomicNumber
	primDegree
	primTotalDegree
	primTotalH
	primImplicitH
	primValence
	primRingCount
	primInRing
	primRingSize
	primRingConnectivity
	primCharge
	primIsotope
)

// atomPrim is a single atom primitive.  For primElement, aromatic selects
// between the aliphatic and aromatic spelling.  atLeast turns an equality
// test into a >= test for primitives written without a count.
type atomPrim struct {
	kind     atomPrimKind
	value    int
	aromatic bool
	atLeast  bool
}

func (p atomPrim) cmp(v int) bool {
	if p.atLeast {
		return v >= p.value
	}
	return v == p.value
}

func (p atomPrim) matchAtom(ctx *matchCtx, idx int) bool {
	m := ctx.mol
	a := m.Atoms[idx]
	switch p.kind {
	case primAny:
		return true
	case primAromatic:
		return a.Aromatic
	case primAliphatic:
		return !a.Aromatic
	case primElement:
		return a.Number() == p.value && a.Aromatic == p.aromatic
	case primAtomicNumber:
		return a.Number() == p.value
	case primDegree:
		return p.cmp(m.Degree(idx))
	case primTotalDegree:
		return p.cmp(m.TotalDegree(idx))
	case primTotalH:
		return p.cmp(m.TotalHCount(idx))
	case primImplicitH:
		return p.cmp(a.ImplicitH)
	case primValence:
		return p.cmp(m.TotalValence(idx))
	case primRingCount:
		return p.cmp(m.AtomRingCount(idx))
	case primInRing:
		return m.AtomRingCount(idx) > 0
	case primRingSize:
		return m.inRingOfSize(idx, p.value)
	case primRingConnectivity:
		return p.cmp(m.RingConnectivity(idx))
	case primCharge:
		return a.Charge == p.value
	case primIsotope:
		return a.Isotope == p.value
	default:
		return false
	}
}

// inRingOfSize reports whether atom idx lies in an SSSR ring of exactly n
// atoms.
func (m *Molecule) inRingOfSize(idx, n int) bool {
	for _, r := range m.rings {
		if r.Size() != n {
			continue
		}
		for _, a := range r.Atoms {
			if a == idx {
				return true
			}
		}
	}
	return false
}

// recursiveExpr is $(...): the atom must be able to play the role of atom 0
// of the nested pattern.
type recursiveExpr struct {
	pattern *Pattern
}

func (e *recursiveExpr) matchAtom(ctx *matchCtx, idx int) bool {
	if ctx.memo == nil {
		ctx.memo = make(map[*recursiveExpr][]int8)
	}
	cache, ok := ctx.memo[e]
	if !ok {
		cache = make([]int8, len(ctx.mol.Atoms))
		ctx.memo[e] = cache
	}
	switch cache[idx] {
	case 1:
		return true
	case -1:
		return false
	}
	hit := e.pattern.matchRooted(ctx, idx)
	if hit {
		cache[idx] = 1
	} else {
		cache[idx] = -1
	}
	return hit
}

type bondAnd struct{ l, r bondExpr }
type bondOr struct{ l, r bondExpr }
type bondNot struct{ x bondExpr }

func (e bondAnd) matchBond(ctx *matchCtx, b *Bond) bool {
	return e.l.matchBond(ctx, b) && e.r.matchBond(ctx, b)
}

func (e bondOr) matchBond(ctx *matchCtx, b *Bond) bool {
	return e.l.matchBond(ctx, b) || e.r.matchBond(ctx, b)
}

func (e bondNot) matchBond(ctx *matchCtx, b *Bond) bool {
	return !e.x.matchBond(ctx, b)
}

type bondPrimKind int

const (
	bondPrimAny bondPrimKind = iota
	bondPrimSingle
	bondPrimDouble
	bondPrimTriple
	bondPrimQuadruple
	bondPrimAromatic
	bondPrimRing
	// bondPrimDefault is the implicit bond between adjacent SMARTS atoms.
	bondPrimDefault
)

type bondPrim struct {
	kind bondPrimKind
}

func (p bondPrim) matchBond(ctx *matchCtx, b *Bond) bool {
	switch p.kind {
	case bondPrimAny:
		return true
	case bondPrimSingle:
		return b.Type == BondSingle
	case bondPrimDouble:
		return b.Type == BondDouble
	case bondPrimTriple:
		return b.Type == BondTriple
	case bondPrimQuadruple:
		return b.Type == BondQuadruple
	case bondPrimAromatic:
		return b.Type == BondAromatic
	case bondPrimRing:
		return ctx.mol.BondInRing(b.Index)
	case bondPrimDefault:
		return b.Type == BondSingle || b.Type == BondAromatic
	default:
		return false
	}
}

//Personal.AI order the ending
