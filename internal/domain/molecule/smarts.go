package molecule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

type queryBond struct {
	begin int
	end   int
	expr  bondExpr
}

type queryNeighbor struct {
	atom int
	bond int
}

// Pattern is a compiled SMARTS query.  It is immutable after CompilePattern
// returns and may be shared between goroutines.
type Pattern struct {
	smarts string
	atoms  []atomExpr
	bonds  []queryBond
	adj    [][]queryNeighbor

	// order lists query atoms so that each one after the first of its
	// component has a neighbour earlier in the list.
	order []int
}

// CompilePattern parses a SMARTS string.  Syntax errors are reported as
// ErrCodePatternInvalid.
func CompilePattern(smarts string) (*Pattern, error) {
	p, err := compile(smarts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePatternInvalid, "invalid SMARTS pattern").
			WithDetail(fmt.Sprintf("smarts=%s", smarts))
	}
	return p, nil
}

// MustCompilePattern is CompilePattern for package-level constants.
func MustCompilePattern(smarts string) *Pattern {
	p, err := CompilePattern(smarts)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the SMARTS text the pattern was compiled from.
func (p *Pattern) String() string { return p.smarts }

// NumAtoms returns the number of query atoms.
func (p *Pattern) NumAtoms() int { return len(p.atoms) }

func compile(smarts string) (*Pattern, error) {
	sp := &smartsParser{
		src:   smarts,
		pat:   &Pattern{smarts: smarts},
		prev:  -1,
		rings: make(map[int]smartsRing),
	}
	if err := sp.run(); err != nil {
		return nil, err
	}
	sp.pat.buildOrder()
	return sp.pat, nil
}

type smartsRing struct {
	atom int
	bond bondExpr
	pos  int
}

type smartsParser struct {
	src      string
	pos      int
	pat      *Pattern
	prev     int
	bond     bondExpr
	bondPos  int
	branches []int
	rings    map[int]smartsRing
}

func (p *smartsParser) fail(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Input: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *smartsParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *smartsParser) run() error {
	if strings.TrimSpace(p.src) == "" {
		return p.fail(0, "empty SMARTS")
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.fail(p.pos, "branch without preceding atom")
			}
			if p.bond != nil {
				return p.fail(p.pos, "bond expression before branch")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++
		case c == ')':
			if len(p.branches) == 0 {
				return p.fail(p.pos, "unmatched ')'")
			}
			if p.bond != nil {
				return p.fail(p.bondPos, "dangling bond")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++
		case c == '.':
			if p.bond != nil {
				return p.fail(p.bondPos, "bond expression before '.'")
			}
			p.prev = -1
			p.pos++
		case isSMARTSBondChar(c):
			if p.prev < 0 {
				return p.fail(p.pos, "bond without preceding atom")
			}
			if p.bond != nil {
				return p.fail(p.pos, "consecutive bond expressions")
			}
			p.bondPos = p.pos
			e, err := p.parseBondLowAnd()
			if err != nil {
				return err
			}
			p.bond = e
		case c == '%' || isDigit(c):
			if p.prev < 0 {
				return p.fail(p.pos, "ring closure without preceding atom")
			}
			if err := p.ringClosure(); err != nil {
				return err
			}
		case c == '[':
			p.pos++
			e, err := p.parseAtomLowAnd()
			if err != nil {
				return err
			}
			if p.peek() != ']' {
				return p.fail(p.pos, "expected ']'")
			}
			p.pos++
			p.attach(e)
		default:
			e, err := p.readOrganicAtom()
			if err != nil {
				return err
			}
			p.attach(e)
		}
	}
	if p.bond != nil {
		return p.fail(p.bondPos, "dangling bond")
	}
	if len(p.branches) > 0 {
		return p.fail(len(p.src), "unclosed branch")
	}
	if len(p.rings) > 0 {
		first := -1
		for n, open := range p.rings {
			if first < 0 || open.pos < p.rings[first].pos {
				first = n
			}
		}
		return p.fail(p.rings[first].pos, "unclosed ring %d", first)
	}
	return nil
}

func (p *smartsParser) attach(e atomExpr) {
	pat := p.pat
	idx := len(pat.atoms)
	pat.atoms = append(pat.atoms, e)
	pat.adj = append(pat.adj, nil)
	if p.prev >= 0 {
		pat.addBond(p.prev, idx, p.bondOrDefault(p.bond))
	}
	p.prev = idx
	p.bond = nil
}

func (p *smartsParser) bondOrDefault(e bondExpr) bondExpr {
	if e == nil {
		return bondPrim{kind: bondPrimDefault}
	}
	return e
}

func (pat *Pattern) addBond(a, b int, e bondExpr) {
	idx := len(pat.bonds)
	pat.bonds = append(pat.bonds, queryBond{begin: a, end: b, expr: e})
	pat.adj[a] = append(pat.adj[a], queryNeighbor{atom: b, bond: idx})
	pat.adj[b] = append(pat.adj[b], queryNeighbor{atom: a, bond: idx})
}

func (p *smartsParser) ringClosure() error {
	start := p.pos
	var n int
	if isDigit(p.src[p.pos]) {
		n = int(p.src[p.pos] - '0')
		p.pos++
	} else {
		p.pos++
		if p.pos+2 > len(p.src) || !isDigit(p.src[p.pos]) || !isDigit(p.src[p.pos+1]) {
			return p.fail(start, "'%%' must be followed by two digits")
		}
		n = int(p.src[p.pos]-'0')*10 + int(p.src[p.pos+1]-'0')
		p.pos += 2
	}

	open, ok := p.rings[n]
	if !ok {
		p.rings[n] = smartsRing{atom: p.prev, bond: p.bond, pos: start}
		p.bond = nil
		return nil
	}
	delete(p.rings, n)
	if open.atom == p.prev {
		return p.fail(start, "ring %d closes on its own atom", n)
	}
	e := open.bond
	if e == nil {
		e = p.bond
	}
	p.pat.addBond(open.atom, p.prev, p.bondOrDefault(e))
	p.bond = nil
	return nil
}

// readOrganicAtom handles atoms written outside brackets.
func (p *smartsParser) readOrganicAtom() (atomExpr, error) {
	start := p.pos
	rest := p.src[p.pos:]
	if strings.HasPrefix(rest, "Cl") || strings.HasPrefix(rest, "Br") {
		p.pos += 2
		return atomPrim{kind: primElement, value: ElementBySymbol(rest[:2]).Number}, nil
	}
	c := rest[0]
	p.pos++
	switch {
	case c == '*':
		return atomPrim{kind: primAny}, nil
	case c == 'a':
		return atomPrim{kind: primAromatic}, nil
	case c == 'A':
		return atomPrim{kind: primAliphatic}, nil
	case isOrganicSymbol(rest[:1]):
		return atomPrim{kind: primElement, value: ElementBySymbol(rest[:1]).Number}, nil
	case strings.IndexByte("bcnops", c) >= 0:
		return atomPrim{kind: primElement, value: aromaticElement(rest[:1]).Number, aromatic: true}, nil
	}
	return nil, p.fail(start, "unexpected character %q", c)
}

// Atom expressions, lowest to highest precedence: ';'  ','  '&' or implicit  '!'.

func (p *smartsParser) parseAtomLowAnd() (atomExpr, error) {
	l, err := p.parseAtomOr()
	if err != nil {
		return nil, err
	}
	for p.peek() == ';' {
		p.pos++
		r, err := p.parseAtomOr()
		if err != nil {
			return nil, err
		}
		l = atomAnd{l: l, r: r}
	}
	return l, nil
}

func (p *smartsParser) parseAtomOr() (atomExpr, error) {
	l, err := p.parseAtomHighAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == ',' {
		p.pos++
		r, err := p.parseAtomHighAnd()
		if err != nil {
			return nil, err
		}
		l = atomOr{l: l, r: r}
	}
	return l, nil
}

func (p *smartsParser) parseAtomHighAnd() (atomExpr, error) {
	first := true
	var l atomExpr
	for {
		c := p.peek()
		if c == '&' && !first {
			p.pos++
			c = p.peek()
		} else if c == 0 || c == ']' || c == ',' || c == ';' || c == ')' {
			if first {
				return nil, p.fail(p.pos, "empty atom expression")
			}
			return l, nil
		}
		r, err := p.parseAtomUnary(first && l == nil)
		if err != nil {
			return nil, err
		}
		if l == nil {
			l = r
		} else {
			l = atomAnd{l: l, r: r}
		}
		first = false
	}
}

func (p *smartsParser) parseAtomUnary(leading bool) (atomExpr, error) {
	if p.peek() == '!' {
		p.pos++
		x, err := p.parseAtomUnary(false)
		if err != nil {
			return nil, err
		}
		return atomNot{x: x}, nil
	}
	return p.parseAtomPrimitive(leading)
}

// readCount reads an optional unsigned integer.  ok is false when no digit
// follows.
func (p *smartsParser) readCount() (n int, ok bool) {
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, _ = strconv.Atoi(p.src[start:p.pos])
	return n, true
}

func (p *smartsParser) parseAtomPrimitive(leading bool) (atomExpr, error) {
	start := p.pos
	if p.pos >= len(p.src) {
		return nil, p.fail(start, "unterminated atom expression")
	}
	c := p.src[p.pos]
	rest := p.src[p.pos:]

	switch {
	case isDigit(c):
		n, _ := p.readCount()
		return atomPrim{kind: primIsotope, value: n}, nil
	case c == '*':
		p.pos++
		return atomPrim{kind: primAny}, nil
	case c == '#':
		p.pos++
		n, ok := p.readCount()
		if !ok {
			return nil, p.fail(start, "'#' must be followed by an atomic number")
		}
		return atomPrim{kind: primAtomicNumber, value: n}, nil
	case c == '+' || c == '-':
		return p.parseCharge(), nil
	case c == '@':
		for p.pos < len(p.src) && (p.src[p.pos] == '@' || p.src[p.pos] == '?') {
			p.pos++
		}
		return atomPrim{kind: primAny}, nil
	case c == ':':
		p.pos++
		if _, ok := p.readCount(); !ok {
			return nil, p.fail(start, "':' must be followed by an atom map number")
		}
		return atomPrim{kind: primAny}, nil
	case c == '$':
		return p.parseRecursive()
	case c == 'H' && leading && !(len(rest) > 1 && isDigit(rest[1])) && !(len(rest) > 1 && isLower(rest[1])):
		p.pos++
		return atomPrim{kind: primAtomicNumber, value: 1}, nil
	case isUpper(c):
		if len(rest) >= 2 && isLower(rest[1]) {
			if el := ElementBySymbol(rest[:2]); el != nil {
				p.pos += 2
				return atomPrim{kind: primElement, value: el.Number}, nil
			}
		}
		switch c {
		case 'A':
			p.pos++
			return atomPrim{kind: primAliphatic}, nil
		case 'D':
			p.pos++
			return p.countPrim(primDegree, 1), nil
		case 'X':
			p.pos++
			return p.countPrim(primTotalDegree, 1), nil
		case 'H':
			p.pos++
			return p.countPrim(primTotalH, 1), nil
		case 'R':
			p.pos++
			if n, ok := p.readCount(); ok {
				return atomPrim{kind: primRingCount, value: n}, nil
			}
			return atomPrim{kind: primInRing}, nil
		}
		if el := ElementBySymbol(rest[:1]); el != nil {
			p.pos++
			return atomPrim{kind: primElement, value: el.Number}, nil
		}
	case isLower(c):
		if len(rest) >= 2 {
			if el := aromaticElement(rest[:2]); el != nil {
				p.pos += 2
				return atomPrim{kind: primElement, value: el.Number, aromatic: true}, nil
			}
		}
		switch c {
		case 'a':
			p.pos++
			return atomPrim{kind: primAromatic}, nil
		case 'h':
			p.pos++
			if n, ok := p.readCount(); ok {
				return atomPrim{kind: primImplicitH, value: n}, nil
			}
			return atomPrim{kind: primImplicitH, value: 1, atLeast: true}, nil
		case 'v':
			p.pos++
			return p.countPrim(primValence, 1), nil
		case 'r':
			p.pos++
			if n, ok := p.readCount(); ok {
				return atomPrim{kind: primRingSize, value: n}, nil
			}
			return atomPrim{kind: primInRing}, nil
		case 'x':
			p.pos++
			if n, ok := p.readCount(); ok {
				return atomPrim{kind: primRingConnectivity, value: n}, nil
			}
			return atomPrim{kind: primRingConnectivity, value: 1, atLeast: true}, nil
		}
		if el := aromaticElement(rest[:1]); el != nil {
			p.pos++
			return atomPrim{kind: primElement, value: el.Number, aromatic: true}, nil
		}
	}
	return nil, p.fail(start, "unknown atom primitive %q", c)
}

func (p *smartsParser) countPrim(kind atomPrimKind, def int) atomExpr {
	if n, ok := p.readCount(); ok {
		return atomPrim{kind: kind, value: n}
	}
	return atomPrim{kind: kind, value: def}
}

// parseCharge reads '+', '++', '+n', '-', '--' or '-n'.
func (p *smartsParser) parseCharge() atomExpr {
	sign := 1
	if p.src[p.pos] == '-' {
		sign = -1
	}
	sym := p.src[p.pos]
	p.pos++
	if n, ok := p.readCount(); ok {
		return atomPrim{kind: primCharge, value: sign * n}
	}
	n := 1
	for p.peek() == sym {
		n++
		p.pos++
	}
	return atomPrim{kind: primCharge, value: sign * n}
}

func (p *smartsParser) parseRecursive() (atomExpr, error) {
	start := p.pos
	if !strings.HasPrefix(p.src[p.pos:], "$(") {
		return nil, p.fail(start, "'$' must be followed by '('")
	}
	depth := 0
	end := -1
	for i := p.pos + 1; i < len(p.src); i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, p.fail(start, "unterminated recursive SMARTS")
	}
	inner, err := compile(p.src[p.pos+2 : end])
	if err != nil {
		return nil, p.fail(start, "recursive SMARTS: %v", err)
	}
	p.pos = end + 1
	return &recursiveExpr{pattern: inner}, nil
}

// Bond expressions share the atom operator precedence.

func isSMARTSBondChar(c byte) bool {
	switch c {
	case '-', '=', '#', '$', ':', '~', '@', '/', '\\', '!', '&', ',', ';':
		return true
	}
	return false
}

func isBondPrimitiveChar(c byte) bool {
	switch c {
	case '-', '=', '#', '$', ':', '~', '@', '/', '\\':
		return true
	}
	return false
}

func (p *smartsParser) parseBondLowAnd() (bondExpr, error) {
	l, err := p.parseBondOr()
	if err != nil {
		return nil, err
	}
	for p.peek() == ';' {
		p.pos++
		r, err := p.parseBondOr()
		if err != nil {
			return nil, err
		}
		l = bondAnd{l: l, r: r}
	}
	return l, nil
}

func (p *smartsParser) parseBondOr() (bondExpr, error) {
	l, err := p.parseBondHighAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == ',' {
		p.pos++
		r, err := p.parseBondHighAnd()
		if err != nil {
			return nil, err
		}
		l = bondOr{l: l, r: r}
	}
	return l, nil
}

func (p *smartsParser) parseBondHighAnd() (bondExpr, error) {
	var l bondExpr
	for {
		c := p.peek()
		if c == '&' && l != nil {
			p.pos++
			c = p.peek()
		} else if c != '!' && !isBondPrimitiveChar(c) {
			if l == nil {
				return nil, p.fail(p.pos, "empty bond expression")
			}
			return l, nil
		}
		r, err := p.parseBondUnary()
		if err != nil {
			return nil, err
		}
		if l == nil {
			l = r
		} else {
			l = bondAnd{l: l, r: r}
		}
	}
}

func (p *smartsParser) parseBondUnary() (bondExpr, error) {
	if p.peek() == '!' {
		p.pos++
		x, err := p.parseBondUnary()
		if err != nil {
			return nil, err
		}
		return bondNot{x: x}, nil
	}
	start := p.pos
	c := p.peek()
	if !isBondPrimitiveChar(c) {
		return nil, p.fail(start, "expected bond primitive")
	}
	p.pos++
	switch c {
	case '-', '/', '\\':
		return bondPrim{kind: bondPrimSingle}, nil
	case '=':
		return bondPrim{kind: bondPrimDouble}, nil
	case '#':
		return bondPrim{kind: bondPrimTriple}, nil
	case '$':
		return bondPrim{kind: bondPrimQuadruple}, nil
	case ':':
		return bondPrim{kind: bondPrimAromatic}, nil
	case '~':
		return bondPrim{kind: bondPrimAny}, nil
	default:
		return bondPrim{kind: bondPrimRing}, nil
	}
}

// buildOrder fixes the atom visiting order: breadth-first from atom 0, then
// from each not yet reached atom of a later component.
func (pat *Pattern) buildOrder() {
	seen := make([]bool, len(pat.atoms))
	for root := range pat.atoms {
		if seen[root] {
			continue
		}
		seen[root] = true
		queue := []int{root}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			pat.order = append(pat.order, cur)
			for _, nb := range pat.adj[cur] {
				if !seen[nb.atom] {
					seen[nb.atom] = true
					queue = append(queue, nb.atom)
				}
			}
		}
	}
}

//Personal.AI order the ending
