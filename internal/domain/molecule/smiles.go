package molecule

import (
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError reports a malformed SMILES or SMARTS string at a byte offset.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d in %q", e.Msg, e.Pos, e.Input)
}

// bondSpec is a bond symbol read ahead of the atom or ring digit it applies to.
type bondSpec struct {
	set bool
	typ BondType
	pos int
}

type ringOpening struct {
	atom int
	bond bondSpec
	pos  int
}

type smilesParser struct {
	src      string
	pos      int
	mol      *Molecule
	prev     int
	bond     bondSpec
	branches []int
	rings    map[int]ringOpening
}

// ParseSMILES parses and sanitises a SMILES string.  The returned molecule has
// hydrogens folded into atom H counts, Kekulé bond orders assigned, rings
// perceived and aromaticity re-perceived, so Kekulé and aromatic spellings of
// the same structure produce equivalent graphs.
func ParseSMILES(smiles string) (*Molecule, error) {
	p := &smilesParser{
		src:   smiles,
		mol:   newMolecule(),
		prev:  -1,
		rings: make(map[int]ringOpening),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	if err := sanitize(p.mol); err != nil {
		return nil, err
	}
	return p.mol, nil
}

func (p *smilesParser) fail(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Input: p.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *smilesParser) run() error {
	if strings.TrimSpace(p.src) == "" {
		return p.fail(0, "empty SMILES")
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.fail(p.pos, "branch without preceding atom")
			}
			if p.bond.set {
				return p.fail(p.pos, "bond symbol before branch")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++
		case c == ')':
			if len(p.branches) == 0 {
				return p.fail(p.pos, "unmatched ')'")
			}
			if p.bond.set {
				return p.fail(p.bond.pos, "dangling bond")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++
		case c == '.':
			if p.bond.set {
				return p.fail(p.bond.pos, "bond symbol before '.'")
			}
			p.prev = -1
			p.pos++
		case isSMILESBond(c):
			if p.bond.set {
				return p.fail(p.pos, "consecutive bond symbols")
			}
			if p.prev < 0 {
				return p.fail(p.pos, "bond without preceding atom")
			}
			p.bond = bondSpec{set: true, typ: smilesBondType(c), pos: p.pos}
			p.pos++
		case c == '%' || isDigit(c):
			if p.prev < 0 {
				return p.fail(p.pos, "ring closure without preceding atom")
			}
			start := p.pos
			n, err := p.readRingNumber()
			if err != nil {
				return err
			}
			if err := p.ringClosure(n, start); err != nil {
				return err
			}
		case c == '[':
			a, err := p.readBracketAtom()
			if err != nil {
				return err
			}
			p.attach(a)
		default:
			a, err := p.readOrganicAtom()
			if err != nil {
				return err
			}
			p.attach(a)
		}
	}
	if p.bond.set {
		return p.fail(p.bond.pos, "dangling bond")
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

func (p *smilesParser) attach(a *Atom) {
	idx := p.mol.addAtom(a)
	if p.prev >= 0 {
		t := p.bond.typ
		if !p.bond.set {
			t = p.implicitBond(p.prev, idx)
		}
		p.mol.addBond(p.prev, idx, t)
	}
	p.prev = idx
	p.bond = bondSpec{}
}

func (p *smilesParser) implicitBond(a, b int) BondType {
	if p.mol.Atoms[a].Aromatic && p.mol.Atoms[b].Aromatic {
		return BondAromatic
	}
	return BondSingle
}

func (p *smilesParser) readRingNumber() (int, error) {
	start := p.pos
	if isDigit(p.src[p.pos]) {
		p.pos++
		return int(p.src[start] - '0'), nil
	}
	// '%nn' or '%(nnn)'
	p.pos++
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		end := strings.IndexByte(p.src[p.pos:], ')')
		if end < 0 {
			return 0, p.fail(start, "unterminated ring number")
		}
		n, err := strconv.Atoi(p.src[p.pos+1 : p.pos+end])
		if err != nil {
			return 0, p.fail(start, "invalid ring number")
		}
		p.pos += end + 1
		return n, nil
	}
	if p.pos+2 > len(p.src) || !isDigit(p.src[p.pos]) || !isDigit(p.src[p.pos+1]) {
		return 0, p.fail(start, "'%%' must be followed by two digits")
	}
	n := int(p.src[p.pos]-'0')*10 + int(p.src[p.pos+1]-'0')
	p.pos += 2
	return n, nil
}

func (p *smilesParser) ringClosure(n, pos int) error {
	open, ok := p.rings[n]
	if !ok {
		p.rings[n] = ringOpening{atom: p.prev, bond: p.bond, pos: pos}
		p.bond = bondSpec{}
		return nil
	}
	delete(p.rings, n)
	if open.atom == p.prev {
		return p.fail(pos, "ring %d closes on its own atom", n)
	}
	if p.mol.BondBetween(open.atom, p.prev) != nil {
		return p.fail(pos, "ring %d duplicates an existing bond", n)
	}
	var t BondType
	switch {
	case open.bond.set && p.bond.set:
		if open.bond.typ != p.bond.typ {
			return p.fail(pos, "conflicting bond symbols on ring %d", n)
		}
		t = open.bond.typ
	case open.bond.set:
		t = open.bond.typ
	case p.bond.set:
		t = p.bond.typ
	default:
		t = p.implicitBond(open.atom, p.prev)
	}
	p.mol.addBond(open.atom, p.prev, t)
	p.bond = bondSpec{}
	return nil
}

func (p *smilesParser) readOrganicAtom() (*Atom, error) {
	start := p.pos
	rest := p.src[p.pos:]
	if strings.HasPrefix(rest, "Cl") || strings.HasPrefix(rest, "Br") {
		p.pos += 2
		return &Atom{Element: ElementBySymbol(rest[:2])}, nil
	}
	sym := rest[:1]
	switch {
	case sym == "*":
		p.pos++
		return &Atom{Element: ElementByNumber(0)}, nil
	case isOrganicSymbol(sym):
		p.pos++
		return &Atom{Element: ElementBySymbol(sym)}, nil
	case strings.Contains("bcnops", sym):
		p.pos++
		return &Atom{Element: aromaticElement(sym), Aromatic: true}, nil
	}
	return nil, p.fail(start, "unexpected character %q", sym)
}

func (p *smilesParser) readBracketAtom() (*Atom, error) {
	start := p.pos
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return nil, p.fail(start, "unterminated bracket atom")
	}
	body := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1

	a := &Atom{bracket: true}
	i := 0

	for i < len(body) && isDigit(body[i]) {
		i++
	}
	if i > 0 {
		a.Isotope, _ = strconv.Atoi(body[:i])
	}

	sym, aromatic, n := readElementSymbol(body[i:])
	if n == 0 {
		return nil, p.fail(start, "unknown element in %q", "["+body+"]")
	}
	if aromatic {
		a.Element = aromaticElement(sym)
	} else {
		a.Element = ElementBySymbol(sym)
	}
	a.Aromatic = aromatic
	i += n

	// Chirality is parsed and discarded.
	if i < len(body) && body[i] == '@' {
		i++
		if i < len(body) && body[i] == '@' {
			i++
		} else if i+1 < len(body) && isUpper(body[i]) && isUpper(body[i+1]) {
			i += 2
			for i < len(body) && isDigit(body[i]) {
				i++
			}
		}
	}

	if i < len(body) && body[i] == 'H' {
		i++
		j := i
		for i < len(body) && isDigit(body[i]) {
			i++
		}
		a.HCount = 1
		if i > j {
			a.HCount, _ = strconv.Atoi(body[j:i])
		}
	}

	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		ch := body[i]
		i++
		j := i
		for i < len(body) && isDigit(body[i]) {
			i++
		}
		if i > j {
			v, _ := strconv.Atoi(body[j:i])
			a.Charge = sign * v
		} else {
			mag := 1
			for i < len(body) && body[i] == ch {
				mag++
				i++
			}
			a.Charge = sign * mag
		}
	}

	if i < len(body) && body[i] == ':' {
		i++
		j := i
		for i < len(body) && isDigit(body[i]) {
			i++
		}
		if i == j {
			return nil, p.fail(start, "atom class without digits")
		}
		a.Class, _ = strconv.Atoi(body[j:i])
	}

	if i != len(body) {
		return nil, p.fail(start+1+i, "unexpected %q in bracket atom", body[i:])
	}
	return a, nil
}

// readElementSymbol reads an element symbol at the start of s.  Two-letter
// symbols win over one-letter ones.  It returns the symbol (lower-case for
// aromatic forms), whether it is aromatic, and the number of bytes consumed.
func readElementSymbol(s string) (string, bool, int) {
	if s == "" {
		return "", false, 0
	}
	if s[0] == '*' {
		return "*", false, 1
	}
	if isLower(s[0]) {
		if len(s) >= 2 {
			if _, ok := aromaticSymbols[s[:2]]; ok {
				return s[:2], true, 2
			}
		}
		if _, ok := aromaticSymbols[s[:1]]; ok {
			return s[:1], true, 1
		}
		return "", false, 0
	}
	if len(s) >= 2 && isLower(s[1]) && ElementBySymbol(s[:2]) != nil {
		return s[:2], false, 2
	}
	if ElementBySymbol(s[:1]) != nil && isUpper(s[0]) {
		return s[:1], false, 1
	}
	return "", false, 0
}

func isSMILESBond(c byte) bool {
	switch c {
	case '-', '=', '#', '$', ':', '/', '\\':
		return true
	}
	return false
}

func smilesBondType(c byte) BondType {
	switch c {
	case '=':
		return BondDouble
	case '#':
		return BondTriple
	case '$':
		return BondQuadruple
	case ':':
		return BondAromatic
	default:
		return BondSingle
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

//Personal.AI order the ending
