package molecule

// Element describes a chemical element as far as structure parsing needs it.
type Element struct {
	Number int
	Symbol string

	// Valences lists the allowed neutral valences in ascending order.  An
	// empty list means any valence is accepted (metals, unusual elements).
	Valences []int
}

// symbols is indexed by atomic number; index 0 is the SMILES wildcard.
var symbols = []string{
	"*",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba",
	"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra",
	"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", "Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var defaultValences = map[int][]int{
	1:  {1},
	2:  {0},
	5:  {3},
	6:  {4},
	7:  {3},
	8:  {2},
	9:  {1},
	10: {0},
	13: {3},
	14: {4},
	15: {3, 5, 7},
	16: {2, 4, 6},
	17: {1},
	18: {0},
	32: {4},
	33: {3, 5, 7},
	34: {2, 4, 6},
	35: {1},
	36: {0},
	52: {2, 4, 6},
	53: {1, 3, 5},
	54: {0, 2, 4, 6},
	86: {0},
}

var (
	elementsByNumber []*Element
	elementsBySymbol map[string]*Element
)

func init() {
	elementsByNumber = make([]*Element, len(symbols))
	elementsBySymbol = make(map[string]*Element, len(symbols))
	for z, sym := range symbols {
		e := &Element{Number: z, Symbol: sym, Valences: defaultValences[z]}
		elementsByNumber[z] = e
		elementsBySymbol[sym] = e
	}
}

// ElementByNumber returns the element with atomic number z, or nil.
func ElementByNumber(z int) *Element {
	if z < 0 || z >= len(elementsByNumber) {
		return nil
	}
	return elementsByNumber[z]
}

// ElementBySymbol returns the element for a case-sensitive symbol
// ("Cl", not "cl"), or nil.
func ElementBySymbol(sym string) *Element {
	return elementsBySymbol[sym]
}

// organicSubset lists the symbols allowed outside brackets in SMILES.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// aromaticSymbols maps lower-case aromatic symbols to element symbols.
// Only b, c, n, o, p and s may appear outside brackets.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S",
	"se": "Se", "as": "As", "te": "Te", "si": "Si", "ge": "Ge",
}

func aromaticElement(sym string) *Element {
	if up, ok := aromaticSymbols[sym]; ok {
		return elementsBySymbol[up]
	}
	return nil
}

// pBlockPeriods groups the light p-block so that a charged atom can borrow the
// valences of its isoelectronic neighbour (N+ behaves like C, O- like F).
var pBlockPeriods = [][]int{
	{5, 6, 7, 8, 9, 10},
	{13, 14, 15, 16, 17, 18},
	{31, 32, 33, 34, 35, 36},
	{49, 50, 51, 52, 53, 54},
}

// allowedValences returns the valence list for element z carrying charge q.
// A nil result means the element is not valence-checked.
func allowedValences(z, q int) []int {
	if q == 0 {
		return defaultValences[z]
	}
	for _, period := range pBlockPeriods {
		for i, n := range period {
			if n != z {
				continue
			}
			j := i - q
			if j < 0 || j >= len(period) {
				return nil
			}
			return defaultValences[period[j]]
		}
	}
	return nil
}

// isElectronegative reports whether an exocyclic double bond to z leaves the
// ring atom able to sit in an aromatic system (C=O, C=N, C=S in pyridones,
// uracils and thiones).
func isElectronegative(z int) bool {
	switch z {
	case 7, 8, 16, 34:
		return true
	}
	return false
}

func isOrganicSymbol(sym string) bool {
	return organicSubset[sym]
}


//Personal.AI order the ending
