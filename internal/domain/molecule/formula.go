package molecule

import (
	"sort"
	"strconv"
	"strings"
)

// hillFormula renders element counts in Hill order: C, then H, then the rest
// alphabetically.  Without carbon every symbol, H included, is alphabetical.
func hillFormula(counts map[string]int) string {
	var syms []string
	for s := range counts {
		if s == "*" {
			continue
		}
		syms = append(syms, s)
	}
	_, hasCarbon := counts["C"]
	sort.Slice(syms, func(i, j int) bool {
		if hasCarbon {
			ri, rj := hillRank(syms[i]), hillRank(syms[j])
			if ri != rj {
				return ri < rj
			}
		}
		return syms[i] < syms[j]
	})

	var sb strings.Builder
	for _, s := range syms {
		sb.WriteString(s)
		if n := counts[s]; n > 1 {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

func hillRank(sym string) int {
	switch sym {
	case "C":
		return 0
	case "H":
		return 1
	default:
		return 2
	}
}

//Personal.AI order the ending
