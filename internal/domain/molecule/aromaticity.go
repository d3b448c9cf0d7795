package molecule

// maxFusedSystem caps the number of rings in a fused system for which ring
// pairs and triples are also tested.
const maxFusedSystem = 6

// piElectrons returns the number of electrons atom idx donates to a ring pi
// system, or -1 when the atom cannot take part in one.
func (m *Molecule) piElectrons(idx int) int {
	a := m.Atoms[idx]
	doubles, ringDouble := 0, false
	exoToNegative := false
	for _, nb := range m.adj[idx] {
		b := m.Bonds[nb.Bond]
		switch b.Order {
		case 1:
		case 2:
			doubles++
			if m.bondRings[b.Index] > 0 {
				ringDouble = true
			} else if isElectronegative(m.Atoms[nb.Atom].Number()) {
				exoToNegative = true
			}
		default:
			return -1
		}
	}
	if doubles > 1 {
		return -1
	}
	if ringDouble {
		return 1
	}
	if doubles == 1 {
		if exoToNegative && a.Number() == 6 {
			return 0
		}
		return -1
	}

	conn := m.TotalDegree(idx)
	switch a.Number() {
	case 6:
		switch {
		case a.Charge == -1 && conn == 3:
			return 2
		case a.Charge == 1 && conn == 3:
			return 0
		}
	case 7, 15, 33:
		switch {
		case a.Charge == 0 && conn == 3:
			return 2
		case a.Charge == -1 && conn == 2:
			return 2
		}
	case 8, 16, 34, 52:
		if a.Charge == 0 && conn == 2 {
			return 2
		}
	case 5:
		if a.Charge == 0 && conn == 3 {
			return 0
		}
	}
	return -1
}

// perceiveAromaticity applies the 4n+2 rule to every SSSR ring and, within
// small fused systems, to every pair and triple of rings sharing bonds.
// Aromatic bonds keep their Kekulé Order.
func (m *Molecule) perceiveAromaticity() {
	if len(m.rings) == 0 {
		return
	}
	electrons := make([]int, len(m.Atoms))
	for i := range m.Atoms {
		electrons[i] = -2
	}
	pi := func(idx int) int {
		if electrons[idx] == -2 {
			electrons[idx] = m.piElectrons(idx)
		}
		return electrons[idx]
	}

	test := func(ringIdx []int) {
		atoms := make(map[int]bool)
		for _, ri := range ringIdx {
			for _, a := range m.rings[ri].Atoms {
				atoms[a] = true
			}
		}
		sum := 0
		for a := range atoms {
			e := pi(a)
			if e < 0 {
				return
			}
			sum += e
		}
		if sum%4 != 2 {
			return
		}
		for a := range atoms {
			m.Atoms[a].Aromatic = true
		}
		for _, ri := range ringIdx {
			for _, b := range m.rings[ri].Bonds {
				m.Bonds[b].Type = BondAromatic
			}
		}
	}

	for i := range m.rings {
		test([]int{i})
	}

	for _, system := range m.fusedSystems() {
		if len(system) < 2 || len(system) > maxFusedSystem {
			continue
		}
		for i := 0; i < len(system); i++ {
			for j := i + 1; j < len(system); j++ {
				if !m.ringsShareBond(system[i], system[j]) {
					continue
				}
				test([]int{system[i], system[j]})
				for k := j + 1; k < len(system); k++ {
					if m.ringsShareBond(system[i], system[k]) || m.ringsShareBond(system[j], system[k]) {
						test([]int{system[i], system[j], system[k]})
					}
				}
			}
		}
	}
}

func (m *Molecule) ringsShareBond(i, j int) bool {
	for _, a := range m.rings[i].Bonds {
		for _, b := range m.rings[j].Bonds {
			if a == b {
				return true
			}
		}
	}
	return false
}

// fusedSystems groups SSSR ring indices into sets connected by shared bonds.
func (m *Molecule) fusedSystems() [][]int {
	n := len(m.rings)
	seen := make([]bool, n)
	var out [][]int
	for i := 0; i < n; i++ {
		if seen[i] {
			continue
		}
		seen[i] = true
		group := []int{i}
		for q := 0; q < len(group); q++ {
			for j := 0; j < n; j++ {
				if !seen[j] && m.ringsShareBond(group[q], j) {
					seen[j] = true
					group = append(group, j)
				}
			}
		}
		out = append(out, group)
	}
	return out
}

//Personal.AI order the ending
