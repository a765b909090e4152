package clustools

// ThresholdComponents returns the connected components of the graph joining
// every pair of elements closer than cutoff. Each component lists its element
// ids in ascending order and components are ordered by their smallest id.
//
// Single-link cutoff clustering yields exactly these memberships, so the
// result doubles as an independent check of the chaining property.
func ThresholdComponents(m *Matrix, cutoff float64) [][]int {
	n := m.N()
	uf := NewUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.At(i, j) < cutoff {
				uf.Union(i, j)
			}
		}
	}

	index := make(map[int]int)
	var comps [][]int
	for i := 0; i < n; i++ {
		root := uf.Find(i)
		k, ok := index[root]
		if !ok {
			k = len(comps)
			index[root] = k
			comps = append(comps, make([]int, 0, uf.Size(root)))
		}
		comps[k] = append(comps[k], i)
	}
	return comps
}
