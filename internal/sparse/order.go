package sparse

import "slices"

// rcm returns a reverse Cuthill-McKee ordering of the symmetric pattern
// adj. perm[k] is the original index placed at position k.
func rcm(adj [][]int) []int {
	n := len(adj)
	deg := make([]int, n)
	for i, nb := range adj {
		deg[i] = len(nb)
	}
	byDegree := func(a, b int) int {
		if deg[a] != deg[b] {
			return deg[a] - deg[b]
		}
		return a - b
	}

	seeds := make([]int, n)
	for i := range seeds {
		seeds[i] = i
	}
	slices.SortFunc(seeds, byDegree)

	visited := make([]bool, n)
	order := make([]int, 0, n)
	for _, s := range seeds {
		if visited[s] {
			continue
		}
		visited[s] = true
		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			order = append(order, v)

			var next []int
			for _, w := range adj[v] {
				if !visited[w] {
					visited[w] = true
					next = append(next, w)
				}
			}
			slices.SortFunc(next, byDegree)
			queue = append(queue, next...)
		}
	}
	slices.Reverse(order)
	return order
}

// pattern returns the symmetrized off-diagonal adjacency of m.
func pattern(m *CSR) [][]int {
	adj := make([][]int, m.rows)
	for i := 0; i < m.rows; i++ {
		m.Row(i, func(j int, _ float64) {
			if i != j {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		})
	}
	for i := range adj {
		slices.Sort(adj[i])
		adj[i] = slices.Compact(adj[i])
	}
	return adj
}
