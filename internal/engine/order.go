package engine

import (
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// TopologicalOrder schedules every node not in exclude using Kahn's algorithm.
//
// Edges are reversed for propagation: if u reads v, finishing v decrements
// u's in-degree. Edges into excluded nodes are ignored, so a cell that reads
// a cycle member is still scheduled and sees that member's error when it is
// evaluated.
//
// For every scheduled u that reads a scheduled v, v precedes u in order.
// Nodes that can never reach in-degree zero (they sit on or behind another
// cycle) are returned in unreached, row-major.
func (g *DependencyGraph) TopologicalOrder(exclude map[sheet.Address]bool) (order, unreached []sheet.Address) {
	indegree := make(map[sheet.Address]int, len(g.nodes))
	dependents := make(map[sheet.Address][]sheet.Address, len(g.nodes))

	for _, u := range g.nodes {
		if exclude[u] {
			continue
		}
		indegree[u] += 0
		for _, v := range g.edges[u] {
			if exclude[v] {
				continue
			}
			indegree[u]++
			dependents[v] = append(dependents[v], u)
		}
	}

	queue := make([]sheet.Address, 0, len(indegree))
	for _, u := range g.nodes {
		if !exclude[u] && indegree[u] == 0 {
			queue = append(queue, u)
		}
	}

	order = make([]sheet.Address, 0, len(indegree))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		for _, m := range dependents[n] {
			indegree[m]--
			if indegree[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	if len(order) < len(indegree) {
		scheduled := make(map[sheet.Address]bool, len(order))
		for _, addr := range order {
			scheduled[addr] = true
		}
		for _, u := range g.nodes {
			if !exclude[u] && !scheduled[u] {
				unreached = append(unreached, u)
			}
		}
	}
	return order, unreached
}
