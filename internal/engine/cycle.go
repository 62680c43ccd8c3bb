package engine

import (
	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

type visitState uint8

const (
	unvisited visitState = iota
	onStack
	done
)

// FindCycle returns the first cycle reachable by depth-first search, or nil.
//
// Roots are tried in row-major order and neighbours in adjacency order. When
// the search meets a node that is still on the stack, the cycle is the stack
// from that node to the top, in discovery order. A self-reference is a
// one-node cycle. Later, disjoint cycles are not reported.
func (g *DependencyGraph) FindCycle() []sheet.Address {
	state := make(map[sheet.Address]visitState, len(g.nodes))
	var stack []sheet.Address

	var visit func(u sheet.Address) []sheet.Address
	visit = func(u sheet.Address) []sheet.Address {
		state[u] = onStack
		stack = append(stack, u)

		for _, v := range g.edges[u] {
			switch state[v] {
			case unvisited:
				if cycle := visit(v); cycle != nil {
					return cycle
				}
			case onStack:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == v {
						cycle := make([]sheet.Address, len(stack)-i)
						copy(cycle, stack[i:])
						return cycle
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[u] = done
		return nil
	}

	for _, root := range g.nodes {
		if state[root] != unvisited {
			continue
		}
		if cycle := visit(root); cycle != nil {
			return cycle
		}
	}
	return nil
}
