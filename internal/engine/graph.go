package engine

import (
	"regexp"
	"slices"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// refPattern matches anything shaped like a cell reference.
var refPattern = regexp.MustCompile(`[A-Za-z]+[0-9]+`)

// ExtractRefs returns every reference-shaped token in expr, uppercased, in
// order of appearance. Duplicates are kept. Whether the text parses is
// irrelevant.
func ExtractRefs(expr string) []sheet.Address {
	matches := refPattern.FindAllString(expr, -1)
	out := make([]sheet.Address, len(matches))
	for i, m := range matches {
		out[i] = sheet.Canonical(m)
	}
	return out
}

// DependencyGraph is the forward dependency map of one pass.
// An edge u → v means u's expression references v.
type DependencyGraph struct {
	nodes []sheet.Address
	edges map[sheet.Address][]sheet.Address
}

// NewGraph builds a graph from an explicit adjacency map. Every key becomes
// a node; targets that are not keys are dropped. Nodes and adjacency lists
// are sorted row-major and deduplicated.
func NewGraph(adjacency map[sheet.Address][]sheet.Address) *DependencyGraph {
	g := &DependencyGraph{
		nodes: make([]sheet.Address, 0, len(adjacency)),
		edges: make(map[sheet.Address][]sheet.Address, len(adjacency)),
	}
	for addr := range adjacency {
		g.nodes = append(g.nodes, addr)
	}
	slices.SortFunc(g.nodes, sheet.Compare)

	for _, u := range g.nodes {
		var targets []sheet.Address
		for _, v := range adjacency[u] {
			if _, ok := adjacency[v]; ok {
				targets = append(targets, v)
			}
		}
		slices.SortFunc(targets, sheet.Compare)
		g.edges[u] = slices.Compact(targets)
	}
	return g
}

// BuildGraph scans every non-empty expression in the grid. A cell depends on
// each existing cell whose address appears in its text, itself included.
func BuildGraph(grid *sheet.Grid) *DependencyGraph {
	adjacency := make(map[sheet.Address][]sheet.Address, grid.Len())
	for _, addr := range grid.Addresses() {
		cell, _ := grid.Cell(addr)
		var deps []sheet.Address
		if !cell.IsEmpty() {
			for _, ref := range ExtractRefs(cell.Expression) {
				if grid.Contains(ref) {
					deps = append(deps, ref)
				}
			}
		}
		adjacency[addr] = deps
	}
	return NewGraph(adjacency)
}

// Nodes returns every node in row-major order.
func (g *DependencyGraph) Nodes() []sheet.Address {
	return g.nodes
}

// DependsOn returns the cells addr reads, in row-major order.
func (g *DependencyGraph) DependsOn(addr sheet.Address) []sheet.Address {
	return g.edges[addr]
}

// EdgeCount returns the number of distinct dependency edges.
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, targets := range g.edges {
		n += len(targets)
	}
	return n
}
