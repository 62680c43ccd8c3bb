package sheet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSheet is the domain prefix for sheet content hashes.
// The version suffix allows the hashed layout to change later.
const DomainSheet = "cellcalc/sheet/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Snapshot returns the durable content of a grid as a canonical-JSON-ready
// map: its dimensions and its non-empty expressions.
func Snapshot(g *Grid) map[string]any {
	cells := make(map[string]any)
	for addr, expr := range g.Expressions() {
		cells[string(addr)] = expr
	}
	return map[string]any{
		"rows":  g.Rows(),
		"cols":  g.Cols(),
		"cells": cells,
	}
}

// ContentHash identifies a grid by its dimensions and expressions.
// Display state is excluded: two grids with the same inputs hash equal
// whether or not they have been recalculated.
func ContentHash(g *Grid) (string, error) {
	canonical, err := MarshalCanonical(Snapshot(g))
	if err != nil {
		return "", fmt.Errorf("ContentHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSheet, canonical), nil
}
