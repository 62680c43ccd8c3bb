package store

import (
	"encoding/json"
	"fmt"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// marshalCycle stores a cycle path as a canonical JSON array of addresses.
// An empty path is stored as "[]" so the column is never NULL.
func marshalCycle(path []sheet.Address) (string, error) {
	parts := make([]string, len(path))
	for i, addr := range path {
		parts[i] = string(addr)
	}
	data, err := sheet.MarshalCanonical(parts)
	if err != nil {
		return "", fmt.Errorf("marshal cycle: %w", err)
	}
	return string(data), nil
}

func unmarshalCycle(text string) ([]sheet.Address, error) {
	var parts []string
	if err := json.Unmarshal([]byte(text), &parts); err != nil {
		return nil, fmt.Errorf("unmarshal cycle: %w", err)
	}
	if len(parts) == 0 {
		return nil, nil
	}
	path := make([]sheet.Address, len(parts))
	for i, p := range parts {
		path[i] = sheet.Address(p)
	}
	return path, nil
}
