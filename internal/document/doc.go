// Package document reads and writes sheet documents on disk.
//
// A document persists only what a user typed: the grid dimensions and the
// raw expression of every non-empty cell. Display state is never stored; a
// loaded grid must be recalculated before it is shown.
//
// Three encodings are supported, chosen by file extension:
//
//	.yaml, .yml   strict YAML (unknown fields rejected)
//	.json         JSON (unknown fields rejected)
//	.cue          CUE, unified with the embedded #Sheet schema
//
// Example YAML document:
//
//	rows: 3
//	cols: 3
//	cells:
//	  A1: "10"
//	  B1: "A1 * 2"
//
// Omitted (or zero) dimensions default to 10 × 10. Expression text is
// normalised to Unicode NFC on load.
package document
