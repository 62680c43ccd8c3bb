// Package formula parses and evaluates cell expressions.
//
// The language is small: non-negative integer literals, cell references
// (A1, aa10), parentheses, unary + and -, binary + - * / and the
// case-insensitive keyword operators mod and div, and the one-argument
// functions inc and dec. All arithmetic is arbitrary precision.
//
// Precedence, tightest first:
//
//	unary + -
//	* / mod div   (left-associative)
//	+ -           (left-associative)
//
// Parse is a pure function of the expression text. It reports every syntax
// error it finds in one pass, positioned by 1-based line and 0-based column.
//
// Evaluate walks an AST and never panics on well-formed input. Cell values
// come from a Resolver injected by the caller, so the evaluator has no access
// to grid state of its own. An error Result produced anywhere in the tree
// propagates unchanged to the root; the right operand of a binary operator is
// not evaluated when the left operand already failed.
package formula
