package formula

import (
	"fmt"
)

// Binary precedence levels. Unary signs bind tighter than either.
const (
	precAdditive       = 1
	precMultiplicative = 2
)

// Parse turns expression text into an AST.
//
// On success it returns the root and a nil error. Otherwise the error is a
// SyntaxErrors value holding every diagnostic found, ordered by position,
// and the returned node is nil.
func Parse(src string) (Node, error) {
	root, errs := parse(src)
	if len(errs) > 0 {
		return nil, SyntaxErrors(errs)
	}
	return root, nil
}

// Check reports the syntax errors of src without building anything the
// caller can evaluate. A nil result means the expression is well formed.
func Check(src string) []SyntaxError {
	_, errs := parse(src)
	return errs
}

func parse(src string) (Node, []SyntaxError) {
	lx := newLexer(src)
	p := &parser{toks: lx.lexAll()}

	root := p.parseExpression(precAdditive)
	for p.current().kind != tokEOF {
		// Report the stray token, skip it, and keep parsing whatever
		// follows so later mistakes are reported in the same pass.
		tok := p.next()
		p.errorf(tok, "extraneous input '%s' expecting <EOF>", tok.display())
		if startsExpression(p.current().kind) {
			p.parseExpression(precAdditive)
		}
	}

	errs := append(lx.errs, p.errs...)
	sortByPosition(errs)
	return root, errs
}

type parser struct {
	toks []token
	pos  int
	errs []SyntaxError
}

func (p *parser) current() token {
	return p.toks[p.pos]
}

func (p *parser) peek(offset int) token {
	if p.pos+offset >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+offset]
}

// next consumes the current token. EOF is never consumed.
func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...any) {
	p.errs = append(p.errs, SyntaxError{
		Line:    tok.line,
		Column:  tok.col,
		Message: fmt.Sprintf(format, args...),
	})
}

// expect consumes a token of the wanted kind. When exactly one stray token
// sits in front of it, that token is reported and dropped. Otherwise the
// wanted token is reported missing and nothing is consumed.
func (p *parser) expect(kind tokenKind, want string) bool {
	tok := p.current()
	if tok.kind == kind {
		p.next()
		return true
	}
	if tok.kind != tokEOF && p.peek(1).kind == kind {
		p.errorf(tok, "extraneous input '%s' expecting '%s'", tok.display(), want)
		p.next()
		p.next()
		return true
	}
	p.errorf(tok, "missing '%s' at '%s'", want, tok.display())
	return false
}

// parseExpression is precedence climbing over the binary operators.
// Operands at the same level associate to the left.
func (p *parser) parseExpression(minPrec int) Node {
	left := p.parseUnary()
	for {
		op := p.current()
		prec := binaryPrecedence(op.kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		p.next()
		right := p.parseExpression(prec + 1)
		if prec == precMultiplicative {
			left = &Multiplicative{Op: op.text, Left: left, Right: right}
		} else {
			left = &Additive{Op: op.text, Left: left, Right: right}
		}
	}
}

func (p *parser) parseUnary() Node {
	tok := p.current()
	if tok.kind == tokPlus || tok.kind == tokMinus {
		p.next()
		return &UnarySign{Op: tok.text, Operand: p.parseUnary()}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() Node {
	tok := p.current()
	switch tok.kind {
	case tokNumber:
		p.next()
		return &NumberLiteral{Digits: tok.text}
	case tokCellRef:
		p.next()
		return &CellRef{Ref: tok.text}
	case tokInvalidRef:
		p.next()
		return &InvalidRef{Ref: tok.text}
	case tokIdent:
		p.next()
		if p.current().kind != tokLParen {
			p.errorf(p.current(), "mismatched input '%s' expecting '('", p.current().display())
			return nil
		}
		p.next()
		arg := p.parseExpression(precAdditive)
		p.expect(tokRParen, ")")
		return &FunctionCall{Name: tok.text, Arg: arg}
	case tokLParen:
		p.next()
		inner := p.parseExpression(precAdditive)
		p.expect(tokRParen, ")")
		return &Parenthesized{Inner: inner}
	}

	p.errorf(tok, "mismatched input '%s' expecting expression", tok.display())
	return nil
}

func binaryPrecedence(kind tokenKind) int {
	switch kind {
	case tokStar, tokSlash, tokMod, tokDiv:
		return precMultiplicative
	case tokPlus, tokMinus:
		return precAdditive
	}
	return 0
}

func startsExpression(kind tokenKind) bool {
	switch kind {
	case tokNumber, tokCellRef, tokInvalidRef, tokIdent, tokLParen, tokPlus, tokMinus:
		return true
	}
	return false
}
