package formula

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokCellRef
	tokInvalidRef
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokMod
	tokDiv
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

// display renders the token the way diagnostics quote it.
func (t token) display() string {
	if t.kind == tokEOF {
		return "<EOF>"
	}
	return t.text
}

type lexer struct {
	src  string
	pos  int // byte offset
	line int
	col  int // rune offset within line
	errs []SyntaxError
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

// lexAll tokenizes the whole input. Unrecognized characters are reported and
// skipped so the parser still sees the rest of the expression.
func (l *lexer) lexAll() []token {
	var toks []token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func (l *lexer) next() token {
	for {
		l.skipSpaces()
		if l.pos >= len(l.src) {
			return token{kind: tokEOF, line: l.line, col: l.col}
		}

		line, col, start := l.line, l.col, l.pos
		ch := l.src[l.pos]
		switch {
		case isDigit(ch):
			l.takeWhile(isDigit)
			return token{kind: tokNumber, text: l.src[start:l.pos], line: line, col: col}
		case isLetter(ch):
			return l.scanWord(line, col)
		}

		kind, ok := punctuation[ch]
		if ok {
			l.advance()
			return token{kind: kind, text: string(ch), line: line, col: col}
		}

		r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		l.advance()
		l.errs = append(l.errs, SyntaxError{
			Line:    line,
			Column:  col,
			Message: fmt.Sprintf("token recognition error at: '%s'", string(r)),
		})
	}
}

var punctuation = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
}

// scanWord reads a letter run and an optional digit run.
// Letters+digits form a reference; letters alone are a keyword or identifier.
func (l *lexer) scanWord(line, col int) token {
	start := l.pos
	l.takeWhile(isLetter)
	if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.takeWhile(isDigit)
		text := l.src[start:l.pos]
		kind := tokCellRef
		if _, _, err := sheet.ParseAddress(text); err != nil {
			kind = tokInvalidRef
		}
		return token{kind: kind, text: text, line: line, col: col}
	}

	text := l.src[start:l.pos]
	kind := tokIdent
	switch strings.ToLower(text) {
	case "mod":
		kind = tokMod
	case "div":
		kind = tokDiv
	}
	return token{kind: kind, text: text, line: line, col: col}
}

func (l *lexer) skipSpaces() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) takeWhile(pred func(byte) bool) {
	for l.pos < len(l.src) && pred(l.src[l.pos]) {
		l.advance()
	}
}

// advance moves past one rune, keeping line and column current.
func (l *lexer) advance() {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 0
		return
	}
	l.col++
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
