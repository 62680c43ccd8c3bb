package formula

import (
	"math/big"
	"strings"

	"github.com/Mykola-Oleh/CellCalculator/internal/sheet"
)

// Resolver supplies the value of a referenced cell. The address is already
// canonical. Implementations must not re-enter parsing or scheduling.
type Resolver func(addr sheet.Address) Result

// Evaluate computes the value of a tree.
func Evaluate(n Node, resolve Resolver) Result {
	switch n := n.(type) {
	case *NumberLiteral:
		v, ok := new(big.Int).SetString(n.Digits, 10)
		if !ok {
			return Fail("Invalid number literal: %s", n.Digits)
		}
		return OK(v)

	case *CellRef:
		return resolve(sheet.Canonical(n.Ref))

	case *Parenthesized:
		return Evaluate(n.Inner, resolve)

	case *UnarySign:
		operand := Evaluate(n.Operand, resolve)
		if operand.IsError() {
			return operand
		}
		switch n.Op {
		case "+":
			return operand
		case "-":
			return OK(new(big.Int).Neg(operand.Int()))
		}
		return Fail("Unknown unary operator: %s", n.Op)

	case *Multiplicative:
		left, right, failed := evalOperands(n.Left, n.Right, resolve)
		if failed != nil {
			return *failed
		}
		return multiplicative(strings.ToLower(n.Op), left, right)

	case *Additive:
		left, right, failed := evalOperands(n.Left, n.Right, resolve)
		if failed != nil {
			return *failed
		}
		switch n.Op {
		case "+":
			return OK(new(big.Int).Add(left, right))
		case "-":
			return OK(new(big.Int).Sub(left, right))
		}
		return Fail("Unknown operator: %s", n.Op)

	case *FunctionCall:
		arg := Evaluate(n.Arg, resolve)
		if arg.IsError() {
			return arg
		}
		name := strings.ToLower(n.Name)
		fn, ok := functions[name]
		if !ok {
			return Fail("Unknown function '%s'", name)
		}
		return OK(fn(arg.Int()))

	case *InvalidRef:
		return Fail(MsgInvalidReference)
	}
	return Fail(MsgInvalidExpression)
}

// evalOperands evaluates left then right, stopping at the first error.
func evalOperands(l, r Node, resolve Resolver) (left, right *big.Int, failed *Result) {
	lv := Evaluate(l, resolve)
	if lv.IsError() {
		return nil, nil, &lv
	}
	rv := Evaluate(r, resolve)
	if rv.IsError() {
		return nil, nil, &rv
	}
	return lv.Int(), rv.Int(), nil
}

// multiplicative applies a lowercased * / mod div. Division truncates toward
// zero and the remainder takes the sign of the dividend.
func multiplicative(op string, left, right *big.Int) Result {
	switch op {
	case "*":
		return OK(new(big.Int).Mul(left, right))
	case "/":
		if right.Sign() == 0 {
			return Fail(MsgDivisionByZero)
		}
		return OK(new(big.Int).Quo(left, right))
	case "mod":
		if right.Sign() == 0 {
			return Fail(MsgModuloByZero)
		}
		return OK(new(big.Int).Rem(left, right))
	case "div":
		if right.Sign() == 0 {
			return Fail(MsgIntegerDivByZero)
		}
		return OK(new(big.Int).Quo(left, right))
	}
	return Fail("Unknown operator: %s", op)
}

var one = big.NewInt(1)

var functions = map[string]func(*big.Int) *big.Int{
	"inc": func(x *big.Int) *big.Int { return new(big.Int).Add(x, one) },
	"dec": func(x *big.Int) *big.Int { return new(big.Int).Sub(x, one) },
}
