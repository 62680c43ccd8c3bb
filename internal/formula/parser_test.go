package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"5 + 3", "(5 + 3)"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"10 - 4 - 3", "((10 - 4) - 3)"},
		{"100 / 10 / 5", "((100 / 10) / 5)"},
		{"-2 * 3", "((-2) * 3)"},
		{"2 * -3", "(2 * (-3))"},
		{"- -4", "(-(-4))"},
		{"+a1 + 1", "((+a1) + 1)"},
		{"10 MOD 3 div 2", "((10 MOD 3) div 2)"},
		{"inc(dec(B2) * 2)", "inc((dec(B2) * 2))"},
		{"A0 + 1", "(!A0 + 1)"},
		{"1 +\n 2", "(1 + 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(root))
		})
	}
}

func TestParse_NodeKinds(t *testing.T) {
	root, err := Parse("(a1)")
	require.NoError(t, err)
	paren, ok := root.(*Parenthesized)
	require.True(t, ok)
	ref, ok := paren.Inner.(*CellRef)
	require.True(t, ok)
	assert.Equal(t, "a1", ref.Ref, "references keep their source spelling")

	root, err = Parse("B007")
	require.NoError(t, err)
	assert.IsType(t, &InvalidRef{}, root)

	root, err = Parse("Inc(1)")
	require.NoError(t, err)
	call, ok := root.(*FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "Inc", call.Name)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		src     string
		display string
		first   string
	}{
		{"5 * (10", "Syntax error at 1:7", "missing ')' at '<EOF>'"},
		{"inc(1, 2)", "Syntax error at 1:5", "token recognition error at: ','"},
		{"10 / / 5", "Syntax error at 1:5", "mismatched input '/' expecting expression"},
		{"", "Syntax error at 1:0", "mismatched input '<EOF>' expecting expression"},
		{"5 )", "Syntax error at 1:2", "extraneous input ')' expecting <EOF>"},
		{"foo + 1", "Syntax error at 1:4", "mismatched input '+' expecting '('"},
		{"1 +\n  $", "Syntax error at 2:2", "token recognition error at: '$'"},
		{"mod", "Syntax error at 1:0", "mismatched input 'mod' expecting expression"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root, err := Parse(tt.src)
			require.Error(t, err)
			assert.Nil(t, root)
			assert.True(t, IsSyntaxError(err))

			var errs SyntaxErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.display, errs.Display())
			assert.Equal(t, tt.display, err.Error())
			assert.Equal(t, tt.first, errs[0].Message)
		})
	}
}

func TestParse_CollectsAllErrors(t *testing.T) {
	errs := Check("1 $ + ) 2 ,")
	require.Len(t, errs, 4)

	assert.Equal(t, 1, errs[0].Line)
	assert.Equal(t, 2, errs[0].Column)
	assert.Contains(t, errs[0].Message, "'$'")

	assert.Equal(t, 6, errs[1].Column)
	assert.Equal(t, "mismatched input ')' expecting expression", errs[1].Message)

	assert.Equal(t, 6, errs[2].Column)
	assert.Equal(t, "extraneous input ')' expecting <EOF>", errs[2].Message)

	assert.Equal(t, 10, errs[3].Column)
	assert.Contains(t, errs[3].Message, "','")
}

func TestParse_ExtraArgumentRecovers(t *testing.T) {
	errs := Check("inc(1 2)")
	require.Len(t, errs, 1)
	assert.Equal(t, "extraneous input '2' expecting ')'", errs[0].Message)
	assert.Equal(t, 6, errs[0].Column)
}

func TestCheck_Valid(t *testing.T) {
	assert.Empty(t, Check("inc(A1) * (2 + B2) mod 7"))
}

func TestSyntaxError_Error(t *testing.T) {
	e := SyntaxError{Line: 1, Column: 3, Message: "boom"}
	assert.Equal(t, "1:3: boom", e.Error())
	assert.Equal(t, "Syntax error", SyntaxErrors(nil).Display())
}
