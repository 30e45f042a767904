package interpreter

import (
	"bytes"
	"testing"

	"riau/lexer"
	"riau/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walk parses and interprets src, capturing stdout.
func walk(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	require.NoError(t, err)
	program, err := parser.New(tokens).Parse()
	require.NoError(t, err)

	var out bytes.Buffer
	interp := Make()
	interp.stdout = &out
	runErr := interp.Interpret(program)
	return out.String(), runErr
}

func TestArithmeticWithPrecedence(t *testing.T) {
	out, err := walk(t, "let x = 10 + 20 * 2\nprint(x)")
	require.NoError(t, err)
	assert.Equal(t, "50\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := walk(t, `print("Hello" + " World")`)
	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", out)
}

func TestComparisonPrintsBool(t *testing.T) {
	out, err := walk(t, `print(1 < 2)`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := walk(t, `print(10 / 0)`)
	require.Error(t, err)
	assert.IsType(t, RuntimeError{}, err)
}

func TestIfElseTakesThenBranch(t *testing.T) {
	out, err := walk(t, `if 1 < 2 { print("yes") } else { print("no") }`)
	require.NoError(t, err)
	assert.Equal(t, "yes\n", out)
}

func TestForInIteratesArrayInOrder(t *testing.T) {
	out, err := walk(t, `for n in [1, 2, 3] { print(n) }`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestBlockScopingRestoresOuterBinding(t *testing.T) {
	out, err := walk(t, "let x = 1\nif true { let x = 2 print(x) }\nprint(x)")
	require.NoError(t, err)
	assert.Equal(t, "2\n1\n", out)
}

func TestShortCircuitSkipsRightSide(t *testing.T) {
	out, err := walk(t, `print(false && (1 / 0 == 0))`)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := walk(t, `print(y)`)
	require.Error(t, err)
}

func TestNullPrintsAsNull(t *testing.T) {
	out, err := walk(t, "let x\nprint(x)")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}
