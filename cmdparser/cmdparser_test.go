package cmdparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilshell/oil-parser/ast"
	"github.com/oilshell/oil-parser/internal/parsetest"
)

func newParser(t *testing.T, text string, opts Options) *Parser {
	t.Helper()
	a, lex := parsetest.NewArenaLexer(text)
	p, err := New(lex, a, opts)
	require.NoError(t, err)
	return p
}

func litText(t *testing.T, w ast.Word) string {
	t.Helper()
	return parsetest.RequireLitText(t, w)
}

func TestSimpleCommand_PlainWords(t *testing.T) {
	p := newParser(t, "ls /home\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, list.Children, 1)

	cmd, ok := list.Children[0].(*ast.SimpleCommand)
	require.True(t, ok)
	require.Len(t, cmd.Words, 2)
	assert.Equal(t, "ls", litText(t, cmd.Words[0]))
	assert.Equal(t, "/home", litText(t, cmd.Words[1]))
	assert.Empty(t, cmd.MoreEnv)
	assert.Empty(t, cmd.Redirects)
}

func TestSimpleCommand_TwoCommandsAcrossNewline(t *testing.T) {
	p := newParser(t, "ls /\nls /home/\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, list.Children, 2)

	first := list.Children[0].(*ast.SimpleCommand)
	assert.Equal(t, "/", litText(t, first.Words[1]))
	second := list.Children[1].(*ast.SimpleCommand)
	assert.Equal(t, "/home/", litText(t, second.Words[1]))
}

func TestSimpleCommand_LeadingAssignmentPrefix(t *testing.T) {
	p := newParser(t, "FOO=bar ls\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, list.Children, 1)

	cmd, ok := list.Children[0].(*ast.SimpleCommand)
	require.True(t, ok)
	require.Len(t, cmd.MoreEnv, 1)
	assert.Equal(t, "FOO", cmd.MoreEnv[0].Pairs[0].Name)
	assert.Equal(t, "bar", litText(t, cmd.MoreEnv[0].Pairs[0].RHS))
	require.Len(t, cmd.Words, 1)
	assert.Equal(t, "ls", litText(t, cmd.Words[0]))
}

func TestSimpleCommand_BareAssignmentNoCommand(t *testing.T) {
	p := newParser(t, "x=1\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, list.Children, 1)

	assign, ok := list.Children[0].(*ast.Assignment)
	require.True(t, ok)
	require.Len(t, assign.Pairs, 1)
	assert.Equal(t, "x", assign.Pairs[0].Name)
	assert.False(t, assign.Pairs[0].Plus)
	assert.Equal(t, "1", litText(t, assign.Pairs[0].RHS))
}

func TestSimpleCommand_PlusEqualsAssignment(t *testing.T) {
	p := newParser(t, "x+=1\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	assign := list.Children[0].(*ast.Assignment)
	assert.True(t, assign.Pairs[0].Plus)
	assert.Equal(t, "1", litText(t, assign.Pairs[0].RHS))
}

func TestSimpleCommand_ArrayIndexAssignment(t *testing.T) {
	p := newParser(t, "a[0]=x\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	assign := list.Children[0].(*ast.Assignment)
	require.NotNil(t, assign.Pairs[0].Index)
	assert.Equal(t, "0", litText(t, assign.Pairs[0].Index))
	assert.Equal(t, "x", litText(t, assign.Pairs[0].RHS))
}

func TestSimpleCommand_ImplicitFuncDef(t *testing.T) {
	p := newParser(t, "foo() { echo hi; }\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, list.Children, 1)

	fn, ok := list.Children[0].(*ast.FuncDef)
	require.True(t, ok)
	assert.Equal(t, "foo", fn.Name)

	body, ok := fn.Body.(*ast.BraceGroup)
	require.True(t, ok)
	require.Len(t, body.Body.Children, 1)
	inner := body.Body.Children[0].(*ast.SimpleCommand)
	assert.Equal(t, "echo", litText(t, inner.Words[0]))
}

func TestSimpleCommand_Redirects(t *testing.T) {
	p := newParser(t, "ls > out.txt 2>&1\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	cmd := list.Children[0].(*ast.SimpleCommand)
	require.Len(t, cmd.Words, 1)
	require.Len(t, cmd.Redirects, 2)
	assert.Equal(t, ast.RedirGreat, cmd.Redirects[0].Op.Kind)
	assert.Equal(t, -1, cmd.Redirects[0].Fd)
	assert.Equal(t, "out.txt", litText(t, cmd.Redirects[0].Arg))
	assert.Equal(t, ast.RedirGreatAnd, cmd.Redirects[1].Op.Kind)
	assert.Equal(t, 2, cmd.Redirects[1].Fd)
	assert.Equal(t, "1", litText(t, cmd.Redirects[1].Arg))
}

func TestSimpleCommand_HereDoc(t *testing.T) {
	p := newParser(t, "cat <<EOF\nhello\nEOF\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	cmd := list.Children[0].(*ast.SimpleCommand)
	require.Len(t, cmd.Redirects, 1)
	redir := cmd.Redirects[0]
	assert.True(t, redir.IsHereDoc)
	require.True(t, redir.BodyFilled)
	require.Len(t, redir.Body, 1)
	lit, ok := redir.Body[0].(*ast.LiteralPart)
	require.True(t, ok)
	assert.Contains(t, lit.Tok.Lit, "hello")
}

func TestAliasExpansion(t *testing.T) {
	p := newParser(t, "ll /tmp\n", DefaultOptions())
	p.SetAlias("ll", "ls -l")
	list, err := p.ParseProgram()
	require.NoError(t, err)

	expanded, ok := list.Children[0].(*ast.ExpandedAlias)
	require.True(t, ok)
	assert.Equal(t, "ll", expanded.Name)

	cmd, ok := expanded.Child.(*ast.SimpleCommand)
	require.True(t, ok)
	require.Len(t, cmd.Words, 3)
	assert.Equal(t, "ls", litText(t, cmd.Words[0]))
	assert.Equal(t, "-l", litText(t, cmd.Words[1]))
	assert.Equal(t, "/tmp", litText(t, cmd.Words[2]))
}

func TestAliasExpansion_CycleGuardFallsBackToPlainWord(t *testing.T) {
	p := newParser(t, "ll\n", DefaultOptions())
	p.SetAlias("ll", "ll -l")
	list, err := p.ParseProgram()
	require.NoError(t, err)

	expanded, ok := list.Children[0].(*ast.ExpandedAlias)
	require.True(t, ok)
	cmd, ok := expanded.Child.(*ast.SimpleCommand)
	require.True(t, ok)
	assert.Equal(t, "ll", litText(t, cmd.Words[0]))
	assert.Equal(t, "-l", litText(t, cmd.Words[1]))
}

func TestDBracket_UnaryAndBinary(t *testing.T) {
	p := newParser(t, "[[ -z foo ]]\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	db, ok := list.Children[0].(*ast.DBracket)
	require.True(t, ok)
	un, ok := db.Expr.(*ast.BoolUnaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.BoolUnaryZ, un.Op)
	assert.Equal(t, "foo", litText(t, un.Arg))
}

func TestForCStyle(t *testing.T) {
	p := newParser(t, "for (( i=0; i<3; i++ )); do echo $i; done\n", DefaultOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	forExpr, ok := list.Children[0].(*ast.ForExpr)
	require.True(t, ok)
	require.NotNil(t, forExpr.Init)
	require.NotNil(t, forExpr.Cond)
	require.NotNil(t, forExpr.Update)
	require.Len(t, forExpr.Body.Body.Children, 1)
}

func oilOptions() Options {
	return Options{ParseEquals: true, ParseFuncProc: true, ParseForIn: true, ParseParen: true}
}

func TestOilVarAssign(t *testing.T) {
	p := newParser(t, "var x = 42\n", oilOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, list.Children, 1)
	assign, ok := list.Children[0].(*ast.OilAssign)
	require.True(t, ok)
	require.Len(t, assign.Lhs, 1)
	assert.Equal(t, "x", assign.Lhs[0].Name)
	lit, ok := assign.Rhs.(*ast.OilLiteral)
	require.True(t, ok)
	assert.Equal(t, "42", lit.Tok.Lit)
}

func TestOilIf_ParenCondition(t *testing.T) {
	p := newParser(t, "if (x == 1) { echo hi }\n", oilOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, list.Children, 1)

	ifCmd, ok := list.Children[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifCmd.Arms, 1)

	require.Len(t, ifCmd.Arms[0].Cond.Children, 1)
	cond, ok := ifCmd.Arms[0].Cond.Children[0].(*ast.OilCondition)
	require.True(t, ok)
	bin, ok := cond.Expr.(*ast.OilBinary)
	require.True(t, ok)
	assert.Equal(t, ast.ExprEqEq, bin.Op)

	require.Len(t, ifCmd.Arms[0].Body.Children, 1)
	inner := ifCmd.Arms[0].Body.Children[0].(*ast.SimpleCommand)
	assert.Equal(t, "echo", litText(t, inner.Words[0]))
}

func TestOilForIn(t *testing.T) {
	p := newParser(t, "for (x in y) { echo hi }\n", oilOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, list.Children, 1)

	forIn, ok := list.Children[0].(*ast.OilForIn)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, forIn.VarNames)

	v, ok := forIn.Iterable.(*ast.OilVar)
	require.True(t, ok)
	assert.Equal(t, "y", v.Name)

	require.Len(t, forIn.Body.Body.Children, 1)
	inner := forIn.Body.Body.Children[0].(*ast.SimpleCommand)
	assert.Equal(t, "echo", litText(t, inner.Words[0]))
}

func TestOilForIn_MultipleNames(t *testing.T) {
	p := newParser(t, "for (k, v in items) { echo hi }\n", oilOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	forIn, ok := list.Children[0].(*ast.OilForIn)
	require.True(t, ok)
	assert.Equal(t, []string{"k", "v"}, forIn.VarNames)
}

func TestOilVarAssign_MultipleNames(t *testing.T) {
	p := newParser(t, "var x, y = 1\n", oilOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	assign, ok := list.Children[0].(*ast.OilAssign)
	require.True(t, ok)
	require.Len(t, assign.Lhs, 2)
	assert.Equal(t, "x", assign.Lhs[0].Name)
	assert.Equal(t, "y", assign.Lhs[1].Name)
}

func TestOilFuncProc_MultipleParams(t *testing.T) {
	p := newParser(t, "proc f(a, b) { echo hi }\n", oilOptions())
	list, err := p.ParseProgram()
	require.NoError(t, err)

	fp, ok := list.Children[0].(*ast.OilFuncProc)
	require.True(t, ok)
	assert.True(t, fp.IsProc)
	assert.Equal(t, "f", fp.Name)
	require.Len(t, fp.Params, 2)
	assert.Equal(t, "a", fp.Params[0].Name)
	assert.Equal(t, "b", fp.Params[1].Name)
}
