// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/unspackgo/internal/ast"
)

func TestScript_OneResultPerStatement(t *testing.T) {
	src := "echo a\n\n# comment\necho b; echo c\nif x; then\n  y\nfi\n"

	results := Script([]byte(src))
	require.Len(t, results, 4)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.NotNil(t, r.Cmd)
	}
	assert.Equal(t, []int{1, 4, 4, 5}, []int{results[0].Line, results[1].Line, results[2].Line, results[3].Line})
}

func TestScript_RecoversAfterParseError(t *testing.T) {
	src := "echo before\necho 'unterminated )\n"
	results := Script([]byte(src))
	require.NotEmpty(t, results)
	assert.NoError(t, results[0].Err)

	src = "echo before\nfi\necho after\n"
	results = Script([]byte(src))
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Equal(t, 2, results[1].Line)
	assert.Nil(t, results[1].Cmd)

	require.NoError(t, results[2].Err)
	assert.Equal(t, 3, results[2].Line)
	cmd, ok := results[2].Cmd.List.First.(*ast.SimpleCommand)
	require.True(t, ok)
	assert.Equal(t, &ast.CmdWord{Word: ast.Lit("after")}, cmd.RedirectsOrCmdWords[1])
}

func TestScript_Empty(t *testing.T) {
	assert.Empty(t, Script(nil))
	assert.Empty(t, Script([]byte("\n# only a comment\n")))
}

func TestStatements_FailsOnError(t *testing.T) {
	_, err := Statements("echo ok\ndone\n")
	assert.ErrorContains(t, err, "line 2")
}

func TestConvert_SimpleCommand(t *testing.T) {
	stmts, err := Statements("FOO=bar >log spack load foo@1.0 2>&1")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	want := &ast.SimpleCommand{
		RedirectsOrEnvVars: []ast.RedirectOrEnvVar{
			&ast.EnvVar{Name: "FOO", Value: ast.Lit("bar")},
			ast.NewRedirect(ast.Write, ast.NoFd, "log"),
		},
		RedirectsOrCmdWords: []ast.RedirectOrCmdWord{
			ast.LitWord("spack"),
			ast.LitWord("load"),
			ast.LitWord("foo@1.0"),
			ast.NewRedirect(ast.DupWrite, 2, "1"),
		},
	}
	assert.Equal(t, want, stmts[0].List.First)
}

func TestConvert_AndOrIsFlat(t *testing.T) {
	stmts, err := Statements("a && b || c && d")
	require.NoError(t, err)

	list := stmts[0].List
	assert.Equal(t, ast.Simple("a"), list.First)
	require.Len(t, list.Rest, 3)
	assert.Equal(t, []ast.AndOrOp{ast.And, ast.Or, ast.And}, []ast.AndOrOp{list.Rest[0].Op, list.Rest[1].Op, list.Rest[2].Op})
	assert.Equal(t, ast.Simple("d"), list.Rest[2].Cmd)
}

func TestConvert_Pipeline(t *testing.T) {
	stmts, err := Statements("a | b | c")
	require.NoError(t, err)

	pipe, ok := stmts[0].List.First.(*ast.Pipe)
	require.True(t, ok)
	assert.False(t, pipe.Bang)
	assert.Equal(t, []ast.PipeableCommand{ast.Simple("a"), ast.Simple("b"), ast.Simple("c")}, pipe.Cmds)
}

func TestConvert_Words(t *testing.T) {
	stmts, err := Statements(`echo pre"$x"'q' ${y:-d} \$`)
	require.NoError(t, err)

	words := stmts[0].List.First.(*ast.SimpleCommand).Words()
	require.Len(t, words, 4)

	assert.Equal(t, &ast.Concat{Words: []ast.Word{
		ast.Lit("pre"),
		&ast.DoubleQuoted{Parts: []ast.SimpleWord{&ast.Param{Kind: ast.ParamVar, Name: "x"}}},
		&ast.SingleQuoted{Value: "q"},
	}}, words[1])
	assert.Equal(t, &ast.ParamSubst{
		Op:    ast.SubstDefault,
		Colon: true,
		Param: &ast.Param{Kind: ast.ParamVar, Name: "y"},
		Word:  ast.Lit("d"),
	}, words[2])
	assert.Equal(t, &ast.Escaped{Value: "$"}, words[3])
}

func TestConvert_Unsupported(t *testing.T) {
	stmts, err := Statements("[[ -n $x ]] && echo y")
	require.NoError(t, err)

	cc, ok := stmts[0].List.First.(*ast.CompoundCommand)
	require.True(t, ok)
	_, ok = cc.Kind.(*ast.Unsupported)
	assert.True(t, ok)
	assert.Equal(t, ast.Simple("echo", "y"), stmts[0].List.Rest[0].Cmd)
}
