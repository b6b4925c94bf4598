// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/unspackgo/internal/ast"
	"github.com/staranto/unspackgo/internal/parse"
)

func statement(t *testing.T, src string) *ast.TopLevelCommand {
	t.Helper()
	stmts, err := parse.Statements(src)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func TestLeading(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"simple", "spack load foo", "spack"},
		{"pipeline", "spack load foo | tee log", "spack"},
		{"and list", "spack load foo && echo ok", "spack"},
		{"follower not visited", "true && spack load foo", "true"},
		{"background", "spack load foo &", "spack"},
		{"negated", "! spack load foo", "spack"},
		{"compound", "{ spack load foo; }", ""},
		{"function", "f() { spack load foo; }", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Leading(statement(t, tt.src))
			if tt.want == "" {
				assert.Nil(t, cmd)
				return
			}
			require.NotNil(t, cmd)
			assert.True(t, StartsWith(cmd, tt.want))
		})
	}

	assert.Nil(t, Leading(nil))
	assert.Nil(t, Leading(&ast.TopLevelCommand{}))
}

func TestExtract_Aliases(t *testing.T) {
	stmt := statement(t, "spack load foo | tee log")

	cmd := Extract(stmt, "spack")
	require.NotNil(t, cmd)
	cmd.RedirectsOrCmdWords = []ast.RedirectOrCmdWord{ast.LitWord("load_x")}

	pipe := stmt.List.First.(*ast.Pipe)
	assert.Same(t, cmd, pipe.Cmds[0])
	assert.Equal(t, ast.Simple("load_x"), pipe.Cmds[0])

	assert.Nil(t, Extract(stmt, "tee"))
}

func TestStartsWith(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"literal", "spack load", true},
		{"env prefix", "FOO=1 spack load", true},
		{"single quoted", "'spack' load", false},
		{"double quoted", `"spack" load`, false},
		{"parameter", "$spack load", false},
		{"longer word", "spackle load", false},
		{"redirect first", ">log spack load", true},
		{"only assignment", "FOO=1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Leading(statement(t, tt.src))
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, StartsWith(cmd, "spack"))
		})
	}
}

func TestPosition(t *testing.T) {
	load := MustPattern("load")
	list := MustPattern("--list")

	tests := []struct {
		name string
		src  string
		re   string
		want int
	}{
		{"subcommand", "spack load foo", "load", 1},
		{"after flag", "spack -e env load foo", "load", 3},
		{"anchored", "spack unload foo", "load", -1},
		{"substring", "spack load download", "load", 1},
		{"after redirect", "spack 2>/dev/null load foo", "load", 2},
		{"list flag", "spack load --list", "--list", 2},
		{"absent", "spack find", "--list", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := load
			if tt.re == "--list" {
				re = list
			}
			cmd := Leading(statement(t, tt.src))
			assert.Equal(t, tt.want, Position(cmd, re))
		})
	}
}

func TestSubcommand(t *testing.T) {
	load := MustPattern("load")

	tests := []struct {
		name string
		src  string
		want int
	}{
		{"right after tool", "spack load foo", 1},
		{"after redirect", "spack 2>/dev/null load foo", 2},
		{"later word", "spack install load", -1},
		{"after flag", "spack -e env load foo", -1},
		{"no words", "spack", -1},
		{"anchored", "spack loads foo", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subcommand(Leading(statement(t, tt.src)), load))
		})
	}
}

func TestUnquoted(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"literal", ". /a/setup-env.sh", "/a/setup-env.sh"},
		{"double quoted", `. "/a/setup-env.sh"`, "/a/setup-env.sh"},
		{"single quoted", `. '/a/setup-env.sh'`, "/a/setup-env.sh"},
		{"parameter", `. "$ROOT/setup-env.sh"`, "$ROOT/setup-env.sh"},
		{"concatenated", `. "$ROOT"/x/'setup-env.sh'`, "$ROOT/x/setup-env.sh"},
		{"escaped", `. a\ b/setup-env.sh`, "a b/setup-env.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := Leading(statement(t, tt.src)).Words()
			require.Len(t, words, 2)
			assert.Equal(t, tt.want, Unquoted(words[1]))
		})
	}
}

func TestPositionUnquoted(t *testing.T) {
	re := MustPattern(`.*setup-env\.sh`)
	cmd := Leading(statement(t, `. "$SPACK_ROOT/share/spack/setup-env.sh"`))

	assert.Equal(t, -1, Position(cmd, re))
	assert.Equal(t, 1, PositionUnquoted(cmd, re))
}

func TestPattern(t *testing.T) {
	re, err := Pattern("load|unload")
	require.NoError(t, err)
	assert.True(t, re.MatchString("load"))
	assert.True(t, re.MatchString("unload"))
	assert.False(t, re.MatchString("loaded"))

	_, err = Pattern("(")
	assert.Error(t, err)

	assert.Panics(t, func() { MustPattern("[") })
}
