// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rewrite

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/unspackgo/internal/ast"
	"github.com/staranto/unspackgo/internal/emit"
	"github.com/staranto/unspackgo/internal/fingerprint"
	"github.com/staranto/unspackgo/internal/match"
	"github.com/staranto/unspackgo/internal/parse"
)

const setup = ". /opt/spack/share/spack/setup-env.sh"

func run(src string) *Result {
	return Run(parse.Script([]byte(src)), DefaultOptions())
}

// keyOf is the function name the default options give a spack command.
func keyOf(words ...string) string {
	eng := DefaultOptions().Engine
	return eng.Key(eng.Sum(ast.Simple(words...)))
}

func TestRun_NoTargetCalls(t *testing.T) {
	src := "echo hi\nls -l | wc -l\nif true; then\n  echo yes\nfi\n"
	res := run(src)

	assert.Zero(t, res.Table.Len())
	assert.Empty(t, res.Script.Directives)
	assert.Empty(t, res.Script.Bootstrap)
	assert.Equal(t, []string{"echo hi", "ls -l | wc -l", "if true\nthen\necho yes\nfi"}, res.Script.Body)
	assert.Equal(t, 3, res.Stats.Statements)
}

func TestRun_DuplicateCallsShareEntry(t *testing.T) {
	res := run("spack load foo@1.0\necho between\nspack load foo@1.0\n")
	name := keyOf("spack", "load", "foo@1.0")

	require.Equal(t, 1, res.Table.Len())
	e := res.Table.Entries()[0]
	assert.Equal(t, name, e.Name)
	assert.Equal(t, 2, e.Hits)

	assert.Equal(t, []string{name, "echo between", name}, res.Script.Body)
	require.Len(t, res.Script.Directives, 1)
	assert.Equal(t, "spack load --sh foo@1.0", res.Script.Directives[0].Command)
	assert.Equal(t, 2, res.Stats.CallSites)
	assert.Equal(t, 1, res.Stats.Entries)
}

func TestRun_DistinctCallsInOrder(t *testing.T) {
	res := run("spack load b\nspack load a\nspack load b\n")

	require.Len(t, res.Script.Directives, 2)
	assert.Equal(t, keyOf("spack", "load", "b"), res.Script.Directives[0].Name)
	assert.Equal(t, keyOf("spack", "load", "a"), res.Script.Directives[1].Name)
}

func TestRun_ListIsDropped(t *testing.T) {
	res := run("spack load --list\nspack load --list foo\necho after\n")

	assert.Zero(t, res.Table.Len())
	assert.Equal(t, []string{"echo after"}, res.Script.Body)
	assert.Equal(t, 2, res.Stats.Excluded)
}

func TestRun_EnvPrefixesShareKey(t *testing.T) {
	res := run("FOO=1 spack load foo\nspack load foo\nBAR=2 >log spack load foo\n")
	name := keyOf("spack", "load", "foo")

	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, []string{"FOO=1 " + name, name, "BAR=2 > log " + name}, res.Script.Body)
	assert.Equal(t, "spack load --sh foo", res.Script.Directives[0].Command)
}

func TestRun_SentinelAfterSubcommand(t *testing.T) {
	res := run("spack load --first foo bar\n")

	require.Len(t, res.Script.Directives, 1)
	assert.Equal(t, "spack load --sh --first foo bar", res.Script.Directives[0].Command)
}

func TestRun_SubcommandMustFollowTool(t *testing.T) {
	src := "spack install load\nspack env activate load\nspack -e myenv load foo\nspack 2>/dev/null load foo\n"
	res := run(src)

	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "spack load --sh foo", res.Script.Directives[0].Command)
	assert.Equal(t, []string{
		"spack install load",
		"spack env activate load",
		"spack -e myenv load foo",
		keyOf("spack", "load", "foo") + " 2> /dev/null",
	}, res.Script.Body)
	assert.Equal(t, 3, res.Stats.Passthrough)
}

func TestRun_TrailingRedirectsStayAtCallSite(t *testing.T) {
	res := run("spack load foo > /dev/null\nspack load foo\nspack load foo 2>&1 | tee log\n")
	name := keyOf("spack", "load", "foo")

	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, 3, res.Table.Entries()[0].Hits)
	assert.Equal(t, "spack load --sh foo", res.Script.Directives[0].Command)
	assert.Equal(t, []string{name + " > /dev/null", name, name + " 2>&1 | tee log"}, res.Script.Body)
}

func TestRun_LeadingPositionOnly(t *testing.T) {
	res := run("spack load foo | tee log\ntrue && spack load bar\nspack load baz && echo ok\n")

	foo := keyOf("spack", "load", "foo")
	baz := keyOf("spack", "load", "baz")
	assert.Equal(t, []string{foo + " | tee log", "true && spack load bar", baz + " && echo ok"}, res.Script.Body)
	assert.Equal(t, 2, res.Table.Len())
}

func TestRun_Bootstrap(t *testing.T) {
	src := setup + "\nspack load foo\n" + setup + "\nsource /other/setup-env.sh\n"
	res := run(src)

	assert.Equal(t, setup, res.Script.Bootstrap)
	require.NotNil(t, res.Bootstrap)
	assert.Equal(t, []string{keyOf("spack", "load", "foo"), "source /other/setup-env.sh"}, res.Script.Body)
}

func TestRun_QuotedBootstrap(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"double quoted", `. "/opt/spack/share/spack/setup-env.sh"`},
		{"double quoted with parameter", `. "$SPACK_ROOT/share/spack/setup-env.sh"`},
		{"single quoted source", `source '/opt/spack/share/spack/setup-env.sh'`},
		{"partly quoted", `. "$HOME"/spack/share/spack/setup-env.sh`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(tt.line + "\nspack load foo@1.0\nspack load foo@1.0\n")

			assert.Equal(t, tt.line, res.Script.Bootstrap)
			name := keyOf("spack", "load", "foo@1.0")
			assert.Equal(t, []string{name, name}, res.Script.Body)
		})
	}
}

func TestRun_BootstrapInsideLargerStatement(t *testing.T) {
	res := run(setup + " && echo ok\n")

	assert.Empty(t, res.Script.Bootstrap)
	assert.Equal(t, []string{setup + " && echo ok"}, res.Script.Body)
}

func TestRun_SourceWithoutSetupScript(t *testing.T) {
	res := run(". ./local.sh\n")

	assert.Nil(t, res.Bootstrap)
	assert.Equal(t, []string{". ./local.sh"}, res.Script.Body)
}

func TestRun_Passthrough(t *testing.T) {
	res := run("spack find foo\nspack unload foo\nspack\n")

	assert.Zero(t, res.Table.Len())
	assert.Equal(t, []string{"spack find foo", "spack unload foo", "spack"}, res.Script.Body)
	assert.Equal(t, 3, res.Stats.Passthrough)
}

func TestRun_Mismatched(t *testing.T) {
	res := run("{ spack load foo; }\nf() { spack load foo; }\n")

	assert.Zero(t, res.Table.Len())
	assert.Equal(t, 2, res.Stats.Mismatched)
	assert.Equal(t, []string{"{\nspack load foo\n}", "f() {\nspack load foo\n}"}, res.Script.Body)
}

func TestRun_ParseErrorsDropped(t *testing.T) {
	res := run("spack load foo\nfi\nspack load bar\n")

	assert.Equal(t, 1, res.Stats.Dropped)
	assert.Equal(t, 2, res.Stats.Statements)
	assert.Equal(t, 2, res.Table.Len())
	assert.Len(t, res.Script.Body, 2)
}

func TestRun_CountsUnsupported(t *testing.T) {
	res := run("diff <(ls a) <(ls b)\n")

	assert.Equal(t, 2, res.Stats.Unsupported)
	assert.Equal(t, []string{"diff UNSUPPORTED UNSUPPORTED"}, res.Script.Body)
}

func TestRun_CustomOptions(t *testing.T) {
	eng, err := fingerprint.New("sha256")
	require.NoError(t, err)
	eng.Prefix = "mod_"

	opts := DefaultOptions()
	opts.Tool = "module"
	opts.Subcommand = mustPattern(t, "load|add")
	opts.Exclude = mustPattern(t, "-t")
	opts.Sentinel = "--shell"
	opts.Engine = eng

	res := Run(parse.Script([]byte("module add gcc\nmodule load -t gcc\nspack load foo\n")), opts)

	require.Len(t, res.Script.Directives, 1)
	d := res.Script.Directives[0]
	assert.Equal(t, "module add --shell gcc", d.Command)
	assert.Regexp(t, `^mod_[0-9a-f]{64}$`, d.Name)
	assert.Equal(t, "mod_", res.Script.Prefix)
	assert.Equal(t, "--shell", res.Script.Sentinel)
	assert.Equal(t, []string{d.Name, "spack load foo"}, res.Script.Body)
}

func TestRun_EndToEnd(t *testing.T) {
	src := `#!/bin/bash
. /opt/spack/share/spack/setup-env.sh
spack load foo@1.0
echo ready
spack load foo@1.0
`
	opts := DefaultOptions()
	opts.Engine = &fingerprint.Engine{
		Digest: func(string) string { return "abc123" },
		Prefix: fingerprint.DefaultPrefix,
	}

	out, err := emit.String(Run(parse.Script([]byte(src)), opts).Script)
	require.NoError(t, err)

	want := `. /opt/spack/share/spack/setup-env.sh
__unspack_compile_quote() { printf "'%s'" "$(printf '%s' "$1" | sed "s/'/'\\\\''/g")"; }
__unspack_compile() {
    __unspack_out=$("$@") && [ -n "$__unspack_out" ] && {
        eval "load_${HASH}() {
${__unspack_out}
}"
        return
    }
    __unspack_cmd=
    for __unspack_arg in "$@"; do
        [ "$__unspack_arg" = '--sh' ] && continue
        __unspack_cmd="$__unspack_cmd $(__unspack_compile_quote "$__unspack_arg")"
    done
    eval "load_${HASH}() {${__unspack_cmd}
}"
}
HASH=abc123 __unspack_compile spack load --sh foo@1.0
__unspack_body=$(cat <<'__UNSPACK_BODY__'
load_abc123
echo ready
load_abc123
__UNSPACK_BODY__
)
eval "$__unspack_body"
`
	assert.Equal(t, want, out)
}

func mustPattern(t *testing.T, expr string) *regexp.Regexp {
	t.Helper()
	re, err := match.Pattern(expr)
	require.NoError(t, err)
	return re
}
