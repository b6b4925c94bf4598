// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package match

import (
	"regexp"
	"strings"

	"github.com/staranto/unspackgo/internal/ast"
	"github.com/staranto/unspackgo/internal/printer"
)

// Leading descends from a statement to the simple command in its leading
// position: the first command of the and/or list, and the first stage of a
// pipeline. It returns nil when that position holds a compound command, a
// function definition, or anything unsupported. Followers of && and || are
// never visited.
func Leading(stmt *ast.TopLevelCommand) *ast.SimpleCommand {
	if stmt == nil || stmt.List == nil {
		return nil
	}

	first := stmt.List.First
	if pipe, ok := first.(*ast.Pipe); ok {
		if len(pipe.Cmds) == 0 {
			return nil
		}
		first = pipe.Cmds[0]
	}

	cmd, _ := first.(*ast.SimpleCommand)
	return cmd
}

// Extract returns the leading simple command when its first token is the
// literal word target. The handle aliases the tree, so edits through it
// rewrite the statement in place.
func Extract(stmt *ast.TopLevelCommand, target string) *ast.SimpleCommand {
	cmd := Leading(stmt)
	if cmd == nil || !StartsWith(cmd, target) {
		return nil
	}
	return cmd
}

// StartsWith reports whether the command's first token is exactly the
// unquoted literal target.
func StartsWith(cmd *ast.SimpleCommand, target string) bool {
	if len(cmd.RedirectsOrCmdWords) == 0 {
		return false
	}
	word, ok := cmd.RedirectsOrCmdWords[0].(*ast.CmdWord)
	if !ok {
		return false
	}
	lit, ok := word.Word.(*ast.Literal)
	return ok && lit.Value == target
}

// Position returns the index within cmd.RedirectsOrCmdWords of the first word
// whose rendering matches re, or -1. Build re with Pattern so the match covers
// the whole token.
func Position(cmd *ast.SimpleCommand, re *regexp.Regexp) int {
	for i, tok := range cmd.RedirectsOrCmdWords {
		if word, ok := tok.(*ast.CmdWord); ok && re.MatchString(printer.String(word.Word)) {
			return i
		}
	}
	return -1
}

// Subcommand returns the index of the first word after the leading token when
// that word matches re, or -1. Redirects in between are skipped.
func Subcommand(cmd *ast.SimpleCommand, re *regexp.Regexp) int {
	for i := 1; i < len(cmd.RedirectsOrCmdWords); i++ {
		word, ok := cmd.RedirectsOrCmdWords[i].(*ast.CmdWord)
		if !ok {
			continue
		}
		if re.MatchString(printer.String(word.Word)) {
			return i
		}
		return -1
	}
	return -1
}

// PositionUnquoted is Position matched against each word's Unquoted text.
func PositionUnquoted(cmd *ast.SimpleCommand, re *regexp.Regexp) int {
	for i, tok := range cmd.RedirectsOrCmdWords {
		if word, ok := tok.(*ast.CmdWord); ok && re.MatchString(Unquoted(word.Word)) {
			return i
		}
	}
	return -1
}

// Unquoted returns the text of w with its quote characters and backslashes
// removed. Expansions keep their printed form, so "$ROOT/x" becomes $ROOT/x.
func Unquoted(w ast.ComplexWord) string {
	var sb strings.Builder
	var part func(n ast.Node)
	part = func(n ast.Node) {
		switch n := n.(type) {
		case *ast.Concat:
			for _, w := range n.Words {
				part(w)
			}
		case *ast.DoubleQuoted:
			for _, sw := range n.Parts {
				part(sw)
			}
		case *ast.SingleQuoted:
			sb.WriteString(n.Value)
		case *ast.Literal:
			sb.WriteString(n.Value)
		case *ast.Escaped:
			sb.WriteString(n.Value)
		default:
			sb.WriteString(printer.String(n))
		}
	}
	part(w)
	return sb.String()
}

// Pattern compiles expr for use with Position. The match is anchored to the
// whole token.
func Pattern(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + expr + `)$`)
}

// MustPattern is Pattern for expressions known to be valid.
func MustPattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + expr + `)$`)
}
