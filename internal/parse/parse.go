// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/apex/log"
	"mvdan.cc/sh/v3/syntax"

	"github.com/staranto/unspackgo/internal/ast"
)

// Result is the outcome for one top-level statement. Exactly one of Cmd and
// Err is set. Line is 1-based and points at the statement, or at the place the
// parser gave up.
type Result struct {
	Cmd  *ast.TopLevelCommand
	Err  error
	Line int
}

// Script parses src one statement at a time. A statement that fails to parse
// yields an error Result and parsing resumes on the line after the failure.
func Script(src []byte) []Result {
	var results []Result

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	base, lineBase := 0, 0

	for base < len(src) {
		chunk := src[base:]
		conv := &converter{}

		err := parser.Stmts(bytes.NewReader(chunk), func(s *syntax.Stmt) bool {
			results = append(results, Result{
				Cmd:  conv.stmt(s),
				Line: lineBase + int(s.Pos().Line()),
			})
			return true
		})
		if err == nil {
			break
		}

		next, line := resumeAfter(chunk, err)
		results = append(results, Result{Err: err, Line: lineBase + line})
		log.Debugf("parse error at line %d: %v", lineBase+line, err)
		if next < 0 {
			break
		}

		lineBase += bytes.Count(chunk[:next], []byte("\n"))
		base += next
	}

	return results
}

// Statements parses src and fails on the first error. It suits inputs known to
// be well formed, such as printer output.
func Statements(src string) ([]*ast.TopLevelCommand, error) {
	var stmts []*ast.TopLevelCommand
	for _, r := range Script([]byte(src)) {
		if r.Err != nil {
			return nil, fmt.Errorf("line %d: %w", r.Line, r.Err)
		}
		stmts = append(stmts, r.Cmd)
	}
	return stmts, nil
}

// resumeAfter returns the offset just past the line holding the error, and
// that line. The offset is -1 when there is nothing left to parse.
func resumeAfter(chunk []byte, err error) (int, int) {
	var pos syntax.Pos

	var perr syntax.ParseError
	var lerr syntax.LangError
	switch {
	case errors.As(err, &perr):
		pos = perr.Pos
	case errors.As(err, &lerr):
		pos = lerr.Pos
	default:
		return -1, 0
	}

	if !pos.IsValid() {
		return -1, 0
	}

	off := int(pos.Offset())
	if off >= len(chunk) {
		return -1, int(pos.Line())
	}

	nl := bytes.IndexByte(chunk[off:], '\n')
	if nl < 0 {
		return -1, int(pos.Line())
	}
	return off + nl + 1, int(pos.Line())
}
