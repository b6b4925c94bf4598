// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"mvdan.cc/sh/v3/syntax"

	"github.com/staranto/unspackgo/internal/ast"
)

func (c *converter) words(ws []*syntax.Word) []ast.ComplexWord {
	out := make([]ast.ComplexWord, 0, len(ws))
	for _, w := range ws {
		out = append(out, c.word(w))
	}
	return out
}

func (c *converter) word(w *syntax.Word) ast.ComplexWord {
	if w == nil {
		return ast.Lit("")
	}
	return concat(c.parts(w.Parts))
}

// concat collapses a single part to the part itself.
func concat(parts []ast.Word) ast.ComplexWord {
	switch len(parts) {
	case 0:
		return ast.Lit("")
	case 1:
		return parts[0]
	}
	return &ast.Concat{Words: parts}
}

func (c *converter) parts(ps []syntax.WordPart) []ast.Word {
	var out []ast.Word
	for i, part := range ps {
		switch part := part.(type) {
		case *syntax.Lit:
			for _, sw := range splitLit(part.Value, i == 0) {
				out = append(out, sw)
			}
		case *syntax.SglQuoted:
			if part.Dollar {
				out = append(out, ast.Lit("$'"+part.Value+"'"))
			} else {
				out = append(out, &ast.SingleQuoted{Value: part.Value})
			}
		case *syntax.DblQuoted:
			if part.Dollar {
				out = append(out, c.unsupported("$\"...\" locale string"))
			} else {
				out = append(out, &ast.DoubleQuoted{Parts: c.quoted(part.Parts)})
			}
		default:
			out = append(out, c.expansion(part))
		}
	}
	return out
}

// quoted converts the parts inside double quotes, where only backslash
// escapes are split out of literal text.
func (c *converter) quoted(ps []syntax.WordPart) []ast.SimpleWord {
	var out []ast.SimpleWord
	for _, part := range ps {
		if lit, ok := part.(*syntax.Lit); ok {
			out = append(out, splitEscapes(lit.Value)...)
			continue
		}
		out = append(out, c.expansion(part))
	}
	return out
}

func (c *converter) expansion(part syntax.WordPart) ast.SimpleWord {
	switch part := part.(type) {
	case *syntax.ParamExp:
		return c.paramExp(part)
	case *syntax.CmdSubst:
		if part.TempFile || part.ReplyVar {
			return c.unsupported("${ ...;} substitution")
		}
		return &ast.CommandSubst{Body: c.stmts(part.Stmts)}
	case *syntax.ArithmExp:
		if part.X == nil {
			return &ast.Arith{}
		}
		return &ast.Arith{Expr: c.arith(part.X)}
	}
	return c.unsupported(partName(part))
}

func partName(part syntax.WordPart) string {
	switch part.(type) {
	case *syntax.ProcSubst:
		return "process substitution"
	case *syntax.ExtGlob:
		return "extended glob"
	case *syntax.BraceExp:
		return "brace expansion"
	}
	return "word part"
}

// splitLit breaks unquoted literal text into escapes, the characters the
// shell lexes on their own, and runs of plain text. A tilde is special only
// at the start of a word.
func splitLit(s string, leading bool) []ast.SimpleWord {
	var out []ast.SimpleWord
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, ast.Lit(buf.String()))
			buf.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' && i+1 < len(s) {
			flush()
			_, size := utf8.DecodeRuneInString(s[i+1:])
			out = append(out, &ast.Escaped{Value: s[i+1 : i+1+size]})
			i += size
			continue
		}

		kind, special := specials[ch]
		if special && (kind != ast.Tilde || leading && i == 0) {
			flush()
			out = append(out, &ast.Special{Kind: kind})
			continue
		}
		buf.WriteByte(ch)
	}
	flush()
	return out
}

var specials = map[byte]ast.SpecialKind{
	'*': ast.Star,
	'?': ast.Question,
	'[': ast.SquareOpen,
	']': ast.SquareClose,
	'~': ast.Tilde,
	':': ast.Colon,
}

func splitEscapes(s string) []ast.SimpleWord {
	var out []ast.SimpleWord
	for {
		i := strings.IndexByte(s, '\\')
		if i < 0 || i+1 >= len(s) {
			break
		}
		if i > 0 {
			out = append(out, ast.Lit(s[:i]))
		}
		_, size := utf8.DecodeRuneInString(s[i+1:])
		out = append(out, &ast.Escaped{Value: s[i+1 : i+1+size]})
		s = s[i+1+size:]
	}
	if s != "" {
		out = append(out, ast.Lit(s))
	}
	return out
}

func (c *converter) paramExp(pe *syntax.ParamExp) ast.SimpleWord {
	if pe.Param == nil || pe.Excl || pe.Width || pe.Index != nil ||
		pe.Slice != nil || pe.Repl != nil || pe.Names != 0 {
		return c.unsupported("parameter expansion form")
	}

	prm := param(pe.Param.Value)
	if pe.Length {
		if pe.Exp != nil {
			return c.unsupported("length with operator")
		}
		return &ast.Length{Param: prm}
	}
	if pe.Exp == nil {
		return prm
	}

	op, colon, ok := substOp(pe.Exp.Op)
	if !ok {
		return c.unsupported("parameter operator " + pe.Exp.Op.String())
	}
	ps := &ast.ParamSubst{Op: op, Colon: colon, Param: prm}
	if pe.Exp.Word != nil && len(pe.Exp.Word.Parts) > 0 {
		ps.Word = c.word(pe.Exp.Word)
	}
	return ps
}

func substOp(op syntax.ParExpOperator) (ast.SubstOp, bool, bool) {
	switch op {
	case syntax.DefaultUnset:
		return ast.SubstDefault, false, true
	case syntax.DefaultUnsetOrNull:
		return ast.SubstDefault, true, true
	case syntax.AssignUnset:
		return ast.SubstAssign, false, true
	case syntax.AssignUnsetOrNull:
		return ast.SubstAssign, true, true
	case syntax.ErrorUnset:
		return ast.SubstError, false, true
	case syntax.ErrorUnsetOrNull:
		return ast.SubstError, true, true
	case syntax.AlternateUnset:
		return ast.SubstAlternative, false, true
	case syntax.AlternateUnsetOrNull:
		return ast.SubstAlternative, true, true
	case syntax.RemSmallSuffix:
		return ast.SubstRemoveSmallestSuffix, false, true
	case syntax.RemLargeSuffix:
		return ast.SubstRemoveLargestSuffix, false, true
	case syntax.RemSmallPrefix:
		return ast.SubstRemoveSmallestPrefix, false, true
	case syntax.RemLargePrefix:
		return ast.SubstRemoveLargestPrefix, false, true
	}
	return 0, false, false
}

var specialParams = map[string]ast.ParamKind{
	"@": ast.ParamAt,
	"*": ast.ParamStar,
	"#": ast.ParamPound,
	"?": ast.ParamQuestion,
	"-": ast.ParamDash,
	"$": ast.ParamDollar,
	"!": ast.ParamBang,
}

func param(name string) *ast.Param {
	if kind, ok := specialParams[name]; ok {
		return &ast.Param{Kind: kind}
	}
	if n, err := strconv.Atoi(name); err == nil {
		return &ast.Param{Kind: ast.ParamPositional, N: n}
	}
	return &ast.Param{Kind: ast.ParamVar, Name: name}
}
