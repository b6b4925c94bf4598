// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"regexp"

	"mvdan.cc/sh/v3/syntax"

	"github.com/staranto/unspackgo/internal/ast"
)

var (
	arithName   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	arithNumber = regexp.MustCompile(`^[0-9][0-9A-Za-z#@_]*$`)
)

var binaryOps = map[syntax.BinAritOperator]ast.BinaryOp{
	syntax.Pow:     ast.Pow,
	syntax.Mul:     ast.Mult,
	syntax.Quo:     ast.Div,
	syntax.Rem:     ast.Modulo,
	syntax.Add:     ast.Add,
	syntax.Sub:     ast.Sub,
	syntax.Shl:     ast.ShiftLeft,
	syntax.Shr:     ast.ShiftRight,
	syntax.Lss:     ast.Less,
	syntax.Leq:     ast.LessEq,
	syntax.Gtr:     ast.Great,
	syntax.Geq:     ast.GreatEq,
	syntax.Eql:     ast.Eq,
	syntax.Neq:     ast.NotEq,
	syntax.And:     ast.BitwiseAnd,
	syntax.Xor:     ast.BitwiseXor,
	syntax.Or:      ast.BitwiseOr,
	syntax.AndArit: ast.LogicalAnd,
	syntax.OrArit:  ast.LogicalOr,
}

var assignOps = map[syntax.BinAritOperator]ast.AssignOp{
	syntax.Assgn:    ast.AssignSet,
	syntax.MulAssgn: ast.AssignMult,
	syntax.QuoAssgn: ast.AssignDiv,
	syntax.RemAssgn: ast.AssignModulo,
	syntax.AddAssgn: ast.AssignAdd,
	syntax.SubAssgn: ast.AssignSub,
	syntax.ShlAssgn: ast.AssignShiftLeft,
	syntax.ShrAssgn: ast.AssignShiftRight,
	syntax.AndAssgn: ast.AssignAnd,
	syntax.XorAssgn: ast.AssignXor,
	syntax.OrAssgn:  ast.AssignOr,
}

func (c *converter) arith(x syntax.ArithmExpr) ast.Arithmetic {
	switch x := x.(type) {
	case *syntax.BinaryArithm:
		return c.binaryArith(x)
	case *syntax.UnaryArithm:
		return c.unaryArith(x)
	case *syntax.ParenArithm:
		return &ast.ArithGroup{X: c.arith(x.X)}
	case *syntax.Word:
		return c.arithWord(x)
	}
	return c.unsupported("arithmetic expression")
}

func (c *converter) binaryArith(x *syntax.BinaryArithm) ast.Arithmetic {
	if op, ok := binaryOps[x.Op]; ok {
		return &ast.ArithBinary{Op: op, X: c.arith(x.X), Y: c.arith(x.Y)}
	}

	if op, ok := assignOps[x.Op]; ok {
		name, isWord := x.X.(*syntax.Word)
		if !isWord || !arithName.MatchString(name.Lit()) {
			return c.unsupported("assignment to non-variable")
		}
		return &ast.ArithAssign{Op: op, Name: name.Lit(), Value: c.arith(x.Y)}
	}

	switch x.Op {
	case syntax.TernQuest:
		if arms, ok := x.Y.(*syntax.BinaryArithm); ok && arms.Op == syntax.TernColon {
			return &ast.ArithTernary{
				Cond: c.arith(x.X),
				Then: c.arith(arms.X),
				Else: c.arith(arms.Y),
			}
		}
	case syntax.Comma:
		seq := &ast.ArithSequence{}
		for _, side := range []syntax.ArithmExpr{x.X, x.Y} {
			conv := c.arith(side)
			if inner, ok := conv.(*ast.ArithSequence); ok {
				seq.Exprs = append(seq.Exprs, inner.Exprs...)
			} else {
				seq.Exprs = append(seq.Exprs, conv)
			}
		}
		return seq
	}
	return c.unsupported("arithmetic operator " + x.Op.String())
}

func (c *converter) unaryArith(x *syntax.UnaryArithm) ast.Arithmetic {
	var op ast.UnaryOp
	switch x.Op {
	case syntax.Inc:
		op = ast.PreIncr
		if x.Post {
			op = ast.PostIncr
		}
	case syntax.Dec:
		op = ast.PreDecr
		if x.Post {
			op = ast.PostDecr
		}
	case syntax.Plus:
		op = ast.UnaryPlus
	case syntax.Minus:
		op = ast.UnaryMinus
	case syntax.Not:
		op = ast.LogicalNot
	case syntax.BitNegation:
		op = ast.BitwiseNot
	default:
		return c.unsupported("unary operator " + x.Op.String())
	}
	return &ast.ArithUnary{Op: op, X: c.arith(x.X)}
}

func (c *converter) arithWord(w *syntax.Word) ast.Arithmetic {
	if lit := w.Lit(); lit != "" {
		switch {
		case arithNumber.MatchString(lit):
			return &ast.ArithNumber{Text: lit}
		case arithName.MatchString(lit):
			return &ast.ArithVar{Name: lit}
		}
		return c.unsupported("arithmetic operand " + lit)
	}

	if len(w.Parts) == 1 {
		if pe, ok := w.Parts[0].(*syntax.ParamExp); ok {
			if prm, ok := c.paramExp(pe).(*ast.Param); ok {
				return &ast.ArithParam{Param: prm}
			}
		}
	}
	return c.unsupported("arithmetic operand")
}
