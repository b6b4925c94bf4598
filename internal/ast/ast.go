// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ast

// Node is implemented by every tree element.
type Node interface {
	node()
}

// TopLevelCommand is one statement at the outermost level of a script, or in
// the body of a compound command. Job marks a trailing '&'.
type TopLevelCommand struct {
	Job  bool
	List *AndOrList
}

// AndOrOp joins the followers of an AndOrList.
type AndOrOp int

const (
	And AndOrOp = iota
	Or
)

func (op AndOrOp) String() string {
	if op == Or {
		return "||"
	}
	return "&&"
}

// AndOrList is a first command followed by zero or more && / || commands.
type AndOrList struct {
	First ListableCommand
	Rest  []AndOr
}

// AndOr is a single follower in an AndOrList.
type AndOr struct {
	Op  AndOrOp
	Cmd ListableCommand
}

// ListableCommand is either a single PipeableCommand or a *Pipe.
type ListableCommand interface {
	Node
	listable()
}

// Pipe is a pipeline of two or more stages, or a single negated stage.
type Pipe struct {
	Bang bool
	Cmds []PipeableCommand
}

// PipeableCommand is a *SimpleCommand, *CompoundCommand or *FunctionDef.
type PipeableCommand interface {
	ListableCommand
	pipeable()
}

// SimpleCommand holds the leading assignments/redirects and the command words
// interleaved with any later redirects, both in source order.
type SimpleCommand struct {
	RedirectsOrEnvVars  []RedirectOrEnvVar
	RedirectsOrCmdWords []RedirectOrCmdWord
}

// RedirectOrEnvVar is a *Redirect or an *EnvVar.
type RedirectOrEnvVar interface {
	Node
	envSlot()
}

// EnvVar is a NAME=value prefix. Value is nil for NAME=.
type EnvVar struct {
	Name  string
	Value ComplexWord
}

// RedirectOrCmdWord is a *Redirect or a *CmdWord.
type RedirectOrCmdWord interface {
	Node
	wordSlot()
}

// CmdWord is one word of a simple command.
type CmdWord struct {
	Word ComplexWord
}

// ComplexWord is a single Word or a *Concat of adjacent words.
type ComplexWord interface {
	Node
	complexWord()
}

// Concat is several words with no separating whitespace, e.g. foo"$bar".
type Concat struct {
	Words []Word
}

// Word is a SimpleWord, a *SingleQuoted or a *DoubleQuoted.
type Word interface {
	ComplexWord
	word()
}

// SingleQuoted holds the text between single quotes.
type SingleQuoted struct {
	Value string
}

// DoubleQuoted holds the parts between double quotes.
type DoubleQuoted struct {
	Parts []SimpleWord
}

// SimpleWord is an unquoted token: literal text, an escape, a glob or other
// special character, a parameter, or a substitution.
type SimpleWord interface {
	Word
	simpleWord()
}

type Literal struct {
	Value string
}

// Escaped is a backslash-escaped character; Value excludes the backslash.
type Escaped struct {
	Value string
}

type SpecialKind int

const (
	Star SpecialKind = iota
	Question
	SquareOpen
	SquareClose
	Tilde
	Colon
)

func (k SpecialKind) String() string {
	return [...]string{"*", "?", "[", "]", "~", ":"}[k]
}

// Special is a single character the shell lexes on its own.
type Special struct {
	Kind SpecialKind
}

type ParamKind int

const (
	ParamVar ParamKind = iota
	ParamPositional
	ParamAt
	ParamStar
	ParamPound
	ParamQuestion
	ParamDash
	ParamDollar
	ParamBang
)

// Param is a parameter reference. Name is set for ParamVar, N for
// ParamPositional.
type Param struct {
	Kind ParamKind
	Name string
	N    int
}

// Length is ${#param}.
type Length struct {
	Param *Param
}

// Arith is $((expr)). Expr is nil for $(()).
type Arith struct {
	Expr Arithmetic
}

// CommandSubst is $(body).
type CommandSubst struct {
	Body []*TopLevelCommand
}

type SubstOp int

const (
	SubstDefault SubstOp = iota
	SubstAssign
	SubstError
	SubstAlternative
	SubstRemoveSmallestSuffix
	SubstRemoveLargestSuffix
	SubstRemoveSmallestPrefix
	SubstRemoveLargestPrefix
)

// String returns the operator without the optional colon.
func (op SubstOp) String() string {
	return [...]string{"-", "=", "?", "+", "%", "%%", "#", "##"}[op]
}

// Colonable reports whether the operator takes the null-vs-unset colon.
func (op SubstOp) Colonable() bool {
	return op <= SubstAlternative
}

// ParamSubst is one of the ${param OP word} forms. Colon selects the
// "unset or null" variant of the first four operators. Word may be nil.
type ParamSubst struct {
	Op    SubstOp
	Colon bool
	Param *Param
	Word  ComplexWord
}

// Arithmetic is a node of an arithmetic expression tree.
type Arithmetic interface {
	Node
	arith()
}

// ArithVar is a bare variable name inside an arithmetic context.
type ArithVar struct {
	Name string
}

// ArithNumber keeps the literal text so bases like 0x1f and 2#101 survive.
type ArithNumber struct {
	Text string
}

// ArithParam is a $param reference inside an arithmetic context.
type ArithParam struct {
	Param *Param
}

type UnaryOp int

const (
	PreIncr UnaryOp = iota
	PreDecr
	PostIncr
	PostDecr
	UnaryPlus
	UnaryMinus
	LogicalNot
	BitwiseNot
)

func (op UnaryOp) String() string {
	return [...]string{"++", "--", "++", "--", "+", "-", "!", "~"}[op]
}

// Postfix reports whether the operator follows its operand.
func (op UnaryOp) Postfix() bool {
	return op == PostIncr || op == PostDecr
}

type ArithUnary struct {
	Op UnaryOp
	X  Arithmetic
}

type BinaryOp int

const (
	Pow BinaryOp = iota
	Mult
	Div
	Modulo
	Add
	Sub
	ShiftLeft
	ShiftRight
	Less
	LessEq
	Great
	GreatEq
	Eq
	NotEq
	BitwiseAnd
	BitwiseXor
	BitwiseOr
	LogicalAnd
	LogicalOr
)

func (op BinaryOp) String() string {
	return [...]string{
		"**", "*", "/", "%", "+", "-", "<<", ">>",
		"<", "<=", ">", ">=", "==", "!=",
		"&", "^", "|", "&&", "||",
	}[op]
}

type ArithBinary struct {
	Op BinaryOp
	X  Arithmetic
	Y  Arithmetic
}

type ArithTernary struct {
	Cond Arithmetic
	Then Arithmetic
	Else Arithmetic
}

type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignMult
	AssignDiv
	AssignModulo
	AssignAdd
	AssignSub
	AssignShiftLeft
	AssignShiftRight
	AssignAnd
	AssignXor
	AssignOr
)

func (op AssignOp) String() string {
	return [...]string{"=", "*=", "/=", "%=", "+=", "-=", "<<=", ">>=", "&=", "^=", "|="}[op]
}

type ArithAssign struct {
	Op    AssignOp
	Name  string
	Value Arithmetic
}

// ArithSequence is a comma-separated list; its value is the last one.
type ArithSequence struct {
	Exprs []Arithmetic
}

// ArithGroup is a parenthesised subexpression as written in the source.
type ArithGroup struct {
	X Arithmetic
}

// CompoundKind is the body of a CompoundCommand.
type CompoundKind interface {
	Node
	compoundKind()
}

type Brace struct {
	Body []*TopLevelCommand
}

type Subshell struct {
	Body []*TopLevelCommand
}

type While struct {
	GuardBodyPair
}

type Until struct {
	GuardBodyPair
}

// GuardBodyPair is a condition list and the list it guards.
type GuardBodyPair struct {
	Guard []*TopLevelCommand
	Body  []*TopLevelCommand
}

// If has one pair for the "if" and one per "elif". Else may be empty.
type If struct {
	Conditionals []GuardBodyPair
	Else         []*TopLevelCommand
}

// For iterates Var over Words. In is false for the form without "in", which
// iterates over the positional parameters.
type For struct {
	Var   string
	In    bool
	Words []ComplexWord
	Body  []*TopLevelCommand
}

type Case struct {
	Word ComplexWord
	Arms []PatternBodyPair
}

type PatternBodyPair struct {
	Patterns []ComplexWord
	Body     []*TopLevelCommand
}

// CompoundCommand is a compound kind plus the redirects that follow it.
type CompoundCommand struct {
	Kind CompoundKind
	Io   []*Redirect
}

// FunctionDef is name() body.
type FunctionDef struct {
	Name string
	Body *CompoundCommand
}

type RedirectOp int

const (
	Read RedirectOp = iota
	Write
	ReadWrite
	Append
	Clobber
	Heredoc
	DupRead
	DupWrite
)

func (op RedirectOp) String() string {
	return [...]string{"<", ">", "<>", ">>", ">|", "<<", "<&", ">&"}[op]
}

// NoFd marks a redirect without an explicit file descriptor.
const NoFd = -1

type Redirect struct {
	Op     RedirectOp
	Fd     int
	Target ComplexWord
}

// Unsupported stands in for any construct outside the supported grammar. It
// fits every slot so conversion never has to fail.
type Unsupported struct {
	What string
}

func (*TopLevelCommand) node() {}
func (*AndOrList) node()       {}
func (*Pipe) node()            {}
func (*SimpleCommand) node()   {}
func (*EnvVar) node()          {}
func (*CmdWord) node()         {}
func (*Concat) node()          {}
func (*SingleQuoted) node()    {}
func (*DoubleQuoted) node()    {}
func (*Literal) node()         {}
func (*Escaped) node()         {}
func (*Special) node()         {}
func (*Param) node()           {}
func (*Length) node()          {}
func (*Arith) node()           {}
func (*CommandSubst) node()    {}
func (*ParamSubst) node()      {}
func (*ArithVar) node()        {}
func (*ArithNumber) node()     {}
func (*ArithParam) node()      {}
func (*ArithUnary) node()      {}
func (*ArithBinary) node()     {}
func (*ArithTernary) node()    {}
func (*ArithAssign) node()     {}
func (*ArithSequence) node()   {}
func (*ArithGroup) node()      {}
func (*Brace) node()           {}
func (*Subshell) node()        {}
func (*While) node()           {}
func (*Until) node()           {}
func (*If) node()              {}
func (*For) node()             {}
func (*Case) node()            {}
func (*CompoundCommand) node() {}
func (*FunctionDef) node()     {}
func (*Redirect) node()        {}
func (*Unsupported) node()     {}

func (*Pipe) listable()            {}
func (*SimpleCommand) listable()   {}
func (*CompoundCommand) listable() {}
func (*FunctionDef) listable()     {}
func (*Unsupported) listable()     {}

func (*SimpleCommand) pipeable()   {}
func (*CompoundCommand) pipeable() {}
func (*FunctionDef) pipeable()     {}
func (*Unsupported) pipeable()     {}

func (*EnvVar) envSlot()      {}
func (*Redirect) envSlot()    {}
func (*Unsupported) envSlot() {}

func (*CmdWord) wordSlot()     {}
func (*Redirect) wordSlot()    {}
func (*Unsupported) wordSlot() {}

func (*Concat) complexWord()       {}
func (*SingleQuoted) complexWord() {}
func (*DoubleQuoted) complexWord() {}
func (*Literal) complexWord()      {}
func (*Escaped) complexWord()      {}
func (*Special) complexWord()      {}
func (*Param) complexWord()        {}
func (*Length) complexWord()       {}
func (*Arith) complexWord()        {}
func (*CommandSubst) complexWord() {}
func (*ParamSubst) complexWord()   {}
func (*Unsupported) complexWord()  {}

func (*SingleQuoted) word() {}
func (*DoubleQuoted) word() {}
func (*Literal) word()      {}
func (*Escaped) word()      {}
func (*Special) word()      {}
func (*Param) word()        {}
func (*Length) word()       {}
func (*Arith) word()        {}
func (*CommandSubst) word() {}
func (*ParamSubst) word()   {}
func (*Unsupported) word()  {}

func (*Literal) simpleWord()      {}
func (*Escaped) simpleWord()      {}
func (*Special) simpleWord()      {}
func (*Param) simpleWord()        {}
func (*Length) simpleWord()       {}
func (*Arith) simpleWord()        {}
func (*CommandSubst) simpleWord() {}
func (*ParamSubst) simpleWord()   {}
func (*Unsupported) simpleWord()  {}

func (*ArithVar) arith()      {}
func (*ArithNumber) arith()   {}
func (*ArithParam) arith()    {}
func (*ArithUnary) arith()    {}
func (*ArithBinary) arith()   {}
func (*ArithTernary) arith()  {}
func (*ArithAssign) arith()   {}
func (*ArithSequence) arith() {}
func (*ArithGroup) arith()    {}
func (*Unsupported) arith()   {}

func (*Brace) compoundKind()       {}
func (*Subshell) compoundKind()    {}
func (*While) compoundKind()       {}
func (*Until) compoundKind()       {}
func (*If) compoundKind()          {}
func (*For) compoundKind()         {}
func (*Case) compoundKind()        {}
func (*Unsupported) compoundKind() {}
