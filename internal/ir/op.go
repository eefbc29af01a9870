package ir

import (
	"fmt"
	"strings"
)

// Op identifies one engine operation.
type Op string

// Operations exposed by the engine.
const (
	OpAdd Op = "add"
	OpSub Op = "sub"
	OpMul Op = "mul"
	OpDiv Op = "div"
	OpMod Op = "mod"
	OpPow Op = "pow"
	OpNeg Op = "neg"
	OpAbs Op = "abs"
	OpCmp Op = "cmp"
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpLt  Op = "lt"
	OpLe  Op = "le"
	OpGt  Op = "gt"
	OpGe  Op = "ge"
	OpMin Op = "min"
	OpMax Op = "max"
)

// ResultKind describes what an operation returns.
type ResultKind int

const (
	// ResultInt operations return a decimal literal.
	ResultInt ResultKind = iota
	// ResultOrdering operations return -1, 0 or 1.
	ResultOrdering
	// ResultBool operations return true or false.
	ResultBool
)

// OpInfo describes an operation.
type OpInfo struct {
	Op     Op
	Name   string // long name used by collaborators, e.g. "LessThanOrEqual"
	Arity  int
	Result ResultKind
}

// opTable is in declaration order; Ops returns it in this order.
var opTable = []OpInfo{
	{OpAdd, "Add", 2, ResultInt},
	{OpSub, "Sub", 2, ResultInt},
	{OpMul, "Mul", 2, ResultInt},
	{OpDiv, "Div", 2, ResultInt},
	{OpMod, "Mod", 2, ResultInt},
	{OpPow, "Power", 2, ResultInt},
	{OpNeg, "Negate", 1, ResultInt},
	{OpAbs, "Abs", 1, ResultInt},
	{OpCmp, "Compare", 2, ResultOrdering},
	{OpEq, "Equal", 2, ResultBool},
	{OpNe, "NotEqual", 2, ResultBool},
	{OpLt, "LessThan", 2, ResultBool},
	{OpLe, "LessThanOrEqual", 2, ResultBool},
	{OpGt, "GreaterThan", 2, ResultBool},
	{OpGe, "GreaterThanOrEqual", 2, ResultBool},
	{OpMin, "Min", 2, ResultInt},
	{OpMax, "Max", 2, ResultInt},
}

// aliases maps every accepted spelling, lowercased, to its Op.
var aliases = func() map[string]Op {
	m := make(map[string]Op, 3*len(opTable))
	for _, info := range opTable {
		m[string(info.Op)] = info.Op
		m[strings.ToLower(info.Name)] = info.Op
	}
	for alias, op := range map[string]Op{
		"subtract": OpSub, "multiply": OpMul, "divide": OpDiv,
		"modulo": OpMod, "power": OpPow, "pow": OpPow, "exp": OpPow,
		"negate": OpNeg, "compare": OpCmp,
		"lessorequal": OpLe, "greaterorequal": OpGe,
	} {
		m[alias] = op
	}
	return m
}()

// Ops returns every operation in declaration order.
func Ops() []OpInfo {
	out := make([]OpInfo, len(opTable))
	copy(out, opTable)
	return out
}

// ParseOp resolves a short ("le") or long ("LessThanOrEqual") operation
// name, case-insensitively.
func ParseOp(name string) (Op, error) {
	op, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown operation %q", name)
	}
	return op, nil
}

// Info returns the description of op.
func (op Op) Info() (OpInfo, bool) {
	for _, info := range opTable {
		if info.Op == op {
			return info, true
		}
	}
	return OpInfo{}, false
}

// Arity returns the operand count of op, or 0 if op is unknown.
func (op Op) Arity() int {
	info, _ := op.Info()
	return info.Arity
}

// Valid reports whether op is a known operation.
func (op Op) Valid() bool {
	_, ok := op.Info()
	return ok
}

// String returns the short name.
func (op Op) String() string {
	return string(op)
}
