package compiler

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"

	"github.com/roach88/tally/internal/ir"
)

// CompileSuite parses a CUE value into a Suite.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the suite struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`suite: carry: { cases: [...] }`)
//	s, err := CompileSuite(v.LookupPath(cue.ParsePath("suite.carry")))
//
// Operands and expected values may be written as CUE integers, so
// expectations can be computed with CUE's own exact arithmetic:
//
//	{op: "mul", args: [12345678901234567890, 3], want: 12345678901234567890 * 3}
func CompileSuite(v cue.Value) (*ir.Suite, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	suite := &ir.Suite{}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		suite.Name = labels[len(labels)-1].String()
	}

	descVal := v.LookupPath(cue.ParsePath("description"))
	if descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		suite.Description = desc
	}

	casesVal := v.LookupPath(cue.ParsePath("cases"))
	if !casesVal.Exists() {
		return nil, &CompileError{
			Field:   "cases",
			Message: "cases is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := casesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		c, err := parseCase(iter.Value(), i)
		if err != nil {
			return nil, err
		}
		suite.Cases = append(suite.Cases, c)
	}

	return suite, nil
}

// CompileSuites compiles every field of a `suite:` struct, in source order.
func CompileSuites(v cue.Value) ([]*ir.Suite, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var suites []*ir.Suite
	for iter.Next() {
		s, err := CompileSuite(iter.Value())
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

func parseCase(v cue.Value, i int) (ir.Case, error) {
	var c ir.Case
	field := fmt.Sprintf("cases[%d]", i)

	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return c, formatCUEError(err)
		}
		c.Name = name
	}

	opVal := v.LookupPath(cue.ParsePath("op"))
	if !opVal.Exists() {
		return c, &CompileError{
			Field:   field + ".op",
			Message: "op is required",
			Pos:     v.Pos(),
		}
	}
	op, err := opVal.String()
	if err != nil {
		return c, formatCUEError(err)
	}
	// Unknown names are kept verbatim and reported by Validate.
	if parsed, err := ir.ParseOp(op); err == nil {
		c.Op = parsed
	} else {
		c.Op = ir.Op(op)
	}

	argsVal := v.LookupPath(cue.ParsePath("args"))
	if !argsVal.Exists() {
		return c, &CompileError{
			Field:   field + ".args",
			Message: "args is required",
			Pos:     v.Pos(),
		}
	}
	argIter, err := argsVal.List()
	if err != nil {
		return c, formatCUEError(err)
	}
	c.Args = []string{}
	for j := 0; argIter.Next(); j++ {
		arg, err := literalText(argIter.Value(), fmt.Sprintf("%s.args[%d]", field, j))
		if err != nil {
			return c, err
		}
		c.Args = append(c.Args, arg)
	}

	if wantVal := v.LookupPath(cue.ParsePath("want")); wantVal.Exists() {
		if wantVal.Kind() == cue.BoolKind {
			b, err := wantVal.Bool()
			if err != nil {
				return c, formatCUEError(err)
			}
			c.Want = strconv.FormatBool(b)
		} else {
			c.Want, err = literalText(wantVal, field+".want")
			if err != nil {
				return c, err
			}
		}
	}

	if errVal := v.LookupPath(cue.ParsePath("error")); errVal.Exists() {
		c.WantError, err = errVal.String()
		if err != nil {
			return c, formatCUEError(err)
		}
	}

	return c, nil
}

// literalText renders a CUE integer or string as literal text.
// Strings pass through unchanged so suites can carry invalid literals.
func literalText(v cue.Value, field string) (string, error) {
	if err := v.Err(); err != nil {
		return "", formatCUEError(err)
	}
	switch v.Kind() {
	case cue.IntKind:
		n, err := v.Int(nil)
		if err != nil {
			return "", formatCUEError(err)
		}
		return n.String(), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return "", formatCUEError(err)
		}
		return s, nil
	case cue.FloatKind, cue.NumberKind:
		return "", &CompileError{
			Field:   field,
			Message: "floats are not literals - use an integer or a string",
			Pos:     v.Pos(),
		}
	default:
		return "", &CompileError{
			Field:   field,
			Message: fmt.Sprintf("must be an integer or a string, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}
