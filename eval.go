package sexpr

import (
	"io"
	"strconv"
	"strings"
)

// Eval evaluates a list with the given operators and returns the sum of the
// values of its top-level forms.
//
// Forms are read left to right. A symbol names an operator, which is applied
// to the next two elements of the list. Each operand must be an Int, which is
// used as is, or a nested List, which is evaluated with Eval. An Int on its
// own is a form whose value is itself. Anything else where a form or operand
// is expected is an *OperandError, as is combining values of different kinds.
// A symbol that is not in ops is an *OperatorError.
//
// Eval does not modify l. A nil list evaluates to Int(0).
func Eval(l *List, ops Operators) (Value, error) {
	if l == nil {
		return Int(0), nil
	}
	return evalforms(l.Values, ops)
}

// evalforms evaluates a sequence of forms, accumulating their sum.
func evalforms(forms []Value, ops Operators) (Value, error) {
	acc := Int(0)
	for pos := 0; pos < len(forms); pos++ {
		var r Value
		switch v := forms[pos]; v.kind {
		case KindSymbol:
			// Look up the operator first so that a call to an unknown
			// operator reports that rather than its operands.
			fn := ops[v.sym]
			if fn == nil {
				return Value{}, &OperatorError{Operator: v.sym}
			}
			x, err := evaloperand(forms, &pos, v.sym, ops)
			if err != nil {
				return Value{}, err
			}
			y, err := evaloperand(forms, &pos, v.sym, ops)
			if err != nil {
				return Value{}, err
			}
			r, err = fn(x, y)
			if err != nil {
				return Value{}, err
			}
		case KindInt:
			r = v
		default:
			return Value{}, &OperandError{Values: []Value{v}}
		}
		var err error
		acc, err = Add(acc, r)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

// evaloperand advances pos and evaluates the operand there.
func evaloperand(forms []Value, pos *int, op string, ops Operators) (Value, error) {
	*pos++
	if *pos >= len(forms) {
		return Value{}, &OperandError{Func: op, Missing: true}
	}
	switch v := forms[*pos]; v.kind {
	case KindInt:
		return v, nil
	case KindList:
		return evalforms(v.list.Values, ops)
	default:
		return Value{}, &OperandError{Func: op, Values: []Value{v}}
	}
}

// EvalReader is a shortcut to parse an expression and evaluate it. Input with
// no lists evaluates to Int(0).
func EvalReader(src io.RuneScanner, ops Operators, opts ...ParseOption) (Value, error) {
	l, err := Parse(src, opts...)
	if err != nil {
		return Value{}, err
	}
	return Eval(l, ops)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, ops Operators, opts ...ParseOption) (Value, error) {
	return EvalReader(strings.NewReader(src), ops, opts...)
}

// OperatorError is an error indicating a symbol applied as an operator which
// is not in the operator table.
type OperatorError struct {
	// Operator is the symbol that was not found.
	Operator string
}

func (err *OperatorError) Error() string {
	return "unknown operator " + strconv.Quote(err.Operator)
}
