package sexpr

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a binary operator. Both operands are already evaluated. Operators
// should return an *OperandError for operands of kinds they do not accept.
type Func func(x, y Value) (Value, error)

// Operators maps operator names to their functions.
type Operators map[string]Func

var globalops = Operators{
	"+":   Add,
	"-":   Sub,
	"*":   Mul,
	"/":   Quo,
	"^":   Pow,
	"min": Min,
	"max": Max,
}

// DefaultOperators returns a new copy of the built-in operator table, which
// has "+", "-", "*", "/", "^", "min", and "max".
func DefaultOperators() Operators {
	m := make(Operators, len(globalops))
	for k, v := range globalops {
		m[k] = v
	}
	return m
}

// With returns a copy of ops with name set to fn. If fn is nil, the copy does
// not have name.
func (ops Operators) With(name string, fn Func) Operators {
	m := make(Operators, len(ops)+1)
	for k, v := range ops {
		m[k] = v
	}
	if fn == nil {
		delete(m, name)
	} else {
		m[name] = fn
	}
	return m
}

// Names returns the operator names in ops in sorted order.
func (ops Operators) Names() []string {
	names := make([]string, 0, len(ops))
	for k := range ops {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// arith applies fi to a pair of Ints or ff to a pair of Floats. Any other pair
// is an *OperandError naming op.
func arith(op string, x, y Value, fi func(a, b int32) (int32, error), ff func(a, b float32) (float32, error)) (Value, error) {
	switch {
	case x.kind == KindInt && y.kind == KindInt:
		r, err := fi(x.i, y.i)
		if err != nil {
			return Value{}, err
		}
		return Int(r), nil
	case x.kind == KindFloat && y.kind == KindFloat:
		r, err := ff(x.f, y.f)
		if err != nil {
			return Value{}, err
		}
		return Float(r), nil
	default:
		return Value{}, &OperandError{Func: op, Values: []Value{x, y}}
	}
}

// Add adds two Ints or two Floats. Int addition wraps on overflow.
func Add(x, y Value) (Value, error) {
	return arith("+", x, y,
		func(a, b int32) (int32, error) { return a + b, nil },
		func(a, b float32) (float32, error) { return a + b, nil },
	)
}

// Sub subtracts two Ints or two Floats. Int subtraction wraps on overflow.
func Sub(x, y Value) (Value, error) {
	return arith("-", x, y,
		func(a, b int32) (int32, error) { return a - b, nil },
		func(a, b float32) (float32, error) { return a - b, nil },
	)
}

// Mul multiplies two Ints or two Floats. Int multiplication wraps on
// overflow.
func Mul(x, y Value) (Value, error) {
	return arith("*", x, y,
		func(a, b int32) (int32, error) { return a * b, nil },
		func(a, b float32) (float32, error) { return a * b, nil },
	)
}

// Quo divides two Ints, truncating toward zero, or two Floats. Dividing an Int
// by zero is a *DomainError.
func Quo(x, y Value) (Value, error) {
	return arith("/", x, y,
		func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, &DomainError{X: Int(b), Arg: 2, Func: "/"}
			}
			return a / b, nil
		},
		func(a, b float32) (float32, error) { return a / b, nil },
	)
}

// Pow raises x to the power y. For Ints, y must not be negative, and the
// result wraps on overflow. For Floats, x must not be negative.
func Pow(x, y Value) (Value, error) {
	return arith("^", x, y, ipow, fpow)
}

func ipow(a, b int32) (int32, error) {
	if b < 0 {
		return 0, &DomainError{X: Int(b), Arg: 2, Func: "^"}
	}
	r := int32(1)
	for b > 0 {
		if b&1 != 0 {
			r *= a
		}
		a *= a
		b >>= 1
	}
	return r, nil
}

func fpow(a, b float32) (r float32, err error) {
	if math.Signbit(float64(a)) && a != 0 {
		return 0, &DomainError{X: Float(a), Arg: 1, Func: "^"}
	}
	if a == 0 || isSpecial(a) || isSpecial(b) {
		// big.Float has no NaN, and bigfloat wants a positive base.
		return float32(math.Pow(float64(a), float64(b))), nil
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, _ := p.(error)
		if !errors.As(e, &big.ErrNaN{}) {
			panic(p)
		}
		err = &DomainError{X: Float(a), Arg: 1, Func: "^"}
	}()
	bx := new(big.Float).SetPrec(64).SetFloat64(float64(a))
	by := new(big.Float).SetPrec(64).SetFloat64(float64(b))
	f, _ := bigfloat.Pow(new(big.Float).SetPrec(64), bx, by).Float32()
	return f, nil
}

func isSpecial(f float32) bool {
	return math.IsInf(float64(f), 0) || math.IsNaN(float64(f))
}

// Min returns the lesser of two Ints or two Floats.
func Min(x, y Value) (Value, error) {
	return arith("min", x, y,
		func(a, b int32) (int32, error) {
			if b < a {
				return b, nil
			}
			return a, nil
		},
		func(a, b float32) (float32, error) { return float32(math.Min(float64(a), float64(b))), nil },
	)
}

// Max returns the greater of two Ints or two Floats.
func Max(x, y Value) (Value, error) {
	return arith("max", x, y,
		func(a, b int32) (int32, error) {
			if b > a {
				return b, nil
			}
			return a, nil
		},
		func(a, b float32) (float32, error) { return float32(math.Max(float64(a), float64(b))), nil },
	)
}

// OperandError is an error indicating an operand or top-level form of a kind
// that cannot be used where it appears. This includes applying an operator to
// values of different kinds.
type OperandError struct {
	// Func is the operator being applied, or empty for a top-level form.
	Func string
	// Values are the offending values. For an operator, these are all of its
	// operands.
	Values []Value
	// Missing is whether an operator had fewer than two operands.
	Missing bool
}

func (err *OperandError) Error() string {
	var b strings.Builder
	switch {
	case err.Missing:
		b.WriteString("missing operand for ")
		b.WriteString(strconv.Quote(err.Func))
		return b.String()
	case err.Func == "":
		b.WriteString("cannot evaluate")
	default:
		b.WriteString("unsupported operands for ")
		b.WriteString(strconv.Quote(err.Func))
		b.WriteByte(':')
	}
	for _, v := range err.Values {
		b.WriteByte(' ')
		b.WriteString(v.Kind().String())
		b.WriteByte('(')
		b.WriteString(v.String())
		b.WriteByte(')')
	}
	return b.String()
}

// DomainError is an error returned when an operator is applied to operands
// outside its domain.
type DomainError struct {
	// X is the out-of-domain operand.
	X Value
	// Arg is the 1-based index of the operand.
	Arg int
	// Func is the operator name.
	Func string
}

func (err *DomainError) Error() string {
	return err.Func + ": operand " + strconv.Itoa(err.Arg) + " out of domain: " + err.X.String()
}
