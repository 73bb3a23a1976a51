package sexpr

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind is the kind of a Value.
type Kind int8

const (
	// KindNone is the zero Value. Parsing and evaluation never produce it.
	KindNone Kind = iota
	// KindSymbol is an operator or identifier name.
	KindSymbol
	// KindInt is a 32-bit signed integer.
	KindInt
	// KindFloat is a 32-bit float.
	KindFloat
	// KindList is a nested List.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindSymbol:
		return "Symbol"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindList:
		return "List"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a symbol, number, or nested list. The zero Value has KindNone.
type Value struct {
	kind Kind

	sym  string
	i    int32
	f    float32
	list *List
}

// Symbol creates a symbol value.
func Symbol(name string) Value {
	return Value{kind: KindSymbol, sym: name}
}

// Int creates an integer value.
func Int(x int32) Value {
	return Value{kind: KindInt, i: x}
}

// Float creates a float value.
func Float(x float32) Value {
	return Value{kind: KindFloat, f: x}
}

// ListValue wraps a List as a Value. A nil list is treated as empty.
func ListValue(l *List) Value {
	if l == nil {
		l = &List{}
	}
	return Value{kind: KindList, list: l}
}

// Nest is a shortcut for ListValue(NewList(vals...)).
func Nest(vals ...Value) Value {
	return ListValue(NewList(vals...))
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Sym returns the name of a symbol, or the empty string if v is not a symbol.
func (v Value) Sym() string {
	return v.sym
}

// Int returns the value of an integer, or 0 if v is not an integer.
func (v Value) Int() int32 {
	return v.i
}

// Float returns the value of a float, or 0 if v is not a float.
func (v Value) Float() float32 {
	return v.f
}

// List returns the list v holds, or nil if v is not a list.
func (v Value) List() *List {
	return v.list
}

// Equal reports whether v and w are the same kind and hold equal contents.
// Floats compare with ==, so NaN is never equal to anything.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindSymbol:
		return v.sym == w.sym
	case KindInt:
		return v.i == w.i
	case KindFloat:
		return v.f == w.f
	case KindList:
		return v.list.Equal(w.list)
	default:
		panic("sexpr: invalid value kind " + v.kind.String())
	}
}

func (v Value) String() string {
	var b strings.Builder
	v.fmt(&b)
	return b.String()
}

func (v Value) fmt(b *strings.Builder) {
	switch v.kind {
	case KindNone:
		b.WriteString("#none")
	case KindSymbol:
		b.WriteString(v.sym)
	case KindInt:
		b.WriteString(strconv.FormatInt(int64(v.i), 10))
	case KindFloat:
		b.WriteString(fmtfloat(v.f))
	case KindList:
		v.list.fmt(b)
	default:
		panic("sexpr: invalid value kind " + v.kind.String())
	}
}

// fmtfloat formats a float so that it reads back as a float.
func fmtfloat(f float32) string {
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// tree converts v to plain data for encoders.
func (v Value) tree() interface{} {
	switch v.kind {
	case KindNone:
		return nil
	case KindSymbol:
		return map[string]string{"symbol": v.sym}
	case KindInt:
		return map[string]int32{"int": v.i}
	case KindFloat:
		return map[string]float32{"float": v.f}
	case KindList:
		return v.list.tree()
	default:
		panic("sexpr: invalid value kind " + v.kind.String())
	}
}

// MarshalYAML encodes v as a single-key mapping naming its kind, a sequence
// for lists, or null for None.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.tree(), nil
}

// MarshalJSON encodes v in the same shape as MarshalYAML.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.tree())
}

// List is an ordered sequence of values, one parenthesized level of an
// expression.
type List struct {
	Values []Value
}

// NewList creates a list holding vals.
func NewList(vals ...Value) *List {
	return &List{Values: vals}
}

// Len returns the number of elements in l. A nil list has length 0.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Values)
}

// Depth returns the nesting depth of l: 1 for a list without nested lists,
// plus one for each level of nesting. A nil list has depth 0.
func (l *List) Depth() int {
	if l == nil {
		return 0
	}
	d := 0
	for _, v := range l.Values {
		if v.kind != KindList {
			continue
		}
		if k := v.list.Depth(); k > d {
			d = k
		}
	}
	return d + 1
}

// Equal reports whether l and m hold equal values in the same order.
func (l *List) Equal(m *List) bool {
	if l == nil || m == nil {
		return l == m
	}
	if len(l.Values) != len(m.Values) {
		return false
	}
	for i, v := range l.Values {
		if !v.Equal(m.Values[i]) {
			return false
		}
	}
	return true
}

// String formats l as a parenthesized expression.
func (l *List) String() string {
	if l == nil {
		return "#none"
	}
	var b strings.Builder
	l.fmt(&b)
	return b.String()
}

func (l *List) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	for i, v := range l.Values {
		if i != 0 {
			b.WriteByte(' ')
		}
		v.fmt(b)
	}
}

func (l *List) tree() interface{} {
	if l == nil {
		return nil
	}
	r := make([]interface{}, len(l.Values))
	for i, v := range l.Values {
		r[i] = v.tree()
	}
	return r
}

// MarshalYAML encodes l as a sequence, or null if l is nil.
func (l *List) MarshalYAML() (interface{}, error) {
	return l.tree(), nil
}

// MarshalJSON encodes l as an array.
func (l *List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.tree())
}
