package sexpr

import (
	"regexp"
	"strconv"
)

// Both patterns search rather than match the whole token. Anything with a
// decimal point is a float, and anything else with a digit is an integer, so
// tokens like "x1" or "a.b" are numeric and fail to parse.
var (
	floatpat = regexp.MustCompile(`[0-9]*[.][0-9]*`)
	intpat   = regexp.MustCompile(`[0-9]+`)
)

// decimalpat is the full float syntax. ParseFloat alone also accepts hex
// mantissas and underscore separators.
var decimalpat = regexp.MustCompile(`^[+-]?([0-9]+[.]?[0-9]*|[.][0-9]+)([eE][+-]?[0-9]+)?$`)

func looksLikeFloat(tok string) bool {
	return floatpat.MatchString(tok)
}

func looksLikeInt(tok string) bool {
	return intpat.MatchString(tok)
}

// classify converts an atom token to a value. The float test must come first
// because every float with digits also looks like an integer.
func classify(tok lexToken) (Value, error) {
	switch {
	case looksLikeFloat(tok.text):
		if !decimalpat.MatchString(tok.text) {
			err := &strconv.NumError{Func: "ParseFloat", Num: tok.text, Err: strconv.ErrSyntax}
			return Value{}, &NumericError{Col: tok.pos, Token: tok.text, Kind: KindFloat, Err: err}
		}
		f, err := strconv.ParseFloat(tok.text, 32)
		if err != nil {
			return Value{}, &NumericError{Col: tok.pos, Token: tok.text, Kind: KindFloat, Err: err}
		}
		return Float(float32(f)), nil
	case looksLikeInt(tok.text):
		n, err := strconv.ParseInt(tok.text, 10, 32)
		if err != nil {
			return Value{}, &NumericError{Col: tok.pos, Token: tok.text, Kind: KindInt, Err: err}
		}
		return Int(int32(n)), nil
	default:
		return Symbol(tok.text), nil
	}
}

// Classify converts a single token to a Float, Int, or Symbol value using the
// same rules as Parse. Delimiters are not special here; "(" is a symbol.
func Classify(tok string) (Value, error) {
	return classify(lexToken{text: tok, pos: 1})
}
