package sexpr

import (
	"strconv"
)

// MalformedInputError is an error indicating an atom before the first opening
// delimiter, or any token after the root list closed in strict mode. It
// implements InputError.
type MalformedInputError struct {
	// Col is the position of the token.
	Col int
	// Token is the token text.
	Token string
}

func (err *MalformedInputError) Error() string {
	return errpos(err.Col, "token "+strconv.Quote(err.Token)+" outside of any list")
}

func (err *MalformedInputError) Pos() int {
	return err.Col
}

// NumericError is an error indicating a token that looks like a number but
// cannot be parsed as one, e.g. because it overflows. It implements
// InputError and unwraps to the error from package strconv.
type NumericError struct {
	// Col is the position of the token.
	Col int
	// Token is the token text.
	Token string
	// Kind is KindInt or KindFloat, whichever the token was classified as.
	Kind Kind
	// Err is the underlying parse error.
	Err error
}

func (err *NumericError) Error() string {
	return errpos(err.Col, "invalid "+err.Kind.String()+" literal "+strconv.Quote(err.Token)+": "+err.Err.Error())
}

func (err *NumericError) Pos() int {
	return err.Col
}

func (err *NumericError) Unwrap() error {
	return err.Err
}

// BracketError is an error indicating an unmatched delimiter. Parsing only
// returns it with StrictBrackets. It implements InputError.
type BracketError struct {
	// Col is the position of the delimiter, or of the end of input for an
	// unclosed list.
	Col int
	// Bracket is the unmatched delimiter.
	Bracket string
}

func (err *BracketError) Error() string {
	if err.Bracket == Open {
		return errpos(err.Col, "open bracket "+Open+" with no close bracket")
	}
	return errpos(err.Col, "close bracket "+err.Bracket+" with no open bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// DepthError is an error indicating lists nested more deeply than allowed by
// MaxDepth. It implements InputError.
type DepthError struct {
	// Col is the position of the opening delimiter that exceeded the limit.
	Col int
	// Max is the maximum depth.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "lists nested deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*MalformedInputError)(nil)
	_ InputError = (*NumericError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*DepthError)(nil)
)
