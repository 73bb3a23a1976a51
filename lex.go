package sexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenOpen is an opening delimiter.
	tokenOpen
	// tokenClose is a closing delimiter.
	tokenClose
	// tokenAtom is any other run of non-space runes.
	tokenAtom
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenAtom:
		return "Atom"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Delimiters which always form their own tokens.
const (
	Open  = "("
	Close = ")"
)

// isSpace reports whether r separates tokens. Only ASCII whitespace counts.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 0,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent calls return an
// empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return lexToken{kind: tokenEOF, pos: l.rune + 1}, nil
			}
			return lexToken{pos: l.rune}, err
		}
		switch {
		case isSpace(r):
			continue
		case r == '(':
			return lexToken{text: Open, kind: tokenOpen, pos: l.rune}, nil
		case r == ')':
			return lexToken{text: Close, kind: tokenClose, pos: l.rune}, nil
		default:
			tok := lexToken{kind: tokenAtom, pos: l.rune}
			l.buf.WriteRune(r)
			if err := l.scanAtom(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			return tok, nil
		}
	}
}

// scanAtom reads runes into the buffer until a space, delimiter, or EOF.
func (l *lexer) scanAtom() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Leave EOF for next to report.
				return nil
			}
			return err
		}
		if isSpace(r) || r == '(' || r == ')' {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// Tokens splits src into tokens. Each delimiter is its own token, and every
// other run of non-whitespace runes is one token, verbatim. The result for
// input with no tokens is nil.
func Tokens(src string) []string {
	var r []string
	scan := lex(strings.NewReader(src))
	for {
		tok, err := scan.next()
		if err != nil || tok.kind == tokenEOF {
			// Reading a strings.Reader cannot fail.
			return r
		}
		r = append(r, tok.text)
	}
}
