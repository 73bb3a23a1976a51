package sexpr

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
	}{
		// spaces
		{"", nil},
		{" \t \r\n\f ", nil},
		// atoms
		{"0", []lexToken{{text: "0", kind: tokenAtom, pos: 1}}},
		{"1 0", []lexToken{{text: "1", kind: tokenAtom, pos: 1}, {text: "0", kind: tokenAtom, pos: 3}}},
		{"1.0", []lexToken{{text: "1.0", kind: tokenAtom, pos: 1}}},
		{"define", []lexToken{{text: "define", kind: tokenAtom, pos: 1}}},
		{"a.b$c", []lexToken{{text: "a.b$c", kind: tokenAtom, pos: 1}}},
		{"π", []lexToken{{text: "π", kind: tokenAtom, pos: 1}}},
		{"πr", []lexToken{{text: "πr", kind: tokenAtom, pos: 1}}},
		{"+", []lexToken{{text: "+", kind: tokenAtom, pos: 1}}},
		{"\"a b\"", []lexToken{{text: "\"a", kind: tokenAtom, pos: 1}, {text: "b\"", kind: tokenAtom, pos: 4}}},
		// non-ASCII space is part of an atom
		{"a\u00a0b", []lexToken{{text: "a\u00a0b", kind: tokenAtom, pos: 1}}},
		// delimiters
		{"()", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: ")", kind: tokenClose, pos: 2}}},
		{"(+ 2 1)", []lexToken{
			{text: "(", kind: tokenOpen, pos: 1},
			{text: "+", kind: tokenAtom, pos: 2},
			{text: "2", kind: tokenAtom, pos: 4},
			{text: "1", kind: tokenAtom, pos: 6},
			{text: ")", kind: tokenClose, pos: 7},
		}},
		{"a(b)c", []lexToken{
			{text: "a", kind: tokenAtom, pos: 1},
			{text: "(", kind: tokenOpen, pos: 2},
			{text: "b", kind: tokenAtom, pos: 3},
			{text: ")", kind: tokenClose, pos: 4},
			{text: "c", kind: tokenAtom, pos: 5},
		}},
		{"))", []lexToken{{text: ")", kind: tokenClose, pos: 1}, {text: ")", kind: tokenClose, pos: 2}}},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next()
			if err != nil {
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
				continue
			}
			if got.kind == tokenEOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
		}
		got, err := scan.next()
		if err != nil || got.kind != tokenEOF {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if _, err := scan.next(); err != io.EOF {
			t.Errorf("scanning %q: want io.EOF after EOF token, got %v", c.src, err)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("(begin (define r 10) (* pi (* r r)))")
	want := []string{
		"(", "begin", "(", "define", "r", "10", ")", "(", "*", "pi", "(", "*", "r", "r", ")",
		")", ")",
	}
	assert.Equal(t, want, got)
	assert.Nil(t, Tokens(""))
	assert.Nil(t, Tokens("  \n\t"))
}

// TestTokensPadding checks that lexing agrees with surrounding delimiters with
// spaces and splitting on whitespace.
func TestTokensPadding(t *testing.T) {
	cases := []string{
		"",
		"(",
		")(",
		"(a(b)c)",
		"((1.5 2)(x y) z)",
		"  ( +\t1\n2 ) ",
		"a)b(c",
	}
	for _, src := range cases {
		padded := strings.NewReplacer("(", " ( ", ")", " ) ").Replace(src)
		want := strings.Fields(padded)
		if len(want) == 0 {
			want = nil
		}
		assert.Equal(t, want, Tokens(src), "tokens of %q", src)
	}
}

type errReader struct {
	*strings.Reader
	err error
}

func (r *errReader) ReadRune() (rune, int, error) {
	c, sz, err := r.Reader.ReadRune()
	if err == io.EOF {
		return 0, 0, r.err
	}
	return c, sz, err
}

func TestLexReadError(t *testing.T) {
	bad := errors.New("bad reader")
	scan := lex(&errReader{strings.NewReader("(abc"), bad})
	tok, err := scan.next()
	require.NoError(t, err)
	require.Equal(t, tokenOpen, tok.kind)
	_, err = scan.next()
	require.ErrorIs(t, err, bad)
}
