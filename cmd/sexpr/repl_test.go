package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/sexpr"
)

// fakeLine is one response to a prompt.
type fakeLine struct {
	line string
	err  error
}

// fakeLines is a lineSource that replays lines and then reports io.EOF.
type fakeLines struct {
	lines   []fakeLine
	prompts []string
	history []string
}

func (f *fakeLines) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	l := f.lines[0]
	f.lines = f.lines[1:]
	return l.line, l.err
}

func (f *fakeLines) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func lines(s ...string) *fakeLines {
	f := &fakeLines{}
	for _, l := range s {
		f.lines = append(f.lines, fakeLine{line: l})
	}
	return f
}

func TestReadExpr(t *testing.T) {
	cases := []struct {
		name    string
		src     *fakeLines
		want    string
		ok      bool
		prompts []string
	}{
		{"single", lines("(+ 1 2)"), "(+ 1 2)", true, []string{promptMain}},
		{"continued", lines("(+ 1", "  (- 3", "1))"), "(+ 1\n  (- 3\n1))", true, []string{promptMain, promptCont, promptCont}},
		{"eof-pending", lines("(+ 1 2"), "(+ 1 2", true, []string{promptMain, promptCont}},
		{"eof", lines(), "", false, []string{promptMain}},
		{"abort-pending", &fakeLines{lines: []fakeLine{
			{line: "(+ 1"},
			{err: liner.ErrPromptAborted},
			{line: "(- 5 1)"},
		}}, "(- 5 1)", true, []string{promptMain, promptCont, promptMain}},
		{"abort-empty", &fakeLines{lines: []fakeLine{
			{err: liner.ErrPromptAborted},
			{line: "(7)"},
		}}, "(7)", true, []string{promptMain, promptMain}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok, err := readExpr(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.prompts, c.src.prompts)
		})
	}

	bad := errors.New("terminal gone")
	_, _, err := readExpr(&fakeLines{lines: []fakeLine{{err: bad}}})
	assert.ErrorIs(t, err, bad)
}

func TestLoop(t *testing.T) {
	color.NoColor = true
	cases := []struct {
		name    string
		src     *fakeLines
		out     string
		errout  string
		history []string
	}{
		{
			name:    "eval",
			src:     lines("(+ 2 1)", "(+ 1", "(* 2 3))"),
			out:     "3\n7\n\n",
			history: []string{"(+ 2 1)", "(+ 1 (* 2 3))"},
		},
		{
			name: "ops",
			src:  lines(":ops", "  ", ":q", "(1)"),
			out:  "* + - / ^ max min\n",
		},
		{
			name:    "quit",
			src:     lines("(1)", ":quit", "(2)"),
			out:     "1\n",
			history: []string{"(1)"},
		},
		{
			name:    "errors continue",
			src:     lines("(define r 10)", "(- 9 4)"),
			out:     "5\n\n",
			errout:  `unknown operator "define"` + "\n",
			history: []string{"(define r 10)", "(- 9 4)"},
		},
		{
			name: "interrupt",
			src: &fakeLines{lines: []fakeLine{
				{line: "(+ 1"},
				{err: liner.ErrPromptAborted},
				{line: ":q"},
			}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out, errout bytes.Buffer
			require.NoError(t, loop(c.src, &out, &errout, nil))
			assert.Equal(t, c.out, out.String())
			assert.Equal(t, c.errout, errout.String())
			assert.Equal(t, c.history, c.src.history)
		})
	}
}

func TestLoopStrict(t *testing.T) {
	color.NoColor = true
	var out, errout bytes.Buffer
	src := lines("(+ 1 2))")
	require.NoError(t, loop(src, &out, &errout, []sexpr.ParseOption{sexpr.StrictBrackets()}))
	assert.Equal(t, "\n", out.String())
	assert.Contains(t, errout.String(), "close bracket")
}
