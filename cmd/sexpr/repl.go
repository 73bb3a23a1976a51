package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"github.com/zephyrtronium/sexpr"
)

const (
	historyFile = ".sexpr_history"
	promptMain  = "sexpr> "
	promptCont  = "...    "
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

func replCommand(flags *sexprFlags) *cli.Command {
	var hist string
	return &cli.Command{
		Name:  "repl",
		Usage: "read and evaluate expressions interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "history",
				Usage:       "history file (default ~/" + historyFile + ")",
				EnvVars:     []string{"SEXPR_HISTORY"},
				Destination: &hist,
			},
		},
		Action: func(c *cli.Context) error {
			if hist == "" {
				home, _ := os.UserHomeDir()
				hist = filepath.Join(home, historyFile)
			}
			return repl(c.App.Writer, c.App.ErrWriter, hist, flags.parseOptions())
		},
	}
}

func repl(w, ew io.Writer, histPath string, opts []sexpr.ParseOption) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	return loop(ln, w, ew, opts)
}

// lineSource is the part of *liner.State that the loop uses.
type lineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// loop reads and evaluates expressions from ln until the end of input or a
// quit command.
func loop(ln lineSource, w, ew io.Writer, opts []sexpr.ParseOption) error {
	ops := sexpr.DefaultOperators()
	for {
		src, ok, err := readExpr(ln)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w)
			return nil
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":ops":
			fmt.Fprintln(w, strings.Join(ops.Names(), " "))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		r, err := sexpr.EvalString(src, ops, opts...)
		if err != nil {
			fmt.Fprintln(ew, red(err.Error()))
			continue
		}
		fmt.Fprintln(w, green(r.String()))
	}
}

// readExpr reads lines until the brackets read so far balance. An interrupt
// discards the pending lines and starts over. The second result is false at
// the end of input.
func readExpr(ln lineSource) (string, bool, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			b.Reset()
			continue
		case errors.Is(err, io.EOF):
			if b.Len() > 0 {
				// Evaluate what we have; the parser drops unclosed lists.
				return b.String(), true, nil
			}
			return "", false, nil
		case err != nil:
			return "", false, err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if unclosed(b.String()) <= 0 {
			return b.String(), true, nil
		}
	}
}

// unclosed returns the number of opening delimiters in src that have no
// matching closer.
func unclosed(src string) int {
	n := 0
	for _, tok := range sexpr.Tokens(src) {
		switch tok {
		case sexpr.Open:
			n++
		case sexpr.Close:
			n--
		}
	}
	return n
}
