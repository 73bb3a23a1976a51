package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/sexpr"
)

// sexprFlags holds the flags shared by every command.
type sexprFlags struct {
	Strict   bool
	MaxDepth int
	In       string
	Lines    bool
}

func (flags *sexprFlags) AsCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "reject unmatched brackets instead of ignoring them",
			EnvVars:     []string{"SEXPR_STRICT"},
			Destination: &flags.Strict,
		},
		&cli.IntFlag{
			Name:        "max-depth",
			Usage:       "maximum list nesting depth (0 for no limit)",
			EnvVars:     []string{"SEXPR_MAX_DEPTH"},
			Destination: &flags.MaxDepth,
		},
		&cli.StringFlag{
			Name:        "in",
			Usage:       "input file, or - for stdin (default stdin if no args given)",
			Destination: &flags.In,
		},
		&cli.BoolFlag{
			Name:        "n",
			Usage:       "treat separate input lines as separate expressions",
			Destination: &flags.Lines,
		},
	}
}

// parseOptions converts the flags to parse options.
func (flags *sexprFlags) parseOptions() []sexpr.ParseOption {
	var opts []sexpr.ParseOption
	if flags.Strict {
		opts = append(opts, sexpr.StrictBrackets())
	}
	if flags.MaxDepth > 0 {
		opts = append(opts, sexpr.MaxDepth(flags.MaxDepth))
	}
	return opts
}

// inputs collects the expressions to process from the command arguments and
// the input file.
func (flags *sexprFlags) inputs(c *cli.Context) ([]string, error) {
	var srcs []string
	f, err := infile(flags.In, c.NArg() == 0, c.App.Reader)
	if err != nil {
		return nil, err
	}
	if f != nil {
		s, err := readall(f, flags.Lines)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, s...)
	}
	srcs = append(srcs, c.Args().Slice()...)
	return srcs, nil
}

func main() {
	log.SetFlags(0)
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	var flags sexprFlags
	return &cli.App{
		Name:  "sexpr",
		Usage: "parse and evaluate parenthesized prefix expressions",
		Flags: flags.AsCliFlags(),
		Commands: []*cli.Command{
			evalCommand(&flags),
			parseCommand(&flags),
			tokensCommand(&flags),
			replCommand(&flags),
		},
	}
}

func evalCommand(flags *sexprFlags) *cli.Command {
	var echo bool
	return &cli.Command{
		Name:      "eval",
		Usage:     "evaluate expressions and print their results",
		ArgsUsage: "[expr...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "echo",
				Usage:       "print parse trees before results",
				Destination: &echo,
			},
		},
		Action: func(c *cli.Context) error {
			srcs, err := flags.inputs(c)
			if err != nil {
				return err
			}
			return evalAll(c.App.Writer, srcs, sexpr.DefaultOperators(), flags.parseOptions(), echo)
		},
	}
}

// evalAll evaluates each expression and prints its result. It stops at the
// first error.
func evalAll(w io.Writer, srcs []string, ops sexpr.Operators, opts []sexpr.ParseOption, echo bool) error {
	for _, src := range srcs {
		l, err := sexpr.ParseString(src, opts...)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", src, err)
		}
		if echo {
			fmt.Fprintf(w, "%v : ", l)
		}
		r, err := sexpr.Eval(l, ops)
		if err != nil {
			return fmt.Errorf("evaluating %q: %w", src, err)
		}
		fmt.Fprintln(w, r)
	}
	return nil
}

func parseCommand(flags *sexprFlags) *cli.Command {
	var format string
	return &cli.Command{
		Name:      "parse",
		Usage:     "print the parse trees of expressions",
		ArgsUsage: "[expr...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format: text, json, or yaml",
				Value:       "text",
				EnvVars:     []string{"SEXPR_FORMAT"},
				Destination: &format,
			},
		},
		Action: func(c *cli.Context) error {
			srcs, err := flags.inputs(c)
			if err != nil {
				return err
			}
			return parseAll(c.App.Writer, srcs, flags.parseOptions(), format)
		},
	}
}

// parseAll parses each expression and prints its tree in the given format.
func parseAll(w io.Writer, srcs []string, opts []sexpr.ParseOption, format string) error {
	var emit func(*sexpr.List) error
	switch format {
	case "text":
		emit = func(l *sexpr.List) error {
			_, err := fmt.Fprintln(w, l)
			return err
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		emit = func(l *sexpr.List) error { return enc.Encode(l) }
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		emit = func(l *sexpr.List) error { return enc.Encode(l) }
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	for _, src := range srcs {
		l, err := sexpr.ParseString(src, opts...)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", src, err)
		}
		if err := emit(l); err != nil {
			return fmt.Errorf("writing %q: %w", src, err)
		}
	}
	return nil
}

func tokensCommand(flags *sexprFlags) *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "print the tokens of expressions, one per line",
		ArgsUsage: "[expr...]",
		Action: func(c *cli.Context) error {
			srcs, err := flags.inputs(c)
			if err != nil {
				return err
			}
			for _, src := range srcs {
				for _, tok := range sexpr.Tokens(src) {
					fmt.Fprintln(c.App.Writer, tok)
				}
			}
			return nil
		},
	}
}

// infile opens the input file. The result is nil if there is no input file
// and std is false.
func infile(inname string, std bool, stdin io.Reader) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return f, nil
	case inname == "-", std:
		return stdin, nil
	}
	return nil, nil
}

// readall reads the input either as a single expression or, if lines is true,
// as one expression per non-blank line.
func readall(in io.Reader, lines bool) ([]string, error) {
	if c, ok := in.(io.Closer); ok && in != os.Stdin {
		defer c.Close()
	}
	if !lines {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var r []string
	scan := bufio.NewScanner(in)
	for scan.Scan() {
		if strings.TrimSpace(scan.Text()) == "" {
			continue
		}
		r = append(r, scan.Text())
	}
	return r, scan.Err()
}
