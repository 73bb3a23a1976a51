package sexpr

import (
	"io"
	"strings"
)

// Parse reads an expression and builds its list structure. If the input has
// no opening delimiter, the result is nil with no error. Otherwise the result
// is the list opened by the first opening delimiter, with every later list
// nested inside whichever list was open when it began.
//
// Unless StrictBrackets is given, unmatched delimiters are not errors: a
// closing delimiter with no open nested list is dropped, and lists still open
// at the end of input are dropped. The root list itself never closes.
//
// An atom token before the first opening delimiter is a *MalformedInputError,
// and an atom that looks like a number but does not parse as one is a
// *NumericError.
func Parse(src io.RuneScanner, opts ...ParseOption) (*List, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return parselist(lex(src), &p)
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string, opts ...ParseOption) (*List, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parselist runs the tree builder over every token in scan. stack holds the
// open lists other than the root, innermost last.
func parselist(scan *lexer, p *parsectx) (*List, error) {
	var (
		root   *List
		stack  []*List
		closed bool
	)
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if closed {
			// Only reachable in strict mode.
			switch tok.kind {
			case tokenEOF:
			case tokenClose:
				return nil, &BracketError{Col: tok.pos, Bracket: Close}
			default:
				return nil, &MalformedInputError{Col: tok.pos, Token: tok.text}
			}
		}
		switch tok.kind {
		case tokenEOF:
			if p.strict && root != nil && !closed {
				return nil, &BracketError{Col: tok.pos, Bracket: Open}
			}
			return root, nil
		case tokenOpen:
			if root == nil {
				root = &List{}
				continue
			}
			if p.maxdepth > 0 && len(stack)+2 > p.maxdepth {
				return nil, &DepthError{Col: tok.pos, Max: p.maxdepth}
			}
			stack = append(stack, &List{})
		case tokenClose:
			switch len(stack) {
			case 0:
				if !p.strict {
					// Stray closer. This includes the root's own closer.
					continue
				}
				if root == nil {
					return nil, &BracketError{Col: tok.pos, Bracket: Close}
				}
				closed = true
			case 1:
				root.Values = append(root.Values, ListValue(stack[0]))
				stack[0] = nil
				stack = stack[:0]
			default:
				k := len(stack) - 1
				child := stack[k]
				stack[k] = nil
				stack = stack[:k]
				parent := stack[k-1]
				parent.Values = append(parent.Values, ListValue(child))
			}
		case tokenAtom:
			if root == nil {
				return nil, &MalformedInputError{Col: tok.pos, Token: tok.text}
			}
			v, err := classify(tok)
			if err != nil {
				return nil, err
			}
			cur := root
			if len(stack) != 0 {
				cur = stack[len(stack)-1]
			}
			cur.Values = append(cur.Values, v)
		default:
			panic("sexpr: unknown token: " + tok.String())
		}
	}
}
