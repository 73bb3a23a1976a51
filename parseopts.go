package sexpr

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	strictopt struct{}
	depthopt  int
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// strict makes unmatched delimiters errors instead of ignoring them.
	strict bool
	// maxdepth is the maximum list nesting depth, or 0 for no limit.
	maxdepth int
	// preset indicates that the context came from ParsingPreset.
	preset bool
}

// StrictBrackets makes parsing reject unmatched delimiters. By default, a
// closing delimiter with no open list is dropped, lists still open at the end
// of input are dropped, and a root list is never closed, so later lists nest
// inside it. With StrictBrackets, each of those is a *BracketError, and any
// token after the root list closes is a *MalformedInputError.
func StrictBrackets() ParseOption {
	return strictopt{}
}

func (strictopt) parseOption(p parsectx) parsectx {
	p.strict = true
	return p
}

// MaxDepth limits the nesting depth of parsed lists. The root list has depth
// 1. An opening delimiter that would exceed the limit causes a *DepthError.
// A limit of zero or less removes the limit.
func MaxDepth(n int) ParseOption {
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	if p.maxdepth < 0 {
		p.maxdepth = 0
	}
	return p
}

// ParsingPreset folds a list of options into one. A preset panics when it
// would apply over any non-default option, but it is safe to apply other
// options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	p.preset = true
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.strict || p.maxdepth != 0 || p.preset {
		panic("sexpr: preset applied to non-default parse config")
	}
	return *o
}
