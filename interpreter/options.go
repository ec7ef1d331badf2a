package interpreter

import (
	"github.com/dirtybirdnj/gellyscape/diag"
	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/graphicsstate"
)

// DefaultMaxDepth is the default limit on nested Form XObjects.
const DefaultMaxDepth = 16

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithFonts sets the font resources used to decode shown text.
func WithFonts(fonts font.Lookup) Option {
	return func(in *Interpreter) {
		in.fonts = fonts
	}
}

// WithCMapCache shares a ToUnicode cache, typically across the pages of one
// document.
func WithCMapCache(cache *font.Cache) Option {
	return func(in *Interpreter) {
		in.cache = cache
	}
}

// WithSink sets the diagnostics sink (default: discard).
func WithSink(sink diag.Sink) Option {
	return func(in *Interpreter) {
		in.sink = sink
	}
}

// WithXObjects sets the lookup used to resolve Do operands.
func WithXObjects(xobjects XObjectLookup) Option {
	return func(in *Interpreter) {
		in.xobjects = xobjects
	}
}

// WithMaxDepth limits Form XObject nesting (default: 16).
func WithMaxDepth(depth int) Option {
	return func(in *Interpreter) {
		in.maxDepth = depth
	}
}

// WithOperationLimit stops interpretation after n operations, counting
// those inside forms. Zero means no limit.
func WithOperationLimit(n int) Option {
	return func(in *Interpreter) {
		in.opLimit = n
	}
}

// WithInitialState sets the graphics state a run starts from, e.g. a CTM
// that maps a rotated page upright.
func WithInitialState(gs graphicsstate.GraphicsState) Option {
	return func(in *Interpreter) {
		in.initial = gs
	}
}
