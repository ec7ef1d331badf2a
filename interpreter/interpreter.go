package interpreter

import (
	"errors"
	"fmt"
	"io"

	"github.com/dirtybirdnj/gellyscape/diag"
	"github.com/dirtybirdnj/gellyscape/font"
	"github.com/dirtybirdnj/gellyscape/graphicsstate"
	"github.com/dirtybirdnj/gellyscape/text"
)

// ErrOperationLimit is returned, together with the partial result, when a
// run exceeds the limit set by WithOperationLimit.
var ErrOperationLimit = errors.New("operation limit exceeded")

// Result holds the output of one content stream.
type Result struct {
	Paths []graphicsstate.Path
	Texts []text.Run

	// Operations is the number of operators dispatched, forms included.
	Operations int
}

// Interpreter executes content streams. It holds configuration only; each
// call to Run starts from fresh graphics and text state, so one
// Interpreter may run many streams.
type Interpreter struct {
	fonts    font.Lookup
	cache    *font.Cache
	sink     diag.Sink
	xobjects XObjectLookup
	maxDepth int
	opLimit  int
	initial  graphicsstate.GraphicsState
}

// New creates an interpreter.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		maxDepth: DefaultMaxDepth,
		initial:  graphicsstate.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.sink = diag.OrDiscard(in.sink)
	if in.cache == nil {
		in.cache = font.NewCache()
	}
	return in
}

// Run interprets a decoded content stream. Malformed input never fails the
// run; problems are reported to the sink. The only error is
// ErrOperationLimit, returned with the output produced so far.
func (in *Interpreter) Run(data []byte) (*Result, error) {
	res := &Result{}
	r := in.newRun(res, in.initial, in.fonts, in.xobjects, 0)
	err := r.exec(data)
	return res, err
}

// RunReader reads the whole stream from rd and runs it.
func (in *Interpreter) RunReader(rd io.Reader) (*Result, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read content stream: %w", err)
	}
	return in.Run(data)
}

func (in *Interpreter) newRun(res *Result, gs graphicsstate.GraphicsState, fonts font.Lookup, xobjects XObjectLookup, depth int) *run {
	return &run{
		in:       in,
		res:      res,
		gs:       gs,
		text:     text.NewTracker(font.NewDecoder(fonts, in.cache, in.sink)),
		xobjects: xobjects,
		fonts:    fonts,
		depth:    depth,
	}
}
