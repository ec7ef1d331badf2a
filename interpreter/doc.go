// Package interpreter executes PDF content streams and collects the paths
// they paint and the text they show.
//
// # Basic Usage
//
//	in := interpreter.New(
//		interpreter.WithFonts(fonts),
//		interpreter.WithSink(diag.NewSlogSink(logger)),
//	)
//	res, err := in.Run(content)
//	for _, p := range res.Paths {
//		fmt.Println(p.Operation, len(p.Subpaths))
//	}
//
// # Tolerance
//
// Interpretation never fails on malformed input. Unknown operators,
// operators with too few or mistyped operands and unbalanced save/restore
// are reported to the diagnostics sink and otherwise ignored. Handlers read
// the last operands before their operator, so extra leading operands are
// harmless.
//
// # Form XObjects
//
// A Do operator naming a form runs the form's content in a child run that
// starts from the live graphics state with the form matrix applied. Its
// paths and text are added to the same Result in paint order. Nesting is
// limited by WithMaxDepth.
package interpreter
