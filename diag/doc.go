// Package diag carries non-fatal diagnostics out of the interpreter.
//
// Interpretation never fails on malformed content; instead each component
// reports a [Warning] to the [Sink] it was given. Callers choose where the
// warnings go:
//
//	var c diag.Collector
//	res, err := interpreter.New(interpreter.WithSink(&c)).Run(data)
//	fmt.Println(diag.Format(c.Warnings()))
//
// [SlogSink] forwards warnings to a structured logger, [Discard] drops them,
// and [Multi] fans out to several sinks.
package diag
