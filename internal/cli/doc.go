// Package cli provides the interactive seabook command line.
//
// It drives the Sea Service state container from a small REPL: start a
// draft, fill sections and the service period with name=value fields,
// check progress, finalize or discard, and browse finalized history.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
