// Package main hosts the stitch CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into the
// reconciliation transforms in internal/reconcile and the pipeline
// driver in internal/pipeline. It centralizes configuration resolution
// and structured logging setup so subcommands can focus on flags and
// output formatting.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
