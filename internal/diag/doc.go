// Package diag defines the diagnostic model shared by every compiler
// phase (§4.9).
//
// # Purpose
//
//   - Provide deterministic data structures for findings produced by
//     the lexer, parser, name resolver, and type checker.
//   - Offer lightweight emission utilities (Reporter, Bag) that let
//     producers emit diagnostics without coupling to storage or
//     formatting.
//
// # Data model
//
// Diagnostic is the central record: Severity (Info/Warning/Error),
// Code (a stable numeric identifier, see codes.go), Label (short
// human-oriented text), a primary Span, and optional Notes for
// secondary context.
//
// # Emitting diagnostics
//
// Phases use a Reporter to decouple emission from storage. A
// ReportBuilder (via NewReportBuilder, or the ReportError/Warning/Info
// helpers) accumulates notes before a single Emit call. BagReporter
// adapts a *Bag, which supports sorting, deduplication, filtering, and
// transformation — the aggregation required by the external interface
// (§6) before diagnostics are returned to a caller.
package diag
