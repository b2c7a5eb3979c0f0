// Package diag defines the diagnostic model shared by the lint pipeline.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the directive extractor and the ordering checks.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; orchestration lives
// in the driver layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context rather than
// repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Producers use a diag.Reporter to decouple emission from storage. The
// ordering checks construct a ReportBuilder via the helper functions
// ReportWarning/ReportError and call Emit. When no additional metadata is
// needed, producers may call Reporter.Report(...) directly. diag.BagReporter
// aggregates diagnostics into a Bag, which supports sorting, capping and
// merging; DedupReporter filters exact repeats at the sink.
//
// Keep the data model deterministic: diagnostics are serialised for caching
// and compared verbatim in tests.
package diag
