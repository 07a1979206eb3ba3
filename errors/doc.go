// Package errors implements the error handling policy for StoreSight.
//
// Errors fall into three classes:
//
//   - Invalid: a single bad input (malformed record, unknown SKU, duplicate
//     catalog entry). The record is isolated and skipped; the run continues.
//   - Fatal: a configuration-domain violation. The run aborts before any
//     detection begins, since an inconsistent configuration can silently
//     under- or over-report events.
//   - Transient: an external failure (sink write, lost connection) that may
//     be retried. The engine's in-memory result is unaffected.
//
// Components wrap errors with Wrap/WrapInvalid/WrapFatal/WrapTransient,
// producing messages of the form "component.method: action failed: ...".
// Callers branch on class via IsInvalid, IsFatal and IsTransient rather
// than string matching.
package errors
