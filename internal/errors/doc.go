// Package errors provides structured, coded errors for Lamina.
//
// Each error has a unique code (e.g., "E001") that maps to a short message
// and a detailed explanation. Errors support wrapping, so errors.Is and
// errors.As work across package boundaries.
//
// # Error Categories
//
// Errors are organized into categories:
//   - structure: virtual-tree contract violations (declared child counts,
//     unknown node kinds)
//   - runtime: reconciliation misuse (re-entrant passes, tree mutation
//     from lifecycle callbacks)
//   - protocol: wire format errors (truncated or malformed frames)
//   - config: lamina.yaml problems
//
// # Usage
//
//	err := errors.New("E200").Wrap(io.ErrUnexpectedEOF)
//	fmt.Println(err) // "E200: Truncated mutation frame"
package errors
