// Package diagnostic provides structured warnings and errors collected
// while applying conversion declarations.
//
// Key capabilities:
//   - Unknown symbol errors with closest-name suggestions
//   - Rejected declaration shapes with the offending symbol
//   - Merge and summary across apply passes
package diagnostic
