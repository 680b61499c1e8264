// Package integrity provides health checks for the infrastructure the
// reconciliation runs depend on.
//
// # Checks Provided
//
//   - Structure: Checks that the storage bucket and its required folders (/exports, /runs) exist.
//   - Exports: Verifies that the configured bucket input references point to existing objects.
//   - Schema: Validates that the run history tables match the models (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/exports : Runs exports check.
//   - GET /integrity/schema : Runs schema check (supports ?fix=true).
package integrity
