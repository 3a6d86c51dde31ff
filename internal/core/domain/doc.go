// Package domain defines the core business entities for ingest.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Connector: A named ingestion target with routing metadata
//   - Blob: An uploaded file
//   - NormalizedPayload: Transport-ready CSV content plus routing metadata
//   - SubmissionResult: The logical outcome of an ingestion call
//   - Notice: A user-facing outcome message
//   - UploadRecord: One upload attempt, kept for history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
