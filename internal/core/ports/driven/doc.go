// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ConnectorSource: Lists connectors from the remote directory
//   - IngestionClient: Submits normalised CSV payloads
//   - BlobSource: Opens a file reference into an in-memory blob
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ConnectorStore: Caches the last directory snapshot for offline use
//   - UploadStore: Upload history. Without it, history is not recorded.
//   - Notifier: Outcome sink. Without it, notices are only returned.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
