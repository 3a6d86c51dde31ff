// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. It implements the store interfaces through a single database connection:
//
//   - ConnectorStore: last connector directory snapshot, used when the
//     ingestion API is unreachable at startup
//   - UploadStore: history of upload attempts
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files; the
// store records applied versions in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.ingest/data/ingest.db
package sqlite
