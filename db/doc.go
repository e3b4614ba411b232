// Package db provides the database layer for the Formrelay application.
// It encapsulates all interactions with the underlying SQL database, managing
// data persistence for submissions, customer-service responses, the sync activity
// log, aggregate statistics, and application settings.
//
// This package is responsible for:
// - Establishing and managing database connections (`db.go`).
// - Defining database-specific data structures that map to SQL table schemas.
// - Implementing repository interfaces (e.g., `SubmissionRepository`, `StatsRepository`)
//   to perform CRUD operations.
// - Handling data conversion between domain-specific structs (from the `domain` package)
//   and database-friendly structs, including the use of `sql.Null*` types for nullable fields.
// - Managing database migrations (`migrations/`).
// - Providing common database utility types (`types.go`).
//
// The store is opened with a single connection in WAL mode, so every read-modify-write
// cycle is serialized through one writer and concurrent submissions cannot interleave.
package db
