// Package domain defines the core business logic and data structures of the Formrelay application.
// It contains the primary domain models, such as Submission, Response, and the per-form
// field variants, as well as the repository interfaces that define the contracts for
// data persistence and remote delivery.
//
// This package serves as the central point for application-wide types and business rules,
// ensuring a clean separation between the application's core logic and its implementation details,
// such as the database, HTTP surface, or the remote backend. By defining interfaces for
// repositories, the domain package remains independent of the data storage technology.
package domain
