// Package remote provides the clients that deliver confirmed submissions to the
// remote database-as-a-service. Two drivers are available: a PostgREST-style REST
// client for backends that expose an HTTP insert endpoint, and a direct Postgres
// client for server-side deployments that hold a database connection string.
//
// Both implement domain.RemoteStore and report failures as *domain.RemoteError,
// which the orchestrator treats as "saved locally, sync pending" rather than a
// submission failure.
package remote
