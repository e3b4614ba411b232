// Package api exposes the relay over HTTP: a public form submission endpoint for the
// marketing site and a JWT-protected group serving the customer-service dashboard.
package api
