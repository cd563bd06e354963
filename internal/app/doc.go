// Package app wires the application together: configuration, logging,
// services, middleware, routes and the HTTP server lifecycle with
// graceful shutdown.
package app
