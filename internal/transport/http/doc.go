// Package http implements the HTTP transport layer: chi routers and
// handlers translating between the JSON API and the service layer.
//
// Handlers follow a consistent pattern:
//
//	- Routes() returns a chi.Router mounting the handler's endpoints
//	- request bodies are decoded with render and checked with validator
//	- service sentinel errors map onto RFC 7807 problem responses via
//	  the shared ErrorHandler
//	- responses wrap payloads as {"status": "success", "data": ...}
//
// The report API lives under /api/reports, health probes under /health.
package http
