// Package api implements the HTTP and WebSocket surface of the task
// service: request decoding and validation, error-to-status mapping, and
// handlers that delegate all business rules to the service layer.
//
// Handlers never let raw internal errors reach clients; every failure is
// mapped to a status code and a sanitized message, with the underlying
// error logged (redacted) under the request's trace ID.
package api
