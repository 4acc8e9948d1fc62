// Package middleware holds the gin middleware the server installs in front
// of every route: panic recovery, request ids, tracing, CORS and request
// logging.
package middleware
