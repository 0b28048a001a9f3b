// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Request tracing, access logging, compression, CORS and session
// authentication are handled in this package before requests are delegated
// to the service layer. Responses follow a small set of JSON shapes: field
// error maps for validation failures and {"detail": "..."} for everything
// else.
package http
