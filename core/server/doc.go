// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// listen address, the API key protecting every route and the upload size limit
// for the traffic and IP list exports posted to the plan endpoint.
package server
