// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting every route but the public ones.
//   - rayid: a unique request id (RayID) for every incoming request, stored in
//     the context for logger.WithRayID and echoed in the response headers.
//
// These middleware components are registered globally by the start command.
package middleware
