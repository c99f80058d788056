// Package server exposes the catalog dispatcher over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [Recovery] : panics become a 500 response and an error log line with the stack
//   - [RequestID] : X-Request-ID propagation (uuid when absent)
//   - [Logging] : one structured line per request
//   - [CORS] : configured origins, methods and headers, preflight answered with 204
//
// # Endpoints
//
// [CatalogHandler] serves /song/, /song/get/, /album/, /playlist/, /lyrics/ and /result/.
// Query parameters are parsed with [ParseRawQuery] and handed to the [Dispatcher]; the resulting
// envelope is always written as JSON with status 200, so failures are reported in the body.
//
// /health reports the provider name and / redirects to the API documentation.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// [Server] owns the [http.Server] and shuts it down gracefully when its context is canceled.
package server
