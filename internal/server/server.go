package server

import (
	"net/http"
)

// Middleware decorates every route registered on a [Router].
type Middleware func(http.Handler) http.Handler

// Handler is a group of routes backed by one [http.Handler].
//
// [CatalogHandler] answers every catalog path and writes an envelope for each.
type Handler interface {
	http.Handler
	// Routes lists the path prefixes the handler answers.
	Routes() []string
}

// Router mounts handlers under a method and path and runs them through its middleware.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
