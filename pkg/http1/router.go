package http1

import "context"

// HandlerFunc handles one parsed request and returns the response to frame.
// The context carries the per-request deadline; handlers must pass it to any
// blocking collaborator call.
type HandlerFunc func(ctx context.Context, req *Request) *Response

// routeKey identifies a route by exact method and path.
type routeKey struct {
	method string
	path   string
}

// Router dispatches requests by exact (method, path) lookup against a fixed
// table. Query parameters never influence matching; the path is already
// separated from the query string by the parser. There is no wildcard or
// prefix matching.
type Router struct {
	routes   map[routeKey]HandlerFunc
	notFound HandlerFunc
}

// NewRouter creates an empty router with the default 404 handler.
func NewRouter() *Router {
	return &Router{
		routes: make(map[routeKey]HandlerFunc),
		notFound: func(ctx context.Context, req *Request) *Response {
			return HTML(404, "<h1>404 Not Found</h1>")
		},
	}
}

// Handle binds a handler to an exact (method, path) pair. Registering the
// same pair twice replaces the earlier handler.
func (r *Router) Handle(method, path string, h HandlerFunc) {
	r.routes[routeKey{method: method, path: path}] = h
}

// NotFound replaces the default fall-through handler.
func (r *Router) NotFound(h HandlerFunc) {
	r.notFound = h
}

// Dispatch looks up the handler for the request and invokes it. Unmatched
// (method, path) combinations fall through to the not-found handler.
func (r *Router) Dispatch(ctx context.Context, req *Request) *Response {
	if h, ok := r.routes[routeKey{method: req.Method, path: req.Path}]; ok {
		return h(ctx, req)
	}
	return r.notFound(ctx, req)
}
