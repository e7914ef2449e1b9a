package ledger

import "fmt"

// Query modifiers, to change how the data argument of a query is
// interpreted.
const (
	// KeyQueryMod means the data is the exact key of one object.
	KeyQueryMod = ""
	// PrefixQueryMod means the data is a key prefix and all objects
	// under it are returned.
	PrefixQueryMod = "prefix"
)

// QueryHandler can process external read-only queries against the last
// committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter allows us to register many query handlers to different
// paths and dispatch to the proper one.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryHandler factories at once.
func (r QueryRouter) RegisterAll(qr ...func(QueryRouter)) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new handler for the given path. Panics on duplicate
// registration, as this is a application setup error.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
