package weave

import "fmt"

// Query modifiers understood by every query handler. An empty modifier
// asks for the exact key, "prefix" for every key starting with the data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a stored key and its value, as returned by queries.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair builds a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for one path, for example "/escrows"
// or "/escrows/initializer".
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter maps query paths to handlers.
type QueryRouter struct {
	handlers map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{handlers: make(map[string]QueryHandler)}
}

// Register panics if path already has a handler.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.handlers[path]; taken {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.handlers[path] = h
}

// Handler returns nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.handlers[path]
}
