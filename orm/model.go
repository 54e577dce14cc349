package orm

import weave "github.com/iov-one/weave-escrow"

// Model is an entity that can be kept in a ModelBucket.
type Model interface {
	weave.Persistent
	// Validate is called before every write.
	Validate() error
	// Copy returns a deep copy.
	Copy() Model
}

// Indexer computes the value a model is indexed by. A nil value leaves the
// model out of the index.
type Indexer func(Model) ([]byte, error)
