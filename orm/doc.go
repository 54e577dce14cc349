/*
Package orm stores models in prefixed buckets of a weave.KVStore.

A bucket holds one model type under "<name>:<key>". Secondary indexes map
a value computed from the model to the keys of all models sharing it and
live under "_i.<bucket>_<index>:<value>". Sequences are counters kept
under "_s.<bucket>:<name>" and produce ordered 8 byte keys.

	escrows := orm.NewModelBucket("escrow", &Escrow{},
		orm.WithIndex("initializer", initializerIndexer, false))
	id, err := escrows.Put(db, nil, &escrow)
*/
package orm
