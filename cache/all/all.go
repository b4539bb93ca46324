// Package all registers every document cache backend.
package all

import (
	_ "github.com/cayleygraph/skos/cache/badger"
	_ "github.com/cayleygraph/skos/cache/bolt"
	_ "github.com/cayleygraph/skos/cache/leveldb"
	_ "github.com/cayleygraph/skos/cache/memory"
	_ "github.com/cayleygraph/skos/cache/redis"
)
