// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package leveldb is a document cache backed by a LevelDB directory.
package leveldb

import (
	"context"
	"errors"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/cayleygraph/skos/cache"
)

func init() {
	cache.Register(Type, cache.Registration{
		NewFunc:      Open,
		IsPersistent: true,
	})
}

const Type = "leveldb"

// Open opens or creates a database in the directory path. The "nosync" option
// disables fsync on writes.
func Open(path string, m cache.Options) (cache.Store, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	nosync, _ := m["nosync"].(bool)
	return &DB{DB: db, wo: &opt.WriteOptions{Sync: !nosync}}, nil
}

type DB struct {
	DB *leveldb.DB
	wo *opt.WriteOptions
}

func (db *DB) Get(_ context.Context, key string) ([]byte, error) {
	v, err := db.DB.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, cache.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if v == nil {
		v = []byte{}
	}
	return v, nil
}

func (db *DB) Put(_ context.Context, key string, value []byte) error {
	return db.DB.Put([]byte(key), value, db.wo)
}

func (db *DB) Close() error {
	return db.DB.Close()
}
