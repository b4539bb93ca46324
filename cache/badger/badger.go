// Copyright 2017 The Cayley Authors. All rights reserved.
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

// Package badger is a document cache backed by a Badger directory.
package badger

import (
	"context"
	"errors"
	"os"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"

	"github.com/cayleygraph/skos/cache"
)

const Type = "badger"

func init() {
	cache.Register(Type, cache.Registration{
		NewFunc:      Create,
		IsPersistent: true,
	})
}

func Create(path string, _ cache.Options) (cache.Store, error) {
	err := os.MkdirAll(path, 0700)
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(path)
	opts.ValueLogLoadingMode = options.FileIO
	opts.TableLoadingMode = options.FileIO

	store, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &DB{DB: store}, nil
}

type DB struct {
	DB       *badger.DB
	isClosed bool
}

func (db *DB) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := db.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return cache.ErrNotFound
		} else if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

func (db *DB) Put(_ context.Context, key string, value []byte) error {
	return db.DB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), append([]byte{}, value...))
	})
}

func (db *DB) Close() error {
	if db.DB == nil || db.isClosed {
		return nil
	}
	db.isClosed = true
	return db.DB.Close()
}
