// Copyright 2016 The Cayley Authors. All rights reserved.
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

// Package bolt is a document cache stored in a single Bolt file.
package bolt

import (
	"context"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/cayleygraph/skos/cache"
	"github.com/cayleygraph/skos/clog"
)

func init() {
	cache.Register(Type, cache.Registration{
		NewFunc:      Open,
		IsPersistent: true,
	})
}

const Type = "bolt"

var bucket = []byte("documents")

func getBoltFile(cfgpath string) string {
	return filepath.Join(cfgpath, "cache.bolt")
}

// Open opens or creates the cache database in the directory path.
func Open(path string, opts cache.Options) (cache.Store, error) {
	timeout, err := opts.DurationKey("timeout", time.Second)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(getBoltFile(path), 0600, &bolt.Options{Timeout: timeout})
	if err != nil {
		clog.Errorf("couldn't open bolt cache: %v", err)
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DB{DB: db}, nil
}

type DB struct {
	DB *bolt.DB
}

func (db *DB) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := db.DB.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v == nil {
			return cache.ErrNotFound
		}
		// v is only valid for the life of the transaction
		out = append([]byte{}, v...)
		return nil
	})
	return out, err
}

func (db *DB) Put(_ context.Context, key string, value []byte) error {
	return db.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), value)
	})
}

func (db *DB) Close() error {
	return db.DB.Close()
}
