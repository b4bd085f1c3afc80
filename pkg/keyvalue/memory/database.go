// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sort"
	"strings"
	"sync"

	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue"
)

// Database is an in-memory key-value store.
type Database struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ keyvalue.Beginner = (*Database)(nil)

func New() *Database {
	return &Database{entries: map[string][]byte{}}
}

// Begin begins a batch.
func (d *Database) Begin(writable bool) keyvalue.Batch {
	return &Batch{db: d, writable: writable}
}

// Close discards the contents of the database.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = nil
	return nil
}

func (d *Database) get(key string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.entries[key]
	if !ok {
		return nil, errors.NotFound.WithFormat("%s not found", key)
	}
	u := make([]byte, len(v))
	copy(u, v)
	return u, nil
}

func (d *Database) commit(pending map[string]entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries == nil {
		return errors.InternalError.With("database is closed")
	}
	for k, e := range pending {
		if e.delete {
			delete(d.entries, k)
		} else {
			d.entries[k] = e.value
		}
	}
	return nil
}

type entry struct {
	value  []byte
	delete bool
}

// Batch is a set of staged writes against a [Database].
type Batch struct {
	db       *Database
	writable bool
	done     bool
	pending  map[string]entry
}

var _ keyvalue.Batch = (*Batch)(nil)

func (b *Batch) Get(key string) ([]byte, error) {
	if e, ok := b.pending[key]; ok {
		if e.delete {
			return nil, errors.NotFound.WithFormat("%s not found", key)
		}
		return e.value, nil
	}
	return b.db.get(key)
}

func (b *Batch) Put(key string, value []byte) error {
	if !b.writable {
		return errors.InternalError.With("batch is not writable")
	}
	if b.pending == nil {
		b.pending = map[string]entry{}
	}
	u := make([]byte, len(value))
	copy(u, value)
	b.pending[key] = entry{value: u}
	return nil
}

func (b *Batch) Delete(key string) error {
	if !b.writable {
		return errors.InternalError.With("batch is not writable")
	}
	if b.pending == nil {
		b.pending = map[string]entry{}
	}
	b.pending[key] = entry{delete: true}
	return nil
}

func (b *Batch) ForEach(prefix string, fn func(key string, value []byte) error) error {
	merged := map[string][]byte{}
	b.db.mu.RLock()
	for k, v := range b.db.entries {
		if strings.HasPrefix(k, prefix) {
			merged[k] = v
		}
	}
	b.db.mu.RUnlock()
	for k, e := range b.pending {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if e.delete {
			delete(merged, k)
		} else {
			merged[k] = e.value
		}
	}

	// Sort for deterministic iteration
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		err := fn(k, merged[k])
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Batch) Commit() error {
	if b.done {
		return errors.InternalError.With("batch is already committed or discarded")
	}
	b.done = true
	return b.db.commit(b.pending)
}

func (b *Batch) Discard() {
	b.done = true
	b.pending = nil
}
