// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"os"
	"sync"

	"github.com/dgraph-io/badger"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue"
)

// Database is a Badger-backed key-value store.
type Database struct {
	badger *badger.DB
	ready  bool
	mu     sync.RWMutex
}

var _ keyvalue.Beginner = (*Database)(nil)

func New(filepath string) (*Database, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %w", filepath, err)
	}

	opts := badger.DefaultOptions(filepath)
	opts = opts.WithLogger(nopLogger{})

	d := new(Database)
	d.badger, err = badger.Open(opts)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: %w", err)
	}
	d.ready = true

	mDbOpen.Inc()
	return d, nil
}

// Begin begins a batch.
func (d *Database) Begin(writable bool) keyvalue.Batch {
	mTxnOpen.Inc()
	return &Batch{db: d, txn: d.badger.NewTransaction(writable), writable: writable}
}

// Close closes the underlying Badger database.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready {
		return nil
	}
	d.ready = false
	mDbOpen.Dec()
	return d.badger.Close()
}

// lock acquires a read lock and returns an error if the database is closed.
// Badger panics when used after Close, so every operation must hold the lock.
func (d *Database) lock() (sync.Locker, error) {
	l := d.mu.RLocker()
	l.Lock()
	if !d.ready {
		l.Unlock()
		return nil, errors.InternalError.With("database is closed")
	}
	return l, nil
}

// Batch is a Badger transaction.
type Batch struct {
	db       *Database
	txn      *badger.Txn
	writable bool
	done     bool
}

var _ keyvalue.Batch = (*Batch)(nil)

func (b *Batch) Get(key string) ([]byte, error) {
	l, err := b.db.lock()
	if err != nil {
		return nil, err
	}
	defer l.Unlock()

	item, err := b.txn.Get([]byte(key))
	switch {
	case err == nil:
		// Found
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, errors.NotFound.WithFormat("%s not found", key)
	default:
		return nil, errors.UnknownError.Wrap(err)
	}
	v, err := item.ValueCopy(nil)
	return v, errors.UnknownError.Wrap(err)
}

func (b *Batch) Put(key string, value []byte) error {
	if !b.writable {
		return errors.InternalError.With("batch is not writable")
	}
	l, err := b.db.lock()
	if err != nil {
		return err
	}
	defer l.Unlock()
	return errors.UnknownError.Wrap(b.txn.Set([]byte(key), value))
}

func (b *Batch) Delete(key string) error {
	if !b.writable {
		return errors.InternalError.With("batch is not writable")
	}
	l, err := b.db.lock()
	if err != nil {
		return err
	}
	defer l.Unlock()
	return errors.UnknownError.Wrap(b.txn.Delete([]byte(key)))
}

func (b *Batch) ForEach(prefix string, fn func(key string, value []byte) error) error {
	l, err := b.db.lock()
	if err != nil {
		return err
	}
	defer l.Unlock()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := b.txn.NewIterator(opts)
	defer it.Close()

	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		item := it.Item()
		v, err := item.ValueCopy(nil)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
		err = fn(string(item.Key()), v)
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
	mTxnOpen.Dec()
	mTxnCommit.Inc()

	l, err := b.db.lock()
	if err != nil {
		return err
	}
	defer l.Unlock()
	return errors.UnknownError.Wrap(b.txn.Commit())
}

func (b *Batch) Discard() {
	if b.done {
		return
	}
	b.done = true
	mTxnOpen.Dec()
	b.txn.Discard()
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{})   {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Debugf(string, ...interface{})   {}
