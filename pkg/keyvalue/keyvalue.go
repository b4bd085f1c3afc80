// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package keyvalue defines the key-value storage interface the ledger is
// built on. All state mutations are staged in a batch and become visible only
// on Commit, which is what makes a failing ledger entry point leave persisted
// state untouched.
package keyvalue

// Beginner is a key-value store that supports batches.
type Beginner interface {
	// Begin begins a batch. If writable is false, Put and Delete will fail.
	Begin(writable bool) Batch

	// Close closes the store.
	Close() error
}

// Batch is a set of staged reads and writes.
type Batch interface {
	// Get retrieves a value, or [errors.NotFound].
	Get(key string) ([]byte, error)

	// Put stages a write.
	Put(key string, value []byte) error

	// Delete stages a deletion.
	Delete(key string) error

	// ForEach calls fn for each key-value pair whose key starts with prefix,
	// including staged writes.
	ForEach(prefix string, fn func(key string, value []byte) error) error

	// Commit applies staged writes to the store.
	Commit() error

	// Discard discards staged writes. Discard after Commit is a no-op.
	Discard()
}
