// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue/memory"
)

func TestCommitVisibility(t *testing.T) {
	db := memory.New()
	batch := db.Begin(true)
	require.NoError(t, batch.Put("a", []byte{1}))

	// Not visible to other batches before commit
	_, err := db.Begin(false).Get("a")
	require.Equal(t, errors.NotFound, errors.Code(err))

	// Visible within the batch
	v, err := batch.Get("a")
	require.NoError(t, err)
	require.Equal(t, []byte{1}, v)

	require.NoError(t, batch.Commit())
	v, err = db.Begin(false).Get("a")
	require.NoError(t, err)
	require.Equal(t, []byte{1}, v)
}

func TestDiscard(t *testing.T) {
	db := memory.New()
	batch := db.Begin(true)
	require.NoError(t, batch.Put("a", []byte{1}))
	batch.Discard()

	_, err := db.Begin(false).Get("a")
	require.Equal(t, errors.NotFound, errors.Code(err))
}

func TestDelete(t *testing.T) {
	db := memory.New()
	batch := db.Begin(true)
	require.NoError(t, batch.Put("a", []byte{1}))
	require.NoError(t, batch.Commit())

	batch = db.Begin(true)
	require.NoError(t, batch.Delete("a"))

	// Deletion is visible within the batch
	_, err := batch.Get("a")
	require.Equal(t, errors.NotFound, errors.Code(err))

	require.NoError(t, batch.Commit())
	_, err = db.Begin(false).Get("a")
	require.Equal(t, errors.NotFound, errors.Code(err))
}

func TestReadOnlyBatch(t *testing.T) {
	db := memory.New()
	require.Error(t, db.Begin(false).Put("a", []byte{1}))
	require.Error(t, db.Begin(false).Delete("a"))
}

func TestForEach(t *testing.T) {
	db := memory.New()
	batch := db.Begin(true)
	require.NoError(t, batch.Put("p/1", []byte{1}))
	require.NoError(t, batch.Put("p/2", []byte{2}))
	require.NoError(t, batch.Put("q/1", []byte{3}))
	require.NoError(t, batch.Commit())

	batch = db.Begin(true)
	require.NoError(t, batch.Put("p/3", []byte{4}))
	require.NoError(t, batch.Delete("p/1"))

	var keys []string
	require.NoError(t, batch.ForEach("p/", func(key string, value []byte) error {
		keys = append(keys, key)
		return nil
	}))
	require.Equal(t, []string{"p/2", "p/3"}, keys)
}
