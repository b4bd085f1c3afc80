// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
)

func TestCode(t *testing.T) {
	err := errors.InsufficientBalance.WithFormat("have %d, want %d", 5, 10)
	require.Equal(t, errors.InsufficientBalance, errors.Code(err))
	require.True(t, errors.Is(err, errors.InsufficientBalance))
	require.False(t, errors.Is(err, errors.Unauthorized))
}

func TestWrapPreservesCode(t *testing.T) {
	inner := errors.AccountFrozen.With("account is frozen")
	outer := errors.UnknownError.Wrap(inner)
	require.Equal(t, errors.AccountFrozen, errors.Code(outer))
	require.True(t, errors.Is(outer, errors.AccountFrozen))
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, errors.UnknownError.Wrap(nil))
}

func TestWithFormatWrapped(t *testing.T) {
	inner := errors.NotFound.With("no such account")
	outer := errors.UnknownError.WithFormat("load account: %w", inner)
	require.Equal(t, errors.NotFound, errors.Code(outer))
	require.Contains(t, outer.Error(), "no such account")
}

func TestStatusClasses(t *testing.T) {
	require.True(t, errors.UntrustedPeer.IsClientError())
	require.True(t, errors.InsufficientLockedBalance.IsServerError())
	require.False(t, errors.ReentrantCall.IsServerError())
}

func TestFormatVerb(t *testing.T) {
	err := errors.ContractPaused.With("the ledger is paused")
	require.Equal(t, "the ledger is paused", fmt.Sprintf("%v", err))
}
