// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

func TestOnlyOwnerGrantsAdmin(t *testing.T) {
	l := setup(t)

	err := l.Access().Grant(admin, protocol.RoleAdmin, alice)
	require.Equal(t, errors.Unauthorized, errors.Code(err))

	require.NoError(t, l.Access().Grant(owner, protocol.RoleAdmin, alice))
	ok, err := l.Access().HasRole(alice, protocol.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAdminGrantsOperationalRoles(t *testing.T) {
	l := setup(t)

	// A minter cannot self-grant or grant others
	err := l.Access().Grant(minter, protocol.RoleMinter, alice)
	require.Equal(t, errors.Unauthorized, errors.Code(err))

	require.NoError(t, l.Access().Grant(admin, protocol.RoleMinter, alice))
	ok, err := l.Access().HasRole(alice, protocol.RoleMinter)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRevokeIsImmediate(t *testing.T) {
	l := setup(t)
	require.NoError(t, l.Access().Revoke(admin, protocol.RoleMinter, minter))

	err := l.Mint(minter, alice, amt(1))
	require.Equal(t, errors.Unauthorized, errors.Code(err))
}

func TestGrantZeroAddress(t *testing.T) {
	l := setup(t)
	err := l.Access().Grant(admin, protocol.RoleMinter, protocol.ZeroAccount)
	require.Equal(t, errors.InvalidTarget, errors.Code(err))
}

func TestMembers(t *testing.T) {
	l := setup(t)
	require.NoError(t, l.Access().Grant(admin, protocol.RoleMinter, alice))

	members, err := l.Access().Members(protocol.RoleMinter)
	require.NoError(t, err)
	require.ElementsMatch(t, []protocol.AccountID{minter, alice}, members)
}

func TestOwner(t *testing.T) {
	l := setup(t)
	got, err := l.Access().Owner()
	require.NoError(t, err)
	require.Equal(t, owner, got)
}
