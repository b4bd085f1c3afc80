// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

// AccessControl owns the role table. Roles are additive capabilities: the
// owner grants and revokes Admin; Admin grants and revokes Minter,
// ComplianceAdmin, and EmergencyAdmin. A role holder cannot self-grant.
type AccessControl struct {
	l *Ledger
}

// Owner returns the distinguished owner account.
func (a *AccessControl) Owner() (protocol.AccountID, error) {
	batch := a.l.store.Begin(false)
	defer batch.Discard()
	return a.l.loadOwner(batch)
}

// HasRole returns true if the account holds the role.
func (a *AccessControl) HasRole(account protocol.AccountID, role protocol.Role) (bool, error) {
	batch := a.l.store.Begin(false)
	defer batch.Discard()
	return getFlag(batch, roleKey(role, account))
}

// Members returns every account holding the role.
func (a *AccessControl) Members(role protocol.Role) ([]protocol.AccountID, error) {
	batch := a.l.store.Begin(false)
	defer batch.Discard()

	var members []protocol.AccountID
	err := batch.ForEach(rolePrefix(role), func(key string, _ []byte) error {
		id, err := accountFromKey(key, rolePrefix(role))
		if err != nil {
			return err
		}
		members = append(members, id)
		return nil
	})
	return members, err
}

// Grant grants the role to the account. The effect is immediately observable.
func (a *AccessControl) Grant(caller protocol.AccountID, role protocol.Role, account protocol.AccountID) error {
	return a.update(caller, role, account, true)
}

// Revoke revokes the role from the account.
func (a *AccessControl) Revoke(caller protocol.AccountID, role protocol.Role, account protocol.AccountID) error {
	return a.update(caller, role, account, false)
}

func (a *AccessControl) update(caller protocol.AccountID, role protocol.Role, account protocol.AccountID, grant bool) error {
	if account.IsZero() {
		return errors.InvalidTarget.With("account must not be the zero address")
	}

	batch := a.l.store.Begin(true)
	defer batch.Discard()

	err := a.checkGrantor(batch, caller, role)
	if err != nil {
		return err
	}
	err = setFlag(batch, roleKey(role, account), grant)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	a.l.logger.Info().
		Stringer("role", role).
		Stringer("account", account).
		Bool("granted", grant).
		Msg("Role updated")
	a.l.bus.Publish(protocol.RoleEvent{Caller: caller, Account: account, Role: role, Granted: grant})
	return nil
}

func (a *AccessControl) checkGrantor(batch keyvalue.Batch, caller protocol.AccountID, role protocol.Role) error {
	if role == protocol.RoleAdmin {
		owner, err := a.l.loadOwner(batch)
		if err != nil {
			return err
		}
		if caller != owner {
			return errors.Unauthorized.WithFormat("only the owner may grant or revoke %v", role)
		}
		return nil
	}

	err := a.l.requireRole(batch, caller, protocol.RoleAdmin)
	if err != nil {
		return errors.Unauthorized.WithFormat("only an admin may grant or revoke %v", role)
	}
	return nil
}
