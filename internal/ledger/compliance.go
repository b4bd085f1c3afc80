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

// ComplianceRegistry owns the freeze table. A frozen account's balance cannot
// change through transfer, mint, or burn, including the cross-chain variants;
// the guard is enforced by every balance-affecting ledger operation.
type ComplianceRegistry struct {
	l *Ledger
}

// IsFrozen returns true if the account is frozen.
func (c *ComplianceRegistry) IsFrozen(account protocol.AccountID) (bool, error) {
	batch := c.l.store.Begin(false)
	defer batch.Discard()
	return getFlag(batch, frozenKey(account))
}

// Frozen returns every frozen account.
func (c *ComplianceRegistry) Frozen() ([]protocol.AccountID, error) {
	batch := c.l.store.Begin(false)
	defer batch.Discard()

	var frozen []protocol.AccountID
	err := batch.ForEach(prefixFrozen, func(key string, _ []byte) error {
		id, err := accountFromKey(key, prefixFrozen)
		if err != nil {
			return err
		}
		frozen = append(frozen, id)
		return nil
	})
	return frozen, err
}

// Freeze marks the account frozen. The zero address and the owner can never
// be frozen. The caller must hold the ComplianceAdmin role.
func (c *ComplianceRegistry) Freeze(caller, account protocol.AccountID) error {
	batch := c.l.store.Begin(true)
	defer batch.Discard()

	if account.IsZero() {
		return errors.InvalidTarget.With("the zero address cannot be frozen")
	}
	owner, err := c.l.loadOwner(batch)
	if err != nil {
		return err
	}
	if account == owner {
		return errors.InvalidTarget.With("the owner cannot be frozen")
	}

	return c.update(batch, caller, account, true)
}

// Unfreeze clears the account's frozen flag. The caller must hold the
// ComplianceAdmin role.
func (c *ComplianceRegistry) Unfreeze(caller, account protocol.AccountID) error {
	batch := c.l.store.Begin(true)
	defer batch.Discard()
	return c.update(batch, caller, account, false)
}

func (c *ComplianceRegistry) update(batch keyvalue.Batch, caller, account protocol.AccountID, frozen bool) error {
	err := c.l.requireRole(batch, caller, protocol.RoleComplianceAdmin)
	if err != nil {
		return err
	}
	err = setFlag(batch, frozenKey(account), frozen)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	c.l.logger.Info().
		Stringer("account", account).
		Bool("frozen", frozen).
		Msg("Freeze state changed")
	c.l.bus.Publish(protocol.FrozenEvent{Caller: caller, Account: account, Frozen: frozen})
	return nil
}
