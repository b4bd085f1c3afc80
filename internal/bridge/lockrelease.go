// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"math/big"

	"gitlab.com/tokenmesh/tokenmesh/internal/ledger"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

// lockRelease is the hub custody strategy. Outbound transfers lock tokens in
// the adapter's custody account; inbound transfers release them. The hub's
// supply never changes through cross-chain activity - conservation is carried
// by the custody balance.
type lockRelease struct {
	ledger  *ledger.Ledger
	custody protocol.AccountID
}

var _ custodian = (*lockRelease)(nil)

func (*lockRelease) name() string { return "lockRelease" }

// approvalRequired is true: the caller must approve the adapter before Send.
func (*lockRelease) approvalRequired() bool { return true }

func (v *lockRelease) debit(caller protocol.AccountID, amount *big.Int) error {
	// Pull the amount from the caller into custody through the allowance path
	return v.ledger.TransferFrom(v.custody, caller, v.custody, amount)
}

func (v *lockRelease) credit(recipient protocol.AccountID, amount *big.Int) error {
	locked, err := v.ledger.BalanceOf(v.custody)
	if err != nil {
		return err
	}
	if locked.Cmp(amount) < 0 {
		return errors.InsufficientLockedBalance.WithFormat("custody holds %v, cannot release %v", locked, amount)
	}
	return v.ledger.Transfer(v.custody, recipient, amount)
}
