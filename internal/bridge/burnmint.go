// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"math/big"

	"gitlab.com/tokenmesh/tokenmesh/internal/ledger"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

// burnMint is the spoke custody strategy. Outbound transfers burn from the
// caller; inbound transfers mint to the recipient. The adapter's account is
// the sole holder of the Minter role on a spoke ledger, making it the only
// cross-chain issuance authority.
type burnMint struct {
	ledger  *ledger.Ledger
	adapter protocol.AccountID
}

var _ custodian = (*burnMint)(nil)

func (*burnMint) name() string { return "burnMint" }

func (*burnMint) approvalRequired() bool { return false }

func (v *burnMint) debit(caller protocol.AccountID, amount *big.Int) error {
	return v.ledger.CrosschainBurn(v.adapter, caller, amount)
}

func (v *burnMint) credit(recipient protocol.AccountID, amount *big.Int) error {
	return v.ledger.CrosschainMint(v.adapter, recipient, amount)
}
