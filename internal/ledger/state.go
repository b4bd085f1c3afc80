// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"math/big"
	"strings"

	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

// State layout. The ledger exclusively owns balances, allowances, and the
// supply; AccessControl exclusively owns the role table; ComplianceRegistry
// exclusively owns the freeze table.
const (
	keyInitialized = "ledger/initialized"
	keyOwner       = "ledger/owner"
	keySupply      = "ledger/supply"
	keyPaused      = "ledger/paused"

	prefixBalance   = "balance/"
	prefixAllowance = "allowance/"
	prefixFrozen    = "frozen/"
	prefixRole      = "role/"
)

func balanceKey(id protocol.AccountID) string {
	return prefixBalance + id.String()
}

func allowanceKey(owner, spender protocol.AccountID) string {
	return prefixAllowance + owner.String() + "/" + spender.String()
}

func frozenKey(id protocol.AccountID) string {
	return prefixFrozen + id.String()
}

func roleKey(role protocol.Role, id protocol.AccountID) string {
	return rolePrefix(role) + id.String()
}

func rolePrefix(role protocol.Role) string {
	return prefixRole + role.String() + "/"
}

func getBigInt(batch keyvalue.Batch, key string) (*big.Int, error) {
	b, err := batch.Get(key)
	switch {
	case err == nil:
		return new(big.Int).SetBytes(b), nil
	case errors.Is(err, errors.NotFound):
		return new(big.Int), nil
	default:
		return nil, errors.UnknownError.Wrap(err)
	}
}

func putBigInt(batch keyvalue.Batch, key string, v *big.Int) error {
	return batch.Put(key, v.Bytes())
}

func getFlag(batch keyvalue.Batch, key string) (bool, error) {
	_, err := batch.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errors.NotFound):
		return false, nil
	default:
		return false, errors.UnknownError.Wrap(err)
	}
}

func setFlag(batch keyvalue.Batch, key string, set bool) error {
	if set {
		return batch.Put(key, []byte{1})
	}
	return batch.Delete(key)
}

func (l *Ledger) loadOwner(batch keyvalue.Batch) (protocol.AccountID, error) {
	b, err := batch.Get(keyOwner)
	switch {
	case err == nil:
		var id protocol.AccountID
		copy(id[:], b)
		return id, nil
	case errors.Is(err, errors.NotFound):
		return protocol.AccountID{}, errors.FatalError.With("ledger is not initialized")
	default:
		return protocol.AccountID{}, errors.UnknownError.Wrap(err)
	}
}

// checkActive fails if the ledger is uninitialized or paused. Every
// balance-affecting entry point calls this first.
func (l *Ledger) checkActive(batch keyvalue.Batch) error {
	init, err := getFlag(batch, keyInitialized)
	if err != nil {
		return err
	}
	if !init {
		return errors.FatalError.With("ledger is not initialized")
	}

	paused, err := getFlag(batch, keyPaused)
	if err != nil {
		return err
	}
	if paused {
		return errors.ContractPaused.With("the ledger is paused")
	}
	return nil
}

func accountFromKey(key, prefix string) (protocol.AccountID, error) {
	return protocol.ParseAccountID(strings.TrimPrefix(key, prefix))
}
