// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package ledger implements the token ledger state machine: balances,
// allowances, total supply, the pause flag, the role table, and the freeze
// table. Every entry point is atomic - state is mutated in a batch that is
// committed only if every check passes.
package ledger

import (
	"math/big"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tokenmesh/tokenmesh/internal/events"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

// Ledger is a fungible-token ledger.
type Ledger struct {
	name   string
	store  keyvalue.Beginner
	bus    *events.Bus
	logger zerolog.Logger
	guard  guard

	hookMu sync.Mutex
	hooks  map[protocol.AccountID]ReceiveHook
}

// ReceiveHook is invoked after tokens are credited to the account it is
// registered for. The hook runs after the credit has committed; a hook error
// is logged but never unwinds the committed effect.
type ReceiveHook interface {
	OnTokensReceived(from, to protocol.AccountID, amount *big.Int) error
}

func New(name string, store keyvalue.Beginner, bus *events.Bus, logger zerolog.Logger) *Ledger {
	l := new(Ledger)
	l.name = name
	l.store = store
	l.bus = bus
	l.logger = logger.With().Str("module", "ledger").Str("ledger", name).Logger()
	l.hooks = map[protocol.AccountID]ReceiveHook{}
	return l
}

func (l *Ledger) Name() string { return l.name }

// Access returns the ledger's access control component.
func (l *Ledger) Access() *AccessControl { return &AccessControl{l} }

// Compliance returns the ledger's compliance registry.
func (l *Ledger) Compliance() *ComplianceRegistry { return &ComplianceRegistry{l} }

// Initialize initializes a fresh ledger with the given owner. It must run
// exactly once, before any entry point is reachable; a second call fails with
// [errors.Conflict].
func (l *Ledger) Initialize(owner protocol.AccountID) error {
	if owner.IsZero() {
		return errors.InvalidTarget.With("owner must not be the zero address")
	}

	batch := l.store.Begin(true)
	defer batch.Discard()

	init, err := getFlag(batch, keyInitialized)
	if err != nil {
		return err
	}
	if init {
		return errors.Conflict.With("ledger is already initialized")
	}

	err = setFlag(batch, keyInitialized, true)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = batch.Put(keyOwner, owner[:])
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = putBigInt(batch, keySupply, new(big.Int))
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	l.logger.Info().Stringer("owner", owner).Msg("Ledger initialized")
	return nil
}

// RegisterHook registers a receive hook for an account, replacing any
// previous hook.
func (l *Ledger) RegisterHook(account protocol.AccountID, hook ReceiveHook) {
	l.hookMu.Lock()
	defer l.hookMu.Unlock()
	l.hooks[account] = hook
}

func (l *Ledger) notify(from, to protocol.AccountID, amount *big.Int) {
	l.hookMu.Lock()
	hook := l.hooks[to]
	l.hookMu.Unlock()
	if hook == nil {
		return
	}

	err := hook.OnTokensReceived(from, to, amount)
	if err != nil {
		l.logger.Warn().Err(err).Stringer("account", to).Msg("Receive hook failed")
	}
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.BadRequest.With("amount must be non-negative")
	}
	return nil
}

func (l *Ledger) checkNotFrozen(batch keyvalue.Batch, accounts ...protocol.AccountID) error {
	for _, a := range accounts {
		frozen, err := getFlag(batch, frozenKey(a))
		if err != nil {
			return err
		}
		if frozen {
			return errors.AccountFrozen.WithFormat("account %v is frozen", a)
		}
	}
	return nil
}

func (l *Ledger) requireRole(batch keyvalue.Batch, caller protocol.AccountID, role protocol.Role) error {
	ok, err := getFlag(batch, roleKey(role, caller))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Unauthorized.WithFormat("%v does not hold the %v role", caller, role)
	}
	return nil
}

func (l *Ledger) credit(batch keyvalue.Batch, to protocol.AccountID, amount *big.Int) error {
	bal, err := getBigInt(batch, balanceKey(to))
	if err != nil {
		return err
	}
	return putBigInt(batch, balanceKey(to), bal.Add(bal, amount))
}

func (l *Ledger) debit(batch keyvalue.Batch, from protocol.AccountID, amount *big.Int) error {
	bal, err := getBigInt(batch, balanceKey(from))
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return errors.InsufficientBalance.WithFormat("insufficient balance: have %v, want %v", bal, amount)
	}
	return putBigInt(batch, balanceKey(from), bal.Sub(bal, amount))
}

func (l *Ledger) addSupply(batch keyvalue.Batch, delta *big.Int) (*big.Int, error) {
	supply, err := getBigInt(batch, keySupply)
	if err != nil {
		return nil, err
	}
	supply.Add(supply, delta)
	if supply.Sign() < 0 {
		return nil, errors.InternalError.With("supply would be negative")
	}
	return supply, putBigInt(batch, keySupply, supply)
}

// Transfer moves amount from the caller to another account.
func (l *Ledger) Transfer(from, to protocol.AccountID, amount *big.Int) error {
	err := l.guard.enter()
	if err != nil {
		return err
	}
	defer l.guard.exit()

	err = checkAmount(amount)
	if err != nil {
		return err
	}

	batch := l.store.Begin(true)
	defer batch.Discard()

	err = l.transfer(batch, from, to, amount)
	if err != nil {
		return err
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	mOperations.WithLabelValues("transfer").Inc()
	l.bus.Publish(protocol.TransferEvent{From: from, To: to, Amount: amount})
	l.notify(from, to, amount)
	return nil
}

// TransferFrom moves amount between two accounts, spending the spender's
// allowance from the source account.
func (l *Ledger) TransferFrom(spender, from, to protocol.AccountID, amount *big.Int) error {
	err := l.guard.enter()
	if err != nil {
		return err
	}
	defer l.guard.exit()

	err = checkAmount(amount)
	if err != nil {
		return err
	}

	batch := l.store.Begin(true)
	defer batch.Discard()

	allowance, err := getBigInt(batch, allowanceKey(from, spender))
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return errors.InsufficientAllowance.WithFormat("insufficient allowance: have %v, want %v", allowance, amount)
	}
	err = putBigInt(batch, allowanceKey(from, spender), allowance.Sub(allowance, amount))
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	err = l.transfer(batch, from, to, amount)
	if err != nil {
		return err
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	mOperations.WithLabelValues("transferFrom").Inc()
	l.bus.Publish(protocol.TransferEvent{From: from, To: to, Amount: amount})
	l.notify(from, to, amount)
	return nil
}

func (l *Ledger) transfer(batch keyvalue.Batch, from, to protocol.AccountID, amount *big.Int) error {
	err := l.checkActive(batch)
	if err != nil {
		return err
	}
	if to.IsZero() {
		return errors.InvalidRecipient.With("recipient must not be the zero address")
	}
	err = l.checkNotFrozen(batch, from, to)
	if err != nil {
		return err
	}
	err = l.debit(batch, from, amount)
	if err != nil {
		return err
	}
	return l.credit(batch, to, amount)
}

// Approve sets the spender's allowance over the owner's balance.
func (l *Ledger) Approve(owner, spender protocol.AccountID, amount *big.Int) error {
	err := checkAmount(amount)
	if err != nil {
		return err
	}
	if spender.IsZero() {
		return errors.InvalidRecipient.With("spender must not be the zero address")
	}

	batch := l.store.Begin(true)
	defer batch.Discard()

	err = putBigInt(batch, allowanceKey(owner, spender), amount)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	l.bus.Publish(protocol.ApprovalEvent{Owner: owner, Spender: spender, Amount: amount})
	return nil
}

// Mint creates amount units in the recipient's account. The caller must hold
// the Minter role.
func (l *Ledger) Mint(caller, to protocol.AccountID, amount *big.Int) error {
	err := l.guard.enter()
	if err != nil {
		return err
	}
	defer l.guard.exit()

	err = l.mint(caller, to, amount)
	if err != nil {
		return err
	}
	mOperations.WithLabelValues("mint").Inc()
	l.bus.Publish(protocol.MintEvent{Caller: caller, To: to, Amount: amount})
	l.notify(protocol.ZeroAccount, to, amount)
	return nil
}

// CrosschainMint is identical in state effect to Mint but is distinguished in
// the audit stream. It is invoked by the transfer protocol adapter when
// finalizing an inbound cross-chain transfer.
func (l *Ledger) CrosschainMint(caller, to protocol.AccountID, amount *big.Int) error {
	err := l.guard.enter()
	if err != nil {
		return err
	}
	defer l.guard.exit()

	err = l.mint(caller, to, amount)
	if err != nil {
		return err
	}
	mOperations.WithLabelValues("crosschainMint").Inc()
	l.bus.Publish(protocol.CrosschainMintEvent{Caller: caller, To: to, Amount: amount})
	l.notify(protocol.ZeroAccount, to, amount)
	return nil
}

func (l *Ledger) mint(caller, to protocol.AccountID, amount *big.Int) error {
	err := checkAmount(amount)
	if err != nil {
		return err
	}

	batch := l.store.Begin(true)
	defer batch.Discard()

	err = l.checkActive(batch)
	if err != nil {
		return err
	}
	err = l.requireRole(batch, caller, protocol.RoleMinter)
	if err != nil {
		return err
	}
	if to.IsZero() {
		return errors.InvalidRecipient.With("recipient must not be the zero address")
	}
	err = l.checkNotFrozen(batch, to)
	if err != nil {
		return err
	}

	err = l.credit(batch, to, amount)
	if err != nil {
		return err
	}
	supply, err := l.addSupply(batch, amount)
	if err != nil {
		return err
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	setSupplyGauge(l.name, supply)
	return nil
}

// Burn destroys amount units from the given account. The caller must hold the
// Minter role.
func (l *Ledger) Burn(caller, from protocol.AccountID, amount *big.Int) error {
	err := l.guard.enter()
	if err != nil {
		return err
	}
	defer l.guard.exit()

	err = l.burn(caller, from, amount)
	if err != nil {
		return err
	}
	mOperations.WithLabelValues("burn").Inc()
	l.bus.Publish(protocol.BurnEvent{Caller: caller, From: from, Amount: amount})
	return nil
}

// CrosschainBurn is identical in state effect to Burn but is distinguished in
// the audit stream. It is invoked by the transfer protocol adapter when
// initiating an outbound cross-chain transfer.
func (l *Ledger) CrosschainBurn(caller, from protocol.AccountID, amount *big.Int) error {
	err := l.guard.enter()
	if err != nil {
		return err
	}
	defer l.guard.exit()

	err = l.burn(caller, from, amount)
	if err != nil {
		return err
	}
	mOperations.WithLabelValues("crosschainBurn").Inc()
	l.bus.Publish(protocol.CrosschainBurnEvent{Caller: caller, From: from, Amount: amount})
	return nil
}

func (l *Ledger) burn(caller, from protocol.AccountID, amount *big.Int) error {
	err := checkAmount(amount)
	if err != nil {
		return err
	}

	batch := l.store.Begin(true)
	defer batch.Discard()

	err = l.checkActive(batch)
	if err != nil {
		return err
	}
	err = l.requireRole(batch, caller, protocol.RoleMinter)
	if err != nil {
		return err
	}
	err = l.checkNotFrozen(batch, from)
	if err != nil {
		return err
	}

	err = l.debit(batch, from, amount)
	if err != nil {
		return err
	}
	supply, err := l.addSupply(batch, new(big.Int).Neg(amount))
	if err != nil {
		return err
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	setSupplyGauge(l.name, supply)
	return nil
}

// SetPaused transitions the ledger between Active and Paused. The caller must
// hold the EmergencyAdmin role. SetPaused remains available while paused.
func (l *Ledger) SetPaused(caller protocol.AccountID, paused bool) error {
	batch := l.store.Begin(true)
	defer batch.Discard()

	init, err := getFlag(batch, keyInitialized)
	if err != nil {
		return err
	}
	if !init {
		return errors.FatalError.With("ledger is not initialized")
	}

	err = l.requireRole(batch, caller, protocol.RoleEmergencyAdmin)
	if err != nil {
		return err
	}
	err = setFlag(batch, keyPaused, paused)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	l.logger.Info().Bool("paused", paused).Msg("Pause state changed")
	l.bus.Publish(protocol.PausedEvent{Caller: caller, Paused: paused})
	return nil
}

// BalanceOf returns the account's balance.
func (l *Ledger) BalanceOf(account protocol.AccountID) (*big.Int, error) {
	batch := l.store.Begin(false)
	defer batch.Discard()
	return getBigInt(batch, balanceKey(account))
}

// TotalSupply returns the total supply.
func (l *Ledger) TotalSupply() (*big.Int, error) {
	batch := l.store.Begin(false)
	defer batch.Discard()
	return getBigInt(batch, keySupply)
}

// Allowance returns the spender's allowance over the owner's balance.
func (l *Ledger) Allowance(owner, spender protocol.AccountID) (*big.Int, error) {
	batch := l.store.Begin(false)
	defer batch.Discard()
	return getBigInt(batch, allowanceKey(owner, spender))
}

// Paused returns the pause state.
func (l *Ledger) Paused() (bool, error) {
	batch := l.store.Begin(false)
	defer batch.Discard()
	return getFlag(batch, keyPaused)
}
