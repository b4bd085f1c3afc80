// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"sync"

	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
)

// guard rejects re-entry into the ledger's mutating entry points. The host
// serializes operations against a ledger, so the guard exists to catch a
// nested call triggered as a side effect of an operation's own execution,
// such as a receive hook invoking the ledger again mid-mutation.
type guard struct {
	mu   sync.Mutex
	busy bool
}

func (g *guard) enter() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return errors.ReentrantCall.With("entry point re-entered mid-mutation")
	}
	g.busy = true
	return nil
}

func (g *guard) exit() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}
