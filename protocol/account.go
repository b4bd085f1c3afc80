// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
)

// AccountID is an opaque fixed-width account address.
type AccountID [32]byte

// ZeroAccount is the null address. It can never hold a balance, be frozen, or
// receive a transfer.
var ZeroAccount AccountID

// SinkAccount is the burn-address sink. When a cross-chain credit resolves to
// the null address, the adapter substitutes SinkAccount so that misdirected
// funds land in a known account instead of becoming unreachable state.
var SinkAccount = AccountID(sha256.Sum256([]byte("tokenmesh/sink")))

// AccountIDFromSeed derives a deterministic account ID from a seed string.
func AccountIDFromSeed(seed string) AccountID {
	return AccountID(sha256.Sum256([]byte(seed)))
}

// ParseAccountID parses a hex-encoded account ID.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID
	b, err := hex.DecodeString(s)
	if err != nil {
		return AccountID{}, errors.EncodingError.WithFormat("parse account ID: %w", err)
	}
	if len(b) != len(id) {
		return AccountID{}, errors.EncodingError.WithFormat("parse account ID: want %d bytes, got %d", len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

// IsZero returns true if the ID is the null address.
func (id AccountID) IsZero() bool { return id == ZeroAccount }

// Equal returns true if the IDs are equal.
func (id AccountID) Equal(other AccountID) bool { return bytes.Equal(id[:], other[:]) }

func (id AccountID) String() string { return hex.EncodeToString(id[:]) }
