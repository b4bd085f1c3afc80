// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"math/big"

	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
)

// TransferIntent is the ephemeral tuple constructed per outbound transfer. It
// is consumed by the adapter's debit and never persisted.
type TransferIntent struct {
	DestinationChain uint64
	Recipient        AccountID
	Amount           *big.Int
	MinAmount        *big.Int
	Options          []byte
}

// TransferPayload is the wire form of a cross-chain credit: the recipient
// followed by the amount as a 32-byte big-endian integer.
type TransferPayload struct {
	Recipient AccountID
	Amount    *big.Int
}

const payloadSize = 64

// Marshal encodes the payload. The amount must be non-negative and fit in 32
// bytes.
func (p *TransferPayload) Marshal() ([]byte, error) {
	if p.Amount == nil || p.Amount.Sign() < 0 {
		return nil, errors.EncodingError.With("amount must be non-negative")
	}
	if p.Amount.BitLen() > 256 {
		return nil, errors.EncodingError.WithFormat("amount does not fit in 32 bytes")
	}
	b := make([]byte, payloadSize)
	copy(b, p.Recipient[:])
	p.Amount.FillBytes(b[32:])
	return b, nil
}

// UnmarshalTransferPayload decodes a payload.
func UnmarshalTransferPayload(b []byte) (*TransferPayload, error) {
	if len(b) != payloadSize {
		return nil, errors.EncodingError.WithFormat("invalid payload: want %d bytes, got %d", payloadSize, len(b))
	}
	p := new(TransferPayload)
	copy(p.Recipient[:], b[:32])
	p.Amount = new(big.Int).SetBytes(b[32:])
	return p, nil
}
