// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "fmt"

// Status is a request status code.
type Status uint64

const (
	// OK means the request succeeded.
	OK Status = 200

	// BadRequest means the request was invalid.
	BadRequest Status = 400

	// Unauthorized means the caller does not hold the required role or
	// ownership.
	Unauthorized Status = 403

	// NotFound means a record could not be found.
	NotFound Status = 404

	// Conflict means the request conflicts with the current state.
	Conflict Status = 409

	// InvalidTarget means the target of an administrative operation is
	// structurally invalid, such as the zero address or a protected account.
	InvalidTarget Status = 440

	// InvalidRecipient means the recipient of a transfer or mint is invalid.
	InvalidRecipient Status = 441

	// AccountFrozen means the source or destination account is frozen.
	AccountFrozen Status = 442

	// ContractPaused means the ledger is paused.
	ContractPaused Status = 443

	// InsufficientBalance means the account balance is less than the amount.
	InsufficientBalance Status = 444

	// InsufficientAllowance means the spender's allowance is less than the
	// amount.
	InsufficientAllowance Status = 445

	// UntrustedPeer means no peer is configured for the chain, or the claimed
	// sender does not match the configured peer.
	UntrustedPeer Status = 446

	// SlippageExceeded means the amount is less than the caller's minimum.
	SlippageExceeded Status = 447

	// ReentrantCall means an entry point was re-entered mid-mutation.
	ReentrantCall Status = 448

	// InternalError means an internal error occurred.
	InternalError Status = 500

	// UnknownError means an unknown error occurred.
	UnknownError Status = 501

	// EncodingError means encoding or decoding failed.
	EncodingError Status = 502

	// FatalError means something has gone seriously wrong.
	FatalError Status = 503

	// InsufficientLockedBalance means the adapter's custody holds less than
	// the amount to release. If this is observed the global conservation
	// invariant has already been broken upstream; it is a critical condition,
	// not an ordinary user error.
	InsufficientLockedBalance Status = 510
)

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case BadRequest:
		return "badRequest"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "notFound"
	case Conflict:
		return "conflict"
	case InvalidTarget:
		return "invalidTarget"
	case InvalidRecipient:
		return "invalidRecipient"
	case AccountFrozen:
		return "accountFrozen"
	case ContractPaused:
		return "contractPaused"
	case InsufficientBalance:
		return "insufficientBalance"
	case InsufficientAllowance:
		return "insufficientAllowance"
	case UntrustedPeer:
		return "untrustedPeer"
	case SlippageExceeded:
		return "slippageExceeded"
	case ReentrantCall:
		return "reentrantCall"
	case InternalError:
		return "internalError"
	case UnknownError:
		return "unknownError"
	case EncodingError:
		return "encodingError"
	case FatalError:
		return "fatalError"
	case InsufficientLockedBalance:
		return "insufficientLockedBalance"
	default:
		return fmt.Sprintf("unknown status %d", uint64(s))
	}
}
