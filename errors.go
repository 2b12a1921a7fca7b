package keymat

import (
	"fmt"

	"github.com/pkg/errors"
)

// DerivationError is the typed error taxonomy spec.md §7 requires from
// derive_ike_keys, modeled on the teacher's protocol.IkeErrorCode /
// IkeError (protocol/error.go): a small int enum with an Error() string,
// plus an ErrF-style helper for attaching a formatted detail message so a
// caller can both switch on the code and log a human-readable string.
type DerivationError int

const (
	_ DerivationError = iota
	ErrNoPrfSelected
	ErrPrfUnavailable
	ErrPrfExpansionRequired
	ErrDhFailed
	ErrAuthClassUnsupported
	ErrMissingPsk
	ErrNoEncryptionSelected
	ErrCipherUnavailable
	ErrNoHashSelected
	ErrHashUnavailable
	// ErrAlreadyDerived is not in spec.md's explicit table but is required
	// by invariant 6 ("derivation is one-shot: a second invocation ... is a
	// protocol error").
	ErrAlreadyDerived
)

func (e DerivationError) String() string {
	switch e {
	case ErrNoPrfSelected:
		return "NO_PRF_SELECTED"
	case ErrPrfUnavailable:
		return "PRF_UNAVAILABLE"
	case ErrPrfExpansionRequired:
		return "PRF_EXPANSION_REQUIRED"
	case ErrDhFailed:
		return "DH_FAILED"
	case ErrAuthClassUnsupported:
		return "AUTH_CLASS_UNSUPPORTED"
	case ErrMissingPsk:
		return "MISSING_PSK"
	case ErrNoEncryptionSelected:
		return "NO_ENCRYPTION_SELECTED"
	case ErrCipherUnavailable:
		return "CIPHER_UNAVAILABLE"
	case ErrNoHashSelected:
		return "NO_HASH_SELECTED"
	case ErrHashUnavailable:
		return "HASH_UNAVAILABLE"
	case ErrAlreadyDerived:
		return "ALREADY_DERIVED"
	default:
		return "UNKNOWN_DERIVATION_ERROR"
	}
}

// derivationErr carries a DerivationError code plus an optional detail
// message, implementing the error interface.
type derivationErr struct {
	code    DerivationError
	message string
}

func (e derivationErr) Error() string {
	if e.message != "" {
		return fmt.Sprintf("%s: %s", e.code, e.message)
	}
	return e.code.String()
}

// Code returns the DerivationError this error wraps, for callers that want
// to switch on the taxonomy rather than match strings.
func (e derivationErr) Code() DerivationError { return e.code }

// errF builds a derivationErr with a formatted detail message, mirroring
// the teacher's protocol.ErrF.
func errF(code DerivationError, format string, a ...interface{}) error {
	return derivationErr{code: code, message: fmt.Sprintf(format, a...)}
}

// CodeOf extracts the DerivationError code from an error produced by this
// package, unwrapping any github.com/pkg/errors wrapping along the way.
func CodeOf(err error) (DerivationError, bool) {
	de, ok := errors.Cause(err).(derivationErr)
	if !ok {
		return 0, false
	}
	return de.code, true
}
