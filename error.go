// Copyright (c) 2020-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidEncoding is returned when parsing a signature, recoverable
	// signature, or scalar from raw bytes that have the wrong length or an
	// out-of-range component.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")

	// ErrInvalidPrivateKey is returned when attempting to create a signer
	// from a private scalar that is zero or otherwise not in the range
	// [1, N-1], where N is the order of the secp256k1 group.
	ErrInvalidPrivateKey = ErrorKind("ErrInvalidPrivateKey")

	// ErrInvalidRecoveryID is returned when a public key recovery id is not
	// 0 or 1.  The values 2 and 3, which some ecosystems define to capture
	// the case where the x coordinate of the ephemeral point overflowed the
	// group order, are intentionally unsupported.
	ErrInvalidRecoveryID = ErrorKind("ErrInvalidRecoveryID")

	// ErrSignFailed is returned when signing encounters one of the
	// vanishingly rare internal zero or point-at-infinity conditions that
	// the algorithm requires to be checked, or when caller-supplied extra
	// entropy is not exactly 32 bytes.  Since signing is deterministic for a
	// given key and digest, retrying with the same inputs cannot succeed.
	ErrSignFailed = ErrorKind("ErrSignFailed")

	// ErrInvalidSignature is returned when the verification equation does
	// not hold for the provided digest and public key, or when a zero R or S
	// component is encountered at the verification boundary.
	ErrInvalidSignature = ErrorKind("ErrInvalidSignature")

	// ErrSigSTooHigh is returned during verification when the S component of
	// a signature is not canonically low (S > N/2).  Both S and its negation
	// are valid signatures modulo the group order, so such signatures are
	// malleable and rejected rather than silently normalized.
	ErrSigSTooHigh = ErrorKind("ErrSigSTooHigh")

	// ErrRecoveryFailed is returned when public key recovery fails because
	// the R component is not a valid x coordinate on the curve, the
	// candidate public key is the point at infinity, or, for trial recovery,
	// no recovery id produces a key matching the expected one.
	ErrRecoveryFailed = ErrorKind("ErrRecoveryFailed")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to producing or consuming signatures.  It
// has full support for errors.Is and errors.As, so the caller can ascertain
// the specific reason for the error by checking the underlying error.  The
// description never contains key or nonce material.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
