// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// References:
//   [GECC]: Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)
//
//   [SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//     https://www.secg.org/sec1-v2.pdf

// SignatureSize is the size of a serialized signature: the R and S components
// as 32-byte big-endian values.  32+32 = 64.
const SignatureSize = 64

// Signature is a type representing an ECDSA signature over the secp256k1
// curve.  Both components are guaranteed nonzero by construction.  Values are
// immutable aside from NormalizeS and carry no state beyond the two scalars.
type Signature struct {
	r NonZeroScalar
	s NonZeroScalar
}

// NewSignature instantiates a new signature given some R,S values.  The
// nonzero invariant of both components is carried by their type.
func NewSignature(r, s *NonZeroScalar) *Signature {
	return &Signature{*r, *s}
}

// ParseSignature parses a signature from its fixed 64-byte encoding:
//
//	<32-byte big-endian R><32-byte big-endian S>
//
// It returns an error with kind ErrInvalidEncoding unless exactly 64 bytes are
// provided and both components are in the range [1, N-1], where N is the order
// of the secp256k1 group.
func ParseSignature(sig []byte) (*Signature, error) {
	if len(sig) != SignatureSize {
		str := fmt.Sprintf("malformed signature: wrong size: %d != %d",
			len(sig), SignatureSize)
		return nil, makeError(ErrInvalidEncoding, str)
	}
	r, ok := nonZeroScalarFromBytes(sig[0:32])
	if !ok {
		str := "invalid signature: R is zero or >= group order"
		return nil, makeError(ErrInvalidEncoding, str)
	}
	s, ok := nonZeroScalarFromBytes(sig[32:64])
	if !ok {
		str := "invalid signature: S is zero or >= group order"
		return nil, makeError(ErrInvalidEncoding, str)
	}
	return &Signature{r, s}, nil
}

// Serialize returns the fixed 64-byte encoding of the signature.  Note that
// the S component is serialized as is; use NormalizeS first when the canonical
// low-S form is required.
func (sig *Signature) Serialize() []byte {
	var rBytes, sBytes [32]byte
	sig.r.PutBytes(&rBytes)
	sig.s.PutBytes(&sBytes)

	var b [SignatureSize]byte
	copy(b[0:32], rBytes[:])
	copy(b[32:64], sBytes[:])
	return b[:]
}

// NormalizeS replaces the S component with N - S when it exceeds the half
// order of the group and returns whether or not the replacement took place.
// Both S and its negation are valid signatures modulo the order, so this
// forces the consistent choice mandated by the low-S malleability convention.
// Normalizing an already-low S is a no-op that returns false.
func (sig *Signature) NormalizeS() bool {
	if !sig.s.IsOverHalfOrder() {
		return false
	}
	sig.s.negate()
	return true
}

// R returns a copy of the R component of the signature.
func (sig *Signature) R() NonZeroScalar {
	return sig.r
}

// S returns a copy of the S component of the signature.
func (sig *Signature) S() NonZeroScalar {
	return sig.s
}

// IsEqual compares this Signature instance to the one passed, returning true
// if both Signatures are equivalent.  A signature is equivalent to another, if
// they both have the same scalar value for R and S.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Equals(&otherSig.r) && sig.s.Equals(&otherSig.s)
}

// fieldToModNScalar converts a field value to a scalar modulo the group order
// and returns the scalar along with either 1 if it was reduced (aka it
// overflowed) or 0 otherwise.
//
// Note that a bool is not used here because it is not possible in Go to
// convert from a bool to numeric value in constant time and many
// constant-time operations require a numeric value.
func fieldToModNScalar(v *secp256k1.FieldVal) (secp256k1.ModNScalar, uint32) {
	var buf [32]byte
	v.PutBytes(&buf)
	var s secp256k1.ModNScalar
	overflow := s.SetBytes(&buf)
	zeroArray32(&buf)
	return s, overflow
}

// modNScalarToField converts a scalar modulo the group order to a field value.
func modNScalarToField(v *secp256k1.ModNScalar) secp256k1.FieldVal {
	var buf [32]byte
	v.PutBytes(&buf)
	var fv secp256k1.FieldVal
	fv.SetBytes(&buf)
	return fv
}

// zeroArray32 zeroes the provided 32-byte buffer.
func zeroArray32(b *[32]byte) {
	*b = [32]byte{}
}
