// Copyright (c) 2020-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// NonZeroScalar is a scalar modulo the secp256k1 group order that is
// guaranteed to be in the range [1, N-1].  It is the type used for the R and S
// components of signatures as well as for private scalars, since a zero value
// is invalid in all of those positions.
//
// The invariant is enforced at construction, which removes the need to
// re-check it at every call site that inverts a scalar or serializes a
// signature component.
type NonZeroScalar struct {
	val secp256k1.ModNScalar
}

// NewNonZeroScalar returns the validated wrapper for the provided scalar or an
// error with kind ErrInvalidEncoding when the scalar is zero.  The scalar is
// copied, so the caller remains free to reuse it.
func NewNonZeroScalar(s *secp256k1.ModNScalar) (*NonZeroScalar, error) {
	if s.IsZero() {
		return nil, makeError(ErrInvalidEncoding, "scalar is zero")
	}
	var nz NonZeroScalar
	nz.val.Set(s)
	return &nz, nil
}

// nonZeroScalarFromBytes interprets the provided 32 bytes as a big-endian
// unsigned integer and reports whether it is in the range [1, N-1].  The
// second return is false when the value is zero or overflows the group order.
func nonZeroScalarFromBytes(b []byte) (NonZeroScalar, bool) {
	var nz NonZeroScalar
	if overflow := nz.val.SetByteSlice(b); overflow || nz.val.IsZero() {
		return NonZeroScalar{}, false
	}
	return nz, true
}

// Scalar returns a copy of the underlying scalar value.
func (s *NonZeroScalar) Scalar() secp256k1.ModNScalar {
	return s.val
}

// PutBytes serializes the scalar as a 32-byte big-endian value directly into
// the passed byte array.
func (s *NonZeroScalar) PutBytes(b *[32]byte) {
	s.val.PutBytes(b)
}

// IsOverHalfOrder returns whether or not the scalar exceeds the group order
// divided by 2.
func (s *NonZeroScalar) IsOverHalfOrder() bool {
	return s.val.IsOverHalfOrder()
}

// Equals returns whether or not the two scalars represent the same value.
func (s *NonZeroScalar) Equals(other *NonZeroScalar) bool {
	return s.val.Equals(&other.val)
}

// negate replaces the scalar with its negation modulo the group order.  Since
// the order is prime, the negation of a nonzero scalar is itself nonzero, so
// the invariant is preserved.
func (s *NonZeroScalar) negate() {
	s.val.Negate()
}
