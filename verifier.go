// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Verifier checks ECDSA signatures over the secp256k1 curve against a single
// public key.  It is immutable once constructed and holds no state across
// calls, so a single instance may be used concurrently from multiple
// goroutines.
type Verifier struct {
	pubKey *secp256k1.PublicKey
}

// NewVerifier returns a verifier for the provided public key.  No validation
// is performed beyond what the key type already guarantees for a well-formed
// point.
func NewVerifier(pubKey *secp256k1.PublicKey) *Verifier {
	return &Verifier{pubKey: pubKey}
}

// NewVerifierFromBytes returns a verifier for the public key given by the
// provided serialized point in compressed, uncompressed, or hybrid format.
// It returns an error with kind ErrInvalidEncoding when the bytes do not
// describe a point on the curve.
func NewVerifierFromBytes(pubKey []byte) (*Verifier, error) {
	key, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return nil, makeError(ErrInvalidEncoding, "invalid public key: "+err.Error())
	}
	return &Verifier{pubKey: key}, nil
}

// PubKey returns the public key the verifier checks signatures against.
func (v *Verifier) PubKey() *secp256k1.PublicKey {
	return v.pubKey
}

// Verify returns nil when the signature is valid for the provided 32-byte
// digest and the verifier's public key.  Digests of other lengths are
// interpreted as big-endian values and reduced modulo the group order rather
// than rejected, mirroring the signing side.
//
// Signatures whose S component is not in the canonical low form are rejected
// with kind ErrSigSTooHigh rather than silently normalized: accepting a
// malleable encoding is a protocol-level decision that belongs to the signer,
// not the verifier.  All other failures, including a zero R or S encountered
// at the boundary and a verification equation mismatch, are reported with
// kind ErrInvalidSignature.
func (v *Verifier) Verify(digest []byte, sig *Signature) error {
	// The algorithm for verifying an ECDSA signature is given as algorithm
	// 4.30 in [GECC].
	//
	// The following is a paraphrased version for reference:
	//
	// G = curve generator
	// N = group order
	// Q = public key
	// z = hash of the message mod N
	// r, s = signature
	//
	// 1. Fail if r and s are not in [1, N-1]
	// 2. z = H(m)
	// 3. w = s^-1 mod N
	// 4. u1 = z * w mod N
	//    u2 = r * w mod N
	// 5. X = u1G + u2Q
	// 6. Fail if X is the point at infinity
	// 7. x = X.x mod N (X.x is the x coordinate of X)
	// 8. Verified if x == r
	//
	// An additional restriction applied before step 2 is that s must be in
	// the low half of its range, since the high form of an otherwise valid
	// signature is an equally valid second encoding of it.
	//
	// Note that because the x coordinate is reduced modulo N in step 7, a
	// candidate point whose original x coordinate overflowed the group
	// order compares correctly as well, so no special handling of that case
	// is needed here.

	// Step 1.
	//
	// Fail if r and s are not in [1, N-1].
	//
	// This is excluded by the component types, but re-checked at the
	// boundary since it is the condition the algorithm itself requires.
	r := sig.r.Scalar()
	s := sig.s.Scalar()
	if r.IsZero() || s.IsZero() {
		str := "invalid signature: R or S is zero"
		return makeError(ErrInvalidSignature, str)
	}

	// Reject non-canonical encodings ala BIP 0062.
	if s.IsOverHalfOrder() {
		str := "invalid signature: S is not canonically low"
		return makeError(ErrSigSTooHigh, str)
	}

	// Step 2.
	//
	// z = H(m)
	//
	// Note that this actually sets z = H(m) mod N which is correct per step
	// 4 since it is only used as a scalar.
	var z secp256k1.ModNScalar
	z.SetByteSlice(digest)

	// Step 3.
	//
	// w = s^-1 mod N
	w := new(secp256k1.ModNScalar).InverseValNonConst(&s)

	// Step 4.
	//
	// u1 = z * w mod N
	// u2 = r * w mod N
	u1 := new(secp256k1.ModNScalar).Mul2(&z, w)
	u2 := new(secp256k1.ModNScalar).Mul2(&r, w)

	// Step 5.
	//
	// X = u1G + u2Q
	var X, Q, u1G, u2Q secp256k1.JacobianPoint
	v.pubKey.AsJacobian(&Q)
	secp256k1.ScalarBaseMultNonConst(u1, &u1G)
	secp256k1.ScalarMultNonConst(u2, &Q, &u2Q)
	secp256k1.AddNonConst(&u1G, &u2Q, &X)

	// Step 6.
	//
	// Fail if X is the point at infinity.
	if (X.X.IsZero() && X.Y.IsZero()) || X.Z.IsZero() {
		str := "invalid signature: candidate point is the point at infinity"
		return makeError(ErrInvalidSignature, str)
	}

	// Step 7.
	//
	// x = X.x mod N
	X.ToAffine()
	x, _ := fieldToModNScalar(&X.X)

	// Step 8.
	//
	// Verified if x == r.
	if !x.Equals(&r) {
		str := "invalid signature: verification equation mismatch"
		return makeError(ErrInvalidSignature, str)
	}
	return nil
}

// VerifyRecoverable returns nil when the recoverable signature is valid for
// the provided 32-byte digest and the verifier's public key.  The recovery id
// carries no information needed for plain verification, so it is stripped and
// the embedded signature verified as usual.
func (v *Verifier) VerifyRecoverable(digest []byte, rsig *RecoverableSignature) error {
	return v.Verify(digest, rsig.Signature())
}
