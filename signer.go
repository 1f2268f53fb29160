// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Signer produces ECDSA signatures over the secp256k1 curve for a single
// private scalar.  It is immutable once constructed and holds no state across
// calls, so a single instance may be used concurrently from multiple
// goroutines.
//
// The private scalar is never serialized by this type.
type Signer struct {
	key NonZeroScalar
}

// NewSigner returns a signer for the provided private scalar.  The scalar is
// copied, so the caller remains free to reuse or zero it.
func NewSigner(key *NonZeroScalar) *Signer {
	return &Signer{key: *key}
}

// NewSignerFromBytes returns a signer for the private scalar given by the
// provided 32-byte big-endian value.  It returns an error with kind
// ErrInvalidPrivateKey when the value is not in the range [1, N-1].
func NewSignerFromBytes(privKey []byte) (*Signer, error) {
	if len(privKey) != 32 {
		str := "invalid private key: not 32 bytes"
		return nil, makeError(ErrInvalidPrivateKey, str)
	}
	key, ok := nonZeroScalarFromBytes(privKey)
	if !ok {
		str := "invalid private key: zero or >= group order"
		return nil, makeError(ErrInvalidPrivateKey, str)
	}
	return &Signer{key: key}, nil
}

// GenerateSigner returns a signer for a cryptographically secure random
// private scalar.
func GenerateSigner() (*Signer, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	defer priv.Zero()
	var key NonZeroScalar
	key.val.Set(&priv.Key)
	return &Signer{key: key}, nil
}

// PubKey computes the public key corresponding to the signer's private
// scalar.
func (signer *Signer) PubKey() *secp256k1.PublicKey {
	// The result can never be the point at infinity since the private scalar
	// is nonzero by construction.
	var result secp256k1.JacobianPoint
	k := signer.key.Scalar()
	secp256k1.ScalarBaseMultNonConst(&k, &result)
	k.Zero()
	result.ToAffine()
	return secp256k1.NewPublicKey(&result.X, &result.Y)
}

// Sign produces a deterministic ECDSA signature over the provided 32-byte
// digest.  The ephemeral nonce is derived from the private scalar and the
// digest per RFC 6979, so identical inputs always produce identical
// signatures.  The S component of the result is normalized to its canonical
// low form.  Digests of other lengths are interpreted as big-endian values
// and reduced modulo the group order rather than rejected.
//
// It returns an error with kind ErrSignFailed when one of the vanishingly
// rare internal zero or point-at-infinity conditions occurs; signing is not
// retried internally since the algorithm is deterministic given its inputs.
func (signer *Signer) Sign(digest []byte) (*Signature, error) {
	rsig, err := signer.signRecoverable(digest, nil)
	if err != nil {
		return nil, err
	}
	return rsig.Signature(), nil
}

// SignRecoverable produces a deterministic recoverable ECDSA signature over
// the provided 32-byte digest.  The embedded signature is identical to the
// result of Sign; the additional recovery id allows the public key to be
// recovered from the signature and digest alone.
func (signer *Signer) SignRecoverable(digest []byte) (*RecoverableSignature, error) {
	return signer.signRecoverable(digest, nil)
}

// SignRecoverableWithEntropy behaves like SignRecoverable with the provided
// 32 bytes of extra entropy mixed into the nonce derivation as additional
// input.  The entropy supplements the deterministic derivation as
// defense-in-depth against nonce-reuse side channels; it does not replace it.
// Callers that want reproducible signatures must pass the same entropy (or
// none) for identical inputs.
//
// The entropy must be empty or exactly 32 bytes.  Any other length returns an
// error with kind ErrSignFailed, since the nonce derivation would otherwise
// ignore it and silently fall back to the plain deterministic signature.
func (signer *Signer) SignRecoverableWithEntropy(digest, entropy []byte) (*RecoverableSignature, error) {
	return signer.signRecoverable(digest, entropy)
}

// signRecoverable implements the core signing algorithm.
func (signer *Signer) signRecoverable(digest, entropy []byte) (*RecoverableSignature, error) {
	// The algorithm for producing an ECDSA signature is given as algorithm
	// 4.29 in [GECC].
	//
	// The following is a paraphrased version for reference:
	//
	// G = curve generator
	// N = group order
	// d = private key
	// z = hash of the message mod N
	// r, s = signature
	//
	// 1. Select ephemeral nonce k in [1, N-1]
	// 2. Compute kG
	// 3. r = kG.x mod N (kG.x is the x coordinate of the point kG)
	//    Fail if r = 0
	// 4. z = H(m)
	// 5. s = k^-1(z + dr) mod N
	//    Fail if s = 0
	// 6. Return (r,s)
	//
	// This is modified here as follows:
	//
	// A. Instead of selecting a random nonce in step 1, use RFC 6979 to
	//    generate a deterministic nonce parameterized by the private key,
	//    the digest, and the optional extra entropy
	// B. Negate s calculated in step 5 if it is > N/2 so the result is in
	//    the canonical low-S form mandated by the malleability-avoidance
	//    convention
	// C. Record a recovery id identifying which of the two candidate
	//    ephemeral points corresponds to the final signature
	//
	// Also note that the zero conditions in steps 3 and 5 produce an error
	// instead of iterating the nonce: the derivation is deterministic, so
	// the caller retrying with the same inputs could never succeed anyway.

	// Step 1 with modification A.
	//
	// The nonce derivation only incorporates extra entropy that is exactly
	// 32 bytes and ignores any other length, so mis-sized entropy must be
	// rejected here to keep the caller's intent from being dropped.
	if len(entropy) != 0 && len(entropy) != 32 {
		str := fmt.Sprintf("invalid extra entropy: %d bytes instead of 32",
			len(entropy))
		return nil, makeError(ErrSignFailed, str)
	}
	var privBytes [32]byte
	signer.key.PutBytes(&privBytes)
	k := secp256k1.NonceRFC6979(privBytes[:], digest, entropy, nil, 0)
	zeroArray32(&privBytes)
	if k.IsZero() {
		return nil, makeError(ErrSignFailed, "ephemeral nonce is zero")
	}
	kInv := new(secp256k1.ModNScalar).InverseValNonConst(k)
	if kInv.IsZero() {
		k.Zero()
		return nil, makeError(ErrSignFailed, "ephemeral nonce is not invertible")
	}

	// Step 2.
	//
	// Compute kG
	//
	// Note that the point must be in affine coordinates.
	var kG secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &kG)
	if (kG.X.IsZero() && kG.Y.IsZero()) || kG.Z.IsZero() {
		k.Zero()
		kInv.Zero()
		return nil, makeError(ErrSignFailed, "ephemeral point is the point at infinity")
	}
	kG.ToAffine()

	// Step 3.
	//
	// r = kG.x mod N
	//
	// Lift the x coordinate of kG (an element of the base field) into its
	// serialized big-endian form, then reduce it into an element of the
	// scalar field.
	r, _ := fieldToModNScalar(&kG.X)
	if r.IsZero() {
		k.Zero()
		kInv.Zero()
		return nil, makeError(ErrSignFailed, "calculated R is zero")
	}

	// Step 4.
	//
	// z = H(m)
	//
	// Note that this actually sets z = H(m) mod N which is correct since it
	// is only used in step 5 which itself is mod N.
	var z secp256k1.ModNScalar
	z.SetByteSlice(digest)

	// Step 5 with modification B.
	//
	// s = k^-1(z + dr) mod N
	d := signer.key.Scalar()
	s := new(secp256k1.ModNScalar).Mul2(&d, &r).Add(&z).Mul(kInv)
	d.Zero()
	k.Zero()
	kInv.Zero()
	if s.IsZero() {
		return nil, makeError(ErrSignFailed, "calculated S is zero")
	}

	// Step 6 with modification C.
	//
	// Negating s corresponds to the ephemeral point that would have been
	// generated by -k (mod N), which necessarily has the opposite y
	// oddness since N is prime, so the recorded parity must be corrected
	// by whether the normalization occurred.
	isROdd := kG.Y.IsOdd()
	sig := Signature{r: NonZeroScalar{val: r}, s: NonZeroScalar{val: *s}}
	isSHigh := sig.NormalizeS()

	var id RecoveryID
	if isROdd != isSHigh {
		id = 1
	}
	return NewRecoverableSignature(&sig, id), nil
}
