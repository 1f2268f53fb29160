// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// RecoverableSignatureSize is the size of a serialized recoverable signature:
// the 64-byte signature followed by a 1-byte recovery id.  64+1 = 65.
const RecoverableSignatureSize = SignatureSize + 1

// RecoveryID identifies which of the two candidate ephemeral points was used
// to create a signature and thereby enables recovery of the public key from
// the signature and signed digest alone.  The value records whether the y
// coordinate of the ephemeral point is odd.
//
// While the values 2 and 3 are also defined by some ecosystems to capture the
// case where the x coordinate of the ephemeral point overflowed the group
// order, signatures that would require them are rejected instead, so those
// values are not valid recovery ids here.
type RecoveryID byte

// NewRecoveryID returns the recovery id for the given byte value.  It returns
// an error with kind ErrInvalidRecoveryID unless the byte is 0 or 1.
func NewRecoveryID(b byte) (RecoveryID, error) {
	if b > 1 {
		str := fmt.Sprintf("invalid recovery id: %d is not 0 or 1", b)
		return 0, makeError(ErrInvalidRecoveryID, str)
	}
	return RecoveryID(b), nil
}

// IsYOdd returns whether or not the y coordinate of the ephemeral point the
// recovery id describes is odd.
func (id RecoveryID) IsYOdd() bool {
	return id&1 == 1
}

// RecoverableSignature is a signature carrying an additional recovery id which
// allows the public key that created it to be recovered from the signature and
// the signed digest.  Its fixed 65-byte encoding is:
//
//	<32-byte big-endian R><32-byte big-endian S><1-byte recovery id>
type RecoverableSignature struct {
	sig Signature
	id  RecoveryID
}

// NewRecoverableSignature packs a signature and an associated recovery id into
// a recoverable signature.  The R/S invariants are carried by the Signature
// type and the id range by RecoveryID, so no further validation is required.
// The id is assumed consistent with the signature; no consistency check is
// performed here.
func NewRecoverableSignature(sig *Signature, id RecoveryID) *RecoverableSignature {
	return &RecoverableSignature{sig: *sig, id: id}
}

// ParseRecoverableSignature parses a recoverable signature from its fixed
// 65-byte encoding.  It returns an error with kind ErrInvalidEncoding unless
// exactly 65 bytes are provided, with the R, S, and recovery id components
// revalidated by their respective constructors.
func ParseRecoverableSignature(b []byte) (*RecoverableSignature, error) {
	if len(b) != RecoverableSignatureSize {
		str := fmt.Sprintf("malformed recoverable signature: wrong size: "+
			"%d != %d", len(b), RecoverableSignatureSize)
		return nil, makeError(ErrInvalidEncoding, str)
	}
	sig, err := ParseSignature(b[:SignatureSize])
	if err != nil {
		return nil, err
	}
	id, err := NewRecoveryID(b[SignatureSize])
	if err != nil {
		return nil, err
	}
	return NewRecoverableSignature(sig, id), nil
}

// Serialize returns the fixed 65-byte encoding of the recoverable signature.
func (rsig *RecoverableSignature) Serialize() []byte {
	var b [RecoverableSignatureSize]byte
	copy(b[:SignatureSize], rsig.sig.Serialize())
	b[SignatureSize] = byte(rsig.id)
	return b[:]
}

// Signature returns a copy of the embedded signature with the recovery id
// stripped.  The recovery id carries no information needed for plain
// verification, only for recovery.
func (rsig *RecoverableSignature) Signature() *Signature {
	sig := rsig.sig
	return &sig
}

// RecoveryID returns the recovery id for this signature.
func (rsig *RecoverableSignature) RecoveryID() RecoveryID {
	return rsig.id
}

// IsEqual compares this RecoverableSignature instance to the one passed,
// returning true if both have the same scalar values for R and S and the same
// recovery id.
func (rsig *RecoverableSignature) IsEqual(other *RecoverableSignature) bool {
	return rsig.sig.IsEqual(&other.sig) && rsig.id == other.id
}

// RecoverPublicKey attempts to recover the secp256k1 public key that created
// the signature over the provided 32-byte digest.  Digests of other lengths
// are interpreted as big-endian values and reduced modulo the group order
// rather than rejected, mirroring the signing side.  It returns an error with
// kind ErrRecoveryFailed when the R component is not a valid x coordinate on
// the curve or the candidate public key is the point at infinity.
func (rsig *RecoverableSignature) RecoverPublicKey(digest []byte) (*secp256k1.PublicKey, error) {
	// The following is very loosely based on the information and algorithm
	// that describes recovering a public key from an ECDSA signature in
	// section 4.1.6 of [SEC1].
	//
	// Given the following parameters:
	//
	// G = curve generator
	// N = group order
	// Q = public key
	// z = hash of the message mod N
	// r, s = signature
	// R = ephemeral point used when creating the signature whose x
	//     coordinate is r and whose y coordinate parity is captured by the
	//     recovery id
	//
	// The equation to recover a public key candidate from an ECDSA signature
	// is:
	// Q = r^-1(sR - zG)
	//
	// This can be verified by plugging it in for Q in the sig verification
	// equation:
	// R = s^-1(zG + rQ) (mod N)
	//  => s^-1(zG + r(r^-1(sR - zG))) (mod N)
	//  => s^-1(zG + sR - zG) (mod N)
	//  => s^-1(sR) (mod N)
	//  => R (mod N)
	//
	// The computation below is the equivalent Q = u1G + u2R with
	// u1 = -(r^-1 * z) and u2 = r^-1 * s.
	//
	// 1. Convert r to a field value x
	// 2. y = +sqrt(x^3 + 7) (mod P)
	//    2.1 Fail if y does not exist
	//    2.2 y = -y if needed to match the recovery id parity bit
	// 3. R = (x, y)
	// 4. z = H(m) mod N
	// 5. w = r^-1 mod N
	// 6. u1 = -(z * w) mod N
	//    u2 = s * w mod N
	// 7. Q = u1G + u2R
	// 8. Fail if Q is the point at infinity

	// Steps 1-3.
	//
	// Reconstruct the ephemeral point from the x coordinate given by r and
	// the parity bit from the recovery id.  The x coordinate is not
	// guaranteed to be on the curve since r only covers values below the
	// group order and the signature might not have been created by an honest
	// signer.
	r := rsig.sig.r.Scalar()
	fieldR := modNScalarToField(&r)
	var y secp256k1.FieldVal
	if !secp256k1.DecompressY(&fieldR, rsig.id.IsYOdd(), &y) {
		str := "invalid signature: not a valid curve point"
		return nil, makeError(ErrRecoveryFailed, str)
	}
	var R secp256k1.JacobianPoint
	R.X.Set(&fieldR).Normalize()
	R.Y.Set(y.Normalize())
	R.Z.SetInt(1)

	// Step 4.
	//
	// z = H(m) mod N
	var z secp256k1.ModNScalar
	z.SetByteSlice(digest)

	// Step 5.
	//
	// w = r^-1 mod N
	//
	// The inverse always exists here since r is nonzero by construction.
	w := new(secp256k1.ModNScalar).InverseValNonConst(&r)

	// Step 6.
	//
	// u1 = -(z * w) mod N
	// u2 = s * w mod N
	s := rsig.sig.s.Scalar()
	u1 := new(secp256k1.ModNScalar).Mul2(&z, w).Negate()
	u2 := new(secp256k1.ModNScalar).Mul2(&s, w)

	// Step 7.
	//
	// Q = u1G + u2R
	var Q, u1G, u2R secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(u1, &u1G)
	secp256k1.ScalarMultNonConst(u2, &R, &u2R)
	secp256k1.AddNonConst(&u1G, &u2R, &Q)

	// Step 8.
	//
	// Fail if Q is the point at infinity.  Either the signature or the
	// recovery id must be invalid if the recovered public key is the point
	// at infinity.
	if (Q.X.IsZero() && Q.Y.IsZero()) || Q.Z.IsZero() {
		str := "invalid signature: recovered pubkey is the point at infinity"
		return nil, makeError(ErrRecoveryFailed, str)
	}

	// Notice that the public key is in affine coordinates.
	Q.ToAffine()
	return secp256k1.NewPublicKey(&Q.X, &Q.Y), nil
}

// RecoverableSignatureFromTrial converts a plain signature that was produced
// without an explicit recovery id into a recoverable signature by trial
// recovery against a known public key.  The S component is normalized to its
// canonical low form first, then recovery id 0 is tried before id 1 and the
// first id whose recovered key equals the expected public key wins.  At most
// one id matches a valid (signature, digest, key)
// triple, but the fixed order keeps the result deterministic regardless.
//
// It returns an error with kind ErrRecoveryFailed when neither id yields a
// matching key.
func RecoverableSignatureFromTrial(pubKey *secp256k1.PublicKey, digest []byte, sig *Signature) (*RecoverableSignature, error) {
	normSig := *sig
	normSig.NormalizeS()

	for id := RecoveryID(0); id <= 1; id++ {
		rsig := NewRecoverableSignature(&normSig, id)
		recovered, err := rsig.RecoverPublicKey(digest)
		if err != nil {
			continue
		}
		if recovered.IsEqual(pubKey) {
			return rsig, nil
		}
	}

	str := "no recovery id produces the expected public key"
	return nil, makeError(ErrRecoveryFailed, str)
}
