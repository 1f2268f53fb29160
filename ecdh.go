// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SharedSecret generates a shared secret based on the signer's private scalar
// and a peer public key using Diffie-Hellman key exchange (ECDH) (RFC 5903).
// RFC5903 Section 9 states we should only return x.
//
// It is recommended to securely hash the result before using as a
// cryptographic key.
func (signer *Signer) SharedSecret(peer *secp256k1.PublicKey) []byte {
	var point, result secp256k1.JacobianPoint
	peer.AsJacobian(&point)
	d := signer.key.Scalar()
	secp256k1.ScalarMultNonConst(&d, &point, &result)
	d.Zero()
	result.ToAffine()
	xBytes := result.X.Bytes()
	return xBytes[:]
}
