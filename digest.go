package recsig

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"
)

// HashMessage returns the Keccak-256 digest of the provided message.  This is
// the prehash conventionally used with Ethereum-style recoverable signatures.
//
// The protocol layer itself only ever operates on 32-byte digests; the
// helpers below are convenience wrappers for callers that start from raw
// messages.
func HashMessage(msg []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(msg)
	return h.Sum(nil)
}

// SignMessage hashes the provided message with Keccak-256 and signs the
// resulting digest.  See Sign.
func (signer *Signer) SignMessage(msg []byte) (*Signature, error) {
	return signer.Sign(HashMessage(msg))
}

// SignMessageRecoverable hashes the provided message with Keccak-256 and
// produces a recoverable signature over the resulting digest.  See
// SignRecoverable.
func (signer *Signer) SignMessageRecoverable(msg []byte) (*RecoverableSignature, error) {
	return signer.SignRecoverable(HashMessage(msg))
}

// VerifyMessage hashes the provided message with Keccak-256 and verifies the
// signature against the resulting digest.  See Verify.
func (v *Verifier) VerifyMessage(msg []byte, sig *Signature) error {
	return v.Verify(HashMessage(msg), sig)
}

// RecoverPublicKeyFromMessage hashes the provided message with Keccak-256 and
// recovers the public key that created the signature over the resulting
// digest.  See RecoverPublicKey.
func (rsig *RecoverableSignature) RecoverPublicKeyFromMessage(msg []byte) (*secp256k1.PublicKey, error) {
	return rsig.RecoverPublicKey(HashMessage(msg))
}
