// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"crypto/sha256"
	"errors"
	"testing"
)

// TestVerify ensures verification accepts a known valid signature for the
// matching digest and public key and rejects mismatched inputs with the
// expected error kinds.
func TestVerify(t *testing.T) {
	// A known deterministic signature by the key whose compressed public key
	// follows, over the sha256 digest of "Alan Turing".
	pubKeyBytes := hexToBytes("0292df7b245b81aa637ab4e867c8d511008f79161a97" +
		"d64f2ac709600352f7acbc")
	sigBytes := hexToBytes("7063ae83e7f62bbb171798131b4a0564b956930092b33b0" +
		"7b395615d9ec7e15c58dfcc1e00a35e1572f366ffe34ba0fc47db1e7189759b9f" +
		"b233c5b05ab388ea")
	digest := sha256.Sum256([]byte("Alan Turing"))

	verifier, err := NewVerifierFromBytes(pubKeyBytes)
	if err != nil {
		t.Fatalf("unexpected err creating verifier: %v", err)
	}
	sig, err := ParseSignature(sigBytes)
	if err != nil {
		t.Fatalf("unexpected err parsing signature: %v", err)
	}

	if err := verifier.Verify(digest[:], sig); err != nil {
		t.Fatalf("unexpected verification err: %v", err)
	}

	// A different digest must not verify.
	otherDigest := sha256.Sum256([]byte("Alan M. Turing"))
	err = verifier.Verify(otherDigest[:], sig)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("wrong digest: mismatched err -- got %v, want %v", err,
			ErrInvalidSignature)
	}

	// A different public key must not verify.
	otherVerifier, err := NewVerifierFromBytes(hexToBytes("03567b7512001f3c" +
		"c4dcb8b8096c046fff571ab07adb2126cd42908f2ff1ca424a"))
	if err != nil {
		t.Fatalf("unexpected err creating verifier: %v", err)
	}
	err = otherVerifier.Verify(digest[:], sig)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("wrong key: mismatched err -- got %v, want %v", err,
			ErrInvalidSignature)
	}
}

// TestVerifyHighS ensures the high-S encoding of an otherwise valid signature
// is rejected as malleable instead of silently normalized.
func TestVerifyHighS(t *testing.T) {
	pubKeyBytes := hexToBytes("0292df7b245b81aa637ab4e867c8d511008f79161a97" +
		"d64f2ac709600352f7acbc")
	sigBytes := hexToBytes("7063ae83e7f62bbb171798131b4a0564b956930092b33b0" +
		"7b395615d9ec7e15c58dfcc1e00a35e1572f366ffe34ba0fc47db1e7189759b9f" +
		"b233c5b05ab388ea")
	digest := sha256.Sum256([]byte("Alan Turing"))

	verifier, err := NewVerifierFromBytes(pubKeyBytes)
	if err != nil {
		t.Fatalf("unexpected err creating verifier: %v", err)
	}
	sig, err := ParseSignature(sigBytes)
	if err != nil {
		t.Fatalf("unexpected err parsing signature: %v", err)
	}

	// N - S satisfies the verification equation just as well, which is
	// exactly why it must be rejected.
	sig.s.negate()
	err = verifier.Verify(digest[:], sig)
	if !errors.Is(err, ErrSigSTooHigh) {
		t.Fatalf("mismatched err -- got %v, want %v", err, ErrSigSTooHigh)
	}

	// Normalizing restores acceptance.
	sig.NormalizeS()
	if err := verifier.Verify(digest[:], sig); err != nil {
		t.Fatalf("unexpected verification err: %v", err)
	}
}

// TestVerifyRecoverable ensures the recovery id is ignored for plain
// verification of a recoverable signature.
func TestVerifyRecoverable(t *testing.T) {
	signer, err := NewSignerFromBytes(hexToBytes("f8b8af8ce3c7cca5e300d3393" +
		"9540c10d45ce001b8f252bfbc57ba0342904181"))
	if err != nil {
		t.Fatalf("unexpected err creating signer: %v", err)
	}
	digest := sha256.Sum256([]byte("recoverable verification"))
	rsig, err := signer.SignRecoverable(digest[:])
	if err != nil {
		t.Fatalf("unexpected signing err: %v", err)
	}

	verifier := NewVerifier(signer.PubKey())
	if err := verifier.VerifyRecoverable(digest[:], rsig); err != nil {
		t.Fatalf("unexpected verification err: %v", err)
	}

	// The same signature with the opposite recovery id recovers a different
	// key, but still verifies since the id plays no part in verification.
	flipped := NewRecoverableSignature(rsig.Signature(), rsig.RecoveryID()^1)
	if err := verifier.VerifyRecoverable(digest[:], flipped); err != nil {
		t.Fatalf("unexpected verification err: %v", err)
	}
}

// TestNewVerifierFromBytesErrors ensures byte strings that do not describe a
// point on the curve are rejected with the expected error kind.
func TestNewVerifierFromBytesErrors(t *testing.T) {
	tests := []struct {
		name string // test description
		key  string // hex encoded public key
	}{{
		name: "empty",
		key:  "",
	}, {
		name: "invalid format byte",
		key: "0592df7b245b81aa637ab4e867c8d511008f79161a97d64f2ac709600352f" +
			"7acbc",
	}, {
		name: "compressed key one byte short",
		key:  "0292df7b245b81aa637ab4e867c8d511008f79161a97d64f2ac709600352f7ac",
	}, {
		name: "x not on curve",
		key: "0200000000000000000000000000000000000000000000000000000000000" +
			"00005",
	}}

	for _, test := range tests {
		_, err := NewVerifierFromBytes(hexToBytes(test.key))
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name, err,
				ErrInvalidEncoding)
			continue
		}
	}
}
