// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error.  This is only provided for the hard-coded constants so errors in
// the source code can be detected.  It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// TestParseSignatureErrors ensures the fixed 64-byte signature parser rejects
// malformed encodings with the expected error kind.
func TestParseSignatureErrors(t *testing.T) {
	// N is the order of the secp256k1 group serialized as 32 big-endian
	// bytes.  Both components must be strictly below it.
	const orderHex = "fffffffffffffffffffffffffffffffe" +
		"baaedce6af48a03bbfd25e8cd0364141"
	const oneHex = "00000000000000000000000000000000" +
		"00000000000000000000000000000001"
	const zeroHex = "00000000000000000000000000000000" +
		"00000000000000000000000000000000"

	tests := []struct {
		name string // test description
		sig  string // hex encoded signature to parse
		err  error  // expected error
	}{{
		name: "empty",
		sig:  "",
		err:  ErrInvalidEncoding,
	}, {
		name: "one byte short",
		sig:  oneHex + oneHex[:62],
		err:  ErrInvalidEncoding,
	}, {
		name: "one byte long",
		sig:  oneHex + oneHex + "00",
		err:  ErrInvalidEncoding,
	}, {
		name: "r is zero",
		sig:  zeroHex + oneHex,
		err:  ErrInvalidEncoding,
	}, {
		name: "r equals group order",
		sig:  orderHex + oneHex,
		err:  ErrInvalidEncoding,
	}, {
		name: "s is zero",
		sig:  oneHex + zeroHex,
		err:  ErrInvalidEncoding,
	}, {
		name: "s equals group order",
		sig:  oneHex + orderHex,
		err:  ErrInvalidEncoding,
	}, {
		name: "valid signature",
		sig:  oneHex + oneHex,
		err:  nil,
	}}

	for _, test := range tests {
		_, err := ParseSignature(hexToBytes(test.sig))
		if !errors.Is(err, test.err) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name, err,
				test.err)
			continue
		}
	}
}

// TestSignatureSerialize ensures parsing a signature and serializing it again
// produces the original bytes.
func TestSignatureSerialize(t *testing.T) {
	wantSig := hexToBytes("934b1ea10a4b3c1757e2b0c017d0b6143ce3c9a7e6a4a498" +
		"60d7a6ab210ee3d82442ce9d2b916064108014783e923ec36b49743e2ffa1c449" +
		"6f01a512aafd9e5")
	sig, err := ParseSignature(wantSig)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotSig := sig.Serialize(); !bytes.Equal(gotSig, wantSig) {
		t.Fatalf("mismatched serialization -- got %x, want %x", gotSig,
			wantSig)
	}
}

// TestSignatureNormalizeS ensures normalization is a no-op for a low-S
// signature, converts a high-S signature to the same low-S form, and is
// idempotent.
func TestSignatureNormalizeS(t *testing.T) {
	sig, err := ParseSignature(hexToBytes("934b1ea10a4b3c1757e2b0c017d0b614" +
		"3ce3c9a7e6a4a49860d7a6ab210ee3d82442ce9d2b916064108014783e923ec36" +
		"b49743e2ffa1c4496f01a512aafd9e5"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	wantSer := sig.Serialize()

	// Already low.
	if sig.NormalizeS() {
		t.Fatal("normalization changed a low-S signature")
	}

	// Construct the high-S form of the same signature and ensure
	// normalization restores the original.
	sig.s.negate()
	if !sig.NormalizeS() {
		t.Fatal("normalization ignored a high-S signature")
	}
	if gotSer := sig.Serialize(); !bytes.Equal(gotSer, wantSer) {
		t.Fatalf("mismatched normalized S -- got %x, want %x", gotSer,
			wantSer)
	}

	// Idempotent.
	if sig.NormalizeS() {
		t.Fatal("normalization changed an already normalized signature")
	}
}

// TestSignatureIsEqual ensures signature equality compares both components.
func TestSignatureIsEqual(t *testing.T) {
	sigA, err := ParseSignature(hexToBytes("934b1ea10a4b3c1757e2b0c017d0b61" +
		"43ce3c9a7e6a4a49860d7a6ab210ee3d82442ce9d2b916064108014783e923ec3" +
		"6b49743e2ffa1c4496f01a512aafd9e5"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	sigB, err := ParseSignature(hexToBytes("8600dbd41e348fe5c9465ab92d23e3d" +
		"b8b98b873beecd930736488696438cb6b547fe64427496db33bf66019dacbf003" +
		"9c04199abb0122918601db38a72cfc21"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if !sigA.IsEqual(sigA) {
		t.Fatal("signature not equal to itself")
	}
	if sigA.IsEqual(sigB) {
		t.Fatal("distinct signatures compare as equal")
	}
}
