// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package recsig

import (
	"bytes"
	"testing"
)

// TestSharedSecret ensures both parties of an ECDH exchange compute the same
// shared secret and that a third key computes a different one.
func TestSharedSecret(t *testing.T) {
	alice, err := NewSignerFromBytes(hexToBytes("f8b8af8ce3c7cca5e300d33939" +
		"540c10d45ce001b8f252bfbc57ba0342904181"))
	if err != nil {
		t.Fatalf("unexpected err creating signer: %v", err)
	}
	bob, err := NewSignerFromBytes(hexToBytes("e91671c46231f833a6406ccbea0e" +
		"3e392c76c167bac1cb013f6f1013980455c2"))
	if err != nil {
		t.Fatalf("unexpected err creating signer: %v", err)
	}

	aliceSecret := alice.SharedSecret(bob.PubKey())
	bobSecret := bob.SharedSecret(alice.PubKey())
	if !bytes.Equal(aliceSecret, bobSecret) {
		t.Fatalf("mismatched shared secrets -- %x vs %x", aliceSecret,
			bobSecret)
	}

	eve, err := GenerateSigner()
	if err != nil {
		t.Fatalf("unexpected err generating signer: %v", err)
	}
	if bytes.Equal(eve.SharedSecret(bob.PubKey()), aliceSecret) {
		t.Fatal("unrelated key produced the same shared secret")
	}
}
