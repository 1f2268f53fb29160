// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package recsig implements ECDSA signatures over the secp256k1 curve, including
the Ethereum-style recoverable signature extension that allows the signer's
public key to be reconstructed directly from a signature and the signed
message digest, without the public key needing to be transmitted separately.

The package is a protocol layer: the field and group arithmetic, the key
containers, and the RFC 6979 deterministic nonce generation are supplied by
the decred secp256k1 library, which is treated as an opaque constant-time
arithmetic provider.  This package defines how those primitives compose into
signing, verification, and public key recovery.

An overview of the features provided by this package are as follows:

  - Deterministic canonical signing per RFC 6979 and BIP0062, with optional
    caller-supplied extra entropy mixed into the nonce derivation
  - Recoverable signatures carrying a 1-byte recovery id, produced with the
    id consistent with the canonical low-S form of the signature
  - Public key recovery from a recoverable signature and digest, as well as
    trial recovery for converting a plain signature to recoverable form when
    the public key is known
  - Verification that rejects malleable (high-S) encodings outright
  - Fixed-width 64-byte and 65-byte wire encodings with strict parsing
  - Specialized NonZeroScalar type so scalar-range validation happens at
    construction time rather than at every use site
  - A crypto.Signer adapter, ECDH shared secret derivation, and Keccak-256
    message prehash helpers

Recovery ids 2 and 3, which some ecosystems define for the case where the x
coordinate of the ephemeral point overflowed the group order, are not
supported: signatures that would require them are rejected during parsing and
never produced during signing.  Supporting them would change the
interoperability surface and is deliberately out of scope.

In addition, the hdkey sub package provides hierarchical derivation of signing
keys along with their base58check string encoding.  See the documentation of
that package for more details.

Errors returned by this package are of type recsig.Error and fully support the
errors.Is and errors.As functions, allowing the caller to programmatically
determine the specific reason for failure.  Error descriptions never contain
secret material.
*/
package recsig
