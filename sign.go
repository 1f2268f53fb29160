package recsig

import (
	"crypto"
	"io"
)

// SignOptions can be passed to CryptoSigner.Sign to control the output
// encoding.
type SignOptions struct {
	Hash        crypto.Hash
	Recoverable bool
}

func (o *SignOptions) HashFunc() crypto.Hash {
	return o.Hash
}

// CryptoSigner adapts a Signer to the standard library crypto.Signer
// interface so keys can be plugged into call sites written against it.
type CryptoSigner struct {
	*Signer
}

// Public implements crypto.Signer.
func (cs CryptoSigner) Public() crypto.PublicKey {
	return cs.PubKey()
}

// Sign will sign the provided digest, returning the fixed 64-byte encoding of
// the resulting signature, or the 65-byte recoverable encoding when opts is a
// [SignOptions] with Recoverable set.  When rand is non-nil, 32 bytes of extra
// entropy are read from it and mixed into the nonce derivation.
func (cs CryptoSigner) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	var entropy []byte
	if rand != nil {
		entropy = make([]byte, 32)
		if _, err := io.ReadFull(rand, entropy); err != nil {
			return nil, err
		}
	}
	rsig, err := cs.signRecoverable(digest, entropy)
	if err != nil {
		return nil, err
	}
	if o, ok := opts.(*SignOptions); ok && o.Recoverable {
		return rsig.Serialize(), nil
	}
	return rsig.Signature().Serialize(), nil
}
