package hdkey

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	ErrDerivedKeyInvalid = errors.New("derived key zero or overflow, try next index")
)

// hmacCKD derives key material and a chain code for a given seed and salt
// using HMAC-SHA512 as specified for child key derivation.
//
// See: https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki
func hmacCKD(seed, salt []byte) (key, chainCode []byte, err error) {
	mac := hmac.New(sha512.New, salt)
	if _, err = mac.Write(seed); err != nil {
		return
	}
	I := mac.Sum(nil)

	key = I[:32]       // IL
	chainCode = I[32:] // IR

	// In case parse256(IL) >= n or IL = 0, the resulting key is invalid and
	// one should proceed with the next index.  This has probability lower
	// than 1 in 2^127.
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(key); overflow || s.IsZero() {
		err = ErrDerivedKeyInvalid
	}
	s.Zero()

	return
}
