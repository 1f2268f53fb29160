// Package hdkey implements BIP32-style hierarchical derivation of secp256k1
// signing keys, along with the base58check string encoding of extended keys.
// Private extended keys bridge directly into recsig signers and public
// extended keys into recsig verifiers.
package hdkey

import (
	"bytes"
	"encoding/binary"

	"github.com/ModChain/base58"
	"github.com/ModChain/recsig"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// HardenedKeyStart is the index at which hardened derivation begins.
	// Child indices with this bit set use the hardened derivation path.
	HardenedKeyStart = 0x80000000

	// serializedKeyLen is the length of a serialized extended key without
	// its trailing 4-byte checksum:
	// version (4) + depth (1) + fingerprint (4) + child num (4) +
	// chain code (32) + key data (33).
	serializedKeyLen = 78
)

// ExtendedKey is a node of a hierarchical deterministic key tree.  A private
// extended key can derive both private and public children; a public extended
// key can only derive non-hardened public children.
type ExtendedKey struct {
	Version     KeyVersion
	Depth       uint8
	Fingerprint [4]byte
	ChildNumber uint32 // ser32(i) for i in xi = xpar/i, with xi the key being serialized. (0x00000000 if master key)
	KeyData     []byte // 32 bytes of private key data, or the 33-byte compressed public key
	ChainCode   []byte // 32 bytes, the chain code
}

// FromSeed returns a master extended private key derived from the provided
// seed using the given master secret as the HMAC salt (BIP32 uses
// "Bitcoin seed").
func FromSeed(seed, masterSecret []byte) (*ExtendedKey, error) {
	key, chainCode, err := hmacCKD(seed, masterSecret)
	if err != nil {
		return nil, err
	}

	res := &ExtendedKey{
		Version:     MainnetPrivate,
		Depth:       0,
		Fingerprint: [4]byte{0, 0, 0, 0},
		ChildNumber: 0,
		KeyData:     key,
		ChainCode:   chainCode,
	}
	return res, nil
}

// FromBitcoinSeed returns a master extended key using the standard BIP32
// master secret.
func FromBitcoinSeed(seed []byte) (*ExtendedKey, error) {
	return FromSeed(seed, []byte("Bitcoin seed"))
}

// FromString parses an extended key from its base58check string encoding.
func FromString(str string) (*ExtendedKey, error) {
	bin, err := base58.Bitcoin.Decode(str)
	if err != nil {
		return nil, err
	}

	e := &ExtendedKey{}
	return e, e.UnmarshalBinary(bin)
}

func (k *ExtendedKey) IsPrivate() bool {
	return k.Version.IsPrivate()
}

// Child derives the extended key at the given index i.
// If parent is private, then derived key is also private. If parent is public, then derived is public.
//
// If i >= HardenedKeyStart, then a hardened key is generated.
// You can only generate hardened keys from private parent keys.
// If you try generating a hardened key from a public parent key,
// ErrDerivingHardenedFromPublic is returned.
//
// There are four CKD (child key derivation) scenarios:
// 1) Private extended key -> Hardened child private extended key
// 2) Private extended key -> Non-hardened child private extended key
// 3) Public extended key -> Non-hardened child public extended key
// 4) Public extended key -> Hardened child public extended key (INVALID!)
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	if k.Depth == 0xff {
		return nil, ErrMaxDepthExceeded
	}

	// A hardened child may not be created from a public extended key (Case #4).
	isChildHardened := i&HardenedKeyStart == HardenedKeyStart
	if !k.IsPrivate() && isChildHardened {
		return nil, ErrDerivingHardenedFromPublic
	}

	keyLen := 33
	seed := make([]byte, keyLen+4)
	if isChildHardened {
		// Case #1: 0x00 || ser256(parentKey) || ser32(i)
		copy(seed[1:], k.KeyData) // 0x00 || ser256(parentKey)
	} else {
		// Case #2 and #3: serP(parentPubKey) || ser32(i)
		copy(seed, k.pubKeyBytes())
	}
	binary.BigEndian.PutUint32(seed[keyLen:], i)

	ilBytes, chainCode, err := hmacCKD(seed, k.ChainCode)
	if err != nil {
		return nil, err
	}
	var il secp256k1.ModNScalar
	il.SetByteSlice(ilBytes) // range validated by hmacCKD

	child := &ExtendedKey{
		ChainCode:   chainCode,
		Depth:       k.Depth + 1,
		ChildNumber: i,
		// The fingerprint for the derived child is the first 4 bytes of the
		// hash of the parent public key.
	}
	copy(child.Fingerprint[:], rmd160sha256(k.pubKeyBytes()))

	if k.IsPrivate() {
		// Case #1 or #2: childKey = parse256(IL) + parentKey (mod n)
		var parent secp256k1.ModNScalar
		parent.SetByteSlice(k.KeyData)
		il.Add(&parent)
		parent.Zero()
		if il.IsZero() {
			return nil, ErrDerivedKeyInvalid
		}

		// The child key is serialized as a fixed 32 bytes so that deriving a
		// grandchild hashes the same seed bytes regardless of how many
		// leading zeros the scalar value happens to have.
		var childKey [32]byte
		il.PutBytes(&childKey)
		il.Zero()

		child.KeyData = childKey[:]
		child.Version = k.Version
	} else {
		// Case #3: childKey = serP(point(parse256(IL)) + parentKey)

		// Calculate the intermediate public key for the intermediate
		// private key.
		var ilG secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(&il, &ilG)
		il.Zero()

		// Convert the serialized compressed parent public key into a point
		// so it can be added to the intermediate public key.
		pubKey, err := secp256k1.ParsePubKey(k.KeyData)
		if err != nil {
			return nil, err
		}
		var parent, sum secp256k1.JacobianPoint
		pubKey.AsJacobian(&parent)
		secp256k1.AddNonConst(&ilG, &parent, &sum)
		if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
			return nil, ErrInvalidKey
		}
		sum.ToAffine()

		child.KeyData = secp256k1.NewPublicKey(&sum.X, &sum.Y).SerializeCompressed()
		child.Version = k.Version.ToPublic()
	}
	return child, nil
}

// Derive returns a derived child key at a given path
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	var err error
	extKey := k
	for _, i := range path {
		extKey, err = extKey.Child(i)
		if err != nil {
			return nil, ErrDerivingChild
		}
	}

	return extKey, nil
}

// Public returns a new extended public key from a given extended private key.
// If the input extended key is already public, it will be returned unaltered.
func (k *ExtendedKey) Public() (*ExtendedKey, error) {
	// Already an extended public key.
	if !k.IsPrivate() {
		return k, nil
	}

	// Convert it to an extended public key.  The key for the new extended
	// key will simply be the pubkey of the current extended private key.
	return &ExtendedKey{
		Version:     k.Version.ToPublic(),
		KeyData:     k.pubKeyBytes(),
		ChainCode:   k.ChainCode,
		Fingerprint: k.Fingerprint,
		Depth:       k.Depth,
		ChildNumber: k.ChildNumber,
	}, nil
}

// Signer returns a recsig signer for the private scalar of this extended key.
// It fails with ErrNotPrivate for public extended keys.
func (k *ExtendedKey) Signer() (*recsig.Signer, error) {
	if !k.IsPrivate() {
		return nil, ErrNotPrivate
	}
	return recsig.NewSignerFromBytes(k.KeyData)
}

// Verifier returns a recsig verifier for the public key of this extended key.
func (k *ExtendedKey) Verifier() (*recsig.Verifier, error) {
	return recsig.NewVerifierFromBytes(k.pubKeyBytes())
}

// MarshalBinary encodes the key in the standard format that can be base58
// encoded for humans.
func (k *ExtendedKey) MarshalBinary() ([]byte, error) {
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.ChildNumber)

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+4)
	serializedBytes = append(serializedBytes, k.Version[:]...)
	serializedBytes = append(serializedBytes, k.Depth)
	serializedBytes = append(serializedBytes, k.Fingerprint[:]...)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.ChainCode...)
	if k.IsPrivate() {
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = paddedAppend(32, serializedBytes, k.KeyData)
	} else {
		serializedBytes = append(serializedBytes, k.pubKeyBytes()...)
	}

	checkSum := doubleSha256(serializedBytes)[:4]
	serializedBytes = append(serializedBytes, checkSum...)
	return serializedBytes, nil
}

func (k *ExtendedKey) String() string {
	bin, _ := k.MarshalBinary()
	return base58.Bitcoin.Encode(bin)
}

// pubKeyBytes returns bytes for the serialized compressed public key
// associated with this extended key.
//
// When the extended key is already a public key, the key is simply returned
// as is since it's already in the correct form.  However, when the extended
// key is a private key, the corresponding public key is calculated.
func (k *ExtendedKey) pubKeyBytes() []byte {
	// Just return the key if it's already an extended public key.
	if !k.IsPrivate() {
		return k.KeyData
	}

	privKey := secp256k1.PrivKeyFromBytes(k.KeyData)
	defer privKey.Zero()
	return privKey.PubKey().SerializeCompressed()
}

func (k *ExtendedKey) UnmarshalBinary(data []byte) error {
	if len(data) != serializedKeyLen+4 {
		return ErrInvalidKeyLen
	}

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)

	// Split the payload and checksum up and ensure the checksum matches.
	payload := data[:len(data)-4]
	checkSum := data[len(data)-4:]
	expectedCheckSum := doubleSha256(payload)[:4]
	if !bytes.Equal(checkSum, expectedCheckSum) {
		return ErrBadChecksum
	}

	// Deserialize each of the payload fields.
	var version KeyVersion
	copy(version[:], payload[:4])
	depth := payload[4:5][0]
	var fingerprint [4]byte
	copy(fingerprint[:], payload[5:9])
	childNumber := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	// The key data is a private key if it starts with 0x00.  Serialized
	// compressed pubkeys either start with 0x02 or 0x03.
	isPrivate := keyData[0] == 0x00
	if isPrivate != version.IsPrivate() {
		return ErrInvalidPrivateFlag
	}

	if isPrivate {
		// Ensure the private key is valid.  It must be within the range
		// of the order of the secp256k1 curve and not be 0.
		keyData = keyData[1:]
		var s secp256k1.ModNScalar
		if overflow := s.SetByteSlice(keyData); overflow || s.IsZero() {
			return ErrInvalidSeed
		}
		s.Zero()
	} else {
		// Ensure the public key parses correctly and is actually on the
		// secp256k1 curve.
		_, err := secp256k1.ParsePubKey(keyData)
		if err != nil {
			return err
		}
	}

	k.Version = version
	k.KeyData = keyData
	k.ChainCode = chainCode
	k.Fingerprint = fingerprint
	k.Depth = depth
	k.ChildNumber = childNumber
	return nil
}
