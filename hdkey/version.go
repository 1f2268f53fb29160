package hdkey

// KeyVersion is the 4-byte prefix identifying the network and privateness of
// a serialized extended key.
type KeyVersion [4]byte

var (
	MainnetPublic  = KeyVersion{0x04, 0x88, 0xb2, 0x1e}
	MainnetPrivate = KeyVersion{0x04, 0x88, 0xad, 0xe4}
	TestnetPublic  = KeyVersion{0x04, 0x35, 0x87, 0xcf}
	TestnetPrivate = KeyVersion{0x04, 0x35, 0x83, 0x94}
)

// IsPrivate returns true if the version is for a private key
func (kv KeyVersion) IsPrivate() bool {
	switch kv {
	case MainnetPrivate, TestnetPrivate:
		return true
	}
	return false
}

func (kv KeyVersion) ToPublic() KeyVersion {
	switch kv {
	case MainnetPrivate:
		return MainnetPublic
	case TestnetPrivate:
		return TestnetPublic
	}
	return kv
}
