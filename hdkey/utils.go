package hdkey

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

func doubleSha256(in []byte) []byte {
	a := sha256.Sum256(in)
	a = sha256.Sum256(a[:])
	return a[:]
}

// ripemd160 + sha256
func rmd160sha256(in []byte) []byte {
	a := sha256.Sum256(in)
	rmd := ripemd160.New()
	rmd.Write(a[:])
	return rmd.Sum(nil)
}

func paddedAppend(size int, dst, src []byte) []byte {
	for i := len(src); i < size; i++ {
		dst = append(dst, 0)
	}
	return append(dst, src...)
}
