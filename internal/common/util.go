package common

import (
	"crypto/rand"
	"math/big"
)

// MakeRandDigitString generates a random string of n ASCII digits drawn from
// crypto/rand. Leading zeros are allowed, so the result is always exactly n
// characters long.
func MakeRandDigitString(n int) (string, error) {

	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}

	return string(digits), nil
}

// GenerateRandByteArray returns size random bytes. It panics if the system
// random source fails, which is unrecoverable anyway.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
