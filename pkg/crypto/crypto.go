package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"math/big"
)

func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

const hexAlphabet = "0123456789abcdef"

// GenerateRandomHex returns a random lowercase hex string of n characters.
func GenerateRandomHex(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = hexAlphabet[RandIntn(len(hexAlphabet))]
	}
	return string(b)
}

func SHA512(b []byte) string {
	hashed := sha512.Sum512(b)
	return hex.EncodeToString(hashed[:])
}

// Equal compares two strings in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}
