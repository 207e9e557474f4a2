// Package base58 provides Base58 encoding and decoding for uint64 account
// ids. It uses the Bitcoin alphabet which excludes 0, O, I, and l.
package base58

import (
	"errors"
	"math"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// maxLen is the length of the encoding of math.MaxUint64.
const maxLen = 11

var decode [128]int8

func init() {
	for i := range decode {
		decode[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decode[alphabet[i]] = int8(i)
	}
}

var (
	// ErrInvalidBase58 is returned when decoding a string with invalid
	// Base58 characters.
	ErrInvalidBase58 = errors.New("base58: invalid character")

	// ErrOverflow is returned when the decoded value exceeds 64 bits.
	ErrOverflow = errors.New("base58: value overflows uint64")
)

// Encode returns the Base58 encoding of the given uint64.
func Encode(id uint64) string {
	if id == 0 {
		return "1"
	}
	var buf [maxLen]byte
	i := maxLen - 1
	for id > 0 {
		buf[i] = alphabet[id%58]
		id /= 58
		i--
	}
	return string(buf[i+1:])
}

// Decode parses a Base58-encoded string and returns the uint64 value.
func Decode(s string) (uint64, error) {
	if len(s) == 0 || len(s) > maxLen {
		return 0, ErrInvalidBase58
	}
	var id uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || decode[c] < 0 {
			return 0, ErrInvalidBase58
		}
		v := uint64(decode[c])
		if id > (math.MaxUint64-v)/58 {
			return 0, ErrOverflow
		}
		id = id*58 + v
	}
	return id, nil
}
