// Package reedsolomon implements the Burst/Signum Reed-Solomon account
// address codec. A 64-bit account id is written as 13 base-32 digits,
// protected by 4 check symbols computed over GF(32), and rendered with the
// alphabet 23456789ABCDEFGHJKLMNPQRSTUVWXYZ as XXXX-XXXX-XXXX-XXXXX.
//
// The code is systematic with minimum distance 5, so any single mistyped
// character and any adjacent transposition is rejected on decode.
package reedsolomon

import (
	"errors"
	"slices"
	"strings"
)

const (
	dataLen     = 13
	checkLen    = 4
	codewordLen = dataLen + checkLen

	// groupedLen is the length of an address with separators.
	groupedLen = codewordLen + 3
)

var (
	// ErrOutOfRange is returned when a value needs more than 13 base-32
	// digits, or when a decoded value does not fit the requested type.
	ErrOutOfRange = errors.New("reedsolomon: value out of range")

	// ErrMalformedAddress is returned when an address has the wrong length
	// or misplaced separators.
	ErrMalformedAddress = errors.New("reedsolomon: malformed address")

	// ErrInvalidCharacter is returned when an address contains a character
	// outside the alphabet.
	ErrInvalidCharacter = errors.New("reedsolomon: invalid character")

	// ErrChecksumMismatch is returned when the check symbols do not match
	// the data symbols.
	ErrChecksumMismatch = errors.New("reedsolomon: checksum mismatch")

	// ErrMalformedNumber is returned by EncodeDecimal for input that is
	// not a decimal integer.
	ErrMalformedNumber = errors.New("reedsolomon: malformed number")
)

// Prefixes lists the literal scheme prefixes stripped by Decode. Matching
// is case-insensitive. Set before use if a network uses another prefix.
var Prefixes = []string{"BURST-", "S-", "TS-"}

const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

var decode [128]int8

// GF(32) generated by x^5 + x^2 + 1. gexp[31] wraps to 1.
var gexp = [32]uint8{
	1, 2, 4, 8, 16, 5, 10, 20, 13, 26, 17, 7, 14, 28, 29, 31,
	27, 19, 3, 6, 12, 24, 21, 15, 30, 25, 23, 11, 22, 9, 18, 1,
}

var glog = [32]uint8{
	0, 0, 1, 18, 2, 5, 19, 11, 3, 29, 6, 27, 20, 8, 12, 23,
	4, 10, 30, 17, 7, 22, 28, 26, 21, 25, 9, 16, 13, 14, 24, 15,
}

// displayOrder maps each display position to its codeword index. The check
// symbols 13..16 land in the third group.
var displayOrder = [codewordLen]uint8{3, 2, 1, 0, 7, 6, 5, 4, 13, 14, 15, 16, 12, 8, 9, 10, 11}

func init() {
	for i := range decode {
		decode[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decode[alphabet[i]] = int8(i)
	}
}

type codeword [codewordLen]uint8

func gmult(x, y uint8) uint8 {
	if x == 0 || y == 0 {
		return 0
	}
	return gexp[(int(glog[x])+int(glog[y]))%31]
}

// checksum returns the remainder of the data polynomial divided by the
// generator polynomial, feeding the most significant digit first.
func checksum(cw *codeword) [checkLen]uint8 {
	var p [checkLen]uint8
	for i := dataLen - 1; i >= 0; i-- {
		fb := cw[i] ^ p[3]
		p[3] = p[2] ^ gmult(30, fb)
		p[2] = p[1] ^ gmult(6, fb)
		p[1] = p[0] ^ gmult(9, fb)
		p[0] = gmult(17, fb)
	}
	return p
}

func (cw *codeword) seal() {
	p := checksum(cw)
	copy(cw[dataLen:], p[:])
}

func (cw *codeword) String() string {
	var buf [groupedLen]byte
	j := 0
	for i, idx := range displayOrder {
		buf[j] = alphabet[cw[idx]]
		j++
		if i&3 == 3 && i < 12 {
			buf[j] = '-'
			j++
		}
	}
	return string(buf[:])
}

// Encode returns the address of id without any prefix.
func Encode(id uint64) string {
	var cw codeword
	for i := 0; i < dataLen; i++ {
		cw[i] = uint8(id & 31)
		id >>= 5
	}
	cw.seal()
	return cw.String()
}

// Format returns prefix followed by the address of id.
func Format(id uint64, prefix string) string {
	return prefix + Encode(id)
}

// EncodeDecimal encodes a non-negative decimal integer of arbitrary length.
// Values of 32^13 and above, or negative values, return ErrOutOfRange.
// A minus sign in front of zero is accepted.
func EncodeDecimal(s string) (string, error) {
	if strings.HasPrefix(s, "-") && isDigits(s[1:]) {
		if strings.Trim(s[1:], "0") != "" {
			return "", ErrOutOfRange
		}
		s = s[1:]
	}
	if !isDigits(s) {
		return "", ErrMalformedNumber
	}

	digits := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		digits[i] = s[i] - '0'
	}

	var cw codeword
	n := 0
	for len(digits) > 0 {
		q, r := divmod(digits, 10, 32)
		if n == dataLen {
			return "", ErrOutOfRange
		}
		cw[n] = r
		n++
		digits = q
	}
	cw.seal()
	return cw.String(), nil
}

// Decode parses an address, with or without separators, and returns the
// account id. At most one prefix is stripped: the first of extra that
// matches, else the first of Prefixes that matches.
func Decode(address string, extra ...string) (uint64, error) {
	cw, err := parse(address, extra)
	if err != nil {
		return 0, err
	}
	// The top digit carries bits 60..64; bit 64 does not fit.
	if cw[dataLen-1] >= 16 {
		return 0, ErrOutOfRange
	}
	var id uint64
	for i := dataLen - 1; i >= 0; i-- {
		id = id<<5 | uint64(cw[i])
	}
	return id, nil
}

// DecodeDecimal is like Decode but returns the value as a decimal string,
// covering values up to 32^13 - 1.
func DecodeDecimal(address string, extra ...string) (string, error) {
	cw, err := parse(address, extra)
	if err != nil {
		return "", err
	}

	digits := make([]uint8, dataLen)
	for i := range digits {
		digits[i] = cw[dataLen-1-i]
	}
	digits = trimZeros(digits)

	var out []byte
	for len(digits) > 0 {
		q, r := divmod(digits, 32, 10)
		out = append(out, '0'+r)
		digits = q
	}
	if len(out) == 0 {
		return "0", nil
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

// Valid reports whether address decodes to a uint64 account id.
func Valid(address string, extra ...string) bool {
	_, err := Decode(address, extra...)
	return err == nil
}

// StripPrefix removes one prefix from s, trying extra before Prefixes.
// Empty prefixes are ignored.
func StripPrefix(s string, extra ...string) string {
	for _, list := range [][]string{extra, Prefixes} {
		for _, p := range list {
			if p != "" && len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
				return s[len(p):]
			}
		}
	}
	return s
}

// parse checks the shape in characters, not bytes, so a stray non-ASCII
// rune is reported as an invalid character.
func parse(address string, extra []string) (*codeword, error) {
	s := []rune(StripPrefix(upperASCII(strings.TrimSpace(address)), extra...))

	switch {
	case slices.Contains(s, '-'):
		if len(s) != groupedLen || s[4] != '-' || s[9] != '-' || s[14] != '-' {
			return nil, ErrMalformedAddress
		}
		s = slices.Concat(s[:4], s[5:9], s[10:14], s[15:])
		if slices.Contains(s, '-') {
			return nil, ErrMalformedAddress
		}
	case len(s) != codewordLen:
		return nil, ErrMalformedAddress
	}

	var cw codeword
	for i, r := range s {
		if r >= 128 || decode[r] < 0 {
			return nil, ErrInvalidCharacter
		}
		cw[displayOrder[i]] = uint8(decode[r])
	}

	if checksum(&cw) != [checkLen]uint8(cw[dataLen:]) {
		return nil, ErrChecksumMismatch
	}
	return &cw, nil
}

// divmod divides the big-endian number in digits (base from) by to,
// returning the quotient in the same base without leading zeros.
func divmod(digits []uint8, from, to int) ([]uint8, uint8) {
	q := make([]uint8, 0, len(digits))
	rem := 0
	for _, d := range digits {
		rem = rem*from + int(d)
		if rem >= to || len(q) > 0 {
			q = append(q, uint8(rem/to))
			rem %= to
		}
	}
	return q, uint8(rem)
}

func trimZeros(digits []uint8) []uint8 {
	for len(digits) > 0 && digits[0] == 0 {
		digits = digits[1:]
	}
	return digits
}

// upperASCII upper-cases ASCII letters only, so that no other rune can fold
// into the alphabet.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
