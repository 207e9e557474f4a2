// Package rsaddr provides the Account type, a 64-bit Burst/Signum account id
// that renders as a Reed-Solomon address and round-trips through text, JSON,
// gob and SQL.
package rsaddr

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/base64"
	"encoding/binary"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/paraglidehq/rsaddr/base58"
	"github.com/paraglidehq/rsaddr/reedsolomon"
)

// Compile-time interface checks for Account
var (
	_ fmt.Stringer               = Account(0)
	_ driver.Valuer              = Account(0)
	_ sql.Scanner                = (*Account)(nil)
	_ encoding.TextMarshaler     = Account(0)
	_ encoding.TextUnmarshaler   = (*Account)(nil)
	_ encoding.BinaryMarshaler   = Account(0)
	_ encoding.BinaryUnmarshaler = (*Account)(nil)
	_ json.Marshaler             = Account(0)
	_ json.Unmarshaler           = (*Account)(nil)
	_ gob.GobEncoder             = Account(0)
	_ gob.GobDecoder             = (*Account)(nil)
)

type Format string

const (
	FormatReedSolomon Format = "rs"
	FormatDecimal     Format = "decimal"
	FormatHex         Format = "hex"
	FormatBase58      Format = "base58"
	FormatBase64      Format = "base64"
)

var errEmpty = errors.New("rsaddr: empty string")

// Account is a 64-bit account id.
type Account uint64

var Nil Account = 0

func (a Account) Uint64() uint64 {
	return uint64(a)
}

// Int64 returns the two's-complement view of the id, as stored in the
// signed BIGINT columns of the node database.
func (a Account) Int64() int64 {
	return int64(a)
}

func (a Account) IsNil() bool {
	return a == Nil
}

// Bytes returns the account as an 8-byte big-endian slice.
func (a Account) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(a))
	return b
}

// Address returns the Reed-Solomon address without a prefix.
func (a Account) Address() string {
	return reedsolomon.Encode(uint64(a))
}

func (a Account) String() string {
	return a.Format(DefaultFormat)
}

func (a Account) Format(f Format) string {
	switch f {
	case FormatDecimal:
		return strconv.FormatUint(uint64(a), 10)
	case FormatHex:
		return strconv.FormatUint(uint64(a), 16)
	case FormatBase58:
		return base58.Encode(uint64(a))
	case FormatBase64:
		return base64.StdEncoding.EncodeToString(a.Bytes())
	default:
		return reedsolomon.Format(uint64(a), DefaultPrefix)
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Account) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler. Bare JSON numbers are read as
// decimal ids.
func (a *Account) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = Nil
		return nil
	}
	if len(b) > 0 && b[0] != '"' {
		n, err := strconv.ParseUint(string(b), 10, 64)
		if err != nil {
			return errors.New("rsaddr: invalid JSON value")
		}
		*a = Account(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("rsaddr: invalid JSON string")
	}
	return a.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer. Ids are stored as signed 64-bit integers.
func (a Account) Value() (driver.Value, error) {
	return int64(a), nil
}

// Scan implements sql.Scanner. Strings are parsed with ParseAny.
func (a *Account) Scan(src interface{}) error {
	if src == nil {
		*a = Nil
		return nil
	}
	switch v := src.(type) {
	case Account:
		*a = v
		return nil
	case int64:
		*a = Account(v)
		return nil
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	default:
		return fmt.Errorf("rsaddr: cannot scan %T", src)
	}
}

func (a *Account) scanString(s string) error {
	parsed, err := ParseAny(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Parse parses a string into an Account using DefaultFormat.
func Parse(s string) (Account, error) {
	switch DefaultFormat {
	case FormatDecimal:
		return ParseDecimal(s)
	case FormatHex:
		return ParseHex(s)
	case FormatBase58:
		return ParseBase58(s)
	case FormatBase64:
		return ParseBase64(s)
	default:
		return ParseReedSolomon(s)
	}
}

// ParseReedSolomon parses a Reed-Solomon address. One prefix, either
// DefaultPrefix or one known to the reedsolomon package, is accepted but not
// required.
func ParseReedSolomon(s string) (Account, error) {
	if len(s) == 0 {
		return Nil, errEmpty
	}
	n, err := reedsolomon.Decode(s, DefaultPrefix)
	if err != nil {
		return Nil, fmt.Errorf("rsaddr: invalid address %q: %w", s, err)
	}
	return Account(n), nil
}

// ParseDecimal parses an unsigned decimal string into an Account.
func ParseDecimal(s string) (Account, error) {
	if len(s) == 0 {
		return Nil, errEmpty
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Nil, fmt.Errorf("rsaddr: invalid decimal: %w", err)
	}
	return Account(n), nil
}

// ParseSignedDecimal parses the signed representation used by the node
// database, e.g. "-378522510406604791".
func ParseSignedDecimal(s string) (Account, error) {
	if len(s) == 0 {
		return Nil, errEmpty
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Nil, fmt.Errorf("rsaddr: invalid signed decimal: %w", err)
	}
	return Account(n), nil
}

// ParseHex parses a hex string of up to 16 digits into an Account.
func ParseHex(s string) (Account, error) {
	if len(s) == 0 {
		return Nil, errEmpty
	}
	if len(s) > 16 {
		return Nil, errors.New("rsaddr: hex string must be 1-16 characters")
	}
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return Nil, errors.New("rsaddr: invalid hex character")
	}
	return Account(n), nil
}

// ParseBase58 parses a base58-encoded string into an Account.
func ParseBase58(s string) (Account, error) {
	if len(s) == 0 {
		return Nil, errEmpty
	}
	n, err := base58.Decode(s)
	if err != nil {
		return Nil, err
	}
	return Account(n), nil
}

// ParseBase64 parses a base64-encoded string into an Account.
func ParseBase64(s string) (Account, error) {
	if len(s) == 0 {
		return Nil, errEmpty
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Nil, fmt.Errorf("rsaddr: invalid base64: %w", err)
	}
	return FromBytes(b)
}

// ParseAny accepts what a user may type into a search box: a decimal id,
// a signed decimal id, or a Reed-Solomon address with or without prefix.
func ParseAny(s string) (Account, error) {
	if len(s) == 0 {
		return Nil, errEmpty
	}
	if isDecimal(s) {
		return ParseDecimal(s)
	}
	if s[0] == '-' && isDecimal(s[1:]) {
		return ParseSignedDecimal(s)
	}
	return ParseReedSolomon(s)
}

// Parse parses a string into the Account receiver.
func (a *Account) Parse(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func isDecimal(s string) bool {
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

// FromString returns an Account parsed from the input string.
// Alias for Parse.
func FromString(s string) (Account, error) {
	return Parse(s)
}

// FromStringOrNil returns an Account parsed from the input string.
// Returns Nil on error.
func FromStringOrNil(s string) Account {
	a, err := Parse(s)
	if err != nil {
		return Nil
	}
	return a
}

// FromBytes returns an Account from an 8-byte big-endian slice.
func FromBytes(b []byte) (Account, error) {
	if len(b) != 8 {
		return Nil, fmt.Errorf("rsaddr: account must be exactly 8 bytes, got %d", len(b))
	}
	return Account(binary.BigEndian.Uint64(b)), nil
}

// FromBytesOrNil returns an Account from an 8-byte slice.
// Returns Nil on error.
func FromBytesOrNil(b []byte) Account {
	a, err := FromBytes(b)
	if err != nil {
		return Nil
	}
	return a
}

// FromInt64 returns an Account from its signed database representation.
func FromInt64(n int64) Account {
	return Account(n)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a Account) MarshalBinary() ([]byte, error) {
	return a.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *Account) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// GobEncode implements gob.GobEncoder.
func (a Account) GobEncode() ([]byte, error) {
	return a.MarshalBinary()
}

// GobDecode implements gob.GobDecoder.
func (a *Account) GobDecode(data []byte) error {
	return a.UnmarshalBinary(data)
}

// Must panics if err is not nil
func Must(a Account, err error) Account {
	if err != nil {
		panic(err)
	}
	return a
}
