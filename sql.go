package rsaddr

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
)

// NullAccount represents an account column that may be NULL, such as the
// recipient of a transaction type that has none.
type NullAccount struct {
	Account Account
	Valid   bool
}

// Compile-time interface checks for NullAccount
var (
	_ driver.Valuer            = NullAccount{}
	_ sql.Scanner              = (*NullAccount)(nil)
	_ json.Marshaler           = NullAccount{}
	_ json.Unmarshaler         = (*NullAccount)(nil)
	_ encoding.TextMarshaler   = NullAccount{}
	_ encoding.TextUnmarshaler = (*NullAccount)(nil)
)

// NullAccountFrom returns a valid NullAccount holding a.
func NullAccountFrom(a Account) NullAccount {
	return NullAccount{Account: a, Valid: true}
}

// Ptr returns nil for a NULL account.
func (n NullAccount) Ptr() *Account {
	if !n.Valid {
		return nil
	}
	a := n.Account
	return &a
}

// Value implements the driver.Valuer interface.
func (n NullAccount) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Account.Value()
}

// Scan implements the sql.Scanner interface. On error the receiver is left
// NULL.
func (n *NullAccount) Scan(src interface{}) error {
	n.Account, n.Valid = Nil, false
	if src == nil {
		return nil
	}
	var a Account
	if err := a.Scan(src); err != nil {
		return err
	}
	n.Account, n.Valid = a, true
	return nil
}

// MarshalJSON writes null or the account in DefaultFormat.
func (n NullAccount) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Account.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullAccount) UnmarshalJSON(b []byte) error {
	n.Account, n.Valid = Nil, false
	if string(b) == "null" {
		return nil
	}
	var a Account
	if err := a.UnmarshalJSON(b); err != nil {
		return err
	}
	n.Account, n.Valid = a, true
	return nil
}

// MarshalText implements encoding.TextMarshaler. NULL is the empty string.
func (n NullAccount) MarshalText() ([]byte, error) {
	if !n.Valid {
		return []byte{}, nil
	}
	return n.Account.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NullAccount) UnmarshalText(b []byte) error {
	n.Account, n.Valid = Nil, false
	if len(b) == 0 {
		return nil
	}
	var a Account
	if err := a.UnmarshalText(b); err != nil {
		return err
	}
	n.Account, n.Valid = a, true
	return nil
}
