// Package ident models identifiers that are assigned by a store on first
// save and absent before that.
package ident

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/dvdonadelli/food-challenge/domain/failure"
)

// ID is either unassigned (the zero value) or an assigned store key.
type ID struct {
	value    int64
	assigned bool
}

// New returns an assigned ID.
func New(value int64) ID {
	return ID{value: value, assigned: true}
}

// FromPtr returns an assigned ID for a non-nil pointer, unassigned otherwise.
func FromPtr(value *int64) ID {
	if value == nil {
		return ID{}
	}
	return New(*value)
}

// Parse parses a decimal key. Malformed input is an invalid parameter.
func Parse(raw string) (ID, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return ID{}, failure.Wrap(failure.ErrInvalidParameter, "invalid id: %s", raw)
	}
	return New(v), nil
}

// Value returns the key and whether it is assigned.
func (id ID) Value() (int64, bool) {
	return id.value, id.assigned
}

// IsAssigned reports whether the store has assigned this ID.
func (id ID) IsAssigned() bool {
	return id.assigned
}

// Int64 returns the key, or 0 when unassigned.
func (id ID) Int64() int64 {
	if !id.assigned {
		return 0
	}
	return id.value
}

// Ptr returns a pointer to the key, or nil when unassigned.
func (id ID) Ptr() *int64 {
	if !id.assigned {
		return nil
	}
	v := id.value
	return &v
}

func (id ID) String() string {
	if !id.assigned {
		return "<unassigned>"
	}
	return strconv.FormatInt(id.value, 10)
}

// MarshalJSON encodes an unassigned ID as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if !id.assigned {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(id.value, 10)), nil
}

// UnmarshalJSON accepts null or an integer.
func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*id = New(v)
	return nil
}
