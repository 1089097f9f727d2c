package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Flag is a tri-state boolean. FlagUnset means "not applicable to this
// caller" and must not be read as false.
type Flag uint8

const (
	FlagUnset Flag = iota
	FlagTrue
	FlagFalse
)

func FlagOf(v bool) Flag {
	if v {
		return FlagTrue
	}
	return FlagFalse
}

func (f Flag) IsSet() bool {
	return f == FlagTrue || f == FlagFalse
}

// Bool returns the value and whether it was set.
func (f Flag) Bool() (value bool, ok bool) {
	switch f {
	case FlagTrue:
		return true, true
	case FlagFalse:
		return false, true
	default:
		return false, false
	}
}

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	default:
		return "unset"
	}
}

func (f Flag) MarshalJSON() ([]byte, error) {
	switch f {
	case FlagTrue:
		return []byte("true"), nil
	case FlagFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = FlagUnset
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("flag: %w", err)
	}
	*f = FlagOf(v)
	return nil
}
