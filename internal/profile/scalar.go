package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// The profiler writes every number, boolean and enum as a JSON string
// ("42", "true", "read"). The scalar types below decode such strings through
// decodeString and marshal back to the same quoted form.

// Uint32 is an unsigned 32-bit integer encoded as a JSON string.
type Uint32 uint32

// Uint64 is an unsigned 64-bit integer encoded as a JSON string.
type Uint64 uint64

// Int32 is a signed 32-bit integer encoded as a JSON string.
type Int32 int32

// Float32 is a single precision float encoded as a JSON string.
type Float32 float32

// Bool is a boolean encoded as the JSON string "true" or "false".
type Bool bool

// OperationType is the direction of a memory or channel interaction.
type OperationType string

const (
	OperationRead  OperationType = "read"
	OperationWrite OperationType = "write"
)

func (v *Uint32) UnmarshalJSON(data []byte) error {
	n, err := decodeString(data, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 32)
	})
	*v = Uint32(n)
	return err
}

func (v Uint32) MarshalJSON() ([]byte, error) {
	return encodeString(strconv.FormatUint(uint64(v), 10))
}

func (v *Uint64) UnmarshalJSON(data []byte) error {
	n, err := decodeString(data, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
	*v = Uint64(n)
	return err
}

func (v Uint64) MarshalJSON() ([]byte, error) {
	return encodeString(strconv.FormatUint(uint64(v), 10))
}

func (v *Int32) UnmarshalJSON(data []byte) error {
	n, err := decodeString(data, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 32)
	})
	*v = Int32(n)
	return err
}

func (v Int32) MarshalJSON() ([]byte, error) {
	return encodeString(strconv.FormatInt(int64(v), 10))
}

func (v *Float32) UnmarshalJSON(data []byte) error {
	f, err := decodeString(data, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 32)
	})
	*v = Float32(f)
	return err
}

func (v Float32) MarshalJSON() ([]byte, error) {
	return encodeString(strconv.FormatFloat(float64(v), 'g', -1, 32))
}

func (v *Bool) UnmarshalJSON(data []byte) error {
	b, err := decodeString(data, parseBool)
	*v = Bool(b)
	return err
}

func (v Bool) MarshalJSON() ([]byte, error) {
	return encodeString(strconv.FormatBool(bool(v)))
}

func (v *OperationType) UnmarshalJSON(data []byte) error {
	op, err := decodeString(data, func(s string) (OperationType, error) {
		switch op := OperationType(s); op {
		case OperationRead, OperationWrite:
			return op, nil
		}
		return "", errors.New("expected read or write")
	})
	*v = op
	return err
}

func (v OperationType) MarshalJSON() ([]byte, error) {
	return encodeString(string(v))
}

// parseBool only accepts the two literals the profiler emits. strconv.ParseBool
// would also take "1", "T" and friends.
func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.New("expected true or false")
}

// decodeString is the single decode rule for string-encoded leaves: the JSON
// value must be a string and parse must accept its contents.
func decodeString[T any](data []byte, parse func(string) (T, error)) (T, error) {
	var zero T
	if kindOf(data) != kindString {
		return zero, fmt.Errorf("expected string-encoded value, got %s", kindOf(data))
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return zero, err
	}
	v, err := parse(s)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return zero, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return v, nil
}

func encodeString(s string) ([]byte, error) {
	return json.Marshal(s)
}

// jsonKind classifies a raw JSON value by its first byte.
type jsonKind string

const (
	kindString  jsonKind = "string"
	kindArray   jsonKind = "array"
	kindObject  jsonKind = "object"
	kindBoolean jsonKind = "boolean"
	kindNull    jsonKind = "null"
	kindNumber  jsonKind = "number"
	kindEmpty   jsonKind = "nothing"
)

func kindOf(data []byte) jsonKind {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			return kindString
		case '[':
			return kindArray
		case '{':
			return kindObject
		case 't', 'f':
			return kindBoolean
		case 'n':
			return kindNull
		default:
			return kindNumber
		}
	}
	return kindEmpty
}
