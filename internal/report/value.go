package report

import (
	"math"
	"strconv"

	"github.com/invopop/jsonschema"

	"github.com/coral-mesh/fpgaprof/internal/profile"
)

// Value is a report metric. Degenerate groups (no cycles, no samples)
// produce NaN or Inf, which are written as JSON null.
type Value float64

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(v), 'f', -1, 64), nil
}

// Valid reports whether v is a finite number.
func (v Value) Valid() bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// String formats v with the shortest exact representation.
func (v Value) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

// JSONSchema describes Value as a nullable number.
func (Value) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "null"},
		},
	}
}

// fromFloat32 widens a document value without exposing float32 rounding
// noise, so "0.1" stays 0.1 rather than 0.10000000149011612.
func fromFloat32(f profile.Float32) Value {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return Value(f)
	}
	return Value(v)
}

func valuePtr(f float64) *Value {
	v := Value(f)
	return &v
}
