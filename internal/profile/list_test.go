package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

func TestList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    List[Uint64]
		wantErr string
	}{
		{name: "array", input: `["1", "2", "3"]`, want: List[Uint64]{1, 2, 3}},
		{name: "empty array", input: `[]`, want: List[Uint64]{}},
		{name: "empty string sentinel", input: `""`, want: List[Uint64]{}},
		{name: "non-empty string", input: `"1,2"`, wantErr: "non-empty string instead of array not supported"},
		{name: "object", input: `{}`, wantErr: "expected array or empty string, got object"},
		{name: "number", input: `7`, wantErr: "expected array or empty string, got number"},
		{name: "bad element", input: `["1", "x"]`, wantErr: `schema error at $[1]: invalid value "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got List[Uint64]
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type decodeTarget struct {
	Name     string       `json:"name"`
	Count    Uint32       `json:"count"`
	Optional List[Uint32] `json:"optional,omitempty"`
	Ignored  string       `json:"-"`
}

func (d *decodeTarget) UnmarshalJSON(data []byte) error {
	type plain decodeTarget
	return decodeObject(data, (*plain)(d))
}

func TestDecodeObject(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		var got decodeTarget
		require.NoError(t, json.Unmarshal([]byte(`{"name":"n","count":"2","optional":["7"],"extra":1}`), &got))
		assert.Equal(t, "n", got.Name)
		assert.Equal(t, Uint32(2), got.Count)
		assert.Equal(t, List[Uint32]{7}, got.Optional)
	})

	t.Run("optional field absent", func(t *testing.T) {
		var got decodeTarget
		require.NoError(t, json.Unmarshal([]byte(`{"name":"n","count":"2"}`), &got))
		assert.Empty(t, got.Optional)
	})

	t.Run("required field absent", func(t *testing.T) {
		var got decodeTarget
		err := json.Unmarshal([]byte(`{"name":"n"}`), &got)
		require.ErrorIs(t, err, apperrors.ErrSchema)
		assert.EqualError(t, err, "schema error at $.count: missing required field")
	})

	t.Run("not an object", func(t *testing.T) {
		var got decodeTarget
		err := json.Unmarshal([]byte(`["n"]`), &got)
		assert.EqualError(t, err, "expected object, got array")
	})

	t.Run("wrong field type", func(t *testing.T) {
		var got decodeTarget
		err := json.Unmarshal([]byte(`{"name":"n","count":2}`), &got)
		require.ErrorIs(t, err, apperrors.ErrSchema)
		assert.Contains(t, err.Error(), "$.count: expected string-encoded value")
	})
}
