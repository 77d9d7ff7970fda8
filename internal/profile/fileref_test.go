package profile

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func col(n Uint32) *Uint32 { return &n }

func TestFileReference_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b FileReference
		want int
	}{
		{
			name: "equal",
			a:    FileReference{Filename: "a.cpp", Line: 3},
			b:    FileReference{Filename: "a.cpp", Line: 3},
			want: 0,
		},
		{
			name: "path first",
			a:    FileReference{Filename: "a.cpp", Line: 90},
			b:    FileReference{Filename: "b.cpp", Line: 1},
			want: -1,
		},
		{
			name: "path components not bytes",
			a:    FileReference{Filename: "src/b.cpp"},
			b:    FileReference{Filename: "src.cpp"},
			want: -1,
		},
		{
			name: "redundant separators",
			a:    FileReference{Filename: "src//k.cpp"},
			b:    FileReference{Filename: "src/k.cpp"},
			want: 0,
		},
		{
			name: "absolute before relative",
			a:    FileReference{Filename: "/opt/k.cpp"},
			b:    FileReference{Filename: "k.cpp"},
			want: -1,
		},
		{
			name: "parent dir before name",
			a:    FileReference{Filename: "../k.cpp"},
			b:    FileReference{Filename: "a/k.cpp"},
			want: -1,
		},
		{
			name: "line",
			a:    FileReference{Filename: "a.cpp", Line: 10},
			b:    FileReference{Filename: "a.cpp", Line: 9},
			want: 1,
		},
		{
			name: "missing column first",
			a:    FileReference{Filename: "a.cpp", Line: 1},
			b:    FileReference{Filename: "a.cpp", Line: 1, Column: col(0)},
			want: -1,
		},
		{
			name: "column",
			a:    FileReference{Filename: "a.cpp", Line: 1, Column: col(4)},
			b:    FileReference{Filename: "a.cpp", Line: 1, Column: col(2)},
			want: 1,
		},
		{
			name: "no callsite before callsite",
			a:    FileReference{Filename: "a.cpp", Line: 1},
			b: FileReference{Filename: "a.cpp", Line: 1, Callsite: List[FileReference]{
				{Filename: "main.cpp", Line: 1},
			}},
			want: -1,
		},
		{
			name: "callsite contents",
			a: FileReference{Filename: "a.cpp", Line: 1, Callsite: List[FileReference]{
				{Filename: "main.cpp", Line: 8},
			}},
			b: FileReference{Filename: "a.cpp", Line: 1, Callsite: List[FileReference]{
				{Filename: "main.cpp", Line: 7},
			}},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a), "ordering must be antisymmetric")
		})
	}
}

func TestCompareChains(t *testing.T) {
	a := FileReference{Filename: "a.cpp", Line: 1}
	b := FileReference{Filename: "b.cpp", Line: 1}

	chains := [][]FileReference{{b}, {a, b}, {a}, nil, {a, a}}
	slices.SortFunc(chains, CompareChains)

	assert.Equal(t, [][]FileReference{nil, {a}, {a, a}, {a, b}, {b}}, chains)
}

func TestFileReference_String(t *testing.T) {
	assert.Equal(t, "k.cpp (line: 4)", FileReference{Filename: "k.cpp", Line: 4}.String())
	assert.Equal(t, "k.cpp (line: 4, column: 2)", FileReference{Filename: "k.cpp", Line: 4, Column: col(2)}.String())
}
