package profile

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// FileReference attributes hardware to a source location. Callsite holds the
// chain of locations the code was inlined from, most specific first.
type FileReference struct {
	Filename string              `json:"filename"`
	Line     Uint32              `json:"line"`
	Column   *Uint32             `json:"column_num,omitempty"`
	Callsite List[FileReference] `json:"callsite,omitempty"`
}

func (f *FileReference) UnmarshalJSON(data []byte) error {
	type plain FileReference
	return decodeObject(data, (*plain)(f))
}

// String renders the location without its callsite chain.
func (f FileReference) String() string {
	if f.Column != nil {
		return fmt.Sprintf("%s (line: %d, column: %d)", f.Filename, f.Line, *f.Column)
	}
	return fmt.Sprintf("%s (line: %d)", f.Filename, f.Line)
}

// Compare orders references by path, line, column and then callsite chain.
// Paths compare component by component, so "a/b" and "a//b/" are equal and
// "a/b" sorts before "a.b". A missing column sorts before any column.
func (f FileReference) Compare(o FileReference) int {
	if c := comparePaths(f.Filename, o.Filename); c != 0 {
		return c
	}
	if c := cmp.Compare(f.Line, o.Line); c != 0 {
		return c
	}
	if c := compareColumns(f.Column, o.Column); c != 0 {
		return c
	}
	return CompareChains(f.Callsite, o.Callsite)
}

// CompareChains orders two attribution chains lexicographically, a chain
// that is a prefix of the other sorting first.
func CompareChains(a, b []FileReference) int {
	return slices.CompareFunc(a, b, FileReference.Compare)
}

func compareColumns(a, b *Uint32) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

type componentKind int

const (
	rootDir componentKind = iota
	curDir
	parentDir
	normal
)

type pathComponent struct {
	kind componentKind
	name string
}

func compareComponents(a, b pathComponent) int {
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	return strings.Compare(a.name, b.name)
}

func comparePaths(a, b string) int {
	if a == b {
		return 0
	}
	return slices.CompareFunc(splitPath(a), splitPath(b), compareComponents)
}

// splitPath breaks a slash separated path into components. Repeated and
// trailing separators are dropped, as are "." segments except a leading one.
func splitPath(p string) []pathComponent {
	var out []pathComponent
	if strings.HasPrefix(p, "/") {
		out = append(out, pathComponent{kind: rootDir})
	} else if p == "." || strings.HasPrefix(p, "./") {
		out = append(out, pathComponent{kind: curDir})
	}
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			out = append(out, pathComponent{kind: parentDir})
		default:
			out = append(out, pathComponent{kind: normal, name: seg})
		}
	}
	return out
}
