package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
)

var errNonEmptySentinel = errors.New("non-empty string instead of array not supported")

// List is a collection that the profiler writes either as a JSON array or,
// when empty, as the empty string "".
type List[T any] []T

func (l *List[T]) UnmarshalJSON(data []byte) error {
	items, err := decodeList(data, func(raw []byte) (T, error) {
		var v T
		err := json.Unmarshal(raw, &v)
		return v, err
	})
	*l = items
	return err
}

// decodeList decodes an array or the "" sentinel, locating element errors by
// their index.
func decodeList[T any](data []byte, decode func([]byte) (T, error)) ([]T, error) {
	switch k := kindOf(data); k {
	case kindString:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if s != "" {
			return nil, errNonEmptySentinel
		}
		return []T{}, nil
	case kindArray:
	default:
		return nil, fmt.Errorf("expected array or empty string, got %s", k)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		item, err := decode(raw)
		if err != nil {
			return nil, apperrors.SchemaAt(fmt.Sprintf("[%d]", i), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeObject fills the struct pointed to by dst from a JSON object. Fields
// are matched by their json tag. A field tagged omitempty may be absent, any
// other field is required. Keys without a matching field are ignored.
func decodeObject(data []byte, dst any) error {
	if k := kindOf(data); k != kindObject {
		return fmt.Errorf("expected object, got %s", k)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name, optional, ok := jsonField(sf)
		if !ok {
			continue
		}
		raw, present := fields[name]
		if !present {
			if optional {
				continue
			}
			return apperrors.SchemaAt("."+name, errors.New("missing required field"))
		}
		if err := json.Unmarshal(raw, rv.Field(i).Addr().Interface()); err != nil {
			return apperrors.SchemaAt("."+name, err)
		}
	}
	return nil
}

func jsonField(sf reflect.StructField) (name string, optional bool, ok bool) {
	if !sf.IsExported() {
		return "", false, false
	}
	tag, hasTag := sf.Tag.Lookup("json")
	if !hasTag {
		return "", false, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "-" || name == "" {
		return "", false, false
	}
	return name, strings.Contains(opts, "omitempty"), true
}

// unionTag reads the discriminator of a tagged union object.
func unionTag(data []byte, field string) (string, error) {
	if k := kindOf(data); k != kindObject {
		return "", fmt.Errorf("expected object, got %s", k)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", err
	}
	raw, ok := fields[field]
	if !ok {
		return "", apperrors.SchemaAt("."+field, errors.New("missing union tag"))
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", apperrors.SchemaAt("."+field, err)
	}
	return tag, nil
}

// decodeVariant decodes data into the concrete variant v and returns it as
// the union type U.
func decodeVariant[U any](data []byte, v U) (U, error) {
	if err := json.Unmarshal(data, v); err != nil {
		var zero U
		return zero, err
	}
	return v, nil
}

func unknownTag(field, tag string) error {
	return apperrors.SchemaAt("."+field, fmt.Errorf("unknown variant %q", tag))
}
