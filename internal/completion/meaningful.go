package completion

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/seabook/internal/models"
)

// Meaningful reports whether a raw field value counts as user input: a
// non-blank string, true, any number, or a non-empty list or object.
// false, "" and nil do not count.
func Meaningful(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case bool:
		return t
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case models.SectionData:
		return len(t) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return Meaningful(rv.Elem().Interface())
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// AnyMeaningful reports whether at least one field of d is meaningful.
func AnyMeaningful(d models.SectionData) bool {
	for _, v := range d {
		if Meaningful(v) {
			return true
		}
	}
	return false
}

func present(d models.SectionData, keys ...string) bool {
	for _, k := range keys {
		if !Meaningful(d[k]) {
			return false
		}
	}
	return true
}

// set reports whether every key holds an explicit boolean, true or false.
func set(d models.SectionData, keys ...string) bool {
	for _, k := range keys {
		if _, ok := d.Bool(k); !ok {
			return false
		}
	}
	return true
}

func isTrue(d models.SectionData, key string) bool {
	b, ok := d.Bool(key)
	return ok && b
}
