package enumerable

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maruel/natural"
)

// canonicalJSON sorts map keys so equal composite values always produce the same key.
var canonicalJSON = jsoniter.Config{SortMapKeys: true, EscapeHTML: false}.Froze()

// compositeKey keeps canonicalized composite values apart from plain strings with the same text.
type compositeKey string

// Compare is the default comparator: a partial order over numbers of any kind, strings, bools and time.Time.
// nil sorts before everything else. Values which cannot be ordered against each other compare as equal.
func Compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}

		return 0
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)

	switch {
	case isInt(ra) && isInt(rb):
		return cmp.Compare(ra.Int(), rb.Int())
	case isUint(ra) && isUint(rb):
		return cmp.Compare(ra.Uint(), rb.Uint())
	case isNumber(ra) && isNumber(rb):
		return cmp.Compare(toFloat(ra), toFloat(rb))
	case ra.Kind() == reflect.String && rb.Kind() == reflect.String:
		return strings.Compare(ra.String(), rb.String())
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		return compareBool(ra.Bool(), rb.Bool())
	default:
		return 0
	}
}

// NaturalCompare orders strings in natural sort order ("item2" before "item10") and falls back to Compare.
func NaturalCompare(a, b any) int {
	sa, okA := a.(string)
	sb, okB := b.(string)

	if !okA || !okB {
		return Compare(a, b)
	}

	switch {
	case sa == sb:
		return 0
	case natural.Less(sa, sb):
		return -1
	default:
		return 1
	}
}

// IsHashable reports whether v can be used as a map key without panicking.
func IsHashable(v any) bool {
	if v == nil {
		return true
	}

	return hashableValue(reflect.ValueOf(v))
}

func hashableValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	case reflect.Interface:
		if rv.IsNil() {
			return true
		}

		return hashableValue(rv.Elem())
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !hashableValue(rv.Field(i)) {
				return false
			}
		}

		return true
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !hashableValue(rv.Index(i)) {
				return false
			}
		}

		return true
	default:
		return true
	}
}

// Same reports whether a and b are the same element.
// Hashable values are compared with ==, which is identity for pointers.
// Slices, maps and funcs are compared by reference; equality of their contents is not assumed.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	if IsHashable(a) && IsHashable(b) {
		return a == b
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)

	switch ra.Kind() {
	case reflect.Slice:
		return ra.Len() == rb.Len() && ra.Pointer() == rb.Pointer()
	case reflect.Map, reflect.Func:
		return ra.Pointer() == rb.Pointer()
	default:
		// plain values holding references have no identity of their own
		return reflect.DeepEqual(a, b)
	}
}

// CanonicalKey returns a map key identifying v by value.
// Hashable values are their own key; composite values are normalized to a canonical JSON form.
func CanonicalKey(v any) any {
	if IsHashable(v) {
		return v
	}

	data, err := canonicalJSON.Marshal(v)
	if err != nil {
		return compositeKey(fmt.Sprintf("%#v", v))
	}

	return compositeKey(data)
}

// Snapshot serializes v into a comparable form capturing its current contents.
// Pointers are followed, so an in-place mutation of the pointee changes the snapshot.
func Snapshot(v any) any {
	data, err := canonicalJSON.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}

	return string(data)
}

func isInt(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUint(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isNumber(rv reflect.Value) bool {
	return isInt(rv) || isUint(rv) || rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64
}

func toFloat(rv reflect.Value) float64 {
	switch {
	case isInt(rv):
		return float64(rv.Int())
	case isUint(rv):
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
