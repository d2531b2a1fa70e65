package indexer

import (
	"reflect"
)

// Getter is implemented by elements that resolve their own properties.
type Getter interface {
	Get(property string) any
}

// PropertyGetter resolves the value of property on item.
type PropertyGetter func(item any, property string) any

// GetProperty is the default PropertyGetter.
// It asks a Getter, then looks up a map entry keyed by the property name,
// then an exported struct field of that name, following pointers. Anything else resolves to nil.
func GetProperty(item any, property string) any {
	if getter, ok := item.(Getter); ok {
		return getter.Get(property)
	}

	rv := reflect.ValueOf(item)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}

		value := rv.MapIndex(reflect.ValueOf(property).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return nil
		}

		return value.Interface()

	case reflect.Struct:
		field, ok := rv.Type().FieldByName(property)
		if !ok || !field.IsExported() {
			return nil
		}

		return rv.FieldByIndex(field.Index).Interface()

	default:
		return nil
	}
}
