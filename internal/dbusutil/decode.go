package dbusutil

import (
	"reflect"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

// DecodeVariantMap decodes a property map (as returned by GetAll/GetManagedObjects)
// into the exported fields of the struct pointed to by out. Fields are matched
// by their `dbus:"PropertyName"` tag, falling back to the field name itself.
//
// Every field is tolerant of a missing or mistyped source value: it is left
// unchanged (its Go zero value in a freshly declared struct, or whatever
// default the caller set beforehand) rather than causing an error, so a
// caller can decode a partial or version-skewed property set without extra
// handling.
func DecodeVariantMap(props map[string]dbus.Variant, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.New("DecodeVariantMap: out must be a non-nil pointer")
	}

	elem := v.Elem()
	if elem.Kind() != reflect.Struct {
		return errors.New("DecodeVariantMap: out must point to a struct")
	}

	t := elem.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key := field.Tag.Get("dbus")
		if key == "" {
			key = field.Name
		}
		if key == "-" {
			continue
		}

		variant, ok := props[key]
		if !ok {
			continue
		}

		assignVariant(elem.Field(i), variant.Value())
	}

	return nil
}

// assignVariant assigns src into dst if the dynamic type is assignable or
// convertible; it is a no-op (leaving dst unchanged) on any mismatch.
func assignVariant(dst reflect.Value, src any) {
	if src == nil || !dst.CanSet() {
		return
	}

	sv := reflect.ValueOf(src)

	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return
	}

	if sv.Type().ConvertibleTo(dst.Type()) {
		switch dst.Kind() {
		case reflect.Slice, reflect.Map, reflect.Struct, reflect.Ptr, reflect.Interface:
			// Don't silently reinterpret composite types; only numeric/string
			// conversions are safe to do implicitly.
		default:
			dst.Set(sv.Convert(dst.Type()))
		}
	}
}
