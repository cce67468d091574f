package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	return bindFunc(v, tagName, func(name string) []string { return values[name] }, bindErr)
}

// bindFunc walks the exported fields of the struct behind v and sets every
// field tagged with tagName from lookup. Untagged fields are left alone.
func bindFunc(v any, tagName string, lookup func(name string) []string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, ok := tagValue(sf, tagName)
		if !ok {
			continue
		}

		values := lookup(name)
		if len(values) == 0 {
			continue
		}

		if err := setFieldValue(field, sf.Type, values); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}

	return nil
}

func tagValue(sf reflect.StructField, tagName string) (string, bool) {
	tag, ok := sf.Tag.Lookup(tagName)
	if !ok || tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return "", false
	}
	return name, true
}

func setFieldValue(field reflect.Value, typ reflect.Type, values []string) error {
	if typ.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setFieldValue(field.Elem(), typ.Elem(), values)
	}

	if typ.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(typ, len(values), len(values))
		for i, value := range values {
			if err := setFieldValue(slice.Index(i), typ.Elem(), []string{value}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]

	switch typ.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		switch strings.ToLower(value) {
		case "1", "t", "true", "on", "yes":
			field.SetBool(true)
		case "0", "f", "false", "off", "no", "":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool value %q", value)
		}

	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}

	return nil
}
