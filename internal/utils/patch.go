package utils

import (
	"reflect"
	"strings"
)

// BuildPatch turns a partial-update request struct into a merge patch: every
// non-nil pointer field is included under its json name with the pointee
// value, nil fields are skipped, and an "id" field is never part of the
// patch. Non-pointer fields are ignored.
func BuildPatch(s any) map[string]any {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	patch := make(map[string]any)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		name := field.Tag.Get("json")
		if idx := strings.Index(name, ","); idx >= 0 {
			name = name[:idx]
		}
		if name == "" || name == "-" || name == "id" {
			continue
		}

		value := v.Field(i)
		if value.Kind() != reflect.Ptr || value.IsNil() {
			continue
		}

		patch[name] = value.Elem().Interface()
	}

	return patch
}
