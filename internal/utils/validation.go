package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// ValidationError reports the first rule a request payload failed.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateStruct checks `validate:` tags on struct fields and stops at the
// first failing field, so callers always report a single error. Supported
// rules: required, email, min=N, max=N (string length or numeric bound).
// Nil pointer fields only fail the required rule; non-nil pointers are
// validated against their pointee.
func ValidateStruct(s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("validation requires a struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}

		name := jsonFieldName(field)
		value := v.Field(i)

		for _, rule := range strings.Split(tag, ",") {
			if err := applyRule(name, value, strings.TrimSpace(rule)); err != nil {
				return err
			}
		}
	}

	return nil
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name
	}
	return tag
}

func applyRule(name string, value reflect.Value, rule string) error {
	fromPointer := false
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			if rule == "required" {
				return &ValidationError{Field: name, Message: fmt.Sprintf("%s is required", name)}
			}
			return nil
		}
		fromPointer = true
		value = value.Elem()
	}

	switch {
	case rule == "required":
		// A set pointer satisfies required no matter the value; pointer
		// fields exist to tell absent from zero.
		if !fromPointer && isZero(value) {
			return &ValidationError{Field: name, Message: fmt.Sprintf("%s is required", name)}
		}
	case rule == "email":
		str := value.String()
		if str != "" && !emailPattern.MatchString(str) {
			return &ValidationError{Field: name, Message: "Invalid Email Address"}
		}
	case strings.HasPrefix(rule, "min="):
		bound, err := strconv.Atoi(strings.TrimPrefix(rule, "min="))
		if err != nil {
			return fmt.Errorf("invalid min rule on %s: %w", name, err)
		}
		if tooSmall(value, bound) {
			return &ValidationError{Field: name, Message: fmt.Sprintf("%s must be at least %d", name, bound)}
		}
	case strings.HasPrefix(rule, "max="):
		bound, err := strconv.Atoi(strings.TrimPrefix(rule, "max="))
		if err != nil {
			return fmt.Errorf("invalid max rule on %s: %w", name, err)
		}
		if tooLarge(value, bound) {
			return &ValidationError{Field: name, Message: fmt.Sprintf("%s must be at most %d", name, bound)}
		}
	}

	return nil
}

func isZero(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.String:
		return strings.TrimSpace(value.String()) == ""
	case reflect.Slice, reflect.Map:
		// A present-but-empty list satisfies required; only an absent one fails.
		return value.IsNil()
	default:
		return value.IsZero()
	}
}

func tooSmall(value reflect.Value, bound int) bool {
	switch value.Kind() {
	case reflect.String:
		return value.Len() < bound
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int() < int64(bound)
	case reflect.Float32, reflect.Float64:
		return value.Float() < float64(bound)
	}
	return false
}

func tooLarge(value reflect.Value, bound int) bool {
	switch value.Kind() {
	case reflect.String:
		return value.Len() > bound
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int() > int64(bound)
	case reflect.Float32, reflect.Float64:
		return value.Float() > float64(bound)
	}
	return false
}
