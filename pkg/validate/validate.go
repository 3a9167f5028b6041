// Package validate provides struct-tag validation for request payloads.
//
// Rules (comma-separated in the `validate` tag):
//
//	required      field must not be zero/empty
//	nullable      if empty, skip remaining rules for this field
//	email         valid email address
//	url           valid URL (http/https)
//	numeric       any number
//	min=N         string: min char length | number: min value
//	max=N         string: max char length | number: max value
//	gte=N         number >= N
//	lte=N         number <= N
//	in=a|b|c      value must be one of the listed items
//
// Example:
//
//	type LoginInput struct {
//	    Email    string `json:"email"    validate:"required,email"`
//	    Password string `json:"password" validate:"required,min=8"`
//	}
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Struct validates v (a struct or pointer to struct) against its `validate`
// tags and returns a map of json-field-name to first failing message.
func Struct(v interface{}) map[string]string {
	errs := map[string]string{}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := jsonName(field)
		value := rv.Field(i)

		if msg := checkField(name, value, strings.Split(tag, ",")); msg != "" {
			errs[name] = msg
		}
	}

	return errs
}

// HasErrors reports whether errs contains any failures.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return strings.ToLower(f.Name)
	}
	name := strings.Split(tag, ",")[0]
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

func checkField(name string, v reflect.Value, rules []string) string {
	empty := isZero(v)

	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}

		key, arg := rule, ""
		if idx := strings.IndexByte(rule, '='); idx > 0 {
			key, arg = rule[:idx], rule[idx+1:]
		}

		switch key {
		case "required":
			if empty {
				return fmt.Sprintf("The %s field is required", name)
			}
		case "nullable":
			if empty {
				return ""
			}
		case "email":
			if _, err := mail.ParseAddress(asString(v)); err != nil {
				return fmt.Sprintf("The %s field must be a valid email address", name)
			}
		case "url":
			u, err := url.Parse(asString(v))
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
				return fmt.Sprintf("The %s field must be a valid URL", name)
			}
		case "numeric":
			if _, err := strconv.ParseFloat(asString(v), 64); err != nil {
				return fmt.Sprintf("The %s field must be numeric", name)
			}
		case "min":
			if !compareNumeric(v, arg, func(a, b float64) bool { return a >= b }) {
				return fmt.Sprintf("The %s field must be at least %s", name, arg)
			}
		case "max":
			if !compareNumeric(v, arg, func(a, b float64) bool { return a <= b }) {
				return fmt.Sprintf("The %s field may not be greater than %s", name, arg)
			}
		case "gte":
			if !compareNumeric(v, arg, func(a, b float64) bool { return a >= b }) {
				return fmt.Sprintf("The %s field must be greater than or equal to %s", name, arg)
			}
		case "lte":
			if !compareNumeric(v, arg, func(a, b float64) bool { return a <= b }) {
				return fmt.Sprintf("The %s field must be less than or equal to %s", name, arg)
			}
		case "in":
			if !contains(strings.Split(arg, "|"), asString(v)) {
				return fmt.Sprintf("The selected %s is invalid", name)
			}
		}
	}

	return ""
}

// compareNumeric compares a field against a rule argument. Strings compare
// by character length, numbers by value.
func compareNumeric(v reflect.Value, arg string, cmp func(a, b float64) bool) bool {
	bound, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return false
	}

	switch v.Kind() {
	case reflect.String:
		return cmp(float64(len([]rune(v.String()))), bound)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp(float64(v.Int()), bound)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cmp(float64(v.Uint()), bound)
	case reflect.Float32, reflect.Float64:
		return cmp(v.Float(), bound)
	default:
		return false
	}
}

func asString(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if strings.TrimSpace(item) == s {
			return true
		}
	}
	return false
}
