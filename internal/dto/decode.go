package dto

import (
	"bytes"
	"encoding/json"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decodeObject decodes a JSON object into the pointer fields of dst one field
// at a time, so that a type mismatch is reported against its own field.
// Unknown keys are ignored.
func decodeObject(raw []byte, dst interface{}, errs *ValidationErrors) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		errs.Add("body", "Request body must be a JSON object")
		return
	}

	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		value, ok := fields[name]
		if !ok || name == "" || name == "-" {
			continue
		}

		field := v.Field(i)
		// decimal.Decimal also accepts quoted numbers
		if elemType(field.Type()) == decimalType && bytes.HasPrefix(bytes.TrimSpace(value), []byte(`"`)) {
			errs.Add(name, typeMessage(field.Type()))
			continue
		}
		if err := json.Unmarshal(value, field.Addr().Interface()); err != nil {
			errs.Add(name, typeMessage(field.Type()))
			continue
		}
		if s, ok := stringValue(field); ok && strings.ContainsRune(s, 0) {
			errs.Add(name, "Must not contain NUL characters")
		}
	}
}

func elemType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// stringValue returns the string held by a decoded *string field
func stringValue(field reflect.Value) (string, bool) {
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return "", false
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return "", false
	}
	return field.String(), true
}

func typeMessage(t reflect.Type) string {
	t = elemType(t)
	if t == decimalType {
		return "Expected a number"
	}
	switch t.Kind() {
	case reflect.String:
		return "Expected a string"
	case reflect.Bool:
		return "Expected a boolean"
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return "Expected a number"
	default:
		return "Invalid value"
	}
}

// queryInt reads an integer query parameter, falling back to def when absent
func queryInt(q url.Values, key string, def int, errs *ValidationErrors) int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(key, "Must be a positive integer")
		return def
	}
	return n
}
