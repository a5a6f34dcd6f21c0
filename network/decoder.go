package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DecodeReason classifies why a payload could not be decoded
type DecodeReason int

const (
	// ReasonMalformed means the payload is not valid JSON
	ReasonMalformed DecodeReason = iota
	// ReasonTypeMismatch means a value had the wrong JSON type
	ReasonTypeMismatch
	// ReasonMissingField means a required key was absent
	ReasonMissingField
	// ReasonMissingValue means a required key was present but null
	ReasonMissingValue
)

// String returns the string representation of a DecodeReason
func (r DecodeReason) String() string {
	switch r {
	case ReasonMalformed:
		return "malformed payload"
	case ReasonTypeMismatch:
		return "type mismatch"
	case ReasonMissingField:
		return "missing required field"
	case ReasonMissingValue:
		return "missing value"
	default:
		return "unknown"
	}
}

// DecodeError is the diagnostic produced by Decode. It is meant for logs;
// callers of FetchResource only ever see ErrDecoding.
type DecodeError struct {
	Reason DecodeReason
	Path   string
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s at '%s': %s", e.Reason, e.Path, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator reports struct fields by their JSON names
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// Decode unmarshals data into a new T and enforces `validate:"required"`
// tags. On any failure the zero T is returned.
func Decode[T any](data []byte) (T, *DecodeError) {
	var zero T
	var v T

	if err := json.Unmarshal(data, &v); err != nil {
		return zero, classifyJSONError(err)
	}

	if derr := checkRequired(v, data); derr != nil {
		return zero, derr
	}

	return v, nil
}

func classifyJSONError(err error) *DecodeError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &DecodeError{
			Reason: ReasonMalformed,
			Detail: fmt.Sprintf("%s (offset %d)", syntaxErr.Error(), syntaxErr.Offset),
			Err:    err,
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		return &DecodeError{
			Reason: ReasonTypeMismatch,
			Path:   path,
			Detail: fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
			Err:    err,
		}
	}

	// Truncated input surfaces as io.ErrUnexpectedEOF rather than a SyntaxError
	return &DecodeError{
		Reason: ReasonMalformed,
		Detail: err.Error(),
		Err:    err,
	}
}

// checkRequired validates v, or each element when v is a slice or array.
func checkRequired(v any, raw []byte) *DecodeError {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return validateStruct(rv.Interface(), "", raw)
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Pointer && !elem.IsNil() {
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				continue
			}
			if derr := validateStruct(elem.Interface(), fmt.Sprintf("[%d]", i), raw); derr != nil {
				return derr
			}
		}
	}
	return nil
}

func validateStruct(s any, prefix string, raw []byte) *DecodeError {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &DecodeError{Reason: ReasonMalformed, Detail: err.Error(), Err: err}
	}

	fe := fieldErrs[0]
	path := prefix + stripRoot(fe.Namespace())

	reason := ReasonMissingField
	if present, isNull := lookupPath(raw, path); present && isNull {
		reason = ReasonMissingValue
	} else if present && fe.Tag() != "required" {
		reason = ReasonTypeMismatch
	}

	return &DecodeError{
		Reason: reason,
		Path:   path,
		Detail: fmt.Sprintf("failed '%s' check", fe.Tag()),
		Err:    err,
	}
}

// stripRoot drops the leading struct type name from a validator namespace
func stripRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// lookupPath walks a path like "results[2].id" or "[0].id" through the raw
// JSON and reports whether the final key exists and whether it is null.
func lookupPath(raw []byte, path string) (present, isNull bool) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, false
	}

	cur := doc
	for _, seg := range splitPath(path) {
		switch s := seg.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return false, false
			}
			next, ok := obj[s]
			if !ok {
				return false, false
			}
			cur = next
		case int:
			arr, ok := cur.([]any)
			if !ok || s < 0 || s >= len(arr) {
				return false, false
			}
			cur = arr[s]
		}
	}
	return true, cur == nil
}

// splitPath turns "a.b[1].c" into ["a", "b", 1, "c"]
func splitPath(path string) []any {
	var segs []any
	for _, part := range strings.Split(path, ".") {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				segs = append(segs, part)
				break
			}
			if open > 0 {
				segs = append(segs, part[:open])
			}
			end := strings.IndexByte(part[open:], ']')
			if end < 0 {
				break
			}
			if idx, err := strconv.Atoi(part[open+1 : open+end]); err == nil {
				segs = append(segs, idx)
			}
			part = part[open+end+1:]
		}
	}
	return segs
}
