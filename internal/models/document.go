package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field type")
)

// Document is an untyped JSON object as decoded from an API payload.
type Document = map[string]any

// fieldError wraps a sentinel with the model and key it was raised for.
func fieldError(model, key string, err error) error {
	return fmt.Errorf("parse %s.%s: %w", model, key, err)
}

// reader pulls typed fields out of a Document and remembers the first failure,
// so a FromJSON body can read every field and check err once.
type reader struct {
	model string
	doc   Document
	err   error
}

func newReader(model string, doc Document) *reader {
	return &reader{model: model, doc: doc}
}

func (r *reader) fail(key string, err error) {
	if r.err == nil {
		r.err = fieldError(r.model, key, err)
	}
}

// lookup treats JSON null the same as an absent key.
func (r *reader) lookup(key string) (any, bool) {
	v, ok := r.doc[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *reader) requiredString(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		r.fail(key, ErrMissingField)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, ErrInvalidField)
	}
	return s
}

func (r *reader) string(key, def string) string {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, ErrInvalidField)
		return def
	}
	return s
}

func (r *reader) optionalString(key string) *string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, ErrInvalidField)
		return nil
	}
	return &s
}

func (r *reader) bool(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(key, ErrInvalidField)
		return def
	}
	return b
}

func (r *reader) int(key string) int {
	v, ok := r.lookup(key)
	if !ok {
		return 0
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		r.fail(key, ErrInvalidField)
		return 0
	}
	return int(f)
}

func (r *reader) float(key string) float64 {
	v, ok := r.lookup(key)
	if !ok {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		r.fail(key, ErrInvalidField)
		return 0
	}
	return f
}

func (r *reader) requiredTime(key string) time.Time {
	if _, ok := r.lookup(key); !ok {
		r.fail(key, ErrMissingField)
		return time.Time{}
	}
	return r.time(key)
}

// time falls back to the current time when the key is absent.
func (r *reader) time(key string) time.Time {
	v, ok := r.lookup(key)
	if !ok {
		return time.Now()
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, ErrInvalidField)
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		r.fail(key, fmt.Errorf("%w: %v", ErrInvalidField, err))
		return time.Time{}
	}
	return t
}

func (r *reader) requiredObject(key string) Document {
	v, ok := r.lookup(key)
	if !ok {
		r.fail(key, ErrMissingField)
		return nil
	}
	return r.asObject(key, v)
}

func (r *reader) object(key string) Document {
	v, ok := r.lookup(key)
	if !ok {
		return Document{}
	}
	return r.asObject(key, v)
}

func (r *reader) asObject(key string, v any) Document {
	doc, ok := v.(map[string]any)
	if !ok {
		r.fail(key, ErrInvalidField)
		return nil
	}
	return doc
}

// list returns the raw elements of a JSON array, empty when absent.
func (r *reader) list(key string) []any {
	v, ok := r.lookup(key)
	if !ok {
		return []any{}
	}
	items, ok := v.([]any)
	if !ok {
		r.fail(key, ErrInvalidField)
		return []any{}
	}
	return items
}

// nested records a failure from parsing a child model.
func (r *reader) nested(err error) {
	if r.err == nil && err != nil {
		r.err = fmt.Errorf("parse %s: %w", r.model, err)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

const (
	layoutMillis = "2006-01-02T15:04:05.000Z07:00"
	layoutMicros = "2006-01-02T15:04:05.000000Z07:00"
	layoutNanos  = "2006-01-02T15:04:05.000000000Z07:00"
)

// formatTime writes the ISO-8601 shape the API emits: always at least
// millisecond precision, wider only when the value needs it.
func formatTime(t time.Time) string {
	switch ns := t.Nanosecond(); {
	case ns%1e3 != 0:
		return t.Format(layoutNanos)
	case ns%1e6 != 0:
		return t.Format(layoutMicros)
	default:
		return t.Format(layoutMillis)
	}
}

// decodeDocument is the shared UnmarshalJSON entry point for all models.
func decodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: expected JSON object", ErrInvalidField)
	}
	return doc, nil
}

func marshalDocument(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}
