package content

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Value is a configuration value parsed from front matter or the site config.
// The set of implementations is closed: String, Number, Bool, Null, Seq and
// Values.
type Value interface {
	// Text is the form a value takes when substituted into a template.
	Text() string
	isValue()
}

type String string

func (s String) Text() string { return string(s) }
func (String) isValue()       {}

// Number keeps integers exact; everything else is a float64.
type Number struct {
	i     int64
	f     float64
	isInt bool
}

func Int(i int64) Number     { return Number{i: i, f: float64(i), isInt: true} }
func Float(f float64) Number { return Number{f: f} }

func (n Number) Float64() float64 { return n.f }

// Text prints integral numbers in base 10 and other numbers in their
// shortest decimal form, never with an exponent.
func (n Number) Text() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	if math.IsInf(n.f, 0) || math.IsNaN(n.f) {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return strconv.FormatFloat(n.f, 'f', -1, 64)
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Text()), nil
}

func (Number) isValue() {}

type Bool bool

func (b Bool) Text() string { return strconv.FormatBool(bool(b)) }
func (Bool) isValue()       {}

// Null renders as the empty string.
type Null struct{}

func (Null) Text() string { return "" }
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
func (Null) isValue() {}

// Seq renders as compact JSON.
type Seq []Value

func (s Seq) Text() string { return encode(s) }
func (Seq) isValue()       {}

// Values is a string-keyed mapping of configuration values. It is both the
// shape of a whole configuration and the mapping variant of Value.
type Values map[string]Value

func (v Values) Text() string { return encode(v) }
func (Values) isValue()       {}

// String returns the value under key when it holds a String.
func (v Values) String(key string) (string, bool) {
	s, ok := v[key].(String)
	return string(s), ok
}

// Bool returns the value under key when it holds a Bool.
func (v Values) Bool(key string) bool {
	b, ok := v[key].(Bool)
	return ok && bool(b)
}

// Lookup follows a path of keys through nested mappings and sequences.
// Sequence elements are addressed by their decimal index.
func (v Values) Lookup(path ...string) (Value, bool) {
	var cur Value = v
	for _, key := range path {
		switch c := cur.(type) {
		case Values:
			next, ok := c[key]
			if !ok {
				return nil, false
			}
			cur = next
		case Seq:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			cur = c[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func encode(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// FromAny converts decoded JSON or YAML data into a Value. Numbers decoded
// with json.Decoder.UseNumber keep integer precision.
func FromAny(raw any) (Value, error) {
	switch r := raw.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return r, nil
	case string:
		return String(r), nil
	case bool:
		return Bool(r), nil
	case json.Number:
		if i, err := r.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := r.Float64()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", r.String())
		}
		return Float(f), nil
	case int:
		return Int(int64(r)), nil
	case int64:
		return Int(r), nil
	case uint64:
		if r > math.MaxInt64 {
			return Float(float64(r)), nil
		}
		return Int(int64(r)), nil
	case float64:
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return nil, errors.Errorf("number %v has no JSON form", r)
		}
		if r == math.Trunc(r) && math.Abs(r) < 1<<53 {
			return Int(int64(r)), nil
		}
		return Float(r), nil
	case []any:
		seq := make(Seq, 0, len(r))
		for i, item := range r {
			v, err := FromAny(item)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			seq = append(seq, v)
		}
		return seq, nil
	case map[string]any:
		out := make(Values, len(r))
		for k, item := range r {
			v, err := FromAny(item)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			out[k] = v
		}
		return out, nil
	case map[any]any:
		out := make(Values, len(r))
		for k, item := range r {
			key, ok := k.(string)
			if !ok {
				return nil, errors.Errorf("non-string key %v", k)
			}
			v, err := FromAny(item)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", key)
			}
			out[key] = v
		}
		return out, nil
	default:
		return nil, errors.Errorf("unsupported value type %T", raw)
	}
}

// DecodeObject decodes a single JSON object from data. Trailing bytes are
// returned untouched for the caller to inspect.
func DecodeObject(data []byte) (Values, []byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, errors.Errorf("expected a JSON object, got %T", raw)
	}
	v, err := FromAny(obj)
	if err != nil {
		return nil, nil, err
	}
	return v.(Values), data[dec.InputOffset():], nil
}
