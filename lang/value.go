package lang

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Kind identifies which alternative a [Value] holds.
type Kind int

const (
	KindUndefined Kind = iota // undefined
	KindScalar                // scalar
	KindSequence              // sequence
	KindMapping               // mapping
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable node of the value model.
// The zero Value is [Undefined].
type Value struct {
	kind  Kind
	str   string
	items []Value
	keys  []string
	index map[string]int
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

// Undefined is the absent-value sentinel.
// It is returned wherever a path does not resolve.
//
//nolint:gochecknoglobals
var Undefined Value

// Scalar returns a scalar value holding s.
func Scalar(s string) Value {
	return Value{kind: KindScalar, str: s}
}

// Sequence returns a sequence holding a copy of items in order.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: slices.Clone(items)}
}

// Mapping returns a mapping of the given entries in order.
// A repeated key keeps its first position and its last value.
func Mapping(entries ...Entry) Value {
	v := Value{
		kind:  KindMapping,
		keys:  make([]string, 0, len(entries)),
		items: make([]Value, 0, len(entries)),
		index: make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if i, ok := v.index[e.Key]; ok {
			v.items[i] = e.Value

			continue
		}

		v.index[e.Key] = len(v.keys)
		v.keys = append(v.keys, e.Key)
		v.items = append(v.items, e.Value)
	}

	return v
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsDefined reports whether v is anything other than [Undefined].
func (v Value) IsDefined() bool { return v.kind != KindUndefined }

// Len returns the number of members of a sequence or mapping, or 0.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence, KindMapping:
		return len(v.items)
	default:
		return 0
	}
}

// Get returns the value stored under key in a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Undefined, false
	}

	i, ok := v.index[key]
	if !ok {
		return Undefined, false
	}

	return v.items[i], true
}

// Index returns the i'th element of a sequence.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindSequence || i < 0 || i >= len(v.items) {
		return Undefined, false
	}

	return v.items[i], true
}

// Keys returns an iterator over the keys of a mapping in insertion order.
func (v Value) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if v.kind != KindMapping {
			return
		}

		for _, k := range v.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Entries returns an iterator over the key/value pairs of a mapping.
func (v Value) Entries() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != KindMapping {
			return
		}

		for i, k := range v.keys {
			if !yield(k, v.items[i]) {
				return
			}
		}
	}
}

// Items returns an iterator over the elements of a sequence.
func (v Value) Items() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != KindSequence {
			return
		}

		for i, item := range v.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// String renders v as text for substitution into a page.
//
// Scalars render verbatim and [Undefined] renders as the empty string.
// Sequences and mappings render as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return v.str
	case KindSequence, KindMapping:
		b, err := v.MarshalJSON()
		if err != nil {
			return ""
		}

		return string(b)
	default:
		return ""
	}
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", v.kind.String()),
		slog.String("value", v.String()),
	)
}

// MarshalJSON implements json.Marshaler, preserving mapping key order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.str)

	case KindSequence:
		var buf bytes.Buffer

		buf.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf.Write(b)
		}

		buf.WriteByte(']')

		return buf.Bytes(), nil

	case KindMapping:
		var buf bytes.Buffer

		buf.WriteByte('{')

		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}

			vb, err := v.items[i].MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf.Write(kb)
			buf.WriteByte(':')
			buf.Write(vb)
		}

		buf.WriteByte('}')

		return buf.Bytes(), nil

	default:
		return []byte("null"), nil
	}
}

// MarshalYAML implements the go-yaml InterfaceMarshaler, preserving mapping
// key order.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindScalar:
		return v.str, nil

	case KindSequence:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item)
		}

		return out, nil

	case KindMapping:
		out := make(yaml.MapSlice, 0, len(v.keys))
		for i, k := range v.keys {
			out = append(out, yaml.MapItem{Key: k, Value: v.items[i]})
		}

		return out, nil

	default:
		return nil, nil
	}
}

// Native converts v to plain Go values: string, []any, map[string]any, or
// nil for [Undefined].
func (v Value) Native() any {
	switch v.kind {
	case KindScalar:
		return v.str

	case KindSequence:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.Native())
		}

		return out

	case KindMapping:
		out := make(map[string]any, len(v.keys))
		for i, k := range v.keys {
			out[k] = v.items[i].Native()
		}

		return out

	default:
		return nil
	}
}

// FromNative converts plain Go data into a [Value].
//
// Strings, booleans and numbers become scalars. Slices and arrays become
// sequences. Maps with string keys become mappings with keys in sorted
// order, since Go maps carry none. Nil becomes [Undefined].
func FromNative(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Undefined, nil
	case Value:
		return t, nil
	case string:
		return Scalar(t), nil
	case bool:
		return Scalar(strconv.FormatBool(t)), nil
	case yaml.MapSlice:
		entries := make([]Entry, 0, len(t))

		for _, item := range t {
			val, err := FromNative(item.Value)
			if err != nil {
				return Undefined, err
			}

			entries = append(entries, Entry{Key: fmt.Sprint(item.Key), Value: val})
		}

		return Mapping(entries...), nil
	case fmt.Stringer:
		return Scalar(t.String()), nil
	}

	rv := reflect.ValueOf(x)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Scalar(strconv.FormatInt(rv.Int(), 10)), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return Scalar(strconv.FormatUint(rv.Uint(), 10)), nil

	case reflect.Float32, reflect.Float64:
		return Scalar(strconv.FormatFloat(rv.Float(), 'f', -1, 64)), nil

	case reflect.String:
		return Scalar(rv.String()), nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Undefined, nil
		}

		return FromNative(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		items := make([]Value, 0, rv.Len())

		for i := range rv.Len() {
			item, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return Undefined, err
			}

			items = append(items, item)
		}

		return Value{kind: KindSequence, items: items}, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}

		byKey := make(map[string]reflect.Value, rv.Len())
		for _, k := range rv.MapKeys() {
			byKey[k.String()] = rv.MapIndex(k)
		}

		entries := make([]Entry, 0, len(byKey))

		for _, k := range slices.Sorted(maps.Keys(byKey)) {
			val, err := FromNative(byKey[k].Interface())
			if err != nil {
				return Undefined, err
			}

			entries = append(entries, Entry{Key: k, Value: val})
		}

		return Mapping(entries...), nil
	}

	return Undefined, ErrUnsupported.
		With(slog.String("type", fmt.Sprintf("%T", x)))
}

// MustFromNative is like [FromNative] but panics on error.
// It is intended for literals in tests and package initialization.
func MustFromNative(x any) Value {
	v, err := FromNative(x)
	if err != nil {
		panic(err)
	}

	return v
}
