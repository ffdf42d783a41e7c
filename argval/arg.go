// Package argval implements Arg, the small tagged value used to pass operator
// parameters (axes, permutations, epsilons, rope sections) through the graph
// builder.
//
// Arg mirrors the oneof zmf.Attribute carries on the wire (F / I / S / B /
// Ints / Floats / Strings), extended with Arr/Dict/None so it can also express
// nested values such as mrope section arrays and dict-shaped conv
// strides/dilations/pads.
package argval

import "fmt"

// Kind tags which alternative an Arg holds.
type Kind int

// The Arg tag set: Int(i64) | Float(f64) | Str(string) | Bool(bool) |
// Arr([Arg]) | Dict({string -> Arg}) | None.
const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindStr
	KindBool
	KindArr
	KindDict
)

// Arg is a tagged value. The zero value is None.
type Arg struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	arr  []Arg
	dict map[string]Arg
	// keys preserves insertion order for Dict; the canonical serialization
	// depends on it.
	keys []string
}

// None is the absence of an argument.
var None = Arg{kind: KindNone}

// Int constructs an Arg holding an int64.
func Int(v int64) Arg { return Arg{kind: KindInt, i: v} }

// Float constructs an Arg holding a float64.
func Float(v float64) Arg { return Arg{kind: KindFloat, f: v} }

// Str constructs an Arg holding a string.
func Str(v string) Arg { return Arg{kind: KindStr, s: v} }

// Bool constructs an Arg holding a bool.
func Bool(v bool) Arg { return Arg{kind: KindBool, b: v} }

// Arr constructs an Arg holding an ordered array of Args.
func Arr(vs ...Arg) Arg {
	out := make([]Arg, len(vs))
	copy(out, vs)

	return Arg{kind: KindArr, arr: out}
}

// Ints is a convenience constructor for an Arr of Int args.
func Ints(vs ...int) Arg {
	out := make([]Arg, len(vs))
	for i, v := range vs {
		out[i] = Int(int64(v))
	}

	return Arg{kind: KindArr, arr: out}
}

// NewDict constructs an Arg holding a dictionary, recording key insertion
// order as given (not sorted) so the canonical form is deterministic from the
// caller's perspective.
func NewDict(pairs ...DictPair) Arg {
	d := Arg{kind: KindDict, dict: make(map[string]Arg, len(pairs))}
	for _, p := range pairs {
		if _, exists := d.dict[p.Key]; !exists {
			d.keys = append(d.keys, p.Key)
		}

		d.dict[p.Key] = p.Value
	}

	return d
}

// DictPair is one key/value entry used to build a Dict Arg in order.
type DictPair struct {
	Key   string
	Value Arg
}

// KV is shorthand for constructing a DictPair.
func KV(key string, value Arg) DictPair { return DictPair{Key: key, Value: value} }

// Kind reports the tag of this Arg.
func (a Arg) Kind() Kind { return a.kind }

// IsNone reports whether a is the absence of an argument.
func (a Arg) IsNone() bool { return a.kind == KindNone }

// AsInt returns the held int64, or an error if a is not KindInt.
func (a Arg) AsInt() (int64, error) {
	if a.kind != KindInt {
		return 0, fmt.Errorf("argval: expected Int, got %v", a.kind)
	}

	return a.i, nil
}

// AsFloat returns the held float64, or an error if a is not KindFloat.
func (a Arg) AsFloat() (float64, error) {
	if a.kind != KindFloat {
		return 0, fmt.Errorf("argval: expected Float, got %v", a.kind)
	}

	return a.f, nil
}

// AsStr returns the held string, or an error if a is not KindStr.
func (a Arg) AsStr() (string, error) {
	if a.kind != KindStr {
		return "", fmt.Errorf("argval: expected Str, got %v", a.kind)
	}

	return a.s, nil
}

// AsBool returns the held bool, or an error if a is not KindBool.
func (a Arg) AsBool() (bool, error) {
	if a.kind != KindBool {
		return false, fmt.Errorf("argval: expected Bool, got %v", a.kind)
	}

	return a.b, nil
}

// AsArr returns the held array, or an error if a is not KindArr.
func (a Arg) AsArr() ([]Arg, error) {
	if a.kind != KindArr {
		return nil, fmt.Errorf("argval: expected Arr, got %v", a.kind)
	}

	return a.arr, nil
}

// AsInts returns the held array as plain ints, failing if any element is not
// an Int. This is the common case for axes/permutations/tile counts.
func (a Arg) AsInts() ([]int, error) {
	arr, err := a.AsArr()
	if err != nil {
		return nil, err
	}

	out := make([]int, len(arr))

	for i, e := range arr {
		v, err := e.AsInt()
		if err != nil {
			return nil, fmt.Errorf("argval: element %d of Arr: %w", i, err)
		}

		out[i] = int(v)
	}

	return out, nil
}

// DictKeys returns the Dict's keys in insertion order, or an error if a is
// not KindDict.
func (a Arg) DictKeys() ([]string, error) {
	if a.kind != KindDict {
		return nil, fmt.Errorf("argval: expected Dict, got %v", a.kind)
	}

	out := make([]string, len(a.keys))
	copy(out, a.keys)

	return out, nil
}

// DictGet looks up a key in a Dict Arg.
func (a Arg) DictGet(key string) (Arg, bool, error) {
	if a.kind != KindDict {
		return Arg{}, false, fmt.Errorf("argval: expected Dict, got %v", a.kind)
	}

	v, ok := a.dict[key]

	return v, ok, nil
}

// Equal reports deep structural equality between two Args. Dict comparison
// ignores key order (order only matters for canonical serialization).
func (a Arg) Equal(o Arg) bool {
	if a.kind != o.kind {
		return false
	}

	switch a.kind {
	case KindNone:
		return true
	case KindInt:
		return a.i == o.i
	case KindFloat:
		return a.f == o.f
	case KindStr:
		return a.s == o.s
	case KindBool:
		return a.b == o.b
	case KindArr:
		if len(a.arr) != len(o.arr) {
			return false
		}

		for i := range a.arr {
			if !a.arr[i].Equal(o.arr[i]) {
				return false
			}
		}

		return true
	case KindDict:
		if len(a.dict) != len(o.dict) {
			return false
		}

		for k, v := range a.dict {
			ov, ok := o.dict[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Canonical renders the Arg into a stable textual form: dict keys are emitted
// in insertion order.
func (a Arg) Canonical() string {
	switch a.kind {
	case KindNone:
		return "None"
	case KindInt:
		return fmt.Sprintf("Int(%d)", a.i)
	case KindFloat:
		return fmt.Sprintf("Float(%g)", a.f)
	case KindStr:
		return fmt.Sprintf("Str(%q)", a.s)
	case KindBool:
		return fmt.Sprintf("Bool(%t)", a.b)
	case KindArr:
		out := "Arr["
		for i, e := range a.arr {
			if i > 0 {
				out += ","
			}

			out += e.Canonical()
		}

		return out + "]"
	case KindDict:
		out := "Dict{"
		for i, k := range a.keys {
			if i > 0 {
				out += ","
			}

			out += fmt.Sprintf("%q:%s", k, a.dict[k].Canonical())
		}

		return out + "}"
	default:
		return "?"
	}
}
