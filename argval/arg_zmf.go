package argval

import (
	"fmt"

	"github.com/zerfoo/zmf"
)

// FromZMFAttribute converts a wire-format zmf.Attribute oneof into an Arg,
// losslessly.
func FromZMFAttribute(attr *zmf.Attribute) (Arg, error) {
	if attr == nil || attr.Value == nil {
		return None, nil
	}

	switch v := attr.Value.(type) {
	case *zmf.Attribute_F:
		return Float(float64(v.F)), nil // Attribute_F.F is float32 on the wire.
	case *zmf.Attribute_I:
		return Int(v.I), nil
	case *zmf.Attribute_S:
		return Str(v.S), nil
	case *zmf.Attribute_B:
		return Bool(v.B), nil
	case *zmf.Attribute_Ints:
		arr := make([]Arg, len(v.Ints.Val))
		for i, x := range v.Ints.Val {
			arr[i] = Int(x)
		}

		return Arg{kind: KindArr, arr: arr}, nil
	case *zmf.Attribute_Floats:
		arr := make([]Arg, len(v.Floats.Val))
		for i, x := range v.Floats.Val {
			arr[i] = Float(float64(x))
		}

		return Arg{kind: KindArr, arr: arr}, nil
	case *zmf.Attribute_Strings:
		arr := make([]Arg, len(v.Strings.Val))
		for i, x := range v.Strings.Val {
			arr[i] = Str(x)
		}

		return Arg{kind: KindArr, arr: arr}, nil
	default:
		return Arg{}, fmt.Errorf("argval: unsupported zmf.Attribute variant %T", v)
	}
}

// ToZMFAttribute renders an Arg back to the wire format. zmf.Attribute has no
// nested-dict or heterogeneous-array variant, so Dict, None, and mixed-kind
// arrays cannot round-trip: those report an error rather than silently
// dropping information.
func ToZMFAttribute(a Arg) (*zmf.Attribute, error) {
	switch a.kind {
	case KindFloat:
		return &zmf.Attribute{Value: &zmf.Attribute_F{F: float32(a.f)}}, nil
	case KindInt:
		return &zmf.Attribute{Value: &zmf.Attribute_I{I: a.i}}, nil
	case KindStr:
		return &zmf.Attribute{Value: &zmf.Attribute_S{S: a.s}}, nil
	case KindBool:
		return &zmf.Attribute{Value: &zmf.Attribute_B{B: a.b}}, nil
	case KindArr:
		return arrToZMFAttribute(a.arr)
	default:
		return nil, fmt.Errorf("argval: %v has no zmf.Attribute encoding", a.kind)
	}
}

func arrToZMFAttribute(arr []Arg) (*zmf.Attribute, error) {
	if len(arr) == 0 {
		return &zmf.Attribute{Value: &zmf.Attribute_Ints{Ints: &zmf.Ints{}}}, nil
	}

	switch arr[0].kind {
	case KindInt:
		vals := make([]int64, len(arr))

		for i, e := range arr {
			v, err := e.AsInt()
			if err != nil {
				return nil, fmt.Errorf("argval: mixed-kind Arr cannot encode as zmf.Ints: %w", err)
			}

			vals[i] = v
		}

		return &zmf.Attribute{Value: &zmf.Attribute_Ints{Ints: &zmf.Ints{Val: vals}}}, nil
	case KindFloat:
		vals := make([]float32, len(arr))

		for i, e := range arr {
			v, err := e.AsFloat()
			if err != nil {
				return nil, fmt.Errorf("argval: mixed-kind Arr cannot encode as zmf.Floats: %w", err)
			}

			vals[i] = float32(v)
		}

		return &zmf.Attribute{Value: &zmf.Attribute_Floats{Floats: &zmf.Floats{Val: vals}}}, nil
	case KindStr:
		vals := make([]string, len(arr))

		for i, e := range arr {
			v, err := e.AsStr()
			if err != nil {
				return nil, fmt.Errorf("argval: mixed-kind Arr cannot encode as zmf.Strings: %w", err)
			}

			vals[i] = v
		}

		return &zmf.Attribute{Value: &zmf.Attribute_Strings{Strings: &zmf.Strings{Val: vals}}}, nil
	default:
		return nil, fmt.Errorf("argval: Arr of %v has no zmf.Attribute encoding", arr[0].kind)
	}
}
