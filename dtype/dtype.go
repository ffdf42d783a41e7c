// Package dtype provides the canonical dtype table used by tensor metadata
// throughout symgraph: an enumerated bit-layout descriptor with a fixed byte
// width, independent of any particular Go numeric representation.
package dtype

import "fmt"

// DType enumerates the bit-layout descriptors tensors can carry.
type DType int

// The dtype table. Byte widths are canonical.
const (
	Invalid DType = iota
	F32
	F16
	BF16
	F8
	I32
	U32
	I64
	U64
	I8
	U8
	Bool
)

var names = map[DType]string{
	F32:  "f32",
	F16:  "f16",
	BF16: "bf16",
	F8:   "f8",
	I32:  "i32",
	U32:  "u32",
	I64:  "i64",
	U64:  "u64",
	I8:   "i8",
	U8:   "u8",
	Bool: "bool",
}

var widths = map[DType]int{
	F32:  4,
	F16:  2,
	BF16: 2,
	F8:   1,
	I32:  4,
	U32:  4,
	I64:  8,
	U64:  8,
	I8:   1,
	U8:   1,
	Bool: 1,
}

// String returns the canonical name of the dtype, e.g. "f32".
func (d DType) String() string {
	if n, ok := names[d]; ok {
		return n
	}

	return fmt.Sprintf("dtype(%d)", int(d))
}

// NBytes returns the canonical byte width of a single element of this dtype.
// It panics for Invalid or unrecognized dtypes, since a TensorMeta should
// never carry one past construction.
func (d DType) NBytes() int {
	w, ok := widths[d]
	if !ok {
		panic(fmt.Sprintf("dtype: NBytes called on invalid dtype %v", d))
	}

	return w
}

// Valid reports whether d is one of the recognized dtype table entries.
func (d DType) Valid() bool {
	_, ok := widths[d]

	return ok
}

// Parse resolves a canonical dtype name (as produced by String) back to a DType.
func Parse(name string) (DType, error) {
	for d, n := range names {
		if n == name {
			return d, nil
		}
	}

	return Invalid, fmt.Errorf("dtype: unknown dtype name %q", name)
}
