package bcsv

// ValueKind discriminates the closed set of cell value shapes a BCSV
// column can carry.
type ValueKind int

const (
	KindInt32 ValueKind = iota
	KindFloat32
	KindString
)

// Value is a tagged cell value. Columns and block field descriptors are
// heterogeneous; rather than branch per column type at every use site, a
// single Value sum type flows through the codec and callers switch on
// Kind.
type Value struct {
	Kind ValueKind
	I32  int32
	F32  float32
	Str  string
}

// Int wraps a signed 32-bit integer cell value.
func Int(v int32) Value { return Value{Kind: KindInt32, I32: v} }

// Float wraps a 32-bit float cell value.
func Float(v float32) Value { return Value{Kind: KindFloat32, F32: v} }

// String wraps a string cell value.
func String(v string) Value { return Value{Kind: KindString, Str: v} }
