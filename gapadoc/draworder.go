package gapadoc

// drawOrderNames is the ordinal-indexed list of DrawOrder names. The BCSV
// wire representation stores the name itself (see schema.yaml); this
// table only backs the independent integer ordinal mapping spec.md
// describes, used where callers need an ordinal rather than the wire
// string (e.g. enumerating draw order in a UI).
var drawOrderNames = []string{
	"3D",
	"PAUSE_IGNORE",
	"INDIRECT",
	"AFTER_INDIRECT",
	"BLOOM_EFFECT",
	"AFTER_IMAGE_EFFECT",
	"2D",
	"2D_PAUSE_IGNORE",
	"FOR_2D_MODEL",
}

// DrawOrderOrdinal returns the 0-8 ordinal for one of the nine named
// DrawOrder values, and false if name isn't one of them.
func DrawOrderOrdinal(name string) (int, bool) {
	for i, n := range drawOrderNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// DrawOrderFromOrdinal returns the DrawOrder name for an ordinal in
// [0,8], and false if ordinal is out of range.
func DrawOrderFromOrdinal(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= len(drawOrderNames) {
		return "", false
	}
	return drawOrderNames[ordinal], true
}
