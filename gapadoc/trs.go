package gapadoc

import "strings"

// TRS is a bitfield over translation/rotation/scale components, the parsed
// form of the Affect and Follow columns (which hold slash-joined letters
// on the wire).
type TRS struct {
	T, R, S bool
}

// ParseTRS parses a slash-joined letter sequence such as "T/R" or
// "S/T/R" into a TRS set. Any order and subset of T, R, S is accepted on
// read; an empty string means no components are set.
func ParseTRS(s string) TRS {
	var trs TRS
	if s == "" {
		return trs
	}
	for _, part := range strings.Split(s, "/") {
		switch part {
		case "T":
			trs.T = true
		case "R":
			trs.R = true
		case "S":
			trs.S = true
		}
	}
	return trs
}

// String renders trs back to its canonical slash-joined form, always
// ordered T, R, S regardless of the order the components were parsed in.
func (trs TRS) String() string {
	var parts []string
	if trs.T {
		parts = append(parts, "T")
	}
	if trs.R {
		parts = append(parts, "R")
	}
	if trs.S {
		parts = append(parts, "S")
	}
	return strings.Join(parts, "/")
}

// IsZero reports whether no components are set.
func (trs TRS) IsZero() bool { return !trs.T && !trs.R && !trs.S }
