package bcsv

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed knowncolumns.yaml
var knownColumnsYAML []byte

var (
	hashToName = map[uint32]string{}
	nameToHash = map[string]uint32{}
)

func init() {
	var names []string
	if err := yaml.Unmarshal(knownColumnsYAML, &names); err != nil {
		panic(fmt.Sprintf("bcsv: malformed embedded column dictionary: %v", err))
	}
	for _, n := range names {
		h := Hash(n)
		hashToName[h] = n
		nameToHash[n] = h
	}
}

// Hash computes the JGadget hash of a column name: seeded at zero, each
// byte of the name updates h = h*31 + byte, modulo 2^32.
func Hash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*31 + uint32(name[i])
	}
	return h
}

// LookupName resolves a column name hash against the known-column
// dictionary. Unknown hashes are surfaced in the documented hex form; they
// round-trip unchanged because a Column decoded by Read keeps its original
// Hash, which Write emits as-is.
func LookupName(hash uint32) string {
	if name, ok := hashToName[hash]; ok {
		return name
	}
	return fmt.Sprintf("_0x%08X", hash)
}

// RegisterColumnName adds name to the in-process known-column dictionary,
// for callers that encounter additional column names beyond the embedded
// dictionary (e.g. a schema file naming columns this package doesn't ship
// with).
func RegisterColumnName(name string) {
	h := Hash(name)
	hashToName[h] = name
	nameToHash[name] = h
}
