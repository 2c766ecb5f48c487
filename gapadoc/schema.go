// Package gapadoc implements the translator between the binary BCSV/JPA
// world and the human-editable JSON document model: Particles.json,
// Effects.json, per-particle JSON files, and loose BTI textures.
package gapadoc

import (
	_ "embed"
	"fmt"

	"github.com/AwesomeTMC/gapac/bcsv"
	"gopkg.in/yaml.v3"
)

//go:embed schema.yaml
var schemaYAML []byte

// Encoding names how a column's wire value maps to its JSON representation.
type Encoding string

const (
	EncodingPlain      Encoding = "plain"
	EncodingCommaArray Encoding = "commaArray"
	EncodingSpaceArray Encoding = "spaceArray"
	EncodingBool       Encoding = "bool"
	EncodingTRS        Encoding = "trs"
	EncodingColor      Encoding = "color"
	EncodingDrawOrder  Encoding = "drawOrder"
)

type columnSpecYAML struct {
	JSON     string `yaml:"json"`
	Type     string `yaml:"type"`
	Encoding string `yaml:"encoding"`
	Default  string `yaml:"default"`
	Required bool   `yaml:"required"`
}

// ColumnSpec is one AutoEffectList column: its JSON key, wire type,
// encoding, and default (the zero bcsv.Value for required columns, which
// are never stripped).
type ColumnSpec struct {
	JSON     string
	Type     bcsv.FieldType
	Encoding Encoding
	Default  bcsv.Value
	Required bool
}

var (
	// Schema is the AutoEffectList column schema, in declaration order
	// (which is also the order default-stripped JSON keys are emitted in).
	Schema []ColumnSpec
	// Columns is Schema translated into bcsv.Column descriptors with
	// sequential row offsets, ready to hand to bcsv.Write/Read.
	Columns []bcsv.Column

	specByJSON = map[string]ColumnSpec{}
)

func init() {
	var raw []columnSpecYAML
	if err := yaml.Unmarshal(schemaYAML, &raw); err != nil {
		panic(fmt.Sprintf("gapadoc: malformed embedded AutoEffectList schema: %v", err))
	}

	var cols []bcsv.Column
	for _, r := range raw {
		typ, err := parseFieldType(r.Type)
		if err != nil {
			panic(fmt.Sprintf("gapadoc: schema column %q: %v", r.JSON, err))
		}
		bcsv.RegisterColumnName(r.JSON)
		col, err := bcsv.NewColumn(r.JSON, typ)
		if err != nil {
			panic(fmt.Sprintf("gapadoc: schema column %q: %v", r.JSON, err))
		}
		cols = append(cols, col)

		spec := ColumnSpec{
			JSON:     r.JSON,
			Type:     typ,
			Encoding: Encoding(r.Encoding),
			Required: r.Required,
		}
		if !r.Required {
			spec.Default = parseDefault(typ, r.Default)
		}
		Schema = append(Schema, spec)
		specByJSON[r.JSON] = spec
	}
	Columns = bcsv.SequentialLayout(cols)
}

func parseFieldType(s string) (bcsv.FieldType, error) {
	switch s {
	case "LONG":
		return bcsv.TypeLong, nil
	case "FLOAT":
		return bcsv.TypeFloat, nil
	case "LONG2":
		return bcsv.TypeLong2, nil
	case "SHORT":
		return bcsv.TypeShort, nil
	case "CHAR":
		return bcsv.TypeChar, nil
	case "STRING":
		return bcsv.TypeStringOffset, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", s)
	}
}

func parseDefault(typ bcsv.FieldType, s string) bcsv.Value {
	switch typ {
	case bcsv.TypeFloat:
		var f float64
		fmt.Sscanf(s, "%g", &f)
		return bcsv.Float(float32(f))
	case bcsv.TypeStringOffset:
		return bcsv.String(s)
	default:
		var i int
		fmt.Sscanf(s, "%d", &i)
		return bcsv.Int(int32(i))
	}
}

// SpecFor returns the ColumnSpec for a JSON key, and whether it is known.
func SpecFor(jsonKey string) (ColumnSpec, bool) {
	s, ok := specByJSON[jsonKey]
	return s, ok
}
