package gapadoc

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/AwesomeTMC/gapac/bcsv"
	"github.com/AwesomeTMC/gapac/gapaerr"
	"github.com/bytedance/sonic"
	"github.com/iancoleman/orderedmap"
)

// EffectToJSON translates one AutoEffectList row into a default-stripped
// JSON object, keys ordered as declared in the schema. Required columns
// are always emitted; a required column absent from row triggers a
// DanglingReference.
func EffectToJSON(row bcsv.Row) ([]byte, error) {
	om := orderedmap.New()
	for _, spec := range Schema {
		val, ok := row[spec.JSON]
		if !ok {
			if spec.Required {
				return nil, gapaerr.New(gapaerr.DanglingReference, "required AutoEffectList column missing from row").WithTag(spec.JSON)
			}
			continue
		}
		if !spec.Required && valuesEqual(val, spec.Default) {
			continue
		}
		jv, err := encodeValue(spec, val)
		if err != nil {
			return nil, err
		}
		om.Set(spec.JSON, jv)
	}
	buf, err := sonic.Marshal(om)
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "marshaling effect")
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "  "); err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "indenting effect JSON")
	}
	return pretty.Bytes(), nil
}

// EffectFromJSON parses a (possibly default-stripped) AutoEffectList JSON
// object back into a BCSV row, injecting defaults for every omitted
// optional column. Missing required columns fail with DanglingReference.
func EffectFromJSON(data []byte) (bcsv.Row, error) {
	om := orderedmap.New()
	if err := sonic.Unmarshal(data, om); err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "unmarshaling effect")
	}

	row := bcsv.Row{}
	for _, spec := range Schema {
		jv, ok := om.Get(spec.JSON)
		if !ok {
			if spec.Required {
				return nil, gapaerr.New(gapaerr.DanglingReference, "required AutoEffectList column missing from JSON").WithTag(spec.JSON)
			}
			row[spec.JSON] = spec.Default
			continue
		}
		val, err := decodeValue(spec, jv)
		if err != nil {
			return nil, err
		}
		row[spec.JSON] = val
	}
	return row, nil
}

// EffectsToJSON translates a full AutoEffectList row set into Effects.json:
// a 2-space-indented JSON array, one default-stripped object per row, in
// row order.
func EffectsToJSON(rows []bcsv.Row) ([]byte, error) {
	raw := make([]json.RawMessage, len(rows))
	for i, row := range rows {
		obj, err := EffectToJSON(row)
		if err != nil {
			return nil, err
		}
		raw[i] = json.RawMessage(obj)
	}
	flat, err := sonic.Marshal(raw)
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "marshaling Effects.json")
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, flat, "", "  "); err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "indenting Effects.json")
	}
	return pretty.Bytes(), nil
}

// EffectsFromJSON parses an Effects.json array back into one BCSV row per
// entry, in array order.
func EffectsFromJSON(data []byte) ([]bcsv.Row, error) {
	var raw []json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, gapaerr.Wrap(gapaerr.ValueOutOfRange, err, "unmarshaling Effects.json")
	}
	rows := make([]bcsv.Row, len(raw))
	for i, obj := range raw {
		row, err := EffectFromJSON(obj)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

func valuesEqual(a, b bcsv.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case bcsv.KindInt32:
		return a.I32 == b.I32
	case bcsv.KindFloat32:
		return a.F32 == b.F32
	case bcsv.KindString:
		return a.Str == b.Str
	default:
		return false
	}
}

func encodeValue(spec ColumnSpec, val bcsv.Value) (interface{}, error) {
	switch spec.Encoding {
	case EncodingCommaArray:
		return splitNonEmpty(val.Str, ","), nil
	case EncodingSpaceArray:
		return splitNonEmpty(val.Str, " "), nil
	case EncodingBool:
		return val.I32 != 0, nil
	case EncodingTRS:
		return ParseTRS(val.Str).String(), nil
	case EncodingColor, EncodingDrawOrder, EncodingPlain:
		switch val.Kind {
		case bcsv.KindString:
			return val.Str, nil
		case bcsv.KindFloat32:
			return val.F32, nil
		default:
			return val.I32, nil
		}
	default:
		return nil, gapaerr.New(gapaerr.ValueOutOfRange, "unknown column encoding").WithTag(string(spec.Encoding))
	}
}

func decodeValue(spec ColumnSpec, jv interface{}) (bcsv.Value, error) {
	switch spec.Encoding {
	case EncodingCommaArray:
		return bcsv.String(joinStrings(jv, ",")), nil
	case EncodingSpaceArray:
		return bcsv.String(joinStrings(jv, " ")), nil
	case EncodingBool:
		b, _ := jv.(bool)
		if b {
			return bcsv.Int(1), nil
		}
		return bcsv.Int(0), nil
	case EncodingTRS:
		s, _ := jv.(string)
		return bcsv.String(ParseTRS(s).String()), nil
	case EncodingColor:
		s, _ := jv.(string)
		if s != "" {
			if _, err := ParseColor(s); err != nil {
				return bcsv.Value{}, err.(*gapaerr.Error).WithTag(spec.JSON)
			}
		}
		return bcsv.String(s), nil
	case EncodingDrawOrder:
		s, _ := jv.(string)
		if s != "" {
			if _, ok := DrawOrderOrdinal(s); !ok {
				return bcsv.Value{}, gapaerr.New(gapaerr.ValueOutOfRange, "unknown DrawOrder name").WithTag(s)
			}
		}
		return bcsv.String(s), nil
	case EncodingPlain:
		switch spec.Type {
		case bcsv.TypeFloat:
			f, _ := jv.(float64)
			return bcsv.Float(float32(f)), nil
		case bcsv.TypeStringOffset:
			s, _ := jv.(string)
			return bcsv.String(s), nil
		default:
			f, _ := jv.(float64)
			return bcsv.Int(int32(f)), nil
		}
	default:
		return bcsv.Value{}, gapaerr.New(gapaerr.ValueOutOfRange, "unknown column encoding").WithTag(string(spec.Encoding))
	}
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, sep)
}

func joinStrings(jv interface{}, sep string) string {
	arr, ok := jv.([]interface{})
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
