package jpa

import (
	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

const tagTDB1 = "TDB1"

// Resource is a complete particle definition: a chain of typed blocks plus
// a texture-index list resolved against the container's texture pool.
type Resource struct {
	Index uint16 `json:"-"`

	Dynamics   *DynamicsBlock `json:"-"`
	Fields     []*FieldBlock  `json:"-"`
	Keys       []*KeyBlock    `json:"-"`
	BaseShape  *BaseShape     `json:"-"`
	ExtraShape *ExtraShape    `json:"-"`
	ChildShape *ChildShape    `json:"-"` // optional
	ExTexShape *ExTexShape    `json:"-"` // optional

	// TextureIndices indexes into the container's texture pool, in the
	// order this resource's geometry references them. Container.Write
	// re-resolves these against the pool's final hash-sorted order
	// before encoding, so this field only needs to be valid against
	// whatever texture slice the resource was built against.
	TextureIndices []int16 `json:"-"`
}

// ReadResource decodes one particle resource starting at offset within
// buf, returning the decoded resource and the number of bytes consumed.
func ReadResource(buf []byte, offset int) (*Resource, int, error) {
	r := bytestream.NewReader(buf)
	r.SeekTo(offset)

	index, err := r.U16()
	if err != nil {
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "resource header: index")
	}
	numSections, err := r.U16()
	if err != nil {
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "resource header: section count")
	}
	numFieldBlocks, err := r.U8()
	if err != nil {
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "resource header: field block count")
	}
	numKeyBlocks, err := r.U8()
	if err != nil {
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "resource header: key block count")
	}
	numTextures, err := r.U8()
	if err != nil {
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "resource header: texture count")
	}
	if _, err := r.U8(); err != nil { // pad
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "resource header: pad")
	}

	res := &Resource{Index: index}
	pos := offset + 8

	for i := uint16(0); i < numSections; i++ {
		r.SeekTo(pos)
		tag, err := r.ReadFixedASCII(4)
		if err != nil {
			return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "block header: tag").WithOffset(int64(pos))
		}
		length, err := r.I32()
		if err != nil {
			return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "block header: length").WithOffset(int64(pos))
		}
		if length < 8 || pos+int(length) > len(buf) {
			return nil, 0, gapaerr.New(gapaerr.Truncated, "block length out of range").WithTag(tag).WithOffset(int64(pos))
		}
		body := buf[pos+8 : pos+int(length)]

		if err := res.absorbBlock(tag, body, int(numTextures)); err != nil {
			return nil, 0, err
		}

		pos += int(length)
	}

	if int(numFieldBlocks) != len(res.Fields) {
		return nil, 0, gapaerr.New(gapaerr.MissingBlock, "field block count mismatch").WithTag(tagFLD1).WithOffset(int64(offset))
	}
	if int(numKeyBlocks) != len(res.Keys) {
		return nil, 0, gapaerr.New(gapaerr.MissingBlock, "key block count mismatch").WithTag(tagKFA1).WithOffset(int64(offset))
	}
	if int(numTextures) != len(res.TextureIndices) {
		return nil, 0, gapaerr.New(gapaerr.MissingBlock, "texture count mismatch").WithTag(tagTDB1).WithOffset(int64(offset))
	}

	return res, pos - offset, nil
}

func (res *Resource) absorbBlock(tag string, body []byte, numTextures int) error {
	switch tag {
	case tagBEM1:
		b, err := decodeBEM1(body)
		if err != nil {
			return err
		}
		res.Dynamics = b
	case tagFLD1:
		b, err := decodeFLD1(body)
		if err != nil {
			return err
		}
		res.Fields = append(res.Fields, b)
	case tagKFA1:
		b, err := decodeKFA1(body)
		if err != nil {
			return err
		}
		res.Keys = append(res.Keys, b)
	case tagBSP1:
		b, err := decodeBSP1(body)
		if err != nil {
			return err
		}
		res.BaseShape = b
	case tagESP1:
		b, err := decodeExtraShape(body)
		if err != nil {
			return err
		}
		res.ExtraShape = b
	case tagSSP1:
		b, err := decodeChildShape(body)
		if err != nil {
			return err
		}
		res.ChildShape = b
	case tagETX1:
		b, err := decodeExTexShape(body)
		if err != nil {
			return err
		}
		res.ExTexShape = b
	case tagTDB1:
		ids, err := decodeTDB1(body, numTextures)
		if err != nil {
			return err
		}
		res.TextureIndices = ids
	default:
		return gapaerr.New(gapaerr.UnknownTag, "block tag not in registry").WithTag(tag)
	}
	return nil
}

// decodeTDB1 reads exactly numTextures int16 texture indices from the
// front of body. The resource header's texture count, not a padding
// heuristic, is what distinguishes a real trailing index of 0 from the
// 4-byte alignment padding that follows the array.
func decodeTDB1(body []byte, numTextures int) ([]int16, error) {
	r := bytestream.NewReader(body)
	ids := make([]int16, numTextures)
	for i := 0; i < numTextures; i++ {
		v, err := r.I16()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "TDB1 texture index").WithTag(tagTDB1)
		}
		ids[i] = v
	}
	return ids, nil
}

func encodeTDB1(ids []int16) []byte {
	w := bytestream.NewWriter()
	for _, id := range ids {
		w.PutI16(id)
	}
	w.AlignTo(4)
	return w.Bytes()
}

func writeBlock(w *bytestream.Writer, tag string, body []byte) error {
	w.PutBytes([]byte(tag))
	lengthAt := w.Len()
	w.PutU32(0)
	w.PutBytes(body)
	if err := w.AlignTo(4); err != nil {
		return err.(*gapaerr.Error).WithTag(tag)
	}
	total := w.Len() - (lengthAt - 4)
	if err := w.PatchU32At(lengthAt, uint32(total)); err != nil {
		return err.(*gapaerr.Error).WithTag(tag)
	}
	return nil
}

// WriteResource serializes res in canonical block order (Dynamics,
// Fields..., Keys..., BaseShape, ExtraShape, ChildShape?, ExTexShape?,
// TDB1). textureIndices overrides res.TextureIndices for the TDB1 block,
// letting Container.Write supply indices re-resolved against the final
// texture pool order without mutating res.
func WriteResource(res *Resource, textureIndices []int16) ([]byte, error) {
	if res.Dynamics == nil {
		return nil, gapaerr.New(gapaerr.MissingBlock, "resource has no DynamicsBlock").WithTag(tagBEM1)
	}
	if res.BaseShape == nil {
		return nil, gapaerr.New(gapaerr.MissingBlock, "resource has no BaseShape").WithTag(tagBSP1)
	}
	if res.ExtraShape == nil {
		return nil, gapaerr.New(gapaerr.MissingBlock, "resource has no ExtraShape").WithTag(tagESP1)
	}

	var numSections uint16
	body := bytestream.NewWriter()

	if err := writeBlock(body, tagBEM1, res.Dynamics.encode()); err != nil {
		return nil, err
	}
	numSections++

	for _, f := range res.Fields {
		if err := writeBlock(body, tagFLD1, f.encode()); err != nil {
			return nil, err
		}
		numSections++
	}
	for _, k := range res.Keys {
		if err := writeBlock(body, tagKFA1, k.encode()); err != nil {
			return nil, err
		}
		numSections++
	}
	if err := writeBlock(body, tagBSP1, res.BaseShape.encode()); err != nil {
		return nil, err
	}
	numSections++
	if err := writeBlock(body, tagESP1, res.ExtraShape.encode()); err != nil {
		return nil, err
	}
	numSections++
	if res.ChildShape != nil {
		if err := writeBlock(body, tagSSP1, res.ChildShape.encode()); err != nil {
			return nil, err
		}
		numSections++
	}
	if res.ExTexShape != nil {
		if err := writeBlock(body, tagETX1, res.ExTexShape.encode()); err != nil {
			return nil, err
		}
		numSections++
	}
	if len(textureIndices) > 0 {
		if err := writeBlock(body, tagTDB1, encodeTDB1(textureIndices)); err != nil {
			return nil, err
		}
		numSections++
	}

	if len(res.Fields) > 255 || len(res.Keys) > 255 || len(textureIndices) > 255 {
		return nil, gapaerr.New(gapaerr.ValueOutOfRange, "resource block count exceeds header's single byte width")
	}

	out := bytestream.NewWriter()
	out.PutU16(res.Index)
	out.PutU16(numSections)
	out.PutU8(uint8(len(res.Fields)))
	out.PutU8(uint8(len(res.Keys)))
	out.PutU8(uint8(len(textureIndices)))
	out.PutU8(0) // pad
	out.PutBytes(body.Bytes())
	return out.Bytes(), nil
}
