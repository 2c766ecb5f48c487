// Package jpa implements the JPAC 2-10 particle container: per-block
// field decoding for particle resources, and the outer container holding
// many resources plus a deduplicated pool of embedded BTI textures.
package jpa

import (
	"sort"

	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

const (
	magic          = "JPAC2-10"
	containerHeaderSize = 16
	textureNameWidth    = 0x14
	textureHeaderSize   = 0x20
)

// nameHash is the same JGadget rolling hash used for BCSV column names,
// applied here to texture file names so the texture pool can enforce
// spec's "no two textures with identical name hashes" invariant. The
// on-disk texture entry does not carry a separate stored hash field (see
// DESIGN.md); this is purely an in-memory dedup/lookup key.
func nameHash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*31 + uint32(name[i])
	}
	return h
}

// Texture is one embedded BTI blob inside a container's texture pool,
// identified by file name.
type Texture struct {
	Name string
	Data []byte // raw BTI bytes, verbatim
}

// Container is a fully decoded JPC file: its particle resources and
// deduplicated texture pool.
type Container struct {
	Resources []*Resource
	Textures  []*Texture
}

// Read decodes a JPC container from buf.
func Read(buf []byte) (*Container, error) {
	r := bytestream.NewReader(buf)

	tag, err := r.ReadFixedASCII(8)
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "JPC header: magic")
	}
	if tag != magic {
		return nil, gapaerr.New(gapaerr.InvalidMagic, "expected JPAC2-10 signature").WithTag(tag)
	}

	numResources, err := r.U16()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "JPC header: resource count")
	}
	numTextures, err := r.U16()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "JPC header: texture count")
	}
	texOffset, err := r.I32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "JPC header: texture table offset")
	}

	c := &Container{}

	pos := containerHeaderSize
	for i := uint16(0); i < numResources; i++ {
		res, consumed, err := ReadResource(buf, pos)
		if err != nil {
			return nil, err
		}
		c.Resources = append(c.Resources, res)
		pos += consumed
	}

	seenHashes := map[uint32]bool{}
	pos = int(texOffset)
	for i := uint16(0); i < numTextures; i++ {
		tex, consumed, err := readTexture(buf, pos)
		if err != nil {
			return nil, err
		}
		h := nameHash(tex.Name)
		if seenHashes[h] {
			return nil, gapaerr.New(gapaerr.DuplicateKey, "duplicate texture name hash").WithTag(tex.Name)
		}
		seenHashes[h] = true
		c.Textures = append(c.Textures, tex)
		pos += consumed
	}

	for _, res := range c.Resources {
		for _, idx := range res.TextureIndices {
			if int(idx) < 0 || int(idx) >= len(c.Textures) {
				return nil, gapaerr.New(gapaerr.DanglingReference, "resource texture index out of range").WithOffset(int64(idx))
			}
		}
	}

	return c, nil
}

func readTexture(buf []byte, offset int) (*Texture, int, error) {
	r := bytestream.NewReader(buf)
	r.SeekTo(offset)

	tag, err := r.ReadFixedASCII(4)
	if err != nil {
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "texture header: tag").WithOffset(int64(offset))
	}
	if tag != "TEX1" {
		return nil, 0, gapaerr.New(gapaerr.InvalidMagic, "expected TEX1 texture entry").WithTag(tag).WithOffset(int64(offset))
	}
	totalSize, err := r.I32()
	if err != nil {
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "texture header: total size").WithOffset(int64(offset))
	}
	if _, err := r.U32(); err != nil { // unknown, always 0
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "texture header: unknown").WithOffset(int64(offset))
	}
	r.SeekTo(offset + 0xC)
	name, err := r.ReadFixedASCII(textureNameWidth)
	if err != nil {
		return nil, 0, gapaerr.Wrap(gapaerr.Truncated, err, "texture header: name").WithOffset(int64(offset))
	}
	if totalSize < textureHeaderSize || offset+int(totalSize) > len(buf) {
		return nil, 0, gapaerr.New(gapaerr.Truncated, "texture total size out of range").WithTag(name).WithOffset(int64(offset))
	}
	data := buf[offset+textureHeaderSize : offset+int(totalSize)]

	return &Texture{Name: name, Data: append([]byte(nil), data...)}, int(totalSize), nil
}

func writeTexture(w *bytestream.Writer, tex *Texture) error {
	lengthAt := w.Len()
	w.PutBytes([]byte("TEX1"))
	w.PutU32(0) // total size, backpatched below
	w.PutU32(0) // unknown

	if err := w.WriteFixedASCII(tex.Name, textureNameWidth); err != nil {
		return err.(*gapaerr.Error)
	}
	w.PutBytes(tex.Data)
	if err := w.AlignTo(32); err != nil {
		return err.(*gapaerr.Error)
	}

	total := w.Len() - lengthAt
	if err := w.PatchU32At(lengthAt+4, uint32(total)); err != nil {
		return err.(*gapaerr.Error)
	}
	return nil
}

// Write encodes c into a JPC container. Textures are emitted in
// deterministic name-hash order, with exact duplicates (same name and
// byte-identical content) collapsed to one entry.
// Each resource's TextureIndices was resolved against c.Textures' input
// order, which generally differs from this hash-sorted, deduplicated
// order, so every index is re-resolved by texture name before encoding.
func Write(c *Container) ([]byte, error) {
	textures := dedupTextures(c.Textures)
	sort.Slice(textures, func(i, j int) bool {
		return nameHash(textures[i].Name) < nameHash(textures[j].Name)
	})

	nameByOldIndex := make([]string, len(c.Textures))
	for i, t := range c.Textures {
		nameByOldIndex[i] = t.Name
	}
	newIndexByName := make(map[string]int, len(textures))
	for i, t := range textures {
		newIndexByName[t.Name] = i
	}

	w := bytestream.NewWriter()
	w.PutBytes([]byte(magic))
	w.PutU16(uint16(len(c.Resources)))
	w.PutU16(uint16(len(textures)))
	texOffsetAt := w.Len()
	w.PutU32(0) // texture table offset, backpatched below

	for _, res := range c.Resources {
		resolved := make([]int16, len(res.TextureIndices))
		for i, idx := range res.TextureIndices {
			if int(idx) < 0 || int(idx) >= len(nameByOldIndex) {
				return nil, gapaerr.New(gapaerr.DanglingReference, "resource texture index out of range").WithOffset(int64(idx))
			}
			newIdx, ok := newIndexByName[nameByOldIndex[idx]]
			if !ok {
				return nil, gapaerr.New(gapaerr.DanglingReference, "resource texture not present in container's texture pool").WithTag(nameByOldIndex[idx])
			}
			resolved[i] = int16(newIdx)
		}
		body, err := WriteResource(res, resolved)
		if err != nil {
			return nil, err
		}
		w.PutBytes(body)
	}
	if err := w.AlignTo(32); err != nil {
		return nil, err.(*gapaerr.Error)
	}

	if err := w.PatchU32At(texOffsetAt, uint32(w.Len())); err != nil {
		return nil, err.(*gapaerr.Error)
	}

	for _, tex := range textures {
		if err := writeTexture(w, tex); err != nil {
			return nil, err
		}
	}

	return w.Bytes(), nil
}

// dedupTextures collapses textures that share both name and byte-identical
// content to a single entry. Textures with identical content but different
// names are all kept, since resources reference textures by name.
func dedupTextures(in []*Texture) []*Texture {
	seen := map[string]bool{}
	var out []*Texture
	for _, t := range in {
		key := t.Name + "\x00" + string(t.Data)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
