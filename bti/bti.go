// Package bti decodes and encodes a single Nintendo BTI texture image.
// Pixel and palette payloads are treated as opaque byte slabs: this
// package reproduces their placement and alignment bit-exactly without
// understanding the tiled pixel formats themselves.
package bti

import (
	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

const headerSize = 32

// Format is the BTI image-format byte.
type Format uint8

const (
	FormatI4     Format = 0x0
	FormatI8     Format = 0x1
	FormatIA4    Format = 0x2
	FormatIA8    Format = 0x3
	FormatRGB565 Format = 0x4
	FormatRGB5A3 Format = 0x5
	FormatRGBA32 Format = 0x6
	FormatC4     Format = 0x8
	FormatC8     Format = 0x9
	FormatC14X2  Format = 0xA
	FormatCMPR   Format = 0xE
)

// PaletteFormat is the BTI palette-format byte, meaningful only when
// Format is one of the C4/C8/C14X2 indexed formats.
type PaletteFormat uint8

const (
	PaletteIA8    PaletteFormat = 0x0
	PaletteRGB565 PaletteFormat = 0x1
	PaletteRGB5A3 PaletteFormat = 0x2
)

// Texture is a fully decoded BTI image: header fields plus the raw
// palette/pixel byte slabs, stored and reemitted verbatim.
type Texture struct {
	Format        Format
	AlphaSetting  uint8
	Width         uint16
	Height        uint16
	WrapS         uint8
	WrapT         uint8
	PaletteFormat PaletteFormat
	PaletteCount  uint16
	MinFilter     uint8
	MagFilter     uint8
	MinLOD        int8
	MaxLOD        int8
	MipmapCount   uint8
	LODBias       int16

	Palette []byte
	Pixels  []byte
}

// Read decodes a single BTI image from buf. buf must contain exactly the
// bytes of the image (header, optional palette, pixel data); it does not
// consume a surrounding container.
func Read(buf []byte) (*Texture, error) {
	r := bytestream.NewReader(buf)

	format, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: format")
	}
	alpha, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: alpha setting")
	}
	width, err := r.U16()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: width")
	}
	height, err := r.U16()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: height")
	}
	wrapS, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: wrap S")
	}
	wrapT, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: wrap T")
	}
	_, err = r.U8() // unknown / padding
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: padding")
	}
	paletteFormat, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: palette format")
	}
	paletteCount, err := r.U16()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: palette count")
	}
	paletteOffset, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: palette offset")
	}
	_, err = r.U32() // unknown
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: unknown1")
	}
	minFilter, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: min filter")
	}
	magFilter, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: mag filter")
	}
	minLOD, err := r.I8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: min LOD")
	}
	maxLOD, err := r.I8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: max LOD")
	}
	mipmapCount, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: mipmap count")
	}
	_, err = r.U8() // unknown
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: unknown2")
	}
	lodBias, err := r.I16()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: LOD bias")
	}
	dataOffset, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI header: data offset")
	}

	tex := &Texture{
		Format:        Format(format),
		AlphaSetting:  alpha,
		Width:         width,
		Height:        height,
		WrapS:         wrapS,
		WrapT:         wrapT,
		PaletteFormat: PaletteFormat(paletteFormat),
		PaletteCount:  paletteCount,
		MinFilter:     minFilter,
		MagFilter:     magFilter,
		MinLOD:        minLOD,
		MaxLOD:        maxLOD,
		MipmapCount:   mipmapCount,
		LODBias:       lodBias,
	}

	if paletteCount > 0 {
		paletteSize := int(paletteCount) * 2 // every BTI palette entry is 2 bytes
		r.SeekTo(int(paletteOffset))
		pal, err := r.Bytes(paletteSize)
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI palette data")
		}
		tex.Palette = append([]byte(nil), pal...)
	}

	r.SeekTo(int(dataOffset))
	pixels, err := r.Bytes(r.Remaining())
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BTI pixel data")
	}
	tex.Pixels = append([]byte(nil), pixels...)

	return tex, nil
}

// Write encodes tex, laying out header, palette, and pixel data in order,
// each aligned to 32 bytes.
func Write(tex *Texture) ([]byte, error) {
	w := bytestream.NewWriter()

	w.PutU8(uint8(tex.Format))
	w.PutU8(tex.AlphaSetting)
	w.PutU16(tex.Width)
	w.PutU16(tex.Height)
	w.PutU8(tex.WrapS)
	w.PutU8(tex.WrapT)
	w.PutU8(0) // padding
	w.PutU8(uint8(tex.PaletteFormat))
	w.PutU16(tex.PaletteCount)

	paletteOffsetAt := w.Len()
	w.PutU32(0) // palette offset, backpatched
	w.PutU32(0) // unknown1
	w.PutU8(tex.MinFilter)
	w.PutU8(tex.MagFilter)
	w.PutI8(tex.MinLOD)
	w.PutI8(tex.MaxLOD)
	w.PutU8(tex.MipmapCount)
	w.PutU8(0) // unknown2
	w.PutI16(tex.LODBias)

	dataOffsetAt := w.Len()
	w.PutU32(0) // data offset, backpatched

	if err := w.AlignTo(32); err != nil {
		return nil, err.(*gapaerr.Error)
	}

	if len(tex.Palette) > 0 {
		paletteOffset := w.Len()
		if err := w.PatchU32At(paletteOffsetAt, uint32(paletteOffset)); err != nil {
			return nil, err.(*gapaerr.Error)
		}
		w.PutBytes(tex.Palette)
		if err := w.AlignTo(32); err != nil {
			return nil, err.(*gapaerr.Error)
		}
	}

	dataOffset := w.Len()
	if err := w.PatchU32At(dataOffsetAt, uint32(dataOffset)); err != nil {
		return nil, err.(*gapaerr.Error)
	}
	w.PutBytes(tex.Pixels)
	if err := w.AlignTo(32); err != nil {
		return nil, err.(*gapaerr.Error)
	}

	return w.Bytes(), nil
}
