package jpa

import (
	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

const tagBSP1 = "BSP1"

// BaseShape (BSP1) describes a particle's base geometry, blending, and
// color-select behavior. Every resource has exactly one.
//
// Only the leading fixed-layout fields are decoded by name. BSP1 carries,
// beyond them, flag-gated variable-length trailing arrays (texture-index
// animation data, primary/environment color keyframe data) whose exact
// byte offsets depend on several more flag bits than this package
// currently exposes named fields for. That trailing region is preserved
// verbatim in Extra so round-trip fidelity holds regardless.
type BaseShape struct {
	ShapeType                ShapeType     `json:"shapeType"`
	DirectionType            DirectionType `json:"directionType"`
	RotationType             RotationType  `json:"rotationType"`
	PlaneType                PlaneType     `json:"planeType"`
	FlagsUnk11               bool          `json:"flagsUnk11"`
	IsGlobalColorAnimation   bool          `json:"isGlobalColorAnimation"`
	FlagsUnk13               bool          `json:"flagsUnk13"`
	IsGlobalTextureAnimation bool          `json:"isGlobalTextureAnimation"`
	ColorInSelect            uint8         `json:"colorInSelect"`
	AlphaInSelect            uint8         `json:"alphaInSelect"`
	IsEnableProjection       bool          `json:"isEnableProjection"`
	IsDrawForwardAhead       bool          `json:"isDrawForwardAhead"`
	IsDrawPrintAhead         bool          `json:"isDrawPrintAhead"`
	FlagsUnk23               bool          `json:"flagsUnk23"`
	IsEnableTexScrollAnim    bool          `json:"isEnableTexScrollAnim"`
	DoubleTilingS            bool          `json:"doubleTilingS"`
	DoubleTilingT            bool          `json:"doubleTilingT"`
	IsNoDrawParent           bool          `json:"isNoDrawParent"`
	IsNoDrawChild            bool          `json:"isNoDrawChild"`

	BaseSizeX float32 `json:"baseSizeX"`
	BaseSizeY float32 `json:"baseSizeY"`

	BlendMode           BlendMode   `json:"blendMode"`
	SourceFactor        BlendFactor `json:"sourceFactor"`
	DestinationFactor   BlendFactor `json:"destinationFactor"`
	BlendModeFlagsUnk10 bool        `json:"blendModeFlagsUnk10"`
	BlendModeFlagsUnk14 bool        `json:"blendModeFlagsUnk14"`

	AlphaCompareFlags uint8 `json:"alphaCompareFlags"`

	// Extra holds every byte of the block body past AlphaCompareFlags,
	// verbatim.
	Extra []byte `json:"extra"`
}

func decodeBSP1(body []byte) (*BaseShape, error) {
	r := bytestream.NewReader(body)
	b := &BaseShape{}

	flags, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BSP1 flags").WithTag(tagBSP1)
	}
	b.ShapeType = ShapeType(getBits(flags, 0, 0xF))
	b.DirectionType = DirectionType(getBits(flags, 4, 0x7))
	b.RotationType = RotationType(getBits(flags, 7, 0x7))
	b.PlaneType = PlaneType(getBits(flags, 10, 0x1))
	b.FlagsUnk11 = getBit(flags, 11)
	b.IsGlobalColorAnimation = getBit(flags, 12)
	b.FlagsUnk13 = getBit(flags, 13)
	b.IsGlobalTextureAnimation = getBit(flags, 14)
	b.ColorInSelect = uint8(getBits(flags, 15, 0x7))
	b.AlphaInSelect = uint8(getBits(flags, 18, 0x1))
	b.IsEnableProjection = getBit(flags, 20)
	b.IsDrawForwardAhead = getBit(flags, 21)
	b.IsDrawPrintAhead = getBit(flags, 22)
	b.FlagsUnk23 = getBit(flags, 23)
	b.IsEnableTexScrollAnim = getBit(flags, 24)
	b.DoubleTilingS = getBit(flags, 25)
	b.DoubleTilingT = getBit(flags, 26)
	b.IsNoDrawParent = getBit(flags, 27)
	b.IsNoDrawChild = getBit(flags, 28)

	if b.BaseSizeX, err = r.F32(); err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BSP1 base size x").WithTag(tagBSP1)
	}
	if b.BaseSizeY, err = r.F32(); err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BSP1 base size y").WithTag(tagBSP1)
	}

	blendFlags, err := r.U16()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BSP1 blend mode flags").WithTag(tagBSP1)
	}
	b.BlendMode = BlendMode(getBits16(blendFlags, 0, 0x3))
	b.SourceFactor = BlendFactor(getBits16(blendFlags, 2, 0xF))
	b.DestinationFactor = BlendFactor(getBits16(blendFlags, 6, 0xF))
	b.BlendModeFlagsUnk10 = blendFlags&(1<<10) != 0
	b.BlendModeFlagsUnk14 = blendFlags&(1<<14) != 0

	if b.AlphaCompareFlags, err = r.U8(); err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BSP1 alpha compare flags").WithTag(tagBSP1)
	}

	rest, err := r.Bytes(r.Remaining())
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BSP1 trailing data").WithTag(tagBSP1)
	}
	b.Extra = append([]byte(nil), rest...)

	return b, nil
}

func (b *BaseShape) encode() []byte {
	w := bytestream.NewWriter()

	var flags uint32
	setBits(&flags, 0, 0xF, uint32(b.ShapeType))
	setBits(&flags, 4, 0x7, uint32(b.DirectionType))
	setBits(&flags, 7, 0x7, uint32(b.RotationType))
	setBits(&flags, 10, 0x1, uint32(b.PlaneType))
	setBit(&flags, 11, b.FlagsUnk11)
	setBit(&flags, 12, b.IsGlobalColorAnimation)
	setBit(&flags, 13, b.FlagsUnk13)
	setBit(&flags, 14, b.IsGlobalTextureAnimation)
	setBits(&flags, 15, 0x7, uint32(b.ColorInSelect))
	setBits(&flags, 18, 0x1, uint32(b.AlphaInSelect))
	setBit(&flags, 20, b.IsEnableProjection)
	setBit(&flags, 21, b.IsDrawForwardAhead)
	setBit(&flags, 22, b.IsDrawPrintAhead)
	setBit(&flags, 23, b.FlagsUnk23)
	setBit(&flags, 24, b.IsEnableTexScrollAnim)
	setBit(&flags, 25, b.DoubleTilingS)
	setBit(&flags, 26, b.DoubleTilingT)
	setBit(&flags, 27, b.IsNoDrawParent)
	setBit(&flags, 28, b.IsNoDrawChild)
	w.PutU32(flags)

	w.PutF32(b.BaseSizeX)
	w.PutF32(b.BaseSizeY)

	var blendFlags uint16
	setBits16(&blendFlags, 0, 0x3, uint16(b.BlendMode))
	setBits16(&blendFlags, 2, 0xF, uint16(b.SourceFactor))
	setBits16(&blendFlags, 6, 0xF, uint16(b.DestinationFactor))
	if b.BlendModeFlagsUnk10 {
		blendFlags |= 1 << 10
	}
	if b.BlendModeFlagsUnk14 {
		blendFlags |= 1 << 14
	}
	w.PutU16(blendFlags)

	w.PutU8(b.AlphaCompareFlags)
	w.PutBytes(b.Extra)
	return w.Bytes()
}
