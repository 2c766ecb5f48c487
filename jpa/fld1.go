package jpa

import (
	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

const tagFLD1 = "FLD1"

// FieldBlock (FLD1) applies a force (gravity, drag, vortex, ...) to a
// particle resource's emitted particles. A resource may carry zero or more.
type FieldBlock struct {
	FieldType           FieldType    `json:"fieldType"`
	VelocityType        FieldAddType `json:"velocityType"`
	NoInheritRotate     bool         `json:"noInheritRotate"`
	AirDrag             bool         `json:"airDrag"`
	FadeUseEnterTime    bool         `json:"fadeUseEnterTime"`
	FadeUseDistanceTime bool         `json:"fadeUseDistanceTime"`
	FadeUseFadeIn       bool         `json:"fadeUseFadeIn"`
	FadeUseFadeOut      bool         `json:"fadeUseFadeOut"`

	PositionX  float32 `json:"positionX"`
	PositionY  float32 `json:"positionY"`
	PositionZ  float32 `json:"positionZ"`
	DirectionX float32 `json:"directionX"`
	DirectionY float32 `json:"directionY"`
	DirectionZ float32 `json:"directionZ"`
	Param1     float32 `json:"param1"`
	Param2     float32 `json:"param2"`
	Param3     float32 `json:"param3"`
	FadeIn     float32 `json:"fadeIn"`
	FadeOut    float32 `json:"fadeOut"`
	EnterTime  float32 `json:"enterTime"`
	DistanceTime float32 `json:"distanceTime"`
	Cycle      uint8   `json:"cycle"`
}

func decodeFLD1(body []byte) (*FieldBlock, error) {
	r := bytestream.NewReader(body)
	f := &FieldBlock{}

	flags, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "FLD1 flags").WithTag(tagFLD1)
	}
	f.FieldType = FieldType(getBits(flags, 0, 0xF))
	f.VelocityType = FieldAddType(getBits(flags, 8, 0x03))
	f.NoInheritRotate = getBit(flags, 17)
	f.AirDrag = getBit(flags, 18)
	f.FadeUseEnterTime = getBit(flags, 19)
	f.FadeUseDistanceTime = getBit(flags, 20)
	f.FadeUseFadeIn = getBit(flags, 21)
	f.FadeUseFadeOut = getBit(flags, 22)

	floats := []*float32{
		&f.PositionX, &f.PositionY, &f.PositionZ,
		&f.DirectionX, &f.DirectionY, &f.DirectionZ,
		&f.Param1, &f.Param2, &f.Param3,
		&f.FadeIn, &f.FadeOut, &f.EnterTime, &f.DistanceTime,
	}
	for _, v := range floats {
		if *v, err = r.F32(); err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "FLD1 float field").WithTag(tagFLD1)
		}
	}

	if f.Cycle, err = r.U8(); err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "FLD1 cycle").WithTag(tagFLD1)
	}
	// 3 bytes of trailing padding to bring the body to a 4-byte boundary.
	return f, nil
}

func (f *FieldBlock) encode() []byte {
	w := bytestream.NewWriter()

	var flags uint32
	setBits(&flags, 0, 0xF, uint32(f.FieldType))
	setBits(&flags, 8, 0x03, uint32(f.VelocityType))
	setBit(&flags, 17, f.NoInheritRotate)
	setBit(&flags, 18, f.AirDrag)
	setBit(&flags, 19, f.FadeUseEnterTime)
	setBit(&flags, 20, f.FadeUseDistanceTime)
	setBit(&flags, 21, f.FadeUseFadeIn)
	setBit(&flags, 22, f.FadeUseFadeOut)
	w.PutU32(flags)

	for _, v := range []float32{
		f.PositionX, f.PositionY, f.PositionZ,
		f.DirectionX, f.DirectionY, f.DirectionZ,
		f.Param1, f.Param2, f.Param3,
		f.FadeIn, f.FadeOut, f.EnterTime, f.DistanceTime,
	} {
		w.PutF32(v)
	}
	w.PutU8(f.Cycle)
	w.PutBytes(make([]byte, 3))
	return w.Bytes()
}
