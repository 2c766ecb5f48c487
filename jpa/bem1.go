package jpa

import (
	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

const tagBEM1 = "BEM1"

// DynamicsBlock (BEM1) carries a particle's emission volume, velocity, and
// lifetime parameters. Every SMG particle resource has exactly one.
type DynamicsBlock struct {
	VolumeType         VolumeType `json:"volumeType"`
	FixedDensity       bool       `json:"fixedDensity"`
	FixedInterval      bool       `json:"fixedInterval"`
	InheritScale       bool       `json:"inheritScale"`
	FollowEmitter      bool       `json:"followEmitter"`
	FollowEmitterChild bool       `json:"followEmitterChild"`

	Unknown uint32 `json:"unknown"`

	EmitterScaleX float32 `json:"emitterScaleX"`
	EmitterScaleY float32 `json:"emitterScaleY"`
	EmitterScaleZ float32 `json:"emitterScaleZ"`

	EmitterTranslationX float32 `json:"emitterTranslationX"`
	EmitterTranslationY float32 `json:"emitterTranslationY"`
	EmitterTranslationZ float32 `json:"emitterTranslationZ"`

	EmitterDirectionX float32 `json:"emitterDirectionX"`
	EmitterDirectionY float32 `json:"emitterDirectionY"`
	EmitterDirectionZ float32 `json:"emitterDirectionZ"`

	InitialVelocityOmni      float32 `json:"initialVelocityOmni"`
	InitialVelocityAxis      float32 `json:"initialVelocityAxis"`
	InitialVelocityRandom    float32 `json:"initialVelocityRandom"`
	InitialVelocityDirection float32 `json:"initialVelocityDirection"`

	Spread                float32 `json:"spread"`
	InitialVelocityRatio  float32 `json:"initialVelocityRatio"`
	Rate                  float32 `json:"rate"`
	RateRandom            float32 `json:"rateRandom"`
	LifetimeRandom        float32 `json:"lifetimeRandom"`
	VolumeSweep           float32 `json:"volumeSweep"`
	VolumeMinimumRadius   float32 `json:"volumeMinimumRadius"`
	AirResistance         float32 `json:"airResistance"`
	MomentRandom          float32 `json:"momentRandom"`

	EmitterRotationXDeg uint16 `json:"emitterRotationXDeg"`
	EmitterRotationYDeg uint16 `json:"emitterRotationYDeg"`
	EmitterRotationZDeg uint16 `json:"emitterRotationZDeg"`
	MaxFrame            uint16 `json:"maxFrame"`
	StartFrame          uint16 `json:"startFrame"`
	Lifetime            uint16 `json:"lifetime"`
	VolumeSize          uint16 `json:"volumeSize"`
	DivisionNumber      uint16 `json:"divisionNumber"`
	RateStep            uint8  `json:"rateStep"`
}

func decodeBEM1(body []byte) (*DynamicsBlock, error) {
	r := bytestream.NewReader(body)
	b := &DynamicsBlock{}

	flags, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BEM1 flags").WithTag(tagBEM1)
	}
	b.VolumeType = VolumeType(getBits(flags, 8, 0x07))
	b.FixedDensity = getBit(flags, 0)
	b.FixedInterval = getBit(flags, 1)
	b.InheritScale = getBit(flags, 2)
	b.FollowEmitter = getBit(flags, 3)
	b.FollowEmitterChild = getBit(flags, 4)

	if b.Unknown, err = r.U32(); err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BEM1 unknown").WithTag(tagBEM1)
	}

	floats := []*float32{
		&b.EmitterScaleX, &b.EmitterScaleY, &b.EmitterScaleZ,
		&b.EmitterTranslationX, &b.EmitterTranslationY, &b.EmitterTranslationZ,
		&b.EmitterDirectionX, &b.EmitterDirectionY, &b.EmitterDirectionZ,
		&b.InitialVelocityOmni, &b.InitialVelocityAxis, &b.InitialVelocityRandom,
		&b.InitialVelocityDirection, &b.Spread, &b.InitialVelocityRatio,
		&b.Rate, &b.RateRandom, &b.LifetimeRandom, &b.VolumeSweep,
		&b.VolumeMinimumRadius, &b.AirResistance, &b.MomentRandom,
	}
	for _, f := range floats {
		if *f, err = r.F32(); err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BEM1 float field").WithTag(tagBEM1)
		}
	}

	u16s := []*uint16{
		&b.EmitterRotationXDeg, &b.EmitterRotationYDeg, &b.EmitterRotationZDeg,
		&b.MaxFrame, &b.StartFrame, &b.Lifetime, &b.VolumeSize, &b.DivisionNumber,
	}
	for _, f := range u16s {
		if *f, err = r.U16(); err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BEM1 u16 field").WithTag(tagBEM1)
		}
	}

	if b.RateStep, err = r.U8(); err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BEM1 rate step").WithTag(tagBEM1)
	}
	// 3 bytes of trailing padding to bring the body to a 4-byte boundary.
	return b, nil
}

func (b *DynamicsBlock) encode() []byte {
	w := bytestream.NewWriter()

	var flags uint32
	setBits(&flags, 8, 0x07, uint32(b.VolumeType))
	setBit(&flags, 0, b.FixedDensity)
	setBit(&flags, 1, b.FixedInterval)
	setBit(&flags, 2, b.InheritScale)
	setBit(&flags, 3, b.FollowEmitter)
	setBit(&flags, 4, b.FollowEmitterChild)
	w.PutU32(flags)
	w.PutU32(b.Unknown)

	for _, f := range []float32{
		b.EmitterScaleX, b.EmitterScaleY, b.EmitterScaleZ,
		b.EmitterTranslationX, b.EmitterTranslationY, b.EmitterTranslationZ,
		b.EmitterDirectionX, b.EmitterDirectionY, b.EmitterDirectionZ,
		b.InitialVelocityOmni, b.InitialVelocityAxis, b.InitialVelocityRandom,
		b.InitialVelocityDirection, b.Spread, b.InitialVelocityRatio,
		b.Rate, b.RateRandom, b.LifetimeRandom, b.VolumeSweep,
		b.VolumeMinimumRadius, b.AirResistance, b.MomentRandom,
	} {
		w.PutF32(f)
	}
	for _, f := range []uint16{
		b.EmitterRotationXDeg, b.EmitterRotationYDeg, b.EmitterRotationZDeg,
		b.MaxFrame, b.StartFrame, b.Lifetime, b.VolumeSize, b.DivisionNumber,
	} {
		w.PutU16(f)
	}
	w.PutU8(b.RateStep)
	w.PutBytes(make([]byte, 3)) // pad to 4-byte boundary
	return w.Bytes()
}
