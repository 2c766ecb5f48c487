package jpa

import (
	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

const tagKFA1 = "KFA1"

// Keyframe is one control point of a KeyBlock's animation curve.
type Keyframe struct {
	Time       float32 `json:"time"`
	Value      float32 `json:"value"`
	TangentIn  float32 `json:"tangentIn"`
	TangentOut float32 `json:"tangentOut"`
}

// KeyBlock (KFA1) animates a single particle parameter (selected by
// KeyType) over a Hermite-interpolated keyframe curve.
type KeyBlock struct {
	KeyType   KeyType    `json:"keyType"`
	Loop      bool       `json:"loop"`
	Keyframes []Keyframe `json:"keyframes"`
}

func decodeKFA1(body []byte) (*KeyBlock, error) {
	r := bytestream.NewReader(body)
	k := &KeyBlock{}

	keyType, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "KFA1 key type").WithTag(tagKFA1)
	}
	k.KeyType = KeyType(keyType)

	keyCount, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "KFA1 key count").WithTag(tagKFA1)
	}
	if _, err := r.U8(); err != nil { // unused
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "KFA1 unused").WithTag(tagKFA1)
	}
	loop, err := r.U8()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "KFA1 loop").WithTag(tagKFA1)
	}
	k.Loop = loop != 0

	k.Keyframes = make([]Keyframe, keyCount)
	for i := range k.Keyframes {
		kf := &k.Keyframes[i]
		if kf.Time, err = r.F32(); err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "KFA1 keyframe time").WithTag(tagKFA1)
		}
		if kf.Value, err = r.F32(); err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "KFA1 keyframe value").WithTag(tagKFA1)
		}
		if kf.TangentIn, err = r.F32(); err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "KFA1 keyframe tangent in").WithTag(tagKFA1)
		}
		if kf.TangentOut, err = r.F32(); err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "KFA1 keyframe tangent out").WithTag(tagKFA1)
		}
	}
	return k, nil
}

func (k *KeyBlock) encode() []byte {
	w := bytestream.NewWriter()
	w.PutU8(uint8(k.KeyType))
	w.PutU8(uint8(len(k.Keyframes)))
	w.PutU8(0) // unused
	if k.Loop {
		w.PutU8(1)
	} else {
		w.PutU8(0)
	}
	for _, kf := range k.Keyframes {
		w.PutF32(kf.Time)
		w.PutF32(kf.Value)
		w.PutF32(kf.TangentIn)
		w.PutF32(kf.TangentOut)
	}
	return w.Bytes()
}
