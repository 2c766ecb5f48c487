package jpa

import (
	"testing"

	"github.com/AwesomeTMC/gapac/gapaerr"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleResource() *Resource {
	return &Resource{
		Index: 0,
		Dynamics: &DynamicsBlock{
			VolumeType: VolumeSphere,
			Rate:       1.5,
			MaxFrame:   60,
		},
		Fields: []*FieldBlock{
			{FieldType: FieldGravity, PositionY: -9.8},
		},
		Keys: []*KeyBlock{
			{
				KeyType: KeyScale,
				Keyframes: []Keyframe{
					{Time: 0, Value: 0, TangentOut: 1},
					{Time: 1, Value: 1, TangentIn: 1},
				},
			},
		},
		BaseShape: &BaseShape{
			ShapeType:  ShapeBillboard,
			BaseSizeX:  1,
			BaseSizeY:  1,
			BlendMode:  BlendBlend,
			Extra:      []byte{},
		},
		ExtraShape:     &ExtraShape{Body: []byte{}},
		TextureIndices: []int16{0},
	}
}

func TestResourceRoundTrip(t *testing.T) {
	Convey("a resource with dynamics, a field, a key, a base shape, and a texture index", t, func() {
		res := sampleResource()

		buf, err := WriteResource(res, res.TextureIndices)
		So(err, ShouldBeNil)

		Convey("the encoded resource length is a multiple of 4", func() {
			So(len(buf)%4, ShouldEqual, 0)
		})

		Convey("decodes back with equivalent field values", func() {
			got, consumed, err := ReadResource(buf, 0)
			So(err, ShouldBeNil)
			So(consumed, ShouldEqual, len(buf))

			So(got.Dynamics.VolumeType, ShouldEqual, VolumeSphere)
			So(got.Dynamics.Rate, ShouldEqual, float32(1.5))
			So(got.Dynamics.MaxFrame, ShouldEqual, uint16(60))

			So(len(got.Fields), ShouldEqual, 1)
			So(got.Fields[0].FieldType, ShouldEqual, FieldGravity)
			So(got.Fields[0].PositionY, ShouldEqual, float32(-9.8))

			So(len(got.Keys), ShouldEqual, 1)
			So(got.Keys[0].KeyType, ShouldEqual, KeyScale)
			So(len(got.Keys[0].Keyframes), ShouldEqual, 2)

			So(got.BaseShape.ShapeType, ShouldEqual, ShapeBillboard)
			So(got.TextureIndices, ShouldResemble, []int16{0})
		})
	})

	Convey("a resource missing its DynamicsBlock fails with MissingBlock", t, func() {
		res := sampleResource()
		res.Dynamics = nil
		_, err := WriteResource(res, res.TextureIndices)
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.MissingBlock), ShouldBeTrue)
	})

	Convey("a single odd-valued texture index isn't swallowed by TDB1's alignment padding", t, func() {
		res := sampleResource()
		res.TextureIndices = []int16{5}

		buf, err := WriteResource(res, res.TextureIndices)
		So(err, ShouldBeNil)

		got, _, err := ReadResource(buf, 0)
		So(err, ShouldBeNil)
		So(got.TextureIndices, ShouldResemble, []int16{5})
	})
}

func TestContainerRoundTrip(t *testing.T) {
	Convey("an empty container", t, func() {
		c := &Container{}
		buf, err := Write(c)
		So(err, ShouldBeNil)

		Convey("round-trips to zero resources and textures", func() {
			got, err := Read(buf)
			So(err, ShouldBeNil)
			So(got.Resources, ShouldBeEmpty)
			So(got.Textures, ShouldBeEmpty)
		})
	})

	Convey("a single resource referencing a single texture", t, func() {
		res := sampleResource()
		c := &Container{
			Resources: []*Resource{res},
			Textures:  []*Texture{{Name: "mr_glow01_i", Data: []byte{1, 2, 3, 4}}},
		}

		buf, err := Write(c)
		So(err, ShouldBeNil)

		got, err := Read(buf)
		So(err, ShouldBeNil)
		So(len(got.Resources), ShouldEqual, 1)
		So(len(got.Textures), ShouldEqual, 1)
		So(got.Textures[0].Name, ShouldEqual, "mr_glow01_i")
		So(got.Resources[0].TextureIndices, ShouldResemble, []int16{0})
	})

	Convey("a resource with a texture index beyond the texture pool fails with DanglingReference", t, func() {
		res := sampleResource()
		res.TextureIndices = []int16{5}
		c := &Container{Resources: []*Resource{res}}
		_, err := Write(c)
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.DanglingReference), ShouldBeTrue)
	})

	Convey("a resource's texture index is re-resolved against the hash-sorted texture pool", t, func() {
		// "zzz" hashes higher than "aaa", so insertion order (what
		// TextureIndices was built against) and the written, hash-sorted
		// pool order disagree: the fix must follow the texture by name,
		// not by its original slice position.
		res := sampleResource()
		res.TextureIndices = []int16{0} // refers to c.Textures[0], "zzz", by insertion order
		c := &Container{
			Resources: []*Resource{res},
			Textures: []*Texture{
				{Name: "zzz", Data: []byte{9, 9, 9, 9}},
				{Name: "aaa", Data: []byte{1, 1, 1, 1}},
			},
		}

		buf, err := Write(c)
		So(err, ShouldBeNil)

		got, err := Read(buf)
		So(err, ShouldBeNil)
		So(got.Textures[0].Name, ShouldEqual, "aaa")
		So(got.Textures[1].Name, ShouldEqual, "zzz")

		So(len(got.Resources[0].TextureIndices), ShouldEqual, 1)
		resolvedIdx := got.Resources[0].TextureIndices[0]
		So(got.Textures[resolvedIdx].Name, ShouldEqual, "zzz")
	})
}
