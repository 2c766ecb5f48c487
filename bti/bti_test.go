package bti

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTextureRoundTrip(t *testing.T) {
	Convey("a texture with a palette and pixel data", t, func() {
		tex := &Texture{
			Format:        FormatC8,
			Width:         32,
			Height:        32,
			WrapS:         1,
			WrapT:         1,
			PaletteFormat: PaletteRGB5A3,
			PaletteCount:  16,
			MipmapCount:   1,
			Palette:       make([]byte, 32),
			Pixels:        make([]byte, 1024),
		}
		for i := range tex.Palette {
			tex.Palette[i] = byte(i)
		}
		for i := range tex.Pixels {
			tex.Pixels[i] = byte(i % 251)
		}

		buf, err := Write(tex)
		So(err, ShouldBeNil)

		Convey("is 32-byte aligned", func() {
			So(len(buf)%32, ShouldEqual, 0)
		})

		Convey("decodes back to the same header fields and byte slabs", func() {
			got, err := Read(buf)
			So(err, ShouldBeNil)
			So(got.Format, ShouldEqual, tex.Format)
			So(got.Width, ShouldEqual, tex.Width)
			So(got.Height, ShouldEqual, tex.Height)
			So(got.PaletteFormat, ShouldEqual, tex.PaletteFormat)
			So(got.PaletteCount, ShouldEqual, tex.PaletteCount)
			So(got.Palette, ShouldResemble, tex.Palette)
			So(got.Pixels, ShouldResemble, tex.Pixels)
		})
	})

	Convey("a texture with no palette", t, func() {
		tex := &Texture{
			Format: FormatRGBA32,
			Width:  8,
			Height: 8,
			Pixels: make([]byte, 256),
		}
		buf, err := Write(tex)
		So(err, ShouldBeNil)

		got, err := Read(buf)
		So(err, ShouldBeNil)
		So(got.Palette, ShouldBeEmpty)
		So(got.Pixels, ShouldResemble, tex.Pixels)
	})
}
