package bytestream

import (
	"testing"

	"github.com/AwesomeTMC/gapac/gapaerr"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReaderWriterRoundTrip(t *testing.T) {
	Convey("Writer/Reader", t, func() {
		w := NewWriter()
		w.PutU8(0xAB)
		w.PutU16(0x1234)
		w.PutU32(0xDEADBEEF)
		w.PutI32(-1)
		w.PutF32(1.5)
		So(w.WriteFixedASCII("JPAC2-10", 8), ShouldBeNil)
		So(w.AlignTo(32), ShouldBeNil)

		Convey("round-trips every scalar in order", func() {
			r := NewReader(w.Bytes())

			u8, err := r.U8()
			So(err, ShouldBeNil)
			So(u8, ShouldEqual, 0xAB)

			u16, err := r.U16()
			So(err, ShouldBeNil)
			So(u16, ShouldEqual, 0x1234)

			u32, err := r.U32()
			So(err, ShouldBeNil)
			So(u32, ShouldEqual, 0xDEADBEEF)

			i32, err := r.I32()
			So(err, ShouldBeNil)
			So(i32, ShouldEqual, -1)

			f32, err := r.F32()
			So(err, ShouldBeNil)
			So(f32, ShouldEqual, float32(1.5))

			tag, err := r.ReadFixedASCII(8)
			So(err, ShouldBeNil)
			So(tag, ShouldEqual, "JPAC2-10")

			So(r.AlignTo(32), ShouldBeNil)
			So(r.Pos()%32, ShouldEqual, 0)
		})

		Convey("buffer length is 32-byte aligned", func() {
			So(w.Len()%32, ShouldEqual, 0)
		})
	})

	Convey("a read past the end of the buffer fails with Truncated", t, func() {
		r := NewReader([]byte{1, 2, 3})
		_, err := r.U32()
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.Truncated), ShouldBeTrue)
	})

	Convey("ReadCStringAt", t, func() {
		buf := []byte{'a', 'b', 'c', 0, 'x', 'y'}
		r := NewReader(buf)

		Convey("reads a NUL-terminated string without moving the cursor", func() {
			s, err := r.ReadCStringAt(0)
			So(err, ShouldBeNil)
			So(s, ShouldEqual, "abc")
			So(r.Pos(), ShouldEqual, 0)
		})

		Convey("fails with Truncated when there is no terminating NUL", func() {
			_, err := r.ReadCStringAt(4)
			So(err, ShouldNotBeNil)
			So(gapaerr.Is(err, gapaerr.Truncated), ShouldBeTrue)
		})
	})

	Convey("WriteFixedASCII rejects strings longer than the field width", t, func() {
		w := NewWriter()
		err := w.WriteFixedASCII("toolong", 4)
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.ValueOutOfRange), ShouldBeTrue)
	})

	Convey("PatchU32At backpatches a length field after the fact", t, func() {
		w := NewWriter()
		w.PutU32(0) // placeholder
		w.PutBytes([]byte{1, 2, 3, 4, 5, 6})
		So(w.PatchU32At(0, uint32(w.Len())), ShouldBeNil)

		r := NewReader(w.Bytes())
		size, err := r.U32()
		So(err, ShouldBeNil)
		So(size, ShouldEqual, uint32(10))
	})
}
