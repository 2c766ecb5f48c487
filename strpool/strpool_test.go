package strpool

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPool(t *testing.T) {
	Convey("Pool", t, func() {
		p := NewPool()

		Convey("interning the same string twice returns the same offset", func() {
			a := p.Intern("GroupName")
			b := p.Intern("GroupName")
			So(a, ShouldEqual, b)
		})

		Convey("does not share suffixes between unrelated strings", func() {
			// "Name" is a suffix of "GroupName" but must still get its own
			// entry, matching the reference packer's streaming-append pool.
			first := p.Intern("GroupName")
			second := p.Intern("Name")
			So(second, ShouldNotEqual, first+len("Group"))
			buf, err := p.Bytes(4)
			So(err, ShouldBeNil)

			r := NewReader(buf)
			s, err := r.StringAt(second)
			So(err, ShouldBeNil)
			So(s, ShouldEqual, "Name")
		})

		Convey("pads its output to the requested alignment", func() {
			p.Intern("abc")
			buf, err := p.Bytes(32)
			So(err, ShouldBeNil)
			So(len(buf)%32, ShouldEqual, 0)
		})

		Convey("round-trips arbitrary interned strings", func() {
			offA := p.Intern("3D")
			offB := p.Intern("AFTER_INDIRECT")
			buf, err := p.Bytes(4)
			So(err, ShouldBeNil)

			r := NewReader(buf)
			a, err := r.StringAt(offA)
			So(err, ShouldBeNil)
			So(a, ShouldEqual, "3D")

			b, err := r.StringAt(offB)
			So(err, ShouldBeNil)
			So(b, ShouldEqual, "AFTER_INDIRECT")
		})
	})
}
