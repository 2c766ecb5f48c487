package bcsv

import (
	"testing"

	"github.com/AwesomeTMC/gapac/gapaerr"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHash(t *testing.T) {
	Convey("Hash", t, func() {
		Convey("is deterministic and matches the stated h = h*31 + byte formula", func() {
			var want uint32
			for _, b := range []byte("GroupName") {
				want = want*31 + uint32(b)
			}
			So(Hash("GroupName"), ShouldEqual, want)
		})

		Convey("known column names resolve back from their hash", func() {
			h := Hash("UniqueName")
			So(LookupName(h), ShouldEqual, "UniqueName")
		})

		Convey("unknown hashes are surfaced in the hex fallback form", func() {
			name := LookupName(0x12345678)
			So(name, ShouldEqual, "_0x12345678")
		})
	})
}

func schemaColumns() []Column {
	group, _ := NewColumn("GroupName", TypeStringOffset)
	start, _ := NewColumn("StartFrame", TypeLong)
	scale, _ := NewColumn("ScaleValue", TypeFloat)
	return SequentialLayout([]Column{group, start, scale})
}

func TestTableRoundTrip(t *testing.T) {
	Convey("Write then Read", t, func() {
		cols := schemaColumns()
		rows := []Row{
			{"GroupName": String("Kuribo"), "StartFrame": Int(0), "ScaleValue": Float(1.0)},
			{"GroupName": String("Kameck"), "StartFrame": Int(-3), "ScaleValue": Float(2.5)},
		}

		buf, err := Write(cols, rows)
		So(err, ShouldBeNil)

		Convey("the encoded buffer is 32-byte aligned overall", func() {
			So(len(buf)%32, ShouldEqual, 0)
		})

		Convey("decodes back to the same rows", func() {
			tbl, err := Read(buf)
			So(err, ShouldBeNil)
			So(len(tbl.Rows), ShouldEqual, 2)

			So(tbl.Rows[0]["GroupName"].Str, ShouldEqual, "Kuribo")
			So(tbl.Rows[0]["StartFrame"].I32, ShouldEqual, 0)
			So(tbl.Rows[0]["ScaleValue"].F32, ShouldEqual, float32(1.0))

			So(tbl.Rows[1]["GroupName"].Str, ShouldEqual, "Kameck")
			So(tbl.Rows[1]["StartFrame"].I32, ShouldEqual, -3)
			So(tbl.Rows[1]["ScaleValue"].F32, ShouldEqual, float32(2.5))
		})
	})

	Convey("a row missing a declared column fails with UnknownTag", t, func() {
		cols := schemaColumns()
		_, err := Write(cols, []Row{{"GroupName": String("x")}})
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.UnknownTag), ShouldBeTrue)
	})
}

func TestBitPacking(t *testing.T) {
	Convey("two columns sharing a row offset with disjoint masks compose without clobbering", t, func() {
		// Read keys rows by dictionary name, so the test's column names
		// must be known for the decoded rows to carry them.
		RegisterColumnName("Lo")
		RegisterColumnName("Hi")
		lo, _ := NewColumn("Lo", TypeChar)
		lo.Mask = 0x0F
		lo.Shift = 0
		hi, _ := NewColumn("Hi", TypeChar)
		hi.Mask = 0xF0
		hi.Shift = 4

		cols := []Column{lo, hi} // both offset 0 by default
		rows := []Row{{"Lo": Int(0x3), "Hi": Int(0x5)}}

		buf, err := Write(cols, rows)
		So(err, ShouldBeNil)

		tbl, err := Read(buf)
		So(err, ShouldBeNil)
		So(tbl.Rows[0]["Lo"].I32, ShouldEqual, 0x3)
		So(tbl.Rows[0]["Hi"].I32, ShouldEqual, 0x5)
	})

	Convey("a signed value that doesn't fit its mask's bit width fails with ValueOutOfRange", t, func() {
		narrow, _ := NewColumn("Narrow", TypeChar)
		narrow.Mask = 0x0F // 4-bit signed range is [-8,7]
		_, err := Write([]Column{narrow}, []Row{{"Narrow": Int(100)}})
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.ValueOutOfRange), ShouldBeTrue)
	})
}
