package rarc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/AwesomeTMC/gapac/gapaerr"
	. "github.com/smartystreets/goconvey/convey"
)

// buildMinimalArchive hand-assembles a RARC buffer with one root directory
// containing "." and ".." (which the walker must skip) and one file,
// "Test.txt" -> "hello".
func buildMinimalArchive() []byte {
	be := binary.BigEndian

	strings := []byte{}
	strOff := map[string]uint32{}
	appendStr := func(s string) {
		strOff[s] = uint32(len(strings))
		strings = append(strings, s...)
		strings = append(strings, 0)
	}
	appendStr("root")
	appendStr(".")
	appendStr("..")
	appendStr("Test.txt")
	for len(strings)%4 != 0 {
		strings = append(strings, 0)
	}

	const offInfo = 0x20
	const nodeSize = 0x10
	const fileEntrySize = 0x14
	offNodesRel := uint32(0x20)
	offFilesRel := offNodesRel + nodeSize
	offStringsRel := offFilesRel + 3*fileEntrySize

	lenInfo := offStringsRel + uint32(len(strings))
	offData := offInfo + lenInfo

	buf := make([]byte, int(offData)+len("hello"))
	copy(buf[0:4], magic)
	be.PutUint32(buf[0x8:], offInfo)
	be.PutUint32(buf[0xC:], lenInfo)

	info := buf[offInfo:]
	be.PutUint32(info[0x0:], 1) // num_nodes
	be.PutUint32(info[0x4:], offNodesRel)
	be.PutUint32(info[0xC:], offFilesRel)
	be.PutUint32(info[0x14:], offStringsRel)

	node := info[offNodesRel:]
	be.PutUint32(node[0x4:], strOff["root"])
	be.PutUint16(node[0xA:], 3) // num_files
	be.PutUint32(node[0xC:], 0) // idx_files_start

	files := info[offFilesRel:]
	putFileEntry := func(i int, attr uint8, nameOff uint32, dataOff, dataLen uint32) {
		e := files[i*fileEntrySize:]
		flagsWord := uint32(attr)<<24 | (nameOff & 0x00FFFFFF)
		be.PutUint32(e[0x4:], flagsWord)
		be.PutUint32(e[0x8:], dataOff)
		be.PutUint32(e[0xC:], dataLen)
	}
	putFileEntry(0, 1, strOff["."], 0, 0)
	putFileEntry(1, 1, strOff[".."], 0, 0)
	putFileEntry(2, 0, strOff["Test.txt"], 0, 5)

	copy(info[offStringsRel:], strings)

	copy(buf[offData:], []byte("hello"))
	return buf
}

func TestArchiveRead(t *testing.T) {
	Convey("a minimal RARC archive", t, func() {
		buf := buildMinimalArchive()
		arc, err := Read(buf)
		So(err, ShouldBeNil)

		Convey("skips . and .. entries", func() {
			So(len(arc.Root.Files), ShouldEqual, 1)
		})

		Convey("decodes the file's name and data", func() {
			So(arc.Root.Files[0].Name, ShouldEqual, "Test.txt")
			So(bytes.Equal(arc.Root.Files[0].Data, []byte("hello")), ShouldBeTrue)
		})

		Convey("FindFile resolves a top-level path", func() {
			f, err := FindFile(arc.Root, "Test.txt")
			So(err, ShouldBeNil)
			So(f.Name, ShouldEqual, "Test.txt")
		})

		Convey("FindFile is case-insensitive", func() {
			f, err := FindFile(arc.Root, "TEST.TXT")
			So(err, ShouldBeNil)
			So(f.Name, ShouldEqual, "Test.txt")
		})

		Convey("FindFile fails with DanglingReference for a missing path", func() {
			_, err := FindFile(arc.Root, "Nope.txt")
			So(err, ShouldNotBeNil)
			So(gapaerr.Is(err, gapaerr.DanglingReference), ShouldBeTrue)
		})
	})

	Convey("a buffer with the wrong magic fails with InvalidMagic", t, func() {
		buf := buildMinimalArchive()
		copy(buf[0:4], "XXXX")
		_, err := Read(buf)
		So(err, ShouldNotBeNil)
		So(gapaerr.Is(err, gapaerr.InvalidMagic), ShouldBeTrue)
	})
}
