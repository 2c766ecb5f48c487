// Package rarc implements a minimal read-only walker over JKRArchive
// (RARC) containers, the outer archive format the game stores
// Particles.jpc/ParticleNames.bcsv/AutoEffectList.bcsv inside of. It reads
// already-decompressed RARC data only; Yaz0/Yay0 decompression and RARC
// writing are both out of scope here.
package rarc

import (
	"strings"

	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
)

const magic = "RARC"

// fileAttr mirrors JKRFileAttr: the low bits of a file entry's flags byte.
type fileAttr uint8

const (
	attrDirectory      fileAttr = 1
	attrCompressed     fileAttr = 2
	attrCompressionYaz fileAttr = 4
)

// File is one leaf entry in the archive, holding its raw, already
// uncompressed data.
type File struct {
	Name string
	Data []byte
}

// Dir is one directory entry, holding its child directories and files.
type Dir struct {
	Name    string
	SubDirs []*Dir
	Files   []*File
}

// Archive is a fully decoded RARC directory tree.
type Archive struct {
	Root *Dir
}

type dirNode struct {
	entry       *Dir
	subDirNodes []uint32
}

// Read decodes a RARC archive from buf. buf must already be decompressed;
// compressed file entries inside the archive fail with ValueOutOfRange.
func Read(buf []byte) (*Archive, error) {
	r := bytestream.NewReader(buf)

	tag, err := r.ReadFixedASCII(4)
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC magic")
	}
	if tag != magic {
		return nil, gapaerr.New(gapaerr.InvalidMagic, "not a RARC archive").WithTag(tag)
	}

	r.SeekTo(0x8)
	offInfo, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC header: info offset")
	}
	lenInfo, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC header: info length")
	}

	r.SeekTo(int(offInfo))
	numNodes, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC info: node count")
	}
	offNodes, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC info: node offset")
	}
	offNodes += offInfo

	r.SeekTo(int(offInfo) + 0xC)
	offFiles, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC info: file offset")
	}
	offFiles += offInfo

	r.SeekTo(int(offInfo) + 0x14)
	offStrings, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC info: string offset")
	}
	offStrings += offInfo

	offData := int(offInfo) + int(lenInfo)

	nodes := make([]*dirNode, numNodes)
	offNode := int(offNodes)
	var root *Dir

	for i := uint32(0); i < numNodes; i++ {
		r.SeekTo(offNode + 0x4)
		offName, err := r.U32()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC dir node: name offset")
		}
		if _, err := r.Bytes(2); err != nil { // hash, unused
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC dir node: hash")
		}
		numFiles, err := r.U16()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC dir node: file count")
		}
		idxFilesStart, err := r.U32()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC dir node: first file index")
		}

		dirName, err := r.ReadCStringAt(int(offStrings) + int(offName))
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC dir node: name").WithOffset(int64(offNode))
		}

		dir := &Dir{Name: dirName}
		node := &dirNode{entry: dir}
		nodes[i] = node

		if root == nil {
			root = dir
		}

		offFile := int(offFiles) + int(idxFilesStart)*0x14
		for j := uint16(0); j < numFiles; j++ {
			r.SeekTo(offFile + 0x4)
			rawFlags, err := r.U32()
			if err != nil {
				return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC file entry: flags/name offset")
			}
			offFileData, err := r.U32()
			if err != nil {
				return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC file entry: data offset")
			}
			lenFileData, err := r.U32()
			if err != nil {
				return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC file entry: data length")
			}

			nameOff := int(offStrings) + int(rawFlags&0x00FFFFFF)
			flags := fileAttr((rawFlags >> 24) & 0xFF)

			fileName, err := r.ReadCStringAt(nameOff)
			if err != nil {
				return nil, gapaerr.Wrap(gapaerr.Truncated, err, "RARC file entry: name").WithOffset(int64(offFile))
			}

			offFile += 0x14

			if fileName == "." || fileName == ".." {
				continue
			}

			if flags&attrDirectory != 0 {
				node.subDirNodes = append(node.subDirNodes, offFileData)
				continue
			}

			if flags&attrCompressed != 0 {
				return nil, gapaerr.New(gapaerr.ValueOutOfRange, "compressed RARC file entries are not supported").WithTag(fileName)
			}

			start := offData + int(offFileData)
			end := start + int(lenFileData)
			if start < 0 || end > len(buf) || end < start {
				return nil, gapaerr.New(gapaerr.Truncated, "RARC file entry data out of range").WithTag(fileName)
			}
			data := append([]byte(nil), buf[start:end]...)
			dir.Files = append(dir.Files, &File{Name: fileName, Data: data})
		}

		offNode += 0x10
	}

	for _, node := range nodes {
		for _, sub := range node.subDirNodes {
			node.entry.SubDirs = append(node.entry.SubDirs, nodes[sub].entry)
		}
	}

	return &Archive{Root: root}, nil
}

// FindFile locates a file by slash-separated path (e.g. "jmp/Placement/ObjInfo.bcsv"),
// case-insensitively, starting from dir.
func FindFile(dir *Dir, path string) (*File, error) {
	path = strings.Trim(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx == -1 {
		for _, f := range dir.Files {
			if strings.EqualFold(f.Name, path) {
				return f, nil
			}
		}
		return nil, gapaerr.New(gapaerr.DanglingReference, "file not found in RARC archive").WithTag(path)
	}

	sub, err := FindDir(dir, path[:idx])
	if err != nil {
		return nil, err
	}
	return FindFile(sub, path[idx+1:])
}

// FindDir locates a directory by slash-separated path, case-insensitively,
// starting from dir.
func FindDir(dir *Dir, path string) (*Dir, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return dir, nil
	}
	childName := path
	rest := ""
	if idx := strings.Index(path, "/"); idx != -1 {
		childName = path[:idx]
		rest = path[idx+1:]
	}
	for _, child := range dir.SubDirs {
		if strings.EqualFold(child.Name, childName) {
			if rest == "" {
				return child, nil
			}
			return FindDir(child, rest)
		}
	}
	return nil, gapaerr.New(gapaerr.DanglingReference, "directory not found in RARC archive").WithTag(path)
}
