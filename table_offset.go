/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// The sfnt offset table starts with a 4-byte version, followed by numTables
// and the binary-search helper fields, then numTables 16-byte records of
// {tag, checksum, offset, length}.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otff

// isFontData reports whether `data` starts with a recognized sfnt version.
func isFontData(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch {
	case data[0] == '1' && data[1] == 0 && data[2] == 0 && data[3] == 0:
		return true // TrueType 1
	case string(data[:4]) == "typ1":
		return true // TrueType with type 1 font
	case string(data[:4]) == "OTTO":
		return true // OpenType with CFF
	case data[0] == 0 && data[1] == 1 && data[2] == 0 && data[3] == 0:
		return true // OpenType 1.0
	case string(data[:4]) == "true":
		return true // Apple TrueType
	}
	return false
}

func isCollection(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "ttcf"
}

// NumFonts returns the number of fonts in `data`: 1 for a plain sfnt, the
// collection count for a TTC, and 0 for unrecognized input.
func NumFonts(data []byte) int {
	if isFontData(data) {
		return 1
	}

	if isCollection(data) {
		r := newByteReader(data)
		version := r.readUint32(4)
		if version == 0x00010000 || version == 0x00020000 {
			return int(r.readInt32(8))
		}
	}
	return 0
}

// FontOffsetForIndex returns the byte offset of font `index` inside `data`,
// or -1 when the index is out of range or the input is not a font.
func FontOffsetForIndex(data []byte, index int) int {
	// If it's just a font, there's only one valid index.
	if isFontData(data) {
		if index == 0 {
			return 0
		}
		return -1
	}

	if isCollection(data) {
		r := newByteReader(data)
		version := r.readUint32(4)
		if version == 0x00010000 || version == 0x00020000 {
			n := int(r.readInt32(8))
			if index < 0 || index >= n {
				return -1
			}
			return int(r.readUint32(12 + index*4))
		}
	}
	return -1
}

// findTable scans the table directory for `name` and returns the absolute
// offset and length of the table, or (0, 0) when absent.
func (f *font) findTable(name string) (offset, length uint32) {
	t := makeTag(name)
	numTables := int(f.r.readUint16(f.fontStart + 4))
	tableDir := f.fontStart + 12
	for i := 0; i < numTables; i++ {
		loc := tableDir + 16*i
		if !f.r.checkBounds(loc, 16) {
			return 0, 0
		}
		if f.r.readTag(loc) == t {
			return f.r.readUint32(loc + 8), f.r.readUint32(loc + 12)
		}
	}
	return 0, 0
}
