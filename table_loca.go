/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// The loca table holds numGlyphs+1 offsets into glyf, in the short (uint16
// halved) or long (uint32) format selected by head.indexToLocFormat.
// https://docs.microsoft.com/en-us/typography/opentype/spec/loca

// glyfDataOffset returns the absolute offset of the glyph data for `gid`,
// or -1 when the glyph is empty, the index is out of range, or the loca
// format is unknown.
func (f *font) glyfDataOffset(gid GlyphIndex) int {
	if int(gid) >= f.numGlyphs {
		return -1
	}
	if f.indexToLocFormat >= 2 {
		return -1
	}

	var g1, g2 int
	if f.indexToLocFormat == 0 {
		g1 = int(f.glyf) + int(f.r.readUint16(int(f.loca)+int(gid)*2))*2
		g2 = int(f.glyf) + int(f.r.readUint16(int(f.loca)+int(gid)*2+2))*2
	} else {
		g1 = int(f.glyf) + int(f.r.readUint32(int(f.loca)+int(gid)*4))
		g2 = int(f.glyf) + int(f.r.readUint32(int(f.loca)+int(gid)*4+4))
	}

	if g1 == g2 {
		// Zero length means an empty glyph, e.g. space.
		return -1
	}
	return g1
}
