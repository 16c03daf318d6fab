/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "github.com/bits-and-blooms/bitset"

// GlyphShape returns the outline of `gid` as a vertex stream, decoded from
// glyf or from the CFF charstrings depending on the font flavor.  The
// result is nil for empty glyphs, out-of-range indices and malformed
// outline data.
func (f *font) GlyphShape(gid GlyphIndex) []Vertex {
	if int(gid) >= f.numGlyphs {
		return nil
	}
	if f.isCFF() {
		return f.glyphShapeT2(gid)
	}

	visited := bitset.New(uint(f.numGlyphs))
	visited.Set(uint(gid))
	return f.glyphShapeTT(gid, visited, 0)
}

// CodepointShape is GlyphShape for the glyph mapped to `r`.
func (f *font) CodepointShape(r rune) []Vertex {
	return f.GlyphShape(f.GlyphIndex(r))
}

// GlyphBox returns the bounding box of `gid` in font units (y-up).  The
// second return is false for empty or out-of-range glyphs.
func (f *font) GlyphBox(gid GlyphIndex) (BBox, bool) {
	if f.isCFF() {
		return f.glyphBoxT2(gid)
	}

	g := f.glyfDataOffset(gid)
	if g < 0 {
		return BBox{}, false
	}
	return BBox{
		X0: int(f.r.readInt16(g + 2)),
		Y0: int(f.r.readInt16(g + 4)),
		X1: int(f.r.readInt16(g + 6)),
		Y1: int(f.r.readInt16(g + 8)),
	}, true
}

// CodepointBox is GlyphBox for the glyph mapped to `r`.
func (f *font) CodepointBox(r rune) (BBox, bool) {
	return f.GlyphBox(f.GlyphIndex(r))
}

// IsGlyphEmpty reports whether `gid` has no outline (such as the space
// glyph).
func (f *font) IsGlyphEmpty(gid GlyphIndex) bool {
	if f.isCFF() {
		_, ok := f.glyphBoxT2(gid)
		return !ok
	}
	g := f.glyfDataOffset(gid)
	if g < 0 {
		return true
	}
	return f.r.readInt16(g) == 0
}
