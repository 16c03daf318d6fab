/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// Horizontal metrics table (hmtx).  The first numberOfHMetrics entries are
// (advanceWidth, lsb) pairs; glyphs past that share the last advance and
// read their left side bearing from the trailing short-metrics array.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx

// GlyphHMetrics returns the advance width and left side bearing of `gid`
// in font units.
func (f *font) GlyphHMetrics(gid GlyphIndex) (advance, lsb int) {
	numOfLongHorMetrics := f.numberOfHMetrics()
	hmtx := int(f.hmtx)
	if int(gid) < numOfLongHorMetrics {
		advance = int(f.r.readInt16(hmtx + 4*int(gid)))
		lsb = int(f.r.readInt16(hmtx + 4*int(gid) + 2))
		return advance, lsb
	}
	if numOfLongHorMetrics == 0 {
		return 0, 0
	}
	advance = int(f.r.readInt16(hmtx + 4*(numOfLongHorMetrics-1)))
	lsb = int(f.r.readInt16(hmtx + 4*numOfLongHorMetrics + 2*(int(gid)-numOfLongHorMetrics)))
	return advance, lsb
}

// CodepointHMetrics is GlyphHMetrics for the glyph mapped to `r`.
func (f *font) CodepointHMetrics(r rune) (advance, lsb int) {
	return f.GlyphHMetrics(f.GlyphIndex(r))
}
