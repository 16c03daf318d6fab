/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// SVG table: only the document list is indexed.  Each 12-byte entry maps a
// glyph id range to an SVG document inside the table; the document bytes
// are returned opaquely, never interpreted.
// https://docs.microsoft.com/en-us/typography/opentype/spec/svg

// GlyphSVG returns the raw SVG document covering `gid`, or nil when the
// font has no SVG table or no document for the glyph.
func (f *font) GlyphSVG(gid GlyphIndex) []byte {
	if f.svg == 0 {
		return nil
	}

	docList := int(f.svg)
	numEntries := int(f.r.readUint16(docList))
	for i := 0; i < numEntries; i++ {
		doc := docList + 2 + 12*i
		first := GlyphIndex(f.r.readUint16(doc))
		last := GlyphIndex(f.r.readUint16(doc + 2))
		if gid >= first && gid <= last {
			offset := int(f.r.readUint32(doc + 4))
			length := int(f.r.readUint32(doc + 8))
			return f.r.slice(docList+offset, length)
		}
	}
	return nil
}

// CodepointSVG is GlyphSVG for the glyph mapped to `r`.
func (f *font) CodepointSVG(r rune) []byte {
	return f.GlyphSVG(f.GlyphIndex(r))
}
