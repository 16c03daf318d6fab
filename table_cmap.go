/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "github.com/unidoc/unifont/common"

// The cmap table maps character codes to glyph indices.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
//
// A usable Unicode subtable is elected once at parse time so lookups do not
// rescan the encoding records.  Subtable formats 0, 4, 6, 12 and 13 are
// decoded; format 2 (high-byte mapping) is not supported and maps to glyph 0.

// selectCmapSubtable caches the offset of the first encoding record whose
// (platform, encoding) pair we can interpret as Unicode.
func (f *font) selectCmapSubtable() error {
	numTables := int(f.r.readUint16(int(f.cmap) + 2))
	f.indexMap = 0
	for i := 0; i < numTables && f.indexMap == 0; i++ {
		rec := int(f.cmap) + 4 + 8*i
		if !f.r.checkBounds(rec, 8) {
			break
		}
		switch f.r.readUint16(rec) {
		case PlatformIDMicrosoft:
			switch f.r.readUint16(rec + 2) {
			case MicrosoftEIDUnicodeBMP, MicrosoftEIDUnicodeFull:
				f.indexMap = int(f.cmap) + int(f.r.readUint32(rec+4))
			}
		case PlatformIDUnicode:
			// All Unicode-platform encoding IDs map codepoints directly, so
			// the encoding ID is not checked.
			f.indexMap = int(f.cmap) + int(f.r.readUint32(rec+4))
		}
	}
	if f.indexMap == 0 {
		common.Log.Debug("no supported cmap subtable")
		return errUnsupported
	}
	return nil
}

// GlyphIndex returns the glyph mapped to `r`, or 0 when the font has no
// glyph for it (or the subtable is malformed).
func (f *font) GlyphIndex(r rune) GlyphIndex {
	return f.glyphIndex(int(r))
}

func (f *font) glyphIndex(codepoint int) GlyphIndex {
	indexMap := f.indexMap
	if codepoint < 0 {
		return 0
	}

	format := f.r.readUint16(indexMap)
	switch format {
	case 0: // byte encoding table
		length := int(f.r.readUint16(indexMap + 2))
		if codepoint < length-6 {
			return GlyphIndex(f.r.readUint8(indexMap + 6 + codepoint))
		}
		return 0

	case 2: // high-byte mapping for CJK
		// Not supported; map to the missing glyph instead of guessing.
		return 0

	case 4:
		return f.glyphIndexFormat4(codepoint)

	case 6: // trimmed table
		first := int(f.r.readUint16(indexMap + 6))
		count := int(f.r.readUint16(indexMap + 8))
		if codepoint >= first && codepoint < first+count {
			return GlyphIndex(f.r.readUint16(indexMap + 10 + (codepoint-first)*2))
		}
		return 0

	case 12, 13:
		return f.glyphIndexGroups(codepoint, format)
	}

	common.Log.Debug("unsupported cmap subtable format %d", format)
	return 0
}

// glyphIndexFormat4 performs the searchRange/entrySelector guided binary
// search over segment end codes.  The decrement-and-bias structure is kept
// as specified because fonts in the wild depend on its exact behavior.
func (f *font) glyphIndexFormat4(codepoint int) GlyphIndex {
	indexMap := f.indexMap
	if codepoint > 0xffff {
		return 0
	}

	segCount := int(f.r.readUint16(indexMap+6)) >> 1
	searchRange := int(f.r.readUint16(indexMap+8)) >> 1
	entrySelector := int(f.r.readUint16(indexMap + 10))
	rangeShift := int(f.r.readUint16(indexMap+12)) >> 1

	// The end codes lie from endCount to endCount + segCount*2, but
	// searchRange is the nearest power of two, so the search starts biased.
	endCount := indexMap + 14
	search := endCount

	if codepoint >= int(f.r.readUint16(search+rangeShift*2)) {
		search += rangeShift * 2
	}

	// Decrement so each probe biases toward the smallest matching segment.
	search -= 2
	for entrySelector > 0 {
		searchRange >>= 1
		end := int(f.r.readUint16(search + searchRange*2))
		if codepoint > end {
			search += searchRange * 2
		}
		entrySelector--
	}
	search += 2

	item := (search - endCount) >> 1

	start := int(f.r.readUint16(indexMap + 14 + segCount*2 + 2 + 2*item))
	last := int(f.r.readUint16(endCount + 2*item))
	if codepoint < start || codepoint > last {
		return 0
	}

	offset := int(f.r.readUint16(indexMap + 14 + segCount*6 + 2 + 2*item))
	if offset == 0 {
		idDelta := int(f.r.readInt16(indexMap + 14 + segCount*4 + 2 + 2*item))
		return GlyphIndex(uint16(codepoint + idDelta))
	}

	return GlyphIndex(f.r.readUint16(offset + (codepoint-start)*2 + indexMap + 14 + segCount*6 + 2 + 2*item))
}

// glyphIndexGroups binary-searches the 32-bit sequential (12) or constant
// (13) mapping groups.
func (f *font) glyphIndexGroups(codepoint int, format uint16) GlyphIndex {
	indexMap := f.indexMap
	nGroups := int(f.r.readUint32(indexMap + 12))

	low, high := 0, nGroups
	for low < high {
		mid := low + (high-low)>>1
		startChar := int(f.r.readUint32(indexMap + 16 + mid*12))
		endChar := int(f.r.readUint32(indexMap + 16 + mid*12 + 4))
		switch {
		case codepoint < startChar:
			high = mid
		case codepoint > endChar:
			low = mid + 1
		default:
			startGlyph := f.r.readUint32(indexMap + 16 + mid*12 + 8)
			if format == 12 {
				return GlyphIndex(startGlyph + uint32(codepoint-startChar))
			}
			// Format 13: every codepoint in the group maps to startGlyph.
			return GlyphIndex(startGlyph)
		}
	}
	return 0
}
