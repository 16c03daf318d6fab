/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// Legacy kern table.  Only the first subtable is consulted, and only when
// it is horizontal format 0: pairs sorted by (glyph1<<16 | glyph2) and
// binary-searched.
// https://docs.microsoft.com/en-us/typography/opentype/spec/kern

// KerningEntry is one pair of the legacy kern table.
type KerningEntry struct {
	Glyph1  GlyphIndex
	Glyph2  GlyphIndex
	Advance int
}

// kernSubtable0 returns the pair count of the first horizontal format-0
// subtable, or 0 when the table cannot be used.
func (f *font) kernSubtable0() int {
	if f.kern == 0 {
		return 0
	}
	kern := int(f.kern)
	if f.r.readUint16(kern+2) < 1 {
		// Need at least one subtable.
		return 0
	}
	if f.r.readUint16(kern+8) != kernHorizontal {
		// Horizontal flag must be set, format must be 0.
		return 0
	}
	return int(f.r.readUint16(kern + 10))
}

// KerningTableLength returns the number of entries readable by
// KerningTable.
func (f *font) KerningTableLength() int {
	return f.kernSubtable0()
}

// KerningTable copies the kern subtable pairs into `table`, returning the
// number of entries written.
func (f *font) KerningTable(table []KerningEntry) int {
	length := f.kernSubtable0()
	if length > len(table) {
		length = len(table)
	}

	kern := int(f.kern)
	for k := 0; k < length; k++ {
		table[k] = KerningEntry{
			Glyph1:  GlyphIndex(f.r.readUint16(kern + 18 + k*6)),
			Glyph2:  GlyphIndex(f.r.readUint16(kern + 20 + k*6)),
			Advance: int(f.r.readInt16(kern + 22 + k*6)),
		}
	}
	return length
}

// kernAdvance binary-searches the kern subtable for the pair (g1, g2).
func (f *font) kernAdvance(g1, g2 GlyphIndex) int {
	length := f.kernSubtable0()
	if length == 0 {
		return 0
	}

	kern := int(f.kern)
	needle := uint32(g1)<<16 | uint32(g2)
	l, r := 0, length-1
	for l <= r {
		m := (l + r) >> 1
		straw := f.r.readUint32(kern + 18 + m*6)
		switch {
		case needle < straw:
			r = m - 1
		case needle > straw:
			l = m + 1
		default:
			return int(f.r.readInt16(kern + 22 + m*6))
		}
	}
	return 0
}

// KernAdvance returns the kerning adjustment of the pair (g1, g2) in font
// units, preferring GPOS pair positioning and falling back to the legacy
// kern table.  0 when the font defines no adjustment.
func (f *font) KernAdvance(g1, g2 GlyphIndex) int {
	if f.gpos != 0 {
		return f.gposKernAdvance(g1, g2)
	}
	if f.kern != 0 {
		return f.kernAdvance(g1, g2)
	}
	return 0
}

// CodepointKernAdvance is KernAdvance for the glyphs mapped to r1 and r2.
func (f *font) CodepointKernAdvance(r1, r2 rune) int {
	if f.kern == 0 && f.gpos == 0 {
		// Don't waste time resolving both glyphs.
		return 0
	}
	return f.KernAdvance(f.GlyphIndex(r1), f.GlyphIndex(r2))
}
