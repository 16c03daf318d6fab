/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "github.com/unidoc/unifont/common"

// GPOS pair adjustment.  Only Lookup type 2 subtables in formats 1
// (per-pair sets keyed by coverage) and 2 (class matrices) are read, and
// only with valueFormat1=4 (x-advance) and valueFormat2=0; anything else
// kerns as 0.  Coverage formats 1 and 2 and ClassDef formats 1 and 2 are
// supported.
// https://docs.microsoft.com/en-us/typography/opentype/spec/gpos

// coverageIndex returns the coverage index of `glyph` in the coverage
// table at `coverage`, or -1 when not covered.
func (f *font) coverageIndex(coverage int, glyph GlyphIndex) int {
	switch format := f.r.readUint16(coverage); format {
	case 1:
		glyphCount := int(f.r.readUint16(coverage + 2))
		glyphArray := coverage + 4

		l, r := 0, glyphCount-1
		for l <= r {
			m := (l + r) >> 1
			straw := GlyphIndex(f.r.readUint16(glyphArray + 2*m))
			switch {
			case glyph < straw:
				r = m - 1
			case glyph > straw:
				l = m + 1
			default:
				return m
			}
		}

	case 2:
		rangeCount := int(f.r.readUint16(coverage + 2))
		rangeArray := coverage + 4

		l, r := 0, rangeCount-1
		for l <= r {
			m := (l + r) >> 1
			rangeRecord := rangeArray + 6*m
			strawStart := GlyphIndex(f.r.readUint16(rangeRecord))
			strawEnd := GlyphIndex(f.r.readUint16(rangeRecord + 2))
			switch {
			case glyph < strawStart:
				r = m - 1
			case glyph > strawEnd:
				l = m + 1
			default:
				startCoverageIndex := int(f.r.readUint16(rangeRecord + 4))
				return startCoverageIndex + int(glyph) - int(strawStart)
			}
		}

	default:
		common.Log.Debug("unsupported coverage format %d", format)
	}
	return -1
}

// glyphClass returns the class of `glyph` per the class definition table at
// `classDef`, 0 for unassigned glyphs, -1 on an unsupported format.
func (f *font) glyphClass(classDef int, glyph GlyphIndex) int {
	switch format := f.r.readUint16(classDef); format {
	case 1:
		startGlyphID := GlyphIndex(f.r.readUint16(classDef + 2))
		glyphCount := int(f.r.readUint16(classDef + 4))

		if glyph >= startGlyphID && int(glyph) < int(startGlyphID)+glyphCount {
			return int(f.r.readUint16(classDef + 6 + 2*(int(glyph)-int(startGlyphID))))
		}

	case 2:
		classRangeCount := int(f.r.readUint16(classDef + 2))
		classRangeRecords := classDef + 4

		l, r := 0, classRangeCount-1
		for l <= r {
			m := (l + r) >> 1
			record := classRangeRecords + 6*m
			strawStart := GlyphIndex(f.r.readUint16(record))
			strawEnd := GlyphIndex(f.r.readUint16(record + 2))
			switch {
			case glyph < strawStart:
				r = m - 1
			case glyph > strawEnd:
				l = m + 1
			default:
				return int(f.r.readUint16(record + 4))
			}
		}

	default:
		common.Log.Debug("unsupported class def format %d", format)
		return -1
	}

	// "All glyphs not assigned to a class fall into class 0." (OpenType spec)
	return 0
}

// gposKernAdvance walks the lookup list for type-2 (pair adjustment)
// subtables and returns the first x-advance found for the pair (g1, g2).
func (f *font) gposKernAdvance(g1, g2 GlyphIndex) int {
	gpos := int(f.gpos)

	if f.r.readUint16(gpos) != 1 || f.r.readUint16(gpos+2) != 0 {
		// Only version 1.0 is understood.
		return 0
	}

	lookupList := gpos + int(f.r.readUint16(gpos+8))
	lookupCount := int(f.r.readUint16(lookupList))

	for i := 0; i < lookupCount; i++ {
		lookupTable := lookupList + int(f.r.readUint16(lookupList+2+2*i))

		lookupType := f.r.readUint16(lookupTable)
		if lookupType != 2 {
			// Not a Pair Adjustment Positioning subtable.
			continue
		}
		subTableCount := int(f.r.readUint16(lookupTable + 4))

		for sti := 0; sti < subTableCount; sti++ {
			table := lookupTable + int(f.r.readUint16(lookupTable+6+2*sti))
			posFormat := f.r.readUint16(table)
			coverageOffset := int(f.r.readUint16(table + 2))
			coverageIndex := f.coverageIndex(table+coverageOffset, g1)
			if coverageIndex == -1 {
				continue
			}

			valueFormat1 := f.r.readUint16(table + 4)
			valueFormat2 := f.r.readUint16(table + 6)
			if valueFormat1 != 4 || valueFormat2 != 0 {
				// Only horizontal-advance-only records are read.
				return 0
			}

			switch posFormat {
			case 1:
				// Specific glyph pairs, binary-searched within the pair set
				// selected by the coverage index.
				pairSetCount := int(f.r.readUint16(table + 8))
				if coverageIndex >= pairSetCount {
					return 0
				}
				pairValueTable := table + int(f.r.readUint16(table+10+2*coverageIndex))
				pairValueCount := int(f.r.readUint16(pairValueTable))
				pairValueArray := pairValueTable + 2

				// Each record is the second glyph id plus one x-advance.
				const valueRecordPairSize = 2

				l, r := 0, pairValueCount-1
				for l <= r {
					m := (l + r) >> 1
					pairValue := pairValueArray + (2+valueRecordPairSize)*m
					secondGlyph := GlyphIndex(f.r.readUint16(pairValue))
					switch {
					case g2 < secondGlyph:
						r = m - 1
					case g2 > secondGlyph:
						l = m + 1
					default:
						return int(f.r.readInt16(pairValue + 2))
					}
				}
				// Pair not in this subtable; try the next one.
				continue

			case 2:
				// Class pair matrix.
				glyph1Class := f.glyphClass(table+int(f.r.readUint16(table+8)), g1)
				glyph2Class := f.glyphClass(table+int(f.r.readUint16(table+10)), g2)

				class1Count := int(f.r.readUint16(table + 12))
				class2Count := int(f.r.readUint16(table + 14))
				if glyph1Class < 0 || glyph1Class >= class1Count {
					return 0 // malformed
				}
				if glyph2Class < 0 || glyph2Class >= class2Count {
					return 0 // malformed
				}

				class1Records := table + 16
				class2Records := class1Records + 2*(glyph1Class*class2Count)
				return int(f.r.readInt16(class2Records + 2*glyph2Class))

			default:
				common.Log.Debug("unsupported GPOS pair position format %d", posFormat)
				return 0
			}
		}
	}

	return 0
}
