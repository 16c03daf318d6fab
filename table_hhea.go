/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// Horizontal header table (hhea): ascender, descender and line gap at
// offsets +4/+6/+8, numberOfHMetrics at +34.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea

// VMetrics returns the hhea vertical metrics in font units.  The descent
// is typically negative.
func (f *font) VMetrics() (ascent, descent, lineGap int) {
	ascent = int(f.r.readInt16(int(f.hhea) + 4))
	descent = int(f.r.readInt16(int(f.hhea) + 6))
	lineGap = int(f.r.readInt16(int(f.hhea) + 8))
	return ascent, descent, lineGap
}

func (f *font) numberOfHMetrics() int {
	return int(f.r.readUint16(int(f.hhea) + 34))
}
