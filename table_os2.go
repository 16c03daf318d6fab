/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// OS/2 metrics table.  Only the typographic vertical metrics at offsets
// +68/+70/+72 are consumed here.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2

// VMetricsOS2 returns the typographic ascender, descender and line gap
// from the optional OS/2 table.  ok is false when the table is absent.
func (f *font) VMetricsOS2() (ascent, descent, lineGap int, ok bool) {
	t, _ := f.findTable("OS/2")
	if t == 0 {
		return 0, 0, 0, false
	}
	ascent = int(f.r.readInt16(int(t) + 68))
	descent = int(f.r.readInt16(int(t) + 70))
	lineGap = int(f.r.readInt16(int(t) + 72))
	return ascent, descent, lineGap, true
}
