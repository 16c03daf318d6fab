/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// Font header table (head).  Read field-by-field at query time: the font
// bounding box sits at +36, unitsPerEm at +18, macStyle at +44 and
// indexToLocFormat at +50.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head

// BoundingBox returns the font-wide bounding box from the head table, in
// font units (y-up).
func (f *font) BoundingBox() BBox {
	return BBox{
		X0: int(f.r.readInt16(int(f.head) + 36)),
		Y0: int(f.r.readInt16(int(f.head) + 38)),
		X1: int(f.r.readInt16(int(f.head) + 40)),
		Y1: int(f.r.readInt16(int(f.head) + 42)),
	}
}

// UnitsPerEm returns the design units per em from the head table.
func (f *font) UnitsPerEm() int {
	return int(f.r.readUint16(int(f.head) + 18))
}

func (f *font) macStyle() int {
	return int(f.r.readUint16(int(f.head) + 44))
}

// ScaleForPixelHeight returns the scale factor mapping font units to a
// given pixel height, measured ascent to descent.
func (f *font) ScaleForPixelHeight(height float64) float64 {
	fheight := int(f.r.readInt16(int(f.hhea)+4)) - int(f.r.readInt16(int(f.hhea)+6))
	return height / float64(fheight)
}

// ScaleForMappingEmToPixels returns the scale factor mapping one em to
// `pixels` pixels.
func (f *font) ScaleForMappingEmToPixels(pixels float64) float64 {
	return pixels / float64(f.UnitsPerEm())
}
