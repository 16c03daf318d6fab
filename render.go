/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "math"

// Glyph-to-bitmap entry points.  Glyph outlines are y-up; bitmaps are y-down,
// so boxes negate y and rendering inverts the y axis.

// Tessellation tolerance used when rendering glyphs, in pixels.
const renderFlatness = 0.35

// GlyphBitmapBox returns the bitmap-space bounding box a glyph rendered at
// the given scale and subpixel shift will touch: floor on the low corner,
// ceil on the high corner, y inverted.  All zeros for an empty glyph.
func (f *font) GlyphBitmapBox(gid GlyphIndex, scaleX, scaleY, shiftX, shiftY float64) (ix0, iy0, ix1, iy1 int) {
	box, ok := f.GlyphBox(gid)
	if !ok {
		// e.g. space character
		return 0, 0, 0, 0
	}
	// Integral boxes, treating pixels as little squares: which pixels get
	// touched?
	ix0 = int(math.Floor(float64(box.X0)*scaleX + shiftX))
	iy0 = int(math.Floor(-float64(box.Y1)*scaleY + shiftY))
	ix1 = int(math.Ceil(float64(box.X1)*scaleX + shiftX))
	iy1 = int(math.Ceil(-float64(box.Y0)*scaleY + shiftY))
	return ix0, iy0, ix1, iy1
}

// CodepointBitmapBox is GlyphBitmapBox for the glyph mapped to `r`.
func (f *font) CodepointBitmapBox(r rune, scaleX, scaleY, shiftX, shiftY float64) (ix0, iy0, ix1, iy1 int) {
	return f.GlyphBitmapBox(f.GlyphIndex(r), scaleX, scaleY, shiftX, shiftY)
}

// GlyphBitmap renders `gid` into a library-allocated coverage bitmap sized
// by GlyphBitmapBox, returning the bitmap and the box origin.  Empty glyphs
// yield a 0x0 bitmap.  A zero scale on one axis copies the other axis.
func (f *font) GlyphBitmap(gid GlyphIndex, scaleX, scaleY, shiftX, shiftY float64) (bm *Bitmap, xoff, yoff int) {
	if scaleX == 0 {
		scaleX = scaleY
	}
	if scaleY == 0 {
		if scaleX == 0 {
			return &Bitmap{}, 0, 0
		}
		scaleY = scaleX
	}

	ix0, iy0, ix1, iy1 := f.GlyphBitmapBox(gid, scaleX, scaleY, shiftX, shiftY)

	bm = newBitmap(ix1-ix0, iy1-iy0)
	if bm.W != 0 && bm.H != 0 {
		vertices := f.GlyphShape(gid)
		Rasterize(bm, renderFlatness, vertices, scaleX, scaleY, shiftX, shiftY, ix0, iy0, true)
	}
	return bm, ix0, iy0
}

// CodepointBitmap is GlyphBitmap for the glyph mapped to `r`.
func (f *font) CodepointBitmap(r rune, scaleX, scaleY, shiftX, shiftY float64) (bm *Bitmap, xoff, yoff int) {
	return f.GlyphBitmap(f.GlyphIndex(r), scaleX, scaleY, shiftX, shiftY)
}

// MakeGlyphBitmap renders `gid` into caller storage: `output` holds `h`
// rows of `w` pixels, rows `stride` bytes apart.  The glyph is positioned
// as by GlyphBitmapBox, so output pixel (0,0) corresponds to the box
// origin.
func (f *font) MakeGlyphBitmap(output []byte, w, h, stride int, scaleX, scaleY, shiftX, shiftY float64, gid GlyphIndex) {
	if w <= 0 || h <= 0 || stride < w {
		return
	}
	if !checkDst(output, w, h, stride) {
		return
	}

	ix0, iy0, _, _ := f.GlyphBitmapBox(gid, scaleX, scaleY, shiftX, shiftY)
	bm := &Bitmap{
		W:      w,
		H:      h,
		Stride: stride,
		Pixels: output,
	}

	vertices := f.GlyphShape(gid)
	Rasterize(bm, renderFlatness, vertices, scaleX, scaleY, shiftX, shiftY, ix0, iy0, true)
}

// MakeCodepointBitmap is MakeGlyphBitmap for the glyph mapped to `r`.
func (f *font) MakeCodepointBitmap(output []byte, w, h, stride int, scaleX, scaleY, shiftX, shiftY float64, r rune) {
	f.MakeGlyphBitmap(output, w, h, stride, scaleX, scaleY, shiftX, shiftY, f.GlyphIndex(r))
}

// checkDst verifies the caller-provided pixel storage covers h rows.
func checkDst(output []byte, w, h, stride int) bool {
	if h == 0 {
		return true
	}
	need := (h-1)*stride + w
	return len(output) >= need
}
