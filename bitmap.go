/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "image"

// Bitmap is a dense rectangular array of 8-bit pixels.  Coverage bitmaps
// store 0 for transparent through 255 for opaque; SDF bitmaps store scaled
// signed distances.  Rows run top to bottom (y increases downwards).
type Bitmap struct {
	W      int
	H      int
	Stride int // bytes between row starts
	Pixels []byte
}

func newBitmap(w, h int) *Bitmap {
	if w < 0 || h < 0 {
		// A malformed bounding box can invert the bitmap box.
		w, h = 0, 0
	}
	return &Bitmap{
		W:      w,
		H:      h,
		Stride: w,
		Pixels: make([]byte, w*h),
	}
}

// Gray wraps the bitmap as an image.Gray sharing the pixel storage.
func (b *Bitmap) Gray() *image.Gray {
	return &image.Gray{
		Pix:    b.Pixels,
		Stride: b.Stride,
		Rect:   image.Rect(0, 0, b.W, b.H),
	}
}

// Alpha wraps the bitmap as an image.Alpha sharing the pixel storage.
func (b *Bitmap) Alpha() *image.Alpha {
	return &image.Alpha{
		Pix:    b.Pixels,
		Stride: b.Stride,
		Rect:   image.Rect(0, 0, b.W, b.H),
	}
}
