/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"image"
	"math"

	xfont "golang.org/x/image/font"
	xfixed "golang.org/x/image/math/fixed"
)

// face adapts a Font to the golang.org/x/image/font.Face interface so the
// rasterizer can drive font.Drawer and friends.  The face carries no
// mutable state beyond its scale; rendering allocates per call, so a face
// is safe for concurrent use like the Font itself.
type face struct {
	fnt   *Font
	scale float64
}

// NewFace returns a xfont.Face that renders `f` with a pixel height of
// `pixelHeight` (ascent to descent).
func (f *Font) NewFace(pixelHeight float64) xfont.Face {
	return &face{
		fnt:   f,
		scale: f.ScaleForPixelHeight(pixelHeight),
	}
}

func toFixed(v float64) xfixed.Int26_6 {
	return xfixed.Int26_6(math.Round(v * 64))
}

func (a *face) Close() error {
	return nil
}

func (a *face) Glyph(dot xfixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance xfixed.Int26_6, ok bool) {
	gid := a.fnt.GlyphIndex(r)
	if gid == 0 {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}

	dotX := float64(dot.X) / 64
	dotY := float64(dot.Y) / 64
	ix := int(math.Floor(dotX))
	iy := int(math.Floor(dotY))

	bm, xoff, yoff := a.fnt.GlyphBitmap(gid, a.scale, a.scale, dotX-float64(ix), dotY-float64(iy))

	dr = image.Rect(ix+xoff, iy+yoff, ix+xoff+bm.W, iy+yoff+bm.H)
	adv, _ := a.fnt.GlyphHMetrics(gid)
	return dr, bm.Alpha(), image.Point{}, toFixed(float64(adv) * a.scale), true
}

func (a *face) GlyphBounds(r rune) (bounds xfixed.Rectangle26_6, advance xfixed.Int26_6, ok bool) {
	gid := a.fnt.GlyphIndex(r)
	if gid == 0 {
		return xfixed.Rectangle26_6{}, 0, false
	}

	adv, _ := a.fnt.GlyphHMetrics(gid)
	advance = toFixed(float64(adv) * a.scale)

	box, hasBox := a.fnt.GlyphBox(gid)
	if hasBox {
		// Glyph space is y-up, face space is y-down.
		bounds.Min.X = toFixed(float64(box.X0) * a.scale)
		bounds.Min.Y = toFixed(float64(-box.Y1) * a.scale)
		bounds.Max.X = toFixed(float64(box.X1) * a.scale)
		bounds.Max.Y = toFixed(float64(-box.Y0) * a.scale)
	}
	return bounds, advance, true
}

func (a *face) GlyphAdvance(r rune) (advance xfixed.Int26_6, ok bool) {
	gid := a.fnt.GlyphIndex(r)
	if gid == 0 {
		return 0, false
	}
	adv, _ := a.fnt.GlyphHMetrics(gid)
	return toFixed(float64(adv) * a.scale), true
}

func (a *face) Kern(r0, r1 rune) xfixed.Int26_6 {
	return toFixed(float64(a.fnt.CodepointKernAdvance(r0, r1)) * a.scale)
}

func (a *face) Metrics() xfont.Metrics {
	ascent, descent, lineGap := a.fnt.VMetrics()
	return xfont.Metrics{
		Height:     toFixed(float64(ascent-descent+lineGap) * a.scale),
		Ascent:     toFixed(float64(ascent) * a.scale),
		Descent:    toFixed(float64(-descent) * a.scale),
		XHeight:    toFixed(float64(ascent) * a.scale / 2),
		CapHeight:  toFixed(float64(ascent) * a.scale),
		CaretSlope: image.Pt(0, 1),
	}
}
