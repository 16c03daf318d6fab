/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareVertices(x0, y0, x1, y1 int16) []Vertex {
	return []Vertex{
		{Kind: VertexMoveTo, X: x0, Y: y0},
		{Kind: VertexLineTo, X: x1, Y: y0},
		{Kind: VertexLineTo, X: x1, Y: y1},
		{Kind: VertexLineTo, X: x0, Y: y1},
		{Kind: VertexLineTo, X: x0, Y: y0},
	}
}

// A unit-scale axis-aligned square at integer coordinates covers its
// interior pixels fully and no others.
func TestRasterizeSquareExact(t *testing.T) {
	bm := newBitmap(8, 8)
	Rasterize(bm, 0.35, squareVertices(2, 2, 6, 6), 1, 1, 0, 0, 0, -8, true)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inside := x >= 2 && x < 6 && y >= 2 && y < 6
			got := bm.Pixels[y*bm.Stride+x]
			if inside {
				assert.Equal(t, uint8(255), got, "pixel (%d,%d)", x, y)
			} else {
				assert.Equal(t, uint8(0), got, "pixel (%d,%d)", x, y)
			}
		}
	}
}

// Clockwise and counter-clockwise outlines fill identically: the absolute
// value in the emission step absorbs the orientation.
func TestRasterizeOrientation(t *testing.T) {
	ccw := squareVertices(2, 2, 6, 6)
	cw := []Vertex{
		{Kind: VertexMoveTo, X: 2, Y: 2},
		{Kind: VertexLineTo, X: 2, Y: 6},
		{Kind: VertexLineTo, X: 6, Y: 6},
		{Kind: VertexLineTo, X: 6, Y: 2},
		{Kind: VertexLineTo, X: 2, Y: 2},
	}

	bm1 := newBitmap(8, 8)
	Rasterize(bm1, 0.35, ccw, 1, 1, 0, 0, 0, -8, true)
	bm2 := newBitmap(8, 8)
	Rasterize(bm2, 0.35, cw, 1, 1, 0, 0, 0, -8, true)

	assert.Equal(t, bm1.Pixels, bm2.Pixels)
}

// A half-pixel horizontal shift spreads boundary coverage across the
// adjacent columns.
func TestRasterizeSubpixelShift(t *testing.T) {
	bm := newBitmap(9, 8)
	Rasterize(bm, 0.35, squareVertices(2, 2, 6, 6), 1, 1, 0.5, 0, 0, -8, true)

	row := 3 // fully covered vertically
	assert.Equal(t, uint8(128), bm.Pixels[row*bm.Stride+2])
	for x := 3; x < 6; x++ {
		assert.Equal(t, uint8(255), bm.Pixels[row*bm.Stride+x])
	}
	assert.Equal(t, uint8(128), bm.Pixels[row*bm.Stride+6])
	assert.Equal(t, uint8(0), bm.Pixels[row*bm.Stride+7])
}

// A square hole outlined opposite to the outer contour stays empty under
// the non-zero winding rule.
func TestRasterizeHole(t *testing.T) {
	outer := squareVertices(1, 1, 7, 7)
	hole := []Vertex{
		{Kind: VertexMoveTo, X: 3, Y: 3},
		{Kind: VertexLineTo, X: 3, Y: 5},
		{Kind: VertexLineTo, X: 5, Y: 5},
		{Kind: VertexLineTo, X: 5, Y: 3},
		{Kind: VertexLineTo, X: 3, Y: 3},
	}
	verts := append(append([]Vertex{}, outer...), hole...)

	bm := newBitmap(8, 8)
	Rasterize(bm, 0.35, verts, 1, 1, 0, 0, 0, -8, true)

	assert.Equal(t, uint8(255), bm.Pixels[2*bm.Stride+2])
	assert.Equal(t, uint8(0), bm.Pixels[4*bm.Stride+4], "hole interior")
	assert.Equal(t, uint8(255), bm.Pixels[6*bm.Stride+6])
}

// Library-allocated rendering matches the bitmap box dimensions and
// stays within byte range.
func TestGlyphBitmapBoxConsistency(t *testing.T) {
	fnt, err := New(squareTestFont(t), 0)
	require.NoError(t, err)

	scale := fnt.ScaleForPixelHeight(20)
	for gid := GlyphIndex(0); gid < 5; gid++ {
		ix0, iy0, ix1, iy1 := fnt.GlyphBitmapBox(gid, scale, scale, 0, 0)
		bm, xoff, yoff := fnt.GlyphBitmap(gid, scale, scale, 0, 0)
		assert.Equal(t, ix1-ix0, bm.W, "glyph %d", gid)
		assert.Equal(t, iy1-iy0, bm.H, "glyph %d", gid)
		assert.Equal(t, ix0, xoff)
		assert.Equal(t, iy0, yoff)
	}
}

// An empty glyph renders to a 0x0 bitmap and a zero box.
func TestRenderEmptyGlyph(t *testing.T) {
	fnt, err := New(squareTestFont(t), 0)
	require.NoError(t, err)

	gid := fnt.GlyphIndex(' ')
	ix0, iy0, ix1, iy1 := fnt.GlyphBitmapBox(gid, 1, 1, 0, 0)
	assert.Equal(t, [4]int{0, 0, 0, 0}, [4]int{ix0, iy0, ix1, iy1})

	bm, _, _ := fnt.GlyphBitmap(gid, 1, 1, 0, 0)
	assert.Equal(t, 0, bm.W)
	assert.Equal(t, 0, bm.H)
}

// Total covered mass tracks the analytic area of the outline.
func TestRenderedMass(t *testing.T) {
	fnt, err := New(squareTestFont(t), 0)
	require.NoError(t, err)

	scale := fnt.ScaleForPixelHeight(20)
	bm, _, _ := fnt.GlyphBitmap(fnt.GlyphIndex('A'), scale, scale, 0, 0)
	require.NotZero(t, bm.W)

	var mass float64
	for _, p := range bm.Pixels {
		mass += float64(p) / 255
	}
	side := 600 * scale // square is 600 units wide
	area := side * side
	assert.InDelta(t, area, mass, 0.05*area)

	// The image wrappers share the pixel storage.
	img := bm.Gray()
	assert.Equal(t, bm.W, img.Bounds().Dx())
	assert.Equal(t, bm.H, img.Bounds().Dy())
	assert.Equal(t, bm.Pixels[0], img.Pix[0])
}

// Rendering into caller storage respects the stride.
func TestMakeGlyphBitmap(t *testing.T) {
	fnt, err := New(squareTestFont(t), 0)
	require.NoError(t, err)

	scale := fnt.ScaleForPixelHeight(20)
	gid := fnt.GlyphIndex('A')
	ix0, iy0, ix1, iy1 := fnt.GlyphBitmapBox(gid, scale, scale, 0, 0)
	w, h := ix1-ix0, iy1-iy0

	stride := w + 5
	output := make([]byte, h*stride)
	fnt.MakeGlyphBitmap(output, w, h, stride, scale, scale, 0, 0, gid)

	reference, _, _ := fnt.GlyphBitmap(gid, scale, scale, 0, 0)
	for y := 0; y < h; y++ {
		assert.Equal(t, reference.Pixels[y*reference.Stride:y*reference.Stride+w], output[y*stride:y*stride+w], "row %d", y)
	}

	// Undersized storage is rejected without touching memory.
	fnt.MakeGlyphBitmap(make([]byte, 3), w, h, stride, scale, scale, 0, 0, gid)
}

// A quadratic contour rasterizes with every byte in range and full-coverage
// pixels saturated.
func TestRasterizeCurveBounded(t *testing.T) {
	verts := []Vertex{
		{Kind: VertexMoveTo, X: 1, Y: 4},
		{Kind: VertexQuadTo, X: 7, Y: 4, CX: 4, CY: 9},
		{Kind: VertexLineTo, X: 1, Y: 4},
	}
	bm := newBitmap(8, 8)
	Rasterize(bm, 0.35, verts, 1, 1, 0, 0, 0, -8, true)

	var any bool
	for _, p := range bm.Pixels {
		if p > 0 {
			any = true
		}
	}
	assert.True(t, any)
}

// Rendering a glyph from the compound fixture covers both component areas.
func TestRenderCompound(t *testing.T) {
	fnt, err := New(squareTestFont(t), 0)
	require.NoError(t, err)

	scale := fnt.ScaleForPixelHeight(40)
	bm, xoff, yoff := fnt.GlyphBitmap(fnt.GlyphIndex(0xC4), scale, scale, 0, 0)
	require.NotZero(t, bm.W)

	// Sample the center of the base square and of the shifted mark.
	sample := func(fx, fy float64) byte {
		x := int(fx*scale) - xoff
		y := int(-fy*scale) - yoff
		require.True(t, x >= 0 && x < bm.W && y >= 0 && y < bm.H)
		return bm.Pixels[y*bm.Stride+x]
	}
	assert.Equal(t, uint8(255), sample(400, 400)) // base square center
	assert.Equal(t, uint8(255), sample(450, 810)) // mark center, shifted +150
}
