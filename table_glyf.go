/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/unidoc/unifont/common"
)

// The glyf table holds TrueType outline data, located per glyph through the
// loca table.  A positive numberOfContours introduces a simple glyph; a
// negative one a compound glyph whose components reference other glyphs
// with an affine transform each.
// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf

// simpleGlyphFlag is the per-point flag byte of a simple glyph.
type simpleGlyphFlag uint8

const (
	onCurvePoint simpleGlyphFlag = 1 << iota
	xShortVector
	yShortVector
	repeatFlag
	xIsSameOrPositive
	yIsSameOrPositive
)

// compositeGlyphFlag is the per-component flag word of a compound glyph.
type compositeGlyphFlag uint16

const (
	arg1And2AreWords compositeGlyphFlag = 1 << iota
	argsAreXYValues
	roundXYToGrid
	weHaveAScale
	_ // reserved
	moreComponents
	weHaveAnXAndYScale
	weHaveATwoByTwo
	weHaveInstructions
)

func (fl compositeGlyphFlag) isSet(flag compositeGlyphFlag) bool {
	return fl&flag != 0
}

// glyphShapeTT decodes the glyf outline of `gid` into a vertex stream.
// `visited` carries the glyph ids on the current composition path so cyclic
// component references in malformed fonts terminate.
func (f *font) glyphShapeTT(gid GlyphIndex, visited *bitset.BitSet, depth int) []Vertex {
	g := f.glyfDataOffset(gid)
	if g < 0 {
		return nil
	}

	numberOfContours := int(f.r.readInt16(g))
	if numberOfContours > 0 {
		return f.simpleGlyphShape(g, numberOfContours)
	}
	if numberOfContours < 0 {
		return f.compositeGlyphShape(g, visited, depth)
	}
	return nil
}

func (f *font) simpleGlyphShape(g, numberOfContours int) []Vertex {
	endPts := g + 10
	ins := int(f.r.readUint16(g + 10 + numberOfContours*2))

	// Total point count is one past the last contour end index.
	n := 1 + int(f.r.readUint16(endPts+numberOfContours*2-2))

	p := f.r.view()
	p.seek(g + 10 + numberOfContours*2 + 2 + ins)

	// Flag stream with run-length compression.
	flags := make([]simpleGlyphFlag, n)
	var flag simpleGlyphFlag
	repeats := 0
	for i := 0; i < n; i++ {
		if repeats == 0 {
			flag = simpleGlyphFlag(p.get8())
			if flag&repeatFlag != 0 {
				repeats = int(p.get8())
			}
		} else {
			repeats--
		}
		flags[i] = flag
	}

	// X coordinates: 1-byte delta with sign bit, 2-byte delta, or repeat.
	xs := make([]int16, n)
	var x int32
	for i, fl := range flags {
		if fl&xShortVector != 0 {
			dx := int32(p.get8())
			if fl&xIsSameOrPositive != 0 {
				x += dx
			} else {
				x -= dx
			}
		} else if fl&xIsSameOrPositive == 0 {
			x += int32(int16(p.getN(2)))
		}
		xs[i] = int16(x)
	}

	// Y coordinates.
	ys := make([]int16, n)
	var y int32
	for i, fl := range flags {
		if fl&yShortVector != 0 {
			dy := int32(p.get8())
			if fl&yIsSameOrPositive != 0 {
				y += dy
			} else {
				y -= dy
			}
		} else if fl&yIsSameOrPositive == 0 {
			y += int32(int16(p.getN(2)))
		}
		ys[i] = int16(y)
	}

	// Walk the points, emitting a contour per endPtsOfContours entry.
	// On-curve points after off-curve points become quadratic segments;
	// consecutive off-curve points imply an on-curve midpoint between them.
	vertices := make([]Vertex, 0, n+2*numberOfContours)
	var sx, sy, cx, cy, scx, scy int32
	wasOff, startOff := false, false
	nextMove, j := 0, 0
	for i := 0; i < n; i++ {
		fl := flags[i]
		x := int32(xs[i])
		y := int32(ys[i])

		if nextMove == i {
			if i != 0 {
				vertices = closeShape(vertices, wasOff, startOff, sx, sy, scx, scy, cx, cy)
			}

			startOff = fl&onCurvePoint == 0
			if startOff && i+1 < n {
				// The contour begins off-curve: save the control point and
				// synthesize a starting point from the next one.
				scx = x
				scy = y
				if flags[i+1]&onCurvePoint == 0 {
					// Next is off-curve too, start at their midpoint.
					sx = (x + int32(xs[i+1])) >> 1
					sy = (y + int32(ys[i+1])) >> 1
				} else {
					sx = int32(xs[i+1])
					sy = int32(ys[i+1])
					i++ // the next point became the start point
				}
			} else {
				startOff = false
				sx = x
				sy = y
			}
			var v Vertex
			setVertex(&v, VertexMoveTo, sx, sy, 0, 0)
			vertices = append(vertices, v)
			wasOff = false
			nextMove = 1 + int(f.r.readUint16(endPts+j*2))
			j++
			continue
		}

		if fl&onCurvePoint == 0 {
			if wasOff {
				// Two off-curve points in a row: emit the implied on-curve
				// midpoint.
				var v Vertex
				setVertex(&v, VertexQuadTo, (cx+x)>>1, (cy+y)>>1, cx, cy)
				vertices = append(vertices, v)
			}
			cx = x
			cy = y
			wasOff = true
		} else {
			var v Vertex
			if wasOff {
				setVertex(&v, VertexQuadTo, x, y, cx, cy)
			} else {
				setVertex(&v, VertexLineTo, x, y, 0, 0)
			}
			vertices = append(vertices, v)
			wasOff = false
		}
	}
	vertices = closeShape(vertices, wasOff, startOff, sx, sy, scx, scy, cx, cy)

	return vertices
}

// closeShape emits the final segment of a contour back to its start point,
// applying the same implicit-midpoint rule as the main walk.
func closeShape(vertices []Vertex, wasOff, startOff bool, sx, sy, scx, scy, cx, cy int32) []Vertex {
	var v Vertex
	if startOff {
		if wasOff {
			setVertex(&v, VertexQuadTo, (cx+scx)>>1, (cy+scy)>>1, cx, cy)
			vertices = append(vertices, v)
		}
		setVertex(&v, VertexQuadTo, sx, sy, scx, scy)
		vertices = append(vertices, v)
	} else {
		if wasOff {
			setVertex(&v, VertexQuadTo, sx, sy, cx, cy)
		} else {
			setVertex(&v, VertexLineTo, sx, sy, 0, 0)
		}
		vertices = append(vertices, v)
	}
	return vertices
}

func (f *font) compositeGlyphShape(g int, visited *bitset.BitSet, depth int) []Vertex {
	comp := f.r.view()
	comp.seek(g + 10)

	var vertices []Vertex
	for more := true; more; {
		flags := compositeGlyphFlag(comp.get16())
		gidx := GlyphIndex(comp.get16())
		more = flags.isSet(moreComponents)

		mtx := [6]float64{1, 0, 0, 1, 0, 0}
		if flags.isSet(argsAreXYValues) {
			if flags.isSet(arg1And2AreWords) {
				mtx[4] = float64(int16(comp.get16()))
				mtx[5] = float64(int16(comp.get16()))
			} else {
				mtx[4] = float64(int8(comp.get8()))
				mtx[5] = float64(int8(comp.get8()))
			}
		} else {
			// Matching-point arguments are not supported; compose the
			// component untranslated.
			common.Log.Debug("compound glyph with point-matching args")
			if flags.isSet(arg1And2AreWords) {
				comp.skip(4)
			} else {
				comp.skip(2)
			}
		}
		if flags.isSet(weHaveAScale) {
			s := f2dot14(int16(comp.get16())).Float64()
			mtx[0], mtx[3] = s, s
			mtx[1], mtx[2] = 0, 0
		} else if flags.isSet(weHaveAnXAndYScale) {
			mtx[0] = f2dot14(int16(comp.get16())).Float64()
			mtx[1], mtx[2] = 0, 0
			mtx[3] = f2dot14(int16(comp.get16())).Float64()
		} else if flags.isSet(weHaveATwoByTwo) {
			mtx[0] = f2dot14(int16(comp.get16())).Float64()
			mtx[1] = f2dot14(int16(comp.get16())).Float64()
			mtx[2] = f2dot14(int16(comp.get16())).Float64()
			mtx[3] = f2dot14(int16(comp.get16())).Float64()
		}

		// Apple's convention: each axis is additionally scaled by the length
		// of its basis vector.
		m := math.Sqrt(mtx[0]*mtx[0] + mtx[1]*mtx[1])
		n := math.Sqrt(mtx[2]*mtx[2] + mtx[3]*mtx[3])

		if int(gidx) >= f.numGlyphs || depth >= f.numGlyphs || visited.Test(uint(gidx)) {
			// Cyclic or out-of-range component reference.
			common.Log.Debug("rejecting compound component %d (depth %d)", gidx, depth)
			continue
		}

		visited.Set(uint(gidx))
		compVerts := f.glyphShapeTT(gidx, visited, depth+1)
		visited.Clear(uint(gidx))

		for i := range compVerts {
			v := &compVerts[i]
			x, y := float64(v.X), float64(v.Y)
			v.X = int16(m * (mtx[0]*x + mtx[2]*y + mtx[4]))
			v.Y = int16(n * (mtx[1]*x + mtx[3]*y + mtx[5]))
			x, y = float64(v.CX), float64(v.CY)
			v.CX = int16(m * (mtx[0]*x + mtx[2]*y + mtx[4]))
			v.CY = int16(n * (mtx[1]*x + mtx[3]*y + mtx[5]))
		}
		vertices = append(vertices, compVerts...)
	}
	return vertices
}
