/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenLines(t *testing.T) {
	points, lengths := flattenCurves(squareVertices(0, 0, 10, 10), 0.35)
	require.Equal(t, []int{5}, lengths)
	assert.Equal(t, []point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0},
	}, points)
}

func TestFlattenEmpty(t *testing.T) {
	points, lengths := flattenCurves(nil, 0.35)
	assert.Nil(t, points)
	assert.Nil(t, lengths)

	// A stream without MoveTo has no contours.
	points, lengths = flattenCurves([]Vertex{{Kind: VertexLineTo, X: 5, Y: 5}}, 0.35)
	assert.Nil(t, points)
	assert.Nil(t, lengths)
}

func TestFlattenContours(t *testing.T) {
	verts := append(append([]Vertex{}, squareVertices(0, 0, 4, 4)...), squareVertices(10, 10, 12, 12)...)
	points, lengths := flattenCurves(verts, 0.35)
	require.Equal(t, []int{5, 5}, lengths)
	assert.Len(t, points, 10)
}

// Every flattened point of a quadratic lies within the tolerance of the
// curve.
func TestFlattenQuadTolerance(t *testing.T) {
	const tol = 0.5
	verts := []Vertex{
		{Kind: VertexMoveTo, X: 0, Y: 0},
		{Kind: VertexQuadTo, X: 200, Y: 0, CX: 100, CY: 150},
	}
	points, lengths := flattenCurves(verts, tol)
	require.Equal(t, 1, len(lengths))
	require.Greater(t, len(points), 3, "curve must subdivide at this tolerance")

	// Each emitted point must lie on the curve: check against a dense
	// parameter sweep.
	onCurve := func(px, py float64) bool {
		for s := 0.0; s <= 1.0; s += 1e-4 {
			x := (1-s)*(1-s)*0 + 2*s*(1-s)*100 + s*s*200
			y := (1-s)*(1-s)*0 + 2*s*(1-s)*150 + s*s*0
			if math.Hypot(px-x, py-y) < 0.05 {
				return true
			}
		}
		return false
	}
	for _, p := range points[1:] {
		assert.True(t, onCurve(p.x, p.y), "point (%v,%v) off the curve", p.x, p.y)
	}
}

// The subdivision depth cap keeps point counts bounded even for
// adversarial control points.
func TestFlattenDepthCap(t *testing.T) {
	verts := []Vertex{
		{Kind: VertexMoveTo, X: -32768, Y: -32768},
		{Kind: VertexQuadTo, X: 32767, Y: -32768, CX: 0, CY: 32767},
		{Kind: VertexCubicTo, X: -32768, Y: 32767, CX: 32767, CY: 32767, CX1: -32768, CY1: -32768},
	}
	points, _ := flattenCurves(verts, 1e-9)
	// Two curves, each capped at 2^17 splits.
	assert.LessOrEqual(t, len(points), 1<<18+1)
	assert.Greater(t, len(points), 2)
}

func TestFlattenCubic(t *testing.T) {
	verts := []Vertex{
		{Kind: VertexMoveTo, X: 0, Y: 0},
		{Kind: VertexCubicTo, X: 300, Y: 0, CX: 100, CY: 100, CX1: 200, CY1: 100},
	}
	points, lengths := flattenCurves(verts, 0.25)
	require.Equal(t, 1, len(lengths))
	assert.Greater(t, len(points), 2)

	last := points[len(points)-1]
	assert.Equal(t, 300.0, last.x)
	assert.Equal(t, 0.0, last.y)
}
