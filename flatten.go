/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "math"

// Curve flattening: adaptive recursive subdivision of the quadratic and
// cubic segments of a vertex stream into polylines within a squared
// object-space error tolerance.  Subdivision depth is capped at 16 (65536
// segments per curve) so pathological control points cannot run away.

const tesselationDepthLimit = 16

type point struct {
	x, y float64
}

func addPoint(points []point, n int, x, y float64) {
	if points == nil {
		// Counting pass.
		return
	}
	points[n] = point{x: x, y: y}
}

// tesselateCurve subdivides the quadratic (x0,y0)-(x1,y1)-(x2,y2) at de
// Casteljau midpoints until the chord-to-curve midpoint distance drops
// under the tolerance, appending endpoints only.
func tesselateCurve(points []point, numPoints *int, x0, y0, x1, y1, x2, y2, objspaceFlatnessSquared float64, n int) {
	// Curve midpoint vs the directly drawn line.
	mx := (x0 + 2*x1 + x2) / 4
	my := (y0 + 2*y1 + y2) / 4
	dx := (x0+x2)/2 - mx
	dy := (y0+y2)/2 - my

	if n > tesselationDepthLimit {
		return
	}
	if dx*dx+dy*dy > objspaceFlatnessSquared {
		tesselateCurve(points, numPoints, x0, y0, (x0+x1)/2, (y0+y1)/2, mx, my, objspaceFlatnessSquared, n+1)
		tesselateCurve(points, numPoints, mx, my, (x1+x2)/2, (y1+y2)/2, x2, y2, objspaceFlatnessSquared, n+1)
	} else {
		addPoint(points, *numPoints, x2, y2)
		*numPoints++
	}
}

// tesselateCubic subdivides a cubic, triggered by the excess of the summed
// control-polygon length over the chord length as the flatness heuristic.
func tesselateCubic(points []point, numPoints *int, x0, y0, x1, y1, x2, y2, x3, y3, objspaceFlatnessSquared float64, n int) {
	dx0 := x1 - x0
	dy0 := y1 - y0
	dx1 := x2 - x1
	dy1 := y2 - y1
	dx2 := x3 - x2
	dy2 := y3 - y2
	dx := x3 - x0
	dy := y3 - y0
	longlen := math.Sqrt(dx0*dx0+dy0*dy0) + math.Sqrt(dx1*dx1+dy1*dy1) + math.Sqrt(dx2*dx2+dy2*dy2)
	shortlen := math.Sqrt(dx*dx + dy*dy)
	flatnessSquared := longlen*longlen - shortlen*shortlen

	if n > tesselationDepthLimit {
		return
	}

	if flatnessSquared > objspaceFlatnessSquared {
		x01 := (x0 + x1) / 2
		y01 := (y0 + y1) / 2
		x12 := (x1 + x2) / 2
		y12 := (y1 + y2) / 2
		x23 := (x2 + x3) / 2
		y23 := (y2 + y3) / 2

		xa := (x01 + x12) / 2
		ya := (y01 + y12) / 2
		xb := (x12 + x23) / 2
		yb := (y12 + y23) / 2

		mx := (xa + xb) / 2
		my := (ya + yb) / 2

		tesselateCubic(points, numPoints, x0, y0, x01, y01, xa, ya, mx, my, objspaceFlatnessSquared, n+1)
		tesselateCubic(points, numPoints, mx, my, xb, yb, x23, y23, x3, y3, objspaceFlatnessSquared, n+1)
	} else {
		addPoint(points, *numPoints, x3, y3)
		*numPoints++
	}
}

// flattenCurves converts a vertex stream to per-contour polylines.  Two
// passes: the first only counts points so the result is allocated exactly
// once.
func flattenCurves(vertices []Vertex, objspaceFlatness float64) (points []point, contourLengths []int) {
	objspaceFlatnessSquared := objspaceFlatness * objspaceFlatness

	numContours := 0
	for i := range vertices {
		if vertices[i].Kind == VertexMoveTo {
			numContours++
		}
	}
	if numContours == 0 {
		return nil, nil
	}

	contourLengths = make([]int, numContours)

	numPoints := 0
	for pass := 0; pass < 2; pass++ {
		if pass == 1 {
			points = make([]point, numPoints)
		}

		var x, y float64
		numPoints = 0
		n := -1
		start := 0
		for i := range vertices {
			v := vertices[i]
			switch v.Kind {
			case VertexMoveTo:
				// Start the next contour.
				if n >= 0 {
					contourLengths[n] = numPoints - start
				}
				n++
				start = numPoints

				x = float64(v.X)
				y = float64(v.Y)
				addPoint(points, numPoints, x, y)
				numPoints++
			case VertexLineTo:
				x = float64(v.X)
				y = float64(v.Y)
				addPoint(points, numPoints, x, y)
				numPoints++
			case VertexQuadTo:
				tesselateCurve(points, &numPoints, x, y,
					float64(v.CX), float64(v.CY),
					float64(v.X), float64(v.Y),
					objspaceFlatnessSquared, 0)
				x = float64(v.X)
				y = float64(v.Y)
			case VertexCubicTo:
				tesselateCubic(points, &numPoints, x, y,
					float64(v.CX), float64(v.CY),
					float64(v.CX1), float64(v.CY1),
					float64(v.X), float64(v.Y),
					objspaceFlatnessSquared, 0)
				x = float64(v.X)
				y = float64(v.Y)
			}
		}
		contourLengths[n] = numPoints - start
	}

	return points, contourLengths
}
