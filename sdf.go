/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "math"

// Signed distance field generation.  For each output pixel the unflattened
// shape is probed twice: a horizontal ray cast determines the winding (and
// with it the sign), and a closest-point search over every line and
// quadratic segment yields the distance.  Quadratic minimization solves a
// cubic in the curve parameter via Cardano's method.

// rayIntersectBezier intersects the ray (orig, dir) with the quadratic
// (q0, q1, q2), writing up to two (distance-along-ray, derivative-sign)
// pairs into hits.  Returns the number of hits in [0, 1] of the curve
// parameter.
func rayIntersectBezier(orig, dir, q0, q1, q2 [2]float64, hits *[2][2]float64) int {
	q0perp := q0[1]*dir[0] - q0[0]*dir[1]
	q1perp := q1[1]*dir[0] - q1[0]*dir[1]
	q2perp := q2[1]*dir[0] - q2[0]*dir[1]
	roperp := orig[1]*dir[0] - orig[0]*dir[1]

	a := q0perp - 2*q1perp + q2perp
	b := q1perp - q0perp
	c := q0perp - roperp

	var s0, s1 float64
	numS := 0

	if a != 0 {
		discr := b*b - a*c
		if discr > 0 {
			rcpna := -1 / a
			d := math.Sqrt(discr)
			s0 = (b + d) * rcpna
			s1 = (b - d) * rcpna
			if s0 >= 0 && s0 <= 1 {
				numS = 1
			}
			if d > 0 && s1 >= 0 && s1 <= 1 {
				if numS == 0 {
					s0 = s1
				}
				numS++
			}
		}
	} else {
		// 2*b*s + c = 0
		s0 = c / (-2 * b)
		if s0 >= 0 && s0 <= 1 {
			numS = 1
		}
	}

	if numS == 0 {
		return 0
	}

	rcpLen2 := 1 / (dir[0]*dir[0] + dir[1]*dir[1])
	raynX := dir[0] * rcpLen2
	raynY := dir[1] * rcpLen2

	q0d := q0[0]*raynX + q0[1]*raynY
	q1d := q1[0]*raynX + q1[1]*raynY
	q2d := q2[0]*raynX + q2[1]*raynY
	rod := orig[0]*raynX + orig[1]*raynY

	q10d := q1d - q0d
	q20d := q2d - q0d
	q0rd := q0d - rod

	hits[0][0] = q0rd + s0*(2-2*s0)*q10d + s0*s0*q20d
	hits[0][1] = a*s0 + b

	if numS > 1 {
		hits[1][0] = q0rd + s1*(2-2*s1)*q10d + s1*s1*q20d
		hits[1][1] = a*s1 + b
		return 2
	}
	return 1
}

// computeCrossingsX casts a horizontal ray from (-inf, y) to (x, y) and
// counts signed crossings with the line and quadratic segments of the
// shape.  y is nudged off integer values so the ray cannot pass exactly
// through a vertex.  A non-zero result means inside.
func computeCrossingsX(x, y float64, verts []Vertex) int {
	dir := [2]float64{1, 0}

	yFrac := math.Mod(y, 1.0)
	if yFrac < 0.01 {
		y += 0.01
	} else if yFrac > 0.99 {
		y -= 0.01
	}

	orig := [2]float64{x, y}
	winding := 0

	crossLine := func(x0, y0, x1, y1 float64) {
		if y > math.Min(y0, y1) && y < math.Max(y0, y1) && x > math.Min(x0, x1) {
			xInter := (y-y0)/(y1-y0)*(x1-x0) + x0
			if xInter < x {
				if y0 < y1 {
					winding++
				} else {
					winding--
				}
			}
		}
	}

	for i := 1; i < len(verts); i++ {
		switch verts[i].Kind {
		case VertexLineTo:
			crossLine(float64(verts[i-1].X), float64(verts[i-1].Y),
				float64(verts[i].X), float64(verts[i].Y))

		case VertexQuadTo:
			x0, y0 := float64(verts[i-1].X), float64(verts[i-1].Y)
			x1, y1 := float64(verts[i].CX), float64(verts[i].CY)
			x2, y2 := float64(verts[i].X), float64(verts[i].Y)
			ay := math.Min(y0, math.Min(y1, y2))
			by := math.Max(y0, math.Max(y1, y2))
			ax := math.Min(x0, math.Min(x1, x2))
			if y > ay && y < by && x > ax {
				q0 := [2]float64{x0, y0}
				q1 := [2]float64{x1, y1}
				q2 := [2]float64{x2, y2}
				if q0 == q1 || q1 == q2 {
					// Degenerate quad: treat as the chord.
					crossLine(x0, y0, x2, y2)
				} else {
					var hits [2][2]float64
					numHits := rayIntersectBezier(orig, dir, q0, q1, q2, &hits)
					if numHits >= 1 && hits[0][0] < 0 {
						if hits[0][1] < 0 {
							winding--
						} else {
							winding++
						}
					}
					if numHits >= 2 && hits[1][0] < 0 {
						if hits[1][1] < 0 {
							winding--
						} else {
							winding++
						}
					}
				}
			}
		}
	}
	return winding
}

func cuberoot(x float64) float64 {
	if x < 0 {
		return -math.Pow(-x, 1.0/3.0)
	}
	return math.Pow(x, 1.0/3.0)
}

// solveCubic finds the real roots of x^3 + a*x^2 + b*x + c, writing them to
// r and returning their count (1 or 3).  The three-root case goes through
// the trigonometric form of the irreducible casus.
func solveCubic(a, b, c float64, r *[3]float64) int {
	s := -a / 3
	p := b - a*a/3
	q := a*(2*a*a-9*b)/27 + c
	p3 := p * p * p
	d := q*q + 4*p3/27
	if d >= 0 {
		z := math.Sqrt(d)
		u := (-q + z) / 2
		v := (-q - z) / 2
		u = cuberoot(u)
		v = cuberoot(v)
		r[0] = s + u + v
		return 1
	}

	u := math.Sqrt(-p / 3)
	// p3 must be negative since d is negative.
	v := math.Acos(-math.Sqrt(-27/p3)*q/2) / 3
	m := math.Cos(v)
	n := math.Cos(v-math.Pi/2) * 1.732050808
	r[0] = s + u*2*m
	r[1] = s - u*(m+n)
	r[2] = s - u*(m-n)
	return 3
}

// GlyphSDF renders a signed distance field of `gid` at uniform `scale`.
// `padding` expands the bitmap box on every side; each output byte is
// onedgeValue + pixelDistScale * distance, clamped to [0, 255], with
// distance negated outside the shape.  Returns nil for empty glyphs.
func (f *font) GlyphSDF(gid GlyphIndex, scale float64, padding int, onedgeValue uint8, pixelDistScale float64) (bm *Bitmap, xoff, yoff int) {
	if scale == 0 {
		return nil, 0, 0
	}

	scaleX, scaleY := scale, scale

	ix0, iy0, ix1, iy1 := f.GlyphBitmapBox(gid, scale, scale, 0, 0)
	if ix0 == ix1 || iy0 == iy1 {
		return nil, 0, 0
	}

	ix0 -= padding
	iy0 -= padding
	ix1 += padding
	iy1 += padding

	w := ix1 - ix0
	h := iy1 - iy0
	bm = newBitmap(w, h)

	// Invert for y-downwards bitmaps.
	scaleY = -scaleY

	verts := f.GlyphShape(gid)

	// Distance from singular values, in pixel-grid units.
	const eps = 1.0 / 1024
	const eps2 = eps * eps

	// Per-segment inverse length (lines) or inverse leading coefficient
	// (quads), hoisted out of the pixel loop.
	precompute := make([]float64, len(verts))
	for i := range verts {
		j := len(verts) - 1
		if i > 0 {
			j = i - 1
		}
		switch verts[i].Kind {
		case VertexLineTo:
			x0 := float64(verts[i].X) * scaleX
			y0 := float64(verts[i].Y) * scaleY
			x1 := float64(verts[j].X) * scaleX
			y1 := float64(verts[j].Y) * scaleY
			dist := math.Sqrt((x1-x0)*(x1-x0) + (y1-y0)*(y1-y0))
			if dist < eps {
				precompute[i] = 0
			} else {
				precompute[i] = 1 / dist
			}
		case VertexQuadTo:
			x2 := float64(verts[j].X) * scaleX
			y2 := float64(verts[j].Y) * scaleY
			x1 := float64(verts[i].CX) * scaleX
			y1 := float64(verts[i].CY) * scaleY
			x0 := float64(verts[i].X) * scaleX
			y0 := float64(verts[i].Y) * scaleY
			bx := x0 - 2*x1 + x2
			by := y0 - 2*y1 + y2
			len2 := bx*bx + by*by
			if len2 >= eps2 {
				precompute[i] = 1 / len2
			} else {
				precompute[i] = 0
			}
		default:
			precompute[i] = 0
		}
	}

	for y := iy0; y < iy1; y++ {
		for x := ix0; x < ix1; x++ {
			sx := float64(x) + 0.5
			sy := float64(y) + 0.5
			xGspace := sx / scaleX
			yGspace := sy / scaleY

			winding := computeCrossingsX(xGspace, yGspace, verts)

			minDist := 999999.0
			for i := range verts {
				x0 := float64(verts[i].X) * scaleX
				y0 := float64(verts[i].Y) * scaleY

				switch {
				case i > 0 && verts[i].Kind == VertexLineTo && precompute[i] != 0:
					x1 := float64(verts[i-1].X) * scaleX
					y1 := float64(verts[i-1].Y) * scaleY

					dist2 := (x0-sx)*(x0-sx) + (y0-sy)*(y0-sy)
					if dist2 < minDist*minDist {
						minDist = math.Sqrt(dist2)
					}

					// Perpendicular distance, valid when the foot of the
					// perpendicular lies on the segment.
					dist := math.Abs((x1-x0)*(y0-sy)-(y1-y0)*(x0-sx)) * precompute[i]
					if dist < minDist {
						dx := x1 - x0
						dy := y1 - y0
						px := x0 - sx
						py := y0 - sy
						t := -(px*dx + py*dy) / (dx*dx + dy*dy)
						if t >= 0 && t <= 1 {
							minDist = dist
						}
					}

				case i > 0 && verts[i].Kind == VertexQuadTo:
					x2 := float64(verts[i-1].X) * scaleX
					y2 := float64(verts[i-1].Y) * scaleY
					x1 := float64(verts[i].CX) * scaleX
					y1 := float64(verts[i].CY) * scaleY
					boxX0 := math.Min(math.Min(x0, x1), x2)
					boxY0 := math.Min(math.Min(y0, y1), y2)
					boxX1 := math.Max(math.Max(x0, x1), x2)
					boxY1 := math.Max(math.Max(y0, y1), y2)
					// Coarse cull against the control bbox before the cubic.
					if sx > boxX0-minDist && sx < boxX1+minDist && sy > boxY0-minDist && sy < boxY1+minDist {
						num := 0
						ax := x1 - x0
						ay := y1 - y0
						bx := x0 - 2*x1 + x2
						by := y0 - 2*y1 + y2
						mx := x0 - sx
						my := y0 - sy
						var res [3]float64
						aInv := precompute[i]
						if aInv == 0 {
							// Degenerate to 2nd degree: quadratic formula.
							a := 3 * (ax*bx + ay*by)
							b := 2*(ax*ax+ay*ay) + (mx*bx + my*by)
							c := mx*ax + my*ay
							if math.Abs(a) < eps2 {
								// Linear.
								if math.Abs(b) >= eps2 {
									res[num] = -c / b
									num++
								}
							} else {
								discriminant := b*b - 4*a*c
								if discriminant >= 0 {
									root := math.Sqrt(discriminant)
									res[0] = (-b - root) / (2 * a)
									res[1] = (-b + root) / (2 * a)
									num = 2
								}
							}
						} else {
							b := 3 * (ax*bx + ay*by) * aInv
							c := (2*(ax*ax+ay*ay) + (mx*bx + my*by)) * aInv
							d := (mx*ax + my*ay) * aInv
							num = solveCubic(b, c, d, &res)
						}
						dist2 := (x0-sx)*(x0-sx) + (y0-sy)*(y0-sy)
						if dist2 < minDist*minDist {
							minDist = math.Sqrt(dist2)
						}

						for k := 0; k < num; k++ {
							if res[k] >= 0 && res[k] <= 1 {
								t := res[k]
								it := 1 - t
								px := it*it*x0 + 2*t*it*x1 + t*t*x2
								py := it*it*y0 + 2*t*it*y1 + t*t*y2
								dist2 = (px-sx)*(px-sx) + (py-sy)*(py-sy)
								if dist2 < minDist*minDist {
									minDist = math.Sqrt(dist2)
								}
							}
						}
					}
				}
			}

			if winding == 0 {
				// Outside the shape: the distance is negative.
				minDist = -minDist
			}
			val := float64(onedgeValue) + pixelDistScale*minDist
			if val < 0 {
				val = 0
			} else if val > 255 {
				val = 255
			}
			bm.Pixels[(y-iy0)*bm.Stride+(x-ix0)] = uint8(val)
		}
	}

	return bm, ix0, iy0
}

// CodepointSDF is GlyphSDF for the glyph mapped to `r`.
func (f *font) CodepointSDF(r rune, scale float64, padding int, onedgeValue uint8, pixelDistScale float64) (bm *Bitmap, xoff, yoff int) {
	return f.GlyphSDF(f.GlyphIndex(r), scale, padding, onedgeValue, pixelDistScale)
}
