/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "math"

// Antialiased scanline rasterizer.  Contours become directed edges sorted
// by top y; a sweep keeps the edges crossing the current scanline in an
// intrusive list and accumulates, per pixel, the exact signed trapezoid
// area each edge covers.  No supersampling: one sweep produces the final
// 8-bit coverage under the non-zero winding rule.

// edge is a directed line segment in bitmap space with y0 < y1.  invert
// records the original winding orientation.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	invert bool
}

// activeEdge is the scanline-local state of an edge.  Nodes live in an
// edgeHeap arena and link through arena indices, preserving the O(1)
// insert/remove and locality of a pointer list without aliasing.
type activeEdge struct {
	next      int32
	fx        float64
	fdx, fdy  float64
	direction float64
	sy, ey    float64
}

const nilEdge = int32(-1)

// edgeHeap is the active-edge arena: nodes are handed out in chunks and
// recycled through a free list threaded over vacated slots.
type edgeHeap struct {
	nodes     []activeEdge
	firstFree int32
}

const edgeHeapChunk = 800

func newEdgeHeap() *edgeHeap {
	return &edgeHeap{firstFree: nilEdge}
}

func (h *edgeHeap) alloc() int32 {
	if h.firstFree != nilEdge {
		p := h.firstFree
		h.firstFree = h.nodes[p].next
		return p
	}
	if len(h.nodes) == cap(h.nodes) {
		grown := make([]activeEdge, len(h.nodes), len(h.nodes)+edgeHeapChunk)
		copy(grown, h.nodes)
		h.nodes = grown
	}
	h.nodes = append(h.nodes, activeEdge{})
	return int32(len(h.nodes) - 1)
}

func (h *edgeHeap) free(p int32) {
	h.nodes[p].next = h.firstFree
	h.firstFree = p
}

// newActive initializes an arena node for `e` at scanline `startPoint`.
func (h *edgeHeap) newActive(e *edge, offX int, startPoint float64) int32 {
	zi := h.alloc()
	z := &h.nodes[zi]
	dxdy := (e.x1 - e.x0) / (e.y1 - e.y0)
	z.fdx = dxdy
	z.fdy = 0
	if dxdy != 0 {
		z.fdy = 1 / dxdy
	}
	z.fx = e.x0 + dxdy*(startPoint-e.y0) - float64(offX)
	z.direction = -1
	if e.invert {
		z.direction = 1
	}
	z.sy = e.y0
	z.ey = e.y1
	z.next = nilEdge
	return zi
}

// handleClippedEdge accumulates the coverage of the sub-segment
// (x0,y0)-(x1,y1) of `e` into scanline[x].  The segment must not cross the
// vertical lines at x or x+1; callers split crossing segments first.
func handleClippedEdge(scanline []float64, x int, e *activeEdge, x0, y0, x1, y1 float64) {
	if y0 == y1 {
		return
	}
	if y0 > e.ey {
		return
	}
	if y1 < e.sy {
		return
	}
	if y0 < e.sy {
		x0 += (x1 - x0) * (e.sy - y0) / (y1 - y0)
		y0 = e.sy
	}
	if y1 > e.ey {
		x1 += (x1 - x0) * (e.ey - y1) / (y1 - y0)
		y1 = e.ey
	}

	fx := float64(x)
	if x0 <= fx && x1 <= fx {
		scanline[x] += e.direction * (y1 - y0)
	} else if x0 >= fx+1 && x1 >= fx+1 {
		// Entirely right of the pixel: no coverage here.
	} else {
		// coverage = 1 - average x position
		scanline[x] += e.direction * (y1 - y0) * (1 - ((x0-fx)+(x1-fx))/2)
	}
}

func sizedTrapezoidArea(height, topWidth, bottomWidth float64) float64 {
	return (topWidth + bottomWidth) / 2 * height
}

func positionTrapezoidArea(height, tx0, tx1, bx0, bx1 float64) float64 {
	return sizedTrapezoidArea(height, tx1-tx0, bx1-bx0)
}

func sizedTriangleArea(height, width float64) float64 {
	return height * width / 2
}

// fillActiveEdgesNew accumulates one scanline of coverage.  scanline holds
// the per-pixel contribution of this row; scanline2[x+1] carries the fill
// that every pixel right of x inherits from edges crossing this row.
func fillActiveEdgesNew(scanline, scanline2 []float64, length int, h *edgeHeap, first int32, yTop float64) {
	yBottom := yTop + 1

	for ei := first; ei != nilEdge; ei = h.nodes[ei].next {
		e := &h.nodes[ei]

		if e.fdx == 0 {
			// Vertical edge: all coverage lands in one column.
			x0 := e.fx
			if x0 < float64(length) {
				if x0 >= 0 {
					handleClippedEdge(scanline, int(x0), e, x0, yTop, x0, yBottom)
					handleClippedEdge(scanline2, int(x0)+1, e, x0, yTop, x0, yBottom)
				} else {
					handleClippedEdge(scanline2, 0, e, x0, yTop, x0, yBottom)
				}
			}
			continue
		}

		x0 := e.fx
		dx := e.fdx
		xb := x0 + dx
		dy := e.fdy

		// Clip the segment to the scanline strip.  x0 is the intersection
		// with yTop, which may lie off the segment if it starts below.
		var xTop, xBottom float64
		var sy0, sy1 float64
		if e.sy > yTop {
			xTop = x0 + dx*(e.sy-yTop)
			sy0 = e.sy
		} else {
			xTop = x0
			sy0 = yTop
		}
		if e.ey < yBottom {
			xBottom = x0 + dx*(e.ey-yTop)
			sy1 = e.ey
		} else {
			xBottom = xb
			sy1 = yBottom
		}

		if xTop >= 0 && xBottom >= 0 && xTop < float64(length) && xBottom < float64(length) {
			// No x range checks needed from here on.
			if int(xTop) == int(xBottom) {
				// Simple case: the segment spans one pixel column.
				x := int(xTop)
				height := (sy1 - sy0) * e.direction
				scanline[x] += positionTrapezoidArea(height, xTop, float64(x)+1, xBottom, float64(x)+1)
				scanline2[x+1] += height // everything right of this pixel is filled
			} else {
				// Covers two or more pixels.
				if xTop > xBottom {
					// Flip the scanline vertically: signed area is preserved.
					sy0 = yBottom - (sy0 - yTop)
					sy1 = yBottom - (sy1 - yTop)
					sy0, sy1 = sy1, sy0
					xBottom, xTop = xTop, xBottom
					dx = -dx
					dy = -dy
					x0, xb = xb, x0
				}

				x1 := int(xTop)
				x2 := int(xBottom)
				// Intersections with the verticals at x1+1 and x2.
				yCrossing := yTop + dy*(float64(x1)+1-x0)
				yFinal := yTop + dy*(float64(x2)-x0)

				// If x2 sits right at the edge of x1, yCrossing can blow up.
				if yCrossing > yBottom {
					yCrossing = yBottom
				}

				sign := e.direction

				// Rectangle covered from sy0 to yCrossing.
				area := sign * (yCrossing - sy0)

				// Triangle (xTop,sy0), (x1+1,sy0), (x1+1,yCrossing).
				scanline[x1] += sizedTriangleArea(area, float64(x1)+1-xTop)

				if yFinal > yBottom {
					// yFinal blown up the same way.
					yFinal = yBottom
					dy = (yFinal - yCrossing) / (float64(x2) - (float64(x1) + 1))
				}

				// Every intermediate pixel gets the rectangle carried in
				// from the pixels left of it plus its own sliding
				// trapezoid; the carry advances by dy per column.
				step := sign * dy
				for x := x1 + 1; x < x2; x++ {
					scanline[x] += area + step/2
					area += step
				}

				// The last pixel: carried rectangle plus the trapezoid up
				// to its right boundary.
				scanline[x2] += area + sign*positionTrapezoidArea(sy1-yFinal, float64(x2), float64(x2)+1, xBottom, float64(x2)+1)

				scanline2[x2+1] += sign * (sy1 - sy0)
			}
		} else {
			// The edge leaves the bitmap horizontally, so clip per pixel.
			// Slower, but only extrapolated edge ends reach this path.
			// Splitting happens on x positions so that a segment epsilon
			// across a pixel border cannot collapse into an empty span.
			for x := 0; x < length; x++ {
				y0 := yTop
				px1 := float64(x)
				px2 := float64(x + 1)
				x3 := xb
				y3 := yBottom

				y1 := (px1-x0)/dx + yTop
				y2 := (px2-x0)/dx + yTop

				switch {
				case x0 < px1 && x3 > px2: // three segments descending down-right
					handleClippedEdge(scanline, x, e, x0, y0, px1, y1)
					handleClippedEdge(scanline, x, e, px1, y1, px2, y2)
					handleClippedEdge(scanline, x, e, px2, y2, x3, y3)
				case x3 < px1 && x0 > px2: // three segments descending down-left
					handleClippedEdge(scanline, x, e, x0, y0, px2, y2)
					handleClippedEdge(scanline, x, e, px2, y2, px1, y1)
					handleClippedEdge(scanline, x, e, px1, y1, x3, y3)
				case x0 < px1 && x3 > px1: // two segments across x, down-right
					handleClippedEdge(scanline, x, e, x0, y0, px1, y1)
					handleClippedEdge(scanline, x, e, px1, y1, x3, y3)
				case x3 < px1 && x0 > px1: // two segments across x, down-left
					handleClippedEdge(scanline, x, e, x0, y0, px1, y1)
					handleClippedEdge(scanline, x, e, px1, y1, x3, y3)
				case x0 < px2 && x3 > px2: // two segments across x+1, down-right
					handleClippedEdge(scanline, x, e, x0, y0, px2, y2)
					handleClippedEdge(scanline, x, e, px2, y2, x3, y3)
				case x3 < px2 && x0 > px2: // two segments across x+1, down-left
					handleClippedEdge(scanline, x, e, x0, y0, px2, y2)
					handleClippedEdge(scanline, x, e, px2, y2, x3, y3)
				default: // one segment
					handleClippedEdge(scanline, x, e, x0, y0, x3, y3)
				}
			}
		}
	}
}

// rasterizeSortedEdges sweeps the sorted edge list one scanline at a time
// and writes 8-bit coverage rows into the bitmap.
func rasterizeSortedEdges(result *Bitmap, e []edge, n, offX, offY int) {
	h := newEdgeHeap()
	active := nilEdge

	scanline := make([]float64, result.W)
	scanline2 := make([]float64, result.W+1)

	y := offY
	e[n].y0 = float64(offY+result.H) + 1

	ei := 0
	for j := 0; j < result.H; j++ {
		scanYTop := float64(y)
		scanYBottom := float64(y) + 1

		for i := range scanline {
			scanline[i] = 0
		}
		for i := range scanline2 {
			scanline2[i] = 0
		}

		// Expire edges that end above this scanline.
		for step := &active; *step != nilEdge; {
			zi := *step
			if h.nodes[zi].ey <= scanYTop {
				*step = h.nodes[zi].next // delete from list
				h.nodes[zi].direction = 0
				h.free(zi)
			} else {
				step = &h.nodes[zi].next
			}
		}

		// Admit edges that start before the bottom of this scanline.
		for e[ei].y0 <= scanYBottom {
			if e[ei].y0 != e[ei].y1 {
				zi := h.newActive(&e[ei], offX, scanYTop)
				if j == 0 && offY != 0 && h.nodes[zi].ey < scanYTop {
					// Subpixel positioning plus rounding error can push an
					// edge end a hair above the first scanline.
					h.nodes[zi].ey = scanYTop
				}
				h.nodes[zi].next = active
				active = zi
			}
			ei++
		}

		if active != nilEdge {
			fillActiveEdgesNew(scanline, scanline2, result.W, h, active, scanYTop)
		}

		// Resolve winding: prefix-sum the fill carries, add the local
		// coverage, and map |area| to a byte.  The absolute value corrects
		// the sign of counter-clockwise holes under non-zero winding.
		sum := 0.0
		for i := 0; i < result.W; i++ {
			sum += scanline2[i]
			k := scanline[i] + sum
			k = math.Abs(k)*255 + 0.5
			m := int(k)
			if m > 255 {
				m = 255
			}
			result.Pixels[j*result.Stride+i] = uint8(m)
		}

		// Advance all edges to the next scanline.
		for zi := active; zi != nilEdge; zi = h.nodes[zi].next {
			h.nodes[zi].fx += h.nodes[zi].fdx
		}

		y++
	}
}

func edgeBefore(a, b *edge) bool {
	return a.y0 < b.y0
}

func sortEdgesInsSort(p []edge, n int) {
	for i := 1; i < n; i++ {
		t := p[i]
		a := &t
		j := i
		for j > 0 {
			b := &p[j-1]
			if !edgeBefore(a, b) {
				break
			}
			p[j] = p[j-1]
			j--
		}
		if i != j {
			p[j] = t
		}
	}
}

func sortEdgesQuicksort(p []edge, n int) {
	// Below this length insertion sort finishes the job.
	for n > 12 {
		// Median of three.
		m := n >> 1
		c01 := edgeBefore(&p[0], &p[m])
		c12 := edgeBefore(&p[m], &p[n-1])
		if c01 != c12 {
			// Swap something else to the middle.
			c := edgeBefore(&p[0], &p[n-1])
			z := n - 1
			if c == c12 {
				z = 0
			}
			p[z], p[m] = p[m], p[z]
		}
		// Put the median first so it stays put during partitioning.
		p[0], p[m] = p[m], p[0]

		i := 1
		j := n - 1
		for {
			// Equality handling matters here for sentinels and duplicates.
			for ; ; i++ {
				if !edgeBefore(&p[i], &p[0]) {
					break
				}
			}
			for ; ; j-- {
				if !edgeBefore(&p[0], &p[j]) {
					break
				}
			}
			if i >= j {
				break
			}
			p[i], p[j] = p[j], p[i]

			i++
			j--
		}

		// Recurse on the smaller side, iterate on the larger.
		if j < n-i {
			sortEdgesQuicksort(p, j)
			p = p[i:]
			n = n - i
		} else {
			sortEdgesQuicksort(p[i:], n-i)
			n = j
		}
	}
}

func sortEdges(p []edge, n int) {
	sortEdgesQuicksort(p, n)
	sortEdgesInsSort(p, n)
}

// rasterize converts flattened contours to oriented edges, sorts them by
// top y, and sweeps.
func rasterize(result *Bitmap, pts []point, wcount []int, scaleX, scaleY, shiftX, shiftY float64, offX, offY int, invert bool) {
	yScaleInv := scaleY
	if invert {
		yScaleInv = -scaleY
	}

	n := 0
	for _, c := range wcount {
		n += c
	}
	if n == 0 {
		return
	}

	// One extra edge as the admission sentinel.
	e := make([]edge, n+1)
	n = 0

	m := 0
	for i := range wcount {
		p := pts[m:]
		m += wcount[i]
		j := wcount[i] - 1
		for k := 0; k < wcount[i]; j, k = k, k+1 {
			a, b := k, j
			// Skip horizontal edges: they contribute no area.
			if p[j].y == p[k].y {
				continue
			}
			e[n].invert = false
			if (invert && p[j].y > p[k].y) || (!invert && p[j].y < p[k].y) {
				e[n].invert = true
				a, b = j, k
			}
			e[n].x0 = p[a].x*scaleX + shiftX
			e[n].y0 = p[a].y*yScaleInv + shiftY
			e[n].x1 = p[b].x*scaleX + shiftX
			e[n].y1 = p[b].y*yScaleInv + shiftY
			n++
		}
	}

	// Sort by top y (snapping to integer is not needed; the sweep admits
	// by comparing against scanline bounds).
	sortEdges(e, n)

	rasterizeSortedEdges(result, e, n, offX, offY)
}

// Rasterize renders `vertices` into `result` with the given scale and
// subpixel shift.  `flatnessInPixels` is the curve tessellation tolerance;
// `invert` flips the y axis, which is what bitmaps with y increasing
// downwards want.
func Rasterize(result *Bitmap, flatnessInPixels float64, vertices []Vertex, scaleX, scaleY, shiftX, shiftY float64, xOff, yOff int, invert bool) {
	scale := scaleX
	if scaleX > scaleY {
		scale = scaleY
	}
	points, contourLengths := flattenCurves(vertices, flatnessInPixels/scale)
	if points == nil {
		return
	}
	rasterize(result, points, contourLengths, scaleX, scaleY, shiftX, shiftY, xOff, yOff, invert)
}
