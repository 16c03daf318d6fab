/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"math"

	"github.com/unidoc/unifont/common"
)

// Type-2 charstring interpreter.  A charstring is a stack program: operands
// accumulate on a float stack (capacity 48) until an operator consumes
// them; callsubr/callgsubr switch execution to a subroutine through an
// explicit return stack of depth 10, so adversarial recursion cannot grow
// the native stack.
// https://adobe-type-tools.github.io/font-tech-notes/pdfs/5177.Type2.pdf

const (
	csOperandStackLimit = 48
	csSubrStackLimit    = 10
)

// charstringCtx accumulates the output of one interpreter run.  With
// bounds set it only tracks the vertex count and bounding box; the second
// pass emits into the preallocated vertices slice.  The width operand that
// may lead the first stack-clearing operator is ignored since advance
// widths come from hmtx.
type charstringCtx struct {
	bounds  bool
	started bool

	firstX, firstY float64
	x, y           float64

	minX, maxX, minY, maxY int32

	vertices []Vertex
	count    int
}

func (c *charstringCtx) trackVertex(x, y int32) {
	if x > c.maxX || !c.started {
		c.maxX = x
	}
	if y > c.maxY || !c.started {
		c.maxY = y
	}
	if x < c.minX || !c.started {
		c.minX = x
	}
	if y < c.minY || !c.started {
		c.minY = y
	}
	c.started = true
}

func (c *charstringCtx) v(kind VertexKind, x, y, cx, cy, cx1, cy1 int32) {
	if c.bounds {
		c.trackVertex(x, y)
		if kind == VertexCubicTo {
			c.trackVertex(cx, cy)
			c.trackVertex(cx1, cy1)
		}
	} else {
		var vert Vertex
		setVertex(&vert, kind, x, y, cx, cy)
		vert.CX1 = int16(cx1)
		vert.CY1 = int16(cy1)
		c.vertices = append(c.vertices, vert)
	}
	c.count++
}

func (c *charstringCtx) closeShape() {
	if c.firstX != c.x || c.firstY != c.y {
		c.v(VertexLineTo, int32(c.firstX), int32(c.firstY), 0, 0, 0, 0)
	}
}

func (c *charstringCtx) rmoveTo(dx, dy float64) {
	c.closeShape()
	c.x += dx
	c.y += dy
	c.firstX = c.x
	c.firstY = c.y
	c.v(VertexMoveTo, int32(c.x), int32(c.y), 0, 0, 0, 0)
}

func (c *charstringCtx) rlineTo(dx, dy float64) {
	c.x += dx
	c.y += dy
	c.v(VertexLineTo, int32(c.x), int32(c.y), 0, 0, 0, 0)
}

func (c *charstringCtx) rccurveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) {
	cx1 := c.x + dx1
	cy1 := c.y + dy1
	cx2 := cx1 + dx2
	cy2 := cy1 + dy2
	c.x = cx2 + dx3
	c.y = cy2 + dy3
	c.v(VertexCubicTo, int32(c.x), int32(c.y), int32(cx1), int32(cy1), int32(cx2), int32(cy2))
}

// runCharstring interprets the charstring of `gid` into `c`.  Any stack
// underflow, unknown reserved operator, failed subroutine resolution or
// missing endchar aborts the run with errCharstring.
func (f *font) runCharstring(gid GlyphIndex, c *charstringCtx) error {
	csErr := func(reason string) error {
		common.Log.Debug("charstring: %s (glyph %d)", reason, gid)
		return errCharstring
	}

	inHeader := true
	maskBits := 0
	hasSubrs := false
	sp := 0
	var s [csOperandStackLimit]float64

	var subrStack [csSubrStackLimit]bufView
	subrStackHeight := 0
	subrs := f.subrs

	b := cffIndexGet(f.charstrings, int(gid))
	for b.cursor < b.size() {
		i := 0
		clearStack := true
		b0 := int(b.get8())
		switch b0 {
		case 0x13, 0x14: // hintmask, cntrmask
			if inHeader {
				maskBits += sp / 2 // implicit vstem
			}
			inHeader = false
			b.skip((maskBits + 7) / 8)

		case 0x01, 0x03, 0x12, 0x17: // hstem, vstem, hstemhm, vstemhm
			maskBits += sp / 2

		case 0x15: // rmoveto
			inHeader = false
			if sp < 2 {
				return csErr("rmoveto stack")
			}
			c.rmoveTo(s[sp-2], s[sp-1])

		case 0x04: // vmoveto
			inHeader = false
			if sp < 1 {
				return csErr("vmoveto stack")
			}
			c.rmoveTo(0, s[sp-1])

		case 0x16: // hmoveto
			inHeader = false
			if sp < 1 {
				return csErr("hmoveto stack")
			}
			c.rmoveTo(s[sp-1], 0)

		case 0x05: // rlineto
			if sp < 2 {
				return csErr("rlineto stack")
			}
			for ; i+1 < sp; i += 2 {
				c.rlineTo(s[i], s[i+1])
			}

		case 0x06, 0x07: // hlineto, vlineto
			// Lines alternating between the axes, starting horizontal for
			// hlineto and vertical for vlineto.
			if sp < 1 {
				return csErr("h/vlineto stack")
			}
			horizontal := b0 == 0x06
			for ; i < sp; i++ {
				if horizontal {
					c.rlineTo(s[i], 0)
				} else {
					c.rlineTo(0, s[i])
				}
				horizontal = !horizontal
			}

		case 0x1E, 0x1F: // vhcurveto, hvcurveto
			if sp < 4 {
				return csErr("vh/hvcurveto stack")
			}
			horizontal := b0 == 0x1F
			for ; i+3 < sp; i += 4 {
				var last float64
				if sp-i == 5 {
					last = s[i+4]
				}
				if horizontal {
					c.rccurveTo(s[i], 0, s[i+1], s[i+2], last, s[i+3])
				} else {
					c.rccurveTo(0, s[i], s[i+1], s[i+2], s[i+3], last)
				}
				horizontal = !horizontal
			}

		case 0x08: // rrcurveto
			if sp < 6 {
				return csErr("rrcurveto stack")
			}
			for ; i+5 < sp; i += 6 {
				c.rccurveTo(s[i], s[i+1], s[i+2], s[i+3], s[i+4], s[i+5])
			}

		case 0x18: // rcurveline
			if sp < 8 {
				return csErr("rcurveline stack")
			}
			for ; i+5 < sp-2; i += 6 {
				c.rccurveTo(s[i], s[i+1], s[i+2], s[i+3], s[i+4], s[i+5])
			}
			if i+1 >= sp {
				return csErr("rcurveline stack")
			}
			c.rlineTo(s[i], s[i+1])

		case 0x19: // rlinecurve
			if sp < 8 {
				return csErr("rlinecurve stack")
			}
			for ; i+1 < sp-6; i += 2 {
				c.rlineTo(s[i], s[i+1])
			}
			if i+5 >= sp {
				return csErr("rlinecurve stack")
			}
			c.rccurveTo(s[i], s[i+1], s[i+2], s[i+3], s[i+4], s[i+5])

		case 0x1A, 0x1B: // vvcurveto, hhcurveto
			if sp < 4 {
				return csErr("vv/hhcurveto stack")
			}
			// An odd stack carries a leading offset on the other axis.
			var lead float64
			if sp&1 != 0 {
				lead = s[i]
				i++
			}
			for ; i+3 < sp; i += 4 {
				if b0 == 0x1B {
					c.rccurveTo(s[i], lead, s[i+1], s[i+2], s[i+3], 0)
				} else {
					c.rccurveTo(lead, s[i], s[i+1], s[i+2], 0, s[i+3])
				}
				lead = 0
			}

		case 0x0A, 0x1D: // callsubr, callgsubr
			if b0 == 0x0A && !hasSubrs {
				if f.fdselect.size() > 0 {
					subrs = f.cidGlyphSubrs(gid)
				}
				hasSubrs = true
			}
			if sp < 1 {
				return csErr("callsubr stack")
			}
			sp--
			v := int(s[sp])
			if subrStackHeight >= csSubrStackLimit {
				return csErr("recursion limit")
			}
			subrStack[subrStackHeight] = b
			subrStackHeight++
			idx := f.gsubrs
			if b0 == 0x0A {
				idx = subrs
			}
			b = getSubr(idx, v)
			if b.size() == 0 {
				return csErr("subr not found")
			}
			b.cursor = 0
			clearStack = false

		case 0x0B: // return
			if subrStackHeight <= 0 {
				return csErr("return outside subr")
			}
			subrStackHeight--
			b = subrStack[subrStackHeight]
			clearStack = false

		case 0x0E: // endchar
			c.closeShape()
			return nil

		case 0x0C: // two-byte escape: the flex family
			// Flex resolution depth is ignored; both halves are always
			// emitted as cubics.
			b1 := int(b.get8())
			switch b1 {
			case 0x22: // hflex
				if sp < 7 {
					return csErr("hflex stack")
				}
				c.rccurveTo(s[0], 0, s[1], s[2], s[3], 0)
				c.rccurveTo(s[4], 0, s[5], -s[2], s[6], 0)

			case 0x23: // flex
				if sp < 13 {
					return csErr("flex stack")
				}
				// s[12] is the flex depth.
				c.rccurveTo(s[0], s[1], s[2], s[3], s[4], s[5])
				c.rccurveTo(s[6], s[7], s[8], s[9], s[10], s[11])

			case 0x24: // hflex1
				if sp < 9 {
					return csErr("hflex1 stack")
				}
				c.rccurveTo(s[0], s[1], s[2], s[3], s[4], 0)
				c.rccurveTo(s[5], 0, s[6], s[7], s[8], -(s[1] + s[3] + s[7]))

			case 0x25: // flex1
				if sp < 11 {
					return csErr("flex1 stack")
				}
				dx := s[0] + s[2] + s[4] + s[6] + s[8]
				dy := s[1] + s[3] + s[5] + s[7] + s[9]
				dx6, dy6 := s[10], s[10]
				// The closing coordinate runs along the dominant axis; the
				// other one returns to the start.
				if math.Abs(dx) > math.Abs(dy) {
					dy6 = -dy
				} else {
					dx6 = -dx
				}
				c.rccurveTo(s[0], s[1], s[2], s[3], s[4], s[5])
				c.rccurveTo(s[6], s[7], s[8], s[9], dx6, dy6)

			default:
				return csErr("unimplemented escape operator")
			}

		default:
			if b0 != 255 && b0 != 28 && b0 < 32 {
				return csErr("reserved operator")
			}

			// Push an immediate operand.
			var val float64
			if b0 == 255 {
				val = float64(int32(b.get32())) / 0x10000
			} else {
				b.skip(-1)
				val = float64(int16(cffInt(&b)))
			}
			if sp >= csOperandStackLimit {
				return csErr("push stack overflow")
			}
			s[sp] = val
			sp++
			clearStack = false
		}
		if clearStack {
			sp = 0
		}
	}
	return csErr("no endchar")
}

// glyphShapeT2 runs the charstring twice, once to size the output and once
// to emit, so the vertex array never grows mid-interpretation.
func (f *font) glyphShapeT2(gid GlyphIndex) []Vertex {
	countCtx := charstringCtx{bounds: true}
	if err := f.runCharstring(gid, &countCtx); err != nil {
		return nil
	}

	outCtx := charstringCtx{
		vertices: make([]Vertex, 0, countCtx.count),
	}
	if err := f.runCharstring(gid, &outCtx); err != nil {
		return nil
	}
	return outCtx.vertices
}

// glyphBoxT2 computes the charstring bounding box without emitting
// vertices.
func (f *font) glyphBoxT2(gid GlyphIndex) (BBox, bool) {
	c := charstringCtx{bounds: true}
	if err := f.runCharstring(gid, &c); err != nil || c.count == 0 {
		return BBox{}, false
	}
	return BBox{
		X0: int(c.minX),
		Y0: int(c.minY),
		X1: int(c.maxX),
		Y1: int(c.maxY),
	}, true
}
