/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "strings"

// GlyphIndex or Glyph ID (GID) represents each glyph within a font.
// Index 0 is the missing-glyph placeholder (.notdef).
type GlyphIndex uint16

/*
Types in truetype fonts:
https://docs.microsoft.com/en-us/typography/opentype/spec/otff

Data Type	Description
--------------------------------------------------------
uint8	  8-bit unsigned integer.
int8	  8-bit signed integer.
uint16	  16-bit unsigned integer.
int16	  16-bit signed integer.
uint32	  32-bit unsigned integer.
int32	  32-bit signed integer.
Fixed	  32-bit signed fixed-point number (16.16)
FWORD	  int16 that describes a quantity in font design units.
UFWORD	  uint16 that describes a quantity in font design units.
F2DOT14	  16-bit signed fixed number with the low 14 bits of fraction (2.14).
Tag	      Array of four uint8s used to identify a table.
Offset16  Short offset to a table, same as uint16, NULL offset = 0x0000
Offset32  Long offset to a table, same as uint32, NULL offset = 0x00000000
*/

type fixed int32
type fword int16
type ufword uint16
type f2dot14 int16
type tag [4]uint8
type offset16 uint16
type offset32 uint32

func (t tag) String() string {
	return strings.TrimSpace(string(t[:]))
}

// Float64 returns `f` as a float64 (2.14 fixed point).
func (f f2dot14) Float64() float64 {
	return float64(f) / 16384.0
}

func makeTag(s string) tag {
	bb := []byte(s[:])
	if len(bb) > 4 {
		// Trim to 4 bytes.
		bb = bb[:4]
	}
	for len(bb) < 4 {
		// Pad with spaces to fill 4 bytes.
		bb = append(bb, ' ')
	}

	var t tag
	copy(t[:], bb)
	return t
}

// VertexKind discriminates the segment type of a Vertex.
type VertexKind uint8

// Segment kinds in a glyph shape.
const (
	VertexMoveTo VertexKind = iota + 1
	VertexLineTo
	VertexQuadTo
	VertexCubicTo
)

// Vertex is one segment of a glyph outline.  X, Y is the segment endpoint in
// font units; CX, CY is the control point of a VertexQuadTo or the first
// control point of a VertexCubicTo; CX1, CY1 is the second cubic control
// point.  Shapes are sequences of contours, each opened by a VertexMoveTo.
type Vertex struct {
	Kind     VertexKind
	X, Y     int16
	CX, CY   int16
	CX1, CY1 int16
}

func setVertex(v *Vertex, kind VertexKind, x, y, cx, cy int32) {
	v.Kind = kind
	v.X = int16(x)
	v.Y = int16(y)
	v.CX = int16(cx)
	v.CY = int16(cy)
}

// BBox is a glyph or font bounding box in font units, y-up.
type BBox struct {
	X0, Y0, X1, Y1 int
}
