/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// Synthetic font fixtures.  Tables are assembled byte-exact with byteWriter
// and packed into an sfnt container, so every test font is self-describing
// and the suite needs no binary testdata.

type tableDef struct {
	name string
	data []byte
}

const (
	sfntVersionTrueType = uint32(0x00010000)
	sfntVersionOTTO     = uint32(0x4F54544F) // 'OTTO'
)

func buildBytes(build func(w *byteWriter)) []byte {
	var buf bytes.Buffer
	w := newByteWriter(&buf)
	build(w)
	if err := w.flush(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func tableChecksum(data []byte) uint32 {
	var buf bytes.Buffer
	w := newByteWriter(&buf)
	w.write(data)
	return w.checksum()
}

// buildSfnt packs `tables` into an sfnt starting at `base` within the final
// buffer (non-zero for TTC members, whose directory offsets are absolute).
func buildSfnt(version uint32, base int, tables []tableDef) []byte {
	n := len(tables)

	searchRange := 16
	entrySelector := 0
	for searchRange*2 <= 16*n {
		searchRange *= 2
		entrySelector++
	}
	rangeShift := 16*n - searchRange

	return buildBytes(func(w *byteWriter) {
		w.write(version, uint16(n), uint16(searchRange), uint16(entrySelector), uint16(rangeShift))

		offset := base + 12 + 16*n
		for _, td := range tables {
			w.write(makeTag(td.name), tableChecksum(td.data), offset32(offset), uint32(len(td.data)))
			offset += (len(td.data) + 3) &^ 3
		}
		for _, td := range tables {
			w.write(td.data)
			w.pad4()
		}
	})
}

func buildTTC(fonts ...[]byte) []byte {
	// Header: 12 bytes plus one offset per font.  Fonts are passed in as
	// full sfnt blobs built with the matching base.
	var out []byte
	header := buildBytes(func(w *byteWriter) {
		w.write(makeTag("ttcf"), uint32(0x00010000), uint32(len(fonts)))
		offset := 12 + 4*len(fonts)
		for _, f := range fonts {
			w.write(uint32(offset))
			offset += len(f)
		}
	})
	out = append(out, header...)
	for _, f := range fonts {
		out = append(out, f...)
	}
	return out
}

func buildHead(indexToLocFormat int16, unitsPerEm uint16, box BBox, macStyle uint16) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(uint32(0x00010000), uint32(0))       // version, fontRevision
		w.write(uint32(0), uint32(0x5F0F3CF5))       // checksumAdjustment, magic
		w.write(uint16(0), unitsPerEm)               // flags, unitsPerEm
		w.write(uint32(0), uint32(0))                // created
		w.write(uint32(0), uint32(0))                // modified
		w.write(int16(box.X0), int16(box.Y0), int16(box.X1), int16(box.Y1))
		w.write(macStyle, uint16(8))                 // macStyle, lowestRecPPEM
		w.write(int16(2), indexToLocFormat, int16(0)) // directionHint, locFormat, glyphDataFormat
	})
}

func buildHhea(ascent, descent, lineGap int16, numberOfHMetrics uint16) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(uint16(1), uint16(0)) // version
		w.write(ascent, descent, lineGap)
		w.write(uint16(1000))                         // advanceWidthMax
		w.write(int16(0), int16(0), int16(0))         // min bearings, extent
		w.write(int16(1), int16(0), int16(0))         // caret slope/offset
		w.write(int16(0), int16(0), int16(0), int16(0)) // reserved
		w.write(int16(0), numberOfHMetrics)
	})
}

func buildMaxp(numGlyphs uint16) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(uint32(0x00010000), numGlyphs)
		for i := 0; i < 13; i++ {
			w.write(uint16(0))
		}
	})
}

type hMetric struct {
	advance uint16
	lsb     int16
}

func buildHmtx(metrics []hMetric, shortLSBs []int16) []byte {
	return buildBytes(func(w *byteWriter) {
		for _, m := range metrics {
			w.write(m.advance, m.lsb)
		}
		for _, lsb := range shortLSBs {
			w.write(lsb)
		}
	})
}

type cmapSegment struct {
	start, end uint16
	delta      int16
}

// buildCmap4 wraps a format-4 subtable (with the required 0xffff
// terminator) in a cmap with a single Windows Unicode BMP record.
func buildCmap4(segs []cmapSegment) []byte {
	segs = append(append([]cmapSegment{}, segs...), cmapSegment{start: 0xffff, end: 0xffff, delta: 1})
	segCount := len(segs)

	searchRange := 2
	entrySelector := 0
	for searchRange*2 <= 2*segCount {
		searchRange *= 2
		entrySelector++
	}
	rangeShift := 2*segCount - searchRange

	sub := buildBytes(func(w *byteWriter) {
		length := 16 + 8*segCount
		w.write(uint16(4), uint16(length), uint16(0))
		w.write(uint16(2*segCount), uint16(searchRange), uint16(entrySelector), uint16(rangeShift))
		for _, s := range segs {
			w.write(s.end)
		}
		w.write(uint16(0)) // reservedPad
		for _, s := range segs {
			w.write(s.start)
		}
		for _, s := range segs {
			w.write(s.delta)
		}
		for range segs {
			w.write(uint16(0)) // idRangeOffset
		}
	})
	return wrapCmap(PlatformIDMicrosoft, MicrosoftEIDUnicodeBMP, sub)
}

func buildCmap0(glyphs [256]byte) []byte {
	sub := buildBytes(func(w *byteWriter) {
		w.write(uint16(0), uint16(262), uint16(0))
		w.write(glyphs[:])
	})
	return wrapCmap(PlatformIDUnicode, UnicodeEIDUnicode20BMP, sub)
}

func buildCmap6(first uint16, glyphs []uint16) []byte {
	sub := buildBytes(func(w *byteWriter) {
		w.write(uint16(6), uint16(10+2*len(glyphs)), uint16(0))
		w.write(first, uint16(len(glyphs)))
		for _, g := range glyphs {
			w.write(g)
		}
	})
	return wrapCmap(PlatformIDMicrosoft, MicrosoftEIDUnicodeBMP, sub)
}

type cmapGroup struct {
	start, end, startGlyph uint32
}

func buildCmap12(format uint16, groups []cmapGroup) []byte {
	sub := buildBytes(func(w *byteWriter) {
		w.write(format, uint16(0))
		w.write(uint32(16+12*len(groups)), uint32(0), uint32(len(groups)))
		for _, g := range groups {
			w.write(g.start, g.end, g.startGlyph)
		}
	})
	return wrapCmap(PlatformIDMicrosoft, MicrosoftEIDUnicodeFull, sub)
}

func wrapCmap(platformID, encodingID int, sub []byte) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(uint16(0), uint16(1))
		w.write(uint16(platformID), uint16(encodingID), offset32(12))
		w.write(sub)
	})
}

// buildGlyfSquare encodes a one-contour axis-aligned square as a simple
// glyph, all points on-curve with 16-bit deltas.
func buildGlyfSquare(x0, y0, x1, y1 int16) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(int16(1), x0, y0, x1, y1) // numberOfContours, bbox
		w.write(uint16(3))                // endPtsOfContours
		w.write(uint16(0))                // instructionLength
		for i := 0; i < 4; i++ {
			w.write(uint8(0x01)) // on-curve, long x, long y
		}
		// Counter-clockwise in glyph space (y-up).
		w.write(x0, int16(x1-x0), int16(0), int16(x0-x1)) // x deltas
		w.write(y0, int16(0), int16(y1-y0), int16(0))     // y deltas
	})
}

type glyfComponent struct {
	glyph  GlyphIndex
	dx, dy int16
}

func buildGlyfCompound(box BBox, components []glyfComponent) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(int16(-1), int16(box.X0), int16(box.Y0), int16(box.X1), int16(box.Y1))
		for i, c := range components {
			flags := uint16(arg1And2AreWords | argsAreXYValues)
			if i != len(components)-1 {
				flags |= uint16(moreComponents)
			}
			w.write(flags, uint16(c.glyph), c.dx, c.dy)
		}
	})
}

// buildGlyfLoca packs glyph data blobs into a glyf table plus a matching
// short-format loca table.  A nil blob is an empty glyph.
func buildGlyfLoca(glyphs [][]byte) (glyf, loca []byte) {
	var offsets []int
	offset := 0
	for _, g := range glyphs {
		offsets = append(offsets, offset)
		offset += (len(g) + 3) &^ 3
	}
	offsets = append(offsets, offset)

	glyf = buildBytes(func(w *byteWriter) {
		for _, g := range glyphs {
			w.write(g)
			w.pad4()
		}
	})
	loca = buildBytes(func(w *byteWriter) {
		for _, o := range offsets {
			w.write(uint16(o / 2))
		}
	})
	return glyf, loca
}

type kernPair struct {
	g1, g2  GlyphIndex
	advance int16
}

// buildKern produces a horizontal format-0 kern subtable; pairs must be
// sorted by (g1<<16 | g2).
func buildKern(pairs []kernPair) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(uint16(0), uint16(1)) // version, nTables
		length := 14 + 6*len(pairs)
		w.write(uint16(0), uint16(length), uint16(kernHorizontal))
		w.write(uint16(len(pairs)), uint16(0), uint16(0), uint16(0))
		for _, p := range pairs {
			w.write(uint16(p.g1), uint16(p.g2), p.advance)
		}
	})
}

// buildGPOSPairFormat1 produces a GPOS with one type-2 lookup holding a
// format-1 pair subtable: first glyph via coverage, per-pair x-advance.
func buildGPOSPairFormat1(first GlyphIndex, pairs []kernPair) []byte {
	// Subtable layout: header 10 bytes, one pair set offset, the pair set,
	// then the coverage table.
	pairSetOffset := 12
	coverageOffset := pairSetOffset + 2 + 4*len(pairs)

	subtable := buildBytes(func(w *byteWriter) {
		w.write(uint16(1), uint16(coverageOffset), uint16(4), uint16(0)) // posFormat, coverage, vf1, vf2
		w.write(uint16(1), uint16(pairSetOffset))                        // pairSetCount, offsets
		w.write(uint16(len(pairs)))
		for _, p := range pairs {
			w.write(uint16(p.g2), p.advance)
		}
		w.write(uint16(1), uint16(1), uint16(first)) // coverage format 1
	})

	return wrapGPOS(subtable)
}

// buildGPOSPairFormat2 produces a class-matrix pair subtable with two
// classes per side: class 1 holds exactly `c1` and `c2`.
func buildGPOSPairFormat2(c1, c2 GlyphIndex, advance int16) []byte {
	// Layout: header 16, 2x2 class records (8 bytes), classdefs, coverage.
	class1Off := 16 + 8
	class2Off := class1Off + 8
	coverageOff := class2Off + 8

	subtable := buildBytes(func(w *byteWriter) {
		w.write(uint16(2), uint16(coverageOff), uint16(4), uint16(0))
		w.write(uint16(class1Off), uint16(class2Off))
		w.write(uint16(2), uint16(2)) // class1Count, class2Count
		// Class records: [class1][class2] of one x-advance each.
		w.write(int16(0), int16(0), int16(0), advance)
		// ClassDef format 1: one glyph in class 1 each.
		w.write(uint16(1), uint16(c1), uint16(1), uint16(1))
		w.write(uint16(1), uint16(c2), uint16(1), uint16(1))
		// Coverage format 1 over the first glyph.
		w.write(uint16(1), uint16(1), uint16(c1))
	})

	return wrapGPOS(subtable)
}

func wrapGPOS(subtable []byte) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(uint16(1), uint16(0))           // version 1.0
		w.write(uint16(0), uint16(0), uint16(10)) // script, feature, lookup list
		w.write(uint16(1), uint16(4))           // lookupCount, offset
		w.write(uint16(2), uint16(0), uint16(1), uint16(8)) // type 2, flags, subTableCount, offset
		w.write(subtable)
	})
}

type nameEntry struct {
	nameID int
	value  string
}

// buildName encodes Windows-platform name records in UTF-16BE.
func buildName(entries []nameEntry) []byte {
	var strings [][]byte
	for _, e := range entries {
		var enc []byte
		for _, r := range e.value {
			enc = append(enc, byte(r>>8), byte(r))
		}
		strings = append(strings, enc)
	}

	return buildBytes(func(w *byteWriter) {
		stringOffset := 6 + 12*len(entries)
		w.write(uint16(0), uint16(len(entries)), offset16(stringOffset))
		offset := 0
		for i, e := range entries {
			w.write(uint16(PlatformIDMicrosoft), uint16(MicrosoftEIDUnicodeBMP), uint16(MicrosoftLangEnglish))
			w.write(uint16(e.nameID), uint16(len(strings[i])), offset16(offset))
			offset += len(strings[i])
		}
		for _, s := range strings {
			w.write(s)
		}
	})
}

// buildSVG produces an SVG table with one document covering [first, last].
func buildSVG(first, last GlyphIndex, doc []byte) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(uint16(0), uint32(10), uint32(0)) // version, docListOffset, reserved
		// Document list.
		w.write(uint16(1))
		w.write(uint16(first), uint16(last), uint32(2+12), uint32(len(doc)))
		w.write(doc)
	})
}

// buildCFF assembles a minimal CFF table around the given charstrings and
// optional global subroutines.
func buildCFF(charstrings, gsubrs [][]byte) []byte {
	header := []byte{1, 0, 4, 4} // major, minor, hdrSize, offSize

	nameIndex := buildIndex([][]byte{[]byte("unifont-test")})
	stringIndex := buildIndex(nil)
	gsubrsIndex := buildIndex(gsubrs)
	csIndex := buildIndex(charstrings)

	// The Top DICT carries the absolute CharStrings offset; its own size is
	// fixed by always encoding the operand as a 5-byte int32.
	makeTopDict := func(csOffset int) []byte {
		return buildBytes(func(w *byteWriter) {
			w.write(uint8(29), int32(csOffset), uint8(cffOpCharStrings))
		})
	}
	topDictIndex := buildIndex([][]byte{makeTopDict(0)})

	csOffset := len(header) + len(nameIndex) + len(topDictIndex) + len(stringIndex) + len(gsubrsIndex)
	topDictIndex = buildIndex([][]byte{makeTopDict(csOffset)})

	var out []byte
	out = append(out, header...)
	out = append(out, nameIndex...)
	out = append(out, topDictIndex...)
	out = append(out, stringIndex...)
	out = append(out, gsubrsIndex...)
	out = append(out, csIndex...)
	return out
}

// buildIndex encodes a CFF INDEX with offSize 1.
func buildIndex(objects [][]byte) []byte {
	return buildBytes(func(w *byteWriter) {
		w.write(uint16(len(objects)))
		if len(objects) == 0 {
			return
		}
		w.write(uint8(1))
		offset := 1
		w.write(uint8(offset))
		for _, o := range objects {
			offset += len(o)
			w.write(uint8(offset))
		}
		for _, o := range objects {
			w.write(o)
		}
	})
}

// squareTestFont builds the workhorse TrueType fixture:
//
//	gid 0: empty (.notdef)    gid 1: square 'A'  (100,100)-(700,700)
//	gid 2: small square 'B'   (250,760)-(350,860)
//	gid 3: compound 'Ä' = gid1 + gid2 shifted right by 150
//	gid 4: empty (space)
func squareTestFont(t testing.TB, extra ...tableDef) []byte {
	t.Helper()

	glyf, loca := buildGlyfLoca([][]byte{
		nil,
		buildGlyfSquare(100, 100, 700, 700),
		buildGlyfSquare(250, 760, 350, 860),
		buildGlyfCompound(BBox{X0: 100, Y0: 100, X1: 700, Y1: 860}, []glyfComponent{
			{glyph: 1},
			{glyph: 2, dx: 150},
		}),
		nil,
	})

	tables := []tableDef{
		{"cmap", buildCmap4([]cmapSegment{
			{start: ' ', end: ' ', delta: 4 - ' '},
			{start: 'A', end: 'B', delta: 1 - 'A'},
			{start: 0xC4, end: 0xC4, delta: 3 - 0xC4},
		})},
		{"glyf", glyf},
		{"head", buildHead(0, 1000, BBox{X0: 100, Y0: 100, X1: 700, Y1: 860}, 0)},
		{"hhea", buildHhea(800, -200, 0, 5)},
		{"hmtx", buildHmtx([]hMetric{
			{advance: 500, lsb: 0},
			{advance: 800, lsb: 100},
			{advance: 400, lsb: 250},
			{advance: 800, lsb: 100},
			{advance: 250, lsb: 0},
		}, nil)},
		{"loca", loca},
		{"maxp", buildMaxp(5)},
	}
	tables = append(tables, extra...)

	data := buildSfnt(sfntVersionTrueType, 0, tables)
	require.True(t, isFontData(data))
	return data
}

// cffTestFont builds an OpenType/CFF fixture: gid 0 empty, gid 1 a square
// (100,100)-(900,900) drawn with h/vlineto, mapped from 'A'.
func cffTestFont(t testing.TB) []byte {
	t.Helper()

	notdef := []byte{0x0e}
	square := buildBytes(func(w *byteWriter) {
		// 100 100 rmoveto 800 hlineto 800 vlineto -800 hlineto endchar
		w.write(uint8(28), int16(100), uint8(28), int16(100), uint8(0x15))
		w.write(uint8(28), int16(800), uint8(0x06))
		w.write(uint8(28), int16(800), uint8(0x07))
		w.write(uint8(28), int16(-800), uint8(0x06))
		w.write(uint8(0x0e))
	})

	tables := []tableDef{
		{"CFF ", buildCFF([][]byte{notdef, square}, nil)},
		{"cmap", buildCmap4([]cmapSegment{{start: 'A', end: 'A', delta: 1 - 'A'}})},
		{"head", buildHead(0, 1000, BBox{X0: 100, Y0: 100, X1: 900, Y1: 900}, 0)},
		{"hhea", buildHhea(800, -200, 0, 2)},
		{"hmtx", buildHmtx([]hMetric{{advance: 500, lsb: 0}, {advance: 1000, lsb: 100}}, nil)},
		{"maxp", buildMaxp(2)},
	}

	data := buildSfnt(sfntVersionOTTO, 0, tables)
	require.True(t, isFontData(data))
	return data
}
