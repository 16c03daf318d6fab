/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"github.com/unidoc/unifont/common"
)

// font is the data model for a parsed font: the borrowed input buffer plus
// cached absolute table offsets.  Table contents are decoded lazily at query
// time through the bounds-checked reader, so a font holds no copy of the
// input and is immutable after parseFont returns.
type font struct {
	r         byteReader
	fontStart int

	numGlyphs int

	// Absolute table offsets; 0 means the table is absent.
	cmap uint32
	loca uint32
	head uint32
	glyf uint32
	hhea uint32
	hmtx uint32
	kern uint32
	gpos uint32
	name uint32
	svg  uint32 // offset of the SVG document list, not of the table itself.

	indexMap         int // offset of the selected cmap subtable.
	indexToLocFormat int

	// CFF / Type-2 charstring state, set for OpenType fonts without glyf.
	cff         bufView
	charstrings bufView
	gsubrs      bufView
	subrs       bufView
	fontdicts   bufView
	fdselect    bufView
}

func (f *font) isCFF() bool {
	return f.cff.size() > 0
}

// parseFont resolves the table directory at `fontStart` and caches the
// offsets the queries need.  It fails when a mandatory table is missing,
// when no supported cmap subtable exists, or when a CFF font cannot supply
// Type-2 charstrings.
func parseFont(data []byte, fontStart int) (*font, error) {
	if fontStart < 0 || fontStart >= len(data) {
		common.Log.Debug("font start outside buffer (%d)", fontStart)
		return nil, errRangeCheck
	}
	if !isFontData(data[fontStart:]) {
		common.Log.Debug("unrecognized sfnt version")
		return nil, errUnsupported
	}

	f := &font{
		r:         newByteReader(data),
		fontStart: fontStart,
	}

	f.cmap, _ = f.findTable("cmap") // required
	f.loca, _ = f.findTable("loca") // required for truetype
	f.head, _ = f.findTable("head") // required
	f.glyf, _ = f.findTable("glyf") // required for truetype
	f.hhea, _ = f.findTable("hhea") // required
	f.hmtx, _ = f.findTable("hmtx") // required
	f.kern, _ = f.findTable("kern") // not required
	f.gpos, _ = f.findTable("GPOS") // not required
	f.name, _ = f.findTable("name") // not required

	if f.cmap == 0 || f.head == 0 || f.hhea == 0 || f.hmtx == 0 {
		common.Log.Debug("required table missing")
		return nil, errRequiredField
	}

	if f.glyf != 0 {
		// TrueType outlines.
		if f.loca == 0 {
			common.Log.Debug("glyf without loca")
			return nil, errRequiredField
		}
	} else {
		// CFF / Type2 outlines (OTF).
		err := f.parseCFF()
		if err != nil {
			return nil, err
		}
	}

	if t, _ := f.findTable("maxp"); t != 0 {
		f.numGlyphs = int(f.r.readUint16(int(t) + 4))
	} else {
		f.numGlyphs = 0xffff
	}

	if t, _ := f.findTable("SVG "); t != 0 {
		f.svg = t + f.r.readUint32(int(t)+2)
	}

	if err := f.selectCmapSubtable(); err != nil {
		return nil, err
	}

	f.indexToLocFormat = int(f.r.readUint16(int(f.head) + 50))

	return f, nil
}

// NumGlyphs returns the glyph count from the maxp table.
func (f *font) NumGlyphs() int {
	return f.numGlyphs
}

// Validate checks that every cached table region lies inside the buffer.
// Queries never need this to be safe; it exists so callers can reject
// truncated fonts up front instead of rendering blank glyphs from them.
func (f *font) Validate() error {
	if f == nil {
		return errNilReceiver
	}
	numTables := int(f.r.readUint16(f.fontStart + 4))
	tableDir := f.fontStart + 12
	for i := 0; i < numTables; i++ {
		loc := tableDir + 16*i
		if !f.r.checkBounds(loc, 16) {
			common.Log.Debug("table directory truncated (record %d)", i)
			return errRangeCheck
		}
		offset := int(f.r.readUint32(loc + 8))
		length := int(f.r.readUint32(loc + 12))
		if !f.r.checkBounds(offset, length) {
			common.Log.Debug("table %s outside buffer", f.r.readTag(loc))
			return errRangeCheck
		}
	}
	return nil
}
