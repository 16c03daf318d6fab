/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "github.com/unidoc/unifont/common"

// Compact Font Format (CFF) structures: the table header, INDEX arrays,
// DICTs with one- and two-byte operators, and the private/subroutine
// plumbing the Type-2 charstring interpreter depends on.
// https://adobe-type-tools.github.io/font-tech-notes/pdfs/5176.CFF.pdf

// Top DICT and Private DICT operators used here.  Two-byte operators are
// encoded as 0x100 | second byte.
const (
	cffOpCharStrings    = 17
	cffOpPrivate        = 18
	cffOpSubrs          = 19
	cffOpCharstringType = 0x100 | 6
	cffOpFDArray        = 0x100 | 36
	cffOpFDSelect       = 0x100 | 37
)

// cffIndex consumes an INDEX at the view's cursor and returns a sub-view
// spanning the whole structure (header, offsets and data).
func cffIndex(b *bufView) bufView {
	start := b.cursor
	count := int(b.get16())
	if count > 0 {
		offSize := int(b.get8())
		if offSize < 1 || offSize > 4 {
			return bufView{}
		}
		b.skip(offSize * count)
		b.skip(int(b.getN(offSize)) - 1)
	}
	return b.rangeAt(start, b.cursor-start)
}

// cffIndexCount returns the object count of the INDEX in `b`.
func cffIndexCount(b bufView) int {
	b.seek(0)
	return int(b.get16())
}

// cffIndexGet returns object `i` of the INDEX in `b`.  Entry i spans
// [offsets[i], offsets[i+1]) inside the data region, which starts at byte
// 3 + (count+1)*offSize of the INDEX; offsets are 1-based, so the entry
// begins at byte 2 + (count+1)*offSize + offsets[i].
func cffIndexGet(b bufView, i int) bufView {
	b.seek(0)
	count := int(b.get16())
	offSize := int(b.get8())
	if i < 0 || i >= count || offSize < 1 || offSize > 4 {
		return bufView{}
	}
	b.skip(i * offSize)
	start := int(b.getN(offSize))
	end := int(b.getN(offSize))
	return b.rangeAt(2+(count+1)*offSize+start, end-start)
}

// cffInt decodes a DICT/charstring integer operand at the cursor.
func cffInt(b *bufView) int {
	b0 := int(b.get8())
	switch {
	case b0 >= 32 && b0 <= 246:
		return b0 - 139
	case b0 >= 247 && b0 <= 250:
		return (b0-247)*256 + int(b.get8()) + 108
	case b0 >= 251 && b0 <= 254:
		return -(b0-251)*256 - int(b.get8()) - 108
	case b0 == 28:
		return int(int16(b.get16()))
	case b0 == 29:
		return int(int32(b.get32()))
	}
	// Invalid integer start byte; the zero flows into a soft failure.
	return 0
}

// cffSkipOperand skips one operand (integer or real) at the cursor.
func cffSkipOperand(b *bufView) {
	b0 := b.peek8()
	if b0 < 28 {
		return
	}
	if b0 == 30 {
		// Real number: nibbles until an 0xf terminator.
		b.skip(1)
		for b.cursor < b.size() {
			v := b.get8()
			if (v&0xf) == 0xf || (v>>4) == 0xf {
				break
			}
		}
		return
	}
	cffInt(b)
}

// dictGet returns the operand bytes preceding operator `key` in the DICT
// `b`, or an empty view when the key is absent.
func dictGet(b bufView, key int) bufView {
	b.seek(0)
	for b.cursor < b.size() {
		start := b.cursor
		for b.peek8() >= 28 {
			cffSkipOperand(&b)
		}
		end := b.cursor
		op := int(b.get8())
		if op == 12 {
			op = int(b.get8()) | 0x100
		}
		if op == key {
			return b.rangeAt(start, end-start)
		}
	}
	return bufView{}
}

// dictGetInts reads up to `len(out)` integer operands of `key` from the
// DICT `b`.  Missing operands leave the output untouched.
func dictGetInts(b bufView, key int, out []int) {
	operands := dictGet(b, key)
	for i := 0; i < len(out) && operands.cursor < operands.size(); i++ {
		out[i] = cffInt(&operands)
	}
}

// getSubrs resolves the local Subrs INDEX referenced by the Private DICT of
// `fontdict`, or an empty view when the font dict has none.
func getSubrs(cff bufView, fontdict bufView) bufView {
	privateLoc := []int{0, 0} // size, offset
	dictGetInts(fontdict, cffOpPrivate, privateLoc)
	if privateLoc[0] == 0 || privateLoc[1] == 0 {
		return bufView{}
	}
	pdict := cff.rangeAt(privateLoc[1], privateLoc[0])
	subrsOff := []int{0}
	dictGetInts(pdict, cffOpSubrs, subrsOff)
	if subrsOff[0] == 0 {
		return bufView{}
	}
	cff.seek(privateLoc[1] + subrsOff[0])
	return cffIndex(&cff)
}

// subr bias per the CFF spec, derived from the subroutine count.
func subrBias(count int) int {
	switch {
	case count < 1240:
		return 107
	case count < 33900:
		return 1131
	}
	return 32768
}

// getSubr returns biased subroutine `n` from the subrs INDEX `idx`.
func getSubr(idx bufView, n int) bufView {
	count := cffIndexCount(idx)
	n += subrBias(count)
	if n < 0 || n >= count {
		return bufView{}
	}
	return cffIndexGet(idx, n)
}

// cidGlyphSubrs resolves the local subrs for `gid` of a CID-keyed font by
// reading its FD index from FDSelect (formats 0 and 3) and descending into
// the matching FDArray entry.
func (f *font) cidGlyphSubrs(gid GlyphIndex) bufView {
	fdselect := f.fdselect
	fdselect.seek(0)

	fdSelector := -1
	switch format := int(fdselect.get8()); format {
	case 0:
		// One byte per glyph.
		fdselect.skip(int(gid))
		fdSelector = int(fdselect.get8())
	case 3:
		// Sorted ranges of {first, fd}, closed by a sentinel first value.
		nRanges := int(fdselect.get16())
		first := int(fdselect.get16())
		for i := 0; i < nRanges; i++ {
			fd := int(fdselect.get8())
			end := int(fdselect.get16())
			if int(gid) >= first && int(gid) < end {
				fdSelector = fd
				break
			}
			first = end
		}
	default:
		common.Log.Debug("unsupported FDSelect format %d", format)
	}

	if fdSelector == -1 {
		return bufView{}
	}
	return getSubrs(f.cff, cffIndexGet(f.fontdicts, fdSelector))
}

// parseCFF locates and dissects the CFF table of an OpenType font: the
// header, the INDEX chain (Name, Top DICT, String, Global Subrs), the
// charstrings, the private local subrs, and the CID FDArray/FDSelect pair
// when present.
func (f *font) parseCFF() error {
	cffOffset, cffLen := f.findTable("CFF ")
	if cffOffset == 0 {
		common.Log.Debug("neither glyf nor CFF table present")
		return errRequiredField
	}
	if cffLen == 0 || !f.r.checkBounds(int(cffOffset), int(cffLen)) {
		common.Log.Debug("CFF table outside buffer")
		return errRangeCheck
	}

	f.cff = newBufView(f.r.slice(int(cffOffset), int(cffLen)))
	b := f.cff

	// Header: major, minor, hdrSize, offSize.
	b.skip(2)
	b.seek(int(b.get8()))

	// The Name INDEX could list multiple fonts; entry 0 is used throughout.
	cffIndex(&b) // Name INDEX
	topDictIdx := cffIndex(&b)
	topDict := cffIndexGet(topDictIdx, 0)
	cffIndex(&b) // String INDEX
	f.gsubrs = cffIndex(&b)

	charstrings := []int{0}
	csType := []int{2}
	fdArrayOff := []int{0}
	fdSelectOff := []int{0}
	dictGetInts(topDict, cffOpCharStrings, charstrings)
	dictGetInts(topDict, cffOpCharstringType, csType)
	dictGetInts(topDict, cffOpFDArray, fdArrayOff)
	dictGetInts(topDict, cffOpFDSelect, fdSelectOff)
	f.subrs = getSubrs(b, topDict)

	if csType[0] != 2 {
		// Only Type 2 charstrings are supported.
		common.Log.Debug("unsupported charstring type %d", csType[0])
		return errUnsupported
	}
	if charstrings[0] == 0 {
		common.Log.Debug("CFF without charstrings")
		return errRequiredField
	}

	if fdArrayOff[0] != 0 {
		// Looks like a CID-keyed font.
		if fdSelectOff[0] == 0 {
			common.Log.Debug("CID font without FDSelect")
			return errRequiredField
		}
		b.seek(fdArrayOff[0])
		f.fontdicts = cffIndex(&b)
		f.fdselect = b.rangeAt(fdSelectOff[0], b.size()-fdSelectOff[0])
	}

	b.seek(charstrings[0])
	f.charstrings = cffIndex(&b)

	return nil
}
