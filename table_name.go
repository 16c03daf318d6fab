/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/unidoc/unifont/common"
)

// The naming table associates multilingual strings with the font: family
// and subfamily names, the full name, copyright, and so on.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name

// Name IDs used for font matching.
const (
	NameIDFamily         = 1
	NameIDSubfamily      = 2
	NameIDUniqueID       = 3
	NameIDFullName       = 4
	NameIDPostScriptName = 6
	NameIDTypoFamily     = 16
	NameIDTypoSubfamily  = 17
)

var utf16beDecoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// decodeNameString converts raw name-record bytes to UTF-8 according to the
// record's platform: Unicode and Windows strings are UTF-16BE, Macintosh
// strings are MacRoman.
func decodeNameString(platformID int, data []byte) string {
	switch platformID {
	case PlatformIDUnicode, PlatformIDMicrosoft:
		decoded, err := utf16beDecoder.NewDecoder().Bytes(data)
		if err != nil {
			common.Log.Debug("name record UTF-16 decode failed: %v", err)
			return ""
		}
		return string(decoded)

	case PlatformIDMac:
		out := make([]rune, 0, len(data))
		for _, b := range data {
			out = append(out, charmap.Macintosh.DecodeByte(b))
		}
		return string(out)
	}
	return string(data)
}

// NameByID returns the first name-table entry with `nameID` decoded to
// UTF-8, preferring Windows and Unicode platform records.  An empty string
// means no such entry.
func (f *font) NameByID(nameID int) string {
	if f == nil || f.name == 0 {
		return ""
	}

	var fallback string
	count := int(f.r.readUint16(int(f.name) + 2))
	stringOffset := int(f.name) + int(f.r.readUint16(int(f.name)+4))
	for i := 0; i < count; i++ {
		rec := int(f.name) + 6 + 12*i
		if !f.r.checkBounds(rec, 12) {
			break
		}
		if int(f.r.readUint16(rec+6)) != nameID {
			continue
		}
		platformID := int(f.r.readUint16(rec))
		length := int(f.r.readUint16(rec + 8))
		offset := int(f.r.readUint16(rec + 10))

		data := f.r.slice(stringOffset+offset, length)
		if data == nil {
			common.Log.Debug("name string outside buffer (record %d)", i)
			continue
		}

		s := decodeNameString(platformID, data)
		if s == "" {
			continue
		}
		if platformID == PlatformIDMicrosoft || platformID == PlatformIDUnicode {
			return s
		}
		if fallback == "" {
			fallback = s
		}
	}
	return fallback
}

// matchesName reports whether this font's typographic family, family, full
// name or unique ID equals `name`.  A non-zero `flags` additionally requires the
// head macStyle bold/italic bits to equal flags&3 (use MacStyleNone to
// demand a regular face).
func (f *font) matchesName(name string, flags int) bool {
	if f.name == 0 {
		return false
	}
	if flags != 0 && f.macStyle()&3 != flags&3 {
		return false
	}

	for _, id := range []int{NameIDTypoFamily, NameIDFamily, NameIDFullName, NameIDUniqueID} {
		if s := f.NameByID(id); s != "" && s == name {
			return true
		}
	}
	return false
}

// FindMatchingFont scans the font (or every member of a TTC) in `data` for
// one whose typographic family, family, full name or unique ID equals
// `name`, constrained by the macStyle `flags` (MacStyleBold,
// MacStyleItalic, ..., or MacStyleDontCare).
// Returns the matching font offset for use with New, or -1.
func FindMatchingFont(data []byte, name string, flags int) int {
	for i := 0; ; i++ {
		off := FontOffsetForIndex(data, i)
		if off < 0 {
			return -1
		}

		// Matching needs only head and name, not a fully parsed context.
		f := &font{r: newByteReader(data), fontStart: off}
		f.head, _ = f.findTable("head")
		f.name, _ = f.findTable("name")
		if f.matchesName(name, flags) {
			return off
		}
	}
}
