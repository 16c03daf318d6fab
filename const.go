/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import "errors"

var (
	errTypeCheck     = errors.New("type check error")
	errRangeCheck    = errors.New("range check error")
	errRequiredField = errors.New("required field missing")
	errUnsupported   = errors.New("unsupported format")
	errCharstring    = errors.New("charstring error")
	errNilReceiver   = errors.New("receiver pointer not initialized")
)

// Platform IDs from the cmap and name tables.
const (
	PlatformIDUnicode   = 0
	PlatformIDMac       = 1
	PlatformIDISO       = 2
	PlatformIDMicrosoft = 3
)

// Encoding IDs for PlatformIDUnicode.
const (
	UnicodeEIDUnicode10     = 0
	UnicodeEIDUnicode11     = 1
	UnicodeEIDISO10646      = 2
	UnicodeEIDUnicode20BMP  = 3
	UnicodeEIDUnicode20Full = 4
)

// Encoding IDs for PlatformIDMicrosoft.
const (
	MicrosoftEIDSymbol      = 0
	MicrosoftEIDUnicodeBMP  = 1
	MicrosoftEIDShiftJIS    = 2
	MicrosoftEIDUnicodeFull = 10
)

// Encoding IDs for PlatformIDMac; same as Script Manager codes.
const (
	MacEIDRoman        = 0
	MacEIDJapanese     = 1
	MacEIDChineseTrad  = 2
	MacEIDKorean       = 3
	MacEIDArabic       = 4
	MacEIDHebrew       = 5
	MacEIDGreek        = 6
	MacEIDRussian      = 7
	MacEIDRSymbol      = 8
	MacEIDDevanagari   = 9
	MacEIDGurmukhi     = 10
	MacEIDGujarati     = 11
	MacEIDChineseSimpl = 25
)

// Language IDs for name records with PlatformIDMicrosoft.  Problematic
// because there are e.g. 16 english LCIDs; this is the American one.
const (
	MicrosoftLangEnglish  = 0x0409
	MicrosoftLangChinese  = 0x0804
	MicrosoftLangDutch    = 0x0413
	MicrosoftLangFrench   = 0x040C
	MicrosoftLangGerman   = 0x0407
	MicrosoftLangHebrew   = 0x040D
	MicrosoftLangItalian  = 0x0410
	MicrosoftLangJapanese = 0x0411
	MicrosoftLangKorean   = 0x0412
	MicrosoftLangRussian  = 0x0419
	MicrosoftLangSpanish  = 0x0409
	MicrosoftLangSwedish  = 0x041D
)

// Language IDs for name records with PlatformIDMac.
const (
	MacLangEnglish      = 0
	MacLangFrench       = 1
	MacLangGerman       = 2
	MacLangItalian      = 3
	MacLangDutch        = 4
	MacLangSwedish      = 5
	MacLangSpanish      = 6
	MacLangHebrew       = 10
	MacLangJapanese     = 11
	MacLangArabic       = 12
	MacLangChineseTrad  = 19
	MacLangKorean       = 23
	MacLangRussian      = 32
	MacLangChineseSimpl = 33
)

// macStyle bits from the head table, used by FindMatchingFont.
const (
	MacStyleDontCare   = 0
	MacStyleBold       = 1
	MacStyleItalic     = 2
	MacStyleUnderscore = 4
	MacStyleNone       = 8 // <= not same as 0, this makes us check the bitfield is 0
)

// Horizontal kerning coverage bit in the kern subtable header.
const kernHorizontal = 1
