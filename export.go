/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

// Font wraps font for outside access.  It borrows the byte slice passed to
// New for its whole lifetime and never mutates it; a Font is immutable and
// safe for concurrent use.
type Font struct {
	*font
}

// New parses the font starting at byte `offset` of `data` and returns a new
// Font.  For a plain .ttf/.otf file the offset is 0; for a TrueType
// collection use FontOffsetForIndex to locate a member.  New fails when a
// mandatory table (cmap, head, hhea, hmtx, and glyf+loca or CFF) cannot be
// resolved, or when no supported cmap subtable exists.
func New(data []byte, offset int) (*Font, error) {
	fnt, err := parseFont(data, offset)
	if err != nil {
		return nil, err
	}

	return &Font{font: fnt}, nil
}
