/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package unifont parses TrueType and OpenType font files held entirely in
// memory and renders glyph outlines to antialiased grayscale bitmaps or
// signed-distance fields.
//
// The input buffer is treated as untrusted: every offset dereferenced from
// the file is bounds-checked against the buffer, and out-of-range reads
// yield neutral zero values rather than faults.  Supported outline sources
// are the TrueType glyf/loca tables (simple and compound glyphs) and
// CFF/Type-2 charstrings (including CID-keyed fonts).  Character lookup
// covers cmap formats 0, 4, 6, 12 and 13; kerning is read from GPOS pair
// adjustment (formats 1 and 2) with a legacy kern-table fallback.
//
// A Font borrows the caller's byte slice and never copies or mutates it.
// It is immutable after construction and safe for concurrent use.
package unifont
