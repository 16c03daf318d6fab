/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unifont

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/unidoc/unifont/common"
)

// byteWriter encapsulates io.Writer and provides methods to write binary
// data as laid out in truetype fonts.  Writes are buffered until flushed.
// Provides methods to calculate the checksum of the current buffer.  Used
// for assembling font fixtures; the parser itself never writes.
type byteWriter struct {
	w   io.Writer
	len int64

	buffer bytes.Buffer
}

func newByteWriter(w io.Writer) *byteWriter {
	return &byteWriter{
		w: w,
	}
}

func (w *byteWriter) flush() error {
	b := w.buffer.Bytes()
	_, err := w.w.Write(b)
	if err != nil {
		return err
	}

	w.buffer.Reset()
	return nil
}

// bufferedLen returns the length of the current buffer.
func (w *byteWriter) bufferedLen() int {
	return w.buffer.Len()
}

// checksum returns the truetype checksum of the current buffer: the sum of
// big-endian uint32 words, with the tail zero-padded to four bytes.
func (w *byteWriter) checksum() uint32 {
	var sum uint32

	data := w.buffer.Bytes()
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}

	return sum
}

// write writes a series of values to `w`.
func (w *byteWriter) write(fields ...interface{}) error {
	for _, f := range fields {
		switch t := f.(type) {
		case uint8:
			w.writeBytes(t)
		case int8:
			w.writeBytes(uint8(t))
		case uint16:
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], t)
			w.writeBytes(b[:]...)
		case int16:
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], uint16(t))
			w.writeBytes(b[:]...)
		case uint32:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], t)
			w.writeBytes(b[:]...)
		case int32:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(t))
			w.writeBytes(b[:]...)
		case offset16:
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], uint16(t))
			w.writeBytes(b[:]...)
		case offset32:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(t))
			w.writeBytes(b[:]...)
		case tag:
			w.writeBytes(t[:]...)
		case []byte:
			w.writeBytes(t...)
		default:
			common.Log.Debug("write type check error: %T", t)
			return errTypeCheck
		}
	}

	return nil
}

func (w *byteWriter) writeBytes(b ...byte) {
	w.buffer.Write(b)
	w.len += int64(len(b))
}

// pad4 zero-pads the buffer to a 4-byte boundary, as table data between
// directory entries is aligned.
func (w *byteWriter) pad4() {
	for w.buffer.Len()%4 != 0 {
		w.writeBytes(0)
	}
}
