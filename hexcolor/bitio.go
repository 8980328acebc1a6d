package hexcolor

import "io"

// bitWriter packs fields of at most 8 bits, least significant bit first.
type bitWriter struct {
	buf []byte
	acc uint16
	n   uint8
}

func newBitWriter(size int) *bitWriter { return &bitWriter{buf: make([]byte, 0, size)} }

func (w *bitWriter) writeBits(v uint8, bits uint8) {
	w.acc |= uint16(v&(1<<bits-1)) << w.n
	w.n += bits
	if w.n >= 8 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc >>= 8
		w.n -= 8
	}
}

func (w *bitWriter) bytes() []byte {
	if w.n > 0 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc = 0
		w.n = 0
	}
	return w.buf
}

type bitReader struct {
	data []byte
	acc  uint16
	n    uint8
	pos  int
}

func newBitReader(b []byte) *bitReader { return &bitReader{data: b} }

func (r *bitReader) readBits(bits uint8) (uint8, error) {
	if r.n < bits {
		if r.pos >= len(r.data) {
			return 0, io.ErrUnexpectedEOF
		}
		r.acc |= uint16(r.data[r.pos]) << r.n
		r.n += 8
		r.pos++
	}
	v := uint8(r.acc & (1<<bits - 1))
	r.acc >>= bits
	r.n -= bits
	return v, nil
}
