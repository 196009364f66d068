package orders

import (
	"bytes"
	"encoding/binary"
)

// reader is a bounds-checked cursor over an order payload. All multi-byte
// reads are little-endian. Byte-slice reads alias the underlying payload
// and stay valid only as long as it does.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) require(n int) error {
	if n < 0 || r.remaining() < n {
		return ErrShortStream
	}

	return nil
}

func (r *reader) uint8() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

func (r *reader) uint16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2

	return v, nil
}

func (r *reader) int16() (int16, error) {
	v, err := r.uint16()

	return int16(v), err
}

func (r *reader) uint32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4

	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}

	p := r.data[r.pos : r.pos+n]
	r.pos += n

	return p, nil
}

func (r *reader) skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}

	r.pos += n

	return nil
}

// seek moves the cursor to an absolute offset. The secondary order
// dispatcher uses it to land on the declared order boundary regardless of
// how many bytes the payload parser consumed.
func (r *reader) seek(pos int) {
	if pos < 0 {
		pos = 0
	}

	if pos > len(r.data) {
		pos = len(r.data)
	}

	r.pos = pos
}

// writer accumulates an order encoding. All multi-byte writes are
// little-endian.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) uint8(v byte) {
	w.buf.WriteByte(v)
}

func (w *writer) uint16(v uint16) {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
}

func (w *writer) int16(v int16) {
	w.uint16(uint16(v))
}

func (w *writer) uint32(v uint32) {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v >> 16))
	w.buf.WriteByte(byte(v >> 24))
}

func (w *writer) bytes(p []byte) {
	w.buf.Write(p)
}

func (w *writer) len() int {
	return w.buf.Len()
}

func (w *writer) data() []byte {
	return w.buf.Bytes()
}
