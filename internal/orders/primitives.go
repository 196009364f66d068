package orders

import "fmt"

// CachedBrush marks a brush style byte that references the brush cache
// instead of carrying a standard hatch pattern.
const CachedBrush = 0x80

// Brush describes the pattern brush attached to pattern orders
// (MS-RDPEGDI 2.2.2.2.1.1.1.7). When Style has the CachedBrush bit set,
// Index selects a brush cache entry and BPP gives its color depth.
type Brush struct {
	X     byte
	Y     byte
	Style byte
	Hatch byte
	Index byte
	BPP   byte
	Data  [8]byte
}

// DeltaRect is one rectangle of a multi-rectangle order. Coordinates are
// absolute after decoding; on the wire Left and Top are deltas against the
// previous rectangle.
type DeltaRect struct {
	Left   int32
	Top    int32
	Width  int32
	Height int32
}

// DeltaPoint is one vertex delta of a polyline or polygon order, relative
// to the previous vertex (the first is relative to the start point).
type DeltaPoint struct {
	X int32
	Y int32
}

// bmfBPP maps a BMF bitmap format enumerant to bits per pixel. The cached
// brush bit must be masked off before the call.
func bmfBPP(bmf byte) (byte, bool) {
	switch bmf {
	case 0:
		return 0, true
	case 1: // BMF_1BPP
		return 1, true
	case 3: // BMF_8BPP
		return 8, true
	case 4: // BMF_16BPP
		return 16, true
	case 5: // BMF_24BPP
		return 24, true
	case 6: // BMF_32BPP
		return 32, true
	default:
		return 0, false
	}
}

// bppBMF is the reverse of bmfBPP for the formats a brush can carry.
func bppBMF(bpp byte) (byte, bool) {
	switch bpp {
	case 1:
		return 1, true
	case 8:
		return 3, true
	case 16:
		return 4, true
	case 24:
		return 5, true
	case 32:
		return 6, true
	default:
		return 0, false
	}
}

// cbr2BPP maps the 4-bit bitsPerPixelID of cache bitmap rev2/rev3 orders
// to bits per pixel.
func cbr2BPP(bppID byte) (byte, bool) {
	switch bppID {
	case 3: // CBR2_8BPP
		return 8, true
	case 4: // CBR2_16BPP
		return 16, true
	case 5: // CBR2_24BPP
		return 24, true
	case 6: // CBR2_32BPP
		return 32, true
	default:
		return 0, false
	}
}

// bppCBR2 is the reverse of cbr2BPP.
func bppCBR2(bpp byte) (byte, bool) {
	switch bpp {
	case 8:
		return 3, true
	case 16:
		return 4, true
	case 24:
		return 5, true
	case 32:
		return 6, true
	default:
		return 0, false
	}
}

// color reads a 3-byte RGB value, least significant byte first.
func (r *reader) color() (uint32, error) {
	p, err := r.bytes(3)
	if err != nil {
		return 0, err
	}

	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16, nil
}

func (w *writer) color(c uint32) {
	w.uint8(byte(c))
	w.uint8(byte(c >> 8))
	w.uint8(byte(c >> 16))
}

// colorRef reads a 4-byte TS_COLORREF: 3 color bytes followed by one pad
// byte. Palette entries (TS_COLOR_QUAD) share the layout.
func (r *reader) colorRef() (uint32, error) {
	p, err := r.bytes(4)
	if err != nil {
		return 0, err
	}

	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16, nil
}

func (w *writer) colorRef(c uint32) {
	w.color(c)
	w.uint8(0)
}

// twoByteUnsigned reads the 1-or-2-byte unsigned encoding used by cache
// bitmap rev2 dimension fields. Bit 7 of the first byte selects the long
// form.
func (r *reader) twoByteUnsigned() (uint16, error) {
	b, err := r.uint8()
	if err != nil {
		return 0, err
	}

	if b&0x80 == 0 {
		return uint16(b & 0x7F), nil
	}

	b2, err := r.uint8()
	if err != nil {
		return 0, err
	}

	return uint16(b&0x7F)<<8 | uint16(b2), nil
}

func (w *writer) twoByteUnsigned(v uint16) error {
	if v > 0x7FFF {
		return fmt.Errorf("2-byte unsigned %d: %w", v, ErrValueOutOfRange)
	}

	if v >= 0x7F {
		w.uint8(byte(v>>8) | 0x80)
		w.uint8(byte(v))

		return nil
	}

	w.uint8(byte(v) & 0x7F)

	return nil
}

// twoByteSigned reads the signed variant: bit 7 selects the long form and
// bit 6 carries the sign.
func (r *reader) twoByteSigned() (int32, error) {
	b, err := r.uint8()
	if err != nil {
		return 0, err
	}

	negative := b&0x40 != 0
	v := int32(b & 0x3F)

	if b&0x80 != 0 {
		b2, err := r.uint8()
		if err != nil {
			return 0, err
		}

		v = v<<8 | int32(b2)
	}

	if negative {
		v = -v
	}

	return v, nil
}

func (w *writer) twoByteSigned(v int32) error {
	var sign byte
	if v < 0 {
		sign = 0x40
		v = -v
	}

	if v > 0x3FFF {
		return fmt.Errorf("2-byte signed %d: %w", v, ErrValueOutOfRange)
	}

	if v >= 0x3F {
		w.uint8(byte(v>>8)&0x3F | 0x80 | sign)
		w.uint8(byte(v))

		return nil
	}

	w.uint8(byte(v)&0x3F | sign)

	return nil
}

// fourByteUnsigned reads the 1-to-4-byte unsigned encoding used by cache
// bitmap rev2 length fields. The top two bits of the first byte give the
// number of extra bytes, which follow most significant first.
func (r *reader) fourByteUnsigned() (uint32, error) {
	b, err := r.uint8()
	if err != nil {
		return 0, err
	}

	v := uint32(b & 0x3F)

	for i := byte(0); i < (b&0xC0)>>6; i++ {
		next, err := r.uint8()
		if err != nil {
			return 0, err
		}

		v = v<<8 | uint32(next)
	}

	return v, nil
}

func (w *writer) fourByteUnsigned(v uint32) error {
	switch {
	case v <= 0x3F:
		w.uint8(byte(v))
	case v <= 0x3FFF:
		w.uint8(byte(v>>8) | 0x40)
		w.uint8(byte(v))
	case v <= 0x3FFFFF:
		w.uint8(byte(v>>16) | 0x80)
		w.uint8(byte(v >> 8))
		w.uint8(byte(v))
	case v <= 0x3FFFFFFF:
		w.uint8(byte(v>>24) | 0xC0)
		w.uint8(byte(v >> 16))
		w.uint8(byte(v >> 8))
		w.uint8(byte(v))
	default:
		return fmt.Errorf("4-byte unsigned %d: %w", v, ErrValueOutOfRange)
	}

	return nil
}

// delta reads a 1-or-2-byte signed delta: bit 6 of the first byte is the
// sign, bit 7 selects the long form.
func (r *reader) delta() (int32, error) {
	b, err := r.uint8()
	if err != nil {
		return 0, err
	}

	var v int32
	if b&0x40 != 0 {
		v = int32(uint32(b) | 0xFFFFFFC0)
	} else {
		v = int32(b & 0x3F)
	}

	if b&0x80 != 0 {
		b2, err := r.uint8()
		if err != nil {
			return 0, err
		}

		v = int32(uint32(v)<<8 | uint32(b2))
	}

	return v, nil
}

func (w *writer) delta(v int32) error {
	switch {
	case v >= -64 && v <= 63:
		w.uint8(byte(v) & 0x7F)
	case v >= -16384 && v <= 16383:
		w.uint8(byte(v>>8)&0x7F | 0x80)
		w.uint8(byte(v))
	default:
		return fmt.Errorf("delta %d: %w", v, ErrValueOutOfRange)
	}

	return nil
}

// deltaRects decodes a packed rectangle array. The zero-bits header holds
// four presence bits per rectangle; absent left/top deltas are zero and
// absent width/height repeat the previous rectangle. Left and top
// accumulate so the result is absolute.
func (r *reader) deltaRects(count byte) ([]DeltaRect, error) {
	if count > 45 {
		return nil, fmt.Errorf("%d delta rectangles: %w", count, ErrBoundExceeded)
	}

	zeroBits, err := r.bytes((int(count) + 1) / 2)
	if err != nil {
		return nil, err
	}

	rects := make([]DeltaRect, count)

	var flags byte

	for i := range rects {
		if i%2 == 0 {
			flags = zeroBits[i/2]
		}

		if ^flags&0x80 != 0 {
			if rects[i].Left, err = r.delta(); err != nil {
				return nil, err
			}
		}

		if ^flags&0x40 != 0 {
			if rects[i].Top, err = r.delta(); err != nil {
				return nil, err
			}
		}

		if ^flags&0x20 != 0 {
			if rects[i].Width, err = r.delta(); err != nil {
				return nil, err
			}
		} else if i > 0 {
			rects[i].Width = rects[i-1].Width
		}

		if ^flags&0x10 != 0 {
			if rects[i].Height, err = r.delta(); err != nil {
				return nil, err
			}
		} else if i > 0 {
			rects[i].Height = rects[i-1].Height
		}

		if i > 0 {
			rects[i].Left += rects[i-1].Left
			rects[i].Top += rects[i-1].Top
		}

		flags <<= 4
	}

	return rects, nil
}

// deltaRects encodes every component explicitly (an all-zero presence
// header) with left and top written as deltas against the previous
// rectangle.
func (w *writer) deltaRects(rects []DeltaRect) error {
	if len(rects) > 45 {
		return fmt.Errorf("%d delta rectangles: %w", len(rects), ErrBoundExceeded)
	}

	for i := 0; i < (len(rects)+1)/2; i++ {
		w.uint8(0)
	}

	var prevLeft, prevTop int32

	for _, rect := range rects {
		if err := w.delta(rect.Left - prevLeft); err != nil {
			return err
		}

		if err := w.delta(rect.Top - prevTop); err != nil {
			return err
		}

		if err := w.delta(rect.Width); err != nil {
			return err
		}

		if err := w.delta(rect.Height); err != nil {
			return err
		}

		prevLeft = rect.Left
		prevTop = rect.Top
	}

	return nil
}

// deltaPoints decodes a packed point array: two presence bits per point,
// absent components are zero. Deltas are kept as read; accumulation is the
// consumer's business.
func (r *reader) deltaPoints(count byte) ([]DeltaPoint, error) {
	zeroBits, err := r.bytes((int(count) + 3) / 4)
	if err != nil {
		return nil, err
	}

	points := make([]DeltaPoint, count)

	var flags byte

	for i := range points {
		if i%4 == 0 {
			flags = zeroBits[i/4]
		}

		if ^flags&0x80 != 0 {
			if points[i].X, err = r.delta(); err != nil {
				return nil, err
			}
		}

		if ^flags&0x40 != 0 {
			if points[i].Y, err = r.delta(); err != nil {
				return nil, err
			}
		}

		flags <<= 2
	}

	return points, nil
}

func (w *writer) deltaPoints(points []DeltaPoint) error {
	for i := 0; i < (len(points)+3)/4; i++ {
		w.uint8(0)
	}

	for _, pt := range points {
		if err := w.delta(pt.X); err != nil {
			return err
		}

		if err := w.delta(pt.Y); err != nil {
			return err
		}
	}

	return nil
}

// readBrush decodes the five optional brush fields. fieldFlags holds the
// presence bits already shifted down to the brush position within the
// parent order's field mask.
func (r *reader) readBrush(b *Brush, fieldFlags byte) error {
	var err error

	if fieldFlags&0x01 != 0 {
		if b.X, err = r.uint8(); err != nil {
			return err
		}
	}

	if fieldFlags&0x02 != 0 {
		if b.Y, err = r.uint8(); err != nil {
			return err
		}
	}

	if fieldFlags&0x04 != 0 {
		if b.Style, err = r.uint8(); err != nil {
			return err
		}
	}

	if fieldFlags&0x08 != 0 {
		if b.Hatch, err = r.uint8(); err != nil {
			return err
		}
	}

	if b.Style&CachedBrush != 0 {
		b.Index = b.Hatch

		bpp, ok := bmfBPP(b.Style &^ CachedBrush)
		if !ok {
			return fmt.Errorf("cached brush format %#x: %w", b.Style, ErrInvalidEnumerant)
		}

		if bpp == 0 {
			bpp = 1
		}

		b.BPP = bpp
	}

	if fieldFlags&0x10 != 0 {
		p, err := r.bytes(7)
		if err != nil {
			return err
		}

		for i := 0; i < 7; i++ {
			b.Data[7-i] = p[i]
		}

		b.Data[0] = b.Hatch
	}

	return nil
}

// writeBrush encodes all five brush fields. A cached brush carries its
// cache index in the hatch byte.
func (w *writer) writeBrush(b *Brush) {
	hatch := b.Hatch
	if b.Style&CachedBrush != 0 {
		hatch = b.Index
	}

	w.uint8(b.X)
	w.uint8(b.Y)
	w.uint8(b.Style)
	w.uint8(hatch)

	for i := 7; i >= 1; i-- {
		w.uint8(b.Data[i])
	}
}
