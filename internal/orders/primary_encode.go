package orders

import "fmt"

// Encoders emit self-contained orders: every field bit is set and
// coordinates are written absolute, so the result decodes identically
// regardless of receiver state.

// coord writes an absolute coordinate. Only values representable as an
// unsigned 16-bit quantity are encodable.
func (w *writer) coord(v int32) error {
	if v < 0 || v > 0xFFFF {
		return fmt.Errorf("coordinate %d: %w", v, ErrValueOutOfRange)
	}

	w.uint16(uint16(v))

	return nil
}

func writeFieldFlags(w *writer, flags uint32, fieldBytes byte) error {
	switch fieldBytes {
	case 1:
		w.uint8(byte(flags))
	case 2:
		w.uint8(byte(flags))
		w.uint8(byte(flags >> 8))
	case 3:
		w.uint8(byte(flags))
		w.uint8(byte(flags >> 8))
		w.uint8(byte(flags >> 16))
	default:
		return fmt.Errorf("%d field flag bytes: %w", fieldBytes, ErrInvalidOrderType)
	}

	return nil
}

// rectanglesData encodes a rectangle array as its two-byte length followed
// by the packed rectangles.
func (w *writer) rectanglesData(rects []DeltaRect) error {
	var body writer
	if err := body.deltaRects(rects); err != nil {
		return err
	}

	w.uint16(uint16(body.len()))
	w.bytes(body.data())

	return nil
}

// pointsData encodes a point array as its single-byte length followed by
// the packed points.
func (w *writer) pointsData(points []DeltaPoint) error {
	var body writer
	if err := body.deltaPoints(points); err != nil {
		return err
	}

	if body.len() > 0xFF {
		return fmt.Errorf("point array of %d bytes: %w", body.len(), ErrValueOutOfRange)
	}

	w.uint8(byte(body.len()))
	w.bytes(body.data())

	return nil
}

func writeDstBlt(w *writer, o *DstBlt) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP)

	return 0x1F, nil
}

func writePatBlt(w *writer, o *PatBlt) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP)
	w.color(o.BackColor)
	w.color(o.ForeColor)
	w.writeBrush(&o.Brush)

	return 0xFFF, nil
}

func writeScrBlt(w *writer, o *ScrBlt) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP)

	for _, c := range []int32{o.XSrc, o.YSrc} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	return 0x7F, nil
}

func writeOpaqueRect(w *writer, o *OpaqueRect) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(byte(o.Color))
	w.uint8(byte(o.Color >> 8))
	w.uint8(byte(o.Color >> 16))

	return 0x7F, nil
}

func writeDrawNineGrid(w *writer, o *DrawNineGrid) (uint32, error) {
	for _, c := range []int32{o.SrcLeft, o.SrcTop, o.SrcRight, o.SrcBottom} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint16(o.BitmapID)

	return 0x1F, nil
}

func writeMultiDrawNineGrid(w *writer, o *MultiDrawNineGrid) (uint32, error) {
	for _, c := range []int32{o.SrcLeft, o.SrcTop, o.SrcRight, o.SrcBottom} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint16(o.BitmapID)
	w.uint8(byte(len(o.Rectangles)))

	if err := w.rectanglesData(o.Rectangles); err != nil {
		return 0, err
	}

	return 0x7F, nil
}

func writeLineTo(w *writer, o *LineTo) (uint32, error) {
	w.uint16(o.BackMode)

	for _, c := range []int32{o.XStart, o.YStart, o.XEnd, o.YEnd} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.color(o.BackColor)
	w.uint8(o.ROP2)
	w.uint8(o.PenStyle)
	w.uint8(o.PenWidth)
	w.color(o.PenColor)

	return 0x3FF, nil
}

func writeSaveBitmap(w *writer, o *SaveBitmap) (uint32, error) {
	w.uint32(o.SavedBitmapPosition)

	for _, c := range []int32{o.Left, o.Top, o.Right, o.Bottom} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.Operation)

	return 0x3F, nil
}

func writeMemBlt(w *writer, o *MemBlt) (uint32, error) {
	w.uint16(o.CacheID&0xFF | (o.ColorIndex&0xFF)<<8)

	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP)

	for _, c := range []int32{o.XSrc, o.YSrc} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint16(o.CacheIndex)

	return 0x1FF, nil
}

func writeMem3Blt(w *writer, o *Mem3Blt) (uint32, error) {
	w.uint16(o.CacheID&0xFF | (o.ColorIndex&0xFF)<<8)

	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP)

	for _, c := range []int32{o.XSrc, o.YSrc} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.color(o.BackColor)
	w.color(o.ForeColor)
	w.writeBrush(&o.Brush)
	w.uint16(o.CacheIndex)

	return 0xFFFF, nil
}

func writeMultiDstBlt(w *writer, o *MultiDstBlt) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP)
	w.uint8(byte(len(o.Rectangles)))

	if err := w.rectanglesData(o.Rectangles); err != nil {
		return 0, err
	}

	return 0x7F, nil
}

func writeMultiPatBlt(w *writer, o *MultiPatBlt) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP)
	w.color(o.BackColor)
	w.color(o.ForeColor)
	w.writeBrush(&o.Brush)
	w.uint8(byte(len(o.Rectangles)))

	if err := w.rectanglesData(o.Rectangles); err != nil {
		return 0, err
	}

	return 0x3FFF, nil
}

func writeMultiScrBlt(w *writer, o *MultiScrBlt) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP)

	for _, c := range []int32{o.XSrc, o.YSrc} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(byte(len(o.Rectangles)))

	if err := w.rectanglesData(o.Rectangles); err != nil {
		return 0, err
	}

	return 0x1FF, nil
}

func writeMultiOpaqueRect(w *writer, o *MultiOpaqueRect) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Width, o.Height} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(byte(o.Color))
	w.uint8(byte(o.Color >> 8))
	w.uint8(byte(o.Color >> 16))
	w.uint8(byte(len(o.Rectangles)))

	if err := w.rectanglesData(o.Rectangles); err != nil {
		return 0, err
	}

	return 0x1FF, nil
}

func writeFastIndex(w *writer, o *FastIndex) (uint32, error) {
	w.uint8(o.CacheID)
	w.uint8(o.ULCharInc)
	w.uint8(o.FlAccel)
	w.color(o.BackColor)
	w.color(o.ForeColor)

	coords := []int32{
		o.BkLeft, o.BkTop, o.BkRight, o.BkBottom,
		o.OpLeft, o.OpTop, o.OpRight, o.OpBottom,
		o.X, o.Y,
	}
	for _, c := range coords {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	if len(o.Data) > 0xFF {
		return 0, fmt.Errorf("glyph data of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint8(byte(len(o.Data)))
	w.bytes(o.Data)

	return 0x7FFF, nil
}

func writeFastGlyph(w *writer, o *FastGlyph) (uint32, error) {
	w.uint8(o.CacheID)
	w.uint8(o.ULCharInc)
	w.uint8(o.FlAccel)
	w.color(o.BackColor)
	w.color(o.ForeColor)

	coords := []int32{
		o.BkLeft, o.BkTop, o.BkRight, o.BkBottom,
		o.OpLeft, o.OpTop, o.OpRight, o.OpBottom,
		o.X, o.Y,
	}
	for _, c := range coords {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	payload := o.Data
	if len(payload) == 0 {
		var err error
		if payload, err = fastGlyphData(&o.Glyph); err != nil {
			return 0, err
		}
	}

	if len(payload) == 0 {
		// Nothing to carry: leave the glyph field out entirely.
		return 0x3FFF, nil
	}

	if len(payload) > 0xFF {
		return 0, fmt.Errorf("glyph payload of %d bytes: %w", len(payload), ErrValueOutOfRange)
	}

	w.uint8(byte(len(payload)))
	w.bytes(payload)

	return 0x7FFF, nil
}

// fastGlyphData builds the inline glyph payload from its parsed form. A
// zero-value glyph produces an empty payload.
func fastGlyphData(g *GlyphDataV2) ([]byte, error) {
	if g.Width == 0 && g.Height == 0 && len(g.Bitmap) == 0 {
		if g.CacheIndex == 0 {
			return nil, nil
		}

		return []byte{g.CacheIndex}, nil
	}

	var body writer

	body.uint8(g.CacheIndex)

	if err := body.twoByteSigned(g.X); err != nil {
		return nil, err
	}

	if err := body.twoByteSigned(g.Y); err != nil {
		return nil, err
	}

	if g.Width > 0x7FFF || g.Height > 0x7FFF {
		return nil, fmt.Errorf("glyph dimensions %dx%d: %w", g.Width, g.Height, ErrValueOutOfRange)
	}

	if err := body.twoByteUnsigned(uint16(g.Width)); err != nil {
		return nil, err
	}

	if err := body.twoByteUnsigned(uint16(g.Height)); err != nil {
		return nil, err
	}

	body.bytes(g.Bitmap)

	return body.data(), nil
}

func writePolygonSC(w *writer, o *PolygonSC) (uint32, error) {
	for _, c := range []int32{o.XStart, o.YStart} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP2)
	w.uint8(o.FillMode)
	w.color(o.BrushColor)
	w.uint8(byte(len(o.Points)))

	if err := w.pointsData(o.Points); err != nil {
		return 0, err
	}

	return 0x7F, nil
}

func writePolygonCB(w *writer, o *PolygonCB) (uint32, error) {
	for _, c := range []int32{o.XStart, o.YStart} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	rop2 := o.ROP2 & 0x1F
	if o.BackMode == BackModeTransparent {
		rop2 |= 0x80
	}

	w.uint8(rop2)
	w.uint8(o.FillMode)
	w.color(o.BackColor)
	w.color(o.ForeColor)
	w.writeBrush(&o.Brush)
	w.uint8(byte(len(o.Points)))

	if err := w.pointsData(o.Points); err != nil {
		return 0, err
	}

	return 0x1FFF, nil
}

func writePolyline(w *writer, o *Polyline) (uint32, error) {
	for _, c := range []int32{o.XStart, o.YStart} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP2)
	w.uint16(0) // reserved
	w.color(o.PenColor)
	w.uint8(byte(len(o.Points)))

	if err := w.pointsData(o.Points); err != nil {
		return 0, err
	}

	return 0x7F, nil
}

func writeEllipseSC(w *writer, o *EllipseSC) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Right, o.Bottom} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP2)
	w.uint8(o.FillMode)
	w.color(o.Color)

	return 0x7F, nil
}

func writeEllipseCB(w *writer, o *EllipseCB) (uint32, error) {
	for _, c := range []int32{o.Left, o.Top, o.Right, o.Bottom} {
		if err := w.coord(c); err != nil {
			return 0, err
		}
	}

	w.uint8(o.ROP2)
	w.uint8(o.FillMode)
	w.color(o.BackColor)
	w.color(o.ForeColor)
	w.writeBrush(&o.Brush)

	return 0x1FFF, nil
}

func writeGlyphIndex(w *writer, o *GlyphIndex) (uint32, error) {
	w.uint8(o.CacheID)
	w.uint8(o.FlAccel)
	w.uint8(o.ULCharInc)
	w.uint8(o.FOpRedundant)
	w.color(o.BackColor)
	w.color(o.ForeColor)

	rects := []int16{
		o.BkLeft, o.BkTop, o.BkRight, o.BkBottom,
		o.OpLeft, o.OpTop, o.OpRight, o.OpBottom,
	}
	for _, v := range rects {
		w.int16(v)
	}

	w.writeBrush(&o.Brush)
	w.int16(o.X)
	w.int16(o.Y)

	if len(o.Data) > 0xFF {
		return 0, fmt.Errorf("glyph data of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint8(byte(len(o.Data)))
	w.bytes(o.Data)

	return 0x3FFFFF, nil
}

// EncodePrimary encodes a primary order with a full field mask and a type
// change announcement, so it decodes without reference to prior orders.
func EncodePrimary(order PrimaryOrder) ([]byte, error) {
	var (
		body       writer
		fieldFlags uint32
		err        error
	)

	switch o := order.(type) {
	case *DstBlt:
		fieldFlags, err = writeDstBlt(&body, o)
	case *PatBlt:
		fieldFlags, err = writePatBlt(&body, o)
	case *ScrBlt:
		fieldFlags, err = writeScrBlt(&body, o)
	case *OpaqueRect:
		fieldFlags, err = writeOpaqueRect(&body, o)
	case *DrawNineGrid:
		fieldFlags, err = writeDrawNineGrid(&body, o)
	case *MultiDrawNineGrid:
		fieldFlags, err = writeMultiDrawNineGrid(&body, o)
	case *LineTo:
		fieldFlags, err = writeLineTo(&body, o)
	case *SaveBitmap:
		fieldFlags, err = writeSaveBitmap(&body, o)
	case *MemBlt:
		fieldFlags, err = writeMemBlt(&body, o)
	case *Mem3Blt:
		fieldFlags, err = writeMem3Blt(&body, o)
	case *MultiDstBlt:
		fieldFlags, err = writeMultiDstBlt(&body, o)
	case *MultiPatBlt:
		fieldFlags, err = writeMultiPatBlt(&body, o)
	case *MultiScrBlt:
		fieldFlags, err = writeMultiScrBlt(&body, o)
	case *MultiOpaqueRect:
		fieldFlags, err = writeMultiOpaqueRect(&body, o)
	case *FastIndex:
		fieldFlags, err = writeFastIndex(&body, o)
	case *FastGlyph:
		fieldFlags, err = writeFastGlyph(&body, o)
	case *PolygonSC:
		fieldFlags, err = writePolygonSC(&body, o)
	case *PolygonCB:
		fieldFlags, err = writePolygonCB(&body, o)
	case *Polyline:
		fieldFlags, err = writePolyline(&body, o)
	case *EllipseSC:
		fieldFlags, err = writeEllipseSC(&body, o)
	case *EllipseCB:
		fieldFlags, err = writeEllipseCB(&body, o)
	case *GlyphIndex:
		fieldFlags, err = writeGlyphIndex(&body, o)
	default:
		return nil, fmt.Errorf("primary order %T: %w", order, ErrInvalidOrderType)
	}

	if err != nil {
		return nil, err
	}

	var out writer

	out.uint8(ControlStandard | ControlTypeChange)
	out.uint8(byte(order.Type()))

	if err := writeFieldFlags(&out, fieldFlags, fieldByteCount(order.Type())); err != nil {
		return nil, err
	}

	out.bytes(body.data())

	return out.data(), nil
}
