package orders

import "fmt"

// fieldReader reads the presence-masked fields of one primary order. A
// field whose bit is clear in flags is skipped and its previous value
// stays in effect.
type fieldReader struct {
	r     *reader
	flags uint32
	delta bool
}

func (f *fieldReader) present(n int) bool {
	return f.flags&(1<<(n-1)) != 0
}

func (f *fieldReader) byteField(n int, v *byte) error {
	if !f.present(n) {
		return nil
	}

	b, err := f.r.uint8()
	if err != nil {
		return err
	}

	*v = b

	return nil
}

func (f *fieldReader) twoBytesField(n int, first, second *byte) error {
	if !f.present(n) {
		return nil
	}

	p, err := f.r.bytes(2)
	if err != nil {
		return err
	}

	*first = p[0]
	*second = p[1]

	return nil
}

func (f *fieldReader) uint16Field(n int, v *uint16) error {
	if !f.present(n) {
		return nil
	}

	u, err := f.r.uint16()
	if err != nil {
		return err
	}

	*v = u

	return nil
}

func (f *fieldReader) int16Field(n int, v *int16) error {
	if !f.present(n) {
		return nil
	}

	i, err := f.r.int16()
	if err != nil {
		return err
	}

	*v = i

	return nil
}

func (f *fieldReader) uint32Field(n int, v *uint32) error {
	if !f.present(n) {
		return nil
	}

	u, err := f.r.uint32()
	if err != nil {
		return err
	}

	*v = u

	return nil
}

func (f *fieldReader) colorField(n int, v *uint32) error {
	if !f.present(n) {
		return nil
	}

	c, err := f.r.color()
	if err != nil {
		return err
	}

	*v = c

	return nil
}

// coordField reads a coordinate as an absolute int16, or as a signed byte
// delta against the previous value when the order runs in delta mode.
func (f *fieldReader) coordField(n int, v *int32) error {
	if !f.present(n) {
		return nil
	}

	if f.delta {
		b, err := f.r.uint8()
		if err != nil {
			return err
		}

		*v += int32(int8(b))

		return nil
	}

	i, err := f.r.int16()
	if err != nil {
		return err
	}

	*v = int32(i)

	return nil
}

// channelField merges one color channel byte into a persisted color.
func (f *fieldReader) channelField(n int, v *uint32, shift uint) error {
	if !f.present(n) {
		return nil
	}

	b, err := f.r.uint8()
	if err != nil {
		return err
	}

	keep := uint32(0x00FFFFFF) &^ (0xFF << shift)
	*v = *v&keep | uint32(b)<<shift

	return nil
}

// brushField decodes the five brush fields starting at bit position shift
// within the order's field mask.
func (f *fieldReader) brushField(shift uint, b *Brush) error {
	return f.r.readBrush(b, byte(f.flags>>shift)&0x1F)
}

// dataField reads a glyph data blob: a byte count followed by that many
// bytes, copied so the value survives the input buffer.
func (f *fieldReader) dataField(n int, data *[]byte) error {
	if !f.present(n) {
		return nil
	}

	count, err := f.r.uint8()
	if err != nil {
		return err
	}

	p, err := f.r.bytes(int(count))
	if err != nil {
		return err
	}

	*data = append((*data)[:0], p...)

	return nil
}

// rectanglesField applies the shared multi-rectangle rule: the count field
// updates a local copy, and the rectangle array is only re-read when the
// data field is present. Without it the announced count must not exceed
// the retained array, which is clipped to the announced length.
func (f *fieldReader) rectanglesField(countField, dataField int, rects *[]DeltaRect) error {
	count := byte(len(*rects))
	if err := f.byteField(countField, &count); err != nil {
		return err
	}

	if f.present(dataField) {
		if _, err := f.r.uint16(); err != nil { // cbData, recomputed on demand
			return err
		}

		updated, err := f.r.deltaRects(count)
		if err != nil {
			return err
		}

		*rects = updated

		return nil
	}

	if int(count) > len(*rects) {
		return fmt.Errorf("%d rectangles announced, %d retained: %w", count, len(*rects), ErrBoundExceeded)
	}

	*rects = (*rects)[:count]

	return nil
}

// pointsField is the point-array variant of rectanglesField. The data
// field carries a single-byte length and requires a non-zero count and a
// start point that fits in 16 bits.
func (f *fieldReader) pointsField(countField, dataField int, points *[]DeltaPoint, xStart, yStart int32) error {
	count := byte(len(*points))
	if err := f.byteField(countField, &count); err != nil {
		return err
	}

	if f.present(dataField) {
		if count == 0 {
			return fmt.Errorf("zero delta entries: %w", ErrInvalidEnumerant)
		}

		if _, err := f.r.uint8(); err != nil { // cbData
			return err
		}

		if xStart < -0x8000 || xStart > 0x7FFF || yStart < -0x8000 || yStart > 0x7FFF {
			return fmt.Errorf("start point (%d,%d): %w", xStart, yStart, ErrValueOutOfRange)
		}

		updated, err := f.r.deltaPoints(count)
		if err != nil {
			return err
		}

		*points = updated

		return nil
	}

	if int(count) > len(*points) {
		return fmt.Errorf("%d points announced, %d retained: %w", count, len(*points), ErrBoundExceeded)
	}

	*points = (*points)[:count]

	return nil
}

func readDstBlt(f *fieldReader, o *DstBlt) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Height); err != nil {
		return err
	}

	return f.byteField(5, &o.ROP)
}

func readPatBlt(f *fieldReader, o *PatBlt) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Height); err != nil {
		return err
	}

	if err := f.byteField(5, &o.ROP); err != nil {
		return err
	}

	if err := f.colorField(6, &o.BackColor); err != nil {
		return err
	}

	if err := f.colorField(7, &o.ForeColor); err != nil {
		return err
	}

	return f.brushField(7, &o.Brush)
}

func readScrBlt(f *fieldReader, o *ScrBlt) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Height); err != nil {
		return err
	}

	if err := f.byteField(5, &o.ROP); err != nil {
		return err
	}

	if err := f.coordField(6, &o.XSrc); err != nil {
		return err
	}

	return f.coordField(7, &o.YSrc)
}

func readOpaqueRect(f *fieldReader, o *OpaqueRect) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Height); err != nil {
		return err
	}

	if err := f.channelField(5, &o.Color, 0); err != nil {
		return err
	}

	if err := f.channelField(6, &o.Color, 8); err != nil {
		return err
	}

	return f.channelField(7, &o.Color, 16)
}

func readDrawNineGrid(f *fieldReader, o *DrawNineGrid) error {
	if err := f.coordField(1, &o.SrcLeft); err != nil {
		return err
	}

	if err := f.coordField(2, &o.SrcTop); err != nil {
		return err
	}

	if err := f.coordField(3, &o.SrcRight); err != nil {
		return err
	}

	if err := f.coordField(4, &o.SrcBottom); err != nil {
		return err
	}

	return f.uint16Field(5, &o.BitmapID)
}

func readMultiDrawNineGrid(f *fieldReader, o *MultiDrawNineGrid) error {
	if err := f.coordField(1, &o.SrcLeft); err != nil {
		return err
	}

	if err := f.coordField(2, &o.SrcTop); err != nil {
		return err
	}

	if err := f.coordField(3, &o.SrcRight); err != nil {
		return err
	}

	if err := f.coordField(4, &o.SrcBottom); err != nil {
		return err
	}

	if err := f.uint16Field(5, &o.BitmapID); err != nil {
		return err
	}

	return f.rectanglesField(6, 7, &o.Rectangles)
}

func readLineTo(f *fieldReader, o *LineTo) error {
	if err := f.uint16Field(1, &o.BackMode); err != nil {
		return err
	}

	if err := f.coordField(2, &o.XStart); err != nil {
		return err
	}

	if err := f.coordField(3, &o.YStart); err != nil {
		return err
	}

	if err := f.coordField(4, &o.XEnd); err != nil {
		return err
	}

	if err := f.coordField(5, &o.YEnd); err != nil {
		return err
	}

	if err := f.colorField(6, &o.BackColor); err != nil {
		return err
	}

	if err := f.byteField(7, &o.ROP2); err != nil {
		return err
	}

	if err := f.byteField(8, &o.PenStyle); err != nil {
		return err
	}

	if err := f.byteField(9, &o.PenWidth); err != nil {
		return err
	}

	return f.colorField(10, &o.PenColor)
}

func readSaveBitmap(f *fieldReader, o *SaveBitmap) error {
	if err := f.uint32Field(1, &o.SavedBitmapPosition); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Right); err != nil {
		return err
	}

	if err := f.coordField(5, &o.Bottom); err != nil {
		return err
	}

	return f.byteField(6, &o.Operation)
}

func readMemBlt(f *fieldReader, o *MemBlt) error {
	if err := f.uint16Field(1, &o.CacheID); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(5, &o.Height); err != nil {
		return err
	}

	if err := f.byteField(6, &o.ROP); err != nil {
		return err
	}

	if err := f.coordField(7, &o.XSrc); err != nil {
		return err
	}

	if err := f.coordField(8, &o.YSrc); err != nil {
		return err
	}

	if err := f.uint16Field(9, &o.CacheIndex); err != nil {
		return err
	}

	o.ColorIndex = o.CacheID >> 8
	o.CacheID &= 0xFF

	return nil
}

func readMem3Blt(f *fieldReader, o *Mem3Blt) error {
	if err := f.uint16Field(1, &o.CacheID); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(5, &o.Height); err != nil {
		return err
	}

	if err := f.byteField(6, &o.ROP); err != nil {
		return err
	}

	if err := f.coordField(7, &o.XSrc); err != nil {
		return err
	}

	if err := f.coordField(8, &o.YSrc); err != nil {
		return err
	}

	if err := f.colorField(9, &o.BackColor); err != nil {
		return err
	}

	if err := f.colorField(10, &o.ForeColor); err != nil {
		return err
	}

	if err := f.brushField(10, &o.Brush); err != nil {
		return err
	}

	if err := f.uint16Field(16, &o.CacheIndex); err != nil {
		return err
	}

	o.ColorIndex = o.CacheID >> 8
	o.CacheID &= 0xFF

	return nil
}

func readMultiDstBlt(f *fieldReader, o *MultiDstBlt) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Height); err != nil {
		return err
	}

	if err := f.byteField(5, &o.ROP); err != nil {
		return err
	}

	return f.rectanglesField(6, 7, &o.Rectangles)
}

func readMultiPatBlt(f *fieldReader, o *MultiPatBlt) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Height); err != nil {
		return err
	}

	if err := f.byteField(5, &o.ROP); err != nil {
		return err
	}

	if err := f.colorField(6, &o.BackColor); err != nil {
		return err
	}

	if err := f.colorField(7, &o.ForeColor); err != nil {
		return err
	}

	if err := f.brushField(7, &o.Brush); err != nil {
		return err
	}

	return f.rectanglesField(13, 14, &o.Rectangles)
}

func readMultiScrBlt(f *fieldReader, o *MultiScrBlt) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Height); err != nil {
		return err
	}

	if err := f.byteField(5, &o.ROP); err != nil {
		return err
	}

	if err := f.coordField(6, &o.XSrc); err != nil {
		return err
	}

	if err := f.coordField(7, &o.YSrc); err != nil {
		return err
	}

	return f.rectanglesField(8, 9, &o.Rectangles)
}

func readMultiOpaqueRect(f *fieldReader, o *MultiOpaqueRect) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Width); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Height); err != nil {
		return err
	}

	if err := f.channelField(5, &o.Color, 0); err != nil {
		return err
	}

	if err := f.channelField(6, &o.Color, 8); err != nil {
		return err
	}

	if err := f.channelField(7, &o.Color, 16); err != nil {
		return err
	}

	return f.rectanglesField(8, 9, &o.Rectangles)
}

func readFastIndex(f *fieldReader, o *FastIndex) error {
	if err := f.byteField(1, &o.CacheID); err != nil {
		return err
	}

	if err := f.twoBytesField(2, &o.ULCharInc, &o.FlAccel); err != nil {
		return err
	}

	if err := f.colorField(3, &o.BackColor); err != nil {
		return err
	}

	if err := f.colorField(4, &o.ForeColor); err != nil {
		return err
	}

	if err := f.coordField(5, &o.BkLeft); err != nil {
		return err
	}

	if err := f.coordField(6, &o.BkTop); err != nil {
		return err
	}

	if err := f.coordField(7, &o.BkRight); err != nil {
		return err
	}

	if err := f.coordField(8, &o.BkBottom); err != nil {
		return err
	}

	if err := f.coordField(9, &o.OpLeft); err != nil {
		return err
	}

	if err := f.coordField(10, &o.OpTop); err != nil {
		return err
	}

	if err := f.coordField(11, &o.OpRight); err != nil {
		return err
	}

	if err := f.coordField(12, &o.OpBottom); err != nil {
		return err
	}

	if err := f.coordField(13, &o.X); err != nil {
		return err
	}

	if err := f.coordField(14, &o.Y); err != nil {
		return err
	}

	return f.dataField(15, &o.Data)
}

func readFastGlyph(f *fieldReader, o *FastGlyph) error {
	if err := f.byteField(1, &o.CacheID); err != nil {
		return err
	}

	if o.CacheID > 9 {
		return fmt.Errorf("glyph cache id %d: %w", o.CacheID, ErrInvalidEnumerant)
	}

	if err := f.twoBytesField(2, &o.ULCharInc, &o.FlAccel); err != nil {
		return err
	}

	if err := f.colorField(3, &o.BackColor); err != nil {
		return err
	}

	if err := f.colorField(4, &o.ForeColor); err != nil {
		return err
	}

	if err := f.coordField(5, &o.BkLeft); err != nil {
		return err
	}

	if err := f.coordField(6, &o.BkTop); err != nil {
		return err
	}

	if err := f.coordField(7, &o.BkRight); err != nil {
		return err
	}

	if err := f.coordField(8, &o.BkBottom); err != nil {
		return err
	}

	if err := f.coordField(9, &o.OpLeft); err != nil {
		return err
	}

	if err := f.coordField(10, &o.OpTop); err != nil {
		return err
	}

	if err := f.coordField(11, &o.OpRight); err != nil {
		return err
	}

	if err := f.coordField(12, &o.OpBottom); err != nil {
		return err
	}

	if err := f.coordField(13, &o.X); err != nil {
		return err
	}

	if err := f.coordField(14, &o.Y); err != nil {
		return err
	}

	if !f.present(15) {
		return nil
	}

	count, err := f.r.uint8()
	if err != nil {
		return err
	}

	if count == 0 {
		return fmt.Errorf("empty glyph payload: %w", ErrInvalidEnumerant)
	}

	p, err := f.r.bytes(int(count))
	if err != nil {
		return err
	}

	o.Data = append(o.Data[:0], p...)

	return parseFastGlyphData(o.Data, &o.Glyph)
}

// parseFastGlyphData decodes the inline glyph carried by a fast glyph
// order: a cache index byte, then (when more bytes follow) the glyph
// origin, dimensions and 1bpp bitmap.
func parseFastGlyphData(data []byte, g *GlyphDataV2) error {
	r := newReader(data)

	index, err := r.uint8()
	if err != nil {
		return err
	}

	g.CacheIndex = index

	if len(data) <= 1 {
		return nil
	}

	if g.X, err = r.twoByteSigned(); err != nil {
		return err
	}

	if g.Y, err = r.twoByteSigned(); err != nil {
		return err
	}

	cx, err := r.twoByteUnsigned()
	if err != nil {
		return err
	}

	cy, err := r.twoByteUnsigned()
	if err != nil {
		return err
	}

	if cx == 0 || cy == 0 {
		return fmt.Errorf("glyph dimensions %dx%d: %w", cx, cy, ErrInvalidEnumerant)
	}

	g.Width = uint32(cx)
	g.Height = uint32(cy)

	rest, err := r.bytes(r.remaining())
	if err != nil {
		return err
	}

	g.Bitmap = append(g.Bitmap[:0], rest...)

	return nil
}

func readPolygonSC(f *fieldReader, o *PolygonSC) error {
	if err := f.coordField(1, &o.XStart); err != nil {
		return err
	}

	if err := f.coordField(2, &o.YStart); err != nil {
		return err
	}

	if err := f.byteField(3, &o.ROP2); err != nil {
		return err
	}

	if err := f.byteField(4, &o.FillMode); err != nil {
		return err
	}

	if err := f.colorField(5, &o.BrushColor); err != nil {
		return err
	}

	return f.pointsField(6, 7, &o.Points, o.XStart, o.YStart)
}

func readPolygonCB(f *fieldReader, o *PolygonCB) error {
	if err := f.coordField(1, &o.XStart); err != nil {
		return err
	}

	if err := f.coordField(2, &o.YStart); err != nil {
		return err
	}

	if err := f.byteField(3, &o.ROP2); err != nil {
		return err
	}

	if err := f.byteField(4, &o.FillMode); err != nil {
		return err
	}

	if err := f.colorField(5, &o.BackColor); err != nil {
		return err
	}

	if err := f.colorField(6, &o.ForeColor); err != nil {
		return err
	}

	if err := f.brushField(6, &o.Brush); err != nil {
		return err
	}

	if err := f.pointsField(12, 13, &o.Points, o.XStart, o.YStart); err != nil {
		return err
	}

	// The wire rop2 carries the background mix mode in its top bit.
	if o.ROP2&0x80 != 0 {
		o.BackMode = BackModeTransparent
	} else {
		o.BackMode = BackModeOpaque
	}

	o.ROP2 &= 0x1F

	return nil
}

func readPolyline(f *fieldReader, o *Polyline) error {
	if err := f.coordField(1, &o.XStart); err != nil {
		return err
	}

	if err := f.coordField(2, &o.YStart); err != nil {
		return err
	}

	if err := f.byteField(3, &o.ROP2); err != nil {
		return err
	}

	var unused uint16 // field 4 is reserved and carries no meaning
	if err := f.uint16Field(4, &unused); err != nil {
		return err
	}

	if err := f.colorField(5, &o.PenColor); err != nil {
		return err
	}

	return f.pointsField(6, 7, &o.Points, o.XStart, o.YStart)
}

func readEllipseSC(f *fieldReader, o *EllipseSC) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Right); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Bottom); err != nil {
		return err
	}

	if err := f.byteField(5, &o.ROP2); err != nil {
		return err
	}

	if err := f.byteField(6, &o.FillMode); err != nil {
		return err
	}

	return f.colorField(7, &o.Color)
}

func readEllipseCB(f *fieldReader, o *EllipseCB) error {
	if err := f.coordField(1, &o.Left); err != nil {
		return err
	}

	if err := f.coordField(2, &o.Top); err != nil {
		return err
	}

	if err := f.coordField(3, &o.Right); err != nil {
		return err
	}

	if err := f.coordField(4, &o.Bottom); err != nil {
		return err
	}

	if err := f.byteField(5, &o.ROP2); err != nil {
		return err
	}

	if err := f.byteField(6, &o.FillMode); err != nil {
		return err
	}

	if err := f.colorField(7, &o.BackColor); err != nil {
		return err
	}

	if err := f.colorField(8, &o.ForeColor); err != nil {
		return err
	}

	return f.brushField(8, &o.Brush)
}

func readGlyphIndex(f *fieldReader, o *GlyphIndex) error {
	if err := f.byteField(1, &o.CacheID); err != nil {
		return err
	}

	if err := f.byteField(2, &o.FlAccel); err != nil {
		return err
	}

	if err := f.byteField(3, &o.ULCharInc); err != nil {
		return err
	}

	if err := f.byteField(4, &o.FOpRedundant); err != nil {
		return err
	}

	if err := f.colorField(5, &o.BackColor); err != nil {
		return err
	}

	if err := f.colorField(6, &o.ForeColor); err != nil {
		return err
	}

	if err := f.int16Field(7, &o.BkLeft); err != nil {
		return err
	}

	if err := f.int16Field(8, &o.BkTop); err != nil {
		return err
	}

	if err := f.int16Field(9, &o.BkRight); err != nil {
		return err
	}

	if err := f.int16Field(10, &o.BkBottom); err != nil {
		return err
	}

	if err := f.int16Field(11, &o.OpLeft); err != nil {
		return err
	}

	if err := f.int16Field(12, &o.OpTop); err != nil {
		return err
	}

	if err := f.int16Field(13, &o.OpRight); err != nil {
		return err
	}

	if err := f.int16Field(14, &o.OpBottom); err != nil {
		return err
	}

	if err := f.brushField(14, &o.Brush); err != nil {
		return err
	}

	if err := f.int16Field(20, &o.X); err != nil {
		return err
	}

	if err := f.int16Field(21, &o.Y); err != nil {
		return err
	}

	return f.dataField(22, &o.Data)
}

// readFieldFlags assembles the per-order presence mask. The control byte
// may announce that trailing field-flag bytes were elided as zero.
func readFieldFlags(r *reader, control byte, fieldBytes byte) (uint32, error) {
	size := int(fieldBytes)

	if control&ControlZeroFieldByteBit0 != 0 {
		size--
	}

	if control&ControlZeroFieldByteBit1 != 0 {
		if size > 1 {
			size -= 2
		} else {
			size = 0
		}
	}

	var flags uint32

	for i := 0; i < size; i++ {
		b, err := r.uint8()
		if err != nil {
			return 0, err
		}

		flags |= uint32(b) << (8 * i)
	}

	return flags, nil
}

// readBounds decodes a bounds description: a flags byte followed by one
// absolute int16 or signed byte delta per announced edge. Edges without a
// flag keep their previous value.
func readBounds(r *reader, b *Bounds) error {
	flags, err := r.uint8()
	if err != nil {
		return err
	}

	if err := readBoundCoord(r, &b.Left, flags&boundLeft != 0, flags&boundDeltaLeft != 0); err != nil {
		return err
	}

	if err := readBoundCoord(r, &b.Top, flags&boundTop != 0, flags&boundDeltaTop != 0); err != nil {
		return err
	}

	if err := readBoundCoord(r, &b.Right, flags&boundRight != 0, flags&boundDeltaRight != 0); err != nil {
		return err
	}

	return readBoundCoord(r, &b.Bottom, flags&boundBottom != 0, flags&boundDeltaBottom != 0)
}

func readBoundCoord(r *reader, v *int32, absolute, delta bool) error {
	switch {
	case absolute:
		i, err := r.int16()
		if err != nil {
			return err
		}

		*v = int32(i)
	case delta:
		b, err := r.uint8()
		if err != nil {
			return err
		}

		*v += int32(int8(b))
	}

	return nil
}
