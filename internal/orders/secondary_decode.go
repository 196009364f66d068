package orders

import "fmt"

func readCacheBitmapV1(r *reader, extraFlags uint16, compressed bool, o *CacheBitmapV1) error {
	var err error

	if o.CacheID, err = r.uint8(); err != nil {
		return err
	}

	if err = r.skip(1); err != nil { // pad1Octet
		return err
	}

	if o.Width, err = r.uint8(); err != nil {
		return err
	}

	if o.Height, err = r.uint8(); err != nil {
		return err
	}

	if o.BPP, err = r.uint8(); err != nil {
		return err
	}

	if o.BPP < 1 || o.BPP > 32 {
		return fmt.Errorf("bitmap bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	bitmapLength, err := r.uint16()
	if err != nil {
		return err
	}

	if o.CacheIndex, err = r.uint16(); err != nil {
		return err
	}

	o.Compressed = compressed
	o.CompressionHeader = o.CompressionHeader[:0]

	if compressed && extraFlags&NoBitmapCompressionHeader == 0 {
		hdr, err := r.bytes(8)
		if err != nil {
			return err
		}

		o.CompressionHeader = append(o.CompressionHeader, hdr...)
		bitmapLength -= 8
	}

	if bitmapLength == 0 {
		return fmt.Errorf("empty cache bitmap: %w", ErrInvalidEnumerant)
	}

	p, err := r.bytes(int(bitmapLength))
	if err != nil {
		return err
	}

	o.Bitmap = append(o.Bitmap[:0], p...)

	return nil
}

func readCacheBitmapV2(r *reader, extraFlags uint16, compressed bool, o *CacheBitmapV2) error {
	o.CacheID = byte(extraFlags & 0x0003)
	o.Flags = (extraFlags & 0xFF80) >> 7

	bpp, ok := cbr2BPP(byte((extraFlags & 0x0078) >> 3))
	if !ok {
		return fmt.Errorf("bitsPerPixelId %#x: %w", (extraFlags&0x0078)>>3, ErrInvalidEnumerant)
	}

	o.BPP = bpp

	var err error

	if o.Flags&CacheBitmapV2PersistentKey != 0 {
		if o.Key1, err = r.uint32(); err != nil {
			return err
		}

		if o.Key2, err = r.uint32(); err != nil {
			return err
		}
	}

	if o.Width, err = r.twoByteUnsigned(); err != nil {
		return err
	}

	if o.Flags&CacheBitmapV2HeightSameAsWidth != 0 {
		o.Height = o.Width
	} else if o.Height, err = r.twoByteUnsigned(); err != nil {
		return err
	}

	bitmapLength, err := r.fourByteUnsigned()
	if err != nil {
		return err
	}

	if o.CacheIndex, err = r.twoByteUnsigned(); err != nil {
		return err
	}

	if o.Flags&CacheBitmapV2DoNotCache != 0 {
		o.CacheIndex = BitmapCacheWaitingListIndex
	}

	o.Compressed = compressed

	if compressed && o.Flags&CacheBitmapV2NoCompressionHeader == 0 {
		if o.CompFirstRowSize, err = r.uint16(); err != nil {
			return err
		}

		if o.CompMainBodySize, err = r.uint16(); err != nil {
			return err
		}

		if o.ScanWidth, err = r.uint16(); err != nil {
			return err
		}

		if o.UncompressedSize, err = r.uint16(); err != nil {
			return err
		}

		bitmapLength = uint32(o.CompMainBodySize)
	}

	if bitmapLength == 0 {
		return fmt.Errorf("empty cache bitmap: %w", ErrInvalidEnumerant)
	}

	p, err := r.bytes(int(bitmapLength))
	if err != nil {
		return err
	}

	o.Bitmap = append(o.Bitmap[:0], p...)

	return nil
}

func readCacheBitmapV3(r *reader, extraFlags uint16, o *CacheBitmapV3) error {
	o.CacheID = byte(extraFlags & 0x0003)
	o.Flags = (extraFlags & 0xFF80) >> 7

	bpp, ok := cbr2BPP(byte((extraFlags & 0x0078) >> 3))
	if !ok {
		return fmt.Errorf("bitsPerPixelId %#x: %w", (extraFlags&0x0078)>>3, ErrInvalidEnumerant)
	}

	o.BPP = bpp

	var err error

	if o.CacheIndex, err = r.uint16(); err != nil {
		return err
	}

	if o.Key1, err = r.uint32(); err != nil {
		return err
	}

	if o.Key2, err = r.uint32(); err != nil {
		return err
	}

	if o.Bitmap.BPP, err = r.uint8(); err != nil {
		return err
	}

	if o.Bitmap.BPP < 1 || o.Bitmap.BPP > 32 {
		return fmt.Errorf("bitmap bpp %d: %w", o.Bitmap.BPP, ErrInvalidEnumerant)
	}

	if err = r.skip(2); err != nil { // reserved1, reserved2
		return err
	}

	if o.Bitmap.CodecID, err = r.uint8(); err != nil {
		return err
	}

	if o.Bitmap.Width, err = r.uint16(); err != nil {
		return err
	}

	if o.Bitmap.Height, err = r.uint16(); err != nil {
		return err
	}

	length, err := r.uint32()
	if err != nil {
		return err
	}

	if length == 0 {
		return fmt.Errorf("empty cache bitmap: %w", ErrInvalidEnumerant)
	}

	p, err := r.bytes(int(length))
	if err != nil {
		return err
	}

	o.Bitmap.Data = append(o.Bitmap.Data[:0], p...)

	return nil
}

func readCacheColorTable(r *reader, o *CacheColorTable) error {
	var err error

	if o.CacheIndex, err = r.uint8(); err != nil {
		return err
	}

	numberColors, err := r.uint16()
	if err != nil {
		return err
	}

	if numberColors != 256 {
		return fmt.Errorf("color table with %d entries: %w", numberColors, ErrInvalidEnumerant)
	}

	for i := range o.Colors {
		if o.Colors[i], err = r.colorRef(); err != nil {
			return err
		}
	}

	return nil
}

// glyphBitmapSize gives the byte size of a 1bpp glyph bitmap: width bits
// rounded to whole bytes per row, rows multiplied out and the total padded
// to a 4-byte boundary.
func glyphBitmapSize(width, height uint32) int {
	cb := int((width+7)/8) * int(height)
	if cb%4 != 0 {
		cb += 4 - cb%4
	}

	return cb
}

func readCacheGlyph(r *reader, extraFlags uint16, o *CacheGlyph) error {
	var err error

	if o.CacheID, err = r.uint8(); err != nil {
		return err
	}

	count, err := r.uint8()
	if err != nil {
		return err
	}

	glyphs := make([]GlyphData, count)

	for i := range glyphs {
		g := &glyphs[i]

		if g.CacheIndex, err = r.uint16(); err != nil {
			return err
		}

		if g.X, err = r.int16(); err != nil {
			return err
		}

		if g.Y, err = r.int16(); err != nil {
			return err
		}

		if g.Width, err = r.uint16(); err != nil {
			return err
		}

		if g.Height, err = r.uint16(); err != nil {
			return err
		}

		p, err := r.bytes(glyphBitmapSize(uint32(g.Width), uint32(g.Height)))
		if err != nil {
			return err
		}

		g.Bitmap = append([]byte(nil), p...)
	}

	o.Glyphs = glyphs
	o.UnicodeChars = o.UnicodeChars[:0]

	if extraFlags&GlyphUnicodePresent != 0 && count > 0 {
		for i := byte(0); i < count; i++ {
			ch, err := r.uint16()
			if err != nil {
				return err
			}

			o.UnicodeChars = append(o.UnicodeChars, ch)
		}
	}

	return nil
}

func readCacheGlyphV2(r *reader, extraFlags uint16, o *CacheGlyphV2) error {
	o.CacheID = byte(extraFlags & 0x000F)
	o.Flags = byte((extraFlags & 0x00F0) >> 4)
	count := byte((extraFlags & 0xFF00) >> 8)

	glyphs := make([]GlyphDataV2, count)

	var err error

	for i := range glyphs {
		g := &glyphs[i]

		if g.CacheIndex, err = r.uint8(); err != nil {
			return err
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

		g.Width = uint32(cx)
		g.Height = uint32(cy)

		p, err := r.bytes(glyphBitmapSize(g.Width, g.Height))
		if err != nil {
			return err
		}

		g.Bitmap = append([]byte(nil), p...)
	}

	o.Glyphs = glyphs
	o.UnicodeChars = o.UnicodeChars[:0]

	if extraFlags&GlyphUnicodePresent != 0 && count > 0 {
		for i := byte(0); i < count; i++ {
			ch, err := r.uint16()
			if err != nil {
				return err
			}

			o.UnicodeChars = append(o.UnicodeChars, ch)
		}
	}

	return nil
}

// decompressBrush expands a 2-bit-indexed 8x8 brush: 16 index bytes
// followed by a 4-entry palette. Rows are stored bottom-up and flipped to
// top-down on output. Only seven rows are encoded; the top output
// scanline stays zero, and the last two index bytes are never read. The
// unread tail is left in the stream for the frame realignment to skip.
func (r *reader) decompressBrush(bpp byte) ([]byte, error) {
	bytesPerPixel := (int(bpp) + 1) / 8

	if err := r.require(16 + 4*bytesPerPixel); err != nil {
		return nil, err
	}

	palette := r.data[r.pos+16 : r.pos+16+4*bytesPerPixel]

	// Two index bytes per encoded row.
	indices, err := r.bytes(14)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 64*bytesPerPixel)

	for y := 0; y < 7; y++ {
		for x := 0; x < 8; x++ {
			b := indices[y*2+x/4]
			idx := int(b>>((3-x%4)*2)) & 0x03
			dst := (8*(7-y) + x) * bytesPerPixel
			copy(out[dst:dst+bytesPerPixel], palette[idx*bytesPerPixel:(idx+1)*bytesPerPixel])
		}
	}

	return out, nil
}

func readCacheBrush(r *reader, o *CacheBrush) error {
	var err error

	if o.Index, err = r.uint8(); err != nil {
		return err
	}

	bmf, err := r.uint8()
	if err != nil {
		return err
	}

	bpp, ok := bmfBPP(bmf)
	if !ok {
		return fmt.Errorf("brush bitmap format %#x: %w", bmf, ErrInvalidEnumerant)
	}

	o.BPP = bpp

	if o.Width, err = r.uint8(); err != nil {
		return err
	}

	if o.Height, err = r.uint8(); err != nil {
		return err
	}

	if o.Style, err = r.uint8(); err != nil {
		return err
	}

	if o.Length, err = r.uint8(); err != nil {
		return err
	}

	o.Data = o.Data[:0]

	if o.Width != 8 || o.Height != 8 {
		return nil
	}

	if o.BPP == 1 {
		if o.Length != 8 {
			return fmt.Errorf("1bpp brush of length %d: %w", o.Length, ErrInvalidEnumerant)
		}

		p, err := r.bytes(8)
		if err != nil {
			return err
		}

		// rows are encoded bottom-up
		o.Data = append(o.Data, make([]byte, 8)...)
		for i := 0; i < 8; i++ {
			o.Data[7-i] = p[i]
		}

		return nil
	}

	compressed := (bmf == 3 && o.Length == 20) ||
		(bmf == 4 && o.Length == 24) ||
		(bmf == 5 && o.Length == 28) ||
		(bmf == 6 && o.Length == 32)

	if compressed {
		data, err := r.decompressBrush(o.BPP)
		if err != nil {
			return err
		}

		o.Data = append(o.Data, data...)

		return nil
	}

	scanline := int(o.BPP/8) * 8

	p, err := r.bytes(scanline * 8)
	if err != nil {
		return err
	}

	o.Data = append(o.Data, make([]byte, scanline*8)...)
	for i := 0; i < 8; i++ {
		copy(o.Data[(7-i)*scanline:(8-i)*scanline], p[i*scanline:(i+1)*scanline])
	}

	return nil
}
