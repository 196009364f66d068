package orders

import "fmt"

func writeCacheBitmapV1(w *writer, o *CacheBitmapV1) (uint16, error) {
	if o.BPP < 1 || o.BPP > 32 {
		return 0, fmt.Errorf("bitmap bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	if len(o.Bitmap) > 0xFFFF {
		return 0, fmt.Errorf("bitmap of %d bytes: %w", len(o.Bitmap), ErrValueOutOfRange)
	}

	w.uint8(o.CacheID)
	w.uint8(0) // pad1Octet
	w.uint8(o.Width)
	w.uint8(o.Height)
	w.uint8(o.BPP)
	w.uint16(uint16(len(o.Bitmap)))
	w.uint16(o.CacheIndex)
	w.bytes(o.Bitmap)

	// the compression header is never emitted
	return NoBitmapCompressionHeader, nil
}

func writeCacheBitmapV2(w *writer, o *CacheBitmapV2) (uint16, error) {
	bppID, ok := bppCBR2(o.BPP)
	if !ok {
		return 0, fmt.Errorf("bitmap bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	extraFlags := uint16(o.CacheID&0x03) | uint16(bppID)<<3 | (o.Flags << 7 & 0xFF80)

	if o.Flags&CacheBitmapV2PersistentKey != 0 {
		w.uint32(o.Key1)
		w.uint32(o.Key2)
	}

	if err := w.twoByteUnsigned(o.Width); err != nil {
		return 0, err
	}

	if o.Flags&CacheBitmapV2HeightSameAsWidth == 0 {
		if err := w.twoByteUnsigned(o.Height); err != nil {
			return 0, err
		}
	}

	withHeader := o.Compressed && o.Flags&CacheBitmapV2NoCompressionHeader == 0

	bitmapLength := uint32(len(o.Bitmap))
	if withHeader {
		if int(o.CompMainBodySize) != len(o.Bitmap) {
			return 0, fmt.Errorf("main body size %d for %d bitmap bytes: %w",
				o.CompMainBodySize, len(o.Bitmap), ErrValueOutOfRange)
		}

		bitmapLength = uint32(o.CompMainBodySize)
	}

	if err := w.fourByteUnsigned(bitmapLength); err != nil {
		return 0, err
	}

	cacheIndex := o.CacheIndex
	if o.Flags&CacheBitmapV2DoNotCache != 0 {
		cacheIndex = BitmapCacheWaitingListIndex
	}

	if err := w.twoByteUnsigned(cacheIndex); err != nil {
		return 0, err
	}

	if withHeader {
		w.uint16(o.CompFirstRowSize)
		w.uint16(o.CompMainBodySize)
		w.uint16(o.ScanWidth)
		w.uint16(o.UncompressedSize)
	}

	w.bytes(o.Bitmap)

	return extraFlags, nil
}

func writeCacheBitmapV3(w *writer, o *CacheBitmapV3) (uint16, error) {
	bppID, ok := bppCBR2(o.BPP)
	if !ok {
		return 0, fmt.Errorf("bitmap bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	extraFlags := uint16(o.CacheID&0x03) | uint16(bppID)<<3 | (o.Flags << 7 & 0xFF80)

	w.uint16(o.CacheIndex)
	w.uint32(o.Key1)
	w.uint32(o.Key2)
	w.uint8(o.Bitmap.BPP)
	w.uint8(0) // reserved1
	w.uint8(0) // reserved2
	w.uint8(o.Bitmap.CodecID)
	w.uint16(o.Bitmap.Width)
	w.uint16(o.Bitmap.Height)
	w.uint32(uint32(len(o.Bitmap.Data)))
	w.bytes(o.Bitmap.Data)

	return extraFlags, nil
}

func writeCacheColorTable(w *writer, o *CacheColorTable) (uint16, error) {
	w.uint8(o.CacheIndex)
	w.uint16(uint16(len(o.Colors)))

	for _, c := range o.Colors {
		w.colorRef(c)
	}

	return 0, nil
}

func writeCacheGlyph(w *writer, o *CacheGlyph) (uint16, error) {
	if len(o.Glyphs) > 0xFF {
		return 0, fmt.Errorf("%d glyphs: %w", len(o.Glyphs), ErrValueOutOfRange)
	}

	w.uint8(o.CacheID)
	w.uint8(byte(len(o.Glyphs)))

	for i := range o.Glyphs {
		g := &o.Glyphs[i]

		cb := glyphBitmapSize(uint32(g.Width), uint32(g.Height))
		if len(g.Bitmap) != cb {
			return 0, fmt.Errorf("glyph bitmap of %d bytes, want %d: %w", len(g.Bitmap), cb, ErrValueOutOfRange)
		}

		w.uint16(g.CacheIndex)
		w.int16(g.X)
		w.int16(g.Y)
		w.uint16(g.Width)
		w.uint16(g.Height)
		w.bytes(g.Bitmap)
	}

	var extraFlags uint16

	if len(o.UnicodeChars) > 0 {
		if len(o.UnicodeChars) != len(o.Glyphs) {
			return 0, fmt.Errorf("%d unicode chars for %d glyphs: %w",
				len(o.UnicodeChars), len(o.Glyphs), ErrValueOutOfRange)
		}

		extraFlags |= GlyphUnicodePresent

		for _, ch := range o.UnicodeChars {
			w.uint16(ch)
		}
	}

	return extraFlags, nil
}

func writeCacheGlyphV2(w *writer, o *CacheGlyphV2) (uint16, error) {
	if len(o.Glyphs) > 0xFF {
		return 0, fmt.Errorf("%d glyphs: %w", len(o.Glyphs), ErrValueOutOfRange)
	}

	extraFlags := uint16(o.CacheID&0x0F) | uint16(o.Flags&0x0F)<<4 | uint16(len(o.Glyphs))<<8

	for i := range o.Glyphs {
		g := &o.Glyphs[i]

		cb := glyphBitmapSize(g.Width, g.Height)
		if len(g.Bitmap) != cb {
			return 0, fmt.Errorf("glyph bitmap of %d bytes, want %d: %w", len(g.Bitmap), cb, ErrValueOutOfRange)
		}

		if g.Width > 0x7FFF || g.Height > 0x7FFF {
			return 0, fmt.Errorf("glyph %dx%d: %w", g.Width, g.Height, ErrValueOutOfRange)
		}

		w.uint8(g.CacheIndex)

		if err := w.twoByteSigned(g.X); err != nil {
			return 0, err
		}

		if err := w.twoByteSigned(g.Y); err != nil {
			return 0, err
		}

		if err := w.twoByteUnsigned(uint16(g.Width)); err != nil {
			return 0, err
		}

		if err := w.twoByteUnsigned(uint16(g.Height)); err != nil {
			return 0, err
		}

		w.bytes(g.Bitmap)
	}

	if len(o.UnicodeChars) > 0 {
		if len(o.UnicodeChars) != len(o.Glyphs) {
			return 0, fmt.Errorf("%d unicode chars for %d glyphs: %w",
				len(o.UnicodeChars), len(o.Glyphs), ErrValueOutOfRange)
		}

		extraFlags |= GlyphUnicodePresent

		for _, ch := range o.UnicodeChars {
			w.uint16(ch)
		}
	}

	return extraFlags, nil
}

func writeCacheBrush(w *writer, o *CacheBrush) (uint16, error) {
	bmf, ok := bppBMF(o.BPP)
	if !ok {
		return 0, fmt.Errorf("brush bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	w.uint8(o.Index)
	w.uint8(bmf)
	w.uint8(o.Width)
	w.uint8(o.Height)
	w.uint8(o.Style)
	w.uint8(o.Length)

	if o.Width != 8 || o.Height != 8 {
		return 0, nil
	}

	if o.BPP == 1 {
		if o.Length != 8 {
			return 0, fmt.Errorf("1bpp brush of length %d: %w", o.Length, ErrInvalidEnumerant)
		}

		if len(o.Data) < 8 {
			return 0, fmt.Errorf("brush data of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
		}

		for i := 0; i < 8; i++ {
			w.uint8(o.Data[7-i])
		}

		return 0, nil
	}

	compressed := (bmf == 3 && o.Length == 20) ||
		(bmf == 4 && o.Length == 24) ||
		(bmf == 5 && o.Length == 28) ||
		(bmf == 6 && o.Length == 32)

	if compressed {
		return 0, fmt.Errorf("compressed brush: %w", ErrInvalidEnumerant)
	}

	scanline := int(o.BPP/8) * 8

	if len(o.Data) < scanline*8 {
		return 0, fmt.Errorf("brush data of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	for i := 0; i < 8; i++ {
		w.bytes(o.Data[(7-i)*scanline : (8-i)*scanline])
	}

	return 0, nil
}

// EncodeSecondary serializes a secondary drawing order with its header.
// The emitted orderLength counts the bytes after the five header fields
// less seven, matching the offset the receiver adds back.
func EncodeSecondary(order SecondaryOrder) ([]byte, error) {
	var (
		body       writer
		extraFlags uint16
		err        error
	)

	switch o := order.(type) {
	case *CacheBitmapV1:
		extraFlags, err = writeCacheBitmapV1(&body, o)
	case *CacheBitmapV2:
		extraFlags, err = writeCacheBitmapV2(&body, o)
	case *CacheBitmapV3:
		extraFlags, err = writeCacheBitmapV3(&body, o)
	case *CacheColorTable:
		extraFlags, err = writeCacheColorTable(&body, o)
	case *CacheGlyph:
		extraFlags, err = writeCacheGlyph(&body, o)
	case *CacheGlyphV2:
		extraFlags, err = writeCacheGlyphV2(&body, o)
	case *CacheBrush:
		extraFlags, err = writeCacheBrush(&body, o)
	default:
		return nil, fmt.Errorf("secondary order %T: %w", order, ErrInvalidOrderType)
	}

	if err != nil {
		return nil, err
	}

	if body.len() < secondaryHeaderAdjustment {
		return nil, fmt.Errorf("secondary order of %d bytes: %w", body.len(), ErrValueOutOfRange)
	}

	if body.len()-secondaryHeaderAdjustment > 0x7FFF {
		return nil, fmt.Errorf("secondary order of %d bytes: %w", body.len(), ErrValueOutOfRange)
	}

	var w writer

	w.uint8(ControlStandard | ControlSecondary)
	w.uint16(uint16(body.len() - secondaryHeaderAdjustment))
	w.uint16(extraFlags)
	w.uint8(byte(order.Type()))
	w.bytes(body.data())

	return w.data(), nil
}
