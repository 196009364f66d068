package orders

import "fmt"

func readSwitchSurface(r *reader, o *SwitchSurface) error {
	var err error

	o.Bitmap, err = r.uint16()

	return err
}

func readCreateOffscreenBitmap(r *reader, o *CreateOffscreenBitmap) error {
	flags, err := r.uint16()
	if err != nil {
		return err
	}

	o.ID = flags & 0x7FFF

	if o.Width, err = r.uint16(); err != nil {
		return err
	}

	if o.Height, err = r.uint16(); err != nil {
		return err
	}

	if o.Width == 0 || o.Height == 0 {
		return fmt.Errorf("offscreen bitmap %dx%d: %w", o.Width, o.Height, ErrInvalidEnumerant)
	}

	o.DeleteList = o.DeleteList[:0]

	if flags&0x8000 == 0 {
		return nil
	}

	count, err := r.uint16()
	if err != nil {
		return err
	}

	for i := uint16(0); i < count; i++ {
		index, err := r.uint16()
		if err != nil {
			return err
		}

		o.DeleteList = append(o.DeleteList, index)
	}

	return nil
}

func readStreamBitmapFirst(r *reader, o *StreamBitmapFirst) error {
	var err error

	if o.Flags, err = r.uint8(); err != nil {
		return err
	}

	if o.BPP, err = r.uint8(); err != nil {
		return err
	}

	if o.BPP < 1 || o.BPP > 32 {
		return fmt.Errorf("stream bitmap bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	if o.BitmapType, err = r.uint16(); err != nil {
		return err
	}

	if o.Width, err = r.uint16(); err != nil {
		return err
	}

	if o.Height, err = r.uint16(); err != nil {
		return err
	}

	if o.Flags&StreamBitmapRev2 != 0 {
		if o.TotalSize, err = r.uint32(); err != nil {
			return err
		}
	} else {
		size, err := r.uint16()
		if err != nil {
			return err
		}

		o.TotalSize = uint32(size)
	}

	blockSize, err := r.uint16()
	if err != nil {
		return err
	}

	p, err := r.bytes(int(blockSize))
	if err != nil {
		return err
	}

	o.Block = append(o.Block[:0], p...)

	return nil
}

func readStreamBitmapNext(r *reader, o *StreamBitmapNext) error {
	var err error

	if o.Flags, err = r.uint8(); err != nil {
		return err
	}

	if o.BitmapType, err = r.uint16(); err != nil {
		return err
	}

	blockSize, err := r.uint16()
	if err != nil {
		return err
	}

	p, err := r.bytes(int(blockSize))
	if err != nil {
		return err
	}

	o.Block = append(o.Block[:0], p...)

	return nil
}

func readCreateNineGridBitmap(r *reader, o *CreateNineGridBitmap) error {
	var err error

	if o.BPP, err = r.uint8(); err != nil {
		return err
	}

	if o.BPP < 1 || o.BPP > 32 {
		return fmt.Errorf("nine grid bitmap bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	if o.Bitmap, err = r.uint16(); err != nil {
		return err
	}

	if o.Flags, err = r.uint32(); err != nil {
		return err
	}

	if o.LeftWidth, err = r.uint16(); err != nil {
		return err
	}

	if o.RightWidth, err = r.uint16(); err != nil {
		return err
	}

	if o.TopHeight, err = r.uint16(); err != nil {
		return err
	}

	if o.BottomHeight, err = r.uint16(); err != nil {
		return err
	}

	o.Transparent, err = r.colorRef()

	return err
}

func readGdiPlusFirst(r *reader, o *GdiPlusFirst) error {
	if err := r.skip(1); err != nil { // pad1Octet
		return err
	}

	size, err := r.uint16()
	if err != nil {
		return err
	}

	if o.TotalSize, err = r.uint32(); err != nil {
		return err
	}

	if o.TotalEmfSize, err = r.uint32(); err != nil {
		return err
	}

	p, err := r.bytes(int(size))
	if err != nil {
		return err
	}

	o.Data = append(o.Data[:0], p...)

	return nil
}

func readGdiPlusNext(r *reader, o *GdiPlusNext) error {
	if err := r.skip(1); err != nil { // pad1Octet
		return err
	}

	size, err := r.uint16()
	if err != nil {
		return err
	}

	p, err := r.bytes(int(size))
	if err != nil {
		return err
	}

	o.Data = append(o.Data[:0], p...)

	return nil
}

func readGdiPlusEnd(r *reader, o *GdiPlusEnd) error {
	if err := r.skip(1); err != nil { // pad1Octet
		return err
	}

	size, err := r.uint16()
	if err != nil {
		return err
	}

	if o.TotalSize, err = r.uint32(); err != nil {
		return err
	}

	if o.TotalEmfSize, err = r.uint32(); err != nil {
		return err
	}

	p, err := r.bytes(int(size))
	if err != nil {
		return err
	}

	o.Data = append(o.Data[:0], p...)

	return nil
}

func readGdiPlusCacheFirst(r *reader, o *GdiPlusCacheFirst) error {
	var err error

	if o.Flags, err = r.uint8(); err != nil {
		return err
	}

	if o.CacheType, err = r.uint16(); err != nil {
		return err
	}

	if o.CacheIndex, err = r.uint16(); err != nil {
		return err
	}

	size, err := r.uint16()
	if err != nil {
		return err
	}

	if o.TotalSize, err = r.uint32(); err != nil {
		return err
	}

	p, err := r.bytes(int(size))
	if err != nil {
		return err
	}

	o.Data = append(o.Data[:0], p...)

	return nil
}

func readGdiPlusCacheNext(r *reader, o *GdiPlusCacheNext) error {
	var err error

	if o.Flags, err = r.uint8(); err != nil {
		return err
	}

	if o.CacheType, err = r.uint16(); err != nil {
		return err
	}

	if o.CacheIndex, err = r.uint16(); err != nil {
		return err
	}

	size, err := r.uint16()
	if err != nil {
		return err
	}

	p, err := r.bytes(int(size))
	if err != nil {
		return err
	}

	o.Data = append(o.Data[:0], p...)

	return nil
}

func readGdiPlusCacheEnd(r *reader, o *GdiPlusCacheEnd) error {
	var err error

	if o.Flags, err = r.uint8(); err != nil {
		return err
	}

	if o.CacheType, err = r.uint16(); err != nil {
		return err
	}

	if o.CacheIndex, err = r.uint16(); err != nil {
		return err
	}

	size, err := r.uint16()
	if err != nil {
		return err
	}

	if o.TotalSize, err = r.uint32(); err != nil {
		return err
	}

	p, err := r.bytes(int(size))
	if err != nil {
		return err
	}

	o.Data = append(o.Data[:0], p...)

	return nil
}

// readWindow reads a windowing order. The order size counts the control
// byte and this header, so the remaining body is seven bytes shorter.
func readWindow(r *reader, o *Window) error {
	orderSize, err := r.uint16()
	if err != nil {
		return err
	}

	if orderSize < 7 {
		return fmt.Errorf("window order of %d bytes: %w", orderSize, ErrInvalidEnumerant)
	}

	if o.FieldFlags, err = r.uint32(); err != nil {
		return err
	}

	p, err := r.bytes(int(orderSize) - 7)
	if err != nil {
		return err
	}

	o.Data = append(o.Data[:0], p...)

	return nil
}

func readFrameMarker(r *reader, o *FrameMarker) error {
	var err error

	o.Action, err = r.uint32()

	return err
}
