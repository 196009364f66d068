package orders

import "fmt"

func writeSwitchSurface(w *writer, o *SwitchSurface) error {
	w.uint16(o.Bitmap)

	return nil
}

func writeCreateOffscreenBitmap(w *writer, o *CreateOffscreenBitmap) error {
	if o.Width == 0 || o.Height == 0 {
		return fmt.Errorf("offscreen bitmap %dx%d: %w", o.Width, o.Height, ErrValueOutOfRange)
	}

	if len(o.DeleteList) > 0xFFFF {
		return fmt.Errorf("delete list of %d entries: %w", len(o.DeleteList), ErrValueOutOfRange)
	}

	flags := o.ID & 0x7FFF
	if len(o.DeleteList) > 0 {
		flags |= 0x8000
	}

	w.uint16(flags)
	w.uint16(o.Width)
	w.uint16(o.Height)

	if len(o.DeleteList) > 0 {
		w.uint16(uint16(len(o.DeleteList)))

		for _, index := range o.DeleteList {
			w.uint16(index)
		}
	}

	return nil
}

func writeStreamBitmapFirst(w *writer, o *StreamBitmapFirst) error {
	if o.BPP < 1 || o.BPP > 32 {
		return fmt.Errorf("stream bitmap bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	if len(o.Block) > 0xFFFF {
		return fmt.Errorf("stream bitmap block of %d bytes: %w", len(o.Block), ErrValueOutOfRange)
	}

	w.uint8(o.Flags)
	w.uint8(o.BPP)
	w.uint16(o.BitmapType)
	w.uint16(o.Width)
	w.uint16(o.Height)

	if o.Flags&StreamBitmapRev2 != 0 {
		w.uint32(o.TotalSize)
	} else {
		if o.TotalSize > 0xFFFF {
			return fmt.Errorf("stream bitmap of %d bytes without rev2 flag: %w",
				o.TotalSize, ErrValueOutOfRange)
		}

		w.uint16(uint16(o.TotalSize))
	}

	w.uint16(uint16(len(o.Block)))
	w.bytes(o.Block)

	return nil
}

func writeStreamBitmapNext(w *writer, o *StreamBitmapNext) error {
	if len(o.Block) > 0xFFFF {
		return fmt.Errorf("stream bitmap block of %d bytes: %w", len(o.Block), ErrValueOutOfRange)
	}

	w.uint8(o.Flags)
	w.uint16(o.BitmapType)
	w.uint16(uint16(len(o.Block)))
	w.bytes(o.Block)

	return nil
}

func writeCreateNineGridBitmap(w *writer, o *CreateNineGridBitmap) error {
	if o.BPP < 1 || o.BPP > 32 {
		return fmt.Errorf("nine grid bitmap bpp %d: %w", o.BPP, ErrInvalidEnumerant)
	}

	w.uint8(o.BPP)
	w.uint16(o.Bitmap)
	w.uint32(o.Flags)
	w.uint16(o.LeftWidth)
	w.uint16(o.RightWidth)
	w.uint16(o.TopHeight)
	w.uint16(o.BottomHeight)
	w.colorRef(o.Transparent)

	return nil
}

func writeGdiPlusFirst(w *writer, o *GdiPlusFirst) error {
	if len(o.Data) > 0xFFFF {
		return fmt.Errorf("gdiplus record of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint8(0) // pad1Octet
	w.uint16(uint16(len(o.Data)))
	w.uint32(o.TotalSize)
	w.uint32(o.TotalEmfSize)
	w.bytes(o.Data)

	return nil
}

func writeGdiPlusNext(w *writer, o *GdiPlusNext) error {
	if len(o.Data) > 0xFFFF {
		return fmt.Errorf("gdiplus record of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint8(0) // pad1Octet
	w.uint16(uint16(len(o.Data)))
	w.bytes(o.Data)

	return nil
}

func writeGdiPlusEnd(w *writer, o *GdiPlusEnd) error {
	if len(o.Data) > 0xFFFF {
		return fmt.Errorf("gdiplus record of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint8(0) // pad1Octet
	w.uint16(uint16(len(o.Data)))
	w.uint32(o.TotalSize)
	w.uint32(o.TotalEmfSize)
	w.bytes(o.Data)

	return nil
}

func writeGdiPlusCacheFirst(w *writer, o *GdiPlusCacheFirst) error {
	if len(o.Data) > 0xFFFF {
		return fmt.Errorf("gdiplus record of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint8(o.Flags)
	w.uint16(o.CacheType)
	w.uint16(o.CacheIndex)
	w.uint16(uint16(len(o.Data)))
	w.uint32(o.TotalSize)
	w.bytes(o.Data)

	return nil
}

func writeGdiPlusCacheNext(w *writer, o *GdiPlusCacheNext) error {
	if len(o.Data) > 0xFFFF {
		return fmt.Errorf("gdiplus record of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint8(o.Flags)
	w.uint16(o.CacheType)
	w.uint16(o.CacheIndex)
	w.uint16(uint16(len(o.Data)))
	w.bytes(o.Data)

	return nil
}

func writeGdiPlusCacheEnd(w *writer, o *GdiPlusCacheEnd) error {
	if len(o.Data) > 0xFFFF {
		return fmt.Errorf("gdiplus record of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint8(o.Flags)
	w.uint16(o.CacheType)
	w.uint16(o.CacheIndex)
	w.uint16(uint16(len(o.Data)))
	w.uint32(o.TotalSize)
	w.bytes(o.Data)

	return nil
}

func writeWindow(w *writer, o *Window) error {
	if len(o.Data)+7 > 0xFFFF {
		return fmt.Errorf("window order of %d bytes: %w", len(o.Data), ErrValueOutOfRange)
	}

	w.uint16(uint16(len(o.Data) + 7))
	w.uint32(o.FieldFlags)
	w.bytes(o.Data)

	return nil
}

func writeFrameMarker(w *writer, o *FrameMarker) error {
	w.uint32(o.Action)

	return nil
}

// EncodeAltSec serializes an alternate secondary drawing order. The order
// type rides in the upper six bits of the control byte; the standard bit
// stays clear.
func EncodeAltSec(order AltSecOrder) ([]byte, error) {
	var w writer

	w.uint8(byte(order.Type()) << 2)

	var err error

	switch o := order.(type) {
	case *SwitchSurface:
		err = writeSwitchSurface(&w, o)
	case *CreateOffscreenBitmap:
		err = writeCreateOffscreenBitmap(&w, o)
	case *StreamBitmapFirst:
		err = writeStreamBitmapFirst(&w, o)
	case *StreamBitmapNext:
		err = writeStreamBitmapNext(&w, o)
	case *CreateNineGridBitmap:
		err = writeCreateNineGridBitmap(&w, o)
	case *GdiPlusFirst:
		err = writeGdiPlusFirst(&w, o)
	case *GdiPlusNext:
		err = writeGdiPlusNext(&w, o)
	case *GdiPlusEnd:
		err = writeGdiPlusEnd(&w, o)
	case *GdiPlusCacheFirst:
		err = writeGdiPlusCacheFirst(&w, o)
	case *GdiPlusCacheNext:
		err = writeGdiPlusCacheNext(&w, o)
	case *GdiPlusCacheEnd:
		err = writeGdiPlusCacheEnd(&w, o)
	case *Window:
		err = writeWindow(&w, o)
	case *CompDeskFirst:
	case *FrameMarker:
		err = writeFrameMarker(&w, o)
	default:
		return nil, fmt.Errorf("alternate secondary order %T: %w", order, ErrInvalidOrderType)
	}

	if err != nil {
		return nil, err
	}

	return w.data(), nil
}
