package orders

// Stream bitmap flags (MS-RDPEGDI 2.2.2.2.1.3.5.1).
const (
	StreamBitmapEnd        = 0x01
	StreamBitmapCompressed = 0x02
	StreamBitmapRev2       = 0x04
)

// SwitchSurface redirects subsequent drawing orders to another surface.
// Bitmap 0xFFFF is the primary screen, other values name offscreen
// bitmaps created with CreateOffscreenBitmap.
type SwitchSurface struct {
	Bitmap uint16
}

func (o *SwitchSurface) Type() AltSecType { return TypeSwitchSurface }

// CreateOffscreenBitmap allocates an offscreen rendering surface and
// optionally lists surfaces the client may evict.
type CreateOffscreenBitmap struct {
	ID         uint16
	Width      uint16
	Height     uint16
	DeleteList []uint16
}

func (o *CreateOffscreenBitmap) Type() AltSecType { return TypeCreateOffscreenBitmap }

// StreamBitmapFirst opens a streamed bitmap transfer and carries its first
// block.
type StreamBitmapFirst struct {
	Flags      byte
	BPP        byte
	BitmapType uint16
	Width      uint16
	Height     uint16
	TotalSize  uint32
	Block      []byte
}

func (o *StreamBitmapFirst) Type() AltSecType { return TypeStreamBitmapFirst }

// StreamBitmapNext carries a continuation block of a streamed bitmap.
type StreamBitmapNext struct {
	Flags      byte
	BitmapType uint16
	Block      []byte
}

func (o *StreamBitmapNext) Type() AltSecType { return TypeStreamBitmapNext }

// CreateNineGridBitmap allocates a nine-grid rendering surface from the
// most recently streamed bitmap.
type CreateNineGridBitmap struct {
	BPP          byte
	Bitmap       uint16
	Flags        uint32
	LeftWidth    uint16
	RightWidth   uint16
	TopHeight    uint16
	BottomHeight uint16
	Transparent  uint32
}

func (o *CreateNineGridBitmap) Type() AltSecType { return TypeCreateNineGridBitmap }

// GdiPlusFirst opens a GDI+ EMF+ record transfer.
type GdiPlusFirst struct {
	TotalSize    uint32
	TotalEmfSize uint32
	Data         []byte
}

func (o *GdiPlusFirst) Type() AltSecType { return TypeGdiPlusFirst }

// GdiPlusNext carries a continuation block of a GDI+ record transfer.
type GdiPlusNext struct {
	Data []byte
}

func (o *GdiPlusNext) Type() AltSecType { return TypeGdiPlusNext }

// GdiPlusEnd carries the final block of a GDI+ record transfer.
type GdiPlusEnd struct {
	TotalSize    uint32
	TotalEmfSize uint32
	Data         []byte
}

func (o *GdiPlusEnd) Type() AltSecType { return TypeGdiPlusEnd }

// GdiPlusCacheFirst opens a GDI+ cache entry transfer.
type GdiPlusCacheFirst struct {
	Flags      byte
	CacheType  uint16
	CacheIndex uint16
	TotalSize  uint32
	Data       []byte
}

func (o *GdiPlusCacheFirst) Type() AltSecType { return TypeGdiPlusCacheFirst }

// GdiPlusCacheNext carries a continuation block of a GDI+ cache entry.
type GdiPlusCacheNext struct {
	Flags      byte
	CacheType  uint16
	CacheIndex uint16
	Data       []byte
}

func (o *GdiPlusCacheNext) Type() AltSecType { return TypeGdiPlusCacheNext }

// GdiPlusCacheEnd carries the final block of a GDI+ cache entry.
type GdiPlusCacheEnd struct {
	Flags      byte
	CacheType  uint16
	CacheIndex uint16
	TotalSize  uint32
	Data       []byte
}

func (o *GdiPlusCacheEnd) Type() AltSecType { return TypeGdiPlusCacheEnd }

// Window carries a desktop composition windowing order (MS-RDPERP
// 2.2.1.3). The field flags select the record variant; the body is kept
// opaque.
type Window struct {
	FieldFlags uint32
	Data       []byte
}

func (o *Window) Type() AltSecType { return TypeWindow }

// CompDeskFirst marks the start of a desktop composition update. The
// order has no body.
type CompDeskFirst struct{}

func (o *CompDeskFirst) Type() AltSecType { return TypeCompDeskFirst }

// Frame marker actions.
const (
	FrameStart uint32 = 0x00000000
	FrameEnd   uint32 = 0x00000001
)

// FrameMarker brackets a logical frame of drawing orders.
type FrameMarker struct {
	Action uint32
}

func (o *FrameMarker) Type() AltSecType { return TypeFrameMarker }
