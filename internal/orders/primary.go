package orders

// Primary orders are differential: the decoder keeps one instance of every
// order per connection and each incoming order rewrites only the fields its
// presence mask names. The structs below therefore double as decoder state;
// handlers must copy anything they keep past the callback.

// Background mix modes carried by PolygonCB (MS-RDPEGDI 2.2.2.2.1.1.2.17).
const (
	BackModeTransparent = 1
	BackModeOpaque      = 2
)

// DstBlt paints a rectangle with a raster operation on the destination
// alone.
type DstBlt struct {
	Left   int32
	Top    int32
	Width  int32
	Height int32
	ROP    byte
}

func (*DstBlt) Type() PrimaryType { return TypeDstBlt }

// PatBlt paints a rectangle with a brush pattern combined with the
// destination.
type PatBlt struct {
	Left      int32
	Top       int32
	Width     int32
	Height    int32
	ROP       byte
	BackColor uint32
	ForeColor uint32
	Brush     Brush
}

func (*PatBlt) Type() PrimaryType { return TypePatBlt }

// ScrBlt copies a screen rectangle onto another.
type ScrBlt struct {
	Left   int32
	Top    int32
	Width  int32
	Height int32
	ROP    byte
	XSrc   int32
	YSrc   int32
}

func (*ScrBlt) Type() PrimaryType { return TypeScrBlt }

// DrawNineGrid renders a cached nine-grid bitmap into a rectangle.
type DrawNineGrid struct {
	SrcLeft   int32
	SrcTop    int32
	SrcRight  int32
	SrcBottom int32
	BitmapID  uint16
}

func (*DrawNineGrid) Type() PrimaryType { return TypeDrawNineGrid }

// MultiDrawNineGrid is DrawNineGrid clipped to a set of rectangles.
type MultiDrawNineGrid struct {
	SrcLeft    int32
	SrcTop     int32
	SrcRight   int32
	SrcBottom  int32
	BitmapID   uint16
	Rectangles []DeltaRect
}

func (*MultiDrawNineGrid) Type() PrimaryType { return TypeMultiDrawNineGrid }

// LineTo draws a single line segment.
type LineTo struct {
	BackMode  uint16
	XStart    int32
	YStart    int32
	XEnd      int32
	YEnd      int32
	BackColor uint32
	ROP2      byte
	PenStyle  byte
	PenWidth  byte
	PenColor  uint32
}

func (*LineTo) Type() PrimaryType { return TypeLineTo }

// OpaqueRect fills a rectangle with a solid color. The color updates per
// channel: each of the three optional color fields replaces one byte of
// the persisted value.
type OpaqueRect struct {
	Left   int32
	Top    int32
	Width  int32
	Height int32
	Color  uint32
}

func (*OpaqueRect) Type() PrimaryType { return TypeOpaqueRect }

// SaveBitmap saves or restores a desktop region in the peer's save area.
type SaveBitmap struct {
	SavedBitmapPosition uint32
	Left                int32
	Top                 int32
	Right               int32
	Bottom              int32
	Operation           byte
}

func (*SaveBitmap) Type() PrimaryType { return TypeSaveBitmap }

// MemBlt copies a bitmap cache entry onto the screen. The wire cacheId
// carries the color table index in its high byte; decoding splits it into
// CacheID and ColorIndex.
type MemBlt struct {
	CacheID    uint16
	Left       int32
	Top        int32
	Width      int32
	Height     int32
	ROP        byte
	XSrc       int32
	YSrc       int32
	CacheIndex uint16
	ColorIndex uint16
}

func (*MemBlt) Type() PrimaryType { return TypeMemBlt }

// Mem3Blt is MemBlt with a brush as third operand.
type Mem3Blt struct {
	CacheID    uint16
	Left       int32
	Top        int32
	Width      int32
	Height     int32
	ROP        byte
	XSrc       int32
	YSrc       int32
	BackColor  uint32
	ForeColor  uint32
	Brush      Brush
	CacheIndex uint16
	ColorIndex uint16
}

func (*Mem3Blt) Type() PrimaryType { return TypeMem3Blt }

// MultiDstBlt is DstBlt applied to a set of rectangles.
type MultiDstBlt struct {
	Left       int32
	Top        int32
	Width      int32
	Height     int32
	ROP        byte
	Rectangles []DeltaRect
}

func (*MultiDstBlt) Type() PrimaryType { return TypeMultiDstBlt }

// MultiPatBlt is PatBlt applied to a set of rectangles.
type MultiPatBlt struct {
	Left       int32
	Top        int32
	Width      int32
	Height     int32
	ROP        byte
	BackColor  uint32
	ForeColor  uint32
	Brush      Brush
	Rectangles []DeltaRect
}

func (*MultiPatBlt) Type() PrimaryType { return TypeMultiPatBlt }

// MultiScrBlt is ScrBlt applied to a set of rectangles.
type MultiScrBlt struct {
	Left       int32
	Top        int32
	Width      int32
	Height     int32
	ROP        byte
	XSrc       int32
	YSrc       int32
	Rectangles []DeltaRect
}

func (*MultiScrBlt) Type() PrimaryType { return TypeMultiScrBlt }

// MultiOpaqueRect is OpaqueRect applied to a set of rectangles.
type MultiOpaqueRect struct {
	Left       int32
	Top        int32
	Width      int32
	Height     int32
	Color      uint32
	Rectangles []DeltaRect
}

func (*MultiOpaqueRect) Type() PrimaryType { return TypeMultiOpaqueRect }

// FastIndex draws glyph cache entries referenced by index bytes.
type FastIndex struct {
	CacheID   byte
	ULCharInc byte
	FlAccel   byte
	BackColor uint32
	ForeColor uint32
	BkLeft    int32
	BkTop     int32
	BkRight   int32
	BkBottom  int32
	OpLeft    int32
	OpTop     int32
	OpRight   int32
	OpBottom  int32
	X         int32
	Y         int32
	Data      []byte
}

func (*FastIndex) Type() PrimaryType { return TypeFastIndex }

// FastGlyph draws a single glyph carried inline, caching it as a side
// effect. Glyph holds the parsed payload when the order carries one.
type FastGlyph struct {
	CacheID   byte
	ULCharInc byte
	FlAccel   byte
	BackColor uint32
	ForeColor uint32
	BkLeft    int32
	BkTop     int32
	BkRight   int32
	BkBottom  int32
	OpLeft    int32
	OpTop     int32
	OpRight   int32
	OpBottom  int32
	X         int32
	Y         int32
	Data      []byte
	Glyph     GlyphDataV2
}

func (*FastGlyph) Type() PrimaryType { return TypeFastGlyph }

// PolygonSC fills a polygon with a solid color.
type PolygonSC struct {
	XStart     int32
	YStart     int32
	ROP2       byte
	FillMode   byte
	BrushColor uint32
	Points     []DeltaPoint
}

func (*PolygonSC) Type() PrimaryType { return TypePolygonSC }

// PolygonCB fills a polygon with a brush. The wire rop2 byte carries the
// background mix mode in its top bit; decoding splits it into ROP2 and
// BackMode.
type PolygonCB struct {
	XStart    int32
	YStart    int32
	ROP2      byte
	BackMode  uint16
	FillMode  byte
	BackColor uint32
	ForeColor uint32
	Brush     Brush
	Points    []DeltaPoint
}

func (*PolygonCB) Type() PrimaryType { return TypePolygonCB }

// Polyline draws connected line segments from a start point through a
// series of deltas.
type Polyline struct {
	XStart   int32
	YStart   int32
	ROP2     byte
	PenColor uint32
	Points   []DeltaPoint
}

func (*Polyline) Type() PrimaryType { return TypePolyline }

// EllipseSC draws an ellipse outline or fill with a solid color.
type EllipseSC struct {
	Left     int32
	Top      int32
	Right    int32
	Bottom   int32
	ROP2     byte
	FillMode byte
	Color    uint32
}

func (*EllipseSC) Type() PrimaryType { return TypeEllipseSC }

// EllipseCB draws an ellipse with a brush.
type EllipseCB struct {
	Left      int32
	Top       int32
	Right     int32
	Bottom    int32
	ROP2      byte
	FillMode  byte
	BackColor uint32
	ForeColor uint32
	Brush     Brush
}

func (*EllipseCB) Type() PrimaryType { return TypeEllipseCB }

// GlyphIndex draws glyph cache entries with full bounding and brush
// control.
type GlyphIndex struct {
	CacheID      byte
	FlAccel      byte
	ULCharInc    byte
	FOpRedundant byte
	BackColor    uint32
	ForeColor    uint32
	BkLeft       int16
	BkTop        int16
	BkRight      int16
	BkBottom     int16
	OpLeft       int16
	OpTop        int16
	OpRight      int16
	OpBottom     int16
	Brush        Brush
	X            int16
	Y            int16
	Data         []byte
}

func (*GlyphIndex) Type() PrimaryType { return TypeGlyphIndex }
