// Package orders implements the drawing-order codec for the RDP graphics
// update channel as specified in MS-RDPEGDI 2.2.2. It decodes the three order
// classes carried by TS_UPDATE_ORDERS payloads (primary, secondary and
// alternate secondary), maintains the per-connection differential state the
// primary class requires, and provides encoders that emit self-contained
// orders with every field present.
package orders

// Control byte flags (MS-RDPEGDI 2.2.2.2.1).
const (
	ControlStandard          = 0x01
	ControlSecondary         = 0x02
	ControlBounds            = 0x04
	ControlTypeChange        = 0x08
	ControlDeltaCoordinates  = 0x10
	ControlZeroBoundsDeltas  = 0x20
	ControlZeroFieldByteBit0 = 0x40
	ControlZeroFieldByteBit1 = 0x80
)

// PrimaryType identifies a primary drawing order (MS-RDPEGDI 2.2.2.2.1.1.2).
type PrimaryType byte

const (
	TypeDstBlt            PrimaryType = 0x00
	TypePatBlt            PrimaryType = 0x01
	TypeScrBlt            PrimaryType = 0x02
	TypeDrawNineGrid      PrimaryType = 0x07
	TypeMultiDrawNineGrid PrimaryType = 0x08
	TypeLineTo            PrimaryType = 0x09
	TypeOpaqueRect        PrimaryType = 0x0A
	TypeSaveBitmap        PrimaryType = 0x0B
	TypeMemBlt            PrimaryType = 0x0D
	TypeMem3Blt           PrimaryType = 0x0E
	TypeMultiDstBlt       PrimaryType = 0x0F
	TypeMultiPatBlt       PrimaryType = 0x10
	TypeMultiScrBlt       PrimaryType = 0x11
	TypeMultiOpaqueRect   PrimaryType = 0x12
	TypeFastIndex         PrimaryType = 0x13
	TypePolygonSC         PrimaryType = 0x14
	TypePolygonCB         PrimaryType = 0x15
	TypePolyline          PrimaryType = 0x16
	TypeFastGlyph         PrimaryType = 0x18
	TypeEllipseSC         PrimaryType = 0x19
	TypeEllipseCB         PrimaryType = 0x1A
	TypeGlyphIndex        PrimaryType = 0x1B
)

// SecondaryType identifies a secondary (cache) drawing order
// (MS-RDPEGDI 2.2.2.2.1.2.1.1).
type SecondaryType byte

const (
	TypeCacheBitmap             SecondaryType = 0x00
	TypeCacheColorTable         SecondaryType = 0x01
	TypeCacheBitmapCompressed   SecondaryType = 0x02
	TypeCacheGlyph              SecondaryType = 0x03
	TypeCacheBitmapV2           SecondaryType = 0x04
	TypeCacheBitmapCompressedV2 SecondaryType = 0x05
	TypeCacheBrush              SecondaryType = 0x07
	TypeCacheBitmapV3           SecondaryType = 0x08
)

// AltSecType identifies an alternate secondary drawing order
// (MS-RDPEGDI 2.2.2.2.1.3.1.1). The type is carried in the upper six bits
// of the control byte.
type AltSecType byte

const (
	TypeSwitchSurface         AltSecType = 0x00
	TypeCreateOffscreenBitmap AltSecType = 0x01
	TypeStreamBitmapFirst     AltSecType = 0x02
	TypeStreamBitmapNext      AltSecType = 0x03
	TypeCreateNineGridBitmap  AltSecType = 0x04
	TypeGdiPlusFirst          AltSecType = 0x05
	TypeGdiPlusNext           AltSecType = 0x06
	TypeGdiPlusEnd            AltSecType = 0x07
	TypeGdiPlusCacheFirst     AltSecType = 0x08
	TypeGdiPlusCacheNext      AltSecType = 0x09
	TypeGdiPlusCacheEnd       AltSecType = 0x0A
	TypeWindow                AltSecType = 0x0B
	TypeCompDeskFirst         AltSecType = 0x0C
	TypeFrameMarker           AltSecType = 0x0D
)

// primaryFieldBytes maps a primary order type to the number of field-flag
// bytes its encoding carries. A zero entry marks an order type number that
// is not assigned to any primary order.
var primaryFieldBytes = [32]byte{
	TypeDstBlt:            1,
	TypePatBlt:            2,
	TypeScrBlt:            1,
	TypeDrawNineGrid:      1,
	TypeMultiDrawNineGrid: 1,
	TypeLineTo:            2,
	TypeOpaqueRect:        1,
	TypeSaveBitmap:        1,
	TypeMemBlt:            2,
	TypeMem3Blt:           3,
	TypeMultiDstBlt:       1,
	TypeMultiPatBlt:       2,
	TypeMultiScrBlt:       2,
	TypeMultiOpaqueRect:   2,
	TypeFastIndex:         2,
	TypePolygonSC:         1,
	TypePolygonCB:         2,
	TypePolyline:          1,
	TypeFastGlyph:         2,
	TypeEllipseSC:         1,
	TypeEllipseCB:         2,
	TypeGlyphIndex:        3,
}

// fieldByteCount returns the field-flag byte count for a primary order type,
// or zero when the type number is unassigned.
func fieldByteCount(t PrimaryType) byte {
	if int(t) >= len(primaryFieldBytes) {
		return 0
	}

	return primaryFieldBytes[t]
}

var primaryTypeNames = map[PrimaryType]string{
	TypeDstBlt:            "DstBlt",
	TypePatBlt:            "PatBlt",
	TypeScrBlt:            "ScrBlt",
	TypeDrawNineGrid:      "DrawNineGrid",
	TypeMultiDrawNineGrid: "MultiDrawNineGrid",
	TypeLineTo:            "LineTo",
	TypeOpaqueRect:        "OpaqueRect",
	TypeSaveBitmap:        "SaveBitmap",
	TypeMemBlt:            "MemBlt",
	TypeMem3Blt:           "Mem3Blt",
	TypeMultiDstBlt:       "MultiDstBlt",
	TypeMultiPatBlt:       "MultiPatBlt",
	TypeMultiScrBlt:       "MultiScrBlt",
	TypeMultiOpaqueRect:   "MultiOpaqueRect",
	TypeFastIndex:         "FastIndex",
	TypePolygonSC:         "PolygonSC",
	TypePolygonCB:         "PolygonCB",
	TypePolyline:          "Polyline",
	TypeFastGlyph:         "FastGlyph",
	TypeEllipseSC:         "EllipseSC",
	TypeEllipseCB:         "EllipseCB",
	TypeGlyphIndex:        "GlyphIndex",
}

func (t PrimaryType) String() string {
	if name, ok := primaryTypeNames[t]; ok {
		return name
	}

	return "UnknownPrimary"
}

var secondaryTypeNames = map[SecondaryType]string{
	TypeCacheBitmap:             "CacheBitmap",
	TypeCacheColorTable:         "CacheColorTable",
	TypeCacheBitmapCompressed:   "CacheBitmapCompressed",
	TypeCacheGlyph:              "CacheGlyph",
	TypeCacheBitmapV2:           "CacheBitmapV2",
	TypeCacheBitmapCompressedV2: "CacheBitmapCompressedV2",
	TypeCacheBrush:              "CacheBrush",
	TypeCacheBitmapV3:           "CacheBitmapV3",
}

func (t SecondaryType) String() string {
	if name, ok := secondaryTypeNames[t]; ok {
		return name
	}

	return "UnknownSecondary"
}

var altSecTypeNames = map[AltSecType]string{
	TypeSwitchSurface:         "SwitchSurface",
	TypeCreateOffscreenBitmap: "CreateOffscreenBitmap",
	TypeStreamBitmapFirst:     "StreamBitmapFirst",
	TypeStreamBitmapNext:      "StreamBitmapNext",
	TypeCreateNineGridBitmap:  "CreateNineGridBitmap",
	TypeGdiPlusFirst:          "GdiPlusFirst",
	TypeGdiPlusNext:           "GdiPlusNext",
	TypeGdiPlusEnd:            "GdiPlusEnd",
	TypeGdiPlusCacheFirst:     "GdiPlusCacheFirst",
	TypeGdiPlusCacheNext:      "GdiPlusCacheNext",
	TypeGdiPlusCacheEnd:       "GdiPlusCacheEnd",
	TypeWindow:                "Window",
	TypeCompDeskFirst:         "CompDeskFirst",
	TypeFrameMarker:           "FrameMarker",
}

func (t AltSecType) String() string {
	if name, ok := altSecTypeNames[t]; ok {
		return name
	}

	return "UnknownAltSec"
}

// PrimaryOrder is implemented by all primary drawing orders.
type PrimaryOrder interface {
	Type() PrimaryType
}

// SecondaryOrder is implemented by all secondary (cache) drawing orders.
type SecondaryOrder interface {
	Type() SecondaryType
}

// AltSecOrder is implemented by all alternate secondary drawing orders.
type AltSecOrder interface {
	Type() AltSecType
}

// Bounds is the inclusive clip rectangle a bounded primary order is
// restricted to (MS-RDPEGDI 2.2.2.2.1.1.2 TS_BOUNDS).
type Bounds struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Bounds description byte flags (MS-RDPEGDI 2.2.2.2.1.1.2.1).
const (
	boundLeft        = 0x01
	boundTop         = 0x02
	boundRight       = 0x04
	boundBottom      = 0x08
	boundDeltaLeft   = 0x10
	boundDeltaTop    = 0x20
	boundDeltaRight  = 0x40
	boundDeltaBottom = 0x80
)

// orderInfo carries the per-order framing state shared by every primary
// order: the last announced order type, the field-presence mask of the
// current order, the persisted clip rectangle and the coordinate mode.
type orderInfo struct {
	orderType        PrimaryType
	fieldFlags       uint32
	bounds           Bounds
	deltaCoordinates bool
}
