package orders

import "fmt"

// Order support indices into Settings.OrderSupport, as exchanged in the
// order capability set (MS-RDPBCGR 2.2.7.1.3).
const (
	NegDstBlt            = 0x00
	NegPatBlt            = 0x01
	NegScrBlt            = 0x02
	NegMemBlt            = 0x03
	NegMem3Blt           = 0x04
	NegDrawNineGrid      = 0x07
	NegLineTo            = 0x08
	NegMultiDrawNineGrid = 0x09
	NegOpaqueRect        = 0x0A
	NegSaveBitmap        = 0x0B
	NegMultiDstBlt       = 0x0F
	NegMultiPatBlt       = 0x10
	NegMultiScrBlt       = 0x11
	NegMultiOpaqueRect   = 0x12
	NegFastIndex         = 0x13
	NegPolygonSC         = 0x14
	NegPolygonCB         = 0x15
	NegPolyline          = 0x16
	NegFastGlyph         = 0x18
	NegEllipseSC         = 0x19
	NegEllipseCB         = 0x1A
	NegGlyphIndex        = 0x1B
)

// Glyph support levels from the glyph cache capability set
// (MS-RDPBCGR 2.2.7.1.8). Partial and full select revision 1 glyph cache
// orders, encode selects revision 2.
const (
	GlyphSupportNone    uint32 = 0
	GlyphSupportPartial uint32 = 1
	GlyphSupportFull    uint32 = 2
	GlyphSupportEncode  uint32 = 3
)

// Settings holds the drawing capabilities announced during capability
// exchange. The decoder consults them before dispatching each order, so a
// server that sends an order the client never asked for is caught here.
type Settings struct {
	// OrderSupport is indexed by the Neg* constants. A non-zero entry
	// means the order was announced.
	OrderSupport [32]byte

	BitmapCacheEnabled   bool
	BitmapCacheV3Enabled bool

	GlyphSupportLevel uint32

	OffscreenSupportLevel     uint32
	DrawNineGridEnabled       bool
	FrameMarkerCommandEnabled bool
	DrawGdiPlusEnabled        bool
	RemoteWindowSupportLevel  uint32

	// RelaxedOrderChecks downgrades unannounced orders from an error to
	// a warning. Some servers send orders they never negotiated.
	RelaxedOrderChecks bool
}

// PermissiveSettings announces support for everything and relaxes the
// negotiation checks. Useful for decoding captured streams where the
// original capability exchange is not available.
func PermissiveSettings() *Settings {
	s := &Settings{
		BitmapCacheEnabled:        true,
		BitmapCacheV3Enabled:      true,
		GlyphSupportLevel:         GlyphSupportEncode,
		OffscreenSupportLevel:     1,
		DrawNineGridEnabled:       true,
		FrameMarkerCommandEnabled: true,
		DrawGdiPlusEnabled:        true,
		RemoteWindowSupportLevel:  1,
		RelaxedOrderChecks:        true,
	}

	for i := range s.OrderSupport {
		s.OrderSupport[i] = 1
	}

	return s
}

func (d *Decoder) checkAnnounced(name string, announced bool) error {
	if announced {
		return nil
	}

	if d.settings.RelaxedOrderChecks {
		d.logger.Warn("%s order was not announced during capability exchange, accepting anyway", name)
		return nil
	}

	return fmt.Errorf("%s: %w", name, ErrOrderNotNegotiated)
}

func (d *Decoder) checkPrimary(t PrimaryType) error {
	s := d.settings

	var announced bool

	switch t {
	case TypeDstBlt:
		announced = s.OrderSupport[NegDstBlt] != 0
	case TypePatBlt, TypeOpaqueRect:
		// MS-RDPEGDI 2.2.2.2.1.1.2.5 suggests PatBlt and OpaqueRect
		// imply each other.
		announced = s.OrderSupport[NegOpaqueRect] != 0 || s.OrderSupport[NegPatBlt] != 0
	case TypeScrBlt:
		announced = s.OrderSupport[NegScrBlt] != 0
	case TypeDrawNineGrid:
		announced = s.OrderSupport[NegDrawNineGrid] != 0
	case TypeMultiDrawNineGrid:
		announced = s.OrderSupport[NegMultiDrawNineGrid] != 0
	case TypeLineTo:
		announced = s.OrderSupport[NegLineTo] != 0
	case TypeSaveBitmap:
		announced = s.OrderSupport[NegSaveBitmap] != 0
	case TypeMemBlt:
		announced = s.OrderSupport[NegMemBlt] != 0
	case TypeMem3Blt:
		announced = s.OrderSupport[NegMem3Blt] != 0
	case TypeMultiDstBlt:
		announced = s.OrderSupport[NegMultiDstBlt] != 0
	case TypeMultiPatBlt:
		announced = s.OrderSupport[NegMultiPatBlt] != 0
	case TypeMultiScrBlt:
		announced = s.OrderSupport[NegMultiScrBlt] != 0
	case TypeMultiOpaqueRect:
		announced = s.OrderSupport[NegMultiOpaqueRect] != 0
	case TypeFastIndex:
		announced = s.OrderSupport[NegFastIndex] != 0
	case TypePolygonSC:
		announced = s.OrderSupport[NegPolygonSC] != 0
	case TypePolygonCB:
		announced = s.OrderSupport[NegPolygonCB] != 0
	case TypePolyline:
		announced = s.OrderSupport[NegPolyline] != 0
	case TypeFastGlyph:
		announced = s.OrderSupport[NegFastGlyph] != 0
	case TypeEllipseSC:
		announced = s.OrderSupport[NegEllipseSC] != 0
	case TypeEllipseCB:
		announced = s.OrderSupport[NegEllipseCB] != 0
	case TypeGlyphIndex:
		announced = s.OrderSupport[NegGlyphIndex] != 0
	}

	return d.checkAnnounced(t.String(), announced)
}

func (d *Decoder) checkSecondary(t SecondaryType) error {
	s := d.settings

	var announced bool

	switch t {
	case TypeCacheBitmap, TypeCacheBitmapCompressed,
		TypeCacheBitmapV2, TypeCacheBitmapCompressedV2:
		announced = s.BitmapCacheEnabled
	case TypeCacheBitmapV3:
		announced = s.BitmapCacheV3Enabled
	case TypeCacheColorTable:
		announced = s.OrderSupport[NegMemBlt] != 0 || s.OrderSupport[NegMem3Blt] != 0
	case TypeCacheGlyph:
		announced = s.GlyphSupportLevel != GlyphSupportNone
	case TypeCacheBrush:
		announced = true
	}

	return d.checkAnnounced(t.String(), announced)
}

func (d *Decoder) checkAltSec(t AltSecType) error {
	s := d.settings

	var announced bool

	switch t {
	case TypeCreateOffscreenBitmap, TypeSwitchSurface:
		announced = s.OffscreenSupportLevel != 0
	case TypeCreateNineGridBitmap:
		announced = s.DrawNineGridEnabled
	case TypeFrameMarker:
		announced = s.FrameMarkerCommandEnabled
	case TypeGdiPlusFirst, TypeGdiPlusNext, TypeGdiPlusEnd,
		TypeGdiPlusCacheFirst, TypeGdiPlusCacheNext, TypeGdiPlusCacheEnd:
		announced = s.DrawGdiPlusEnabled
	case TypeWindow:
		announced = s.RemoteWindowSupportLevel != 0
	case TypeStreamBitmapFirst, TypeStreamBitmapNext, TypeCompDeskFirst:
		announced = true
	}

	return d.checkAnnounced(t.String(), announced)
}
