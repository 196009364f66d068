package orders

import (
	"fmt"

	"github.com/kulaginds/rdp-orders/internal/logging"
)

// Handler receives decoded drawing orders. The order values passed to
// Primary, Secondary and AltSec are owned by the decoder and reused for
// the next order of the same type; implementations that keep one must
// copy it.
type Handler interface {
	// SetClip installs the clip rectangle the following primary order is
	// bounded by. A nil bounds removes the clip.
	SetClip(bounds *Bounds) error

	Primary(order PrimaryOrder) error
	Secondary(order SecondaryOrder) error
	AltSec(order AltSecOrder) error
}

// Decoder parses a stream of drawing orders and dispatches each decoded
// order to a Handler. Primary orders are encoded differentially against
// the previous order of the same type, so a decoder is stateful and must
// see every orders update of a connection in sequence.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	settings *Settings
	handler  Handler
	logger   *logging.Logger

	info orderInfo

	dstBlt            DstBlt
	patBlt            PatBlt
	scrBlt            ScrBlt
	opaqueRect        OpaqueRect
	drawNineGrid      DrawNineGrid
	multiDrawNineGrid MultiDrawNineGrid
	lineTo            LineTo
	saveBitmap        SaveBitmap
	memBlt            MemBlt
	mem3Blt           Mem3Blt
	multiDstBlt       MultiDstBlt
	multiPatBlt       MultiPatBlt
	multiScrBlt       MultiScrBlt
	multiOpaqueRect   MultiOpaqueRect
	fastIndex         FastIndex
	fastGlyph         FastGlyph
	polygonSC         PolygonSC
	polygonCB         PolygonCB
	polyline          Polyline
	ellipseSC         EllipseSC
	ellipseCB         EllipseCB
	glyphIndex        GlyphIndex

	cacheBitmapV1   CacheBitmapV1
	cacheBitmapV2   CacheBitmapV2
	cacheBitmapV3   CacheBitmapV3
	cacheColorTable CacheColorTable
	cacheGlyph      CacheGlyph
	cacheGlyphV2    CacheGlyphV2
	cacheBrush      CacheBrush

	switchSurface         SwitchSurface
	createOffscreenBitmap CreateOffscreenBitmap
	streamBitmapFirst     StreamBitmapFirst
	streamBitmapNext      StreamBitmapNext
	createNineGridBitmap  CreateNineGridBitmap
	gdiPlusFirst          GdiPlusFirst
	gdiPlusNext           GdiPlusNext
	gdiPlusEnd            GdiPlusEnd
	gdiPlusCacheFirst     GdiPlusCacheFirst
	gdiPlusCacheNext      GdiPlusCacheNext
	gdiPlusCacheEnd       GdiPlusCacheEnd
	window                Window
	compDeskFirst         CompDeskFirst
	frameMarker           FrameMarker
}

// NewDecoder returns a decoder dispatching to handler. A nil settings
// decodes permissively; a nil logger uses the default logger.
func NewDecoder(settings *Settings, handler Handler, logger *logging.Logger) *Decoder {
	if settings == nil {
		settings = PermissiveSettings()
	}

	if logger == nil {
		logger = logging.Default()
	}

	return &Decoder{
		settings: settings,
		handler:  handler,
		logger:   logger,
	}
}

// ProcessOrders decodes the body of a fast-path orders update
// (TS_FP_UPDATE_ORDERS): a 2-byte order count followed by the orders.
func (d *Decoder) ProcessOrders(data []byte) error {
	r := newReader(data)

	count, err := r.uint16()
	if err != nil {
		return err
	}

	return d.processOrders(r, count)
}

// ProcessSlowPathOrders decodes the body of a slow-path orders update
// (TS_UPDATE_ORDERS_PDU_DATA): the order count sits between two pad
// fields.
func (d *Decoder) ProcessSlowPathOrders(data []byte) error {
	r := newReader(data)

	if err := r.skip(2); err != nil { // pad2OctetsA
		return err
	}

	count, err := r.uint16()
	if err != nil {
		return err
	}

	if err := r.skip(2); err != nil { // pad2OctetsB
		return err
	}

	return d.processOrders(r, count)
}

func (d *Decoder) processOrders(r *reader, count uint16) error {
	for i := uint16(0); i < count; i++ {
		if err := d.readOrder(r); err != nil {
			return fmt.Errorf("order %d of %d: %w", i+1, count, err)
		}
	}

	return nil
}

func (d *Decoder) readOrder(r *reader) error {
	control, err := r.uint8()
	if err != nil {
		return err
	}

	if control&ControlStandard == 0 {
		return d.readAltSecOrder(r, control)
	}

	if control&ControlSecondary != 0 {
		return d.readSecondaryOrder(r)
	}

	return d.readPrimaryOrder(r, control)
}

func (d *Decoder) readPrimaryOrder(r *reader, control byte) error {
	info := &d.info

	if control&ControlTypeChange != 0 {
		t, err := r.uint8()
		if err != nil {
			return err
		}

		info.orderType = PrimaryType(t)
	}

	if err := d.checkPrimary(info.orderType); err != nil {
		return err
	}

	fieldBytes := fieldByteCount(info.orderType)
	if fieldBytes == 0 {
		return fmt.Errorf("primary order %#02x: %w", byte(info.orderType), ErrInvalidOrderType)
	}

	fieldFlags, err := readFieldFlags(r, control, fieldBytes)
	if err != nil {
		return err
	}

	info.fieldFlags = fieldFlags

	if control&ControlBounds != 0 {
		if control&ControlZeroBoundsDeltas == 0 {
			if err := readBounds(r, &info.bounds); err != nil {
				return err
			}
		}

		if err := d.handler.SetClip(&info.bounds); err != nil {
			return err
		}
	}

	info.deltaCoordinates = control&ControlDeltaCoordinates != 0

	order, err := d.readPrimaryBody(r)
	if err != nil {
		return fmt.Errorf("%s: %w", info.orderType, err)
	}

	d.logger.Debug("primary order %s", info.orderType)

	if err := d.handler.Primary(order); err != nil {
		return fmt.Errorf("%s: %w", info.orderType, err)
	}

	if control&ControlBounds != 0 {
		return d.handler.SetClip(nil)
	}

	return nil
}

func (d *Decoder) readPrimaryBody(r *reader) (PrimaryOrder, error) {
	f := &fieldReader{
		r:     r,
		flags: d.info.fieldFlags,
		delta: d.info.deltaCoordinates,
	}

	switch d.info.orderType {
	case TypeDstBlt:
		return &d.dstBlt, readDstBlt(f, &d.dstBlt)
	case TypePatBlt:
		return &d.patBlt, readPatBlt(f, &d.patBlt)
	case TypeScrBlt:
		return &d.scrBlt, readScrBlt(f, &d.scrBlt)
	case TypeDrawNineGrid:
		return &d.drawNineGrid, readDrawNineGrid(f, &d.drawNineGrid)
	case TypeMultiDrawNineGrid:
		return &d.multiDrawNineGrid, readMultiDrawNineGrid(f, &d.multiDrawNineGrid)
	case TypeLineTo:
		return &d.lineTo, readLineTo(f, &d.lineTo)
	case TypeOpaqueRect:
		return &d.opaqueRect, readOpaqueRect(f, &d.opaqueRect)
	case TypeSaveBitmap:
		return &d.saveBitmap, readSaveBitmap(f, &d.saveBitmap)
	case TypeMemBlt:
		return &d.memBlt, readMemBlt(f, &d.memBlt)
	case TypeMem3Blt:
		return &d.mem3Blt, readMem3Blt(f, &d.mem3Blt)
	case TypeMultiDstBlt:
		return &d.multiDstBlt, readMultiDstBlt(f, &d.multiDstBlt)
	case TypeMultiPatBlt:
		return &d.multiPatBlt, readMultiPatBlt(f, &d.multiPatBlt)
	case TypeMultiScrBlt:
		return &d.multiScrBlt, readMultiScrBlt(f, &d.multiScrBlt)
	case TypeMultiOpaqueRect:
		return &d.multiOpaqueRect, readMultiOpaqueRect(f, &d.multiOpaqueRect)
	case TypeFastIndex:
		return &d.fastIndex, readFastIndex(f, &d.fastIndex)
	case TypePolygonSC:
		return &d.polygonSC, readPolygonSC(f, &d.polygonSC)
	case TypePolygonCB:
		return &d.polygonCB, readPolygonCB(f, &d.polygonCB)
	case TypePolyline:
		return &d.polyline, readPolyline(f, &d.polyline)
	case TypeFastGlyph:
		return &d.fastGlyph, readFastGlyph(f, &d.fastGlyph)
	case TypeEllipseSC:
		return &d.ellipseSC, readEllipseSC(f, &d.ellipseSC)
	case TypeEllipseCB:
		return &d.ellipseCB, readEllipseCB(f, &d.ellipseCB)
	case TypeGlyphIndex:
		return &d.glyphIndex, readGlyphIndex(f, &d.glyphIndex)
	default:
		return nil, fmt.Errorf("primary order %#02x: %w", byte(d.info.orderType), ErrInvalidOrderType)
	}
}

// readSecondaryOrder decodes one secondary order. The header carries the
// order length, so a payload that fails to parse is skipped with a
// warning instead of poisoning the rest of the update. Reading past the
// announced length is fatal.
func (d *Decoder) readSecondaryOrder(r *reader) error {
	orderLength, err := r.int16()
	if err != nil {
		return err
	}

	extraFlags, err := r.uint16()
	if err != nil {
		return err
	}

	orderType, err := r.uint8()
	if err != nil {
		return err
	}

	if orderLength < 0 {
		return fmt.Errorf("secondary order length %d: %w", orderLength, ErrValueOutOfRange)
	}

	total := secondaryPayloadLength(orderLength)

	if err := r.require(total); err != nil {
		return err
	}

	end := r.pos + total
	t := SecondaryType(orderType)

	if err := d.checkSecondary(t); err != nil {
		return err
	}

	var (
		order    SecondaryOrder
		parseErr error
	)

	switch t {
	case TypeCacheBitmap, TypeCacheBitmapCompressed:
		compressed := t == TypeCacheBitmapCompressed
		if parseErr = readCacheBitmapV1(r, extraFlags, compressed, &d.cacheBitmapV1); parseErr == nil {
			order = &d.cacheBitmapV1
		}
	case TypeCacheBitmapV2, TypeCacheBitmapCompressedV2:
		compressed := t == TypeCacheBitmapCompressedV2
		if parseErr = readCacheBitmapV2(r, extraFlags, compressed, &d.cacheBitmapV2); parseErr == nil {
			order = &d.cacheBitmapV2
		}
	case TypeCacheBitmapV3:
		if parseErr = readCacheBitmapV3(r, extraFlags, &d.cacheBitmapV3); parseErr == nil {
			order = &d.cacheBitmapV3
		}
	case TypeCacheColorTable:
		if parseErr = readCacheColorTable(r, &d.cacheColorTable); parseErr == nil {
			order = &d.cacheColorTable
		}
	case TypeCacheGlyph:
		switch d.settings.GlyphSupportLevel {
		case GlyphSupportPartial, GlyphSupportFull:
			if parseErr = readCacheGlyph(r, extraFlags, &d.cacheGlyph); parseErr == nil {
				order = &d.cacheGlyph
			}
		case GlyphSupportEncode:
			if parseErr = readCacheGlyphV2(r, extraFlags, &d.cacheGlyphV2); parseErr == nil {
				order = &d.cacheGlyphV2
			}
		}
	case TypeCacheBrush:
		if parseErr = readCacheBrush(r, &d.cacheBrush); parseErr == nil {
			order = &d.cacheBrush
		}
	default:
		d.logger.Warn("secondary order %#02x not supported, skipping", orderType)
	}

	if parseErr != nil {
		d.logger.Warn("secondary order %s failed: %v", t, parseErr)
	} else if order != nil {
		d.logger.Debug("secondary order %s", t)

		if err := d.handler.Secondary(order); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
	}

	if r.pos > end {
		d.logger.Warn("secondary order %s: read %d bytes too much", t, r.pos-end)
		return fmt.Errorf("%s: %w", t, ErrFrameOverrun)
	}

	if r.pos < end {
		d.logger.Debug("secondary order %s: read %d bytes short, skipping", t, end-r.pos)
	}

	r.seek(end)

	return nil
}

func (d *Decoder) readAltSecOrder(r *reader, control byte) error {
	t := AltSecType(control >> 2)

	if err := d.checkAltSec(t); err != nil {
		return err
	}

	var (
		order AltSecOrder
		err   error
	)

	switch t {
	case TypeSwitchSurface:
		order, err = &d.switchSurface, readSwitchSurface(r, &d.switchSurface)
	case TypeCreateOffscreenBitmap:
		order, err = &d.createOffscreenBitmap, readCreateOffscreenBitmap(r, &d.createOffscreenBitmap)
	case TypeStreamBitmapFirst:
		order, err = &d.streamBitmapFirst, readStreamBitmapFirst(r, &d.streamBitmapFirst)
	case TypeStreamBitmapNext:
		order, err = &d.streamBitmapNext, readStreamBitmapNext(r, &d.streamBitmapNext)
	case TypeCreateNineGridBitmap:
		order, err = &d.createNineGridBitmap, readCreateNineGridBitmap(r, &d.createNineGridBitmap)
	case TypeGdiPlusFirst:
		order, err = &d.gdiPlusFirst, readGdiPlusFirst(r, &d.gdiPlusFirst)
	case TypeGdiPlusNext:
		order, err = &d.gdiPlusNext, readGdiPlusNext(r, &d.gdiPlusNext)
	case TypeGdiPlusEnd:
		order, err = &d.gdiPlusEnd, readGdiPlusEnd(r, &d.gdiPlusEnd)
	case TypeGdiPlusCacheFirst:
		order, err = &d.gdiPlusCacheFirst, readGdiPlusCacheFirst(r, &d.gdiPlusCacheFirst)
	case TypeGdiPlusCacheNext:
		order, err = &d.gdiPlusCacheNext, readGdiPlusCacheNext(r, &d.gdiPlusCacheNext)
	case TypeGdiPlusCacheEnd:
		order, err = &d.gdiPlusCacheEnd, readGdiPlusCacheEnd(r, &d.gdiPlusCacheEnd)
	case TypeWindow:
		order, err = &d.window, readWindow(r, &d.window)
	case TypeCompDeskFirst:
		order = &d.compDeskFirst
	case TypeFrameMarker:
		order, err = &d.frameMarker, readFrameMarker(r, &d.frameMarker)
	default:
		return fmt.Errorf("alternate secondary order %#02x: %w", byte(t), ErrInvalidOrderType)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", t, err)
	}

	d.logger.Debug("alternate secondary order %s", t)

	if err := d.handler.AltSec(order); err != nil {
		return fmt.Errorf("%s: %w", t, err)
	}

	return nil
}
