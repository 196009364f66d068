package orders

// Secondary order extra flags and related constants
// (MS-RDPEGDI 2.2.2.2.1.2).
const (
	// NoBitmapCompressionHeader marks a compressed cache bitmap whose
	// payload omits the 8-byte compression header.
	NoBitmapCompressionHeader = 0x0400

	// Rev2 cache bitmap flags, pre-shifted out of extraFlags.
	CacheBitmapV2HeightSameAsWidth   = 0x01
	CacheBitmapV2PersistentKey       = 0x02
	CacheBitmapV2NoCompressionHeader = 0x08
	CacheBitmapV2DoNotCache          = 0x10

	// GlyphUnicodePresent marks a cache glyph order that carries the
	// glyphs' unicode characters after the glyph data.
	GlyphUnicodePresent = 0x0010

	// BitmapCacheWaitingListIndex is the cache index substituted for
	// rev2 bitmaps flagged as do-not-cache.
	BitmapCacheWaitingListIndex = 0x7FFF
)

// secondaryHeaderAdjustment converts between the orderLength header field
// and the byte count following the header. The field counts the whole
// 13-byte-framed order but was defined against a 6-byte header that
// includes the control byte, leaving 13 - 6 = 7 bytes it undercounts
// (MS-RDPEGDI 2.2.2.2.1.2.1.1).
const secondaryHeaderAdjustment = 7

// secondaryPayloadLength returns the number of payload bytes that follow
// the five header fields of a secondary order with the given orderLength.
func secondaryPayloadLength(orderLength int16) int {
	return int(orderLength) + secondaryHeaderAdjustment
}

// CacheBitmapV1 stores a bitmap in a rev1 bitmap cache
// (MS-RDPEGDI 2.2.2.2.1.2.2). CompressionHeader holds the 8-byte
// compression header when the wire carried one.
type CacheBitmapV1 struct {
	CacheID           byte
	Width             byte
	Height            byte
	BPP               byte
	CacheIndex        uint16
	Compressed        bool
	CompressionHeader []byte
	Bitmap            []byte
}

func (o *CacheBitmapV1) Type() SecondaryType {
	if o.Compressed {
		return TypeCacheBitmapCompressed
	}

	return TypeCacheBitmap
}

// CacheBitmapV2 stores a bitmap in a rev2 bitmap cache
// (MS-RDPEGDI 2.2.2.2.1.2.3). The four Comp* sizes are only meaningful
// when the order carried a compression header.
type CacheBitmapV2 struct {
	CacheID          byte
	Flags            uint16
	BPP              byte
	Key1             uint32
	Key2             uint32
	Width            uint16
	Height           uint16
	CacheIndex       uint16
	Compressed       bool
	CompFirstRowSize uint16
	CompMainBodySize uint16
	ScanWidth        uint16
	UncompressedSize uint16
	Bitmap           []byte
}

func (o *CacheBitmapV2) Type() SecondaryType {
	if o.Compressed {
		return TypeCacheBitmapCompressedV2
	}

	return TypeCacheBitmapV2
}

// BitmapDataEx is the codec-tagged bitmap payload of a rev3 cache order.
type BitmapDataEx struct {
	BPP     byte
	CodecID byte
	Width   uint16
	Height  uint16
	Data    []byte
}

// CacheBitmapV3 stores a codec-compressed bitmap in a rev2 bitmap cache
// (MS-RDPEGDI 2.2.2.2.1.2.8).
type CacheBitmapV3 struct {
	CacheID    byte
	Flags      uint16
	BPP        byte
	CacheIndex uint16
	Key1       uint32
	Key2       uint32
	Bitmap     BitmapDataEx
}

func (*CacheBitmapV3) Type() SecondaryType { return TypeCacheBitmapV3 }

// CacheColorTable stores a 256-entry palette
// (MS-RDPEGDI 2.2.2.2.1.2.4).
type CacheColorTable struct {
	CacheIndex byte
	Colors     [256]uint32
}

func (*CacheColorTable) Type() SecondaryType { return TypeCacheColorTable }

// GlyphData is one glyph of a rev1 cache glyph order.
type GlyphData struct {
	CacheIndex uint16
	X          int16
	Y          int16
	Width      uint16
	Height     uint16
	Bitmap     []byte
}

// GlyphDataV2 is one glyph of a rev2 cache glyph order or the inline
// glyph of a fast glyph order.
type GlyphDataV2 struct {
	CacheIndex byte
	X          int32
	Y          int32
	Width      uint32
	Height     uint32
	Bitmap     []byte
}

// CacheGlyph stores glyphs in a glyph cache, rev1 encoding
// (MS-RDPEGDI 2.2.2.2.1.2.5).
type CacheGlyph struct {
	CacheID      byte
	Glyphs       []GlyphData
	UnicodeChars []uint16
}

func (*CacheGlyph) Type() SecondaryType { return TypeCacheGlyph }

// CacheGlyphV2 stores glyphs in a glyph cache, rev2 encoding
// (MS-RDPEGDI 2.2.2.2.1.2.6).
type CacheGlyphV2 struct {
	CacheID      byte
	Flags        byte
	Glyphs       []GlyphDataV2
	UnicodeChars []uint16
}

func (*CacheGlyphV2) Type() SecondaryType { return TypeCacheGlyph }

// CacheBrush stores an 8x8 brush pattern
// (MS-RDPEGDI 2.2.2.2.1.2.7). Data holds the decoded pattern with
// scanlines in top-down order.
type CacheBrush struct {
	Index  byte
	BPP    byte
	Width  byte
	Height byte
	Style  byte
	Length byte
	Data   []byte
}

func (*CacheBrush) Type() SecondaryType { return TypeCacheBrush }
