package pdu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulaginds/rdp-orders/internal/orders"
)

func TestCapabilitySetRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		set  CapabilitySet
	}{
		{
			name: "order",
			set:  NewOrderCapabilitySet(),
		},
		{
			name: "bitmap cache rev1",
			set:  NewBitmapCacheCapabilitySetRev1(),
		},
		{
			name: "bitmap cache rev2",
			set:  NewBitmapCacheCapabilitySetRev2(),
		},
		{
			name: "glyph cache",
			set:  NewGlyphCacheCapabilitySet(),
		},
		{
			name: "offscreen bitmap cache",
			set:  NewOffscreenBitmapCacheCapabilitySet(),
		},
		{
			name: "draw nine grid cache",
			set:  NewDrawNineGridCacheCapabilitySet(),
		},
		{
			name: "draw gdi+",
			set: CapabilitySet{
				CapabilitySetType: CapabilitySetTypeDrawGDIPlus,
				DrawGDIPlusCapabilitySet: &DrawGDIPlusCapabilitySet{
					DrawGDIPlusSupportLevel: 1,
					GdipVersion:             0x0102,
					DrawGdiplusCacheLevel:   1,
					GdipCacheEntries: GDICacheEntries{
						GdipGraphicsCacheEntries:        10,
						GdipBrushCacheEntries:           5,
						GdipPenCacheEntries:             5,
						GdipImageCacheEntries:           10,
						GdipImageAttributesCacheEntries: 2,
					},
					GdipCacheChunkSize: GDICacheChunkSize{
						GdipGraphicsCacheChunkSize:              512,
						GdipObjectBrushCacheChunkSize:           2048,
						GdipObjectPenCacheChunkSize:             1024,
						GdipObjectImageAttributesCacheChunkSize: 64,
					},
					GdipImageCacheProperties: GDIImageCacheProperties{
						GdipObjectImageCacheChunkSize: 4096,
						GdipObjectImageCacheTotalSize: 256,
						GdipObjectImageCacheMaxSize:   128,
					},
				},
			},
		},
		{
			name: "window list",
			set:  NewWindowListCapabilitySet(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.set.Serialize()

			var decoded CapabilitySet
			require.NoError(t, decoded.Deserialize(bytes.NewReader(data)))

			assert.Equal(t, tt.set, decoded)
		})
	}
}

func TestCapabilitySetSerializedLengths(t *testing.T) {
	tests := []struct {
		name   string
		set    CapabilitySet
		length int
	}{
		{"order", NewOrderCapabilitySet(), 88},
		{"bitmap cache rev1", NewBitmapCacheCapabilitySetRev1(), 40},
		{"bitmap cache rev2", NewBitmapCacheCapabilitySetRev2(), 40},
		{"glyph cache", NewGlyphCacheCapabilitySet(), 52},
		{"offscreen bitmap cache", NewOffscreenBitmapCacheCapabilitySet(), 12},
		{"draw nine grid cache", NewDrawNineGridCacheCapabilitySet(), 12},
		{"window list", NewWindowListCapabilitySet(), 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.set.Serialize()

			require.Len(t, data, tt.length)
			// The declared length matches the serialized length.
			assert.Equal(t, tt.length, int(data[2])|int(data[3])<<8)
		})
	}
}

func TestReadCapabilitySets(t *testing.T) {
	blob := WriteCapabilitySets(DefaultCapabilitySets())

	sets, err := ReadCapabilitySets(bytes.NewReader(blob))

	require.NoError(t, err)
	require.Len(t, sets, 6)
	assert.Equal(t, DefaultCapabilitySets(), sets)
}

func TestReadCapabilitySets_UnknownSetSkipped(t *testing.T) {
	unknown := CapabilitySet{
		CapabilitySetType: 0x001C, // surface commands, not modeled here
		Raw:               []byte{0xAA, 0xBB, 0xCC, 0xDD},
	}
	blob := WriteCapabilitySets([]CapabilitySet{
		unknown,
		NewOffscreenBitmapCacheCapabilitySet(),
	})

	sets, err := ReadCapabilitySets(bytes.NewReader(blob))

	require.NoError(t, err)
	require.Len(t, sets, 2)
	// The unknown set keeps its body so the blob re-encodes without loss.
	assert.Equal(t, unknown, sets[0])
	require.NotNil(t, sets[1].OffscreenBitmapCacheCapabilitySet)
	assert.Equal(t, blob, WriteCapabilitySets(sets))
}

func TestReadCapabilitySets_Truncated(t *testing.T) {
	blob := WriteCapabilitySets(DefaultCapabilitySets())

	_, err := ReadCapabilitySets(bytes.NewReader(blob[:len(blob)-10]))

	require.Error(t, err)
	assert.ErrorContains(t, err, "capability set 6 of 6")
}

func TestCapabilitySet_InvalidDeclaredLength(t *testing.T) {
	data := []byte{
		0x03, 0x00, // capabilitySetType = order
		0x02, 0x00, // lengthCapability shorter than the header
	}

	var set CapabilitySet
	err := set.Deserialize(bytes.NewReader(data))

	assert.ErrorIs(t, err, ErrInvalidCapabilityLength)
}

func TestBuildSettings(t *testing.T) {
	sets := append(DefaultCapabilitySets(), CapabilitySet{
		CapabilitySetType: CapabilitySetTypeDrawGDIPlus,
		DrawGDIPlusCapabilitySet: &DrawGDIPlusCapabilitySet{
			DrawGDIPlusSupportLevel: 1,
		},
	})

	settings := BuildSettings(sets)

	assert.NotZero(t, settings.OrderSupport[orders.NegOpaqueRect])
	assert.NotZero(t, settings.OrderSupport[orders.NegGlyphIndex])
	assert.Zero(t, settings.OrderSupport[0x05]) // unassigned index stays clear
	assert.True(t, settings.BitmapCacheEnabled)
	assert.True(t, settings.BitmapCacheV3Enabled)
	assert.True(t, settings.FrameMarkerCommandEnabled)
	assert.Equal(t, orders.GlyphSupportEncode, settings.GlyphSupportLevel)
	assert.Equal(t, uint32(1), settings.OffscreenSupportLevel)
	assert.True(t, settings.DrawNineGridEnabled)
	assert.True(t, settings.DrawGdiPlusEnabled)
	assert.Equal(t, WindowLevelSupportedEx, settings.RemoteWindowSupportLevel)
	assert.False(t, settings.RelaxedOrderChecks)
}

func TestBuildSettings_Minimal(t *testing.T) {
	order := NewOrderCapabilitySet()
	order.OrderCapabilitySet.OrderSupportExFlags = 0

	settings := BuildSettings([]CapabilitySet{order})

	assert.False(t, settings.BitmapCacheEnabled)
	assert.False(t, settings.BitmapCacheV3Enabled)
	assert.False(t, settings.FrameMarkerCommandEnabled)
	assert.Zero(t, settings.GlyphSupportLevel)
	assert.Zero(t, settings.OffscreenSupportLevel)
	assert.False(t, settings.DrawNineGridEnabled)
	assert.False(t, settings.DrawGdiPlusEnabled)
	assert.Zero(t, settings.RemoteWindowSupportLevel)
}

func TestBuildSettings_Rev1CacheEnables(t *testing.T) {
	settings := BuildSettings([]CapabilitySet{NewBitmapCacheCapabilitySetRev1()})

	assert.True(t, settings.BitmapCacheEnabled)
}
