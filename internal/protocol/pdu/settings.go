package pdu

import "github.com/kulaginds/rdp-orders/internal/orders"

// BuildSettings folds negotiated capability sets into decoder settings.
// Sets absent from the blob leave their fields zero, which the decoder
// treats as not announced.
func BuildSettings(sets []CapabilitySet) *orders.Settings {
	settings := &orders.Settings{}

	for i := range sets {
		set := &sets[i]

		switch {
		case set.OrderCapabilitySet != nil:
			settings.OrderSupport = set.OrderCapabilitySet.OrderSupport
			settings.BitmapCacheV3Enabled = set.OrderCapabilitySet.OrderSupportExFlags&OrderFlagExCacheBitmapRev3Support != 0
			settings.FrameMarkerCommandEnabled = set.OrderCapabilitySet.OrderSupportExFlags&OrderFlagExAltSecFrameMarkerSupport != 0
		case set.BitmapCacheCapabilitySetRev1 != nil:
			settings.BitmapCacheEnabled = true
		case set.BitmapCacheCapabilitySetRev2 != nil:
			settings.BitmapCacheEnabled = true
		case set.GlyphCacheCapabilitySet != nil:
			settings.GlyphSupportLevel = uint32(set.GlyphCacheCapabilitySet.GlyphSupportLevel)
		case set.OffscreenBitmapCacheCapabilitySet != nil:
			settings.OffscreenSupportLevel = set.OffscreenBitmapCacheCapabilitySet.OffscreenSupportLevel
		case set.DrawNineGridCacheCapabilitySet != nil:
			settings.DrawNineGridEnabled = set.DrawNineGridCacheCapabilitySet.DrawNineGridSupportLevel != 0
		case set.DrawGDIPlusCapabilitySet != nil:
			settings.DrawGdiPlusEnabled = set.DrawGDIPlusCapabilitySet.DrawGDIPlusSupportLevel != 0
		case set.WindowListCapabilitySet != nil:
			settings.RemoteWindowSupportLevel = set.WindowListCapabilitySet.WndSupportLevel
		}
	}

	return settings
}

// DefaultCapabilitySets returns the drawing capability sets a full-featured
// client announces. Useful as a starting point for capability blobs.
func DefaultCapabilitySets() []CapabilitySet {
	return []CapabilitySet{
		NewOrderCapabilitySet(),
		NewBitmapCacheCapabilitySetRev2(),
		NewGlyphCacheCapabilitySet(),
		NewOffscreenBitmapCacheCapabilitySet(),
		NewDrawNineGridCacheCapabilitySet(),
		NewWindowListCapabilitySet(),
	}
}
