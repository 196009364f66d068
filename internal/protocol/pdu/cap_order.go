package pdu

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/kulaginds/rdp-orders/internal/orders"
)

// Order capability flags (MS-RDPBCGR 2.2.7.1.3).
const (
	OrderFlagNegotiateOrderSupport   uint16 = 0x0002
	OrderFlagZeroBoundsDeltasSupport uint16 = 0x0008
	OrderFlagColorIndexSupport       uint16 = 0x0020
	OrderFlagSolidPatternBrushOnly   uint16 = 0x0040
	OrderFlagExtraFlags              uint16 = 0x0080
)

// Extended order capability flags carried in orderSupportExFlags.
const (
	OrderFlagExCacheBitmapRev3Support   uint16 = 0x0002
	OrderFlagExAltSecFrameMarkerSupport uint16 = 0x0004
)

// OrderCapabilitySet represents the Order Capability Set
// (MS-RDPBCGR 2.2.7.1.3).
type OrderCapabilitySet struct {
	OrderFlags          uint16
	OrderSupport        [32]byte
	textFlags           uint16
	OrderSupportExFlags uint16
	DesktopSaveSize     uint32
	textANSICodePage    uint16
}

// NewOrderCapabilitySet creates an Order Capability Set announcing every
// primary order this codec decodes, plus the rev3 bitmap cache and frame
// marker extensions.
func NewOrderCapabilitySet() CapabilitySet {
	set := &OrderCapabilitySet{
		// NEGOTIATEORDERSUPPORT and ZEROBOUNDSDELTASSUPPORT must be set.
		OrderFlags:          OrderFlagNegotiateOrderSupport | OrderFlagZeroBoundsDeltasSupport | OrderFlagColorIndexSupport,
		OrderSupportExFlags: OrderFlagExCacheBitmapRev3Support | OrderFlagExAltSecFrameMarkerSupport,
		DesktopSaveSize:     480 * 480,
	}

	for _, index := range []int{
		orders.NegDstBlt, orders.NegPatBlt, orders.NegScrBlt,
		orders.NegMemBlt, orders.NegMem3Blt, orders.NegDrawNineGrid,
		orders.NegLineTo, orders.NegMultiDrawNineGrid, orders.NegOpaqueRect,
		orders.NegSaveBitmap, orders.NegMultiDstBlt, orders.NegMultiPatBlt,
		orders.NegMultiScrBlt, orders.NegMultiOpaqueRect, orders.NegFastIndex,
		orders.NegPolygonSC, orders.NegPolygonCB, orders.NegPolyline,
		orders.NegFastGlyph, orders.NegEllipseSC, orders.NegEllipseCB,
		orders.NegGlyphIndex,
	} {
		set.OrderSupport[index] = 1
	}

	return CapabilitySet{
		CapabilitySetType:  CapabilitySetTypeOrder,
		OrderCapabilitySet: set,
	}
}

// Serialize encodes the capability set body to wire format.
func (s *OrderCapabilitySet) Serialize() []byte {
	buf := new(bytes.Buffer)

	buf.Write(make([]byte, 16))                            // terminalDescriptor
	_ = binary.Write(buf, binary.LittleEndian, uint32(0))  // padding
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))  // desktopSaveXGranularity
	_ = binary.Write(buf, binary.LittleEndian, uint16(20)) // desktopSaveYGranularity
	_ = binary.Write(buf, binary.LittleEndian, uint16(0))  // padding
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))  // maximumOrderLevel = ORD_LEVEL_1_ORDERS
	_ = binary.Write(buf, binary.LittleEndian, uint16(0))  // numberFonts
	_ = binary.Write(buf, binary.LittleEndian, s.OrderFlags)
	_ = binary.Write(buf, binary.LittleEndian, s.OrderSupport)
	_ = binary.Write(buf, binary.LittleEndian, s.textFlags)
	_ = binary.Write(buf, binary.LittleEndian, s.OrderSupportExFlags)
	_ = binary.Write(buf, binary.LittleEndian, uint32(0)) // padding
	_ = binary.Write(buf, binary.LittleEndian, s.DesktopSaveSize)
	_ = binary.Write(buf, binary.LittleEndian, uint32(0)) // padding
	_ = binary.Write(buf, binary.LittleEndian, s.textANSICodePage)
	_ = binary.Write(buf, binary.LittleEndian, uint16(0)) // padding

	return buf.Bytes()
}

// Deserialize decodes the capability set body from wire format.
func (s *OrderCapabilitySet) Deserialize(wire io.Reader) error {
	var (
		err                     error
		terminalDescriptor      [16]byte
		padding4                uint32
		desktopSaveXGranularity uint16
		desktopSaveYGranularity uint16
		padding2                uint16
		maximumOrderLevel       uint16
		numberFonts             uint16
	)

	err = binary.Read(wire, binary.LittleEndian, &terminalDescriptor)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &padding4)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &desktopSaveXGranularity)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &desktopSaveYGranularity)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &padding2)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &maximumOrderLevel)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &numberFonts)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.OrderFlags)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.OrderSupport)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.textFlags)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.OrderSupportExFlags)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &padding4)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.DesktopSaveSize)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &padding4)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.textANSICodePage)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &padding2)
	if err != nil {
		return err
	}

	return nil
}
