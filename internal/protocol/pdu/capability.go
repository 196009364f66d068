// Package pdu implements the capability set structures from the RDP basic
// settings exchange (MS-RDPBCGR 2.2.7) that govern drawing order support.
// A capability blob negotiated between client and server is folded into
// decoder settings with BuildSettings.
package pdu

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Capability set types (MS-RDPBCGR 2.2.7).
const (
	CapabilitySetTypeOrder                uint16 = 0x0003
	CapabilitySetTypeBitmapCache          uint16 = 0x0004
	CapabilitySetTypeGlyphCache           uint16 = 0x0010
	CapabilitySetTypeOffscreenBitmapCache uint16 = 0x0011
	CapabilitySetTypeBitmapCacheRev2      uint16 = 0x0013
	CapabilitySetTypeDrawNineGridCache    uint16 = 0x0015
	CapabilitySetTypeDrawGDIPlus          uint16 = 0x0016
	CapabilitySetTypeWindow               uint16 = 0x0018
)

// capabilitySetHeaderSize covers the capabilitySetType and lengthCapability
// fields preceding every capability set body.
const capabilitySetHeaderSize = 4

// CapabilitySet is the tagged union holding one parsed capability set.
// Exactly one of the typed fields is non-nil after Deserialize; sets of a
// type this package does not model keep their body in Raw so the blob can
// be re-encoded without loss.
type CapabilitySet struct {
	CapabilitySetType uint16

	OrderCapabilitySet                *OrderCapabilitySet
	BitmapCacheCapabilitySetRev1      *BitmapCacheCapabilitySetRev1
	BitmapCacheCapabilitySetRev2      *BitmapCacheCapabilitySetRev2
	GlyphCacheCapabilitySet           *GlyphCacheCapabilitySet
	OffscreenBitmapCacheCapabilitySet *OffscreenBitmapCacheCapabilitySet
	DrawNineGridCacheCapabilitySet    *DrawNineGridCacheCapabilitySet
	DrawGDIPlusCapabilitySet          *DrawGDIPlusCapabilitySet
	WindowListCapabilitySet           *WindowListCapabilitySet

	Raw []byte
}

// Serialize encodes the capability set with its type and length header.
func (s *CapabilitySet) Serialize() []byte {
	var body []byte

	switch {
	case s.OrderCapabilitySet != nil:
		body = s.OrderCapabilitySet.Serialize()
	case s.BitmapCacheCapabilitySetRev1 != nil:
		body = s.BitmapCacheCapabilitySetRev1.Serialize()
	case s.BitmapCacheCapabilitySetRev2 != nil:
		body = s.BitmapCacheCapabilitySetRev2.Serialize()
	case s.GlyphCacheCapabilitySet != nil:
		body = s.GlyphCacheCapabilitySet.Serialize()
	case s.OffscreenBitmapCacheCapabilitySet != nil:
		body = s.OffscreenBitmapCacheCapabilitySet.Serialize()
	case s.DrawNineGridCacheCapabilitySet != nil:
		body = s.DrawNineGridCacheCapabilitySet.Serialize()
	case s.DrawGDIPlusCapabilitySet != nil:
		body = s.DrawGDIPlusCapabilitySet.Serialize()
	case s.WindowListCapabilitySet != nil:
		body = s.WindowListCapabilitySet.Serialize()
	default:
		body = s.Raw
	}

	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, s.CapabilitySetType)
	_ = binary.Write(buf, binary.LittleEndian, uint16(len(body)+capabilitySetHeaderSize))
	buf.Write(body)

	return buf.Bytes()
}

// Deserialize decodes one capability set, header included. The declared
// length bounds the body read, so trailing sets in the same stream stay
// aligned even when the set type is unknown.
func (s *CapabilitySet) Deserialize(wire io.Reader) error {
	var err error

	err = binary.Read(wire, binary.LittleEndian, &s.CapabilitySetType)
	if err != nil {
		return err
	}

	var lengthCapability uint16
	err = binary.Read(wire, binary.LittleEndian, &lengthCapability)
	if err != nil {
		return err
	}

	if lengthCapability < capabilitySetHeaderSize {
		return fmt.Errorf("capability set type 0x%04x: %w", s.CapabilitySetType, ErrInvalidCapabilityLength)
	}

	body := make([]byte, int(lengthCapability)-capabilitySetHeaderSize)
	_, err = io.ReadFull(wire, body)
	if err != nil {
		return err
	}

	r := bytes.NewReader(body)

	switch s.CapabilitySetType {
	case CapabilitySetTypeOrder:
		s.OrderCapabilitySet = &OrderCapabilitySet{}
		return s.OrderCapabilitySet.Deserialize(r)
	case CapabilitySetTypeBitmapCache:
		s.BitmapCacheCapabilitySetRev1 = &BitmapCacheCapabilitySetRev1{}
		return s.BitmapCacheCapabilitySetRev1.Deserialize(r)
	case CapabilitySetTypeBitmapCacheRev2:
		s.BitmapCacheCapabilitySetRev2 = &BitmapCacheCapabilitySetRev2{}
		return s.BitmapCacheCapabilitySetRev2.Deserialize(r)
	case CapabilitySetTypeGlyphCache:
		s.GlyphCacheCapabilitySet = &GlyphCacheCapabilitySet{}
		return s.GlyphCacheCapabilitySet.Deserialize(r)
	case CapabilitySetTypeOffscreenBitmapCache:
		s.OffscreenBitmapCacheCapabilitySet = &OffscreenBitmapCacheCapabilitySet{}
		return s.OffscreenBitmapCacheCapabilitySet.Deserialize(r)
	case CapabilitySetTypeDrawNineGridCache:
		s.DrawNineGridCacheCapabilitySet = &DrawNineGridCacheCapabilitySet{}
		return s.DrawNineGridCacheCapabilitySet.Deserialize(r)
	case CapabilitySetTypeDrawGDIPlus:
		s.DrawGDIPlusCapabilitySet = &DrawGDIPlusCapabilitySet{}
		return s.DrawGDIPlusCapabilitySet.Deserialize(r)
	case CapabilitySetTypeWindow:
		s.WindowListCapabilitySet = &WindowListCapabilitySet{}
		return s.WindowListCapabilitySet.Deserialize(r)
	default:
		s.Raw = body
	}

	return nil
}

// ReadCapabilitySets parses a capability blob laid out like the
// capabilitySets field of a Demand Active or Confirm Active PDU: a uint16
// set count, two pad octets, then the packed sets.
func ReadCapabilitySets(wire io.Reader) ([]CapabilitySet, error) {
	var (
		numberCapabilities uint16
		padding            uint16
	)

	err := binary.Read(wire, binary.LittleEndian, &numberCapabilities)
	if err != nil {
		return nil, err
	}

	err = binary.Read(wire, binary.LittleEndian, &padding)
	if err != nil {
		return nil, err
	}

	sets := make([]CapabilitySet, numberCapabilities)
	for i := range sets {
		err = sets[i].Deserialize(wire)
		if err != nil {
			return nil, fmt.Errorf("capability set %d of %d: %w", i+1, numberCapabilities, err)
		}
	}

	return sets, nil
}

// WriteCapabilitySets encodes sets in the layout ReadCapabilitySets parses.
func WriteCapabilitySets(sets []CapabilitySet) []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, uint16(len(sets)))
	_ = binary.Write(buf, binary.LittleEndian, uint16(0)) // padding

	for i := range sets {
		buf.Write(sets[i].Serialize())
	}

	return buf.Bytes()
}
