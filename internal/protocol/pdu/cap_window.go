package pdu

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Window support levels (MS-RDPERP 2.2.1.1.2).
const (
	WindowLevelNotSupported uint32 = 0
	WindowLevelSupported    uint32 = 1
	WindowLevelSupportedEx  uint32 = 2
)

// WindowListCapabilitySet represents the Window List Capability Set
// (MS-RDPERP 2.2.1.1.2). A non-zero support level enables the windowing
// alternate secondary order.
type WindowListCapabilitySet struct {
	WndSupportLevel     uint32
	NumIconCaches       uint8
	NumIconCacheEntries uint16
}

// NewWindowListCapabilitySet creates a window list capability set
// announcing extended windowing support.
func NewWindowListCapabilitySet() CapabilitySet {
	return CapabilitySet{
		CapabilitySetType: CapabilitySetTypeWindow,
		WindowListCapabilitySet: &WindowListCapabilitySet{
			WndSupportLevel:     WindowLevelSupportedEx,
			NumIconCaches:       3,
			NumIconCacheEntries: 12,
		},
	}
}

// Serialize encodes the capability set body to wire format.
func (s *WindowListCapabilitySet) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, s.WndSupportLevel)
	_ = binary.Write(buf, binary.LittleEndian, s.NumIconCaches)
	_ = binary.Write(buf, binary.LittleEndian, s.NumIconCacheEntries)

	return buf.Bytes()
}

// Deserialize decodes the capability set body from wire format.
func (s *WindowListCapabilitySet) Deserialize(wire io.Reader) error {
	err := binary.Read(wire, binary.LittleEndian, &s.WndSupportLevel)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.NumIconCaches)
	if err != nil {
		return err
	}

	return binary.Read(wire, binary.LittleEndian, &s.NumIconCacheEntries)
}
