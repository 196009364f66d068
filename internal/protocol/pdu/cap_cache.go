package pdu

import (
	"bytes"
	"encoding/binary"
	"io"
)

// BitmapCacheCapabilitySetRev1 represents the Revision 1 Bitmap Cache
// Capability Set (MS-RDPBCGR 2.2.7.1.4.1).
type BitmapCacheCapabilitySetRev1 struct {
	Cache0Entries         uint16
	Cache0MaximumCellSize uint16
	Cache1Entries         uint16
	Cache1MaximumCellSize uint16
	Cache2Entries         uint16
	Cache2MaximumCellSize uint16
}

// NewBitmapCacheCapabilitySetRev1 creates a revision 1 bitmap cache
// capability set with the cell geometry from the protocol examples.
func NewBitmapCacheCapabilitySetRev1() CapabilitySet {
	return CapabilitySet{
		CapabilitySetType: CapabilitySetTypeBitmapCache,
		BitmapCacheCapabilitySetRev1: &BitmapCacheCapabilitySetRev1{
			Cache0Entries:         200,
			Cache0MaximumCellSize: 256,
			Cache1Entries:         600,
			Cache1MaximumCellSize: 1024,
			Cache2Entries:         1000,
			Cache2MaximumCellSize: 4096,
		},
	}
}

// Serialize encodes the capability set body to wire format.
func (s *BitmapCacheCapabilitySetRev1) Serialize() []byte {
	buf := new(bytes.Buffer)

	buf.Write(make([]byte, 24)) // padding
	_ = binary.Write(buf, binary.LittleEndian, s.Cache0Entries)
	_ = binary.Write(buf, binary.LittleEndian, s.Cache0MaximumCellSize)
	_ = binary.Write(buf, binary.LittleEndian, s.Cache1Entries)
	_ = binary.Write(buf, binary.LittleEndian, s.Cache1MaximumCellSize)
	_ = binary.Write(buf, binary.LittleEndian, s.Cache2Entries)
	_ = binary.Write(buf, binary.LittleEndian, s.Cache2MaximumCellSize)

	return buf.Bytes()
}

// Deserialize decodes the capability set body from wire format.
func (s *BitmapCacheCapabilitySetRev1) Deserialize(wire io.Reader) error {
	var (
		padding [24]byte
		err     error
	)

	err = binary.Read(wire, binary.LittleEndian, &padding)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.Cache0Entries)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.Cache0MaximumCellSize)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.Cache1Entries)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.Cache1MaximumCellSize)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.Cache2Entries)
	if err != nil {
		return err
	}

	return binary.Read(wire, binary.LittleEndian, &s.Cache2MaximumCellSize)
}

// Bitmap cache flags for the revision 2 capability set
// (MS-RDPBCGR 2.2.7.1.4.2).
const (
	PersistentKeysExpectedFlag uint16 = 0x0001
	AllowCacheWaitingListFlag  uint16 = 0x0002
)

// BitmapCacheCapabilitySetRev2 represents the Revision 2 Bitmap Cache
// Capability Set (MS-RDPBCGR 2.2.7.1.4.2). Each cell info word packs the
// entry count in the low 31 bits and the persistent flag in the high bit.
type BitmapCacheCapabilitySetRev2 struct {
	CacheFlags           uint16
	NumCellCaches        uint8
	BitmapCache0CellInfo uint32
	BitmapCache1CellInfo uint32
	BitmapCache2CellInfo uint32
	BitmapCache3CellInfo uint32
	BitmapCache4CellInfo uint32
}

// NewBitmapCacheCapabilitySetRev2 creates a revision 2 bitmap cache
// capability set allowing the cache waiting list.
func NewBitmapCacheCapabilitySetRev2() CapabilitySet {
	return CapabilitySet{
		CapabilitySetType: CapabilitySetTypeBitmapCacheRev2,
		BitmapCacheCapabilitySetRev2: &BitmapCacheCapabilitySetRev2{
			CacheFlags:           AllowCacheWaitingListFlag,
			NumCellCaches:        3,
			BitmapCache0CellInfo: 120,
			BitmapCache1CellInfo: 120,
			BitmapCache2CellInfo: 336,
		},
	}
}

// Serialize encodes the capability set body to wire format.
func (s *BitmapCacheCapabilitySetRev2) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, s.CacheFlags)
	_ = binary.Write(buf, binary.LittleEndian, uint8(0)) // padding
	_ = binary.Write(buf, binary.LittleEndian, s.NumCellCaches)
	_ = binary.Write(buf, binary.LittleEndian, s.BitmapCache0CellInfo)
	_ = binary.Write(buf, binary.LittleEndian, s.BitmapCache1CellInfo)
	_ = binary.Write(buf, binary.LittleEndian, s.BitmapCache2CellInfo)
	_ = binary.Write(buf, binary.LittleEndian, s.BitmapCache3CellInfo)
	_ = binary.Write(buf, binary.LittleEndian, s.BitmapCache4CellInfo)
	buf.Write(make([]byte, 12)) // padding

	return buf.Bytes()
}

// Deserialize decodes the capability set body from wire format.
func (s *BitmapCacheCapabilitySetRev2) Deserialize(wire io.Reader) error {
	var err error

	err = binary.Read(wire, binary.LittleEndian, &s.CacheFlags)
	if err != nil {
		return err
	}

	var padding uint8
	err = binary.Read(wire, binary.LittleEndian, &padding)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.NumCellCaches)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.BitmapCache0CellInfo)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.BitmapCache1CellInfo)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.BitmapCache2CellInfo)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.BitmapCache3CellInfo)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.BitmapCache4CellInfo)
	if err != nil {
		return err
	}

	var padding2 [12]byte
	return binary.Read(wire, binary.LittleEndian, &padding2)
}
