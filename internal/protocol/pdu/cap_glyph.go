package pdu

import (
	"bytes"
	"encoding/binary"
	"io"
)

// GlyphSupportLevel specifies the level of glyph caching support
// (MS-RDPBCGR 2.2.7.1.8).
type GlyphSupportLevel uint16

const (
	// GlyphSupportLevelNone GLYPH_SUPPORT_NONE
	GlyphSupportLevelNone GlyphSupportLevel = 0

	// GlyphSupportLevelPartial GLYPH_SUPPORT_PARTIAL
	GlyphSupportLevelPartial GlyphSupportLevel = 1

	// GlyphSupportLevelFull GLYPH_SUPPORT_FULL
	GlyphSupportLevelFull GlyphSupportLevel = 2

	// GlyphSupportLevelEncode GLYPH_SUPPORT_ENCODE
	GlyphSupportLevelEncode GlyphSupportLevel = 3
)

// CacheDefinition describes one glyph cache: its entry count and the
// maximum size in bytes of an entry (MS-RDPBCGR 2.2.7.1.8.1).
type CacheDefinition struct {
	CacheEntries         uint16
	CacheMaximumCellSize uint16
}

// Serialize encodes the cache definition to wire format.
func (d *CacheDefinition) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, d.CacheEntries)
	_ = binary.Write(buf, binary.LittleEndian, d.CacheMaximumCellSize)

	return buf.Bytes()
}

// Deserialize decodes the cache definition from wire format.
func (d *CacheDefinition) Deserialize(wire io.Reader) error {
	err := binary.Read(wire, binary.LittleEndian, &d.CacheEntries)
	if err != nil {
		return err
	}

	return binary.Read(wire, binary.LittleEndian, &d.CacheMaximumCellSize)
}

// GlyphCacheCapabilitySet represents the Glyph Cache Capability Set
// (MS-RDPBCGR 2.2.7.1.8).
type GlyphCacheCapabilitySet struct {
	GlyphCache        [10]CacheDefinition
	FragCache         uint32
	GlyphSupportLevel GlyphSupportLevel
}

// NewGlyphCacheCapabilitySet creates a Glyph Cache Capability Set with the
// cache layout most clients advertise and revision 2 glyph support.
func NewGlyphCacheCapabilitySet() CapabilitySet {
	set := &GlyphCacheCapabilitySet{
		FragCache:         0x01000100, // 256 entries of 256 bytes
		GlyphSupportLevel: GlyphSupportLevelEncode,
	}

	for i := range set.GlyphCache {
		set.GlyphCache[i] = CacheDefinition{CacheEntries: 254, CacheMaximumCellSize: 4}
	}

	return CapabilitySet{
		CapabilitySetType:       CapabilitySetTypeGlyphCache,
		GlyphCacheCapabilitySet: set,
	}
}

// Serialize encodes the capability set body to wire format.
func (s *GlyphCacheCapabilitySet) Serialize() []byte {
	buf := new(bytes.Buffer)

	for i := range s.GlyphCache {
		buf.Write(s.GlyphCache[i].Serialize())
	}

	_ = binary.Write(buf, binary.LittleEndian, s.FragCache)
	_ = binary.Write(buf, binary.LittleEndian, s.GlyphSupportLevel)
	_ = binary.Write(buf, binary.LittleEndian, uint16(0)) // padding

	return buf.Bytes()
}

// Deserialize decodes the capability set body from wire format.
func (s *GlyphCacheCapabilitySet) Deserialize(wire io.Reader) error {
	var err error

	for i := range s.GlyphCache {
		err = s.GlyphCache[i].Deserialize(wire)
		if err != nil {
			return err
		}
	}

	err = binary.Read(wire, binary.LittleEndian, &s.FragCache)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.GlyphSupportLevel)
	if err != nil {
		return err
	}

	var padding uint16
	return binary.Read(wire, binary.LittleEndian, &padding)
}
