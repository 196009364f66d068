package pdu

import (
	"bytes"
	"encoding/binary"
	"io"
)

// DrawNineGridCacheCapabilitySet represents the DrawNineGrid Cache
// Capability Set (MS-RDPEGDI 2.2.1.2).
type DrawNineGridCacheCapabilitySet struct {
	DrawNineGridSupportLevel uint32
	DrawNineGridCacheSize    uint16
	DrawNineGridCacheEntries uint16
}

// NewDrawNineGridCacheCapabilitySet creates a DrawNineGrid cache capability
// set announcing revision 2 support.
func NewDrawNineGridCacheCapabilitySet() CapabilitySet {
	return CapabilitySet{
		CapabilitySetType: CapabilitySetTypeDrawNineGridCache,
		DrawNineGridCacheCapabilitySet: &DrawNineGridCacheCapabilitySet{
			DrawNineGridSupportLevel: 2, // DRAW_NINEGRID_SUPPORTED_REV2
			DrawNineGridCacheSize:    2560,
			DrawNineGridCacheEntries: 256,
		},
	}
}

// Serialize encodes the capability set body to wire format.
func (s *DrawNineGridCacheCapabilitySet) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, s.DrawNineGridSupportLevel)
	_ = binary.Write(buf, binary.LittleEndian, s.DrawNineGridCacheSize)
	_ = binary.Write(buf, binary.LittleEndian, s.DrawNineGridCacheEntries)

	return buf.Bytes()
}

// Deserialize decodes the capability set body from wire format.
func (s *DrawNineGridCacheCapabilitySet) Deserialize(wire io.Reader) error {
	err := binary.Read(wire, binary.LittleEndian, &s.DrawNineGridSupportLevel)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.DrawNineGridCacheSize)
	if err != nil {
		return err
	}

	return binary.Read(wire, binary.LittleEndian, &s.DrawNineGridCacheEntries)
}

// GDICacheEntries holds the cache entry counts from the Draw GDI+
// capability set (MS-RDPEGDI 2.2.1.3.1).
type GDICacheEntries struct {
	GdipGraphicsCacheEntries        uint16
	GdipBrushCacheEntries           uint16
	GdipPenCacheEntries             uint16
	GdipImageCacheEntries           uint16
	GdipImageAttributesCacheEntries uint16
}

// Serialize encodes the cache entries to wire format.
func (e *GDICacheEntries) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, e.GdipGraphicsCacheEntries)
	_ = binary.Write(buf, binary.LittleEndian, e.GdipBrushCacheEntries)
	_ = binary.Write(buf, binary.LittleEndian, e.GdipPenCacheEntries)
	_ = binary.Write(buf, binary.LittleEndian, e.GdipImageCacheEntries)
	_ = binary.Write(buf, binary.LittleEndian, e.GdipImageAttributesCacheEntries)

	return buf.Bytes()
}

// Deserialize decodes the cache entries from wire format.
func (e *GDICacheEntries) Deserialize(wire io.Reader) error {
	var err error

	err = binary.Read(wire, binary.LittleEndian, &e.GdipGraphicsCacheEntries)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &e.GdipBrushCacheEntries)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &e.GdipPenCacheEntries)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &e.GdipImageCacheEntries)
	if err != nil {
		return err
	}

	return binary.Read(wire, binary.LittleEndian, &e.GdipImageAttributesCacheEntries)
}

// GDICacheChunkSize holds the cache chunk sizes from the Draw GDI+
// capability set (MS-RDPEGDI 2.2.1.3.2).
type GDICacheChunkSize struct {
	GdipGraphicsCacheChunkSize              uint16
	GdipObjectBrushCacheChunkSize           uint16
	GdipObjectPenCacheChunkSize             uint16
	GdipObjectImageAttributesCacheChunkSize uint16
}

// Serialize encodes the chunk sizes to wire format.
func (s *GDICacheChunkSize) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, s.GdipGraphicsCacheChunkSize)
	_ = binary.Write(buf, binary.LittleEndian, s.GdipObjectBrushCacheChunkSize)
	_ = binary.Write(buf, binary.LittleEndian, s.GdipObjectPenCacheChunkSize)
	_ = binary.Write(buf, binary.LittleEndian, s.GdipObjectImageAttributesCacheChunkSize)

	return buf.Bytes()
}

// Deserialize decodes the chunk sizes from wire format.
func (s *GDICacheChunkSize) Deserialize(wire io.Reader) error {
	var err error

	err = binary.Read(wire, binary.LittleEndian, &s.GdipGraphicsCacheChunkSize)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.GdipObjectBrushCacheChunkSize)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.GdipObjectPenCacheChunkSize)
	if err != nil {
		return err
	}

	return binary.Read(wire, binary.LittleEndian, &s.GdipObjectImageAttributesCacheChunkSize)
}

// GDIImageCacheProperties holds the image cache properties from the
// Draw GDI+ capability set (MS-RDPEGDI 2.2.1.3.3).
type GDIImageCacheProperties struct {
	GdipObjectImageCacheChunkSize uint16
	GdipObjectImageCacheTotalSize uint16
	GdipObjectImageCacheMaxSize   uint16
}

// Serialize encodes the image cache properties to wire format.
func (p *GDIImageCacheProperties) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, p.GdipObjectImageCacheChunkSize)
	_ = binary.Write(buf, binary.LittleEndian, p.GdipObjectImageCacheTotalSize)
	_ = binary.Write(buf, binary.LittleEndian, p.GdipObjectImageCacheMaxSize)

	return buf.Bytes()
}

// Deserialize decodes the image cache properties from wire format.
func (p *GDIImageCacheProperties) Deserialize(wire io.Reader) error {
	var err error

	err = binary.Read(wire, binary.LittleEndian, &p.GdipObjectImageCacheChunkSize)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &p.GdipObjectImageCacheTotalSize)
	if err != nil {
		return err
	}

	return binary.Read(wire, binary.LittleEndian, &p.GdipObjectImageCacheMaxSize)
}

// DrawGDIPlusCapabilitySet represents the Draw GDI+ Capability Set
// (MS-RDPEGDI 2.2.1.3).
type DrawGDIPlusCapabilitySet struct {
	DrawGDIPlusSupportLevel  uint32
	GdipVersion              uint32
	DrawGdiplusCacheLevel    uint32
	GdipCacheEntries         GDICacheEntries
	GdipCacheChunkSize       GDICacheChunkSize
	GdipImageCacheProperties GDIImageCacheProperties
}

// Serialize encodes the capability set body to wire format.
func (s *DrawGDIPlusCapabilitySet) Serialize() []byte {
	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, s.DrawGDIPlusSupportLevel)
	_ = binary.Write(buf, binary.LittleEndian, s.GdipVersion)
	_ = binary.Write(buf, binary.LittleEndian, s.DrawGdiplusCacheLevel)

	buf.Write(s.GdipCacheEntries.Serialize())
	buf.Write(s.GdipCacheChunkSize.Serialize())
	buf.Write(s.GdipImageCacheProperties.Serialize())

	return buf.Bytes()
}

// Deserialize decodes the capability set body from wire format.
func (s *DrawGDIPlusCapabilitySet) Deserialize(wire io.Reader) error {
	var err error

	err = binary.Read(wire, binary.LittleEndian, &s.DrawGDIPlusSupportLevel)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.GdipVersion)
	if err != nil {
		return err
	}

	err = binary.Read(wire, binary.LittleEndian, &s.DrawGdiplusCacheLevel)
	if err != nil {
		return err
	}

	err = s.GdipCacheEntries.Deserialize(wire)
	if err != nil {
		return err
	}

	err = s.GdipCacheChunkSize.Deserialize(wire)
	if err != nil {
		return err
	}

	return s.GdipImageCacheProperties.Deserialize(wire)
}
