package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/kulaginds/rdp-orders/internal/orders"
	"github.com/kulaginds/rdp-orders/internal/protocol/pdu"
)

// maxFrameSize rejects frame lengths no real orders update reaches, so a
// corrupt length prefix fails fast instead of allocating gigabytes.
const maxFrameSize = 16 << 20

// walkCapture reads length-prefixed frames from the capture file and hands
// each payload to fn. A frame is a uint32 LE length followed by the payload.
func walkCapture(path string, fn func(frame int, payload []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var header [4]byte

	for frame := 1; ; frame++ {
		_, err := io.ReadFull(f, header[:])
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("frame %d header: %w", frame, err)
		}

		length := binary.LittleEndian.Uint32(header[:])
		if length > maxFrameSize {
			return fmt.Errorf("frame %d: length %d exceeds %d", frame, length, maxFrameSize)
		}

		payload := make([]byte, length)
		if _, err := io.ReadFull(f, payload); err != nil {
			return fmt.Errorf("frame %d payload: %w", frame, err)
		}

		if err := fn(frame, payload); err != nil {
			return err
		}
	}
}

// decoderSettings builds decoder settings from the --caps and --relaxed
// flags. Without a capability blob everything is announced.
func decoderSettings() (*orders.Settings, error) {
	if capsFlag == "" {
		settings := orders.PermissiveSettings()
		settings.RelaxedOrderChecks = relaxedFlag

		return settings, nil
	}

	f, err := os.Open(capsFlag)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sets, err := pdu.ReadCapabilitySets(f)
	if err != nil {
		return nil, fmt.Errorf("reading capability sets from %s: %w", capsFlag, err)
	}

	settings := pdu.BuildSettings(sets)
	settings.RelaxedOrderChecks = relaxedFlag

	return settings, nil
}
