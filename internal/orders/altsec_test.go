package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOneAltSec(t *testing.T, data []byte) AltSecOrder {
	t.Helper()

	var got AltSecOrder

	h := &testHandler{onAltSec: func(o AltSecOrder) error {
		got = o
		return nil
	}}

	d := NewDecoder(nil, h, nil)
	require.NoError(t, d.ProcessOrders(ordersUpdate(1, data)))
	require.NotNil(t, got)

	return got
}

func TestEncodeAltSec_Framing(t *testing.T) {
	data, err := EncodeAltSec(&FrameMarker{Action: FrameEnd})
	require.NoError(t, err)

	want := []byte{
		byte(TypeFrameMarker) << 2, // control, standard bit clear
		0x01, 0x00, 0x00, 0x00,     // action
	}
	assert.Equal(t, want, data)
	assert.Zero(t, data[0]&ControlStandard)
}

func TestEncodeAltSec_OffscreenDeleteList(t *testing.T) {
	data, err := EncodeAltSec(&CreateOffscreenBitmap{
		ID:         3,
		Width:      16,
		Height:     8,
		DeleteList: []uint16{1, 2},
	})
	require.NoError(t, err)

	want := []byte{
		byte(TypeCreateOffscreenBitmap) << 2, // control
		0x03, 0x80,                           // id 3, delete list present
		0x10, 0x00, // cx
		0x08, 0x00, // cy
		0x02, 0x00, // delete list count
		0x01, 0x00, // entry 0
		0x02, 0x00, // entry 1
	}
	assert.Equal(t, want, data)
}

func TestEncodeAltSec_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		order AltSecOrder
	}{
		{
			name:  "SwitchSurface",
			order: &SwitchSurface{Bitmap: 0xFFFF},
		},
		{
			name:  "CreateOffscreenBitmap",
			order: &CreateOffscreenBitmap{ID: 5, Width: 64, Height: 64},
		},
		{
			name: "CreateOffscreenBitmap delete list",
			order: &CreateOffscreenBitmap{
				ID:         2,
				Width:      16,
				Height:     8,
				DeleteList: []uint16{1, 3, 7},
			},
		},
		{
			name: "StreamBitmapFirst",
			order: &StreamBitmapFirst{
				Flags:      StreamBitmapCompressed,
				BPP:        16,
				BitmapType: 1,
				Width:      32,
				Height:     32,
				TotalSize:  0x1234,
				Block:      []byte{0x01, 0x02, 0x03, 0x04},
			},
		},
		{
			name: "StreamBitmapFirst rev2",
			order: &StreamBitmapFirst{
				Flags:      StreamBitmapRev2,
				BPP:        24,
				BitmapType: 1,
				Width:      64,
				Height:     64,
				TotalSize:  0x12345,
				Block:      []byte{0xAA, 0xBB},
			},
		},
		{
			name: "StreamBitmapNext",
			order: &StreamBitmapNext{
				Flags:      StreamBitmapEnd,
				BitmapType: 1,
				Block:      []byte{0xCC, 0xDD, 0xEE},
			},
		},
		{
			name: "CreateNineGridBitmap",
			order: &CreateNineGridBitmap{
				BPP:          32,
				Bitmap:       3,
				Flags:        1,
				LeftWidth:    4,
				RightWidth:   5,
				TopHeight:    6,
				BottomHeight: 7,
				Transparent:  0x00ABCDEF,
			},
		},
		{
			name: "GdiPlusFirst",
			order: &GdiPlusFirst{
				TotalSize:    100,
				TotalEmfSize: 80,
				Data:         []byte{0x10, 0x20, 0x30},
			},
		},
		{
			name:  "GdiPlusNext",
			order: &GdiPlusNext{Data: []byte{0x40, 0x50}},
		},
		{
			name: "GdiPlusEnd",
			order: &GdiPlusEnd{
				TotalSize:    100,
				TotalEmfSize: 80,
				Data:         []byte{0x60},
			},
		},
		{
			name: "GdiPlusCacheFirst",
			order: &GdiPlusCacheFirst{
				Flags:      1,
				CacheType:  2,
				CacheIndex: 3,
				TotalSize:  64,
				Data:       []byte{0x70, 0x71, 0x72, 0x73},
			},
		},
		{
			name: "GdiPlusCacheNext",
			order: &GdiPlusCacheNext{
				Flags:      1,
				CacheType:  2,
				CacheIndex: 3,
				Data:       []byte{0x74, 0x75},
			},
		},
		{
			name: "GdiPlusCacheEnd",
			order: &GdiPlusCacheEnd{
				Flags:      1,
				CacheType:  2,
				CacheIndex: 4,
				TotalSize:  64,
				Data:       []byte{0x76},
			},
		},
		{
			name: "Window",
			order: &Window{
				FieldFlags: 0x0000000B,
				Data:       []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			},
		},
		{
			name:  "CompDeskFirst",
			order: &CompDeskFirst{},
		},
		{
			name:  "FrameMarker",
			order: &FrameMarker{Action: FrameStart},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeAltSec(tt.order)
			require.NoError(t, err)

			got := decodeOneAltSec(t, data)
			assert.Equal(t, tt.order, got)
		})
	}
}

func TestEncodeAltSec_OffscreenZeroDimensions(t *testing.T) {
	_, err := EncodeAltSec(&CreateOffscreenBitmap{ID: 1, Width: 0, Height: 8})
	require.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestEncodeAltSec_StreamBitmapBadBPP(t *testing.T) {
	_, err := EncodeAltSec(&StreamBitmapFirst{BPP: 0, TotalSize: 1, Block: []byte{0x01}})
	require.ErrorIs(t, err, ErrInvalidEnumerant)

	_, err = EncodeAltSec(&StreamBitmapFirst{BPP: 33, TotalSize: 1, Block: []byte{0x01}})
	require.ErrorIs(t, err, ErrInvalidEnumerant)
}

func TestEncodeAltSec_StreamBitmapSizeNeedsRev2(t *testing.T) {
	_, err := EncodeAltSec(&StreamBitmapFirst{
		BPP:       16,
		TotalSize: 0x10000,
		Block:     []byte{0x01},
	})
	require.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestDecoder_OffscreenZeroDimensions(t *testing.T) {
	data := []byte{
		byte(TypeCreateOffscreenBitmap) << 2, // control
		0x05, 0x00,                           // id 5
		0x00, 0x00, // cx 0
		0x08, 0x00, // cy 8
	}

	d := NewDecoder(nil, &testHandler{}, nil)

	err := d.ProcessOrders(ordersUpdate(1, data))
	require.ErrorIs(t, err, ErrInvalidEnumerant)
}

func TestDecoder_WindowOrderTooShort(t *testing.T) {
	data := []byte{
		byte(TypeWindow) << 2, // control
		0x06, 0x00,            // order size below the seven-byte minimum
	}

	d := NewDecoder(nil, &testHandler{}, nil)

	err := d.ProcessOrders(ordersUpdate(1, data))
	require.ErrorIs(t, err, ErrInvalidEnumerant)
}

func TestDecoder_UnknownAltSecType(t *testing.T) {
	data := []byte{0x0E << 2}

	d := NewDecoder(nil, &testHandler{}, nil)

	err := d.ProcessOrders(ordersUpdate(1, data))
	require.ErrorIs(t, err, ErrInvalidOrderType)
}

func TestDecoder_AltSecParseFailureFatal(t *testing.T) {
	good, err := EncodeAltSec(&FrameMarker{Action: FrameStart})
	require.NoError(t, err)

	// Switch surface truncated after one byte of its two-byte bitmap id.
	bad := []byte{byte(TypeSwitchSurface) << 2, 0xFF}

	calls := 0
	h := &testHandler{onAltSec: func(o AltSecOrder) error {
		calls++
		return nil
	}}

	d := NewDecoder(nil, h, nil)

	err = d.ProcessOrders(ordersUpdate(2, good, bad))
	require.ErrorIs(t, err, ErrShortStream)
	assert.Equal(t, 1, calls, "frame marker before the truncated order")
}

func TestDecoder_AltSecNotNegotiated(t *testing.T) {
	data, err := EncodeAltSec(&SwitchSurface{Bitmap: 7})
	require.NoError(t, err)

	settings := PermissiveSettings()
	settings.OffscreenSupportLevel = 0
	settings.RelaxedOrderChecks = false

	calls := 0
	h := &testHandler{onAltSec: func(o AltSecOrder) error {
		calls++
		return nil
	}}

	d := NewDecoder(settings, h, nil)

	err = d.ProcessOrders(ordersUpdate(1, data))
	require.ErrorIs(t, err, ErrOrderNotNegotiated)
	assert.Zero(t, calls)

	settings.RelaxedOrderChecks = true

	d = NewDecoder(settings, h, nil)
	require.NoError(t, d.ProcessOrders(ordersUpdate(1, data)))
	assert.Equal(t, 1, calls)
}
