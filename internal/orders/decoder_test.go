package orders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler dispatches to its function fields and accepts everything a
// field is not set for.
type testHandler struct {
	onClip      func(*Bounds) error
	onPrimary   func(PrimaryOrder) error
	onSecondary func(SecondaryOrder) error
	onAltSec    func(AltSecOrder) error
}

func (h *testHandler) SetClip(bounds *Bounds) error {
	if h.onClip == nil {
		return nil
	}

	return h.onClip(bounds)
}

func (h *testHandler) Primary(order PrimaryOrder) error {
	if h.onPrimary == nil {
		return nil
	}

	return h.onPrimary(order)
}

func (h *testHandler) Secondary(order SecondaryOrder) error {
	if h.onSecondary == nil {
		return nil
	}

	return h.onSecondary(order)
}

func (h *testHandler) AltSec(order AltSecOrder) error {
	if h.onAltSec == nil {
		return nil
	}

	return h.onAltSec(order)
}

// ordersUpdate frames encoded orders as a fast-path orders update body.
// The count is explicit so tests can announce more orders than they carry.
func ordersUpdate(count int, orders ...[]byte) []byte {
	update := []byte{byte(count), byte(count >> 8)}

	for _, order := range orders {
		update = append(update, order...)
	}

	return update
}

func decodeOnePrimary(t *testing.T, data []byte) PrimaryOrder {
	t.Helper()

	var got PrimaryOrder

	h := &testHandler{onPrimary: func(o PrimaryOrder) error {
		got = o
		return nil
	}}

	d := NewDecoder(nil, h, nil)
	require.NoError(t, d.ProcessOrders(ordersUpdate(1, data)))
	require.NotNil(t, got)

	return got
}

func TestDecoder_EmptyUpdate(t *testing.T) {
	called := false

	h := &testHandler{onPrimary: func(PrimaryOrder) error {
		called = true
		return nil
	}}

	d := NewDecoder(nil, h, nil)

	require.NoError(t, d.ProcessOrders(ordersUpdate(0)))
	assert.False(t, called)
}

func TestDecoder_TruncatedUpdate(t *testing.T) {
	d := NewDecoder(nil, &testHandler{}, nil)

	// Half an order count.
	require.ErrorIs(t, d.ProcessOrders([]byte{0x01}), ErrShortStream)

	// One order announced, none carried.
	require.ErrorIs(t, d.ProcessOrders(ordersUpdate(1)), ErrShortStream)
}

func TestDecoder_SlowPathUpdate(t *testing.T) {
	order, err := EncodeAltSec(&FrameMarker{Action: FrameEnd})
	require.NoError(t, err)

	update := []byte{
		0x00, 0x00, // pad2OctetsA
		0x01, 0x00, // number of orders
		0x00, 0x00, // pad2OctetsB
	}
	update = append(update, order...)

	var got AltSecOrder

	h := &testHandler{onAltSec: func(o AltSecOrder) error {
		got = o
		return nil
	}}

	d := NewDecoder(nil, h, nil)

	require.NoError(t, d.ProcessSlowPathOrders(update))
	assert.Equal(t, &FrameMarker{Action: FrameEnd}, got)
}

func TestDecoder_MixedUpdate(t *testing.T) {
	primary, err := EncodePrimary(&OpaqueRect{Left: 10, Top: 20, Width: 30, Height: 40, Color: 0x112233})
	require.NoError(t, err)

	secondary, err := EncodeSecondary(&CacheBrush{
		Index:  1,
		BPP:    1,
		Width:  8,
		Height: 8,
		Length: 8,
		Data:   []byte{0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55},
	})
	require.NoError(t, err)

	altsec, err := EncodeAltSec(&FrameMarker{Action: FrameEnd})
	require.NoError(t, err)

	var sequence []string

	h := &testHandler{
		onPrimary: func(PrimaryOrder) error {
			sequence = append(sequence, "primary")
			return nil
		},
		onSecondary: func(SecondaryOrder) error {
			sequence = append(sequence, "secondary")
			return nil
		},
		onAltSec: func(AltSecOrder) error {
			sequence = append(sequence, "altsec")
			return nil
		},
	}

	d := NewDecoder(nil, h, nil)

	require.NoError(t, d.ProcessOrders(ordersUpdate(3, primary, secondary, altsec)))
	assert.Equal(t, []string{"primary", "secondary", "altsec"}, sequence)
}

func TestDecoder_OrderErrorContext(t *testing.T) {
	good, err := EncodeAltSec(&FrameMarker{Action: FrameStart})
	require.NoError(t, err)

	// 0x03 is not assigned to any primary order.
	bad := []byte{ControlStandard | ControlTypeChange, 0x03}

	d := NewDecoder(nil, &testHandler{}, nil)

	err = d.ProcessOrders(ordersUpdate(2, good, bad))
	require.ErrorIs(t, err, ErrInvalidOrderType)
	assert.ErrorContains(t, err, "order 2 of 2")
}

func TestDecoder_HandlerErrorsFatal(t *testing.T) {
	errHandler := errors.New("handler rejected")

	primary, err := EncodePrimary(&DstBlt{Left: 1, Top: 2, Width: 3, Height: 4, ROP: 0xCC})
	require.NoError(t, err)

	secondary, err := EncodeSecondary(&CacheBrush{
		Index:  1,
		BPP:    1,
		Width:  8,
		Height: 8,
		Length: 8,
		Data:   []byte{0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55},
	})
	require.NoError(t, err)

	altsec, err := EncodeAltSec(&FrameMarker{Action: FrameStart})
	require.NoError(t, err)

	// An opaque rect carrying bounds with zero deltas, so the only handler
	// call it can reach is SetClip.
	bounded := []byte{
		ControlStandard | ControlTypeChange | ControlBounds | ControlZeroBoundsDeltas,
		byte(TypeOpaqueRect), // order type
		0x00,                 // field flags, nothing present
	}

	tests := []struct {
		name    string
		handler *testHandler
		order   []byte
	}{
		{
			name:    "primary",
			handler: &testHandler{onPrimary: func(PrimaryOrder) error { return errHandler }},
			order:   primary,
		},
		{
			name:    "secondary",
			handler: &testHandler{onSecondary: func(SecondaryOrder) error { return errHandler }},
			order:   secondary,
		},
		{
			name:    "altsec",
			handler: &testHandler{onAltSec: func(AltSecOrder) error { return errHandler }},
			order:   altsec,
		},
		{
			name:    "clip",
			handler: &testHandler{onClip: func(*Bounds) error { return errHandler }},
			order:   bounded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(nil, tt.handler, nil)

			err := d.ProcessOrders(ordersUpdate(1, tt.order))
			require.ErrorIs(t, err, errHandler)
		})
	}
}

func TestDecoder_PrimaryNotNegotiated(t *testing.T) {
	data, err := EncodePrimary(&OpaqueRect{Left: 1, Top: 2, Width: 3, Height: 4, Color: 0x00FF00})
	require.NoError(t, err)

	settings := &Settings{} // nothing announced, strict checks

	calls := 0
	h := &testHandler{onPrimary: func(PrimaryOrder) error {
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

func TestDecoder_SecondaryNotNegotiated(t *testing.T) {
	data, err := EncodeSecondary(&CacheBitmapV1{
		CacheID:    1,
		Width:      4,
		Height:     4,
		BPP:        16,
		CacheIndex: 9,
		Bitmap:     make([]byte, 32),
	})
	require.NoError(t, err)

	settings := PermissiveSettings()
	settings.BitmapCacheEnabled = false
	settings.RelaxedOrderChecks = false

	d := NewDecoder(settings, &testHandler{}, nil)

	err = d.ProcessOrders(ordersUpdate(1, data))
	require.ErrorIs(t, err, ErrOrderNotNegotiated)
}

// Two bounded orders of different types: the second reuses the first's
// clip rectangle through the zero-bounds-deltas control bit and its own
// persisted field state through an all-zero field mask.
func TestDecoder_SharedBoundsAcrossOrderTypes(t *testing.T) {
	dstBlt := []byte{
		ControlStandard | ControlTypeChange | ControlBounds,
		byte(TypeDstBlt),
		0x1F,       // field flags: all five fields
		0x0F,       // bounds: all edges absolute
		0x0A, 0x00, // clip left 10
		0x0A, 0x00, // clip top 10
		0x32, 0x00, // clip right 50
		0x32, 0x00, // clip bottom 50
		0x0A, 0x00, // left 10
		0x0A, 0x00, // top 10
		0x32, 0x00, // width 50
		0x32, 0x00, // height 50
		0xAA, // rop
	}

	patBlt := []byte{
		ControlStandard | ControlTypeChange | ControlBounds | ControlZeroBoundsDeltas,
		byte(TypePatBlt),
		0x00, 0x00, // field flags: everything persisted
	}

	var clips []*Bounds
	var sequence []PrimaryType

	h := &testHandler{
		onClip: func(b *Bounds) error {
			if b == nil {
				clips = append(clips, nil)
				return nil
			}

			clip := *b
			clips = append(clips, &clip)

			return nil
		},
		onPrimary: func(o PrimaryOrder) error {
			sequence = append(sequence, o.Type())

			if blt, ok := o.(*DstBlt); ok {
				assert.Equal(t, DstBlt{Left: 10, Top: 10, Width: 50, Height: 50, ROP: 0xAA}, *blt)
			}

			return nil
		},
	}

	d := NewDecoder(nil, h, nil)
	require.NoError(t, d.ProcessOrders(ordersUpdate(2, dstBlt, patBlt)))

	assert.Equal(t, []PrimaryType{TypeDstBlt, TypePatBlt}, sequence)

	clip := &Bounds{Left: 10, Top: 10, Right: 50, Bottom: 50}
	assert.Equal(t, []*Bounds{clip, nil, clip, nil}, clips)
}
