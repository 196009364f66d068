package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoByteUnsigned_Decode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{name: "single byte", data: []byte{0x7E}, want: 126},
		{name: "single byte zero", data: []byte{0x00}, want: 0},
		{name: "two bytes", data: []byte{0x92, 0x34}, want: 0x1234},
		{name: "two bytes max", data: []byte{0xFF, 0xFF}, want: 0x7FFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReader(tt.data)

			v, err := r.twoByteUnsigned()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, 0, r.remaining())
		})
	}
}

func TestTwoByteUnsigned_RoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 0x7E, 0x7F, 0x80, 0x1234, 0x7FFF} {
		var w writer
		require.NoError(t, w.twoByteUnsigned(v))

		r := newReader(w.data())

		got, err := r.twoByteUnsigned()
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %#x", v)
	}
}

func TestTwoByteUnsigned_OutOfRange(t *testing.T) {
	var w writer

	err := w.twoByteUnsigned(0x8000)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestTwoByteSigned_Decode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int32
	}{
		{name: "positive short", data: []byte{0x05}, want: 5},
		{name: "negative short", data: []byte{0x45}, want: -5},
		{name: "positive long", data: []byte{0x81, 0x23}, want: 0x123},
		{name: "negative long", data: []byte{0xC1, 0x23}, want: -0x123},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReader(tt.data)

			v, err := r.twoByteSigned()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestTwoByteSigned_RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 5, -5, 0x3E, 0x3F, -0x3F, 0x123, -0x123, 0x3FFF, -0x3FFF} {
		var w writer
		require.NoError(t, w.twoByteSigned(v))

		r := newReader(w.data())

		got, err := r.twoByteSigned()
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %d", v)
	}
}

func TestTwoByteSigned_OutOfRange(t *testing.T) {
	var w writer

	assert.ErrorIs(t, w.twoByteSigned(0x4000), ErrValueOutOfRange)
	assert.ErrorIs(t, w.twoByteSigned(-0x4000), ErrValueOutOfRange)
}

func TestFourByteUnsigned_Decode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{name: "one byte", data: []byte{0x3F}, want: 0x3F},
		{name: "two bytes", data: []byte{0x52, 0x34}, want: 0x1234},
		{name: "three bytes", data: []byte{0x92, 0x34, 0x56}, want: 0x123456},
		{name: "four bytes", data: []byte{0xD2, 0x34, 0x56, 0x78}, want: 0x12345678},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReader(tt.data)

			v, err := r.fourByteUnsigned()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, 0, r.remaining())
		})
	}
}

func TestFourByteUnsigned_RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 0x3F, 0x40, 0x3FFF, 0x4000, 0x3FFFFF, 0x400000, 0x3FFFFFFF} {
		var w writer
		require.NoError(t, w.fourByteUnsigned(v))

		r := newReader(w.data())

		got, err := r.fourByteUnsigned()
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %#x", v)
	}
}

func TestFourByteUnsigned_OutOfRange(t *testing.T) {
	var w writer

	assert.ErrorIs(t, w.fourByteUnsigned(0x40000000), ErrValueOutOfRange)
}

func TestDelta_Decode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int32
	}{
		{name: "positive short", data: []byte{0x05}, want: 5},
		{name: "negative short", data: []byte{0x7B}, want: -5},
		{name: "positive long", data: []byte{0x80, 0x64}, want: 100},
		{name: "negative long", data: []byte{0xFF, 0x9C}, want: -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReader(tt.data)

			v, err := r.delta()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestDelta_RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 63, -64, 64, -65, 100, -100, 16383, -16384} {
		var w writer
		require.NoError(t, w.delta(v))

		r := newReader(w.data())

		got, err := r.delta()
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %d", v)
	}
}

func TestDelta_OutOfRange(t *testing.T) {
	var w writer

	assert.ErrorIs(t, w.delta(16384), ErrValueOutOfRange)
	assert.ErrorIs(t, w.delta(-16385), ErrValueOutOfRange)
}

func TestColor_Decode(t *testing.T) {
	r := newReader([]byte{0x12, 0x34, 0x56})

	c, err := r.color()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x563412), c)
}

func TestColorRef_RoundTrip(t *testing.T) {
	var w writer

	w.colorRef(0x563412)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x00}, w.data())

	r := newReader(w.data())

	c, err := r.colorRef()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x563412), c)
	assert.Equal(t, 0, r.remaining())
}

func TestDeltaRects_Decode(t *testing.T) {
	data := []byte{
		0x00, // zero bits: all fields present for both rectangles
		0x0A, // rect 0 left delta 10
		0x14, // rect 0 top delta 20
		0x1E, // rect 0 width 30
		0x28, // rect 0 height 40
		0x05, // rect 1 left delta 5
		0x06, // rect 1 top delta 6
		0x07, // rect 1 width 7
		0x08, // rect 1 height 8
	}

	r := newReader(data)

	rects, err := r.deltaRects(2)
	require.NoError(t, err)
	require.Len(t, rects, 2)

	assert.Equal(t, DeltaRect{Left: 10, Top: 20, Width: 30, Height: 40}, rects[0])
	// left and top accumulate against the previous rectangle
	assert.Equal(t, DeltaRect{Left: 15, Top: 26, Width: 7, Height: 8}, rects[1])
}

func TestDeltaRects_InheritDimensions(t *testing.T) {
	data := []byte{
		0x03, // second rectangle omits width and height
		0x0A, // rect 0 left delta 10
		0x14, // rect 0 top delta 20
		0x1E, // rect 0 width 30
		0x28, // rect 0 height 40
		0x05, // rect 1 left delta 5
		0x06, // rect 1 top delta 6
	}

	r := newReader(data)

	rects, err := r.deltaRects(2)
	require.NoError(t, err)
	require.Len(t, rects, 2)

	assert.Equal(t, DeltaRect{Left: 15, Top: 26, Width: 30, Height: 40}, rects[1])
}

func TestDeltaRects_TooMany(t *testing.T) {
	r := newReader(make([]byte, 256))

	_, err := r.deltaRects(46)
	assert.ErrorIs(t, err, ErrBoundExceeded)
}

func TestDeltaRects_RoundTrip(t *testing.T) {
	rects := []DeltaRect{
		{Left: 10, Top: 20, Width: 30, Height: 40},
		{Left: 15, Top: 26, Width: 7, Height: 8},
		{Left: 8, Top: 30, Width: 7, Height: 8},
	}

	var w writer
	require.NoError(t, w.deltaRects(rects))

	r := newReader(w.data())

	got, err := r.deltaRects(3)
	require.NoError(t, err)
	assert.Equal(t, rects, got)
}

func TestDeltaPoints_Decode(t *testing.T) {
	data := []byte{
		0x00, // zero bits: x and y present for both points
		0x0A, // point 0 x
		0x14, // point 0 y
		0x05, // point 1 x
		0x06, // point 1 y
	}

	r := newReader(data)

	points, err := r.deltaPoints(2)
	require.NoError(t, err)
	require.Len(t, points, 2)

	// point deltas are not accumulated
	assert.Equal(t, DeltaPoint{X: 10, Y: 20}, points[0])
	assert.Equal(t, DeltaPoint{X: 5, Y: 6}, points[1])
}

func TestDeltaPoints_AbsentComponents(t *testing.T) {
	data := []byte{
		0x30, // second point omits x and y
		0x0A, // point 0 x
		0x14, // point 0 y
	}

	r := newReader(data)

	points, err := r.deltaPoints(2)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, DeltaPoint{X: 10, Y: 20}, points[0])
	assert.Equal(t, DeltaPoint{}, points[1])
}

func TestDeltaPoints_RoundTrip(t *testing.T) {
	points := []DeltaPoint{{X: 10, Y: 20}, {X: -5, Y: 6}, {X: 100, Y: -100}, {X: 0, Y: 0}, {X: 1, Y: 1}}

	var w writer
	require.NoError(t, w.deltaPoints(points))

	r := newReader(w.data())

	got, err := r.deltaPoints(5)
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestReadBrush_Standard(t *testing.T) {
	data := []byte{
		0x01, // x
		0x02, // y
		0x02, // style: hatched
		0x05, // hatch
	}

	r := newReader(data)

	var b Brush
	require.NoError(t, r.readBrush(&b, 0x0F))

	assert.Equal(t, byte(0x01), b.X)
	assert.Equal(t, byte(0x02), b.Y)
	assert.Equal(t, byte(0x02), b.Style)
	assert.Equal(t, byte(0x05), b.Hatch)
	assert.Equal(t, byte(0x00), b.Index)
}

func TestReadBrush_Cached(t *testing.T) {
	data := []byte{
		0x01,                                     // x
		0x02,                                     // y
		0x83,                                     // style: cached, BMF_8BPP
		0x05,                                     // hatch carries the cache index
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, // pattern data
	}

	r := newReader(data)

	var b Brush
	require.NoError(t, r.readBrush(&b, 0x1F))

	assert.Equal(t, byte(0x05), b.Index)
	assert.Equal(t, byte(8), b.BPP)

	// pattern rows land in reverse order, the hatch byte fills slot zero
	want := [8]byte{0x05, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	assert.Equal(t, want, b.Data)
}

func TestReadBrush_CachedInvalidFormat(t *testing.T) {
	data := []byte{
		0x82, // style: cached with an undefined format
		0x05, // hatch
	}

	r := newReader(data)

	var b Brush
	err := r.readBrush(&b, 0x0C)
	assert.ErrorIs(t, err, ErrInvalidEnumerant)
}

func TestWriteBrush_RoundTrip(t *testing.T) {
	b := Brush{
		X:     1,
		Y:     2,
		Style: 0x81, // cached, BMF_1BPP
		Hatch: 9,
		Index: 9,
		BPP:   1,
		Data:  [8]byte{9, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77},
	}

	var w writer
	w.writeBrush(&b)

	r := newReader(w.data())

	var got Brush
	require.NoError(t, r.readBrush(&got, 0x1F))

	assert.Equal(t, b, got)
	assert.Equal(t, 0, r.remaining())
}

func TestGlyphBitmapSize(t *testing.T) {
	tests := []struct {
		width  uint32
		height uint32
		want   int
	}{
		{width: 8, height: 8, want: 8},
		{width: 9, height: 8, want: 16},
		{width: 1, height: 1, want: 4},
		{width: 16, height: 3, want: 8},
		{width: 0, height: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, glyphBitmapSize(tt.width, tt.height), "%dx%d", tt.width, tt.height)
	}
}
