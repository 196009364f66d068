package orders

import "errors"

var (
	// ErrShortStream indicates the payload ended before a complete order
	// could be read.
	ErrShortStream = errors.New("orders: unexpected end of stream")

	// ErrInvalidOrderType indicates an order type number that is not
	// assigned by the protocol.
	ErrInvalidOrderType = errors.New("orders: invalid order type")

	// ErrBoundExceeded indicates a count or length field above the limit
	// the protocol allows for it.
	ErrBoundExceeded = errors.New("orders: bound exceeded")

	// ErrInvalidEnumerant indicates a field whose value is outside the
	// set the protocol defines.
	ErrInvalidEnumerant = errors.New("orders: invalid enumerant")

	// ErrOrderNotNegotiated indicates an order the peer sent without the
	// matching capability having been advertised.
	ErrOrderNotNegotiated = errors.New("orders: order not negotiated")

	// ErrFrameOverrun indicates a secondary order whose payload parser
	// consumed bytes past the declared order length.
	ErrFrameOverrun = errors.New("orders: order length exceeded")

	// ErrValueOutOfRange indicates a value that cannot be represented in
	// the encoding selected for it.
	ErrValueOutOfRange = errors.New("orders: value out of range")
)
