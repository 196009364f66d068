package pdu

import "errors"

// ErrInvalidCapabilityLength indicates a capability set header declaring a
// length shorter than the header itself.
var ErrInvalidCapabilityLength = errors.New("invalid capability set length")
