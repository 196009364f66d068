package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kulaginds/rdp-orders/internal/logging"
	"github.com/kulaginds/rdp-orders/internal/metrics"
	"github.com/kulaginds/rdp-orders/internal/orders"
)

const closeWriteTimeout = time.Second

// orderEvent is one decoded order, serialized for the viewer. Type carries
// the order name ("OpaqueRect", "CacheBrush"), Class the order class
// (primary, secondary or altsec).
type orderEvent struct {
	Type  string      `json:"type"`
	Class string      `json:"class"`
	Order interface{} `json:"order"`
}

// clipEvent reports a change of the persistent clip rectangle.
type clipEvent struct {
	Type   string         `json:"type"`
	Bounds *orders.Bounds `json:"bounds"`
}

// errorEvent is the final event of a session whose payload failed to decode.
type errorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// session owns one WebSocket connection and the decoder state behind it.
// The decoder invokes the orders.Handler methods below synchronously, so
// events leave in decode order.
type session struct {
	conn       *websocket.Conn
	decoder    *orders.Decoder
	logger     *logging.Logger
	maxPayload int

	writeMu sync.Mutex
}

func newSession(conn *websocket.Conn, settings *orders.Settings, maxPayload int, logger *logging.Logger) *session {
	s := &session{
		conn:       conn,
		logger:     logger,
		maxPayload: maxPayload,
	}

	s.decoder = orders.NewDecoder(settings, s, logger)

	return s
}

func (s *session) run(ctx context.Context) {
	s.conn.SetReadLimit(int64(s.maxPayload))

	for {
		select {
		case <-ctx.Done():
			return
		default: // pass
		}

		messageType, payload, err := s.conn.ReadMessage()
		if err != nil {
			if strings.HasSuffix(err.Error(), "use of closed network connection") {
				return
			}

			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("reading message from ws: %v", err)
			}

			return
		}

		if messageType != websocket.BinaryMessage {
			s.logger.Debug("ignoring non-binary message")

			continue
		}

		if err = s.decoder.ProcessOrders(payload); err != nil {
			metrics.RecordDecodeError(metrics.ErrorReason(err))
			s.logger.Warn("decode update: %v", err)

			// Best effort so the client learns why before the close frame.
			_ = s.writeEvent(errorEvent{Type: "error", Error: err.Error()})
			s.writeClose(websocket.CloseInvalidFramePayloadData, "decode failed")

			return
		}

		metrics.RecordUpdate(len(payload))
	}
}

// SetClip implements orders.Handler.
func (s *session) SetClip(bounds *orders.Bounds) error {
	return s.writeEvent(clipEvent{Type: "clip", Bounds: bounds})
}

// Primary implements orders.Handler.
func (s *session) Primary(order orders.PrimaryOrder) error {
	metrics.RecordOrderDecoded("primary")

	return s.writeEvent(orderEvent{Type: order.Type().String(), Class: "primary", Order: order})
}

// Secondary implements orders.Handler.
func (s *session) Secondary(order orders.SecondaryOrder) error {
	metrics.RecordOrderDecoded("secondary")

	return s.writeEvent(orderEvent{Type: order.Type().String(), Class: "secondary", Order: order})
}

// AltSec implements orders.Handler.
func (s *session) AltSec(order orders.AltSecOrder) error {
	metrics.RecordOrderDecoded("altsec")

	return s.writeEvent(orderEvent{Type: order.Type().String(), Class: "altsec", Order: order})
}

// writeEvent marshals inside the handler call, before the decoder reuses
// the order struct for the next order.
func (s *session) writeEvent(event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *session) writeClose(code int, reason string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	message := websocket.FormatCloseMessage(code, reason)
	_ = s.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(closeWriteTimeout))
}
