package gateway

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulaginds/rdp-orders/internal/config"
	"github.com/kulaginds/rdp-orders/internal/logging"
	"github.com/kulaginds/rdp-orders/internal/orders"
)

type event struct {
	Type  string                 `json:"type"`
	Class string                 `json:"class"`
	Order map[string]interface{} `json:"order"`
	Error string                 `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		Gateway: config.GatewayConfig{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			MaxPayloadBytes: 1 << 20,
			MaxSessions:     4,
		},
		Decoder: config.DecoderConfig{
			RelaxedOrderChecks: true,
			GlyphSupportLevel:  "encode",
		},
	}
}

func quietLogger() *logging.Logger {
	return logging.New(io.Discard, logging.LevelError)
}

// startGateway serves Connect over httptest and returns the ws:// URL.
func startGateway(t *testing.T, cfg *config.Config) string {
	t.Helper()

	g := New(cfg, quietLogger())
	server := httptest.NewServer(http.HandlerFunc(g.Connect))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, wsURL string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{
		"Origin": {"http://localhost:3000"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// ordersUpdate frames encoded orders as a fast-path orders-update payload.
func ordersUpdate(t *testing.T, encoded ...[]byte) []byte {
	t.Helper()

	update := binary.LittleEndian.AppendUint16(nil, uint16(len(encoded)))
	for _, order := range encoded {
		update = append(update, order...)
	}

	return update
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()

	messageType, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, messageType)

	var ev event
	require.NoError(t, json.Unmarshal(data, &ev))

	return ev
}

func TestConnect_DecodesOrders(t *testing.T) {
	conn := dial(t, startGateway(t, testConfig()))

	marker, err := orders.EncodeAltSec(&orders.FrameMarker{Action: orders.FrameStart})
	require.NoError(t, err)
	rect, err := orders.EncodePrimary(&orders.OpaqueRect{
		Left: 10, Top: 20, Width: 30, Height: 40, Color: 0x00FF8800,
	})
	require.NoError(t, err)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, ordersUpdate(t, marker, rect)))

	first := readEvent(t, conn)
	assert.Equal(t, "FrameMarker", first.Type)
	assert.Equal(t, "altsec", first.Class)
	assert.Equal(t, float64(orders.FrameStart), first.Order["Action"])

	second := readEvent(t, conn)
	assert.Equal(t, "OpaqueRect", second.Type)
	assert.Equal(t, "primary", second.Class)
	assert.Equal(t, float64(10), second.Order["Left"])
	assert.Equal(t, float64(40), second.Order["Height"])
	assert.Equal(t, float64(0x00FF8800), second.Order["Color"])
}

func TestConnect_SessionStateSpansMessages(t *testing.T) {
	conn := dial(t, startGateway(t, testConfig()))

	rect, err := orders.EncodePrimary(&orders.OpaqueRect{
		Left: 1, Top: 2, Width: 3, Height: 4, Color: 0x0000AA00,
	})
	require.NoError(t, err)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, ordersUpdate(t, rect)))
	readEvent(t, conn)

	// A second update with the same order exercises the differential state
	// carried across messages.
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, ordersUpdate(t, rect)))
	ev := readEvent(t, conn)

	assert.Equal(t, "OpaqueRect", ev.Type)
	assert.Equal(t, float64(1), ev.Order["Left"])
}

func TestConnect_DecodeErrorClosesSession(t *testing.T) {
	conn := dial(t, startGateway(t, testConfig()))

	// Truncated altsec order: type says stream bitmap, body missing.
	payload := []byte{0x01, 0x00, byte(orders.TypeStreamBitmapNext) << 2}
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, payload))

	ev := readEvent(t, conn)
	assert.Equal(t, "error", ev.Type)
	assert.Contains(t, ev.Error, "order 1 of 1")

	// The server closes after the error event.
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestConnect_NonBinaryMessagesIgnored(t *testing.T) {
	conn := dial(t, startGateway(t, testConfig()))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))

	marker, err := orders.EncodeAltSec(&orders.FrameMarker{Action: orders.FrameEnd})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, ordersUpdate(t, marker)))

	ev := readEvent(t, conn)
	assert.Equal(t, "FrameMarker", ev.Type)
}

func TestConnect_OriginRejected(t *testing.T) {
	wsURL := startGateway(t, testConfig())

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{
		"Origin": {"https://evil.example.com"},
	})

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestConnect_SessionLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Gateway.MaxSessions = 1
	wsURL := startGateway(t, cfg)

	first := dial(t, wsURL)
	defer first.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{
		"Origin": {"http://localhost:3000"},
	})

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestIsAllowedOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.Gateway.AllowedOrigins = []string{"https://viewer.example.com", "ops.example.com"}
	g := New(cfg, quietLogger())

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"empty", "", false},
		{"localhost with port", "http://localhost:3000", true},
		{"loopback", "http://127.0.0.1:8080", true},
		{"listed with scheme", "https://viewer.example.com", true},
		{"listed trailing slash", "https://viewer.example.com/", true},
		{"listed without scheme in config", "https://ops.example.com", true},
		{"unlisted", "https://evil.example.com", false},
		{"scheme mismatch still matches host entry", "http://ops.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, g.isAllowedOrigin(tt.origin))
		})
	}
}

func TestDecoderSettings(t *testing.T) {
	cfg := testConfig()
	cfg.Decoder.RelaxedOrderChecks = false
	cfg.Decoder.GlyphSupportLevel = "partial"

	settings := New(cfg, quietLogger()).decoderSettings()

	assert.False(t, settings.RelaxedOrderChecks)
	assert.Equal(t, orders.GlyphSupportPartial, settings.GlyphSupportLevel)
	assert.True(t, settings.BitmapCacheEnabled)
}
