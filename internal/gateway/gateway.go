// Package gateway bridges WebSocket clients to the drawing-order decoder.
// Each session accepts binary orders-update payloads and emits one JSON
// event per decoded order for the viewer page.
package gateway

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/kulaginds/rdp-orders/internal/config"
	"github.com/kulaginds/rdp-orders/internal/logging"
	"github.com/kulaginds/rdp-orders/internal/metrics"
	"github.com/kulaginds/rdp-orders/internal/orders"
)

// Gateway upgrades HTTP requests to WebSocket order-decoding sessions.
type Gateway struct {
	cfg      *config.Config
	logger   *logging.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions int
}

// New creates a gateway serving sessions with the given configuration.
func New(cfg *config.Config, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Default()
	}

	g := &Gateway{
		cfg:    cfg,
		logger: logger,
	}

	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.Gateway.ReadBufferSize,
		WriteBufferSize: cfg.Gateway.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return g.isAllowedOrigin(r.Header.Get("Origin"))
		},
	}

	return g
}

// Connect upgrades the request and decodes orders-update payloads until the
// client disconnects or a payload fails to decode.
func (g *Gateway) Connect(w http.ResponseWriter, r *http.Request) {
	if !g.acquireSession() {
		http.Error(w, "session limit reached", http.StatusServiceUnavailable)

		return
	}
	defer g.releaseSession()

	responseHeader := http.Header{}
	if protocol := r.Header.Get("Sec-Websocket-Protocol"); protocol != "" {
		responseHeader.Set("Sec-Websocket-Protocol", protocol)
	}

	wsConn, err := g.upgrader.Upgrade(w, r, responseHeader)
	if err != nil {
		g.logger.Warn("upgrade websocket: %v", err)

		return
	}

	defer func() {
		if err = wsConn.Close(); err != nil {
			g.logger.Debug("closing websocket: %v", err)
		}
	}()

	metrics.SessionStarted()
	defer metrics.SessionEnded()

	sess := newSession(wsConn, g.decoderSettings(), g.cfg.Gateway.MaxPayloadBytes, g.logger)
	sess.run(r.Context())
}

func (g *Gateway) acquireSession() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessions >= g.cfg.Gateway.MaxSessions {
		return false
	}

	g.sessions++

	return true
}

func (g *Gateway) releaseSession() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sessions--
}

// decoderSettings builds per-session decoder settings from the configured
// defaults. Sessions decode captured streams, so every order class is
// announced and only the strictness and glyph level vary.
func (g *Gateway) decoderSettings() *orders.Settings {
	settings := orders.PermissiveSettings()
	settings.RelaxedOrderChecks = g.cfg.Decoder.RelaxedOrderChecks

	switch g.cfg.Decoder.GlyphSupportLevel {
	case "none":
		settings.GlyphSupportLevel = orders.GlyphSupportNone
	case "partial":
		settings.GlyphSupportLevel = orders.GlyphSupportPartial
	case "full":
		settings.GlyphSupportLevel = orders.GlyphSupportFull
	default:
		settings.GlyphSupportLevel = orders.GlyphSupportEncode
	}

	return settings
}

// isAllowedOrigin reports whether a WebSocket origin may connect.
// Localhost-style origins are always allowed for development; everything
// else must appear in the configured allow-list.
func (g *Gateway) isAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	normalized := strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://")
	normalized = strings.TrimSuffix(normalized, "/")

	if strings.HasPrefix(normalized, "localhost") || strings.HasPrefix(normalized, "127.0.0.1") {
		return true
	}

	for _, entry := range g.cfg.Gateway.AllowedOrigins {
		candidate := strings.TrimSpace(entry)
		if candidate == "" {
			continue
		}

		// Allow-list entries may carry a scheme or not.
		if candidate == origin || candidate == normalized {
			return true
		}

		if strings.TrimPrefix(strings.TrimPrefix(candidate, "http://"), "https://") == normalized {
			return true
		}
	}

	return false
}
