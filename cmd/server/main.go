package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kulaginds/rdp-orders/internal/config"
	"github.com/kulaginds/rdp-orders/internal/gateway"
	"github.com/kulaginds/rdp-orders/internal/logging"
	"github.com/kulaginds/rdp-orders/internal/metrics"
	"github.com/kulaginds/rdp-orders/web"
)

const (
	appName    = "RDP Order Gateway"
	appVersion = "v1.0.0"
)

func main() {
	hostFlag := flag.String("host", "", "gateway listen host")
	portFlag := flag.String("port", "", "gateway listen port")
	logLevelFlag := flag.String("log-level", "", "log level (debug, info, warn, error)")
	glyphLevelFlag := flag.String("glyph-level", "", "glyph support level (none, partial, full, encode)")
	relaxedFlag := flag.Bool("relaxed", false, "accept orders that were never announced during capability exchange")
	helpFlag := flag.Bool("help", false, "show help")
	versionFlag := flag.Bool("version", false, "show version")

	flag.Parse()

	if *helpFlag {
		showHelp()
		return
	}

	if *versionFlag {
		showVersion()
		return
	}

	opts := config.LoadOptions{
		Host:               strings.TrimSpace(*hostFlag),
		Port:               strings.TrimSpace(*portFlag),
		LogLevel:           strings.TrimSpace(*logLevelFlag),
		GlyphSupportLevel:  strings.TrimSpace(*glyphLevelFlag),
		RelaxedOrderChecks: *relaxedFlag,
	}

	cfg, err := config.LoadWithOverrides(opts)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Default()
	logger.SetLevelFromString(cfg.Logging.Level)
	metrics.Init(metrics.Config{})

	server := createServer(cfg, logger)
	logger.Info("starting order gateway on %s:%s", cfg.Server.Host, cfg.Server.Port)

	if err := startServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln(err)
	}
}

func createServer(cfg *config.Config, logger *logging.Logger) *http.Server {
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	gw := gateway.New(cfg, logger)

	r := chi.NewRouter()
	r.Use(requestLoggingMiddleware(logger))
	r.Use(securityHeadersMiddleware)
	r.Use(corsMiddleware(cfg.Gateway.AllowedOrigins))

	r.Get("/connect", gw.Connect)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/*", http.FileServer(http.FS(web.StaticFS())))

	return &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// Allow inline scripts/styles for the single-page viewer
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; connect-src 'self' ws: wss:")

		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if isOriginAllowed(origin, allowedOrigins, r.Host) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isOriginAllowed(origin string, allowedOrigins []string, host string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range allowedOrigins {
		if strings.TrimSpace(allowed) == origin {
			return true
		}
	}

	if len(allowedOrigins) == 0 {
		return strings.Contains(origin, host)
	}

	return false
}

func requestLoggingMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("%s %s %s %s", r.RemoteAddr, r.Method, r.URL.Path, time.Since(start))
		})
	}
}

func startServer(server *http.Server) error {
	if server == nil {
		return fmt.Errorf("server is nil")
	}

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func showHelp() {
	fmt.Println(appName)
	fmt.Println("USAGE: rdp-orders-server [options]")
	fmt.Println("OPTIONS:")
	fmt.Println("  -host          Set listen host (default 0.0.0.0)")
	fmt.Println("  -port          Set listen port (default 8080)")
	fmt.Println("  -log-level     Set log level (debug, info, warn, error)")
	fmt.Println("  -glyph-level   Set glyph support level (none, partial, full, encode)")
	fmt.Println("  -relaxed       Accept orders that were never announced")
	fmt.Println("  -version       Show version information")
	fmt.Println("  -help          Show this help message")
	fmt.Println("ENVIRONMENT VARIABLES: SERVER_HOST, SERVER_PORT, LOG_LEVEL, ALLOWED_ORIGINS,")
	fmt.Println("  MAX_PAYLOAD_BYTES, MAX_SESSIONS, RELAXED_ORDER_CHECKS, GLYPH_SUPPORT_LEVEL")
	fmt.Println("EXAMPLES: rdp-orders-server -host 0.0.0.0 -port 8080")
}

func showVersion() {
	fmt.Printf("%s %s\n", appName, appVersion)
	fmt.Println("Protocol: MS-RDPEGDI drawing orders")
}
