package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/techdraw/backend/internal/api"
	"github.com/techdraw/backend/internal/config"
	"github.com/techdraw/backend/internal/conveyor"
	"github.com/techdraw/backend/internal/render"
	"github.com/techdraw/backend/internal/session"
	"github.com/techdraw/backend/internal/storage"
	"github.com/techdraw/backend/internal/web"
	"github.com/techdraw/backend/pkg/logger"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// exportRateLimiter throttles POST /api/export/* by client IP. The
// per-minute cap converts to a sub-1.0 refill rate, so the burst must
// be set explicitly: the memory store truncates a fractional rate to a
// zero burst, and a zero-burst bucket rejects everything.
func exportRateLimiter(perMinute int) echo.MiddlewareFunc {
	burst := perMinute / 10
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().Method != http.MethodPost ||
				!strings.HasPrefix(c.Request().URL.Path, "/api/export/")
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(float64(perMinute) / 60.0),
			Burst: burst,
		}),
	})
}

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "TechDrawStudio.exe.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	log := logger.MustNew(cfg.Advanced.LogLevel, cfg.Advanced.LogJSON)
	defer log.Sync()

	// Check if running in embedded mode (frontend built into binary)
	embeddedMode := web.HasEmbeddedFiles()

	// Initialize export artifact storage
	exportStore, err := storage.NewLocalStore(cfg.GetExportsDir())
	if err != nil {
		log.Error("failed to initialize export storage", "error", err)
		os.Exit(1)
	}

	// Initialize session manager
	sessionMgr := session.NewManager()

	// Start background session cleanup
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Drawing.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := sessionMgr.CleanupOldSessions(time.Duration(cfg.Drawing.SessionTimeoutMinutes) * time.Minute); removed > 0 {
				log.Debug("expired sessions cleaned up", "removed", removed)
			}
		}
	}()

	// Initialize drawing services; a materials.yaml in the data
	// directory overrides the embedded catalog.
	catalog, err := conveyor.LoadCatalog(filepath.Join(cfg.GetDataDir(), "materials.yaml"))
	if err != nil {
		log.Error("failed to load material catalog", "error", err)
		os.Exit(1)
	}
	calc := conveyor.NewCalculator(catalog)
	renderer := render.NewRenderer()
	hub := api.NewRenderHub(log)

	handlers := api.NewHandlers(&api.Dependencies{
		Store:        exportStore,
		SessionMgr:   sessionMgr,
		Calculator:   calc,
		Renderer:     renderer,
		Hub:          hub,
		Log:          log,
		Version:      Version,
		AllowDelete:  cfg.Security.AllowExportDeletion,
		RecentLimit:  cfg.Storage.RecentLimit,
		DefaultTheme: cfg.Drawing.DefaultTheme,
	})

	e := echo.New()
	e.HideBanner = true
	api.SetupMiddleware(e)

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging if disabled in config
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" || path == "/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
		LogLevel:          0,
	}))

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		Skipper: func(c echo.Context) bool {
			// Websocket connections stay open past any request timeout.
			return strings.HasPrefix(c.Request().URL.Path, "/api/ws/")
		},
		ErrorMessage: "Request timeout",
	}))

	e.Use(middleware.Gzip())

	// Body limit middleware; PDF snapshots are the largest payloads
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// Exports hit the disk; rate limit them separately from the
	// interactive drawing endpoints.
	e.Use(exportRateLimiter(cfg.Drawing.ExportRatePerMinute))

	// CORS configuration
	if cfg.Server.EnableCORS {
		if embeddedMode {
			// In embedded mode, use config settings
			origins := strings.Split(cfg.Server.AllowOrigins, ",")
			for i := range origins {
				origins[i] = strings.TrimSpace(origins[i])
			}
			if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
				origins = []string{"*"}
			}
			e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
				AllowOrigins: origins,
				AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
				AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			}))
		} else {
			// Development mode - only allow localhost
			e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
				AllowOrigins: []string{
					"http://localhost:5173", "http://127.0.0.1:5173",
					"http://localhost:5174", "http://127.0.0.1:5174",
					"http://localhost:3000", "http://127.0.0.1:3000",
				},
				AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
				AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			}))
		}
	}

	// API routes
	api.RegisterRoutes(e, handlers)
	api.RegisterWebSocketRoutes(e, handlers)

	// Register embedded frontend if available
	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			log.Warn("failed to register static routes", "error", err)
		} else {
			log.Info("serving embedded frontend from binary")
		}
	}

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Print startup banner
	mode := "Development"
	if embeddedMode {
		mode = "Air-Gapped (Embedded)"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           TechDraw Studio Server                          ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Exports:   %-46s║\n", cfg.GetExportsDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}

	e.Logger.Fatal(e.StartServer(s))
}
