// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/amirphl/marketing-manager/app/dto"
	"github.com/amirphl/marketing-manager/app/handlers"
	"github.com/amirphl/marketing-manager/app/middleware"
	businessflow "github.com/amirphl/marketing-manager/business_flow"
	"github.com/amirphl/marketing-manager/config"
	_ "github.com/amirphl/marketing-manager/docs"
	"github.com/amirphl/marketing-manager/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cache"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

const (
	healthPath  = "/api/health"
	swaggerPath = "/api/swagger.json"

	localsPanicStack = "panic_stack"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Auth        handlers.AuthHandlerInterface
	Campaign    handlers.CampaignHandlerInterface
	PromoCode   *handlers.PromoCodeHandler
	SocialMedia *handlers.SocialMediaHandler
	Analytics   *handlers.AnalyticsHandler
}

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app            *fiber.App
	cfg            *config.ProductionConfig
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	healthChecks   map[string]HealthCheck
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	healthChecks map[string]HealthCheck,
) Router {
	r := &FiberRouter{
		cfg:            cfg,
		handlers:       h,
		authMiddleware: authMiddleware,
		healthChecks:   healthChecks,
	}

	r.app = fiber.New(fiber.Config{
		AppName:      "Marketing Manager API",
		ServerHeader: "Marketing-Manager",
		ErrorHandler: r.errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ProxyHeader:  cfg.Server.ProxyHeader,
		TrustProxy:   len(cfg.Server.TrustedProxies) > 0,
		TrustProxyConfig: fiber.TrustProxyConfig{
			Proxies: cfg.Server.TrustedProxies,
		},
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	return r
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	if r.cfg.Metrics.Enabled {
		r.app.Get(r.cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	if r.cfg.Deployment.IsDevelopment() {
		api.Get("/swagger.json", r.serveSwaggerJSON)
		log.Println("API documentation enabled for development")
	}

	api.Use(limiter.New(limiter.Config{
		Max:          r.cfg.Security.GlobalRateLimit,
		Expiration:   r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == healthPath
		},
	}))

	// Auth routes with stricter rate limiting
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:          r.cfg.Security.AuthRateLimit,
		Expiration:   r.cfg.Security.RateLimitWindow,
		KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
		LimitReached: rateLimitReached,
	}))

	authenticate := r.authMiddleware.Authenticate()

	auth.Post("/login", r.handlers.Auth.Login)
	auth.Post("/register", r.handlers.Auth.Register)
	auth.Post("/refresh", r.handlers.Auth.Refresh)
	auth.Get("/me", authenticate, r.handlers.Auth.Me)
	auth.Post("/change-password", authenticate, r.handlers.Auth.ChangePassword)
	auth.Post("/logout", authenticate, r.handlers.Auth.Logout)

	managers := func(prefix string) fiber.Router {
		return api.Group(prefix, authenticate, middleware.RequireRoles(businessflow.ManagerRoles...))
	}

	campaigns := managers("/campaigns")
	campaigns.Get("/", r.handlers.Campaign.List)
	campaigns.Post("/", r.handlers.Campaign.Create)
	campaigns.Get("/:id", r.handlers.Campaign.Get)
	campaigns.Put("/:id", r.handlers.Campaign.Update)
	campaigns.Delete("/:id", r.handlers.Campaign.Delete)

	promoCodes := managers("/promo-codes")
	promoCodes.Get("/", r.handlers.PromoCode.List)
	promoCodes.Post("/", r.handlers.PromoCode.Create)
	promoCodes.Get("/:id", r.handlers.PromoCode.Get)
	promoCodes.Put("/:id", r.handlers.PromoCode.Update)
	promoCodes.Delete("/:id", r.handlers.PromoCode.Delete)

	posts := managers("/social-media")
	posts.Get("/", r.handlers.SocialMedia.List)
	posts.Post("/", r.handlers.SocialMedia.Create)
	posts.Get("/:id", r.handlers.SocialMedia.Get)
	posts.Put("/:id", r.handlers.SocialMedia.Update)
	posts.Delete("/:id", r.handlers.SocialMedia.Delete)

	analytics := managers("/analytics")
	analytics.Get("/", r.handlers.Analytics.Overview)
	analytics.Get("/export", r.handlers.Analytics.Export)
	analytics.Get("/campaigns/:campaignId", r.handlers.Analytics.CampaignAnalytics)
	analytics.Get("/promo-codes/:promoCodeId", r.handlers.Analytics.PromoCodeAnalytics)

	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: generateRequestID,
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             r.cfg.Security.XFrameOptions,
		HSTSMaxAge:                31536000, // 1 year
		ContentSecurityPolicy:     r.cfg.Security.CSPPolicy,
		ReferrerPolicy:            r.cfg.Security.ReferrerPolicy,
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     r.cfg.Security.AllowedOrigins,
		AllowMethods:     r.cfg.Security.AllowedMethods,
		AllowHeaders:     r.cfg.Security.AllowedHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-Response-Time", "Content-Disposition"},
		AllowCredentials: r.cfg.Security.AllowCredentials,
		MaxAge:           r.cfg.Security.CORSMaxAge,
	}))

	if r.cfg.Server.EnableCompression {
		r.app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
			Next: func(c fiber.Ctx) bool {
				// workbooks are already zip archives
				return strings.HasSuffix(c.Path(), "/analytics/export")
			},
		}))
	}

	// The swagger document never changes while the process runs
	r.app.Use(cache.New(cache.Config{
		Next: func(c fiber.Ctx) bool {
			return c.Method() != fiber.MethodGet || c.Path() != swaggerPath
		},
		Expiration: 30 * time.Minute,
	}))

	if r.cfg.Logging.EnableAccessLog {
		r.app.Use(logger.New(logger.Config{
			Format:     `{"time":"${time}","pid":"${pid}","request_id":"${respHeader:X-Request-ID}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
			TimeFormat: time.RFC3339,
			TimeZone:   "UTC",
			Next: func(c fiber.Ctx) bool {
				return c.Path() == healthPath
			},
		}))
	}

	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	r.app.Use(r.securityMiddleware)

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			stack := debug.Stack()
			c.Locals(localsPanicStack, string(stack))
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				requestid.FromContext(c),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// securityMiddleware stamps the response time and rejects blacklisted addresses
func (r *FiberRouter) securityMiddleware(c fiber.Ctx) error {
	c.Set("X-Response-Time", utils.UTCNow().Format(time.RFC3339))

	if slices.Contains(r.cfg.Security.IPBlacklist, c.IP()) {
		return c.Status(fiber.StatusForbidden).JSON(dto.MessageResponse{
			Message: "Access denied from this IP address",
		})
	}

	return c.Next()
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// healthCheck reports service status and the reachability of each dependency
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK
	checks := make(fiber.Map, len(r.healthChecks))
	for name, check := range r.healthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"timestamp": utils.UTCNow().Unix(),
		"version":   r.cfg.Deployment.Version,
		"service":   "marketing-manager-api",
		"checks":    checks,
	})
}

// serveSwaggerJSON serves the registered OpenAPI document
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{
			Message: "Failed to load Swagger documentation",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.SendString(doc)
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{
		Message: "Not Found - " + c.OriginalURL(),
	})
}

// errorHandler is the last stop for errors returned by handlers and for
// recovered panics. Development responses carry the error and a stack trace.
func (r *FiberRouter) errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	log.Printf("Error %d (request %s): %v", code, requestid.FromContext(c), err)

	resp := dto.ErrorResponse{Message: message}
	if r.cfg.Deployment.IsDevelopment() {
		resp.Error = err.Error()
		if stack, ok := c.Locals(localsPanicStack).(string); ok {
			resp.Stack = stack
		} else {
			resp.Stack = string(debug.Stack())
		}
	}

	return c.Status(code).JSON(resp)
}

func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.MessageResponse{
		Message: "Too many requests. Please try again later.",
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
