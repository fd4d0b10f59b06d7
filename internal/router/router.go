package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"metrictracker/internal/auth"
	"metrictracker/internal/config"
	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/handler"
	"metrictracker/internal/logger"
	"metrictracker/internal/metrics"
)

// APIPrefix is the mount point of the JSON API.
const APIPrefix = "/api/v1"

const (
	productionCSP  = "default-src 'self'"
	developmentCSP = "default-src 'self' 'unsafe-inline' 'unsafe-eval' data: blob: http://localhost:*"
)

// Gate bundles what the token middleware needs.
type Gate struct {
	JWT    *auth.JWTService
	Tokens auth.TokenStoreInterface
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gate Gate,
	log logrus.FieldLogger,
	authHandler *handler.AuthHandler,
	metricHandler *handler.MetricHandler,
	entryHandler *handler.EntryHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Validator = handler.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(logger.Middleware(log))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.FrontendOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.SecureWithConfig(secureConfig(cfg)))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(APIPrefix)
	secured := JWTMiddleware(gate.JWT, gate.Tokens)

	// Auth routes
	authGroup := api.Group("/auth", authRateLimiter(cfg.AuthRateLimit))
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, secured)
	authGroup.DELETE("/me", authHandler.DeleteMe, secured)
	authGroup.POST("/logout", authHandler.Logout, secured)

	// Metric routes
	api.GET("/metrics", metricHandler.List, secured)
	api.POST("/metrics", metricHandler.Create, secured)
	api.GET("/metrics/:id", metricHandler.Get, secured)
	api.PUT("/metrics/:id", metricHandler.Update, secured)
	api.DELETE("/metrics/:id", metricHandler.Delete, secured)
	api.GET("/metrics/:id/entries", entryHandler.ListForMetric, secured)

	// Entry routes
	api.POST("/entries", entryHandler.Create, secured)
	api.PUT("/entries/:id", entryHandler.Update, secured)
	api.DELETE("/entries/:id", entryHandler.Delete, secured)

	// Aggregates
	api.GET("/dashboard", dashboardHandler.Dashboard, secured)
	api.GET("/reports", dashboardHandler.Report, secured)
}

func secureConfig(cfg *config.Config) middleware.SecureConfig {
	sc := middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: developmentCSP,
	}
	if cfg.IsProduction() {
		sc.ContentSecurityPolicy = productionCSP
		sc.HSTSMaxAge = int((365 * 24 * time.Hour).Seconds())
	}
	return sc
}

// authRateLimiter limits each client IP to perSecond requests with an equal burst.
func authRateLimiter(perSecond int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     perSecond,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Msg:  "too many requests",
				Code: "RATE_LIMITED",
			})
		},
	})
}
