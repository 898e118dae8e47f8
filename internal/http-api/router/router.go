package router

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"eventteam/internal/http-api/handler"
	"eventteam/internal/http-api/middleware"
	"eventteam/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth    service.AuthService
	Members service.MemberService
	Points  service.PointService
	Users   service.UserService
	Logs    service.LogService
}

type Options struct {
	Cookies        *middleware.SessionCookies
	LoginRateLimit float64
	LoginRateBurst int
	StaticDir      string
	Logger         *slog.Logger
}

// New builds the engine: JSON API under /api, the static frontend everywhere else.
func New(svc Services, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.SecurityHeaders())

	authHandler := handler.NewAuthHandler(svc.Auth, opts.Cookies)
	memberHandler := handler.NewMemberHandler(svc.Members)
	pointHandler := handler.NewPointHandler(svc.Points)
	userHandler := handler.NewUserHandler(svc.Users)
	logHandler := handler.NewLogHandler(svc.Logs)

	api := r.Group("/api")
	{
		// Public
		limiter := middleware.NewIPRateLimiter(opts.LoginRateLimit, opts.LoginRateBurst)
		api.POST("/login", limiter.Middleware(), authHandler.Login)

		// Session required
		protected := api.Group("", middleware.RequireLogin(svc.Auth, opts.Cookies))
		authHandler.RegisterRoutes(protected)
		memberHandler.RegisterRoutes(protected)
		pointHandler.RegisterRoutes(protected)
		userHandler.RegisterRoutes(protected)
		logHandler.RegisterRoutes(protected)
	}

	r.NoRoute(staticFallback(opts.StaticDir))
	return r
}

// staticFallback serves files from dir and answers index.html for any other
// non-API path so client-side routes survive a reload.
func staticFallback(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(index)
	}
}
