package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paypulse/showcase/ports"
	"github.com/paypulse/showcase/service"
)

// SetupRouter sets up the Gin router. gatherer may be nil to skip /metrics.
func SetupRouter(
	authService *service.AuthService,
	payroll ports.PayrollSource,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))
	router.SetHTMLTemplate(loginTemplate)

	// Create handlers
	handlers := NewAuthHandlers(authService, payroll)

	router.GET("/", handlers.LoginPage)
	router.POST("/login", handlers.Login)

	auth := router.Group("/auth")
	{
		auth.GET("/challenge", handlers.Challenge)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/paystubs", handlers.Paystubs)
	}

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return router
}
