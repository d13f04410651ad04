package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/staffdesk/ops_portal_app/cmd/docs"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/mailer"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
	"github.com/staffdesk/ops_portal_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	outbox *mailer.Outbox,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	limitMiddleware := newRateLimitMiddleware()

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services, limitMiddleware)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, outbox, limitMiddleware)

	// Scheduler-invoked routes, authenticated by shared secret instead of JWT
	cron := r.Group("/api/cron", limitMiddleware)
	registerCronRoutes(cron, cfg, services.Reporting)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// newRateLimitMiddleware builds the in-memory rate limiter shared by the
// sensitive route groups.
func newRateLimitMiddleware() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted("5-M")
	if err != nil {
		panic(err)
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	outbox *mailer.Outbox,
	limitMiddleware gin.HandlerFunc,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerBranchRoutes(v1, services.Branch)
	registerStaffRoutes(v1, services.Staff)
	RegisterCashbookRoutes(v1, services.Cashbook)
	registerTaskRoutes(v1, services.Task)
	registerAttendanceRoutes(v1, services.Attendance)
	registerRequestRoutes(v1, services.Request)
	registerNotificationRoutes(v1, services.Notification)

	// The email endpoint is authenticated and rate limited separately
	email := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret), limitMiddleware)
	registerEmailRoutes(email, outbox)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
