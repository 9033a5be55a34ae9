package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/alumnihub/alumni-network/internal/api/handler"
	"github.com/alumnihub/alumni-network/internal/api/middleware"
	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

const defaultBodyLimit = "10M"

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth       ports.AuthService
	Profiles   ports.ProfileService
	Events     ports.EventService
	Mentorship ports.MentorshipService
	Resources  ports.ResourceService
	Dashboard  ports.DashboardService

	Tokens ports.TokenVerifier
	Roles  ports.RoleLookup

	// HealthChecks are probed by GET /health/ready.
	HealthChecks map[string]handler.Check
	// UploadDir is served under /uploads when set (local storage backend).
	UploadDir string
	// BodyLimit caps request bodies, e.g. "10M".
	BodyLimit string
	// Metrics enables the Prometheus middleware and GET /metrics.
	Metrics bool

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	bodyLimit := d.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	if d.Metrics {
		e.Use(echoprometheus.NewMiddleware("alumni"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Profiles)
	directoryHandler := handler.NewDirectoryHandler(d.Profiles)
	eventHandler := handler.NewEventHandler(d.Events)
	mentorshipHandler := handler.NewMentorshipHandler(d.Mentorship)
	resourceHandler := handler.NewResourceHandler(d.Resources)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	studentHandler := handler.NewStudentHandler(d.Profiles)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	// --- Health probes and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	api := e.Group("/api")
	authMiddleware := middleware.Auth(d.Tokens)

	// --- Auth ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authMiddleware)
	api.GET("/auth/user", authHandler.Me, authMiddleware)
	api.PUT("/auth/profile", authHandler.UpdateProfile, authMiddleware)

	// --- Directory ---
	members := api.Group("/alumni", authMiddleware)
	members.GET("", directoryHandler.List)
	members.GET("/:id", directoryHandler.Get)

	// --- Events ---
	events := api.Group("/events", authMiddleware)
	events.GET("", eventHandler.List)
	events.POST("", eventHandler.Create, middleware.RBAC(domain.RoleAlumni, domain.RoleAdmin))
	events.POST("/:id/register", eventHandler.Register)

	// --- Mentorships ---
	mentorships := api.Group("/mentorships", authMiddleware)
	mentorships.GET("", mentorshipHandler.List)
	mentorships.POST("", mentorshipHandler.Create, middleware.RBAC(domain.RoleAlumni, domain.RoleAdmin))
	mentorships.POST("/:id/requests", mentorshipHandler.Request, middleware.RBAC(domain.RoleStudent))

	// --- Alumni dashboard ---
	dash := api.Group("/alumni-dashboard", authMiddleware)
	dash.GET("/profile", authHandler.Me)
	dash.PUT("/profile", authHandler.UpdateProfile)
	dash.GET("/stats", dashboardHandler.Stats)
	dash.GET("/recent-alumni", dashboardHandler.RecentAlumni)
	dash.GET("/events", dashboardHandler.Events)
	dash.POST("/events/:id/register", eventHandler.Register)
	dash.GET("/mentorship-requests", mentorshipHandler.Pending)
	dash.POST("/mentorship-requests/:id/respond", mentorshipHandler.Respond)
	dash.GET("/activities", dashboardHandler.Activities)
	dash.GET("/networking-suggestions", dashboardHandler.Suggestions)

	// --- Resources ---
	resources := api.Group("/resources", authMiddleware)
	resources.GET("", resourceHandler.List)
	resources.POST("", resourceHandler.Create)
	resources.GET("/:id", resourceHandler.Get)
	resources.PUT("/:id", resourceHandler.Update)
	resources.DELETE("/:id", resourceHandler.Delete)
	resources.GET("/:id/download", resourceHandler.Download)
	resources.POST("/:id/bookmark", resourceHandler.Bookmark)

	// --- Student ---
	student := api.Group("/student", authMiddleware, middleware.RBAC(domain.RoleStudent))
	student.POST("/resume", studentHandler.UploadResume)

	// --- Admin: stored role is re-read on every request ---
	admin := api.Group("/admin", authMiddleware, middleware.FreshRole(d.Roles, domain.RoleAdmin))
	admin.GET("/users", directoryHandler.ListAll)

	e.RouteNotFound("/api/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})

	return e
}
