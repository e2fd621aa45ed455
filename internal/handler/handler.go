package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hostel/internal/attendance"
	"hostel/internal/auth"
	"hostel/internal/cloudinary"
	"hostel/internal/config"
	"hostel/internal/httpmiddleware"
	"hostel/internal/model"
	"hostel/internal/queue"
	"hostel/internal/session"
	"hostel/internal/store"
)

// Handler bundles the dependencies every route needs.
type Handler struct {
	cfg      config.App
	store    store.Store
	sessions session.Registry
	att      *attendance.Service
	queue    queue.Queue
	images   *cloudinary.Client
	healthy  func() (redisOK, dbOK bool)
}

// New wires a handler. images may be nil when Cloudinary is not configured;
// healthz may be nil when no probes are available (tests).
func New(cfg config.App, st store.Store, sessions session.Registry, att *attendance.Service, q queue.Queue, images *cloudinary.Client, healthy func() (bool, bool)) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		att:      att,
		queue:    q,
		images:   images,
		healthy:  healthy,
	}
}

// Router builds the full route table.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          24 * time.Hour,
	}))
	r.Use(securityHeaders())
	if h.cfg.RateLimitPerMin > 0 {
		r.Use(httpmiddleware.NewRateLimiter(h.cfg.RateLimitPerMin, h.cfg.RateLimitPerMin).Middleware())
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.handleHealthz)

	api := r.Group("/api")

	api.POST("/auth/register", h.handleRegister)
	api.POST("/auth/login", h.handleLogin)
	api.POST("/auth/forgot-password", h.handleForgotPassword)
	api.POST("/auth/reset-password", h.handleResetPassword)

	authed := api.Group("", auth.RequireAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer, h.sessions))
	authed.GET("/auth/profile", h.handleProfile)
	authed.PUT("/auth/profile", h.handleUpdateProfile)
	authed.POST("/auth/logout", h.handleLogout)

	authed.GET("/rooms", h.handleListRooms)
	authed.GET("/fees", h.handleListFees)
	authed.PUT("/fees/:id/pay", h.handlePayFee)
	authed.GET("/complaints", h.handleListComplaints)
	authed.POST("/complaints", h.handleCreateComplaint)
	authed.GET("/notices", h.handleListNotices)
	authed.GET("/lost-found", h.handleListLostFound)
	authed.POST("/lost-found", h.handleCreateLostFound)
	authed.PUT("/lost-found/:id/status", h.handleLostFoundStatus)
	authed.GET("/visitors", h.handleListVisitors)
	authed.POST("/visitors", h.handleCreateVisitor)
	authed.GET("/chat", h.handleListChat)
	authed.POST("/chat", h.handleSendChat)
	authed.GET("/events", h.handleListEvents)
	authed.GET("/laundry", h.handleListLaundry)
	authed.POST("/laundry", h.handleCreateLaundry)
	authed.GET("/maintenance", h.handleListMaintenance)
	authed.POST("/maintenance", h.handleCreateMaintenance)
	authed.POST("/feedback", h.handleCreateFeedback)
	authed.GET("/food-menu", h.handleFoodMenu)

	authed.POST("/attendance/mark", auth.RequireRole(model.RoleStudent), h.handleMarkAttendance)
	authed.GET("/attendance/student/:id", h.handleStudentAttendance)

	admin := authed.Group("", auth.RequireRole(model.RoleAdmin))
	admin.GET("/users", h.handleListUsers)
	admin.POST("/rooms", h.handleCreateRoom)
	admin.PUT("/rooms/:id", h.handleUpdateRoom)
	admin.POST("/fees", h.handleCreateFee)
	admin.PUT("/complaints/:id", h.handleComplaintStatus)
	admin.POST("/notices", h.handleCreateNotice)
	admin.PUT("/visitors/:id/checkout", h.handleCheckoutVisitor)
	admin.GET("/attendance", h.handleListAttendance)
	admin.POST("/attendance/qr", h.handleGenerateQR)
	admin.POST("/events", h.handleCreateEvent)
	admin.PUT("/laundry/:id/status", h.handleLaundryStatus)
	admin.PUT("/maintenance/:id/status", h.handleMaintenanceStatus)
	admin.GET("/feedback", h.handleListFeedback)
	admin.PUT("/food-menu", h.handleUpsertFoodMenu)
	admin.GET("/reports/:type", h.handleReport)

	return r
}

func (h *Handler) handleHealthz(c *gin.Context) {
	redisOK, dbOK := true, true
	if h.healthy != nil {
		redisOK, dbOK = h.healthy()
	}
	status := http.StatusOK
	if !redisOK || !dbOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "redis": redisOK, "db": dbOK})
}

// Security headers middleware.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// ok writes the uniform success envelope.
func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

// fail writes the uniform failure envelope.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
