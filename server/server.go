package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sage-portal/auth"
	"sage-portal/cache"
	"sage-portal/confs"
	"sage-portal/db"
	"sage-portal/geo"
	"sage-portal/handlers"
	httpHandler "sage-portal/handlers/http"
	"sage-portal/repositories"
	"sage-portal/services"
	"sage-portal/storage"
	"sage-portal/usecases"
	"sage-portal/ws"
	"sage-portal/zones"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Deps are the long-lived collaborators built by main.
type Deps struct {
	Settings      *confs.Settings
	DB            db.Database
	Catalog       *zones.Catalog
	IPLocator     geo.IPLocator
	Reverse       geo.ReverseGeocoder
	LocationCache cache.LocationCache
	Files         *storage.LocalStore
	Tokens        *auth.TokenManager
	Hub           *ws.Manager
	KeepAlive     *services.KeepAlive
	Log           *zap.Logger
}

type Server struct {
	app  *gin.Engine
	deps Deps
}

func NewServer(deps Deps) *Server {
	if deps.Settings.GinMode != "" {
		gin.SetMode(deps.Settings.GinMode)
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	s := &Server{app: gin.New(), deps: deps}
	s.app.Use(requestLogger(deps.Log), gin.Recovery())
	s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.deps.Settings.Addr(),
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Log.Info("http server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.deps.Hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.deps.Log.Info("http server stopped")
	return nil
}

func (s *Server) routes() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	profileRepo := repositories.NewProfilePgRepository(s.deps.DB)
	serviceRepo := repositories.NewServicePgRepository(s.deps.DB)
	testimonialRepo := repositories.NewTestimonialPgRepository(s.deps.DB)
	blogRepo := repositories.NewBlogPgRepository(s.deps.DB)
	clientServiceRepo := repositories.NewClientServicePgRepository(s.deps.DB)
	documentRepo := repositories.NewDocumentPgRepository(s.deps.DB)
	meetingRepo := repositories.NewMeetingPgRepository(s.deps.DB)
	messageRepo := repositories.NewMessagePgRepository(s.deps.DB)

	// Initialize use cases
	baseURL := s.deps.Settings.PublicBaseURL
	zoneUseCase := usecases.NewZoneUseCase(s.deps.Catalog, s.deps.IPLocator, s.deps.Reverse, s.deps.LocationCache, s.deps.Log)
	authUseCase := usecases.NewAuthUseCase(profileRepo, s.deps.Tokens)
	profileUseCase := usecases.NewProfileUseCase(profileRepo)
	invitationUseCase := usecases.NewInvitationUseCase(profileRepo, s.deps.Tokens, baseURL)
	catalogUseCase := usecases.NewCatalogUseCase(serviceRepo)
	testimonialUseCase := usecases.NewTestimonialUseCase(testimonialRepo)
	blogUseCase := usecases.NewBlogUseCase(blogRepo)
	clientServiceUseCase := usecases.NewClientServiceUseCase(clientServiceRepo, documentRepo, profileRepo, s.deps.Files)
	meetingUseCase := usecases.NewMeetingUseCase(meetingRepo, profileRepo)
	messageUseCase := usecases.NewMessageUseCase(messageRepo, profileRepo, s.deps.Hub, s.deps.Log)

	// Initialize handlers
	zoneHandler := httpHandler.NewZoneHandler(zoneUseCase)
	authHandler := httpHandler.NewAuthHandler(authUseCase, invitationUseCase, baseURL)
	profileHandler := httpHandler.NewProfileHandler(profileUseCase, invitationUseCase)
	serviceHandler := httpHandler.NewServiceHandler(catalogUseCase)
	testimonialHandler := httpHandler.NewTestimonialHandler(testimonialUseCase)
	blogHandler := httpHandler.NewBlogHandler(blogUseCase, profileUseCase)
	clientServiceHandler := httpHandler.NewClientServiceHandler(clientServiceUseCase)
	meetingHandler := httpHandler.NewMeetingHandler(meetingUseCase)
	messageHandler := httpHandler.NewMessageHandler(messageUseCase)

	wsHandler := handlers.NewWSHandler(s.deps.Hub, messageUseCase)
	cacheHandler := handlers.NewCacheHandler(s.deps.LocationCache)
	keepAliveHandler := handlers.NewKeepAliveHandler(s.deps.KeepAlive)

	requireAuth := auth.RequireAuth(s.deps.Tokens, profileRepo)

	s.app.Any("/api/keep-alive", keepAliveHandler.Ping)
	s.app.Static("/files", s.deps.Files.Root())
	s.app.GET("/ws", requireAuth, wsHandler.HandleUserWS)

	api := s.app.Group("/api/v1")
	{
		zoneRoutes := api.Group("/zones")
		{
			zoneRoutes.GET("", zoneHandler.GetZones)
			zoneRoutes.GET("/:id", zoneHandler.GetZone)
			zoneRoutes.POST("/detect", zoneHandler.Detect)
			zoneRoutes.POST("/select", zoneHandler.Select)
		}

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/signup", authHandler.SignUp)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/reset-password", authHandler.ResetPassword)
			authRoutes.POST("/activate", authHandler.Activate)
		}

		api.GET("/services", serviceHandler.GetServices)
		api.GET("/services/featured", serviceHandler.GetFeaturedServices)
		api.GET("/services/:id", serviceHandler.GetService)
		api.GET("/testimonials", testimonialHandler.GetApproved)
		api.GET("/testimonials/featured", testimonialHandler.GetFeatured)
		api.GET("/blog", blogHandler.GetPublished)
		api.GET("/blog/:slug", blogHandler.GetBySlug)

		// Authenticated routes
		private := api.Group("", requireAuth)
		{
			me := private.Group("/me")
			{
				me.GET("", authHandler.Me)
				me.PUT("", profileHandler.UpdateMe)
				me.PUT("/password", authHandler.UpdatePassword)
				me.GET("/permissions", authHandler.Permissions)
				me.GET("/services", clientServiceHandler.GetMine)
				me.GET("/meetings", meetingHandler.GetMine)
				me.GET("/messages", messageHandler.GetMine)
				me.GET("/testimonials", testimonialHandler.GetMine)
			}

			private.POST("/testimonials", testimonialHandler.Create)
			private.GET("/client-services/:id", clientServiceHandler.GetOne)
			private.GET("/client-services/:id/documents", clientServiceHandler.GetDocuments)

			private.GET("/messages/conversation/:user_id", messageHandler.GetConversation)
			private.POST("/messages", messageHandler.Send)
			private.PUT("/messages/:id/read", messageHandler.MarkAsRead)
		}

		admin := private.Group("/admin")
		{
			users := admin.Group("", auth.RequirePermission(auth.PermManageUsers))
			{
				users.GET("/profiles", profileHandler.GetProfiles)
				users.GET("/profiles/:id", profileHandler.GetProfile)
				users.PUT("/profiles/:id", profileHandler.UpdateProfile)
				users.DELETE("/profiles/:id", profileHandler.DeleteProfile)
				users.POST("/invitations", profileHandler.Invite)
				users.POST("/invitations/:user_id/resend", profileHandler.ResendInvitation)
			}

			clients := admin.Group("", auth.RequirePermission(auth.PermManageClients))
			{
				clients.GET("/clients", profileHandler.GetClients)
				clients.GET("/client-services", clientServiceHandler.GetAll)
				clients.POST("/client-services", clientServiceHandler.Create)
				clients.PUT("/client-services/:id", clientServiceHandler.Update)
				clients.DELETE("/client-services/:id", clientServiceHandler.Delete)
				clients.POST("/client-services/:id/documents", clientServiceHandler.CreateDocument)
				clients.PUT("/documents/:id", clientServiceHandler.UpdateDocument)
				clients.DELETE("/documents/:id", clientServiceHandler.DeleteDocument)
				clients.GET("/meetings", meetingHandler.GetAll)
				clients.POST("/meetings", meetingHandler.Create)
				clients.PUT("/meetings/:id", meetingHandler.Update)
				clients.DELETE("/meetings/:id", meetingHandler.Delete)
				clients.GET("/testimonials", testimonialHandler.GetAll)
				clients.PUT("/testimonials/:id", testimonialHandler.Update)
				clients.POST("/testimonials/:id/approve", testimonialHandler.Approve)
				clients.DELETE("/testimonials/:id", testimonialHandler.Delete)
			}

			catalog := admin.Group("", auth.RequirePermission(auth.PermManageServices))
			{
				catalog.GET("/services", serviceHandler.GetServices)
				catalog.POST("/services", serviceHandler.CreateService)
				catalog.PUT("/services/:id", serviceHandler.UpdateService)
				catalog.DELETE("/services/:id", serviceHandler.DeleteService)
				catalog.POST("/services/:id/features", serviceHandler.AddFeature)
				catalog.DELETE("/features/:id", serviceHandler.DeleteFeature)
			}

			blog := admin.Group("/blog", auth.RequirePermission(auth.PermManageBlog))
			{
				blog.GET("", blogHandler.GetAll)
				blog.POST("", blogHandler.Create)
				blog.PUT("/:id", blogHandler.Update)
				blog.POST("/:id/toggle-publish", blogHandler.TogglePublish)
				blog.DELETE("/:id", blogHandler.Delete)
			}

			settings := admin.Group("", auth.RequirePermission(auth.PermManageSettings))
			{
				settings.GET("/cache/stats", cacheHandler.GetCacheStats)
				settings.POST("/cache/purge", cacheHandler.PurgeCache)
				settings.GET("/connected-users", wsHandler.GetConnectedUsers)
			}
		}
	}
}

// requestLogger replaces gin's default text logger with zap.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
