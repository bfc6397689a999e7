// internal/api/routes.go
package api

import (
	"organizer-portal/internal/api/handlers"
	"organizer-portal/internal/api/middleware"
	"organizer-portal/internal/config"
	"organizer-portal/internal/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// SetupRouter wires every route. limiter may be nil, which turns rate
// limiting off.
func SetupRouter(h *handlers.Handler, limiter middleware.Limiter, logger *zap.Logger, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(logger), RequestLogger(logger))
	router.RedirectTrailingSlash = true

	router.GET("/healthz", h.Health)
	router.StaticFS("/static", web.Static())

	//Swagger Route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Portal pages
	router.GET("/", h.Dashboard)
	router.GET("/events/:id", h.EventPage)
	router.GET("/orders", h.Orders)

	documents := router.Group("/documents")
	{
		documents.GET("", h.Documents)
		documents.POST("", h.GenerateDocument)
		documents.GET("/:id/download", h.DownloadDocument)
	}

	invitations := router.Group("/invitations")
	{
		invitations.GET("", h.Invitations)
		invitations.POST("", h.CreateInvitation)
		invitations.POST("/:id/delete", h.DeleteInvitation)
	}

	router.GET("/payouts", h.Payouts)
	router.POST("/payouts", h.RequestPayout)

	router.GET("/scanner", h.Scanner)
	router.POST("/scanner", h.Scan)

	team := router.Group("/team")
	{
		team.GET("", h.Team)
		team.POST("", h.InviteMember)
		team.POST("/join", middleware.TeamJoinRateLimit(limiter, logger), h.JoinTeam)
		team.POST("/:id/delete", h.RemoveMember)
	}

	router.GET("/notifications", h.Notifications)
	router.POST("/notifications/read", h.MarkNotificationsRead)

	router.GET("/widget", h.WidgetConfigurator)

	// Invitation links (public)
	invite := router.Group("/invite")
	invite.Use(middleware.InviteRateLimit(limiter, logger))
	{
		invite.GET("/:token", h.InvitePage)
		invite.POST("/:token/respond", h.RespondInvite)
	}

	// Embeddable widget (public, framed by third-party sites)
	public := router.Group("/widget")
	public.Use(PublicWidget(), middleware.WidgetRateLimit(limiter, cfg.Widget.RateLimitPerMin, logger))
	{
		public.GET("/embed", h.WidgetEmbed)
		public.GET("/embed.js", h.WidgetScript)
		public.GET("/frame/:event", h.WidgetFrame)
	}

	// JSON API used by the page scripts
	api := router.Group("/api")
	{
		api.GET("/events/:id/stats", h.EventStats)
		api.GET("/widget/events/:id", h.WidgetPreview)
		api.GET("/widget/snippet", h.WidgetSnippet)
	}

	router.NoRoute(h.NotFound)

	return router
}
