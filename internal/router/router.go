package router

import (
	"net/http"
	"time"

	"ecohub/internal/handlers"
	"ecohub/internal/middleware"
	"ecohub/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New 创建 gin 引擎并注册全部路由
func New(svc *services.Services, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.Metrics())
	r.Use(cors.New(corsConfig(corsOrigins)))

	RegisterRoutes(r, svc)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func RegisterRoutes(r *gin.Engine, svc *services.Services) {
	authed := middleware.AuthRequired(svc.Auth)
	admin := middleware.AdminRequired()

	// Handlers
	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Users)
	userHandler := handlers.NewUserHandler(svc.Users)
	relHandler := handlers.NewRelationshipHandler(svc.Relationships, svc.MultiEntity)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// 认证 (Auth)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authed, authHandler.Logout)
		authGroup.GET("/me", authed, authHandler.Me)
	}

	// 用户 (Users)
	users := api.Group("/users", authed)
	{
		users.GET("/me/entities", userHandler.MyEntities)
		users.GET("/me/bookmarks", userHandler.MyBookmarks)
		users.DELETE("/:id", userHandler.Delete)
		users.PATCH("/:id/role", admin, userHandler.SetRole)
	}

	// 组织下的关系与批量创建，需在实体路由之前注册
	orgs := api.Group("/organizations")
	{
		orgs.POST("/relationships", authed, relHandler.Create)
		orgs.DELETE("/relationships/:id", authed, relHandler.Delete)
		orgs.POST("/multi-entity", authed, relHandler.CreateMultiEntity)
	}
	api.GET("/relationships/:entityType/:id", relHandler.Related)

	// 目录实体 (Directory entities)
	handlers.NewEntityHandler(svc.Organizations).Register(orgs, authed, admin)
	handlers.NewEntityHandler(svc.Startups).Register(api.Group("/startups"), authed, admin)
	handlers.NewEntityHandler(svc.Events).Register(api.Group("/events"), authed, admin)
	handlers.NewEntityHandler(svc.NewsArticles).Register(api.Group("/news-articles"), authed, admin)
	handlers.NewEntityHandler(svc.CoWorkingSpaces).Register(api.Group("/co-working-spaces"), authed, admin)
	handlers.NewEntityHandler(svc.TrainingOrganizations).Register(api.Group("/training-organizations"), authed, admin)
	handlers.NewUnifiedHandler(svc.Unified).Register(api.Group("/unified-entities"), authed, admin)
}
