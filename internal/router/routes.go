package router

import (
	"fmt"

	"github.com/changhyeonkim/ambient-toolbox/internal/auth"
	"github.com/changhyeonkim/ambient-toolbox/internal/config"
	"github.com/changhyeonkim/ambient-toolbox/internal/graph"
	"github.com/changhyeonkim/ambient-toolbox/internal/member"
	"github.com/changhyeonkim/ambient-toolbox/internal/meta"
	"github.com/changhyeonkim/ambient-toolbox/internal/note"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/database"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/middleware"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/token"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB) error {
	// Meta handler (health check, app version, legal documents)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// repository
	saver := audit.NewSaver()
	memberRepository := member.NewMemberRepository(saver)
	noteRepository := note.NewNoteRepository(saver)

	// shared services
	tokenManager := token.NewJWTManager(cfg)

	// service
	authService := auth.NewAuthService(db.DB, memberRepository, tokenManager)
	memberService := member.NewMemberService(db.DB, memberRepository)
	noteService := note.NewNoteService(db.DB, noteRepository)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(memberService)
	noteHandler := note.NewNoteHandler(noteService)

	authLimiter, err := middleware.NewIPLimiter(cfg.RateLimit.Auth)
	if err != nil {
		return fmt.Errorf("인증 API rate limiter 생성 실패: %w", err)
	}

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	authV1.Use(middleware.RateLimit(authLimiter))
	{
		authV1.POST("/signup", authHandler.Signup)
		authV1.POST("/login", authHandler.Login)
		authV1.POST("/refresh", authHandler.Refresh)
	}

	memberV1 := router.Group("/api/v1/members")
	memberV1.Use(middleware.JWT(cfg), middleware.CurrentUser())
	{
		memberV1.GET("/me", memberHandler.GetProfile)
		memberV1.PATCH("/me", memberHandler.UpdateProfile)
	}

	noteV1 := router.Group("/api/v1/notes")
	noteV1.Use(middleware.JWT(cfg), middleware.CurrentUser())
	{
		noteV1.GET("", noteHandler.List)
		noteV1.POST("", noteHandler.Create)
		noteV1.GET("/:id", noteHandler.Get)
		noteV1.PATCH("/:id", noteHandler.Update)
	}

	// GraphQL (anonymous allowed; audit user fields stay empty without a token)
	schema, err := graph.NewSchema(graph.NewResolver(noteService, memberService))
	if err != nil {
		return err
	}

	graphqlHandler := gin.WrapH(graph.NewHandler(schema))
	router.POST(cfg.GraphQL.Path, middleware.OptionalJWT(cfg), middleware.CurrentUser(), graphqlHandler)

	if cfg.GraphQL.Playground {
		router.GET("/playground", gin.WrapH(graph.PlaygroundHandler(cfg.GraphQL.Path)))
	}

	return nil
}
