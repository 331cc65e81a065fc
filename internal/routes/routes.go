package routes

import (
	"log"

	"github.com/runcloud/runcloud_backend/internal/config"
	"github.com/runcloud/runcloud_backend/internal/controllers"
	"github.com/runcloud/runcloud_backend/internal/middlewares"
	"github.com/runcloud/runcloud_backend/internal/repository"
	"github.com/runcloud/runcloud_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// Ginルーターを作成
	r := gin.Default()

	// ミドルウェアを設定
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware())

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	runRepo := repository.NewRunRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 画像ストレージを作成（設定でプロバイダを切り替える）
	var storage services.ImageStorage
	var err error
	if cfg.Storage.Provider == "cloudinary" {
		storage, err = services.NewCloudinaryStorage(cfg)
	} else {
		storage, err = services.NewS3Storage(cfg)
	}
	if err != nil {
		log.Fatalf("画像ストレージの初期化に失敗しました: %v", err)
	}

	// サービスを作成
	authService := services.NewAuthService(userRepo, cfg)
	runService := services.NewRunService(runRepo)
	rankingService := services.NewRankingService(runRepo)
	communityService := services.NewCommunityService(postRepo, commentRepo, storage, cfg)

	// コントローラーを作成
	authController := controllers.NewAuthController(authService)
	runController := controllers.NewRunController(runService)
	rankingController := controllers.NewRankingController(rankingService)
	communityController := controllers.NewCommunityController(communityService)
	healthController := controllers.NewHealthController()

	// 認証ミドルウェア
	authMiddleware := middlewares.AuthMiddleware(authService)
	optionalAuthMiddleware := middlewares.OptionalAuthMiddleware(authService)

	// APIグループを作成
	api := r.Group("/api/v1")
	{
		// ヘルスチェックルート（認証不要）
		api.GET("/health", healthController.Check)

		// 認証ルート
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.GET("/me", authMiddleware, authController.GetMe)
			auth.GET("/logout", authController.Logout)
		}

		// ランニング記録ルート
		runs := api.Group("/runs")
		{
			runs.POST("", authMiddleware, runController.Record)
			runs.GET("", authMiddleware, runController.List)
			runs.GET("/monthly", authMiddleware, rankingController.Monthly)
		}

		// ランキングルート
		ranking := api.Group("/ranking")
		{
			ranking.GET("", rankingController.List)
			ranking.GET("/me", authMiddleware, rankingController.Me)
		}

		// 掲示板ルート
		posts := api.Group("/posts")
		{
			posts.GET("", communityController.List)
			posts.GET("/:id", optionalAuthMiddleware, communityController.GetByID)

			// 認証が必要
			posts.POST("", authMiddleware, communityController.Create)
			posts.PUT("/:id", authMiddleware, communityController.Update)
			posts.DELETE("/:id", authMiddleware, communityController.Delete)
			posts.POST("/:id/comments", authMiddleware, communityController.CreateComment)
		}
	}

	return r
}
