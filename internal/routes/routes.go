package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/looksmaxxai/LooksMaxxBack/internal/config"
	"github.com/looksmaxxai/LooksMaxxBack/internal/handlers"
	"github.com/looksmaxxai/LooksMaxxBack/internal/middleware"
	"github.com/looksmaxxai/LooksMaxxBack/internal/repository"
	"github.com/looksmaxxai/LooksMaxxBack/internal/services"
	coachws "github.com/looksmaxxai/LooksMaxxBack/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	chatRepo := repository.NewChatRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	productRepo := repository.NewProductRepository(db)

	var storageService services.StorageService
	if cfg.StorageConfigured() {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}
	aiClient := services.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITimeout)

	coachHub := coachws.NewHub()
	go coachHub.Run()

	progressService := services.NewProgressService(db, userRepo, completionRepo, photoRepo)
	coachService := services.NewCoachService(chatRepo, userRepo, aiClient, coachHub)
	photoService := services.NewPhotoService(photoRepo, aiClient, storageService)
	recommendationService := services.NewRecommendationService(productRepo)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(userRepo)
	routineHandler := handlers.NewRoutineHandler(routineRepo)
	progressHandler := handlers.NewProgressHandler(progressService)
	photoHandler := handlers.NewPhotoHandler(photoService)
	chatHandler := handlers.NewChatHandler(coachService, coachHub, cfg.JWTSecret)
	productHandler := handlers.NewProductHandler(productRepo, userRepo, recommendationService)
	achievementHandler := handlers.NewAchievementHandler(achievementRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	protected := api.Group("", middleware.AuthRequired(cfg.JWTSecret))

	protected.Patch("/profile", profileHandler.UpdateProfile)

	routines := protected.Group("/routines")
	routines.Get("", routineHandler.ListRoutines)
	routines.Post("", routineHandler.CreateRoutine)
	routines.Post("/complete", progressHandler.CompleteRoutineItem)
	routines.Get("/completions/:date", progressHandler.GetCompletionsForDate)
	routines.Post("/:id/items", routineHandler.CreateRoutineItem)

	photos := protected.Group("/progress-photos")
	photos.Get("", photoHandler.ListPhotos)
	photos.Post("", photoHandler.UploadPhoto)

	chat := protected.Group("/chat")
	chat.Get("/messages", chatHandler.GetMessages)
	chat.Post("/messages", chatHandler.SendMessage)

	protected.Get("/dashboard/stats", progressHandler.GetDashboardStats)
	protected.Get("/achievements", achievementHandler.ListAchievements)

	products := protected.Group("/products")
	products.Get("", productHandler.ListProducts)
	products.Get("/recommendations", productHandler.GetRecommendations)

	api.Use("/ws", chatHandler.WebSocketAuth)
	api.Get("/ws", websocket.New(chatHandler.HandleWebSocket))
}
