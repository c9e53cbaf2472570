package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"nyayasetu/api/handlers"
	"nyayasetu/api/middleware"
	"nyayasetu/assistant"
	"nyayasetu/dailylaw"
	"nyayasetu/db"
	_ "nyayasetu/docs"
	"nyayasetu/services"
)

// Deps are the wired services the router exposes. The daily law service
// is built in main because the scheduler shares it.
type Deps struct {
	DailyLaw  *dailylaw.Service
	Assistant *assistant.Client
	Laws      *services.LawService
	Stories   *services.StoryService
	News      *services.NewsService
	Contacts  *services.ContactService

	UploadsDir string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		// Try ping MongoDB
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Generated daily law images
	r.Static("/uploads", deps.UploadsDir)

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/ai/law-of-day", handlers.LawOfDayHandler(deps.DailyLaw))
		api.GET("/ai/weekly-updates", handlers.WeeklyUpdatesHandler(deps.DailyLaw))
		api.GET("/ai/law/:id", handlers.GetDailyLawHandler(deps.DailyLaw))
		api.POST("/ai/chat", handlers.ChatHandler(deps.Assistant))
		api.POST("/ai/analyze-story", handlers.AnalyzeStoryHandler(deps.Assistant))

		api.GET("/laws", handlers.ListLawsHandler(deps.Laws))
		api.GET("/laws/suggest", handlers.SuggestLawsHandler(deps.Laws))
		api.GET("/laws/:idOrSlug", handlers.GetLawHandler(deps.Laws))

		api.GET("/news", handlers.ListNewsHandler(deps.News))
		api.GET("/news/:id", handlers.GetNewsHandler(deps.News))

		api.GET("/stories", handlers.ListStoriesHandler(deps.Stories))
		api.POST("/stories", handlers.SubmitStoryHandler(deps.Stories))
		api.POST("/stories/:id/support", handlers.SupportStoryHandler(deps.Stories))

		api.POST("/contact", handlers.SubmitContactHandler(deps.Contacts))
	}

	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/laws", handlers.ListLawsAdminHandler(deps.Laws))
		admin.POST("/laws", handlers.CreateLawHandler(deps.Laws))
		admin.GET("/laws/:idOrSlug", handlers.GetLawAdminHandler(deps.Laws))
		admin.PUT("/laws/:id", handlers.UpdateLawHandler(deps.Laws))
		admin.DELETE("/laws/:id", handlers.DeleteLawHandler(deps.Laws))
		admin.POST("/laws/:id/toggle-publish", handlers.TogglePublishLawHandler(deps.Laws))

		admin.POST("/news", handlers.CreateNewsHandler(deps.News))
		admin.POST("/news/extract", handlers.ExtractNewsHandler(deps.News))
		admin.PUT("/news/:id", handlers.UpdateNewsHandler(deps.News))
		admin.DELETE("/news/:id", handlers.DeleteNewsHandler(deps.News))

		admin.DELETE("/stories/:id", handlers.DeleteStoryHandler(deps.Stories))

		admin.GET("/contacts", handlers.ListContactsHandler(deps.Contacts))
	}

	return r
}
