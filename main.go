package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"

	"nyayasetu/api/router"
	"nyayasetu/assistant"
	"nyayasetu/config"
	"nyayasetu/dailylaw"
	"nyayasetu/db"
	_ "nyayasetu/docs" // swagger spec registration
	"nyayasetu/imagegen"
	"nyayasetu/logger"
	"nyayasetu/mailer"
	"nyayasetu/repositories"
	"nyayasetu/scheduler"
	"nyayasetu/services"
	"nyayasetu/synthesizer"
)

// @title           NyayaSetu API
// @version         1.0
// @description     Legal awareness platform API: daily law case studies, law library, community stories and AI assistant
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background()); err != nil {
		logger.Log.Fatalf("failed to initialize MongoDB: %v", err)
	}

	// Daily law pipeline
	dailyRepo := repositories.NewDailyLawRepository(db.Database())
	dailySvc := dailylaw.NewService(
		dailyRepo,
		dailylaw.NewAggregator(cfg.DailyLaw),
		synthesizer.NewClient(cfg),
		imagegen.NewGenerator(cfg),
		cfg,
	)

	// AI assistant and content services
	assistantClient := assistant.NewClient(cfg)
	lawSvc := services.NewLawService(repositories.NewLawRepository(db.Database()))
	storySvc := services.NewStoryService(repositories.NewStoryRepository(db.Database()), assistantClient)
	newsSvc := services.NewNewsService(repositories.NewNewsRepository(db.Database()))
	contactSvc := services.NewContactService(repositories.NewContactRepository(db.Database()), mailer.NewBrevo(cfg))

	// Morning pre-generation so the first visitor of the day gets a warm
	// cache. On-demand generation still covers a missed or failed run.
	sched, err := scheduler.New(cfg.DailyLaw.Timezone, 15*time.Minute)
	if err != nil {
		logger.Log.Fatalf("failed to create scheduler: %v", err)
	}
	if err := sched.AddJob("daily-law-generation", cfg.DailyLaw.Schedule, func(ctx context.Context) error {
		_, err := dailySvc.Generate(ctx)
		return err
	}); err != nil {
		logger.Log.Fatalf("failed to schedule daily law generation: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	r := router.New(router.Deps{
		DailyLaw:   dailySvc,
		Assistant:  assistantClient,
		Laws:       lawSvc,
		Stories:    storySvc,
		News:       newsSvc,
		Contacts:   contactSvc,
		UploadsDir: cfg.UploadsDir,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.InfoWithFields("server starting", logger.Fields{"port": port})
	if err := http.ListenAndServe(":"+port, corsHandler); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatalf("server stopped: %v", err)
	}
}
