package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicedesk/config"
	"voicedesk/cron"
	"voicedesk/database"
	doctorRepoPkg "voicedesk/database/repository/doctor"
	recordsRepoPkg "voicedesk/database/repository/records"
	"voicedesk/handlers"
	"voicedesk/routes"
	"voicedesk/services/dialogue"
	"voicedesk/services/intelligence"
	"voicedesk/services/notification"
	"voicedesk/services/scheduling"
	"voicedesk/services/tasks"
	"voicedesk/services/transcribe"
	"voicedesk/services/voice"
	"voicedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cdn, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: cloudinary unavailable, prompts fall back to plain speech: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	recordsRepo := recordsRepoPkg.NewMongoRecordRepo()

	// services.
	sessionStore := dialogue.NewRedisSessionStore(utils.GetSessionCacheClient(), utils.SessionTTL)
	oracle := scheduling.NewCalendlyService(
		config.AppConfig.CalendlyBaseURL,
		config.AppConfig.CalendlyToken,
		doctorRepo,
		logger,
	)
	localAvailability := scheduling.NewLocalAvailability(doctorRepo)

	smsNotifier := notification.NewTwilioSMSNotifier(
		config.AppConfig.TwilioSID,
		config.AppConfig.TwilioAuthToken,
		config.AppConfig.TwilioFromNumber,
		logger,
	)
	escalation := notification.NewFCMEscalationNotifier(utils.FCMClient, config.AppConfig.StaffFCMToken, logger)

	reminderScheduler := tasks.NewScheduler(time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute)
	defer reminderScheduler.Close()

	finalizer := dialogue.NewFinalizer(sessionStore, oracle, recordsRepo, smsNotifier, reminderScheduler, logger)
	machine := dialogue.NewMachine(sessionStore, oracle, finalizer, logger)

	var renderer voice.Renderer
	if cdn != nil && config.AppConfig.ElevenLabsAPIKey != "" {
		renderer = voice.NewElevenLabsRenderer(
			config.AppConfig.ElevenLabsAPIKey,
			config.AppConfig.ElevenLabsBaseURL,
			config.AppConfig.ElevenLabsVoiceID,
			config.AppConfig.ElevenLabsModel,
			cdn,
			utils.GetPromptCacheClient(),
			logger,
		)
	}

	var transcriber transcribe.Transcriber
	if config.AppConfig.GoogleServiceAccountFile != "" {
		transcriber = transcribe.NewGoogleTranscriber(
			config.AppConfig.GoogleServiceAccountFile,
			config.AppConfig.TwilioSID,
			config.AppConfig.TwilioAuthToken,
			logger,
		)
	}

	var generator intelligence.Generator
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := intelligence.NewGeminiClient(config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Warn("main: gemini unavailable, intent routing uses keywords only", zap.Error(err))
		} else {
			generator = gemini
		}
	}
	classifier := intelligence.NewIntentClassifier(generator, logger)

	handlerBundle := &handlers.HandlerBundle{
		Machine:            machine,
		Renderer:           renderer,
		Transcriber:        transcriber,
		Classifier:         classifier,
		Local:              localAvailability,
		Escalation:         escalation,
		DoctorRepo:         doctorRepo,
		RecordsRepo:        recordsRepo,
		HumanSupportNumber: config.AppConfig.HumanSupportNumber,
		Logger:             logger,
	}

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), utils.GetPromptCacheClient(), database.MongoClient)
	go cron.InitReminderWorker(smsNotifier)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	database.CloseDB(ctx)

	logger.Sugar().Info("main: server stopped gracefully")
}
