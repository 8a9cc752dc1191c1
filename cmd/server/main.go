package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solace.app/backend/internal/api"
	"solace.app/backend/internal/config"
	"solace.app/backend/internal/core"
	"solace.app/backend/internal/objstore"
	"solace.app/backend/internal/sentiment"
	"solace.app/backend/internal/speech"
	"solace.app/backend/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	ctx := context.Background()

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	// Initialize external service clients. One shared client per service,
	// never re-initialized per request.
	llmService := core.NewLLMService()
	defer llmService.Close()

	transcriber, err := speech.NewGoogleTranscriber(ctx, config.AppConfig.SpeechLanguage)
	if err != nil {
		log.Fatalf("Failed to initialize transcriber: %v", err)
	}
	defer transcriber.Close()

	synthesizer, err := speech.NewGoogleSynthesizer(ctx, config.AppConfig.SpeechLanguage)
	if err != nil {
		log.Fatalf("Failed to initialize synthesizer: %v", err)
	}
	defer synthesizer.Close()

	analyzer, err := sentiment.NewGoogleAnalyzer(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize sentiment analyzer: %v", err)
	}
	defer analyzer.Close()

	publisher, err := objstore.NewS3Publisher(ctx, objstore.Config{
		Bucket:        config.AppConfig.S3Bucket,
		Region:        config.AppConfig.S3Region,
		Endpoint:      config.AppConfig.S3Endpoint,
		AccessKey:     config.AppConfig.S3AccessKey,
		SecretKey:     config.AppConfig.S3SecretKey,
		PublicBaseURL: config.AppConfig.S3PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize services
	profileService := core.NewProfileService(dbStore)
	diaryService := core.NewDiaryService(dbStore, analyzer)
	echoService := core.NewEchoService(dbStore, transcriber, synthesizer, publisher)
	recommendService := core.NewRecommendService(dbStore, llmService, config.AppConfig.PositiveScoreThreshold)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(profileService, diaryService, echoService, recommendService)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,  // echo uploads can be slow
		WriteTimeout: 120 * time.Second, // transcription + synthesis chains take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active requests time to finish before the clients close.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
