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

	"faqbot-backend/internal/config"
	"faqbot-backend/internal/database"
	"faqbot-backend/internal/handlers"
	"faqbot-backend/internal/logging"
	"faqbot-backend/internal/repository"
	"faqbot-backend/internal/router"
	"faqbot-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting FAQ Chatbot Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	logger := logging.MustNew(cfg.LogLevel, cfg.Env)
	defer logger.Sync()

	// ──── Step 2: Open SQLite Database ────
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("✗ Database open failed: %v", err)
	}
	defer db.Close()
	log.Printf("✓ SQLite database opened (%s)", cfg.DatabasePath)

	// ──── Step 3: Initialize Schema ────
	if err := database.Migrate(db); err != nil {
		log.Fatalf("✗ Database schema init failed: %v", err)
	}
	log.Println("✓ Database schema ready")

	// ──── Initialize Repositories ────
	conversationRepo := repository.NewConversationRepo(db)
	trainingRepo := repository.NewTrainingRepo(db)

	// ──── Step 4: Initialize Chatbot ────
	// The Gemini client itself is built lazily on the first /ask.
	chatbot := services.NewChatbotService(cfg, trainingRepo, logger)
	defer chatbot.Close()
	log.Printf("✓ Chatbot service ready (model %s, max %d turns in memory)", cfg.GeminiModel, cfg.MemoryMaxTurns)

	// ──── Step 5: Start HTTP Server ────
	chatbotHandler := handlers.NewChatbotHandler(chatbot, conversationRepo, trainingRepo)
	r := router.New(chatbotHandler, logger, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ FAQ Chatbot Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
