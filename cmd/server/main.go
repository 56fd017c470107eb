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

	"github.com/ahmedhamdy1234/OXTCHAT/internal/config"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/handlers"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/router"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/services"
)

func main() {
	log.Println("🚀 Starting OXTCHAT relay...")

	cfg := config.Load()
	log.Println("✓ Environment variables loaded")
	if cfg.AIAPIKey == "" {
		log.Println("⚠ AI_API_KEY is not set; chat requests will fail until it is configured")
	}

	geminiService := services.NewGeminiService(cfg.AIAPIKey, cfg.AIModel, cfg.AIEndpoint)
	log.Printf("✓ AI relay initialized (model %s)", cfg.AIModel)

	chatHandler := handlers.NewChatHandler(geminiService)

	r := router.New(chatHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: upstream calls have no ceiling and a slow
		// model reply must not cut the response off.
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

	log.Printf("✓ OXTCHAT relay ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat: POST http://localhost:%s/api/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
