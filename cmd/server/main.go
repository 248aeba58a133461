package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"helpdesk-backend/internal/config"
	"helpdesk-backend/internal/handlers"
	"helpdesk-backend/internal/router"
	"helpdesk-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Helpdesk Assistant...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Model Provider Client ────
	var assistant services.Assistant
	switch cfg.Provider {
	case "gemini":
		gemini, err := services.NewGeminiAssistant(context.Background(), cfg.GeminiAPIKey, cfg.Model, cfg.MaxTokens)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		assistant = gemini
		log.Printf("✓ Gemini client initialized (%s)", cfg.Model)
	default:
		assistant = services.NewOpenAIAssistant(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.MaxTokens)
		log.Printf("✓ OpenAI client initialized (%s)", cfg.Model)
	}

	// ──── Step 3: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(assistant, cfg.RequestTimeout())
	visionHandler := handlers.NewVisionHandler(assistant, cfg.RequestTimeout(), cfg.MaxUploadBytes())

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, visionHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Provider calls run up to RequestTimeout; leave room to write the reply.
		WriteTimeout: cfg.RequestTimeout() + 15*time.Second,
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

	log.Printf("✓ Helpdesk Assistant ready on http://localhost:%s", cfg.Port)
	log.Printf("  UI:  http://localhost:%s/", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
