package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"helpdesk-backend/internal/handlers"
	"helpdesk-backend/internal/middleware"
	"helpdesk-backend/web"
)

func New(
	chatHandler *handlers.ChatHandler,
	visionHandler *handlers.VisionHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Relay Routes ────
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Relay)
		r.Post("/vision", visionHandler.Relay)
	})

	// ──── Chat UI ────
	r.Handle("/*", web.Handler())

	return r
}
