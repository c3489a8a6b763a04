package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"faqbot-backend/internal/handlers"
	"faqbot-backend/internal/middleware"
)

func New(h *handlers.ChatbotHandler, logger *zap.Logger, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", h.Health)
	r.Post("/ask", h.Ask)
	r.Get("/logs", h.Logs)
	r.Post("/train", h.Train)
	r.Get("/training", h.Training)
	r.Post("/reset", h.Reset)
	r.Get("/status", h.Status)

	return r
}
