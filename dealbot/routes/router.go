package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dealbot/dealbot/config"
	"dealbot/dealbot/controllers"
)

// New assembles the full router. No request timeout middleware: a
// send_message call legitimately spans two LLM calls and two browser
// sessions.
func New(cfg config.Config, authCtrl *controllers.AuthController, chatCtrl *controllers.ChatController, healthCtrl *controllers.HealthController) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Mount("/healthz", HealthRoutes(healthCtrl))
	RegisterAuthRoutes(r, authCtrl, cfg)
	RegisterChatRoutes(r, chatCtrl, cfg)
	return r
}
