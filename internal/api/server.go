package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hyerin/tinywords/internal/services"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	DB             *sql.DB
	PlanService    services.PlanService
	ReviewService  services.ReviewService
	ProfileService services.ProfileService
	HistoryService services.HistoryService
	SpeechService  services.SpeechService
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(userMiddleware)

		r.Post("/auth/initialize", s.handleInitialize)

		r.Get("/day-plans/today", s.handleGetToday)
		r.Patch("/day-plans/{planID}/items/{itemID}", s.handlePatchPlanItem)
		r.Post("/day-plans/{planID}/complete", s.handleCompletePlan)

		r.Get("/reviews/queue", s.handleReviewQueue)
		r.Post("/reviews/{reviewID}/submit", s.handleSubmitReview)

		r.Get("/users/me/profile", s.handleGetProfile)
		r.Patch("/users/me/profile", s.handlePatchProfile)
		r.Post("/users/me/reset", s.handleResetUser)

		r.Get("/history", s.handleHistory)

		r.Post("/speech-attempts", s.handleCreateSpeechAttempt)
		r.Patch("/speech/{speechID}/score", s.handleUpdateSpeechScore)
	})

	return r
}
