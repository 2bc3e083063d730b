package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/internal/handler/conversation"
	"github.com/sukarame/si-karame/backend/internal/handler/knowledge"
	middlewarePkg "github.com/sukarame/si-karame/backend/internal/middleware"
	knowledgeModel "github.com/sukarame/si-karame/backend/internal/model/knowledge"
	conversationService "github.com/sukarame/si-karame/backend/internal/service/conversation"
	"github.com/sukarame/si-karame/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(village knowledgeModel.Village, registry *conversationService.Registry, renderer conversation.HTMLRenderer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	knowledgeHandler := knowledge.New(village)
	conversationHandler := conversation.New(registry, village.Suggestions, renderer, logger)

	r.Route("/api", func(api chi.Router) {
		knowledgeHandler.RegisterRoutes(api)
		conversationHandler.RegisterRoutes(api)
	})

	return r
}
