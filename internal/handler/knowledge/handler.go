package knowledge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
	"github.com/sukarame/si-karame/backend/pkg/utils"
)

// Handler serves the static village information shown next to the chat.
type Handler struct {
	village knowledge.Village
}

// New creates a knowledge handler.
func New(village knowledge.Village) *Handler {
	return &Handler{village: village}
}

// RegisterRoutes mounts the knowledge routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/knowledge", h.handleGetKnowledge)
}

type homestayView struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	PriceLabel  string `json:"priceLabel"`
	Description string `json:"description"`
}

type sidebarView struct {
	Name        string                `json:"name"`
	Region      string                `json:"region"`
	Summary     string                `json:"summary"`
	Assistant   string                `json:"assistant"`
	Intro       knowledge.Intro       `json:"intro"`
	Highlights  []knowledge.Highlight `json:"highlights"`
	Packages    []knowledge.Package   `json:"packages"`
	Homestays   []homestayView        `json:"homestays"`
	Locations   []knowledge.Location  `json:"locations"`
	Websites    []knowledge.Website   `json:"websites"`
	Contact     string                `json:"contact"`
	Tip         string                `json:"tip"`
	Suggestions []string              `json:"suggestions"`
	Disclaimer  string                `json:"disclaimer"`
}

func (h *Handler) handleGetKnowledge(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, newSidebarView(h.village))
}

func newSidebarView(v knowledge.Village) sidebarView {
	homestays := make([]homestayView, 0, len(v.Homestays))
	for _, hs := range v.Homestays {
		homestays = append(homestays, homestayView{
			Name:        hs.Name,
			Price:       hs.Price,
			PriceLabel:  hs.PriceLabel(),
			Description: hs.Description,
		})
	}

	return sidebarView{
		Name:        v.Name,
		Region:      v.Region,
		Summary:     v.Summary,
		Assistant:   v.Assistant.Name,
		Intro:       v.Intro,
		Highlights:  v.Highlights,
		Packages:    v.Packages,
		Homestays:   homestays,
		Locations:   v.Locations,
		Websites:    v.Websites,
		Contact:     v.Contact,
		Tip:         v.Tip,
		Suggestions: v.Suggestions,
		Disclaimer:  v.Disclaimer,
	}
}
