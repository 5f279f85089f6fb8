package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type Handler struct {
	service PopularityService
	logger  *zap.SugaredLogger
}

func NewHandler(service PopularityService, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetPopularProjects - GET /projects/popular?top=N
func (h *Handler) GetPopularProjects(w http.ResponseWriter, r *http.Request) {
	topN := 5 // По умолчанию
	if topParam := r.URL.Query().Get("top"); topParam != "" {
		if n, err := strconv.Atoi(topParam); err == nil && n > 0 {
			topN = n
		}
	}

	projects, err := h.service.GetTopProjects(r.Context(), topN)
	if err != nil {
		h.logger.Errorf("Failed to get popular projects: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(projects) == 0 {
		projects = []string{} // Пустой массив вместо null
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(projects); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}
