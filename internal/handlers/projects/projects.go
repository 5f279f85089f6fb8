package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studenthub/internal/catalog"
	myErr "studenthub/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ProjectHandler ручки каталога микропроектов
type ProjectHandler struct {
	Logger   *zap.SugaredLogger
	Projects catalog.ProjectRepo
}

func NewProjectHandler(log *zap.SugaredLogger, projects catalog.ProjectRepo) *ProjectHandler {
	return &ProjectHandler{
		Logger:   log,
		Projects: projects,
	}
}

// List - GET /projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.List()
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.writeJSON(w, projects)
}

// GetByID - GET /projects/{id}
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	project, err := h.Projects.GetByID(id)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.writeJSON(w, project)
}

func (h *ProjectHandler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}
