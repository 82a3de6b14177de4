package handlers

import (
	"net/http"

	"github.com/coachpoint/backend/internal/transport/http/respond"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	respond.Write(w, http.StatusOK, map[string]string{"status": "ok"})
}
