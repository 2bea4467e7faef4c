package http

import (
	"net/http"

	"b3-dashboard/service"
)

type FXHandler struct {
	service *service.FXService
}

func NewFXHandler(service *service.FXService) *FXHandler {
	return &FXHandler{service: service}
}

func (h *FXHandler) USDToBRL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.service.USDToBRL(r.Context()))
}
