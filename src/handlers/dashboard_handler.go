// backend/src/handlers/dashboard_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/services"
	"github.com/username/fundify/backend/src/utils"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// HandleGetDashboard returns the full aggregate view, optionally restricted
// by "from"/"to" (YYYY-MM-DD) query parameters. ETag support lets the
// frontend skip re-rendering unchanged data.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	filter, err := parseDateFilter(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.dashboardService.GetDashboard(filter)
	if err != nil {
		ctxLogger.Error("Failed to compute dashboard", "error", err)
		utils.SendJSONError(w, "Erro ao calcular o painel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, private")
	if etag, etagErr := utils.GenerateETag(data); etagErr == nil {
		quoted := fmt.Sprintf("%q", etag)
		w.Header().Set("ETag", quoted)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quoted {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	utils.SendJSON(w, data, http.StatusOK)
}

// HandleGetCashFlow returns the twelve-month matrix for the "year" query
// parameter, defaulting to the current year.
func (h *DashboardHandler) HandleGetCashFlow(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 9999 {
			utils.SendJSONError(w, "year inválido", http.StatusBadRequest)
			return
		}
		year = parsed
	}

	result, err := h.dashboardService.GetCashFlow(year)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to compute cash flow", "year", year, "error", err)
		utils.SendJSONError(w, "Erro ao calcular o fluxo de caixa", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, result, http.StatusOK)
}

func parseDateFilter(r *http.Request) (*services.DateFilter, error) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw == "" && toRaw == "" {
		return nil, nil
	}

	var filter services.DateFilter
	if fromRaw != "" {
		from, err := time.Parse("2006-01-02", fromRaw)
		if err != nil {
			return nil, fmt.Errorf("from inválido, esperado YYYY-MM-DD")
		}
		filter.From = from
	}
	if toRaw != "" {
		to, err := time.Parse("2006-01-02", toRaw)
		if err != nil {
			return nil, fmt.Errorf("to inválido, esperado YYYY-MM-DD")
		}
		filter.To = to
	}
	return &filter, nil
}
