// backend/src/handlers/accountplan_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/model"
	"github.com/username/fundify/backend/src/models"
	"github.com/username/fundify/backend/src/services"
	"github.com/username/fundify/backend/src/utils"
)

type AccountPlanHandler struct {
	store         *model.Store
	importService services.ImportService
}

func NewAccountPlanHandler(store *model.Store, importService services.ImportService) *AccountPlanHandler {
	return &AccountPlanHandler{store: store, importService: importService}
}

// HandleImportAccountPlan replaces the whole chart of accounts with the
// uploaded file.
func (h *AccountPlanHandler) HandleImportAccountPlan(w http.ResponseWriter, r *http.Request) {
	fileData, fileName, ok := readUploadedFile(w, r)
	if !ok {
		return
	}

	result, err := h.importService.ImportAccountPlan(fileData, fileName)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.FromContext(r.Context()).Error("Account plan import failed", "file", fileName, "error", err)
		utils.SendJSONError(w, "Erro ao importar plano de contas", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, result, http.StatusCreated)
}

func (h *AccountPlanHandler) HandleListAccountPlan(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.ListAccountPlan()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list account plan", "error", err)
		utils.SendJSONError(w, "Erro ao consultar plano de contas", http.StatusInternalServerError)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	utils.SendJSON(w, accounts, http.StatusOK)
}

func (h *AccountPlanHandler) HandleClearAccountPlan(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAccountPlan(); err != nil {
		logger.FromContext(r.Context()).Error("Failed to clear account plan", "error", err)
		utils.SendJSONError(w, "Erro ao limpar plano de contas", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, map[string]string{"message": "Plano de contas limpo"}, http.StatusOK)
}
