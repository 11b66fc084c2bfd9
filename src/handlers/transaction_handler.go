// backend/src/handlers/transaction_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/username/fundify/backend/src/config"
	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/model"
	"github.com/username/fundify/backend/src/models"
	"github.com/username/fundify/backend/src/security/validation"
	"github.com/username/fundify/backend/src/services"
	"github.com/username/fundify/backend/src/utils"
)

type TransactionHandler struct {
	store            *model.Store
	importService    services.ImportService
	dashboardService services.DashboardService
}

func NewTransactionHandler(store *model.Store, importService services.ImportService, dashboardService services.DashboardService) *TransactionHandler {
	return &TransactionHandler{
		store:            store,
		importService:    importService,
		dashboardService: dashboardService,
	}
}

// transactionInput is the body of manual create/update requests.
type transactionInput struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
}

func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.store.ListTransactions()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list transactions", "error", err)
		utils.SendJSONError(w, "Erro ao consultar transações", http.StatusInternalServerError)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	utils.SendJSON(w, txs, http.StatusOK)
}

func (h *TransactionHandler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var input transactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendJSONError(w, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}
	if input.Date == "" || input.Description == "" || input.Amount == nil || input.Type == "" || input.Category == "" {
		utils.SendJSONError(w, "Campos obrigatórios: date, description, amount, type, category", http.StatusBadRequest)
		return
	}

	tx := models.Transaction{
		Date:        input.Date,
		Description: validation.SanitizeText(input.Description),
		Amount:      signAmount(*input.Amount, input.Type),
		Type:        input.Type,
		Category:    validation.SanitizeText(input.Category),
	}
	if err := validation.ValidateTransactionInput(&tx); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.InsertTransaction(&tx); err != nil {
		ctxLogger.Error("Failed to insert transaction", "error", err)
		utils.SendJSONError(w, "Erro ao gravar transação", http.StatusInternalServerError)
		return
	}
	h.dashboardService.InvalidateCache()
	utils.SendJSON(w, tx, http.StatusCreated)
}

func (h *TransactionHandler) HandleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Identificador inválido", http.StatusBadRequest)
		return
	}

	existing, err := h.store.GetTransaction(id)
	if errors.Is(err, model.ErrTransactionNotFound) {
		utils.SendJSONError(w, "Transação não encontrada", http.StatusNotFound)
		return
	}
	if err != nil {
		ctxLogger.Error("Failed to load transaction", "id", id, "error", err)
		utils.SendJSONError(w, "Erro ao consultar transação", http.StatusInternalServerError)
		return
	}

	var input transactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendJSONError(w, "Corpo da requisição inválido", http.StatusBadRequest)
		return
	}

	// Campos ausentes mantêm o valor atual.
	if input.Date != "" {
		existing.Date = input.Date
	}
	if input.Description != "" {
		existing.Description = validation.SanitizeText(input.Description)
	}
	if input.Type != "" {
		existing.Type = input.Type
	}
	if input.Category != "" {
		existing.Category = validation.SanitizeText(input.Category)
	}
	if input.Amount != nil {
		existing.Amount = signAmount(*input.Amount, existing.Type)
	} else {
		// A troca de tipo sozinha também tem de reestabelecer o sinal.
		existing.Amount = signAmount(existing.Amount, existing.Type)
	}

	if err := validation.ValidateTransactionInput(existing); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateTransaction(existing); err != nil {
		if errors.Is(err, model.ErrTransactionNotFound) {
			utils.SendJSONError(w, "Transação não encontrada", http.StatusNotFound)
			return
		}
		ctxLogger.Error("Failed to update transaction", "id", id, "error", err)
		utils.SendJSONError(w, "Erro ao atualizar transação", http.StatusInternalServerError)
		return
	}
	h.dashboardService.InvalidateCache()
	utils.SendJSON(w, existing, http.StatusOK)
}

func (h *TransactionHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.SendJSONError(w, "Identificador inválido", http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteTransaction(id); err != nil {
		if errors.Is(err, model.ErrTransactionNotFound) {
			utils.SendJSONError(w, "Transação não encontrada", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Failed to delete transaction", "id", id, "error", err)
		utils.SendJSONError(w, "Erro ao excluir transação", http.StatusInternalServerError)
		return
	}
	h.dashboardService.InvalidateCache()
	utils.SendJSON(w, map[string]string{"message": "Transação excluída com sucesso"}, http.StatusOK)
}

func (h *TransactionHandler) HandleDeleteAllTransactions(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.DeleteAllTransactions()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to clear transactions", "error", err)
		utils.SendJSONError(w, "Erro ao limpar transações", http.StatusInternalServerError)
		return
	}
	h.dashboardService.InvalidateCache()
	logger.FromContext(r.Context()).Info("All transactions cleared", "count", count)
	utils.SendJSON(w, map[string]interface{}{"message": "Todos os dados foram limpos", "count": count}, http.StatusOK)
}

// HandleImportTransactions receives a multipart CSV submission and runs it
// through the import pipeline. The optional "validateAccountPlan" form field
// defaults to true.
func (h *TransactionHandler) HandleImportTransactions(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	fileData, fileName, ok := readUploadedFile(w, r)
	if !ok {
		return
	}

	validatePlan := true
	if raw := r.FormValue("validateAccountPlan"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			utils.SendJSONError(w, "validateAccountPlan deve ser true ou false", http.StatusBadRequest)
			return
		}
		validatePlan = parsed
	}

	result, err := h.importService.ImportTransactions(fileData, fileName, validatePlan)
	if err != nil {
		var rejected *services.ImportRejectedError
		if errors.As(err, &rejected) {
			reasons := make([]string, 0, len(rejected.Diagnostics))
			for _, d := range rejected.Diagnostics {
				reasons = append(reasons, d.Reason)
			}
			utils.SendJSON(w, map[string]interface{}{
				"error":  "Nenhuma transação válida",
				"errors": reasons,
				"debug": map[string]interface{}{
					"totalRecebidas":  rejected.Received,
					"validas":         0,
					"invalidas":       len(rejected.Diagnostics),
					"exemplosPuladas": rejected.Sample,
				},
			}, http.StatusBadRequest)
			return
		}
		if errors.Is(err, services.ErrParsingFailed) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctxLogger.Error("Import failed", "file", fileName, "error", err)
		utils.SendJSONError(w, "Erro ao importar transações", http.StatusInternalServerError)
		return
	}

	utils.SendJSON(w, result, http.StatusCreated)
}

func (h *TransactionHandler) HandleImportHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.SendJSONError(w, "limit inválido", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	records, err := h.importService.ImportHistory(limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list import history", "error", err)
		utils.SendJSONError(w, "Erro ao consultar histórico de importações", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []model.ImportRecord{}
	}
	utils.SendJSON(w, records, http.StatusOK)
}

// signAmount força o sinal do valor de acordo com o tipo.
func signAmount(amount float64, txType string) float64 {
	if txType == models.TypeExpense {
		return -math.Abs(amount)
	}
	return math.Abs(amount)
}

// readUploadedFile parses the multipart form, validates the upload and
// returns the file bytes. It writes the error response itself on failure.
func readUploadedFile(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Falha ao processar ou o ficheiro é demasiado grande (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return nil, "", false
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Ficheiro demasiado grande, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return nil, "", false
	}

	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" {
		if err := validation.ValidateClientContentType(contentType); err != nil {
			ctxLogger.Warn("Invalid client-declared file type", "contentType", contentType, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return nil, "", false
		}
	}

	if err := validation.ValidateFileContent(file); err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	fileData, err := io.ReadAll(file)
	if err != nil {
		ctxLogger.Error("Failed to read uploaded file", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, "Erro ao ler o ficheiro", http.StatusInternalServerError)
		return nil, "", false
	}
	return fileData, fileHeader.Filename, true
}
