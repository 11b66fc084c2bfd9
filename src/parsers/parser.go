// backend/src/parsers/parser.go
package parsers

import (
	"errors"
	"strings"

	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/models"
	"github.com/username/fundify/backend/src/security/validation"
)

// ErrEmptyFile is returned when a submission has no data rows at all, so the
// handler can refuse it before any reconciliation runs.
var ErrEmptyFile = errors.New("Arquivo vazio ou formato inválido")

// ParseAccountPlan decodes, tokenizes and normalizes an account-plan file
// into raw rows keyed by the mapped header columns. Rows without content are
// dropped; rows whose identifier cell is empty survive here and are filtered
// later, so diagnostics can reference them.
func ParseAccountPlan(data []byte) ([]models.RawAccountRow, error) {
	text, encodingName := ResolveEncoding(data)
	rows := Tokenize(text)
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}
	sep := string(DetectDelimiter(text))
	logger.L.Debug("account plan tokenized", "encoding", encodingName, "rows", len(rows))

	cols, err := MapPlanHeaders(rows[0])
	if err != nil {
		return nil, err
	}

	var out []models.RawAccountRow
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		out = append(out, models.RawAccountRow{
			ID:          cellAt(row, cols.ID),
			Nature:      cellAt(row, cols.Nature),
			Type:        cellAt(row, cols.Type),
			Category:    cellAt(row, cols.Category),
			SubCategory: cellAt(row, cols.SubCategory),
			Name:        cellAt(row, cols.Name),
			// Reconstituída com o delimitador do próprio arquivo.
			RawLine: strings.Join(row, sep),
		})
	}
	return out, nil
}

// ParseTransactions decodes, tokenizes and normalizes a transactions file.
// Rows with fewer than two fields carry no usable data and are skipped.
func ParseTransactions(data []byte) ([]models.RawTransactionRow, error) {
	text, encodingName := ResolveEncoding(data)
	rows := Tokenize(text)
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}
	logger.L.Debug("transactions tokenized", "encoding", encodingName, "rows", len(rows))

	sep := string(DetectDelimiter(text))
	cols := MapTransactionHeaders(rows[0])

	var out []models.RawTransactionRow
	for _, row := range rows[1:] {
		if isEmptyRow(row) || len(row) < 2 {
			continue
		}
		out = append(out, models.RawTransactionRow{
			AccountID:   cellAt(row, cols.AccountID),
			Nature:      cellAt(row, cols.Nature),
			Type:        cellAt(row, cols.Type),
			Category:    cellAt(row, cols.Category),
			SubCategory: cellAt(row, cols.SubCategory),
			Operation:   cellAt(row, cols.Operation),
			OriginDest:  cellAt(row, cols.OriginDest),
			Item:        cellAt(row, cols.Item),
			Date:        cellAt(row, cols.Date),
			Amount:      cellAt(row, cols.Amount),

			LegacyDate:        cellAt(row, cols.LegacyDate),
			LegacyDescription: cellAt(row, cols.LegacyDescription),
			LegacyAmount:      cellAt(row, cols.LegacyAmount),
			LegacyType:        cellAt(row, cols.LegacyType),
			LegacyCategory:    cellAt(row, cols.LegacyCategory),

			RawLine: strings.Join(row, sep),
		})
	}
	return out, nil
}

// cellAt returns the normalized value of the cell at idx, or "" when the
// column was not mapped or the row is short.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	cleaned, ok := validation.NormalizeField(row[idx])
	if !ok {
		logger.L.Debug("field kept without full normalization", "value", cleaned)
	}
	return cleaned
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
