package services

import (
	"context"
	"regexp"

	"minibank/internal/models"
	"minibank/internal/money"
	"minibank/internal/store"

	"github.com/xuri/excelize/v2"
)

// Excel caps worksheet names at 31 characters.
const maxSheetNameLen = 31

var sheetNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

type ExportFile struct {
	Name    string
	Content []byte
}

// ExportService renders an account's transaction history as a spreadsheet.
type ExportService struct {
	repo store.Repository
}

func NewExportService(repo store.Repository) *ExportService {
	return &ExportService{repo: repo}
}

// AccountTransactions builds an xlsx workbook with one sheet named after the
// account, a header row, and one row per transaction in log order. An account
// with no transactions is an error and produces no file.
func (s *ExportService) AccountTransactions(ctx context.Context, userID, accountID int64) (ExportFile, error) {
	accounts, err := s.repo.Accounts(ctx)
	if err != nil {
		return ExportFile{}, err
	}
	var selected *models.Account
	names := make(map[int64]string)
	for i, a := range accounts {
		if a.UserID != userID {
			continue
		}
		names[a.ID] = a.Name
		if a.ID == accountID {
			selected = &accounts[i]
		}
	}
	if selected == nil {
		return ExportFile{}, ErrAccountNotFound
	}

	transactions, err := s.repo.Transactions(ctx)
	if err != nil {
		return ExportFile{}, err
	}
	rows := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if touchesAccount(t, accountID) {
			rows = append(rows, t)
		}
	}
	if len(rows) == 0 {
		return ExportFile{}, ErrNoTransactions
	}

	sheet := sanitizeSheetName(selected.Name)
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return ExportFile{}, err
	}
	header := []any{"Date", "Type", "Amount", "From", "To", "Note"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return ExportFile{}, err
	}
	for i, t := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return ExportFile{}, err
		}
		row := []any{
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			t.Type,
			money.Format(t.Amount),
			endpointName(t.FromAccountID, names, "Top-up"),
			endpointName(t.ToAccountID, names, "External"),
			t.Note,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return ExportFile{}, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return ExportFile{}, err
	}
	return ExportFile{Name: sheet + "_transactions.xlsx", Content: buf.Bytes()}, nil
}

// endpointName resolves an account reference to a display name. Accounts of
// other users render as "External", a nil reference as the given placeholder.
func endpointName(accountID *int64, names map[int64]string, placeholder string) string {
	if accountID == nil {
		return placeholder
	}
	if name, ok := names[*accountID]; ok {
		return name
	}
	return "External"
}

func sanitizeSheetName(name string) string {
	sanitized := sheetNameSanitizer.ReplaceAllString(name, "_")
	if len(sanitized) > maxSheetNameLen {
		sanitized = sanitized[:maxSheetNameLen]
	}
	return sanitized
}
