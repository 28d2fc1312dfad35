package repositories

import (
	"context"
	"time"

	"superagent/internal/models/chat_models"
	"superagent/pkg/utils"
)

// SheetRepository is the lead spreadsheet as seen from the completion
// pipeline. Row indexes are 1-based and include the header row.
type SheetRepository interface {
	// EnsureHeader writes the fixed header row when it is absent or differs.
	EnsureHeader(ctx context.Context) error
	// AppendRow stores record after the last populated row and returns its index.
	AppendRow(ctx context.Context, record chat_models.CompletionRecord) (int, error)
	// MarkNotified stamps the Email_Sent column and rewrites the WhatsApp link
	// from the row's stored phone.
	MarkNotified(ctx context.Context, rowIndex int, at time.Time) error
}

// disabledSheetRepository is used when no backend is configured. Appends
// fail, so a row is never marked notified.
type disabledSheetRepository struct{}

func NewDisabledSheetRepository() SheetRepository {
	return disabledSheetRepository{}
}

func (disabledSheetRepository) EnsureHeader(ctx context.Context) error { return nil }

func (disabledSheetRepository) AppendRow(ctx context.Context, record chat_models.CompletionRecord) (int, error) {
	return 0, utils.ErrSheetDisabled
}

func (disabledSheetRepository) MarkNotified(ctx context.Context, rowIndex int, at time.Time) error {
	return utils.ErrSheetDisabled
}
