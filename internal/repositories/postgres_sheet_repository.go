package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"superagent/internal/models/chat_models"
	"superagent/internal/models/db_models"
	"superagent/pkg/utils"
)

type postgresSheetRepository struct {
	db *gorm.DB
}

// NewPostgresSheetRepository stores lead rows in the completion_rows table.
func NewPostgresSheetRepository(db *gorm.DB) SheetRepository {
	return &postgresSheetRepository{db: db}
}

// EnsureHeader is the table migration: columns play the role of the header.
func (p *postgresSheetRepository) EnsureHeader(ctx context.Context) error {
	if err := p.db.WithContext(ctx).AutoMigrate(&db_models.CompletionRow{}); err != nil {
		return fmt.Errorf("migrate completion rows: %w", err)
	}
	return nil
}

func (p *postgresSheetRepository) AppendRow(ctx context.Context, record chat_models.CompletionRecord) (int, error) {
	row := db_models.CompletionRow{
		Name:         record.Name,
		DOB:          record.DOB,
		Age:          record.Age,
		Insurance:    record.Insurance,
		Timing:       record.Timing,
		Income:       record.Income,
		Phone:        record.Phone,
		Plan:         record.Plan,
		Email:        record.Email,
		Signup:       record.Signup,
		Timestamp:    record.Timestamp,
		EmailSent:    record.EmailSent,
		WhatsAppLink: record.WhatsAppLink,
	}

	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert completion row: %w", err)
	}
	return int(row.ID), nil
}

func (p *postgresSheetRepository) MarkNotified(ctx context.Context, rowIndex int, at time.Time) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row db_models.CompletionRow
		if err := tx.First(&row, "id = ?", rowIndex).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("completion row %d: %w", rowIndex, err)
			}
			return err
		}

		updates := map[string]interface{}{
			"email_sent": utils.FormatSheetTimestamp(at),
		}
		if row.Phone != "" {
			updates["whatsapp_link"] = utils.WhatsAppLink(row.Phone)
		}

		return tx.Model(&row).Updates(updates).Error
	})
}
