package db_models

import "time"

// CompletionRow is one lead row when the sheet is backed by PostgreSQL. The
// primary key doubles as the row index handed back to the pipeline.
type CompletionRow struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	DOB          string `gorm:"column:dob"`
	Age          int
	Insurance    string
	Timing       string
	Income       string
	Phone        string `gorm:"index"`
	Plan         string
	Email        string `gorm:"index"`
	Signup       string
	Timestamp    string
	EmailSent    string
	WhatsAppLink string `gorm:"column:whatsapp_link"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CompletionRow) TableName() string {
	return "completion_rows"
}
