package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Journal represents a dated journal entry attached to an account
type Journal struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36;not null" json:"user_id"`
	AccountID string    `gorm:"index;size:36;not null" json:"account_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// TableName specifies the table name for Journal model
func (Journal) TableName() string {
	return "journals"
}

// BeforeCreate assigns a UUID primary key
func (j *Journal) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
