package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID             string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	FromEmployeeID string    `gorm:"type:varchar(64);not null;index" json:"from_employee_id"`
	ToEmployeeID   string    `gorm:"type:varchar(64);not null;index" json:"to_employee_id"`
	Subject        string    `gorm:"type:varchar(255)" json:"subject"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	Read           bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Message) TableName() string {
	return "employee_messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
