package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RelatedType string

const (
	RelatedRoute    RelatedType = "route"
	RelatedDelivery RelatedType = "delivery"
)

// Notification é criada pelo propagador de atribuições e consumida pelo
// painel. A coleção não tem teto (diferente do log de auditoria) e é lida em
// ordem mais-recente-primeiro.
type Notification struct {
	ID               string            `gorm:"type:varchar(64);primaryKey" json:"id"`
	Type             string            `gorm:"type:varchar(64);not null" json:"type"`
	Title            string            `gorm:"type:varchar(255);not null" json:"title"`
	Message          string            `gorm:"type:text;not null" json:"message"`
	Priority         string            `gorm:"type:varchar(16);not null;default:normal" json:"priority"`
	Read             bool              `gorm:"not null;default:false" json:"read"`
	RelatedID        *string           `gorm:"type:varchar(64);index" json:"related_id"`
	RelatedType      *RelatedType      `gorm:"type:varchar(16)" json:"related_type"`
	TargetEmployeeID string            `gorm:"type:varchar(64);not null;index" json:"target_employee_id"`
	Metadata         map[string]string `gorm:"serializer:json;type:jsonb" json:"metadata"`
	CreatedAt        time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
