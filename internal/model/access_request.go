package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessRequestStatus string

const (
	AccessRequestPendente  AccessRequestStatus = "pendente"
	AccessRequestAprovado  AccessRequestStatus = "aprovado"
	AccessRequestRejeitado AccessRequestStatus = "rejeitado"
)

// AccessRequest é o pedido de cadastro feito na tela pública; a aprovação
// cria o funcionário correspondente.
type AccessRequest struct {
	ID            string              `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name          string              `gorm:"type:varchar(255);not null" json:"name"`
	Email         string              `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone         string              `gorm:"type:varchar(32)" json:"phone"`
	RequestedRole Role                `gorm:"type:varchar(32);not null" json:"requested_role"`
	Status        AccessRequestStatus `gorm:"type:varchar(16);not null;default:pendente;index" json:"status"`
	AdminResponse *string             `gorm:"type:text" json:"admin_response"`
	ResolvedAt    *time.Time          `json:"resolved_at"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AccessRequest) TableName() string {
	return "access_requests"
}

func (a *AccessRequest) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
