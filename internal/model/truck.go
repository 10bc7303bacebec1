package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Truck tem no máximo um motorista corrente; a atribuição é um campo simples,
// não uma tabela de reservas. Edições concorrentes são guardadas pelo campo
// Version (checagem otimista).
type Truck struct {
	ID        string      `gorm:"type:varchar(64);primaryKey" json:"id"`
	Plate     string      `gorm:"type:varchar(16);uniqueIndex;not null" json:"plate"`
	Model     string      `gorm:"type:varchar(128)" json:"model"`
	Year      int         `json:"year"`
	MileageKm float64     `json:"mileage_km"`
	Status    TruckStatus `gorm:"type:varchar(32);not null;default:disponivel;index" json:"status"`
	DriverID  *string     `gorm:"type:varchar(64);index" json:"driver_id"`
	Version   int64       `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Truck) TableName() string {
	return "trucks"
}

func (t *Truck) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
