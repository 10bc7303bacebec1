package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Delivery struct {
	ID           string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	TrackingCode string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"tracking_code"`
	TruckID      *string    `gorm:"type:varchar(64);index" json:"truck_id"`
	DriverID     *string    `gorm:"type:varchar(64);index" json:"driver_id"`
	EmployeeID   *string    `gorm:"type:varchar(64);index" json:"employee_id"`
	Status       WorkStatus `gorm:"type:varchar(32);not null;default:pendente;index" json:"status"`

	ScheduledDate *time.Time `json:"scheduled_date"`
	// Carimbada ao entrar em entregue, se ainda não definida.
	DeliveredAt *time.Time `json:"delivered_at"`

	CustomerName     string `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerDocument string `gorm:"type:varchar(32)" json:"customer_document"`
	CustomerPhone    string `gorm:"type:varchar(32)" json:"customer_phone"`

	OriginCity       string `gorm:"type:varchar(128)" json:"origin_city"`
	OriginState      string `gorm:"type:varchar(8)" json:"origin_state"`
	DestinationCity  string `gorm:"type:varchar(128)" json:"destination_city"`
	DestinationState string `gorm:"type:varchar(8)" json:"destination_state"`

	CargoDescription string  `gorm:"type:text" json:"cargo_description"`
	CargoWeightKg    float64 `json:"cargo_weight_kg"`

	PaymentMethod string  `gorm:"type:varchar(32)" json:"payment_method"`
	PaymentValue  float64 `json:"payment_value"`

	Version   int64     `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Normalize aplica a normalização de status uma única vez, no caminho de
// leitura, em vez de ramificar em cada ponto de consumo.
func (d *Delivery) Normalize() {
	d.Status = NormalizeStatus(d.Status)
}
