package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item é um item de carga dentro de um destino. O multiplicador de valor é a
// quantidade quando informada, senão o peso (cargas vendidas por tonelada).
type Item struct {
	Type        string  `json:"type"`
	TypeID      string  `json:"type_id"`
	WeightKg    float64 `json:"weight_kg"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

type Destination struct {
	CustomerID       string `json:"customer_id"`
	CustomerName     string `json:"customer_name"`
	CustomerDocument string `json:"customer_document"`
	CustomerPhone    string `json:"customer_phone"`
	City             string `json:"city"`
	State            string `json:"state"`
	ZipCode          string `json:"zip_code"`
	Street           string `json:"street"`
	Number           string `json:"number"`
	Complement       string `json:"complement"`
	Neighborhood     string `json:"neighborhood"`
	Items            []Item `json:"items"`
}

// TotalValue soma valor × quantidade-ou-peso de cada item.
func (d Destination) TotalValue() float64 {
	var total float64
	for _, item := range d.Items {
		multiplier := item.Quantity
		if multiplier <= 0 {
			multiplier = item.WeightKg
		}
		total += item.Value * multiplier
	}
	return total
}

type Route struct {
	ID         string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Code       string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	TruckID    *string    `gorm:"type:varchar(64);index" json:"truck_id"`
	DriverID   *string    `gorm:"type:varchar(64);index" json:"driver_id"`
	EmployeeID *string    `gorm:"type:varchar(64);index" json:"employee_id"`
	Status     WorkStatus `gorm:"type:varchar(32);not null;default:pendente;index" json:"status"`

	// Motoristas extras além do titular; consultado na resolução de atribuição.
	AssignedDrivers []string `gorm:"serializer:json;type:jsonb" json:"assigned_drivers"`

	OriginCity   string        `gorm:"type:varchar(128)" json:"origin_city"`
	OriginState  string        `gorm:"type:varchar(8)" json:"origin_state"`
	Destinations []Destination `gorm:"serializer:json;type:jsonb" json:"destinations"`

	ScheduledDate *time.Time `json:"scheduled_date"`
	CompletedAt   *time.Time `json:"completed_at"`

	Version   int64     `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Route) TableName() string {
	return "routes"
}

func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Route) Normalize() {
	r.Status = NormalizeStatus(r.Status)
}

// TotalWeightKg soma peso × quantidade de todos os itens de todos os destinos.
func (r Route) TotalWeightKg() float64 {
	var total float64
	for _, dest := range r.Destinations {
		for _, item := range dest.Items {
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}
			total += item.WeightKg * qty
		}
	}
	return total
}

// TotalValue soma o valor total de todos os destinos.
func (r Route) TotalValue() float64 {
	var total float64
	for _, dest := range r.Destinations {
		total += dest.TotalValue()
	}
	return total
}
