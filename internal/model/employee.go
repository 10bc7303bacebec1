package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleGestor      Role = "gestor"
	RoleMotorista   Role = "motorista"
	RoleFuncionario Role = "funcionario"
	RoleAtendente   Role = "atendente"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleGestor, RoleMotorista, RoleFuncionario, RoleAtendente:
		return true
	}
	return false
}

type EmployeeStatus string

const (
	EmployeeAtivo   EmployeeStatus = "ativo"
	EmployeeInativo EmployeeStatus = "inativo"
)

type Employee struct {
	ID           string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"type:varchar(32)" json:"phone"`
	Role         Role           `gorm:"type:varchar(32);not null;index" json:"role"`
	Status       EmployeeStatus `gorm:"type:varchar(16);not null;default:ativo" json:"status"`
	PasswordHash string         `gorm:"type:text;not null" json:"-"`
	PhotoURL     *string        `gorm:"type:text" json:"photo_url"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Principal é a identidade autenticada extraída do token de acesso.
type Principal struct {
	EmployeeID string
	Role       Role
}

func (p Principal) IsGestor() bool      { return p.Role == RoleGestor }
func (p Principal) IsMotorista() bool   { return p.Role == RoleMotorista }
func (p Principal) IsFuncionario() bool { return p.Role == RoleFuncionario }
func (p Principal) IsAtendente() bool   { return p.Role == RoleAtendente }
