package model

import "time"

type AuditScope string

const (
	AuditScopeSystem   AuditScope = "system"
	AuditScopeEmployee AuditScope = "employee"
)

// Retenção por escopo; as entradas mais antigas além do teto são descartadas.
const (
	AuditCapSystem   = 1000
	AuditCapEmployee = 100
)

// AuditLog registra apenas ações bem-sucedidas, nunca falhas.
type AuditLog struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Scope       AuditScope `gorm:"type:varchar(16);not null;index" json:"scope"`
	User        string     `gorm:"type:varchar(255);not null" json:"user"`
	Action      string     `gorm:"type:varchar(64);not null" json:"action"`
	Description string     `gorm:"type:text" json:"description"`
	Type        string     `gorm:"type:varchar(32)" json:"type"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (s AuditScope) Cap() int {
	if s == AuditScopeEmployee {
		return AuditCapEmployee
	}
	return AuditCapSystem
}
