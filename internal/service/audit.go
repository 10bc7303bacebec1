package service

import (
	"context"

	"github.com/rs/zerolog"

	"frota-service/internal/model"
)

type auditStore interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, scope model.AuditScope, limit int) ([]model.AuditLog, error)
}

// AuditRecorder grava o trilho de auditoria. Só ações bem-sucedidas chegam
// aqui; falha ao gravar o trilho não derruba a operação que o originou.
type AuditRecorder struct {
	repo auditStore
	log  zerolog.Logger
}

func NewAuditRecorder(repo auditStore, log zerolog.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, log: log}
}

func (a *AuditRecorder) Record(ctx context.Context, scope model.AuditScope, user, action, description, entryType string) {
	entry := &model.AuditLog{
		Scope:       scope,
		User:        user,
		Action:      action,
		Description: description,
		Type:        entryType,
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		a.log.Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
}

func (a *AuditRecorder) List(ctx context.Context, principal model.Principal, scope model.AuditScope, limit int) ([]model.AuditLog, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}
	return a.repo.List(ctx, scope, limit)
}
