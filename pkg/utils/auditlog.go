package utils

import (
	"context"
	"encoding/json"

	"github.com/tamilsociety/tls-platform/internal/domain/audit"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
)

type AuditEntry struct {
	UserID       uint
	IP           string
	UserAgent    string
	Action       string
	ResourceType string
	ResourceID   string
	Before       any
	After        any
	Description  string
}

// LogAuditWithConsole writes the entry and logs instead of failing.
var LogAuditWithConsole = func(ctx context.Context, repo repository.AuditRepo, e AuditEntry) {
	if err := LogAudit(ctx, repo, e); err != nil {
		logger.Log.Warn("audit log write failed",
			zap.String("action", e.Action),
			zap.String("resource", e.ResourceType),
			zap.String("id", e.ResourceID),
			zap.Error(err),
		)
	}
}

var LogAudit = func(ctx context.Context, repo repository.AuditRepo, e AuditEntry) error {
	var oldData, newData []byte
	var err error

	if e.Before != nil {
		oldData, err = json.Marshal(e.Before)
		if err != nil {
			logger.Log.Warn("audit marshal oldData", zap.Error(err))
		}
	}
	if e.After != nil {
		newData, err = json.Marshal(e.After)
		if err != nil {
			logger.Log.Warn("audit marshal newData", zap.Error(err))
		}
	}

	auditLog := &audit.AuditLog{
		UserID:       e.UserID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    e.IP,
		UserAgent:    e.UserAgent,
		Description:  e.Description,
	}

	return repo.CreateAuditLog(ctx, auditLog)
}
