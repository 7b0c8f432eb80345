package application

import "github.com/tamilsociety/tls-platform/pkg/utils"

// Actor identifies the admin performing a change, for review stamps and the
// audit trail.
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}

func (a Actor) auditEntry(action, resourceType, resourceID string, before, after any, description string) utils.AuditEntry {
	return utils.AuditEntry{
		UserID:       a.UserID,
		IP:           a.IP,
		UserAgent:    a.UserAgent,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Before:       before,
		After:        after,
		Description:  description,
	}
}
