package ports

import (
	"context"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// AuditRecorder persists audit entries. Implementations must be safe for
// concurrent use; callers never block a request on audit persistence.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// AuditSink accepts audit entries for asynchronous recording.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}

// NopAuditSink discards entries. Useful in tests and when auditing is
// disabled.
type NopAuditSink struct{}

func (NopAuditSink) Enqueue(domain.AuditEntry) {}
