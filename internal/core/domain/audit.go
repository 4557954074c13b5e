package domain

import "time"

// Audit actions recorded for security-relevant operations.
const (
	AuditLoginSuccess = "login_success"
	AuditLoginFailure = "login_failure"
	AuditRoleChanged  = "role_changed"
	AuditUserDeleted  = "user_deleted"
	AuditItemDeleted  = "item_deleted"
)

// AuditEntry is an append-only record of a security-relevant action.
type AuditEntry struct {
	ActorID   string    `json:"actor_id" bson:"actor_id"`
	ActorName string    `json:"actor_name,omitempty" bson:"actor_name,omitempty"`
	Action    string    `json:"action" bson:"action"`
	TargetID  string    `json:"target_id,omitempty" bson:"target_id,omitempty"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty"`
	At        time.Time `json:"at" bson:"at"`
}
