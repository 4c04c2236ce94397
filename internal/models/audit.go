// internal/models/audit.go
// AuditRecord carries forward original_source/app/models/audit_log.py's
// shape; persisted to MongoDB (see internal/repositories/audit_repository.go).

package models

import "time"

type AuditRecord struct {
	ID           string                 `json:"id" bson:"_id,omitempty"`
	AdminID      string                 `json:"admin_id" bson:"admin_id"`
	Action       string                 `json:"action" bson:"action"`
	TargetType   string                 `json:"target_type" bson:"target_type"`
	TargetID     string                 `json:"target_id" bson:"target_id"`
	OldValues    map[string]interface{} `json:"old_values,omitempty" bson:"old_values,omitempty"`
	NewValues    map[string]interface{} `json:"new_values,omitempty" bson:"new_values,omitempty"`
	Reason       string                 `json:"reason,omitempty" bson:"reason,omitempty"`
	ClientAddr   string                 `json:"client_address,omitempty" bson:"client_address,omitempty"`
	Timestamp    time.Time              `json:"timestamp" bson:"timestamp"`
}
