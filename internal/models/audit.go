package models

import "time"

// Audited actions on daily records.
const (
	AuditActionDailyRecordCreate = "DAILY_RECORD_CREATE"
	AuditActionDailyRecordUpdate = "DAILY_RECORD_UPDATE"
)

// AuditResourceDailyRecord names the daily_records table in audit rows.
const AuditResourceDailyRecord = "daily_record"

// AuditLog is one row of audit_logs. OldValues and NewValues hold JSON snapshots of the
// resource before and after the change.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"user_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	OldValues  []byte    `db:"old_values" json:"old_values,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
