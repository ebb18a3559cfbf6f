package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Activity log categories.
const (
	LogTypeUser   = "user"
	LogTypeSystem = "system"
)

// Activity log levels.
const (
	LogLevelInfo    = "info"
	LogLevelSuccess = "success"
	LogLevelWarn    = "warn"
	LogLevelError   = "error"
)

// ActivityLog is an append-only audit entry. The actor fields are nullable so
// system events without a user can be recorded too.
type ActivityLog struct {
	bun.BaseModel `bun:"table:activity_logs,alias:al"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    *int64    `bun:"user_id,nullzero" json:"userId,omitempty"`
	Username  *string   `bun:"username,nullzero" json:"username,omitempty"`
	Action    string    `bun:"action,notnull" json:"action"`
	Details   string    `bun:"details" json:"details,omitempty"`
	LogType   string    `bun:"log_type,notnull,default:'user'" json:"logType"`
	LogLevel  string    `bun:"log_level,notnull,default:'info'" json:"logLevel"`
	IPAddress *string   `bun:"ip_address,nullzero" json:"ipAddress,omitempty"`
	SessionID *string   `bun:"session_id,nullzero" json:"sessionId,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
