package models

import "time"

const AuditLogTable = "ace_audit_log"

// AuditLog records who did what to which entity. Written after a successful
// commit only; a failed operation leaves no trail.
type AuditLog struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	Action     string `gorm:"size:50;not null" json:"action"`
	EntityType string `gorm:"size:50;index" json:"entityType"`
	EntityID   string `gorm:"type:uuid;index" json:"entityId"`
	Details    string `gorm:"size:500" json:"details,omitempty"`

	ActorID   string `gorm:"type:uuid" json:"actorId"`
	ActorName string `gorm:"size:255" json:"actorName"`

	CreatedAt time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string { return AuditLogTable }
