package models

import "time"

type AuditLog struct {
	ActorType  string         `json:"actor_type"` // api/cli/system
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
