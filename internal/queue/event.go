// Package queue defines message payloads exchanged over the message broker.
package queue

// AuditEvent is published whenever a privileged mutation succeeds:
// theater create/update/delete and user registration. It carries enough
// information for downstream consumers to log or trigger notifications
// without querying the primary database.
type AuditEvent struct {
    Action     string `json:"action"`      // e.g. "theater.created"
    Entity     string `json:"entity"`      // "theater" or "user"
    EntityID   uint64 `json:"entity_id"`   // id of the mutated record
    ActorID    uint64 `json:"actor_id"`    // id of the authenticated caller
    Detail     string `json:"detail"`      // human-readable detail (name/username)
    OccurredAt string `json:"occurred_at"` // RFC3339 UTC timestamp
}
