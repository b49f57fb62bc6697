package domain

import "time"

// SecurityEventKind classifies an audit record.
type SecurityEventKind string

const (
	EventRegister       SecurityEventKind = "register"
	EventLogin          SecurityEventKind = "login"
	EventBootstrapAdmin SecurityEventKind = "bootstrap_admin"
	EventAccessDenied   SecurityEventKind = "access_denied"
)

// Outcome values recorded on security events.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeBlocked  = "blocked"
	OutcomeConflict = "conflict"
)

// SecurityEvent is an append-only record of an authentication decision.
type SecurityEvent struct {
	Kind      SecurityEventKind
	Identity  string
	Outcome   string
	Detail    string
	RequestID string
	At        time.Time
}
