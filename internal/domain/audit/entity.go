package audit

import "time"

// Entry - one audit trail line. Payload holds the change as loose JSON;
// the sink stores it verbatim.
type Entry struct {
	ID        string
	CompanyID string
	Actor     string
	Action    string
	Entity    string
	EntityID  string
	Payload   map[string]any
	CreatedAt time.Time
}

// Common actions recorded by the payroll core.
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionApprove = "approve"
	ActionPay     = "pay"
	ActionCancel  = "cancel"
	ActionDelete  = "delete"
	ActionRun     = "run"
)
