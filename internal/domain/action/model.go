package action

import "time"

// Action statuses. The ledger stores free-form status strings so new workflow
// states can be introduced without a migration; these two are the ones the
// service itself assigns.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// Action is one follow-up task recorded against a patient: who to reach, what
// was said on the call, and what should happen next.
type Action struct {
	ID               int       `json:"id"`
	PatientID        int       `json:"patient_id"`
	EncounterID      *int      `json:"encounter_id,omitempty"`
	CallReport       string    `json:"call_report,omitempty"`
	NextStepAction   string    `json:"next_step_action,omitempty"`
	AssignedToUserID *int      `json:"assigned_to_user_id,omitempty"`
	Status           string    `json:"status"`
	DateCreated      time.Time `json:"date_created"`
}
