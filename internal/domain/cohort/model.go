package cohort

import "time"

// Concept and form identifiers in the host platform's dictionary. These are
// part of the contract with the clinical data store schema and must match the
// deployment's concept dictionary exactly.
const (
	ConceptAppointmentDate       = 5096
	ConceptDiscontinuationReason = 165470
	ConceptTrackingStatus        = 167239
	ConceptTrackingComment       = 167237

	FormScheduling     = 27
	FormTracking       = 13
	FormFollowUpVisit  = 14
	FormFollowUpReview = 21
)

// ClientEffortEntry is one row of a patient's outreach history: a tracking
// encounter with its coded status resolved to a display name and any free-text
// comment recorded alongside it. It is a reporting projection, never persisted.
type ClientEffortEntry struct {
	ActionDate time.Time `json:"action_date"`
	Status     *string   `json:"status,omitempty"`
	Comments   *string   `json:"comments,omitempty"`
}
