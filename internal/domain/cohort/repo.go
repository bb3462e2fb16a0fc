package cohort

import (
	"context"
	"time"
)

// Repository runs the cohort classification queries against the clinical data
// store. All bounds are absolute timestamps; day-count arithmetic lives in the
// Service so that "now" is captured exactly once per logical query.
type Repository interface {
	// UpcomingAppointmentPatientIDs returns distinct patients with a
	// scheduling-form appointment observation dated in [now, until].
	UpcomingAppointmentPatientIDs(ctx context.Context, now, until time.Time) ([]int, error)

	// MissedAppointmentPatientIDs returns distinct patients whose appointment
	// observation is dated in (from, now) with no reconciling visit on or
	// after the missed date.
	MissedAppointmentPatientIDs(ctx context.Context, from, now time.Time) ([]int, error)

	// TreatmentInterruptionPatientIDs returns distinct patients with a
	// tracking-form encounter and an appointment observation dated in
	// [from, now), excluding encounters carrying a discontinuation reason.
	TreatmentInterruptionPatientIDs(ctx context.Context, from, now time.Time) ([]int, error)

	// ClientEffort returns the patient's tracking-form encounters with
	// resolved status and comments, newest first.
	ClientEffort(ctx context.Context, patientID int) ([]ClientEffortEntry, error)
}
