package cohort

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cds/cds/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

// The four cohort query templates. Concept and form identifiers are baked in
// as constants; every date or patient value is a positional parameter. Voided
// rows are excluded in each predicate.
var (
	upcomingAppointmentsSQL = fmt.Sprintf(`
		SELECT DISTINCT e.patient_id
		FROM obs o
		JOIN encounter e ON o.encounter_id = e.encounter_id
		WHERE o.concept_id = %d AND e.form_id = %d
		  AND o.value_datetime BETWEEN $1 AND $2
		  AND o.voided = 0 AND e.voided = 0`,
		ConceptAppointmentDate, FormScheduling)

	// A patient is only "missed" while no later reconciling visit exists: any
	// scheduling or follow-up-visit encounter dated on/after the missed
	// appointment clears them from the cohort.
	missedAppointmentsSQL = fmt.Sprintf(`
		SELECT DISTINCT e.patient_id
		FROM obs o
		JOIN encounter e ON o.encounter_id = e.encounter_id
		WHERE o.concept_id = %d AND e.form_id = %d
		  AND o.value_datetime < $2 AND o.value_datetime > $1
		  AND o.voided = 0 AND e.voided = 0
		  AND NOT EXISTS (
			SELECT 1 FROM encounter e2
			WHERE e2.patient_id = e.patient_id
			  AND e2.form_id IN (%d, %d, %d)
			  AND e2.encounter_datetime >= o.value_datetime
			  AND e2.voided = 0)`,
		ConceptAppointmentDate, FormScheduling,
		FormScheduling, FormFollowUpVisit, FormFollowUpReview)

	// The appointment observation is matched by person, not by encounter: the
	// tracking encounter says the patient is being followed, the appointment
	// observation says they were due back in the window. A discontinuation
	// reason on the tracking encounter means they formally stopped treatment
	// and are not an interruption.
	treatmentInterruptionSQL = fmt.Sprintf(`
		SELECT DISTINCT e.patient_id
		FROM encounter e
		JOIN obs o_appt ON o_appt.person_id = e.patient_id
		WHERE e.form_id = %d AND e.voided = 0 AND o_appt.voided = 0
		  AND o_appt.concept_id = %d
		  AND o_appt.value_datetime BETWEEN $1 AND $2
		  AND o_appt.value_datetime < $2
		  AND NOT EXISTS (
			SELECT 1 FROM obs o_disc
			WHERE o_disc.encounter_id = e.encounter_id
			  AND o_disc.concept_id = %d
			  AND o_disc.voided = 0)`,
		FormTracking, ConceptAppointmentDate, ConceptDiscontinuationReason)

	clientEffortSQL = fmt.Sprintf(`
		SELECT e.encounter_datetime AS action_date,
		  (SELECT cn.name FROM concept_name cn
		   WHERE cn.concept_id = o_status.value_coded
		     AND cn.locale = 'en'
		     AND cn.concept_name_type = 'FULLY_SPECIFIED') AS status_name,
		  o_comment.value_text AS comments
		FROM encounter e
		LEFT JOIN obs o_status ON e.encounter_id = o_status.encounter_id
		  AND o_status.concept_id = %d AND o_status.voided = 0
		LEFT JOIN obs o_comment ON e.encounter_id = o_comment.encounter_id
		  AND o_comment.concept_id = %d AND o_comment.voided = 0
		WHERE e.patient_id = $1 AND e.form_id = %d AND e.voided = 0
		ORDER BY e.encounter_datetime DESC`,
		ConceptTrackingStatus, ConceptTrackingComment, FormTracking)
)

func (r *repoPG) UpcomingAppointmentPatientIDs(ctx context.Context, now, until time.Time) ([]int, error) {
	return r.patientIDs(ctx, upcomingAppointmentsSQL, now, until)
}

func (r *repoPG) MissedAppointmentPatientIDs(ctx context.Context, from, now time.Time) ([]int, error) {
	return r.patientIDs(ctx, missedAppointmentsSQL, from, now)
}

func (r *repoPG) TreatmentInterruptionPatientIDs(ctx context.Context, from, now time.Time) ([]int, error) {
	return r.patientIDs(ctx, treatmentInterruptionSQL, from, now)
}

func (r *repoPG) ClientEffort(ctx context.Context, patientID int) ([]ClientEffortEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, clientEffortSQL, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ClientEffortEntry
	for rows.Next() {
		var e ClientEffortEntry
		if err := rows.Scan(&e.ActionDate, &e.Status, &e.Comments); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repoPG) patientIDs(ctx context.Context, sql string, lo, hi time.Time) ([]int, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, lo, hi)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
