package action

import (
	"context"

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

const actionColumns = `action_id, patient_id, encounter_id, call_report,
	next_step_action, assigned_to_user_id, status, date_created`

func (r *repoPG) Insert(ctx context.Context, a *Action) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO cds_actions_table
			(patient_id, encounter_id, call_report, next_step_action,
			 assigned_to_user_id, status)
		VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, ''), 'PENDING'))
		RETURNING action_id, status, date_created`,
		a.PatientID, a.EncounterID, a.CallReport, a.NextStepAction,
		a.AssignedToUserID, a.Status,
	).Scan(&a.ID, &a.Status, &a.DateCreated)
}

func (r *repoPG) ListPending(ctx context.Context) ([]Action, error) {
	return r.list(ctx, `
		SELECT `+actionColumns+`
		FROM cds_actions_table
		WHERE status = 'PENDING'
		ORDER BY date_created DESC`)
}

func (r *repoPG) ListPendingForPatient(ctx context.Context, patientID int) ([]Action, error) {
	return r.list(ctx, `
		SELECT `+actionColumns+`
		FROM cds_actions_table
		WHERE patient_id = $1 AND status = 'PENDING'
		ORDER BY date_created DESC`, patientID)
}

func (r *repoPG) ListAllForPatient(ctx context.Context, patientID int) ([]Action, error) {
	return r.list(ctx, `
		SELECT `+actionColumns+`
		FROM cds_actions_table
		WHERE patient_id = $1
		ORDER BY date_created DESC`, patientID)
}

func (r *repoPG) UpdateStatus(ctx context.Context, actionID int, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE cds_actions_table SET status = $2 WHERE action_id = $1`,
		actionID, status)
	return err
}

func (r *repoPG) list(ctx context.Context, sql string, args ...interface{}) ([]Action, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.ID, &a.PatientID, &a.EncounterID, &a.CallReport,
			&a.NextStepAction, &a.AssignedToUserID, &a.Status, &a.DateCreated); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return actions, nil
}
