package action

import "context"

type Repository interface {
	Insert(ctx context.Context, a *Action) error
	ListPending(ctx context.Context) ([]Action, error)
	ListPendingForPatient(ctx context.Context, patientID int) ([]Action, error)
	ListAllForPatient(ctx context.Context, patientID int) ([]Action, error)
	// UpdateStatus sets the status of one action. Updating an unknown action
	// ID affects zero rows and is not an error.
	UpdateStatus(ctx context.Context, actionID int, status string) error
}
